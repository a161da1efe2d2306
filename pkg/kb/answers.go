package kb

// answer is a pre-computed response grounded in the document set.
type answer struct {
	Text       string
	SourceIDs  []string
	Confidence float64
}

// answers maps topic keys to their pre-computed responses. In a real
// deployment these would be generated by a retrieval-augmented model; here
// they are fixed text grounded in the documents they cite.
var answers = map[string]answer{
	"penalty": {
		Text: "Under the CAQM Act 2021, stubble burning penalties are:\n" +
			"• **< 2 acres**: ₹2,500\n" +
			"• **2-5 acres**: ₹5,000\n" +
			"• **> 5 acres**: ₹15,000\n\n" +
			"You can avoid penalties entirely by using approved alternatives like " +
			"the Happy Seeder, PUSA bio-decomposer, or mulching. Many states also " +
			"provide subsidies of ₹1,500/acre for farmers who adopt zero-burn practices.",
		SourceIDs:  []string{"CAQM-2021-01", "NGT-2015-OC"},
		Confidence: 0.96,
	},
	"bio-decomposer": {
		Text: "The **PUSA Bio-Decomposer** is the most affordable solution:\n\n" +
			"**How to prepare:**\n" +
			"1. Mix 4 capsules in 25L jaggery solution\n" +
			"2. Ferment for 5 days in a warm place\n" +
			"3. Dilute to 500L with water\n" +
			"4. Spray evenly per acre\n\n" +
			"**Cost**: Only ₹20/acre (vs ₹5,000-6,000 for mechanical methods)\n" +
			"**Timeline**: Stubble decomposes in 15-20 days\n" +
			"**Benefit**: Reduces methane and N₂O emissions by 30-40%",
		SourceIDs:  []string{"PUSA-BIO-2020"},
		Confidence: 0.97,
	},
	"happy seeder": {
		Text: "The **Happy Seeder** lets you sow wheat directly into rice stubble:\n\n" +
			"**Benefits:**\n" +
			"• Saves 80% water vs conventional methods\n" +
			"• Reduces cost by ₹3,000-5,000/acre\n" +
			"• Improves soil organic carbon by 0.2-0.3% over 3 years\n" +
			"• Stubble becomes natural mulch\n\n" +
			"**Availability**: Rent at Custom Hiring Centres for ₹1,000-1,500/acre\n" +
			"**Subsidy**: States provide 50-80% subsidy on purchase under CRM scheme",
		SourceIDs:  []string{"HAPPY-SEEDER-GUIDE", "NGT-2015-OC"},
		Confidence: 0.95,
	},
	"carbon credit": {
		Text: "You can earn **carbon credits** by avoiding stubble burning:\n\n" +
			"• Each acre of avoided burning ≈ **1.2 tCO₂e** reduction\n" +
			"• Current VCU market price: **₹500-1,500 per tCO₂e**\n" +
			"• That's ₹600-1,800 per acre in additional income!\n\n" +
			"**How verification works:**\n" +
			"The D-MRV system automatically verifies your compliance using AI and " +
			"satellite imagery. Once verified, your avoided emissions become " +
			"tradeable carbon credits — no paperwork needed.",
		SourceIDs:  []string{"CARBON-CREDIT-INDIA"},
		Confidence: 0.93,
	},
	"soil health": {
		Text: "**Incorporating crop residue** instead of burning dramatically improves soil health:\n\n" +
			"• Organic carbon increases by **0.1-0.2%** per season\n" +
			"• Microbial biomass carbon rises **15-20%** in no-burn farms\n" +
			"• Ideal soil pH: **6.5-7.5**\n" +
			"• Target organic carbon: **> 0.5%**\n\n" +
			"Get your **Soil Health Card** from the nearest KVK (Krishi Vigyan Kendra) " +
			"for free crop-specific nutrient recommendations.",
		SourceIDs:  []string{"SOIL-HEALTH-CARD", "PUSA-BIO-2020"},
		Confidence: 0.94,
	},
}

// defaultAnswer is returned when no topic scores above zero.
var defaultAnswer = answer{
	Text: "Based on Indian environmental regulations, here's what I can help with:\n\n" +
		"• **Crop Residue Management**: Ask about bio-decomposer, Happy Seeder, " +
		"or mulching techniques\n" +
		"• **Penalties & Laws**: CAQM Act 2021, NGT orders, state-specific rules\n" +
		"• **Carbon Credits**: How to earn ₹600-1,800/acre through D-MRV\n" +
		"• **Soil Health**: Benefits of residue incorporation\n\n" +
		"Try asking: \"What is the penalty for stubble burning?\" or " +
		"\"How do I use bio-decomposer?\"",
	SourceIDs:  []string{"CAQM-2021-01", "NGT-2015-OC", "PUSA-BIO-2020"},
	Confidence: 0.75,
}

// topicOrder is the scoring order for topics. Earlier entries win ties,
// so penalty questions dominate when keyword votes are split.
var topicOrder = []string{"penalty", "bio-decomposer", "happy seeder", "carbon credit", "soil health"}

// keywords maps topic keys to the question fragments that vote for them.
// Vernacular terms are included so Hinglish questions still match.
var keywords = map[string][]string{
	"penalty":        {"penalty", "fine", "jrimana", "saza", "jurmana", "cost", "punish"},
	"bio-decomposer": {"bio", "decomposer", "pusa", "capsule", "spray", "jaggery", "microbial"},
	"happy seeder":   {"happy seeder", "seeder", "zero till", "direct sow", "machine", "sowing"},
	"carbon credit":  {"carbon", "credit", "green", "token", "earn", "money", "income", "vcu"},
	"soil health":    {"soil", "health", "organic", "nutrient", "card", "ph", "fertility"},
}
