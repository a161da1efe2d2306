// Package kb implements the agronomic knowledge-base assistant.
//
// The knowledge base is a small fixed document set covering Indian crop
// residue regulation and management practice, paired with pre-computed
// answers matched by keyword scoring. There is no vector retrieval and no
// language model: lookups are pure, deterministic functions of the
// question text.
//
// An optional upstream document-store service can be consulted first; when
// it is unreachable the agent falls back to the local keyword matcher, so
// queries never fail outright.
package kb

// Document is one entry of the fixed knowledge base.
type Document struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Source  string   `json:"source"`
	Content string   `json:"content,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// Documents is the full knowledge base: Indian environmental law documents
// and best-practice bulletins on crop residue management.
var Documents = []Document{
	{
		ID:     "CAQM-2021-01",
		Title:  "CAQM Directions on Crop Residue Burning",
		Source: "Commission for Air Quality Management, 2021",
		Content: "Under Section 12 of the CAQM Act 2021, burning of crop residue " +
			"in the NCR and adjoining areas is strictly prohibited. Farmers found " +
			"burning stubble face penalties: ₹2,500 for plots < 2 acres, ₹5,000 " +
			"for 2-5 acres, and ₹15,000 for plots > 5 acres. The Commission " +
			"recommends in-situ management through Happy Seeder, bio-decomposer, " +
			"and mulching techniques.",
		Tags: []string{"stubble burning", "penalty", "NCR", "CAQM"},
	},
	{
		ID:     "NGT-2015-OC",
		Title:  "NGT Order on Crop Residue Management",
		Source: "National Green Tribunal, Original Application No. 118/2013",
		Content: "The NGT directed all state governments in Punjab, Haryana, UP, and " +
			"Rajasthan to ensure zero stubble burning. States must provide subsidized " +
			"machinery (Super SMS, Happy Seeder, Rotavator) and establish Custom " +
			"Hiring Centres (CHCs) at block level. Farmers transitioning to zero-burn " +
			"practices are eligible for ₹1,500/acre incentive under the CRM scheme.",
		Tags: []string{"NGT", "zero burning", "subsidy", "machinery"},
	},
	{
		ID:     "PUSA-BIO-2020",
		Title:  "PUSA Bio-Decomposer Protocol",
		Source: "Indian Agricultural Research Institute (IARI), 2020",
		Content: "The PUSA bio-decomposer is a microbial solution developed by IARI that " +
			"decomposes paddy stubble in 15-20 days. Application: Mix 4 capsules in " +
			"25 liters of jaggery solution, ferment for 5 days, then dilute to 500L " +
			"and spray per acre. Cost: ₹20/acre vs ₹5,000-6,000/acre for mechanical " +
			"management. Reduces CH₄ and N₂O emissions by 30-40%.",
		Tags: []string{"bio-decomposer", "PUSA", "IARI", "low cost", "emissions"},
	},
	{
		ID:     "HAPPY-SEEDER-GUIDE",
		Title:  "Happy Seeder Technology for Zero-Till Wheat Sowing",
		Source: "Punjab Agricultural University, Extension Bulletin 2019",
		Content: "The Happy Seeder allows direct sowing of wheat into rice stubble without " +
			"any tillage. It cuts and lifts the straw, sows wheat into the soil, and " +
			"deposits the straw as mulch. Benefits: saves 80% water vs conventional, " +
			"reduces cost by ₹3,000-5,000/acre, improves soil organic carbon by " +
			"0.2-0.3% over 3 years. Rental available at CHCs for ₹1,000-1,500/acre.",
		Tags: []string{"happy seeder", "zero-till", "wheat", "water saving"},
	},
	{
		ID:     "CARBON-CREDIT-INDIA",
		Title:  "Indian Carbon Market Framework",
		Source: "Bureau of Energy Efficiency, Carbon Credit Trading Scheme 2023",
		Content: "India's compliance carbon market (ICM) under the Energy Conservation " +
			"(Amendment) Act 2022 allows obligated entities to trade carbon credit " +
			"certificates (CCCs). Voluntary carbon market projects in agriculture " +
			"can generate Verified Carbon Units (VCUs) through avoided emissions " +
			"from stubble burning (approx 1.2 tCO₂e per acre of avoided burning). " +
			"Current VCU price: ₹500-1,500/tCO₂e.",
		Tags: []string{"carbon credit", "VCU", "India", "carbon market"},
	},
	{
		ID:     "SOIL-HEALTH-CARD",
		Title:  "Soil Health Card Scheme — Best Practices",
		Source: "Ministry of Agriculture, Government of India, 2015",
		Content: "Under the Soil Health Card scheme, farmers receive crop-specific " +
			"recommendations for nutrients. Key parameters: pH (ideal 6.5-7.5), " +
			"organic carbon (>0.5%), available N, P, K, S, Zn, Fe, Cu, Mn, B. " +
			"Crop residue incorporation increases organic carbon by 0.1-0.2% per " +
			"season. No-burn farms show 15-20% higher microbial biomass carbon.",
		Tags: []string{"soil health", "nutrients", "organic carbon", "microbial"},
	},
}

// byID indexes the document set for source resolution.
var byID = func() map[string]Document {
	m := make(map[string]Document, len(Documents))
	for _, d := range Documents {
		m[d.ID] = d
	}
	return m
}()

// Lookup returns the document with the given ID.
func Lookup(id string) (Document, bool) {
	d, ok := byID[id]
	return d, ok
}
