package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kisan-depin/dmrv/pkg/config"
	"github.com/kisan-depin/dmrv/pkg/errors"
	"github.com/kisan-depin/dmrv/pkg/kb"
)

// askOpts holds the command-line flags for the ask command.
type askOpts struct {
	language    string // response language hint
	interactive bool   // run the interactive Q&A session
	reasoning   bool   // show the agent reasoning trace
}

// newAskCmd creates the ask command for the farmer knowledge base.
func newAskCmd(cfg *config.Config) *cobra.Command {
	var opts askOpts

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the farmer knowledge base a question",
		Long: `Ask queries the curated knowledge base on stubble burning: penalties,
alternatives like the Happy Seeder and PUSA bio-decomposer, carbon
credits, and soil health.

With --interactive (or no question), an interactive Q&A session starts.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			agent := newAgent(cfg)
			if opts.interactive || len(args) == 0 {
				return runAskSession(agent, &opts)
			}
			return runAsk(cmd.Context(), agent, strings.Join(args, " "), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.language, "language", "l", "en", "response language hint")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "start an interactive Q&A session")
	cmd.Flags().BoolVar(&opts.reasoning, "reasoning", false, "show the agent reasoning trace")

	return cmd
}

// newAgent wires the knowledge-base agent, with the optional upstream
// document store when one is configured.
func newAgent(cfg *config.Config) kb.Agent {
	var agent kb.Agent
	if cfg.KB.UpstreamEndpoint != "" {
		agent.Upstream = kb.NewUpstreamClient(cfg.KB.UpstreamEndpoint)
	}
	return agent
}

// runAsk answers a single question and prints the grounded response.
func runAsk(ctx context.Context, agent kb.Agent, question string, opts *askOpts) error {
	if err := errors.ValidateQuestion(question); err != nil {
		return err
	}

	resp, err := agent.Query(ctx, question, opts.language)
	if err != nil {
		return err
	}

	printAnswer(resp, opts.reasoning)
	return nil
}

// printAnswer renders a knowledge-base response.
func printAnswer(resp kb.Response, showReasoning bool) {
	fmt.Println(StyleValue.Render(resp.Answer))
	printNewline()
	for _, src := range resp.Sources {
		printDetail("%s — %s", src.Title, src.Source)
	}
	printDetail("confidence: %.2f", resp.Confidence)
	if showReasoning && resp.Reasoning != "" {
		printNewline()
		fmt.Println(StyleDim.Render(resp.Reasoning))
	}
}

// =============================================================================
// Interactive Session
// =============================================================================

// askModel is the bubbletea model for the interactive Q&A session.
type askModel struct {
	agent    kb.Agent
	language string
	input    string
	history  []qa
	quitting bool
}

// qa is one answered exchange in the session.
type qa struct {
	question string
	response kb.Response
}

func newAskModel(agent kb.Agent, language string) askModel {
	return askModel{agent: agent, language: language}
}

func (m askModel) Init() tea.Cmd {
	return nil
}

func (m askModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		question := strings.TrimSpace(m.input)
		m.input = ""
		if question == "" {
			return m, nil
		}
		if question == "quit" || question == "exit" {
			m.quitting = true
			return m, tea.Quit
		}
		if err := errors.ValidateQuestion(question); err != nil {
			m.history = append(m.history, qa{question: question, response: kb.Response{Answer: err.Error()}})
			return m, nil
		}
		// Local lookups are fast enough to run inline on the update path.
		resp, _ := m.agent.Query(context.Background(), question, m.language)
		m.history = append(m.history, qa{question: question, response: resp})
		return m, nil
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	default:
		switch keyMsg.Type {
		case tea.KeyRunes:
			m.input += string(keyMsg.Runes)
		case tea.KeySpace:
			m.input += " "
		}
		return m, nil
	}
}

func (m askModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Farmer Knowledge Base"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("type a question, enter to ask, esc to quit"))
	b.WriteString("\n\n")

	start := 0
	if len(m.history) > 3 {
		start = len(m.history) - 3
	}
	for _, entry := range m.history[start:] {
		b.WriteString(StyleSuccess.Render("? " + entry.question))
		b.WriteString("\n")
		b.WriteString(StyleValue.Render(entry.response.Answer))
		b.WriteString("\n")
		for _, src := range entry.response.Sources {
			b.WriteString(StyleDim.Render("  " + src.Title))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(StyleTitle.Render("> "))
	b.WriteString(m.input)
	b.WriteString("█")
	return b.String()
}

// runAskSession runs the interactive bubbletea Q&A loop.
func runAskSession(agent kb.Agent, opts *askOpts) error {
	p := tea.NewProgram(newAskModel(agent, opts.language))
	_, err := p.Run()
	return err
}
