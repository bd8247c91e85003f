package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Protocol-Lattice/tiered-agent/pkg/agent"
	"github.com/Protocol-Lattice/tiered-agent/pkg/tools"
)

var calcCmd = &cobra.Command{
	Use:   "calc [expression]",
	Short: "Run the calculator directly",
	Long: `Adds or multiplies two numbers. Without arguments an interactive session starts.

Examples:
  tierchat calc "15 + 23"
  tierchat calc multiply 4 by 7`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(cmd, args, tools.NewCalculator(), level{
			Name:    "🧮 Calculator Tool",
			Speaker: "🧮 Calculator",
			Intro:   append([]string{"Examples:"}, bullets(tools.CalculatorExamples)...),
		})
	},
}

var translateCmd = &cobra.Command{
	Use:   "translate [request]",
	Short: "Run the English to German translator directly",
	Long: `Translates short English phrases into German. Without arguments an interactive session starts.

Examples:
  tierchat translate 'Translate "Good Morning" into German'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		t := tools.NewTranslator(cfg.Translator.Phrases)
		return runTool(cmd, args, t, level{
			Name:    "🌍 Translator Tool - English → German",
			Speaker: "🌍 Translator",
			Intro: append([]string{
				fmt.Sprintf("Welcome! I know %d English words and phrases.", t.Words()),
				"Examples:",
			}, bullets(tools.TranslatorExamples)...),
		})
	},
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools the Level 3 agent routes to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := agent.DefaultToolCatalog(tools.NewTranslator(cfg.Translator.Phrases))
		return printCatalog(cmd.OutOrStdout(), catalog)
	},
}

func runTool(cmd *cobra.Command, args []string, tool tools.Tool, lvl level) error {
	respond := responderFunc(func(ctx context.Context, input string) string {
		return toolReply(ctx, tool, input)
	})
	if len(args) == 0 {
		return runREPL(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), lvl, "Query: ", respond)
	}
	fmt.Fprintln(cmd.OutOrStdout(), respond.Respond(cmd.Context(), strings.Join(args, " ")))
	return nil
}

// toolReply runs tool on input and renders the outcome, listing examples when parsing fails.
func toolReply(ctx context.Context, tool tools.Tool, input string) string {
	out, err := tool.Execute(ctx, input)
	if err == nil {
		return "✅ Result: " + out.Display
	}
	var perr *tools.ParseError
	if errors.As(err, &perr) && len(perr.Examples) > 0 {
		return fmt.Sprintf("❌ Error: %s\n\nSupported examples:\n%s", perr.Message,
			strings.Join(indent(bullets(perr.Examples)), "\n"))
	}
	return "❌ Error: " + err.Error()
}

func printCatalog(w io.Writer, catalog *agent.ToolCatalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TOOL\tSTEP LABEL\tDESCRIPTION")
	for _, e := range catalog.Entries() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Tool.Name(), e.Label, e.Tool.Description())
	}
	fmt.Fprintf(tw, "%s\t%s\t%s\n", "model", "General query", "Anything no tool claims goes to the language model.")
	return tw.Flush()
}

func bullets(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = "• " + s
	}
	return out
}

func indent(lines []string) []string {
	for i := range lines {
		lines[i] = "  " + lines[i]
	}
	return lines
}
