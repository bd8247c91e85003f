package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Protocol-Lattice/tiered-agent/pkg/agent"
)

var chatLevel int

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive session with one chatbot tier",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lvl, err := lookupLevel(chatLevel)
		if err != nil {
			return err
		}
		model, closeModel, err := newModel(cmd.Context(), cfg)
		if err != nil {
			return configurationError(err)
		}
		defer closeModel()

		bot, err := newResponder(chatLevel, cfg, model, logger)
		if err != nil {
			return err
		}
		logger.Info("chat session started", zap.Int("level", chatLevel), zap.String("provider", cfg.LLM.Provider))
		return runREPL(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), lvl, "You: ", bot)
	},
}

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Send a single query to one chatbot tier",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := lookupLevel(chatLevel); err != nil {
			return err
		}
		model, closeModel, err := newModel(cmd.Context(), cfg)
		if err != nil {
			return configurationError(err)
		}
		defer closeModel()

		bot, err := newResponder(chatLevel, cfg, model, logger)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), bot.Respond(cmd.Context(), strings.Join(args, " ")))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{chatCmd, askCmd} {
		c.Flags().IntVarP(&chatLevel, "level", "l", 3, "chatbot tier (1, 2 or 3)")
	}
}

// responderFunc adapts a plain function to agent.Responder.
type responderFunc func(ctx context.Context, input string) string

func (f responderFunc) Respond(ctx context.Context, input string) string { return f(ctx, input) }

var exitWords = map[string]bool{"quit": true, "exit": true, "bye": true, "q": true}

func isExitWord(s string) bool {
	return exitWords[strings.ToLower(strings.TrimSpace(s))]
}

// runREPL reads lines from in until an exit word, EOF or cancellation of ctx
// and prints each reply. An interrupted session ends with the goodbye line.
func runREPL(ctx context.Context, in io.Reader, out io.Writer, lvl level, prompt string, bot agent.Responder) error {
	title := color.New(color.FgCyan, color.Bold)
	speaker := color.New(color.FgGreen, color.Bold)
	you := color.New(color.FgYellow)

	title.Fprintln(out, lvl.Name)
	fmt.Fprintln(out, strings.Repeat("=", 60))
	for _, line := range lvl.Intro {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "Type 'quit', 'exit', or 'bye' to end the conversation.\n\n")

	goodbye := func() {
		fmt.Fprintf(out, "\n%s: Goodbye! Thanks for chatting with me!\n", speaker.Sprint(lvl.Speaker))
	}

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()
	lines, scanErr := readLines(readCtx, in)
	for {
		if ctx.Err() != nil {
			goodbye()
			return nil
		}
		you.Fprint(out, prompt)

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			goodbye()
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			goodbye()
			return <-scanErr
		}

		input := strings.TrimSpace(line)
		if isExitWord(input) {
			goodbye()
			return nil
		}
		if input == "" || ctx.Err() != nil {
			continue
		}
		fmt.Fprintf(out, "\n%s:\n%s\n\n", speaker.Sprint(lvl.Speaker), bot.Respond(ctx, input))
	}
}

// readLines scans in on its own goroutine so a blocked read cannot hold up
// cancellation. The error channel receives the scan result once lines is closed.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

// configurationError adds setup hints to a backend construction failure.
func configurationError(err error) error {
	return fmt.Errorf(`configuration error: %w

To fix this:
1. Get a Gemini API key from: https://makersuite.google.com/app/apikey
2. Set it as an environment variable: GEMINI_API_KEY=your_api_key_here
3. Or choose another backend with llm.provider (openai, anthropic, ollama, dummy)`, err)
}
