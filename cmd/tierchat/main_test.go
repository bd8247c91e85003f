package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Protocol-Lattice/tiered-agent/pkg/agent"
	"github.com/Protocol-Lattice/tiered-agent/pkg/config"
	"github.com/Protocol-Lattice/tiered-agent/pkg/models"
	"github.com/Protocol-Lattice/tiered-agent/pkg/tools"
)

func init() {
	color.NoColor = true
}

type echoResponder struct{ seen []string }

func (e *echoResponder) Respond(_ context.Context, input string) string {
	e.seen = append(e.seen, input)
	return "echo: " + input
}

func TestRunREPLStopsOnExitWord(t *testing.T) {
	bot := &echoResponder{}
	var out bytes.Buffer
	in := strings.NewReader("hello\n\n   \nWhat is Go?\nBYE\nnever read\n")

	lvl, err := lookupLevel(1)
	require.NoError(t, err)
	require.NoError(t, runREPL(context.Background(), in, &out, lvl, "You: ", bot))

	assert.Equal(t, []string{"hello", "What is Go?"}, bot.seen)
	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Level 1 Chatbot\n"))
	assert.Contains(t, text, "🤖 Chatbot:\necho: hello\n\n")
	assert.True(t, strings.HasSuffix(text, "🤖 Chatbot: Goodbye! Thanks for chatting with me!\n"))
	assert.NotContains(t, text, "never read")
}

func TestRunREPLEndsOnEOF(t *testing.T) {
	bot := &echoResponder{}
	var out bytes.Buffer
	lvl, err := lookupLevel(3)
	require.NoError(t, err)

	require.NoError(t, runREPL(context.Background(), strings.NewReader("one"), &out, lvl, "You: ", bot))
	assert.Equal(t, []string{"one"}, bot.seen)
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestRunREPLSaysGoodbyeWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bot := &echoResponder{}
	var out bytes.Buffer
	lvl, _ := lookupLevel(2)

	require.NoError(t, runREPL(ctx, strings.NewReader("hi\n"), &out, lvl, "You: ", bot))
	assert.Empty(t, bot.seen)
	assert.True(t, strings.HasSuffix(out.String(), "🤖 Assistant: Goodbye! Thanks for chatting with me!\n"))
}

func TestRunREPLInterruptedWhileWaitingForInput(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	in, w := io.Pipe()
	defer w.Close()
	var seen []string
	responded := make(chan struct{}, 1)
	bot := responderFunc(func(_ context.Context, input string) string {
		seen = append(seen, input)
		responded <- struct{}{}
		return "ok"
	})
	var out bytes.Buffer
	lvl, _ := lookupLevel(3)

	done := make(chan error, 1)
	go func() { done <- runREPL(ctx, in, &out, lvl, "You: ", bot) }()

	_, err := w.Write([]byte("first\n"))
	require.NoError(t, err)
	select {
	case <-responded:
	case <-time.After(5 * time.Second):
		t.Fatal("no reply to the first line")
	}
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("session did not end after cancellation")
	}
	assert.Equal(t, []string{"first"}, seen)
	assert.True(t, strings.HasSuffix(out.String(), "🤖 Full Agent: Goodbye! Thanks for chatting with me!\n"))
}

func TestExitWords(t *testing.T) {
	for _, w := range []string{"quit", "EXIT", " bye ", "q"} {
		assert.True(t, isExitWord(w), w)
	}
	assert.False(t, isExitWord("quite"))
}

func TestLookupLevel(t *testing.T) {
	_, err := lookupLevel(4)
	assert.Error(t, err)
}

func TestToolReply(t *testing.T) {
	ctx := context.Background()
	calc := tools.NewCalculator()

	assert.Equal(t, "✅ Result: 7.0 * 4.0 = 28", toolReply(ctx, calc, "multiply 7 by 4"))

	reply := toolReply(ctx, calc, "divide 8 by 2")
	assert.True(t, strings.HasPrefix(reply, "❌ Error: Could not parse mathematical expression."))
	assert.Contains(t, reply, "Supported examples:\n  • ")

	reply = toolReply(ctx, tools.NewTranslator(nil), `Translate "spaceship"`)
	assert.Equal(t, "❌ Error: Unknown words: spaceship (partial translation: [spaceship])", reply)
}

func TestPrintCatalog(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printCatalog(&out, agent.DefaultToolCatalog(nil)))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "calculator"))
	assert.True(t, strings.HasPrefix(lines[2], "translator"))
	assert.True(t, strings.HasPrefix(lines[3], "model"))
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("warn", false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l, err = newLogger("warn", true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	_, err = newLogger("chatty", false)
	assert.Error(t, err)
}

func TestNewResponderPerLevel(t *testing.T) {
	c := config.Default()
	c.LLM.Provider = "dummy"
	model, closeModel, err := newModel(context.Background(), c)
	require.NoError(t, err)
	defer closeModel()

	l1, err := newResponder(1, c, model, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &agent.Chatbot{}, l1)
	assert.Equal(t, agent.MathRefusal, l1.Respond(context.Background(), "What is 2 + 2?"))

	l2, err := newResponder(2, c, model, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "🧮 Calculator Result: 2.0 + 2.0 = 4", l2.Respond(context.Background(), "What is 2 + 2?"))

	l3, err := newResponder(3, c, model, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "Dummy response: hello there", l3.Respond(context.Background(), "hello there"))

	_, err = newResponder(7, c, model, zap.NewNop())
	assert.Error(t, err)
}

func TestNewModelWrapsCache(t *testing.T) {
	c := config.Default()
	c.LLM.Provider = "dummy"
	c.Cache.Size = 8
	model, closeModel, err := newModel(context.Background(), c)
	require.NoError(t, err)
	defer closeModel()
	assert.IsType(t, &models.CachedLLM{}, model)

	c.LLM.Provider = "carrier-pigeon"
	_, _, err = newModel(context.Background(), c)
	assert.Error(t, err)
}

func TestTranslatorPhrasesFromConfig(t *testing.T) {
	t.Setenv("TIERCHAT_LLM_PROVIDER", "dummy")
	path := filepath.Join(t.TempDir(), "tierchat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("translator:\n  phrases:\n    good luck: viel glück\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"translate", "--config", path, `Translate "Good luck"`})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		configFile = ""
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "✅ Result: \"Good luck\" → \"Viel Glück\"\n", out.String())
}
