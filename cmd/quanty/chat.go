package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quanty-ai/quanty/internal/app"
	"github.com/quanty-ai/quanty/internal/assistant"
	"github.com/quanty-ai/quanty/internal/calculator"
	"github.com/quanty-ai/quanty/internal/dictionary"
	"github.com/quanty-ai/quanty/internal/history"
	"github.com/quanty-ai/quanty/internal/memory"
	"github.com/quanty-ai/quanty/internal/platform"
)

func newChatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with Quanty in the terminal",
		Long: `Starts an interactive session with its own conversation memory.
Lines starting with a calculator prefix (geometry:, trig:, physics:,
chemistry:, biology:, solve:) and short "define X" questions are answered
locally. Type /clear to forget the conversation and /exit to quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			a, err := app.New(cfg, nil)
			if err != nil {
				return err
			}
			defer a.Close()
			return newREPL(a, cmd.OutOrStdout()).run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

type repl struct {
	app     *app.App
	out     io.Writer
	session *memory.Session
	os      platform.OS
}

func newREPL(a *app.App, out io.Writer) *repl {
	return &repl{
		app:     a,
		out:     out,
		session: a.Sessions.Session(""),
		os:      hostOS(),
	}
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	chat, err := r.app.Chats.Create(ctx, "", "")
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, history.Greeting)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/exit", "/quit":
			return nil
		case "/clear":
			_ = r.session.Do(func(m *memory.Memory) error {
				m.Clear()
				return nil
			})
			fmt.Fprintln(r.out, "Conversation cleared.")
			continue
		}

		reply, model := r.answer(ctx, line)
		fmt.Fprintln(r.out, reply)

		if err := r.app.Chats.Append(ctx, chat.ID,
			history.Message{Role: string(memory.RoleUser), Content: line},
			history.Message{Role: string(memory.RoleAssistant), Content: reply, Model: model},
		); err != nil {
			slog.Warn("Failed to save chat", "error", err)
		}
	}
}

// answer tries the local tools before the assistant.
func (r *repl) answer(ctx context.Context, line string) (string, string) {
	if _, _, ok := calculator.Route(line); ok {
		result, err := calculator.Calculate(line)
		if err != nil {
			return err.Error(), ""
		}
		return result, ""
	}

	if term, ok := dictionary.Term(line); ok && !assistant.IsGreeting(line) {
		entry, err := r.app.Dictionary.Lookup(ctx, term)
		if err == nil {
			return dictionary.Format(entry), ""
		}
		if !errors.Is(err, dictionary.ErrNotFound) {
			slog.Warn("Dictionary lookup failed, asking the assistant", "error", err)
		}
	}

	var reply *assistant.Reply
	err := r.session.Do(func(m *memory.Memory) error {
		var err error
		reply, err = r.app.Assistant.Respond(ctx, m, assistant.Input{Text: line, Platform: r.os})
		return err
	})
	if errors.Is(err, assistant.ErrCodeRouteFailed) {
		return "Sorry, the code assistant could not answer right now. Please try again in a moment.", ""
	}
	if err != nil {
		return fmt.Sprintf("Something went wrong: %v", err), ""
	}
	return reply.Text, reply.Model
}

func hostOS() platform.OS {
	switch runtime.GOOS {
	case "windows":
		return platform.Windows
	case "darwin":
		return platform.MacOS
	case "linux":
		return platform.Linux
	case "android":
		return platform.Android
	case "ios":
		return platform.IOS
	}
	return platform.Unknown
}
