package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/inkwell-sh/quill/internal/config"
	"github.com/inkwell-sh/quill/internal/service/chat"
	"github.com/inkwell-sh/quill/internal/service/command"
	"github.com/inkwell-sh/quill/pkg/conv"
	"github.com/inkwell-sh/quill/pkg/log"
)

// ReadLine is the chat surface: a pure sink that prints ordered
// message output and emits user intents (messages and slash commands).
type ReadLine struct {
	cfg    *config.AppConfig
	chat   *chat.Service
	router *command.Router
	rl     *readline.Instance
}

func NewReadLine(chatSvc *chat.Service, router *command.Router, cfg *config.AppConfig) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:    cfg,
		chat:   chatSvc,
		router: router,
		rl:     rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("chat started, type /help for commands, 'exit' to quit")

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		if line == "/help" {
			r.printHelp()
			continue
		}

		if result, handled := r.router.Execute(ctx, line); handled {
			fmt.Fprintf(r.rl.Stdout(), "%s\n", conv.MarkdownToTerminal([]byte(result)))
			continue
		}

		// Regular message: stream deltas straight to the terminal as
		// they arrive.
		_, err = r.chat.Send(ctx, line, func(delta string) {
			fmt.Fprint(r.rl.Stdout(), delta)
		})
		fmt.Fprintln(r.rl.Stdout())
		if err != nil {
			logger.Error().Err(err).Msg("send failed")
			fmt.Fprintf(r.rl.Stdout(), "Error: %v\n", err)
		}
	}
}

func (r *ReadLine) printHelp() {
	for _, cmd := range r.router.ListCommands() {
		fmt.Fprintf(r.rl.Stdout(), "/%-10s %s\n", cmd.Name(), cmd.Description())
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
