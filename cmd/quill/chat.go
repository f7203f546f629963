package main

import (
	"os"
	"os/signal"

	"github.com/inkwell-sh/quill/pkg/log"
	"github.com/inkwell-sh/quill/pkg/srv"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long:  `Opens the interactive chat surface with context and history commands available as slash commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting quill")

		services, repl := NewServices(ctx)
		srv.StartServices(ctx, services)

		// The chat surface runs in the foreground; leaving it (exit,
		// Ctrl+D) ends the session.
		if err := repl.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("chat surface failed")
		}
		stop()

		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("quill has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
