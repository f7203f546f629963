package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/inkwell-sh/quill/internal/config"
	"github.com/inkwell-sh/quill/internal/providers/llm"
	"github.com/inkwell-sh/quill/internal/providers/tools"
	"github.com/inkwell-sh/quill/internal/service/chat"
	"github.com/inkwell-sh/quill/internal/service/command"
	"github.com/inkwell-sh/quill/internal/service/memory"
	"github.com/inkwell-sh/quill/internal/service/state"
	"github.com/inkwell-sh/quill/internal/storage/histfile"
	"github.com/inkwell-sh/quill/internal/storage/kvfile"
	"github.com/inkwell-sh/quill/internal/transport/cli"
	"github.com/inkwell-sh/quill/pkg/log"
	"github.com/inkwell-sh/quill/pkg/srv"
	"github.com/joho/godotenv"
)

// NewServices assembles the application graph: config, storage, provider,
// services and the interactive surface. Background services are returned
// for the srv lifecycle; the ReadLine surface is returned separately so
// the caller can run it in the foreground.
func NewServices(ctx context.Context) ([]srv.Service, *cli.ReadLine) {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	providerCfg := config.NewProviderConfig(ctx)

	// 2. Storage
	blobs := kvfile.New(appCfg.GetStatePath())
	archive := histfile.NewArchive(appCfg.GetHistoryPath())

	// 3. Context store, restored from the previous session
	store := memory.NewStore(blobs)
	store.Restore(ctx)

	workdir, err := os.Getwd()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to resolve working directory")
	}
	factory := memory.NewFactory(store, tools.NewFilesystem(workdir))

	// 4. AI Provider
	aiProvider, err := llm.NewDynamicProvider(ctx, providerCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 5. Application state
	appState := state.New(aiProvider)

	// 6. Chat Service
	chatSvc := chat.NewService(appCfg, aiProvider, store, archive, appState)

	// 7. Slash commands
	router := command.New(command.NewCommands(
		providerCfg,
		appState,
		store,
		factory,
		archive,
		chatSvc,
	))

	// 8. Interactive surface
	repl, err := cli.NewReadLine(chatSvc, router, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize chat surface")
	}
	services = append(services, srv.NewCleanup(func() error {
		return repl.Shutdown(ctx)
	}))

	return services, repl
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
