package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amaumene/cinescout/internal/api"
	"github.com/amaumene/cinescout/internal/config"
	"github.com/amaumene/cinescout/internal/scheduler"
	"github.com/amaumene/cinescout/internal/ui"
	"github.com/amaumene/cinescout/internal/utils"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "cinescout",
		Short:         "Discover movies and TV shows and keep a watchlist",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	root.AddCommand(
		newWhoamiCommand(),
		newLoginCommand(),
		newSignupCommand(),
		newLogoutCommand(),
		newLoginGoogleCommand(),
		newGenresCommand(),
		newLanguagesCommand(),
		newDiscoverCommand(),
		newDetailsCommand(),
		newWatchlistCommand(),
		newServeCallbackCommand(),
	)
	return root
}

// withRuntime loads the configuration and wires the application for a
// one-shot command logging to stderr
func withRuntime(fn func(ctx context.Context, rt *runtime, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		logger := utils.NewLogger(cfg.LogLevel)
		rt, err := newRuntime(cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return fn(ctx, rt, args)
	}
}

// runTUI runs the terminal UI
func runTUI(cmd *cobra.Command, args []string) error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger; the terminal belongs to the UI
	logger, logFile, err := utils.NewFileLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger.Info("Starting cinescout")

	// 3. Wire the application
	rt, err := newRuntime(cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// 4. Start the callback server
	go runCallbackServer(ctx, newCallbackServer(rt), rt)

	// 5. Start the session probe
	sched := scheduler.NewScheduler(rt.app, cfg.SessionProbeSchedule, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// 6. Run the UI until the user quits
	changes, unsubscribe := rt.store.Subscribe()
	defer unsubscribe()

	model := ui.NewModel(ctx, rt.app, rt.projector, changes, logger)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}

	logger.Info("cinescout stopped")
	return nil
}

func newServeCallbackCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve-callback",
		Short: "Run the local callback server (health, status, metrics) without OAuth routes",
		Long:  "Run the local callback server until interrupted. No login waits in this mode, so the OAuth completion routes are not served.",
		Args:  cobra.NoArgs,
		RunE: withRuntime(func(ctx context.Context, rt *runtime, args []string) error {
			server := api.NewServer(rt.cfg, rt.store, nil, rt.registry, rt.logger)
			return server.Start(ctx)
		}),
	}
}

// newCallbackServer creates the callback server delivering to rt's login
func newCallbackServer(rt *runtime) *api.Server {
	return api.NewServer(rt.cfg, rt.store, rt.oauth, rt.registry, rt.logger)
}

// runCallbackServer runs server until ctx is done
func runCallbackServer(ctx context.Context, server *api.Server, rt *runtime) {
	if err := server.Start(ctx); err != nil {
		rt.logger.WithError(err).Warn("Callback server stopped, federated login unavailable")
	}
}
