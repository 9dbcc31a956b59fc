package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"adpilot/internal/ads"
	"adpilot/internal/agent"
	"adpilot/internal/config"
	"adpilot/internal/functions"
	"adpilot/internal/gemini"
	"adpilot/internal/server"
)

var (
	// Global flags
	verbose    bool
	configPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "adpilot",
	Short: "adpilot - conversational Google Ads campaign copilot",
	Long: `adpilot is a demo agent for StylePlus, a fashion e-commerce advertiser.

It answers natural-language questions about campaign performance by letting
a Gemini model call into a typed analytics engine over a seeded in-memory
campaign store. No live Google Ads account is touched.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Run a single conversation turn from the terminal",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Probe connectivity to the Gemini API",
	RunE:  runValidate,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "adpilot.yaml", "path to config file")
	rootCmd.AddCommand(serveCmd, askCmd, validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildOrchestrator wires the store, registry, model client and turn loop
// from loaded config.
func buildOrchestrator(cfg *config.Config) (*agent.Orchestrator, *gemini.Client) {
	store := ads.NewSeededStore()
	registry := functions.NewRegistry(store, logger.Named("functions"))
	client := gemini.NewClient(gemini.Config{
		APIKey:          cfg.Gemini.APIKey,
		BaseURL:         cfg.Gemini.BaseURL,
		Model:           cfg.Gemini.Model,
		Timeout:         cfg.GetGeminiTimeout(),
		Temperature:     cfg.Gemini.Temperature,
		MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
		TopP:            cfg.Gemini.TopP,
		TopK:            cfg.Gemini.TopK,
		MaxRetries:      cfg.Gemini.MaxRetries,
	}, logger.Named("gemini"))
	orch := agent.NewOrchestrator(client, registry, ads.SeedBusinessContext(), logger.Named("agent"))
	return orch, client
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Gemini.APIKey == "" {
		return gemini.ErrNoAPIKey
	}

	orch, _ := buildOrchestrator(cfg)
	srv := server.New(cfg, orch, logger.Named("server"))

	httpSrv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      srv.Router(),
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Addr()))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
	}
	return nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Gemini.APIKey == "" {
		return gemini.ErrNoAPIKey
	}

	orch, _ := buildOrchestrator(cfg)
	question := args[0]
	for _, extra := range args[1:] {
		question += " " + extra
	}

	msg, _, err := orch.Turn(cmd.Context(), question, agent.NewContext())
	if err != nil {
		fmt.Println(orch.FallbackMessage(err).Content)
		return err
	}

	fmt.Println(msg.Content)
	if len(msg.FunctionCalls) > 0 {
		fmt.Println("\nFunction calls:")
		for _, fc := range msg.FunctionCalls {
			fmt.Printf("  %s [%s] %dms\n", fc.Name, fc.Status, fc.ExecutionTime)
		}
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Gemini.APIKey == "" {
		return gemini.ErrNoAPIKey
	}

	_, client := buildOrchestrator(cfg)
	if !client.ValidateConnection(cmd.Context()) {
		return fmt.Errorf("connection validation failed for model %s", client.Model())
	}
	fmt.Printf("Connection OK (model %s)\n", client.Model())
	return nil
}
