package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpadapter "github.com/PabloGalante/wellbeing-insights/internal/adapters/http"
	"github.com/PabloGalante/wellbeing-insights/internal/adapters/llm"
	"github.com/PabloGalante/wellbeing-insights/internal/app/insights"
	"github.com/PabloGalante/wellbeing-insights/internal/config"
	"github.com/PabloGalante/wellbeing-insights/internal/domain"
	"github.com/PabloGalante/wellbeing-insights/internal/observability"
)

const shutdownTimeout = 10 * time.Second

var debug bool

var rootCmd = &cobra.Command{
	Use:           "insights-api",
	Short:         "Wellbeing insights API",
	Long:          `Serves personalized wellbeing suggestions generated by Gemini, or a fixed demo response when no API key is configured.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().BoolVar(&debug, "debug", false, "development mode: debug logging in text format")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		observability.Logger().Error("insights-api failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if debug {
		cfg.Mode = config.ModeDevelopment
	}

	format := cfg.Log.Format
	if cfg.Debug() && os.Getenv("INSIGHTS_LOG_FORMAT") == "" {
		format = "TEXT"
	}
	log, closer := observability.Setup(observability.Options{
		Debug:      cfg.Debug(),
		Format:     format,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
	})
	defer closer.Close()

	log.Info("starting insights API", "api_key_configured", cfg.CredentialPresent(), "model", cfg.ModelName)

	svcCfg := insights.NewServiceConfig(ctx, cfg.APIKey, cfg.ModelName, geminiFactory(cfg.GeminiBaseURL))
	svc := insights.NewService(svcCfg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpadapter.NewServer(svc),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("insights API listening",
			"addr", srv.Addr,
			"mode", cfg.Mode,
			"ai_enabled", svcCfg.AIEnabled(),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func geminiFactory(baseURL string) insights.GeneratorFactory {
	return func(ctx context.Context, apiKey, modelName string) (domain.InsightGenerator, error) {
		var opts []llm.GeminiOption
		if baseURL != "" {
			opts = append(opts, llm.WithBaseURL(baseURL))
		}

		client, err := llm.NewGeminiClient(ctx, apiKey, modelName, opts...)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}
