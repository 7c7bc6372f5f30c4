// Command server runs the Audio Scribe API: audio transcription and grammar
// correction over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsenselab/audioscribe/internal/api"
	"github.com/skillsenselab/audioscribe/internal/audio"
	"github.com/skillsenselab/audioscribe/internal/config"
	"github.com/skillsenselab/audioscribe/internal/corrector"
	"github.com/skillsenselab/audioscribe/internal/logger"
	"github.com/skillsenselab/audioscribe/internal/observability"
	"github.com/skillsenselab/audioscribe/internal/recognizer"
	"github.com/skillsenselab/audioscribe/internal/server"
	"github.com/skillsenselab/audioscribe/internal/server/endpoint"
	"github.com/skillsenselab/audioscribe/internal/transcription/whisper"
	"github.com/skillsenselab/audioscribe/internal/version"
)

const startupProbeTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configFile := flag.String("config", "", "path to config.yml (optional)")
	envFile := flag.String("env", "", "path to .env file (optional)")
	flag.Parse()

	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	if *envFile != "" {
		opts = append(opts, config.WithEnvFile(*envFile))
	}

	var cfg config.Config
	if err := config.Load(&cfg, opts...); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Logging)
	log := logger.New(&cfg.Logging, cfg.Name)
	logger.SetGlobalLogger(log)

	log.Info("Service starting", logger.Fields(
		"service", cfg.Name,
		"version", version.Get().Version,
		"environment", cfg.Environment,
	))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	providers, err := observability.Init(ctx, cfg.Observability, cfg.Name, version.Get().Version)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Warn("telemetry shutdown failed", logger.ErrorFields("shutdown", err))
		}
	}()

	// Speech recognition stack: ffmpeg decode, silence padding, whisper sidecar.
	decoder := &audio.FFmpegDecoder{Binary: cfg.FFmpegBinary}
	normalizer := audio.NewNormalizer(decoder)
	provider := whisper.New(cfg.Whisper)

	probeCtx, probeCancel := context.WithTimeout(ctx, startupProbeTimeout)
	rec := recognizer.New(probeCtx, provider, normalizer, cfg.Recognizer, log)
	probeCancel()

	cor, err := corrector.New(cfg.Corrector, log)
	if err != nil {
		return fmt.Errorf("init corrector: %w", err)
	}

	metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware(metrics)

	engine := srv.GinEngine()
	engine.GET("/health", endpoint.Health(cfg.Name, func(ctx context.Context) []endpoint.ComponentHealth {
		return componentHealth(rec, cor)
	}))
	engine.GET("/info", endpoint.Info(cfg.Name))

	api.New(rec, cor, metrics, cfg.StagingDir).RegisterRoutes(engine)

	if err := srv.Start(ctx); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("Received shutdown signal", logger.Fields("signal", sig.String()))

	if err := srv.Stop(ctx); err != nil {
		return err
	}
	log.Info("Service stopped")
	return nil
}

// componentHealth reports collaborator status. A corrector without
// credentials degrades the service; a recognizer that failed to load its
// model makes it unhealthy for its primary purpose.
func componentHealth(rec *recognizer.Recognizer, cor *corrector.Corrector) []endpoint.ComponentHealth {
	components := make([]endpoint.ComponentHealth, 0, 2)

	recHealth := endpoint.ComponentHealth{Name: "recognizer", Status: endpoint.StatusHealthy}
	if !rec.Available() {
		recHealth.Status = endpoint.StatusUnhealthy
		recHealth.Detail = "transcription backend unavailable since startup"
	}
	components = append(components, recHealth)

	corHealth := endpoint.ComponentHealth{Name: "corrector", Status: endpoint.StatusHealthy}
	if !cor.Available() {
		corHealth.Status = endpoint.StatusDegraded
		corHealth.Detail = "GEMINI_API_KEY not configured"
	}
	components = append(components, corHealth)

	return components
}
