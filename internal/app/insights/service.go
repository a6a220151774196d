package insights

import (
	"context"
	"time"

	"github.com/PabloGalante/wellbeing-insights/internal/domain"
	"github.com/PabloGalante/wellbeing-insights/internal/observability"
)

// DefaultDemoDelay approximates the latency of a real generation.
const DefaultDemoDelay = time.Second

// ServiceConfig is computed once at startup and never changes afterwards.
type ServiceConfig struct {
	// CredentialPresent reports whether an API key was set at startup,
	// independently of whether the generator could be built from it.
	CredentialPresent bool

	// Generator is nil in demo mode.
	Generator domain.InsightGenerator

	ModelName string
}

func (c ServiceConfig) AIEnabled() bool {
	return c.Generator != nil
}

type Service struct {
	cfg       ServiceConfig
	demoDelay time.Duration
}

type Option func(*Service)

// WithDemoDelay overrides DefaultDemoDelay.
func WithDemoDelay(d time.Duration) Option {
	return func(s *Service) {
		s.demoDelay = d
	}
}

func NewService(cfg ServiceConfig, opts ...Option) *Service {
	s := &Service{
		cfg:       cfg,
		demoDelay: DefaultDemoDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the startup configuration the service was built with.
func (s *Service) Config() ServiceConfig {
	return s.cfg
}

// GenerateInsights produces the insight text for req, whose fields are used
// verbatim. Errors are always *domain.InsightError.
func (s *Service) GenerateInsights(ctx context.Context, req domain.InsightRequest) (domain.Insights, error) {
	log := observability.LoggerFromContext(ctx).With(
		"ai_enabled", s.cfg.AIEnabled(),
	)

	if !s.cfg.AIEnabled() {
		log.Warn("using demo response since AI generator is not available")

		text := DemoInsights(req)
		if err := sleepCtx(ctx, s.demoDelay); err != nil {
			return domain.Insights{}, domain.NewInsightError(domain.KindInternal, "demo response interrupted: %w", err)
		}

		return domain.Insights{Text: text, Mode: domain.ModeDemo}, nil
	}

	prompt := BuildPrompt(req)
	log.Debug("sending prompt to generator", "model", s.cfg.ModelName, "prompt_chars", len(prompt))

	start := time.Now()
	text, err := s.cfg.Generator.Generate(ctx, prompt)
	if err != nil {
		log.Error("generator failed", "error", err)
		return domain.Insights{}, &domain.InsightError{Kind: domain.KindUpstream, Err: err}
	}

	log.Info("generated insights successfully", "generation_time", time.Since(start))

	return domain.Insights{Text: text, Mode: domain.ModeAI}, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
