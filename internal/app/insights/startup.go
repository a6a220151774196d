package insights

import (
	"context"

	"github.com/PabloGalante/wellbeing-insights/internal/domain"
	"github.com/PabloGalante/wellbeing-insights/internal/observability"
)

// GeneratorFactory builds the generator from the startup credential.
type GeneratorFactory func(ctx context.Context, apiKey, modelName string) (domain.InsightGenerator, error)

// NewServiceConfig resolves the startup configuration. A missing key or a
// factory failure degrades to demo mode; it is never fatal.
func NewServiceConfig(ctx context.Context, apiKey, modelName string, factory GeneratorFactory) ServiceConfig {
	log := observability.LoggerFromContext(ctx)

	cfg := ServiceConfig{
		CredentialPresent: apiKey != "",
		ModelName:         modelName,
	}

	if !cfg.CredentialPresent {
		log.Warn("GOOGLE_AI_API_KEY not found in environment variables")
		log.Warn("API will run in demo mode with generic responses")
		return cfg
	}

	if factory == nil {
		log.Error("no AI generator factory configured, falling back to demo mode")
		return cfg
	}

	gen, err := factory(ctx, apiKey, modelName)
	if err != nil {
		log.Error("error initializing AI generator, falling back to demo mode", "error", err)
		return cfg
	}

	cfg.Generator = gen
	log.Info("AI generator initialized successfully", "model", modelName)

	return cfg
}
