package domain

import "context"

// InsightGenerator defines how the core application interacts with an LLM service.
type InsightGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
