// Package llm abstracts the language-model call behind an Invoker so the
// conversation core never depends on a concrete provider.
package llm

import (
	"context"

	"github.com/ajshul/focusflow/internal/model"
)

// Invoker sends one composed turn to a language model and returns the
// assistant's text. Implementations map provider failures to
// model.ErrModelUnavailable; callers treat the returned text as opaque.
type Invoker interface {
	Invoke(ctx context.Context, systemPrompt string, prior []*model.Message, userText string) (string, error)
}
