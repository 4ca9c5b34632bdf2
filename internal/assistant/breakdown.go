package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ajshul/focusflow/internal/llm"
	"github.com/ajshul/focusflow/internal/model"
)

// Breakdown asks the model to split a task description into 3-5 small,
// concrete steps and parses the numbered answer.
func Breakdown(ctx context.Context, inv llm.Invoker, profile *model.UserProfile, taskDescription string) ([]string, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: missing profile", model.ErrValidation)
	}

	var b strings.Builder
	b.WriteString("You are an ADHD task breakdown specialist. Break the following task into 3-5 small, concrete steps.\n")
	if profile.WorkStyle != "" {
		fmt.Fprintf(&b, "\nUser has these work preferences: %s\n", profile.WorkStyle)
	}
	b.WriteString(`
Make the first step extremely small and easy to start (reduce activation energy).
Be specific and actionable.
Avoid vague instructions.`)

	out, err := inv.Invoke(ctx, b.String(), nil, taskDescription)
	if err != nil {
		return nil, err
	}
	return ParseSteps(out), nil
}

var stepNumber = regexp.MustCompile(`\d+\.`)

// ParseSteps splits numbered model output ("1. … 2. …") into trimmed steps.
func ParseSteps(content string) []string {
	parts := stepNumber.Split(content, -1)
	steps := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			steps = append(steps, s)
		}
	}
	return steps
}
