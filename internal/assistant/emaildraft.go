// Package assistant hosts model-backed conveniences that sit beside the
// conversation core: email drafting and task breakdown.
package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ajshul/focusflow/internal/llm"
	"github.com/ajshul/focusflow/internal/model"
)

// EmailDrafter produces email drafts matched to the owner's voice.
type EmailDrafter struct {
	invoker llm.Invoker
}

// NewEmailDrafter wires a drafter over the given invoker.
func NewEmailDrafter(inv llm.Invoker) *EmailDrafter {
	return &EmailDrafter{invoker: inv}
}

// Draft asks the model for an email draft. subject seeds the draft; the
// model may refine it (see ExtractSubject).
func (d *EmailDrafter) Draft(ctx context.Context, profile *model.UserProfile, subject, recipients, emailContext string) (string, error) {
	if profile == nil {
		return "", fmt.Errorf("%w: missing profile", model.ErrValidation)
	}

	var b strings.Builder
	b.WriteString("You are an email drafting assistant for someone with ADHD.\n")
	b.WriteString("\nUSER INFORMATION:\n")
	fmt.Fprintf(&b, "Name: %s\n", profile.Name)
	if profile.Occupation != "" {
		fmt.Fprintf(&b, "Occupation: %s\n", profile.Occupation)
	}
	if profile.CommunicationStyle != "" {
		fmt.Fprintf(&b, "Communication Style: %s\n", profile.CommunicationStyle)
	}
	b.WriteString("\nTASK:\nDraft an email that matches the user's communication style perfectly.\n")
	fmt.Fprintf(&b, "- Subject: %s\n", subject)
	fmt.Fprintf(&b, "- Recipients: %s\n", recipients)
	fmt.Fprintf(&b, "- Context: %s\n", emailContext)
	b.WriteString(`
Guidelines:
1. Keep paragraphs short and scannable
2. Use bullet points for lists
3. Include a clear call-to-action
4. Format with Subject and Body sections
5. Match the user's typical tone and style
6. Be professional but authentic to the user's voice`)

	return d.invoker.Invoke(ctx, b.String(), nil, "Draft the email now.")
}

var subjectLine = regexp.MustCompile(`(?m)^Subject: (.+)$`)

// ExtractSubject pulls a "Subject: …" line out of a drafted email. This is
// the one place the assistant inspects model output; the conversation core
// never does.
func ExtractSubject(draft string) (string, bool) {
	m := subjectLine.FindStringSubmatch(draft)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
