// Package prompt renders system prompts from an owner's profile, the active
// task, and the aggregated cross-thread conversation history. Rendering is
// deterministic: identical inputs produce byte-identical output.
package prompt

import (
	"fmt"
	"strings"

	"github.com/ajshul/focusflow/internal/memory"
	"github.com/ajshul/focusflow/internal/model"
	"github.com/ajshul/focusflow/internal/thread"
)

// NoHistorySentinel is rendered when aggregation yields no non-empty threads.
const NoHistorySentinel = "No previous conversations available."

// Composer renders system prompts. HistoryWindow caps how many of each
// thread's most recent messages appear in the history block.
type Composer struct {
	HistoryWindow int
	Scorer        memory.Scorer
}

// NewComposer returns a composer with the given per-thread history cap and
// the default keyword relevance scorer.
func NewComposer(historyWindow int) *Composer {
	if historyWindow < 1 {
		historyWindow = 10
	}
	return &Composer{HistoryWindow: historyWindow, Scorer: memory.NewKeywordScorer()}
}

// ComposeTask renders the system prompt for a task-specific conversation.
func (c *Composer) ComposeTask(profile *model.UserProfile, task *model.Task, conversations map[string][]*model.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an AI assistant helping %s with the task: %q.\n", profile.Name, task.Title)

	b.WriteString("\nUSER INFORMATION:\n")
	writeProfile(&b, profile, false)

	b.WriteString("\nTASK DETAILS:\n")
	fmt.Fprintf(&b, "Title: %s\n", task.Title)
	fmt.Fprintf(&b, "Category: %s\n", orDefault(task.Category, "Uncategorized"))
	fmt.Fprintf(&b, "Priority: %s\n", orDefault(task.Priority, "medium"))
	fmt.Fprintf(&b, "Due: %s\n", task.DueTime)
	if task.Context != "" {
		fmt.Fprintf(&b, "Context: %s\n", task.Context)
	}

	if cross := c.relevantCrossThread(task, conversations); cross != "" {
		b.WriteString("\nRELEVANT PAST DISCUSSIONS FROM OTHER THREADS:\n")
		b.WriteString(cross)
		b.WriteString("\n")
	}

	b.WriteString("\nCOMPLETE CONVERSATION HISTORY FROM ALL THREADS:\n")
	b.WriteString(c.FormatHistory(conversations))

	b.WriteString("\n\nINSTRUCTIONS:\n")
	b.WriteString(`1. Use short, clear sentences that are easy to process
2. Break down complex ideas into steps
3. Use examples and analogies when helpful
4. Emphasize starting small on intimidating tasks
5. Refer to past conversations from ANY thread when relevant
6. Show continuity of thought across different conversations
7. Be encouraging but practical about time management`)

	return b.String()
}

// ComposeCoach renders the system prompt for the general coaching
// conversation, summarizing the full task list.
func (c *Composer) ComposeCoach(profile *model.UserProfile, tasks []*model.Task, conversations map[string][]*model.Message) string {
	completed := 0
	highPriorityOpen := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		} else if t.Priority == "high" {
			highPriorityOpen++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an AI assistant specifically designed to help %s with ADHD manage tasks and life responsibilities.\n", profile.Name)
	b.WriteString("\nIMPORTANT: You have access to ALL previous conversations across all tasks. Use this knowledge to provide continuity and context-aware responses.\n")

	b.WriteString("\nUSER INFORMATION:\n")
	writeProfile(&b, profile, true)

	b.WriteString("\nTASK OVERVIEW:\n")
	fmt.Fprintf(&b, "Total Tasks: %d\n", len(tasks))
	fmt.Fprintf(&b, "Completed Tasks: %d\n", completed)
	fmt.Fprintf(&b, "High Priority Tasks: %d\n", highPriorityOpen)

	b.WriteString("\nDETAILED TASKS:\n")
	for _, t := range tasks {
		glyph := "○"
		if t.Completed {
			glyph = "✓"
		}
		fmt.Fprintf(&b, "- %s %s (Priority: %s, Due: %s)\n", glyph, t.Title, orDefault(t.Priority, "medium"), t.DueTime)
	}

	b.WriteString("\nCOMPLETE CONVERSATION HISTORY FROM ALL THREADS:\n")
	b.WriteString(c.FormatHistory(conversations))

	b.WriteString("\n\nINSTRUCTIONS:\n")
	b.WriteString(`1. Use short, clear sentences that are easy to process
2. Break down complex concepts into simpler parts
3. Provide specific, actionable advice
4. Always reference relevant past conversations regardless of which thread they occurred in
5. Identify patterns across tasks and suggest optimizations
6. Adapt to the user's communication style and preferences
7. Your primary role is to help connect knowledge across different tasks and provide a unified view

Your role is to be a life coach who helps manage the big picture while being aware of all individual tasks and conversations.`)

	return b.String()
}

// FormatHistory renders the cross-thread history block: one labeled section
// per non-empty thread, capped to the window's most recent messages, threads
// ordered by first-message time for reproducibility. Synthesized fallback
// replies never reach the model and are skipped here.
func (c *Composer) FormatHistory(conversations map[string][]*model.Message) string {
	var blocks []string
	for _, threadID := range memory.ThreadOrder(conversations) {
		msgs := promptable(conversations[threadID])
		if len(msgs) == 0 {
			continue
		}
		if len(msgs) > c.HistoryWindow {
			msgs = msgs[len(msgs)-c.HistoryWindow:]
		}
		lines := make([]string, 0, len(msgs)+1)
		lines = append(lines, fmt.Sprintf("--- Thread: %s ---", thread.Label(threadID)))
		for _, m := range msgs {
			lines = append(lines, fmt.Sprintf("%s: %s", senderLabel(m.Sender), m.Content))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	if len(blocks) == 0 {
		return NoHistorySentinel
	}
	return strings.Join(blocks, "\n\n")
}

// PriorWindow returns the most recent messages eligible to be replayed to
// the model as conversation context: fallback replies excluded, capped to
// the history window.
func (c *Composer) PriorWindow(msgs []*model.Message) []*model.Message {
	eligible := promptable(msgs)
	if len(eligible) > c.HistoryWindow {
		eligible = eligible[len(eligible)-c.HistoryWindow:]
	}
	return eligible
}

// relevantCrossThread surfaces messages from other threads that mention the
// task, scored by the configured relevance scorer. Returns "" when nothing
// qualifies so the section is omitted entirely.
func (c *Composer) relevantCrossThread(task *model.Task, conversations map[string][]*model.Message) string {
	if c.Scorer == nil {
		return ""
	}
	keywords := memory.TaskKeywords(task)
	var lines []string
	for _, threadID := range memory.ThreadOrder(conversations) {
		p := thread.Parse(threadID)
		if p.Purpose.Kind() == thread.KindTask && p.Purpose.TaskID() == task.ID {
			continue
		}
		hits := memory.FilterRelevant(promptable(conversations[threadID]), keywords, c.Scorer, 3)
		for _, m := range hits {
			lines = append(lines, fmt.Sprintf("[%s] %s: %s", thread.Label(threadID), senderLabel(m.Sender), m.Content))
		}
	}
	return strings.Join(lines, "\n")
}

func promptable(msgs []*model.Message) []*model.Message {
	out := make([]*model.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.Fallback {
			continue
		}
		out = append(out, m)
	}
	return out
}

func writeProfile(b *strings.Builder, p *model.UserProfile, withCommunicationStyle bool) {
	fmt.Fprintf(b, "Name: %s\n", p.Name)
	if p.Occupation != "" {
		fmt.Fprintf(b, "Occupation: %s\n", p.Occupation)
	}
	if p.WorkStyle != "" {
		fmt.Fprintf(b, "Work Style: %s\n", p.WorkStyle)
	}
	if withCommunicationStyle && p.CommunicationStyle != "" {
		fmt.Fprintf(b, "Communication Style: %s\n", p.CommunicationStyle)
	}
}

func senderLabel(s model.Sender) string {
	if s == model.SenderUser {
		return "User"
	}
	return "Assistant"
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
