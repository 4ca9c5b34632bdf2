package memory

import (
	"strings"

	"github.com/ajshul/focusflow/internal/model"
)

// Scorer decides whether a historical message is relevant to the task at
// hand. It is an interface so keyword matching can later be replaced by a
// real ranking function without touching aggregation or composition.
type Scorer interface {
	Relevant(msg *model.Message, keywords []string) bool
}

// KeywordScorer is the default scorer: case-insensitive keyword containment.
// Keywords shorter than MinKeywordLen runes and messages shorter than
// MinContentLen runes carry too little signal and are ignored.
type KeywordScorer struct {
	MinKeywordLen int
	MinContentLen int
}

// NewKeywordScorer returns a scorer with the default thresholds.
func NewKeywordScorer() *KeywordScorer {
	return &KeywordScorer{MinKeywordLen: 4, MinContentLen: 30}
}

func (s *KeywordScorer) Relevant(msg *model.Message, keywords []string) bool {
	if len([]rune(msg.Content)) < s.MinContentLen {
		return false
	}
	content := strings.ToLower(msg.Content)
	for _, kw := range keywords {
		if len([]rune(kw)) < s.MinKeywordLen {
			continue
		}
		if strings.Contains(content, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// TaskKeywords derives match keywords from a task: its full title, the
// title's individual words, and its category.
func TaskKeywords(task *model.Task) []string {
	if task == nil {
		return nil
	}
	kws := []string{strings.ToLower(task.Title)}
	kws = append(kws, strings.Fields(strings.ToLower(task.Title))...)
	if task.Category != "" {
		kws = append(kws, strings.ToLower(task.Category))
	}
	return kws
}

// FilterRelevant keeps the most recent relevant messages, up to max.
func FilterRelevant(msgs []*model.Message, keywords []string, scorer Scorer, max int) []*model.Message {
	var hits []*model.Message
	for _, m := range msgs {
		if scorer.Relevant(m, keywords) {
			hits = append(hits, m)
		}
	}
	if max > 0 && len(hits) > max {
		hits = hits[len(hits)-max:]
	}
	return hits
}
