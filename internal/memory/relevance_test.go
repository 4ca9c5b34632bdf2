package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajshul/focusflow/internal/model"
)

func msg(content string) *model.Message {
	return &model.Message{Sender: model.SenderUser, Content: content}
}

func TestKeywordScorer(t *testing.T) {
	s := NewKeywordScorer()

	long := "I keep putting off the quarterly report because the data export is broken"
	assert.True(t, s.Relevant(msg(long), []string{"report"}))
	assert.True(t, s.Relevant(msg(long), []string{"REPORT"}), "matching is case-insensitive")
	assert.False(t, s.Relevant(msg(long), []string{"budget"}))
	assert.False(t, s.Relevant(msg(long), []string{"the"}), "short keywords are ignored")
	assert.False(t, s.Relevant(msg("report"), []string{"report"}), "short messages are ignored")
}

func TestTaskKeywords(t *testing.T) {
	kws := TaskKeywords(&model.Task{Title: "Write Report", Category: "work"})
	assert.Contains(t, kws, "write report")
	assert.Contains(t, kws, "write")
	assert.Contains(t, kws, "report")
	assert.Contains(t, kws, "work")
	assert.Nil(t, TaskKeywords(nil))
}

func TestFilterRelevantKeepsMostRecent(t *testing.T) {
	s := NewKeywordScorer()
	msgs := []*model.Message{
		msg("first long message about the report deadline next week"),
		msg("unrelated chatter about lunch plans with the team today"),
		msg("second long message about the report structure and outline"),
		msg("third long message about the report introduction paragraph"),
		msg("fourth long message about the report summary and charts"),
	}
	got := FilterRelevant(msgs, []string{"report"}, s, 3)
	assert.Len(t, got, 3)
	assert.Equal(t, msgs[2], got[0])
	assert.Equal(t, msgs[4], got[2])
}
