package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostReactionBy(t *testing.T) {
	post := Post{
		UserReactions: map[string][]string{
			ReactionStrong:  {"user-1", "user-2"},
			ReactionWithYou: {"user-3"},
		},
	}

	assert.Equal(t, ReactionStrong, post.ReactionBy("user-2"))
	assert.Equal(t, ReactionWithYou, post.ReactionBy("user-3"))
	assert.Equal(t, "", post.ReactionBy("user-4"))
}

func TestReportTerminal(t *testing.T) {
	assert.False(t, (&Report{Status: ReportStatusPending}).Terminal())
	assert.True(t, (&Report{Status: ReportStatusResolved}).Terminal())
	assert.True(t, (&Report{Status: ReportStatusDismissed}).Terminal())
}

func TestFlaggedContentTerminal(t *testing.T) {
	assert.False(t, (&FlaggedContent{Status: FlagStatusPending}).Terminal())
	assert.True(t, (&FlaggedContent{Status: FlagStatusApproved}).Terminal())
	assert.True(t, (&FlaggedContent{Status: FlagStatusRejected}).Terminal())
	assert.True(t, (&FlaggedContent{Status: FlagStatusDeleted}).Terminal())
}
