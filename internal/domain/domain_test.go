package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityRankIsTotal(t *testing.T) {
	assert.Greater(t, TicketPriorityCritical.Rank(), TicketPriorityUrgent.Rank())
	assert.Greater(t, TicketPriorityUrgent.Rank(), TicketPriorityNormal.Rank())
	assert.Greater(t, TicketPriorityNormal.Rank(), TicketPriorityLow.Rank())
	assert.Equal(t, 0, TicketPriority("bogus").Rank())
}

func TestParseHelpers(t *testing.T) {
	status, err := ParseStatus(" Active ")
	require.NoError(t, err)
	assert.Equal(t, TicketStatusActive, status)

	_, err = ParseStatus("open")
	assert.Error(t, err)

	priority, err := ParsePriority("critical")
	require.NoError(t, err)
	assert.Equal(t, TicketPriorityCritical, priority)

	filter, err := ParseStatusFilter("ALL")
	require.NoError(t, err)
	assert.Equal(t, StatusFilterAll, filter)

	filter, err = ParseStatusFilter("ended")
	require.NoError(t, err)
	assert.Equal(t, StatusFilter(TicketStatusEnded), filter)

	sortBy, err := ParseSortOption("")
	require.NoError(t, err)
	assert.Equal(t, SortDefault, sortBy)

	_, err = ParseSortOption("alphabetical")
	assert.Error(t, err)
}

func TestTicketCloneIsIndependent(t *testing.T) {
	original := Ticket{
		ID:       "T-1",
		Assignee: StringPtr("Mike Chen"),
		Tags:     []string{"Bug"},
		Messages: []TicketMessage{{Sender: "a", Text: "hi"}},
	}
	clone := original.Clone()
	clone.Tags[0] = "Feature"
	*clone.Assignee = "AI Bot"
	clone.Messages[0].Text = "changed"

	assert.Equal(t, "Bug", original.Tags[0])
	assert.Equal(t, "Mike Chen", *original.Assignee)
	assert.Equal(t, "hi", original.Messages[0].Text)
}

func TestFormatRelative(t *testing.T) {
	now := int64(10 * 24 * time.Hour / time.Millisecond)
	ms := func(d time.Duration) int64 { return int64(d / time.Millisecond) }

	cases := []struct {
		age  time.Duration
		want string
	}{
		{0, "Just now"},
		{59 * time.Second, "Just now"},
		{time.Minute, "1m ago"},
		{90 * time.Second, "1m ago"},
		{59 * time.Minute, "59m ago"},
		{2 * time.Hour, "2h ago"},
		{23*time.Hour + 59*time.Minute, "23h ago"},
		{24 * time.Hour, "1d ago"},
		{-time.Hour, "Just now"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatRelative(now-ms(tc.age), now), "age %s", tc.age)
	}
}

func TestIsTeamMember(t *testing.T) {
	assert.True(t, IsTeamMember("AI Bot"))
	assert.False(t, IsTeamMember("Nobody"))
	assert.False(t, IsTeamMember(UnassignedMarker))
}
