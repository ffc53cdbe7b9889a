package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-triage/internal/clock"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestStoreSetIsImmediatelyReadable(t *testing.T) {
	s := NewStore()
	_, ok := s.Message()
	require.False(t, ok)

	s.Set("Ticket created")
	text, ok := s.Message()
	assert.True(t, ok)
	assert.Equal(t, "Ticket created", text)
}

func TestStoreNewMessageOverwrites(t *testing.T) {
	s := NewStore()
	calls := 0
	s.SubscribeFunc(func(Message) { calls++ })

	s.Set("first")
	s.Set("second")

	text, _ := s.Message()
	assert.Equal(t, "second", text)
	assert.Equal(t, 2, calls)
}

func TestStoreClearIfChecksVersion(t *testing.T) {
	s := NewStore()
	s.Set("first")
	stale := s.Current().Version
	s.Set("second")

	assert.False(t, s.ClearIf(stale))
	text, ok := s.Message()
	assert.True(t, ok)
	assert.Equal(t, "second", text)

	assert.True(t, s.ClearIf(s.Current().Version))
	_, ok = s.Message()
	assert.False(t, ok)
}

func TestDismisserClearsAfterTTL(t *testing.T) {
	clk := clock.Fake(epoch)
	s := NewStore()
	d := NewDismisser(s, clk, DefaultTTL)
	t.Cleanup(d.Stop)

	s.Set("Saved")
	clk.Advance(2999 * time.Millisecond)
	_, ok := s.Message()
	assert.True(t, ok)

	clk.Advance(time.Millisecond)
	_, ok = s.Message()
	assert.False(t, ok)
}

func TestDismisserRestartsOnNewMessage(t *testing.T) {
	clk := clock.Fake(epoch)
	s := NewStore()
	d := NewDismisser(s, clk, DefaultTTL)
	t.Cleanup(d.Stop)

	s.Set("first")
	clk.Advance(2 * time.Second)
	s.Set("second")

	clk.Advance(2 * time.Second)
	text, ok := s.Message()
	require.True(t, ok, "second message expired with the first countdown")
	assert.Equal(t, "second", text)

	clk.Advance(time.Second)
	_, ok = s.Message()
	assert.False(t, ok)
	assert.Equal(t, 0, clk.Pending())
}

func TestDismisserManualClearCancelsCountdown(t *testing.T) {
	clk := clock.Fake(epoch)
	s := NewStore()
	d := NewDismisser(s, clk, DefaultTTL)
	t.Cleanup(d.Stop)

	s.Set("bye")
	s.Clear()
	assert.Equal(t, 0, clk.Pending())
}

func TestDismisserStopCancelsTimer(t *testing.T) {
	clk := clock.Fake(epoch)
	s := NewStore()
	d := NewDismisser(s, clk, DefaultTTL)

	s.Set("pending")
	d.Stop()
	clk.Advance(time.Minute)

	text, ok := s.Message()
	assert.True(t, ok)
	assert.Equal(t, "pending", text)

	s.Set("after stop")
	assert.Equal(t, 0, clk.Pending())
}
