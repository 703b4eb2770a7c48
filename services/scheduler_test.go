package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterSameTaskTwiceIsNoop(t *testing.T) {
	s := NewScheduler()

	added, err := s.Register("ping", "@every 1h", func() {})
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.Register("ping", "@every 1h", func() {})
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 1, s.Entries())
}

func TestRegisterNewSpecReplacesEntry(t *testing.T) {
	s := NewScheduler()

	_, err := s.Register("ping", "@every 1h", func() {})
	require.NoError(t, err)
	added, err := s.Register("ping", "*/5 * * * *", func() {})
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, 1, s.Entries())

	spec, ok := s.Spec("ping")
	require.True(t, ok)
	assert.Equal(t, "*/5 * * * *", spec)

	_, ok = s.Spec("pong")
	assert.False(t, ok)
}

func TestRegisterInvalidSpec(t *testing.T) {
	s := NewScheduler()
	_, err := s.Register("ping", "every now and then", func() {})
	assert.Error(t, err)
	assert.Zero(t, s.Entries())
}

func TestRegisterExpirySweepDefaultSpec(t *testing.T) {
	s := NewScheduler()
	sweeper := NewExpirySweeper(nil)

	added, err := RegisterExpirySweep(s, sweeper, "")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = RegisterExpirySweep(s, sweeper, DefaultExpiryCron)
	require.NoError(t, err)
	assert.False(t, added)

	spec, _ := s.Spec(CloseExpiredTask)
	assert.Equal(t, DefaultExpiryCron, spec)
	assert.Equal(t, 1, s.Entries())
}

func TestSchedulerRunsAndStops(t *testing.T) {
	s := NewScheduler()
	ran := make(chan struct{}, 1)
	_, err := s.Register("tick", "@every 1s", func() {
		select {
		case ran <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)

	s.Start()
	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("task never ran")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}
