package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndList(t *testing.T) {
	s := New()
	s.Register(Job{
		Name:        "demo",
		Description: "demo job",
		Interval:    time.Hour,
		Fn:          func(ctx context.Context) error { return nil },
	})

	items := s.List()
	require.Len(t, items, 1)
	assert.Equal(t, "demo", items[0].Name)
	assert.Equal(t, StatusIdle, items[0].Status)
}

func TestRunUnknownJob(t *testing.T) {
	s := New()
	err := s.Run(context.Background(), "nope")
	assert.Error(t, err)
}

func TestManualRunRecordsOutcome(t *testing.T) {
	s := New()
	done := make(chan error, 1)
	s.Register(Job{
		Name:     "flaky",
		Interval: time.Hour,
		Fn: func(ctx context.Context) error {
			err := errors.New("boom")
			done <- err
			return err
		},
	})

	require.NoError(t, s.Run(context.Background(), "flaky"))
	<-done

	// The status update happens right after Fn returns.
	assert.Eventually(t, func() bool {
		items := s.List()
		return items[0].Status == StatusReject && items[0].Message == "boom"
	}, time.Second, 10*time.Millisecond)
}
