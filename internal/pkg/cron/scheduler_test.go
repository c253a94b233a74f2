package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunOnce(t *testing.T) {
	s := NewScheduler()

	var ran []string
	s.AddJob("first", 0, func(ctx context.Context) error {
		ran = append(ran, "first")
		return nil
	})
	s.AddJob("second", 0, func(ctx context.Context) error {
		ran = append(ran, "second")
		return errors.New("sweep failed")
	})

	s.RunOnce(context.Background())

	assert.Equal(t, []string{"first", "second"}, ran)
}

func TestRunOnce_RecoversPanic(t *testing.T) {
	s := NewScheduler()

	var afterPanic bool
	s.AddJob("panics", 0, func(ctx context.Context) error {
		panic("tenant sweep blew up")
	})
	s.AddJob("survives", 0, func(ctx context.Context) error {
		afterPanic = true
		return nil
	})

	assert.NotPanics(t, func() { s.RunOnce(context.Background()) })
	assert.True(t, afterPanic, "a panicking job must not stop the remaining jobs")
}
