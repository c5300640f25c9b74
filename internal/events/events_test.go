package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type failing struct{ calls int }

func (f *failing) Publish(context.Context, string, any) error {
	f.calls++
	return errors.New("broker down")
}
func (f *failing) Close() error { return nil }

func TestFireSwallowsErrors(t *testing.T) {
	f := &failing{}
	assert.NotPanics(t, func() { Fire(f, UserApproved, map[string]string{"id": "1"}) })
	assert.Equal(t, 1, f.calls)
}

func TestFireNilAndNoop(t *testing.T) {
	assert.NotPanics(t, func() { Fire(nil, UserApproved, nil) })
	assert.NoError(t, Noop{}.Publish(context.Background(), PaymentReminder, nil))
	assert.NoError(t, Noop{}.Close())
}

type recording struct {
	deadline time.Time
	done     bool
}

func (r *recording) Publish(ctx context.Context, _ string, _ any) error {
	r.deadline, _ = ctx.Deadline()
	r.done = true
	return nil
}
func (r *recording) Close() error { return nil }

func TestFirePublishesBeforeReturning(t *testing.T) {
	r := &recording{}
	start := time.Now()
	Fire(r, DeliveryApproved, nil)
	assert.True(t, r.done)
	assert.WithinDuration(t, start.Add(publishTimeout), r.deadline, time.Second)
}
