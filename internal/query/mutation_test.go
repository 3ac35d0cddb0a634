package query

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type donationInput struct {
	ItemName string
}

func TestMutation_SuccessInvalidatesDependents(t *testing.T) {
	var fetches atomic.Int32
	c := newTestCache(t, func(ctx context.Context, key string) (any, error) {
		return int(fetches.Add(1)), nil
	})
	cancel := c.Observe("/api/donations", func(Resource) {})
	defer cancel()
	c.Load(context.Background(), "/api/donations")

	m := NewMutation("create donation", c, func(ctx context.Context, in donationInput) (int64, error) {
		return 7, nil
	}, Prefix("/api/donations"))
	assert.Equal(t, MutationIdle, m.Status())

	res := m.Execute(context.Background(), donationInput{ItemName: "books"})
	c.Wait()

	require.True(t, res.OK())
	assert.EqualValues(t, 7, res.Value)
	assert.NoError(t, res.Err)
	assert.Equal(t, MutationSuccess, m.Status())
	assert.EqualValues(t, 2, fetches.Load())
	assert.Equal(t, 2, c.Peek("/api/donations").Value)
}

func TestMutation_ErrorLeavesCacheAlone(t *testing.T) {
	var fetches atomic.Int32
	c := newTestCache(t, func(ctx context.Context, key string) (any, error) {
		return int(fetches.Add(1)), nil
	})
	c.Load(context.Background(), "/api/donations")

	m := NewMutation("create donation", c, func(ctx context.Context, in donationInput) (int64, error) {
		return 0, errors.New("quantity rejected")
	}, Prefix("/api/donations"))

	res := m.Execute(context.Background(), donationInput{})
	c.Wait()

	assert.False(t, res.OK())
	assert.Equal(t, MutationError, res.Status)
	assert.EqualError(t, res.Err, "quantity rejected")
	assert.Equal(t, MutationError, m.Status())
	assert.False(t, c.Peek("/api/donations").Stale)
	assert.EqualValues(t, 1, fetches.Load())
}

func TestMutation_StatusPendingWhileRunning(t *testing.T) {
	gate := make(chan struct{})
	var m *Mutation[string, string]
	var during MutationStatus
	m = NewMutation("feedback", nil, func(ctx context.Context, in string) (string, error) {
		during = m.Status()
		<-gate
		return in, nil
	})

	done := make(chan Result[string])
	go func() { done <- m.Execute(context.Background(), "ok") }()
	close(gate)
	res := <-done

	assert.Equal(t, MutationPending, during)
	assert.Equal(t, "ok", res.Value)

	m.Reset()
	assert.Equal(t, MutationIdle, m.Status())
}
