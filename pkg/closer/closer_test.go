package closer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/hardware-catalog/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type order struct {
	mu    sync.Mutex
	names []string
}

func (o *order) fn(name string, err error) Func {
	return func(ctx context.Context) error {
		o.mu.Lock()
		o.names = append(o.names, name)
		o.mu.Unlock()
		return err
	}
}

func TestClose_LIFO(t *testing.T) {
	o := &order{}
	c := NewCloser(time.Second, logger.Nop())
	c.Add("postgres", o.fn("postgres", nil))
	c.Add("redis", o.fn("redis", nil))
	c.Add("http", o.fn("http", nil))

	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, []string{"http", "redis", "postgres"}, o.names)

	// Повторный вызов не закрывает ресурсы ещё раз
	require.NoError(t, c.Close(context.Background()))
	assert.Len(t, o.names, 3)
}

func TestClose_CollectsErrors(t *testing.T) {
	o := &order{}
	c := NewCloser(time.Second, logger.Nop())
	c.Add("postgres", o.fn("postgres", nil))
	c.Add("kafka", o.fn("kafka", errors.New("broker gone")))

	err := c.Close(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka: broker gone")
	assert.Equal(t, []string{"kafka", "postgres"}, o.names)
}

func TestClose_ForcesRemainingOnTimeout(t *testing.T) {
	o := &order{}
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })

	var calls int
	var mu sync.Mutex
	c := NewCloser(time.Second, logger.Nop())
	c.Add("postgres", o.fn("postgres", nil))
	c.Add("worker", func(ctx context.Context) error {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()

		if first {
			<-block
			return nil
		}
		return errors.New("still busy")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "interrupted after 0/2")
	assert.Contains(t, err.Error(), "[FORCED] worker: still busy")
	assert.Equal(t, []string{"postgres"}, o.names)
	assert.Equal(t, 2, calls)
}
