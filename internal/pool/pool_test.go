package pool

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit(t *testing.T) {
	p := New(4)
	defer p.Close()

	var count atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		require.NoError(t, p.Submit(func() {
			defer wg.Done()
			count.Add(1)
		}))
	}
	wg.Wait()
	assert.Equal(t, int32(100), count.Load())
}

func TestEachCoversRangeExactlyOnce(t *testing.T) {
	p := New(3)
	defer p.Close()

	const n = 1000
	hits := make([]atomic.Int32, n)
	require.NoError(t, p.Each(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			hits[i].Add(1)
		}
	}))

	for i := range hits {
		require.Equal(t, int32(1), hits[i].Load(), "index %d", i)
	}
}

func TestEachEmptyRange(t *testing.T) {
	p := New(2)
	defer p.Close()

	called := false
	require.NoError(t, p.Each(0, func(lo, hi int) { called = true }))
	assert.False(t, called)
}

func TestSubmitAfterClose(t *testing.T) {
	p := New(1)
	p.Close()
	p.Close() // idempotent

	err := p.Submit(func() {})
	require.ErrorIs(t, err, ErrClosed)
}

func TestDefaultSize(t *testing.T) {
	p := New(0)
	defer p.Close()
	assert.Positive(t, p.Size())
}
