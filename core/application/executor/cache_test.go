package executor_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperterse/reportdeck/core/application/executor"
	"github.com/hyperterse/reportdeck/core/domain"
)

func TestResultCache_GetOrCompute(t *testing.T) {
	cache := executor.NewResultCache()
	calls := 0
	compute := func() (domain.QueryResult, error) {
		calls++
		return domain.Success(productsTable()), nil
	}

	first, hit, err := cache.GetOrCompute("q", compute)
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := cache.GetOrCompute("q", compute)
	require.NoError(t, err)
	assert.True(t, hit)

	assert.Equal(t, 1, calls)
	assert.True(t, first.Equal(second))
}

func TestResultCache_ComputeErrorIsNotStored(t *testing.T) {
	cache := executor.NewResultCache()
	boom := errors.New("boom")

	_, _, err := cache.GetOrCompute("q", func() (domain.QueryResult, error) {
		return domain.QueryResult{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, cache.Len())

	_, ok := cache.Peek("q")
	assert.False(t, ok)
}

func TestResultCache_ReturnsCopies(t *testing.T) {
	cache := executor.NewResultCache()
	result, _, err := cache.GetOrCompute("q", func() (domain.QueryResult, error) {
		return domain.Success(productsTable()), nil
	})
	require.NoError(t, err)

	table, _ := result.Table()
	table.Rows[0]["prodid"] = "mutated"

	stored, ok := cache.Peek("q")
	require.True(t, ok)
	storedTable, _ := stored.Table()
	assert.Equal(t, "A", storedTable.Rows[0]["prodid"])
}

func TestResultCache_PurgeAndForget(t *testing.T) {
	cache := executor.NewResultCache()
	for _, key := range []string{"a", "b", "c"} {
		_, _, err := cache.GetOrCompute(key, func() (domain.QueryResult, error) {
			return domain.Failure("x"), nil
		})
		require.NoError(t, err)
	}
	require.Equal(t, 3, cache.Len())

	assert.True(t, cache.Forget("b"))
	assert.Equal(t, 2, cache.Len())
	_, ok := cache.Peek("b")
	assert.False(t, ok)
	assert.False(t, cache.Forget("b"))

	cache.Purge()
	assert.Equal(t, 0, cache.Len())
}

func TestResultCache_ConcurrentMissesComputeOnce(t *testing.T) {
	cache := executor.NewResultCache()
	var calls atomic.Int32
	start := make(chan struct{})

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, _, err := cache.GetOrCompute("q", func() (domain.QueryResult, error) {
				calls.Add(1)
				time.Sleep(10 * time.Millisecond)
				return domain.Success(productsTable()), nil
			})
			assert.NoError(t, err)
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, cache.Len())
}
