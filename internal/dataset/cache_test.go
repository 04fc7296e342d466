package dataset

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/superstore-dash/internal/common"
	"github.com/Veraticus/superstore-dash/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the same record set for the same source", func(t *testing.T) {
		path := testutil.WriteCSV(t, testutil.MixedRecords(t))
		cache := NewCache(NewLoader(Options{}))

		first, err := cache.Load(ctx, path)
		require.NoError(t, err)
		second, err := cache.Load(ctx, path)
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("concurrent first access loads once", func(t *testing.T) {
		path := testutil.WriteCSV(t, testutil.MixedRecords(t))
		cache := NewCache(NewLoader(Options{}))

		const callers = 16
		results := make([]*RecordSet, callers)
		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				rs, err := cache.Load(ctx, path)
				assert.NoError(t, err)
				results[i] = rs
			}(i)
		}
		wg.Wait()

		for _, rs := range results {
			assert.Same(t, results[0], rs)
		}
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("modified file is a new identity", func(t *testing.T) {
		records := testutil.MixedRecords(t)
		path := testutil.WriteCSV(t, records)
		cache := NewCache(NewLoader(Options{}))

		first, err := cache.Load(ctx, path)
		require.NoError(t, err)

		rewritten := testutil.WriteCSV(t, records[:2])
		content, err := os.ReadFile(rewritten)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, content, 0o600))
		later := time.Now().Add(time.Minute)
		require.NoError(t, os.Chtimes(path, later, later))

		second, err := cache.Load(ctx, path)
		require.NoError(t, err)

		assert.NotSame(t, first, second)
		assert.Equal(t, 2, second.Len())
		assert.Equal(t, len(records), first.Len(), "earlier record set is untouched")
	})

	t.Run("failures are not cached", func(t *testing.T) {
		path := testutil.WriteFile(t, "bad.csv", []byte("Order ID\nA1\n"))
		cache := NewCache(NewLoader(Options{}))

		_, err := cache.Load(ctx, path)
		require.ErrorIs(t, err, common.ErrSourceUnreadable)
		assert.Zero(t, cache.Len())
	})

	t.Run("missing file", func(t *testing.T) {
		cache := NewCache(NewLoader(Options{}))
		_, err := cache.Load(ctx, t.TempDir()+"/missing.csv")
		assert.ErrorIs(t, err, common.ErrSourceUnreadable)
	})

	t.Run("directory", func(t *testing.T) {
		cache := NewCache(NewLoader(Options{}))
		_, err := cache.Load(ctx, t.TempDir())
		assert.ErrorIs(t, err, common.ErrSourceUnreadable)
	})

	t.Run("reset", func(t *testing.T) {
		path := testutil.WriteCSV(t, testutil.MixedRecords(t))
		cache := NewCache(NewLoader(Options{}))

		first, err := cache.Load(ctx, path)
		require.NoError(t, err)
		cache.Reset()
		assert.Zero(t, cache.Len())

		second, err := cache.Load(ctx, path)
		require.NoError(t, err)
		assert.NotSame(t, first, second)
	})
}

func TestRecordSetRecordsClipped(t *testing.T) {
	rs := NewRecordSet("inline", testutil.MixedRecords(t))
	records := rs.Records()

	assert.Equal(t, len(records), cap(records))
	_ = append(records, testutil.NewRecord().Build())
	assert.Equal(t, 6, rs.Len())
}
