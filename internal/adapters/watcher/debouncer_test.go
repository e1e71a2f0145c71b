package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/memo/internal/adapters/watcher"
)

// batches records every callback invocation.
type batches struct {
	mu  sync.Mutex
	got [][]string
}

func (b *batches) add(paths []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.got = append(b.got, paths)
}

func (b *batches) snapshot() [][]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]string(nil), b.got...)
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(watcher.DefaultDebounceWindow, b.add)

		d.Add("/src/b.txt")
		d.Add("/src/a.txt")
		d.Add("/src/b.txt")

		time.Sleep(2 * watcher.DefaultDebounceWindow)
		synctest.Wait()

		require.Len(t, b.snapshot(), 1)
		assert.Equal(t, []string{"/src/a.txt", "/src/b.txt"}, b.snapshot()[0])
	})
}

func TestDebouncer_WindowRestartsOnAdd(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.add)

		d.Add("/src/a.txt")
		time.Sleep(60 * time.Millisecond)
		d.Add("/src/b.txt")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		assert.Empty(t, b.snapshot())

		time.Sleep(50 * time.Millisecond)
		synctest.Wait()

		require.Len(t, b.snapshot(), 1)
		assert.Len(t, b.snapshot()[0], 2)
	})
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(50*time.Millisecond, b.add)

		d.Add("/src/a.txt")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		d.Add("/src/b.txt")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, [][]string{{"/src/a.txt"}, {"/src/b.txt"}}, b.snapshot())
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d := watcher.NewDebouncer(50*time.Millisecond, nil)

		assert.NotPanics(t, func() {
			d.Add("/src/a.txt")
			time.Sleep(100 * time.Millisecond)
			synctest.Wait()
		})
	})
}
