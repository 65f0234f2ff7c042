package docx2tex

import (
	"errors"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
)

func testPoolOptions(t *testing.T) []Option {
	t.Helper()
	return []Option{
		WithOutputDir(t.TempDir()),
		WithoutPDF(),
		WithoutCorrection(),
		WithLogger(discardLogger()),
	}
}

// ---------------------------------------------------------------------------
// TestNewConverterPool - Sizing
// ---------------------------------------------------------------------------

func TestNewConverterPool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"positive size kept", 3, 3},
		{"zero clamps to one", 0, 1},
		{"negative clamps to one", -5, 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pool := NewConverterPool(tt.n)
			defer pool.Close()

			if got := pool.Size(); got != tt.want {
				t.Errorf("Size() = %d, want %d", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPoolAcquire - Lazy creation and reuse
// ---------------------------------------------------------------------------

func TestPoolAcquire(t *testing.T) {
	t.Parallel()

	t.Run("converters are created lazily", func(t *testing.T) {
		t.Parallel()

		pool := NewConverterPool(4, testPoolOptions(t)...)
		defer pool.Close()

		pool.mu.Lock()
		created := pool.created
		pool.mu.Unlock()
		if created != 0 {
			t.Errorf("created = %d before any Acquire, want 0", created)
		}
	})

	t.Run("released converters are reused", func(t *testing.T) {
		t.Parallel()

		pool := NewConverterPool(1, testPoolOptions(t)...)
		defer pool.Close()

		first, err := pool.Acquire()
		if err != nil {
			t.Fatalf("Acquire() error = %v, want nil", err)
		}
		pool.Release(first)

		second, err := pool.Acquire()
		if err != nil {
			t.Fatalf("Acquire() error = %v, want nil", err)
		}
		if first != second {
			t.Error("Acquire() created a new converter instead of reusing")
		}

		pool.mu.Lock()
		created := pool.created
		pool.mu.Unlock()
		if created != 1 {
			t.Errorf("created = %d, want 1", created)
		}
	})

	t.Run("creates distinct converters up to capacity", func(t *testing.T) {
		t.Parallel()

		pool := NewConverterPool(2, testPoolOptions(t)...)
		defer pool.Close()

		first, err := pool.Acquire()
		if err != nil {
			t.Fatalf("Acquire() error = %v, want nil", err)
		}
		second, err := pool.Acquire()
		if err != nil {
			t.Fatalf("Acquire() error = %v, want nil", err)
		}
		if first == second {
			t.Error("Acquire() handed out the same converter twice")
		}
	})

	t.Run("constructor failures roll back capacity", func(t *testing.T) {
		t.Parallel()

		missing := filepath.Join(t.TempDir(), "nope.yaml")
		pool := NewConverterPool(1, WithConfigFile(missing))
		defer pool.Close()

		if _, err := pool.Acquire(); !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("Acquire() error = %v, want ErrConfigNotFound", err)
		}

		pool.mu.Lock()
		created := pool.created
		pool.mu.Unlock()
		if created != 0 {
			t.Errorf("created = %d after failed Acquire, want 0", created)
		}
	})

	t.Run("concurrent use stays within capacity", func(t *testing.T) {
		t.Parallel()

		pool := NewConverterPool(2, testPoolOptions(t)...)
		defer pool.Close()

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				conv, err := pool.Acquire()
				if err != nil {
					t.Errorf("Acquire() error = %v, want nil", err)
					return
				}
				pool.Release(conv)
			}()
		}
		wg.Wait()

		pool.mu.Lock()
		created := pool.created
		pool.mu.Unlock()
		if created > 2 {
			t.Errorf("created = %d, want at most 2", created)
		}
	})
}

// ---------------------------------------------------------------------------
// TestPoolClose - Shutdown behavior
// ---------------------------------------------------------------------------

func TestPoolClose(t *testing.T) {
	t.Parallel()

	t.Run("acquire after close", func(t *testing.T) {
		t.Parallel()

		pool := NewConverterPool(1, testPoolOptions(t)...)
		if err := pool.Close(); err != nil {
			t.Fatalf("Close() error = %v, want nil", err)
		}

		if _, err := pool.Acquire(); !errors.Is(err, ErrPoolClosed) {
			t.Errorf("Acquire() error = %v, want ErrPoolClosed", err)
		}
	})

	t.Run("close is idempotent", func(t *testing.T) {
		t.Parallel()

		pool := NewConverterPool(1, testPoolOptions(t)...)
		if err := pool.Close(); err != nil {
			t.Fatalf("first Close() error = %v, want nil", err)
		}
		if err := pool.Close(); err != nil {
			t.Errorf("second Close() error = %v, want nil", err)
		}
	})

	t.Run("release after close is a no-op", func(t *testing.T) {
		t.Parallel()

		pool := NewConverterPool(1, testPoolOptions(t)...)
		conv, err := pool.Acquire()
		if err != nil {
			t.Fatalf("Acquire() error = %v, want nil", err)
		}
		if err := pool.Close(); err != nil {
			t.Fatalf("Close() error = %v, want nil", err)
		}

		pool.Release(conv) // must not panic on the closed channel
	})
}

// ---------------------------------------------------------------------------
// TestResolvePoolSize - Worker count resolution
// ---------------------------------------------------------------------------

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	t.Run("explicit count wins", func(t *testing.T) {
		t.Parallel()

		if got := ResolvePoolSize(5); got != 5 {
			t.Errorf("ResolvePoolSize(5) = %d, want 5", got)
		}
	})

	t.Run("auto sizing follows the CPU count", func(t *testing.T) {
		t.Parallel()

		want := runtime.GOMAXPROCS(0) / cpuDivisor
		if want < MinPoolSize {
			want = MinPoolSize
		}
		if want > MaxPoolSize {
			want = MaxPoolSize
		}

		for _, workers := range []int{0, -1} {
			if got := ResolvePoolSize(workers); got != want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", workers, got, want)
			}
		}
	})
}
