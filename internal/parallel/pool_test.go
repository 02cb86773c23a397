package parallel

import (
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewPool(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	if p.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", p.Workers())
	}
	if !p.IsRunning() {
		t.Error("IsRunning() = false after creation")
	}

	q := NewPool(0)
	defer q.Close()
	if got, want := q.Workers(), runtime.GOMAXPROCS(0); got != want {
		t.Errorf("Workers() = %d, want %d (GOMAXPROCS)", got, want)
	}
}

func TestPoolRun(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	var n atomic.Int64
	tasks := make([]func(), 100)
	for i := range tasks {
		tasks[i] = func() { n.Add(1) }
	}
	p.Run(tasks)

	if n.Load() != 100 {
		t.Errorf("ran %d tasks, want 100", n.Load())
	}
}

func TestPoolRunAfterClose(t *testing.T) {
	p := NewPool(2)
	p.Close()
	p.Close()

	if p.IsRunning() {
		t.Error("IsRunning() = true after Close")
	}
	ran := 0
	p.Run([]func(){func() { ran++ }, func() { ran++ }})
	if ran != 2 {
		t.Errorf("ran %d tasks after Close, want 2 inline", ran)
	}
}

func TestPoolCloseDuringRun(t *testing.T) {
	for i := range 500 {
		p := NewPool(2)
		var n atomic.Int64
		tasks := make([]func(), 64)
		for j := range tasks {
			tasks[j] = func() { n.Add(1) }
		}

		finished := make(chan struct{})
		go func() {
			p.Run(tasks)
			close(finished)
		}()
		p.Close()

		select {
		case <-finished:
		case <-time.After(5 * time.Second):
			t.Fatalf("iteration %d: Run did not return after Close", i)
		}
		if got := n.Load(); got != 64 {
			t.Fatalf("iteration %d: ran %d tasks, want 64", i, got)
		}
	}
}

func TestBands(t *testing.T) {
	tests := []struct {
		name    string
		height  int
		n       int
		minRows int
		want    []Band
	}{
		{"even", 8, 4, 1, []Band{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{"remainder", 10, 3, 1, []Band{{0, 3}, {3, 6}, {6, 10}}},
		{"min rows", 10, 8, 4, []Band{{0, 5}, {5, 10}}},
		{"too small", 3, 8, 4, []Band{{0, 3}}},
		{"single worker", 5, 1, 1, []Band{{0, 5}}},
		{"empty", 0, 4, 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bands(tt.height, tt.n, tt.minRows); !slices.Equal(got, tt.want) {
				t.Errorf("Bands(%d, %d, %d) = %v, want %v", tt.height, tt.n, tt.minRows, got, tt.want)
			}
		})
	}
}

func TestRowsCoversEveryRow(t *testing.T) {
	for _, p := range []*Pool{nil, NewPool(3)} {
		var mu sync.Mutex
		seen := make([]int, 100)
		p.Rows(100, 8, func(y0, y1 int) {
			mu.Lock()
			defer mu.Unlock()
			for y := y0; y < y1; y++ {
				seen[y]++
			}
		})
		for y, c := range seen {
			if c != 1 {
				t.Fatalf("row %d visited %d times, want 1", y, c)
			}
		}
		if p != nil {
			p.Close()
		}
	}
}

func BenchmarkPoolRows(b *testing.B) {
	p := NewPool(0)
	defer p.Close()
	buf := make([]byte, 1<<20)

	for b.Loop() {
		p.Rows(1024, 16, func(y0, y1 int) {
			for i := y0 * 1024; i < y1*1024; i++ {
				buf[i]++
			}
		})
	}
}
