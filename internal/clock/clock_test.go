package clock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeAdvanceFiresInOrder(t *testing.T) {
	f := NewFake(epoch)
	var got []string

	f.AfterFunc(30*time.Millisecond, func() { got = append(got, "c") })
	f.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	f.AfterFunc(10*time.Millisecond, func() { got = append(got, "b") })
	f.AfterFunc(time.Second, func() { got = append(got, "late") })

	f.Advance(50 * time.Millisecond)

	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("fired %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fired %v, want %v", got, want)
		}
	}
	if f.Pending() != 1 {
		t.Errorf("pending: got %d, want 1", f.Pending())
	}
	if !f.Now().Equal(epoch.Add(50 * time.Millisecond)) {
		t.Errorf("now: got %v", f.Now())
	}
}

func TestFakeChainedTimersWithinWindow(t *testing.T) {
	f := NewFake(epoch)
	var fired []time.Time

	var tick func()
	tick = func() {
		fired = append(fired, f.Now())
		if len(fired) < 5 {
			f.AfterFunc(10*time.Millisecond, tick)
		}
	}
	f.AfterFunc(10*time.Millisecond, tick)

	f.Advance(35 * time.Millisecond)
	if len(fired) != 3 {
		t.Fatalf("expected 3 ticks, got %d", len(fired))
	}
	for i, at := range fired {
		want := epoch.Add(time.Duration(i+1) * 10 * time.Millisecond)
		if !at.Equal(want) {
			t.Errorf("tick %d at %v, want %v", i, at, want)
		}
	}

	f.Advance(time.Second)
	if len(fired) != 5 {
		t.Errorf("expected 5 ticks, got %d", len(fired))
	}
}

func TestFakeStop(t *testing.T) {
	f := NewFake(epoch)
	fired := false
	timer := f.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Fatal("first Stop should report true")
	}
	if timer.Stop() {
		t.Error("second Stop should report false")
	}
	f.Advance(2 * time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestFakeStep(t *testing.T) {
	f := NewFake(epoch)
	n := 0
	f.AfterFunc(time.Minute, func() { n++ })

	if !f.Step() {
		t.Fatal("expected a timer to fire")
	}
	if n != 1 {
		t.Errorf("callback count: got %d, want 1", n)
	}
	if !f.Now().Equal(epoch.Add(time.Minute)) {
		t.Errorf("now: got %v", f.Now())
	}
	if f.Step() {
		t.Error("Step on empty clock should report false")
	}
}

func TestLoopSerializesTimersAndPosts(t *testing.T) {
	l := NewLoop(16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	var mu sync.Mutex
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		l.AfterFunc(time.Millisecond, func() {
			defer wg.Done()
			mu.Lock()
			counter++
			mu.Unlock()
		})
	}
	wg.Wait()

	var seen int
	if err := l.Call(ctx, func() {
		mu.Lock()
		seen = counter
		mu.Unlock()
	}); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if seen != 20 {
		t.Errorf("counter: got %d, want 20", seen)
	}

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Run: got %v, want context.Canceled", err)
	}
}

func TestLoopStoppedTimerDoesNotFire(t *testing.T) {
	l := NewLoop(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	fired := make(chan struct{}, 1)
	timer := l.AfterFunc(20*time.Millisecond, func() { fired <- struct{}{} })
	timer.Stop()

	select {
	case <-fired:
		t.Fatal("stopped timer fired")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestLoopClosed(t *testing.T) {
	l := NewLoop(1)
	l.Close()

	if err := l.Post(func() {}); !errors.Is(err, ErrLoopClosed) {
		t.Errorf("Post: got %v, want ErrLoopClosed", err)
	}
	if err := l.Call(context.Background(), func() {}); !errors.Is(err, ErrLoopClosed) {
		t.Errorf("Call: got %v, want ErrLoopClosed", err)
	}
	if err := l.Run(context.Background()); err != nil {
		t.Errorf("Run on closed loop: got %v, want nil", err)
	}
}

func TestLoopRecoversPanics(t *testing.T) {
	l := NewLoop(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	_ = l.Post(func() { panic("boom") })

	ran := false
	if err := l.Call(ctx, func() { ran = true }); err != nil {
		t.Fatalf("Call after panic: %v", err)
	}
	if !ran {
		t.Error("loop stopped executing after a panic")
	}
}
