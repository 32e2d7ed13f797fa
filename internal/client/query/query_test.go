package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var projectsKey = Key{Family: "projects"}

// peek returns the cached value regardless of freshness.
func peek[T any](c *Client, key Key) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	e, ok := c.entries[key]
	if !ok || !e.hasData {
		return zero, false
	}
	v, ok := e.data.(T)
	return v, ok
}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestClient(stale time.Duration) (*Client, *clock) {
	clk := &clock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewClient(stale, nil)
	c.now = clk.now
	return c, clk
}

func counter(calls *atomic.Int32, v string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		calls.Add(1)
		return v, nil
	}
}

func TestFetch_ServesFreshFromCache(t *testing.T) {
	c, clk := newTestClient(30 * time.Second)
	ctx := context.Background()
	var calls atomic.Int32

	v, err := Fetch(ctx, c, projectsKey, counter(&calls, "a"))
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	clk.advance(29 * time.Second)
	v, err = Fetch(ctx, c, projectsKey, counter(&calls, "b"))
	require.NoError(t, err)
	assert.Equal(t, "a", v)
	assert.EqualValues(t, 1, calls.Load())

	clk.advance(2 * time.Second)
	v, err = Fetch(ctx, c, projectsKey, counter(&calls, "b"))
	require.NoError(t, err)
	assert.Equal(t, "b", v)
	assert.EqualValues(t, 2, calls.Load())
}

func TestFetch_ZeroStaleTimeAlwaysFetches(t *testing.T) {
	c, _ := newTestClient(0)
	var calls atomic.Int32
	for range 3 {
		_, err := Fetch(context.Background(), c, projectsKey, counter(&calls, "x"))
		require.NoError(t, err)
	}
	assert.EqualValues(t, 3, calls.Load())
}

func TestFetch_KeysAreIndependent(t *testing.T) {
	c, _ := newTestClient(time.Minute)
	ctx := context.Background()
	var calls atomic.Int32

	a, _ := Fetch(ctx, c, Key{Family: "tasks", Scope: "p1"}, counter(&calls, "p1"))
	b, _ := Fetch(ctx, c, Key{Family: "tasks", Scope: "p1", Params: "page=2"}, counter(&calls, "p1-2"))
	assert.Equal(t, "p1", a)
	assert.Equal(t, "p1-2", b)
	assert.EqualValues(t, 2, calls.Load())
}

func TestFetch_CollapsesConcurrentCalls(t *testing.T) {
	c, _ := newTestClient(time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{})

	fn := func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return "shared", nil
	}

	const n = 8
	var wg sync.WaitGroup
	results := make([]string, n)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = Fetch(context.Background(), c, projectsKey, fn)
	}()
	<-started
	assert.True(t, c.State(projectsKey).Loading)

	for i := 1; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Fetch(context.Background(), c, projectsKey, fn)
		}(i)
	}
	// let the followers join the flight
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
	for _, r := range results {
		assert.Equal(t, "shared", r)
	}
	assert.False(t, c.State(projectsKey).Loading)
}

func TestFetch_CancelledCallerDiscardsResult(t *testing.T) {
	c, _ := newTestClient(time.Minute)
	release := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := Fetch(ctx, c, projectsKey, func(fctx context.Context) (string, error) {
			<-release
			// the shared fetch is detached from the caller
			return "late", fctx.Err()
		})
		done <- err
	}()

	require.Eventually(t, func() bool { return c.State(projectsKey).Loading }, time.Second, time.Millisecond)
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	close(release)
	require.Eventually(t, func() bool { return !c.State(projectsKey).Loading }, time.Second, time.Millisecond)

	v, ok := peek[string](c, projectsKey)
	require.True(t, ok)
	assert.Equal(t, "late", v)
}

func TestFetch_ErrorsAreNotCachedAsFresh(t *testing.T) {
	c, _ := newTestClient(time.Minute)
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := Fetch(ctx, c, projectsKey, func(context.Context) (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)
	assert.ErrorIs(t, c.State(projectsKey).Err, boom)

	v, err := Fetch(ctx, c, projectsKey, func(context.Context) (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.NoError(t, c.State(projectsKey).Err)
}

func TestFetch_FailureKeepsPreviousData(t *testing.T) {
	c, clk := newTestClient(time.Second)
	ctx := context.Background()

	_, err := Fetch(ctx, c, projectsKey, func(context.Context) (string, error) { return "old", nil })
	require.NoError(t, err)
	clk.advance(time.Minute)

	_, err = Fetch(ctx, c, projectsKey, func(context.Context) (string, error) { return "", errors.New("down") })
	require.Error(t, err)

	v, ok := peek[string](c, projectsKey)
	require.True(t, ok)
	assert.Equal(t, "old", v)
}

func TestInvalidate_DropsFamily(t *testing.T) {
	c, _ := newTestClient(time.Hour)
	ctx := context.Background()
	var calls atomic.Int32

	_, _ = Fetch(ctx, c, projectsKey, counter(&calls, "p"))
	_, _ = Fetch(ctx, c, Key{Family: "project", Scope: "1"}, counter(&calls, "p1"))
	_, _ = Fetch(ctx, c, Key{Family: "tasks"}, counter(&calls, "t"))
	require.EqualValues(t, 3, calls.Load())

	c.Invalidate("projects", "project")

	_, ok := peek[string](c, projectsKey)
	assert.False(t, ok)
	_, ok = peek[string](c, Key{Family: "tasks"})
	assert.True(t, ok)

	_, _ = Fetch(ctx, c, projectsKey, counter(&calls, "p"))
	_, _ = Fetch(ctx, c, Key{Family: "tasks"}, counter(&calls, "t"))
	assert.EqualValues(t, 4, calls.Load())
}

func TestInvalidate_InFlightResultStoredStale(t *testing.T) {
	c, _ := newTestClient(time.Hour)
	ctx := context.Background()
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_, _ = Fetch(ctx, c, projectsKey, func(context.Context) (string, error) {
			<-release
			return "before-write", nil
		})
	}()
	require.Eventually(t, func() bool { return c.State(projectsKey).Loading }, time.Second, time.Millisecond)

	c.Invalidate("projects")
	close(release)
	<-done

	var calls atomic.Int32
	v, err := Fetch(ctx, c, projectsKey, counter(&calls, "after-write"))
	require.NoError(t, err)
	assert.Equal(t, "after-write", v)
	assert.EqualValues(t, 1, calls.Load())
}

func TestClear(t *testing.T) {
	c, _ := newTestClient(time.Hour)
	_, _ = Fetch(context.Background(), c, projectsKey, func(context.Context) (string, error) { return "x", nil })
	c.Clear()
	_, ok := peek[string](c, projectsKey)
	assert.False(t, ok)
	assert.False(t, c.State(projectsKey).HasData)
}

func TestClear_InFlightResultDropped(t *testing.T) {
	c, _ := newTestClient(time.Hour)
	ctx := context.Background()
	release := make(chan struct{})
	done := make(chan string)

	go func() {
		v, _ := Fetch(ctx, c, projectsKey, func(context.Context) (string, error) {
			<-release
			return "previous-user", nil
		})
		done <- v
	}()
	require.Eventually(t, func() bool { return c.State(projectsKey).Loading }, time.Second, time.Millisecond)

	c.Clear()

	// a fetch issued after the clear must not join the older flight
	var calls atomic.Int32
	v, err := Fetch(ctx, c, projectsKey, counter(&calls, "current-user"))
	require.NoError(t, err)
	assert.Equal(t, "current-user", v)
	assert.EqualValues(t, 1, calls.Load())

	close(release)
	assert.Equal(t, "previous-user", <-done, "the original caller still gets its answer")

	v, ok := peek[string](c, projectsKey)
	require.True(t, ok)
	assert.Equal(t, "current-user", v)
	assert.False(t, c.State(projectsKey).Loading)
}

func TestClear_InFlightResultNotStored(t *testing.T) {
	c, _ := newTestClient(time.Hour)
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_, _ = Fetch(context.Background(), c, projectsKey, func(context.Context) (string, error) {
			<-release
			return "previous-user", nil
		})
	}()
	require.Eventually(t, func() bool { return c.State(projectsKey).Loading }, time.Second, time.Millisecond)

	c.Clear()
	close(release)
	<-done

	_, ok := peek[string](c, projectsKey)
	assert.False(t, ok)
	assert.Equal(t, State{}, c.State(projectsKey))
}

type recordingNotifier struct {
	successes []string
	failures  []string
}

func (r *recordingNotifier) Success(msg string)        { r.successes = append(r.successes, msg) }
func (r *recordingNotifier) Error(msg string, _ error) { r.failures = append(r.failures, msg) }

func TestMutate(t *testing.T) {
	c, _ := newTestClient(time.Hour)
	ctx := context.Background()
	n := &recordingNotifier{}
	m := Mutation{Invalidates: []string{"projects"}, Success: "Project created successfully", Failure: "Failed to create project"}

	_, _ = Fetch(ctx, c, projectsKey, func(context.Context) (string, error) { return "x", nil })

	_, err := Mutate(ctx, c, n, m, func(context.Context) (int, error) { return 0, errors.New("nope") })
	require.Error(t, err)
	_, ok := peek[string](c, projectsKey)
	assert.True(t, ok, "failed writes keep the cache")

	v, err := Mutate(ctx, c, n, m, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	_, ok = peek[string](c, projectsKey)
	assert.False(t, ok)

	assert.Equal(t, []string{"Project created successfully"}, n.successes)
	assert.Equal(t, []string{"Failed to create project"}, n.failures)

	_, err = Mutate(ctx, c, nil, m, func(context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)
}
