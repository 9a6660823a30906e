package process

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaptide/chipstack/pkg/stack/job"
)

func named(names ...string) []Task {
	tasks := []Task{}
	for _, name := range names {
		in := job.Input{}
		in.Parameters.Name = name
		tasks = append(tasks, Task{Name: name, Input: in})
	}
	return tasks
}

func echo(in job.Input) (job.Output, error) {
	if in.Parameters.Name == "broken" {
		return job.Output{}, fmt.Errorf("invalid parameters")
	}
	return job.Output{Name: in.Parameters.Name}, nil
}

func TestRunAll(t *testing.T) {
	t.Run("Successful Run", func(t *testing.T) {
		runner := NewRunner(2)
		results, err := runner.RunAll(context.Background(), echo, named("a", "b", "c"), false)
		require.NoError(t, err)
		require.Len(t, results, 3)
		for i, name := range []string{"a", "b", "c"} {
			assert.Equal(t, name, results[i].Name)
			assert.Equal(t, name, results[i].Output.Name)
			assert.NoError(t, results[i].Err)
		}
	})

	t.Run("SkipErrors", func(t *testing.T) {
		runner := NewRunner(2)
		results, err := runner.RunAll(context.Background(), echo, named("a", "broken", "c"), true)
		require.NoError(t, err)
		assert.NoError(t, results[0].Err)
		assert.Error(t, results[1].Err)
		assert.Equal(t, "c", results[2].Output.Name)
	})

	t.Run("FirstErrorAborts", func(t *testing.T) {
		runner := NewRunner(1)
		results, err := runner.RunAll(context.Background(), echo, named("broken", "a", "b"), false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken")
		assert.Error(t, results[0].Err)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		runner := NewRunner(1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		results, err := runner.RunAll(ctx, echo, named("a"), false)
		assert.Equal(t, context.Canceled, err)
		assert.Len(t, results, 1)
	})
}

func TestRunAllLimitsWorkers(t *testing.T) {
	var running, peak int32
	build := func(in job.Input) (job.Output, error) {
		now := atomic.AddInt32(&running, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if now <= old || atomic.CompareAndSwapInt32(&peak, old, now) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return job.Output{}, nil
	}

	runner := NewRunner(2)
	_, err := runner.RunAll(context.Background(), build, named("a", "b", "c", "d", "e"), false)
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestTryRun(t *testing.T) {
	release := make(chan bool)
	started := make(chan bool, 2)
	build := func(in job.Input) (job.Output, error) {
		started <- true
		<-release
		return job.Output{Name: in.Parameters.Name}, nil
	}
	runner := NewRunner(1)

	done := make(chan job.Output)
	go func() {
		out, _ := runner.TryRun(build, job.Input{})
		done <- out
	}()
	<-started

	_, err := runner.TryRun(build, job.Input{})
	assert.Equal(t, ErrBusy, err)
	assert.EqualError(t, err, "too many jobs pending")

	close(release)
	<-done
	_, err = runner.TryRun(build, job.Input{})
	assert.NoError(t, err)
}
