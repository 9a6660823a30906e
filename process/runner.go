// Package process implements supervised building of independent simulations.
package process

import (
	"context"
	"fmt"
	"sync"

	"github.com/yaptide/chipstack/config"
	"github.com/yaptide/chipstack/pkg/stack/job"
)

var log = config.NamedLogger("process")

// ErrBusy is returned by TryRun when all workers are taken.
var ErrBusy = fmt.Errorf("too many jobs pending")

// BuildFunc turns one input into output files.
type BuildFunc func(in job.Input) (job.Output, error)

// Task is one named input of a batch.
type Task struct {
	Name  string
	Input job.Input
}

// Result of one task. Output is empty when Err is set.
type Result struct {
	Name   string
	Output job.Output
	Err    error
}

// Runner limits number of builds running at the same time.
type Runner struct {
	workerTokens chan bool
}

// NewRunner create Runner which is ready to run new jobs.
func NewRunner(workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	runner := &Runner{
		workerTokens: make(chan bool, workers),
	}
	for i := 0; i < workers; i++ {
		runner.workerTokens <- true
	}
	return runner
}

// TryRun builds in if a worker is free, otherwise fails with ErrBusy.
func (r *Runner) TryRun(build BuildFunc, in job.Input) (job.Output, error) {
	select {
	case <-r.workerTokens:
		defer func() { r.workerTokens <- true }()
		return build(in)
	default:
		return job.Output{}, ErrBusy
	}
}

// RunAll builds tasks concurrently and returns results in task order.
// With skipErrors failed tasks are logged and reported in their result,
// otherwise the first failure stops starting new tasks and is returned.
func (r *Runner) RunAll(parent context.Context, build BuildFunc, tasks []Task, skipErrors bool) ([]Result, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	results := make([]Result, len(tasks))
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
	}

	for i, task := range tasks {
		results[i].Name = task.Name
		select {
		case <-ctx.Done():
			results[i].Err = ctx.Err()
			continue
		case <-r.workerTokens:
		}

		wg.Add(1)
		go func(i int, task Task) {
			defer wg.Done()
			defer func() { r.workerTokens <- true }()

			out, err := build(task.Input)
			if err != nil {
				results[i].Err = fmt.Errorf("%s: %w", task.Name, err)
				if skipErrors {
					log.Warnf("skipping %s", results[i].Err.Error())
					return
				}
				fail(results[i].Err)
				return
			}
			results[i].Output = out
			log.Debugf("%s finished", task.Name)
		}(i, task)
	}
	wg.Wait()

	if firstErr != nil {
		return results, firstErr
	}
	return results, parent.Err()
}
