package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Job struct {
	Name string
	Run  func(context.Context) error
}

type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Pool runs jobs on a fixed number of workers fed from one queue.
type Pool struct {
	workers int
	log     logrus.FieldLogger
}

func NewPool(workers int, log logrus.FieldLogger) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers, log: log}
}

type queued struct {
	index int
	job   Job
}

// Run executes every job and returns the results in input order. Jobs still
// queued when ctx is cancelled are not started; their result carries the
// context error.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	queue := make(chan queued)

	var wg sync.WaitGroup
	for w := 0; w < p.workers && w < len(jobs); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for q := range queue {
				results[q.index] = p.runJob(ctx, q.job)
			}
		}()
	}

	for i, job := range jobs {
		if ctx.Err() != nil {
			results[i] = Result{Name: job.Name, Err: ctx.Err()}
			continue
		}
		queue <- queued{index: i, job: job}
	}
	close(queue)
	wg.Wait()
	return results
}

func (p *Pool) runJob(ctx context.Context, j Job) Result {
	if err := ctx.Err(); err != nil {
		return Result{Name: j.Name, Err: err}
	}
	start := time.Now()
	err := j.Run(ctx)
	res := Result{Name: j.Name, Err: err, Duration: time.Since(start)}
	entry := p.log.WithFields(logrus.Fields{"job": j.Name, "durationMs": res.Duration.Milliseconds()})
	if err != nil {
		entry.WithError(err).Warn("job run failed")
	} else {
		entry.Debug("job run completed")
	}
	return res
}
