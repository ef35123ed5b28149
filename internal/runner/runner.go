// Package runner executes the named store tasks in catalogue order and
// records one outcome per task. A failing task is logged and the run moves
// on to the next one.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrUnknownTask = errors.New("unknown task")

// Func performs one task and returns a loggable result.
type Func func(ctx context.Context) (interface{}, error)

// Task is one entry of the catalogue.
type Task struct {
	Name        string `json:"name"`
	Alias       string `json:"alias"`
	Collection  string `json:"collection"`
	Description string `json:"description"`
	Run         Func   `json:"-"`
}

type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

type Outcome struct {
	Task     string        `json:"task"`
	Status   Status        `json:"status"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
	Result   interface{}   `json:"result,omitempty"`
}

// Report is the record of one run.
type Report struct {
	RunID    string    `json:"run_id"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
	Outcomes []Outcome `json:"outcomes"`
}

// Failed counts the failed outcomes.
func (r *Report) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			n++
		}
	}
	return n
}

type Runner struct {
	tasks   []Task
	timeout time.Duration
}

// New builds a runner over tasks. A zero timeout leaves task contexts
// without a deadline.
func New(tasks []Task, timeout time.Duration) *Runner {
	return &Runner{tasks: tasks, timeout: timeout}
}

func (r *Runner) Tasks() []Task {
	return r.tasks
}

// Lookup finds a task by name or alias.
func (r *Runner) Lookup(name string) (Task, error) {
	for _, t := range r.tasks {
		if t.Name == name || (t.Alias != "" && t.Alias == name) {
			return t, nil
		}
	}
	return Task{}, fmt.Errorf("%w: %s", ErrUnknownTask, name)
}

// RunOne runs a single task by name or alias.
func (r *Runner) RunOne(ctx context.Context, name string) (Outcome, error) {
	t, err := r.Lookup(name)
	if err != nil {
		return Outcome{}, err
	}
	return r.execute(ctx, log.Logger, t), nil
}

// Run executes the named tasks in catalogue order, each at most once. With
// no names every task runs. Unknown names fail before anything runs.
func (r *Runner) Run(ctx context.Context, names ...string) (*Report, error) {
	selected, err := r.selectTasks(names)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:    uuid.NewString(),
		Started:  time.Now(),
		Outcomes: make([]Outcome, 0, len(selected)),
	}
	logger := log.With().Str("run_id", report.RunID).Logger()
	logger.Info().Int("tasks", len(selected)).Msg("run started")

	for _, t := range selected {
		if ctx.Err() != nil {
			report.Outcomes = append(report.Outcomes, Outcome{Task: t.Name, Status: StatusFailed, Error: ctx.Err().Error()})
			continue
		}
		report.Outcomes = append(report.Outcomes, r.execute(ctx, logger, t))
	}

	report.Finished = time.Now()
	logger.Info().
		Int("failed", report.Failed()).
		Dur("elapsed", report.Finished.Sub(report.Started)).
		Msg("run finished")
	return report, nil
}

func (r *Runner) selectTasks(names []string) ([]Task, error) {
	if len(names) == 0 {
		return r.tasks, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		t, err := r.Lookup(n)
		if err != nil {
			return nil, err
		}
		wanted[t.Name] = true
	}

	selected := make([]Task, 0, len(wanted))
	for _, t := range r.tasks {
		if wanted[t.Name] {
			selected = append(selected, t)
		}
	}
	return selected, nil
}

// execute runs t, recovering a panic into a failed outcome.
func (r *Runner) execute(ctx context.Context, logger zerolog.Logger, t Task) (out Outcome) {
	logger = logger.With().Str("task", t.Name).Logger()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	out.Task = t.Name
	defer func() {
		if p := recover(); p != nil {
			out.Status = StatusFailed
			out.Error = fmt.Sprintf("panic: %v", p)
			out.Result = nil
		}
		out.Duration = time.Since(start)
		if out.Status == StatusFailed {
			logger.Error().Str("error", out.Error).Dur("duration", out.Duration).Msg("task failed")
			return
		}
		logger.Info().Interface("result", out.Result).Dur("duration", out.Duration).Msg("task completed")
	}()

	result, err := t.Run(ctx)
	if err != nil {
		out.Status = StatusFailed
		out.Error = err.Error()
		return out
	}
	out.Status = StatusOK
	out.Result = result
	return out
}
