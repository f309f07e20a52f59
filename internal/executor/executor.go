// Package executor drives a parsed command stream to completion: it
// renders templates, runs synchronous processes inline, manages a pool of
// deferred processes behind a WAIT barrier, and enforces the per-command
// error policy.
package executor

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"sync"

	"github.com/go-go-golems/taskshell/internal/logx"
	"github.com/go-go-golems/taskshell/internal/procenv"
	"github.com/go-go-golems/taskshell/internal/scriptparser"
	"github.com/go-go-golems/taskshell/internal/taskerr"
	"github.com/go-go-golems/taskshell/internal/templateengine"
)

// Executor drives one script's command stream against a ProcessEnvironment,
// reporting progress through a Logger.
type Executor struct {
	Env    *procenv.ProcessEnvironment
	Logger logx.Logger
}

// New returns an Executor bound to env and logger.
func New(env *procenv.ProcessEnvironment, logger logx.Logger) *Executor {
	return &Executor{Env: env, Logger: logger}
}

// deferredJob tracks one started deferred process awaiting drain.
type deferredJob struct {
	spec    *scriptparser.RunSpec
	cmd     *exec.Cmd
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	waitErr error
}

// wait blocks until the process exits, recording its error.
func (j *deferredJob) wait() {
	j.waitErr = j.cmd.Wait()
}

// Execute renders the environment-level templates, then runs commands in
// order, draining any outstanding deferred processes unconditionally
// before returning, per the finally-drain requirement.
func (e *Executor) Execute(ctx context.Context, scriptName string, commands []scriptparser.Command) error {
	e.Logger.StartScript(scriptName)

	var queue []*deferredJob
	// Deferred so the queue is still drained if run panics; after the
	// normal drain below the queue is empty and this call does nothing.
	defer e.drain(&queue)

	runErr := e.run(ctx, commands, &queue)

	drainErr := e.drain(&queue)
	if runErr == nil {
		runErr = drainErr
	}

	e.Logger.FinishScript(scriptName, runErr)
	return runErr
}

func (e *Executor) run(ctx context.Context, commands []scriptparser.Command, queue *[]*deferredJob) error {
	for _, tmpl := range e.Env.GetTemplates() {
		if err := e.renderTemplate(ctx, tmpl.Source, tmpl.Destination); err != nil {
			return err
		}
	}

	for _, cmd := range commands {
		switch cmd.Kind {
		case scriptparser.KindSynchronousProcess:
			if err := e.runSynchronous(ctx, cmd.Sync); err != nil {
				return err
			}
		case scriptparser.KindDeferredProcess:
			job, err := e.startDeferred(ctx, cmd.Deferred)
			if err != nil {
				return err
			}
			*queue = append(*queue, job)
		case scriptparser.KindTemplate:
			if err := e.renderTemplate(ctx, cmd.Template.Source, cmd.Template.Destination); err != nil {
				return err
			}
		case scriptparser.KindWait:
			e.Logger.LogWait()
			if err := e.drain(queue); err != nil {
				return err
			}
		case scriptparser.KindBash:
			if err := e.runBash(ctx, cmd.Bash.Path); err != nil {
				return err
			}
		default:
			return &taskerr.UnknownCommandError{Kind: "unrecognised"}
		}
	}
	return nil
}

// runSynchronous renders spec's shell line, runs it to completion, and
// turns a non-zero exit into a *taskerr.ExecutionError unless IgnoreError
// is set.
func (e *Executor) runSynchronous(ctx context.Context, spec *scriptparser.RunSpec) error {
	line, err := templateengine.Render(ctx, spec.Line, e.Env.GetAllValues())
	if err != nil {
		return err
	}

	e.Logger.LogStart(line, false)
	cmd := e.Env.CreateProcess(ctx, line, spec.TTY)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	runErr := cmd.Run()
	if runErr == nil || spec.IgnoreError {
		e.Logger.LogSuccess(line, false)
		return nil
	}

	execErr := &taskerr.ExecutionError{Line: line, ExitCode: exitCodeOf(runErr), Deferred: false}
	e.Logger.LogFailure(line, false, execErr)
	return execErr
}

// startDeferred renders spec's shell line and starts it without waiting,
// buffering its output for replay at drain time.
func (e *Executor) startDeferred(ctx context.Context, spec *scriptparser.RunSpec) (*deferredJob, error) {
	line, err := templateengine.Render(ctx, spec.Line, e.Env.GetAllValues())
	if err != nil {
		return nil, err
	}

	renderedSpec := &scriptparser.RunSpec{Line: line, IgnoreError: spec.IgnoreError, TTY: spec.TTY}
	cmd := e.Env.CreateProcess(ctx, line, spec.TTY)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	job := &deferredJob{spec: renderedSpec, cmd: cmd, stdout: &stdout, stderr: &stderr}

	if err := cmd.Start(); err != nil {
		return nil, &taskerr.ResolutionError{Name: line, Err: err}
	}
	return job, nil
}

// drain waits for every job currently queued, replays its buffered output
// through the Logger in insertion order, then clears the queue. Every job
// is awaited regardless of earlier failures; the first non-ignored
// failure, if any, is returned once all jobs have been collected.
func (e *Executor) drain(queue *[]*deferredJob) error {
	jobs := *queue
	*queue = nil
	if len(jobs) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for _, j := range jobs {
		j := j
		go func() {
			defer wg.Done()
			j.wait()
		}()
	}
	wg.Wait()

	var firstErr error
	for _, j := range jobs {
		if j.stdout.Len() > 0 {
			e.Logger.Log(j.stdout.String(), true)
		}
		if j.stderr.Len() > 0 {
			e.Logger.Log(j.stderr.String(), true)
		}

		if j.waitErr == nil || j.spec.IgnoreError {
			e.Logger.LogSuccess(j.spec.Line, true)
			continue
		}
		execErr := &taskerr.ExecutionError{Line: j.spec.Line, ExitCode: exitCodeOf(j.waitErr), Deferred: true}
		e.Logger.LogFailure(j.spec.Line, true, execErr)
		if firstErr == nil {
			firstErr = execErr
		}
	}
	return firstErr
}
