// Package logx defines the Logger the process executor reports through,
// and two implementations: a zerolog-backed structured logger and a
// lipgloss-styled console logger for interactive terminals.
package logx

// Logger receives progress events from a running script. Implementations
// must be safe for the executor's single-threaded dispatch loop calling
// from the drain step, where deferred-process log lines are replayed after
// the fact rather than interleaved live.
type Logger interface {
	StartScript(name string)
	FinishScript(name string, err error)

	LogStart(line string, deferred bool)
	Log(line string, deferred bool)
	LogWait()
	LogSuccess(line string, deferred bool)
	LogFailure(line string, deferred bool, err error)

	Warn(format string, args ...interface{})
}
