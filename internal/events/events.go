// Package events defines the observer (event sink) abstraction: a small,
// fixed set of notification methods the dispatcher and command surface
// call on every state transition, per spec.md §6/§9. Tests substitute a
// RecordingSink to assert traces instead of wiring a real logger.
package events

import "github.com/google/uuid"

// Sink receives structured notifications of state transitions. All
// methods must return promptly; the dispatcher calls them synchronously
// from its single foreground goroutine.
type Sink interface {
	PrinterDefined(id int, name string, typeName string)
	PrinterStatus(id int, name string, status string)

	JobCreated(id int, corr uuid.UUID, sourceType string)
	JobStarted(id int, corr uuid.UUID, printerName string, pid int, argv0 []string)
	JobStatus(id int, corr uuid.UUID, status string)
	JobFinished(id int, corr uuid.UUID, exitCode int)
	JobAborted(id int, corr uuid.UUID, exitOrSignal int)
	JobDeleted(id int, corr uuid.UUID)

	CmdOK(verb string)
	CmdError(verb string, msg string)
}

// Notification is the recorded shape of a single Sink call, used by
// RecordingSink for assertions in tests.
type Notification struct {
	Kind string
	Job  int
	Corr uuid.UUID
	Args map[string]any
}

// RecordingSink is a Sink that appends every call to a slice instead of
// emitting it anywhere, for test assertions against spec.md §8's
// testable properties.
type RecordingSink struct {
	Notifications []Notification
}

func NewRecordingSink() *RecordingSink { return &RecordingSink{} }

func (r *RecordingSink) record(kind string, job int, corr uuid.UUID, args map[string]any) {
	r.Notifications = append(r.Notifications, Notification{Kind: kind, Job: job, Corr: corr, Args: args})
}

func (r *RecordingSink) PrinterDefined(id int, name string, typeName string) {
	r.record("printer-defined", -1, uuid.Nil, map[string]any{"id": id, "name": name, "type": typeName})
}

func (r *RecordingSink) PrinterStatus(id int, name string, status string) {
	r.record("printer-status", -1, uuid.Nil, map[string]any{"id": id, "name": name, "status": status})
}

func (r *RecordingSink) JobCreated(id int, corr uuid.UUID, sourceType string) {
	r.record("job-created", id, corr, map[string]any{"source_type": sourceType})
}

func (r *RecordingSink) JobStarted(id int, corr uuid.UUID, printerName string, pid int, argv0 []string) {
	r.record("job-started", id, corr, map[string]any{"printer": printerName, "pid": pid, "argv0": argv0})
}

func (r *RecordingSink) JobStatus(id int, corr uuid.UUID, status string) {
	r.record("job-status", id, corr, map[string]any{"status": status})
}

func (r *RecordingSink) JobFinished(id int, corr uuid.UUID, exitCode int) {
	r.record("job-finished", id, corr, map[string]any{"exit": exitCode})
}

func (r *RecordingSink) JobAborted(id int, corr uuid.UUID, exitOrSignal int) {
	r.record("job-aborted", id, corr, map[string]any{"exit_or_signal": exitOrSignal})
}

func (r *RecordingSink) JobDeleted(id int, corr uuid.UUID) {
	r.record("job-deleted", id, corr, nil)
}

func (r *RecordingSink) CmdOK(verb string) {
	r.record("cmd-ok", -1, uuid.Nil, map[string]any{"verb": verb})
}

func (r *RecordingSink) CmdError(verb string, msg string) {
	r.record("cmd-error", -1, uuid.Nil, map[string]any{"verb": verb, "msg": msg})
}
