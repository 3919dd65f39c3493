package events

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ZapSink is the production Sink: every notification becomes one
// structured zap log line, the same shape the teacher's ProcessManager
// uses for lifecycle logging (zap.Int/zap.String fields, never
// fmt.Sprintf).
type ZapSink struct {
	log *zap.Logger
}

func NewZapSink(log *zap.Logger) *ZapSink {
	return &ZapSink{log: log.Named("events")}
}

func (z *ZapSink) PrinterDefined(id int, name string, typeName string) {
	z.log.Info("printer defined", zap.Int("printer_id", id), zap.String("name", name), zap.String("type", typeName))
}

func (z *ZapSink) PrinterStatus(id int, name string, status string) {
	z.log.Info("printer status", zap.Int("printer_id", id), zap.String("name", name), zap.String("status", status))
}

func (z *ZapSink) JobCreated(id int, corr uuid.UUID, sourceType string) {
	z.log.Info("job created", zap.Int("job_id", id), zap.String("corr", corr.String()), zap.String("source_type", sourceType))
}

func (z *ZapSink) JobStarted(id int, corr uuid.UUID, printerName string, pid int, argv0 []string) {
	z.log.Info("job started",
		zap.Int("job_id", id), zap.String("corr", corr.String()),
		zap.String("printer", printerName), zap.Int("pid", pid), zap.Strings("stages", argv0))
}

func (z *ZapSink) JobStatus(id int, corr uuid.UUID, status string) {
	z.log.Info("job status", zap.Int("job_id", id), zap.String("corr", corr.String()), zap.String("status", status))
}

func (z *ZapSink) JobFinished(id int, corr uuid.UUID, exitCode int) {
	z.log.Info("job finished", zap.Int("job_id", id), zap.String("corr", corr.String()), zap.Int("exit", exitCode))
}

func (z *ZapSink) JobAborted(id int, corr uuid.UUID, exitOrSignal int) {
	z.log.Warn("job aborted", zap.Int("job_id", id), zap.String("corr", corr.String()), zap.Int("exit_or_signal", exitOrSignal))
}

func (z *ZapSink) JobDeleted(id int, corr uuid.UUID) {
	z.log.Debug("job deleted", zap.Int("job_id", id), zap.String("corr", corr.String()))
}

func (z *ZapSink) CmdOK(verb string) {
	z.log.Debug("command ok", zap.String("verb", verb))
}

func (z *ZapSink) CmdError(verb string, msg string) {
	z.log.Info("command error", zap.String("verb", verb), zap.String("msg", msg))
}
