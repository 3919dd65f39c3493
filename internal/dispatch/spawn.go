//go:build linux

package dispatch

import (
	"encoding/json"
	"os"
	"os/exec"
	"syscall"

	"go.uber.org/zap"

	"imprimer/internal/spool"
	"imprimer/internal/typegraph"
)

// spawn is the spawner (spec.md §4.3). On success the job becomes
// `running` and the printer becomes `busy`; on failure both are left
// unchanged and the job is retried on the next scanner tick.
func (s *Supervisor) spawn(job *spool.Job, printer *spool.Printer, path []typegraph.Edge) bool {
	printerName := s.registry.Name(printer.Type)

	out, err := s.printers.Connect(printer.Name, printerName)
	if err != nil {
		s.log.Warn("printer open failed; job remains created",
			zap.Int("job_id", job.ID), zap.String("printer", printer.Name), zap.Error(err))
		return false
	}

	spec := pipelineSpec{InputFile: job.File}
	for _, e := range path {
		spec.Stages = append(spec.Stages, stageSpec{Argv: e.Argv})
	}
	payload, err := json.Marshal(spec)
	if err != nil {
		_ = out.Close()
		s.log.Error("pipeline spec encode failed", zap.Int("job_id", job.ID), zap.Error(err))
		return false
	}

	self, err := os.Executable()
	if err != nil {
		_ = out.Close()
		s.log.Warn("resolve self binary failed; job remains created", zap.Error(err))
		return false
	}

	leader := exec.Command(self, LeaderArg)
	leader.Env = append(os.Environ(), LeaderEnvVar+"="+string(payload))
	leader.ExtraFiles = []*os.File{out} // fd 3 in the child: the printer sink
	leader.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true, // new process group, id == leader's own pid (§4.3.2)
	}
	leader.Stdout = nil
	leader.Stderr = os.Stderr

	if err := leader.Start(); err != nil {
		_ = out.Close()
		s.log.Warn("fork leader failed; job remains created", zap.Int("job_id", job.ID), zap.Error(err))
		return false
	}

	pid := leader.Process.Pid

	// Close the parent's copy of the printer descriptor immediately
	// after the fork (spec.md §4.3.2, §5 shared-resource discipline).
	_ = out.Close()

	job.Status = spool.JobRunning
	job.Printer = printer.ID
	job.Path = path
	job.PathChosen = true
	printer.Status = spool.PrinterBusy

	s.tables.Pgid[job.ID] = pid
	s.pidToJob[pid] = job.ID

	s.sink.JobStatus(job.ID, job.Correlation, job.Status.String())
	s.sink.PrinterStatus(printer.ID, printer.Name, printer.Status.String())
	s.sink.JobStarted(job.ID, job.Correlation, printer.Name, pid, spec.StageNames())

	return true
}
