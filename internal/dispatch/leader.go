//go:build linux

package dispatch

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

// RunLeader is the pipeline leader's entire lifetime (spec.md §4.3.3).
// cmd/imprimer calls this instead of its normal cobra entrypoint when
// invoked as `imprimer __leader`, re-exec'd by the supervisor's
// spawner. It never returns: it calls os.Exit with the pipeline's
// aggregate exit status.
//
// fd 3 is the printer sink, inherited via ExtraFiles by the spawner.
// The pipeline spec arrives via the IMPRIMER_PIPELINE env var.
func RunLeader() {
	os.Exit(runLeader())
}

func runLeader() int {
	// Unblock termination and broken-pipe signals so a cancelled
	// pipeline dies cleanly even if the parent process had them
	// masked (spec.md §4.3.3a). The Go runtime does not mask signals
	// for child processes by default, so this is a defensive no-op
	// that documents the intent rather than a required step.
	signal.Reset(syscall.SIGTERM, syscall.SIGPIPE)

	var spec pipelineSpec
	if err := json.Unmarshal([]byte(os.Getenv(LeaderEnvVar)), &spec); err != nil {
		fmt.Fprintln(os.Stderr, "imprimer leader: decode pipeline spec:", err)
		return 1
	}

	printerFd := os.NewFile(3, "printer")
	if printerFd == nil {
		fmt.Fprintln(os.Stderr, "imprimer leader: missing printer descriptor")
		return 1
	}
	defer printerFd.Close()
	// The spawner's ExtraFiles necessarily cleared CLOEXEC on this fd so
	// it would survive the leader's own re-exec; set it back now so it
	// does not also leak into every non-terminal stage's child (spec.md
	// §5 shared-resource discipline). exec.Cmd.Stdout still dups it onto
	// fd 1 for the terminal stage regardless of this flag.
	syscall.CloseOnExec(int(printerFd.Fd()))

	inputFile, err := os.Open(spec.InputFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "imprimer leader: open input:", err)
		return 1
	}

	if len(spec.Stages) == 0 {
		defer inputFile.Close()
		return runNoConversion(inputFile, printerFd)
	}
	// runPipeline closes each stage's stdin copy (including the
	// original input file) once it has been duped into that stage's
	// child.
	return runPipeline(inputFile, printerFd, spec.Stages)
}

// runNoConversion spawns a single byte-copy child (spec.md §4.3.3b):
// its stdin is the input file, its stdout is the printer descriptor.
func runNoConversion(input, printer *os.File) int {
	cmd := exec.Command(noConversionSentinel)
	cmd.Stdin = input
	cmd.Stdout = printer
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return exitCodeOf(err)
	}
	return 0
}

// runPipeline wires a fresh pipe between each consecutive stage and
// runs the last stage's stdout to the printer descriptor (spec.md
// §4.3.3c). All stages are started before any is waited on, and all
// are waited on concurrently via errgroup, matching the teacher's
// single-cmd.Wait() pattern generalized to N stages.
func runPipeline(input, printer *os.File, stages []stageSpec) int {
	cmds := make([]*exec.Cmd, len(stages))

	prevRead := input
	for i, st := range stages {
		cmd := exec.Command(st.Argv[0], st.Argv[1:]...)
		cmd.Stdin = prevRead
		cmd.Stderr = os.Stderr

		var nextRead, writeEnd *os.File
		if last := i == len(stages)-1; last {
			cmd.Stdout = printer
		} else {
			r, w, err := os.Pipe()
			if err != nil {
				fmt.Fprintln(os.Stderr, "imprimer leader: pipe:", err)
				return 1
			}
			cmd.Stdout = w
			nextRead, writeEnd = r, w
		}

		if err := cmd.Start(); err != nil {
			fmt.Fprintln(os.Stderr, "imprimer leader: start stage:", st.Argv[0], err)
			return 1
		}

		// Both ends the leader opened for this stage were duped into
		// its child at Start(); the leader's own copies are no longer
		// needed (spec.md §5 shared-resource discipline).
		prevRead.Close()
		if writeEnd != nil {
			writeEnd.Close()
		}

		cmds[i] = cmd
		prevRead = nextRead
	}

	g := new(errgroup.Group)
	for _, cmd := range cmds {
		cmd := cmd
		g.Go(cmd.Wait)
	}

	if err := g.Wait(); err != nil {
		return exitCodeOf(err)
	}
	return 0
}

// exitCodeOf extracts a stage's propagated exit status: its exit code
// if it exited non-zero, or its signal number if it was killed by a
// signal (spec.md §4.3.3d).
func exitCodeOf(err error) int {
	var exitErr *exec.ExitError
	if !asExitError(err, &exitErr) {
		return 1
	}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return int(ws.Signal())
	}
	return exitErr.ExitCode()
}

func asExitError(err error, target **exec.ExitError) bool {
	if ee, ok := err.(*exec.ExitError); ok {
		*target = ee
		return true
	}
	return false
}
