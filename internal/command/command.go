// Package command implements the operator command surface: a minimal
// tokenizer and a verb-dispatch table wired to the dispatcher and the
// conversion registry (spec.md §6, §7). Command errors are reported via
// cmd-error and never touch supervisor state; successful verbs report
// cmd-ok.
package command

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"imprimer/internal/dispatch"
	"imprimer/internal/events"
	"imprimer/internal/spool"
)

// Dispatcher tokenizes and executes operator command lines against a
// dispatch.Supervisor, generalizing the teacher's HTTP handler-table
// pattern (internal/api routes) to a line-oriented verb table.
type Dispatcher struct {
	sup  *dispatch.Supervisor
	sink events.Sink
	out  io.Writer
}

// New wires a Dispatcher. sink is the same events.Sink passed to the
// Supervisor: the command surface and the dispatcher share one
// observer, as spec.md §6's fixed notification set assumes.
func New(sup *dispatch.Supervisor, sink events.Sink, out io.Writer) *Dispatcher {
	return &Dispatcher{sup: sup, sink: sink, out: out}
}

// Quit is the sentinel error Dispatch returns from the `quit` verb, so
// the caller's command loop can distinguish "stop reading input" from
// any other outcome without a separate bool return.
var Quit = fmt.Errorf("quit")

// Dispatch tokenizes and executes a single command line. A blank line
// is silently ignored. Unknown verbs and argument errors are reported
// via cmd-error and return nil (the loop keeps reading); `quit` returns
// Quit.
func (d *Dispatcher) Dispatch(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	verb, args := fields[0], fields[1:]

	handler, ok := verbs[verb]
	if !ok {
		d.sink.CmdError(verb, "unknown command")
		return nil
	}

	if err := handler(d, args); err != nil {
		if err == Quit {
			return Quit
		}
		d.sink.CmdError(verb, err.Error())
		return nil
	}
	d.sink.CmdOK(verb)
	return nil
}

type handlerFunc func(d *Dispatcher, args []string) error

var verbs = map[string]handlerFunc{
	"help":       (*Dispatcher).cmdHelp,
	"quit":       (*Dispatcher).cmdQuit,
	"type":       (*Dispatcher).cmdType,
	"printer":    (*Dispatcher).cmdPrinter,
	"conversion": (*Dispatcher).cmdConversion,
	"printers":   (*Dispatcher).cmdPrinters,
	"jobs":       (*Dispatcher).cmdJobs,
	"print":      (*Dispatcher).cmdPrint,
	"cancel":     (*Dispatcher).cmdCancel,
	"pause":      (*Dispatcher).cmdPause,
	"resume":     (*Dispatcher).cmdResume,
	"disable":    (*Dispatcher).cmdDisable,
	"enable":     (*Dispatcher).cmdEnable,
}

func (d *Dispatcher) cmdHelp(args []string) error {
	fmt.Fprintln(d.out, "commands: help quit type printer conversion printers jobs print cancel pause resume disable enable")
	return nil
}

func (d *Dispatcher) cmdQuit(args []string) error {
	return Quit
}

func (d *Dispatcher) cmdType(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: type T")
	}
	_, err := d.sup.Registry().DefineType(args[0])
	return err
}

func (d *Dispatcher) cmdPrinter(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: printer N T")
	}
	_, err := d.sup.AddPrinter(args[0], args[1])
	return err
}

func (d *Dispatcher) cmdConversion(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: conversion T1 T2 cmd [arg...]")
	}
	from, ok := d.sup.Registry().FindType(args[0])
	if !ok {
		return fmt.Errorf("unknown type %q", args[0])
	}
	to, ok := d.sup.Registry().FindType(args[1])
	if !ok {
		return fmt.Errorf("unknown type %q", args[1])
	}
	return d.sup.Registry().DefineConversion(from, to, args[2:])
}

func (d *Dispatcher) cmdPrinters(args []string) error {
	for _, p := range d.sup.Tables().Printers {
		fmt.Fprintf(d.out, "%d %s %s %s\n", p.ID, p.Name, d.sup.Registry().Name(p.Type), p.Status)
	}
	return nil
}

func (d *Dispatcher) cmdJobs(args []string) error {
	for _, j := range d.sup.Tables().Jobs {
		if j == nil {
			continue
		}
		fmt.Fprintf(d.out, "%d %s %s %s\n", j.ID, d.sup.Registry().Name(j.SourceType), j.Status, j.File)
	}
	return nil
}

func (d *Dispatcher) cmdPrint(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: print file [printer...]")
	}
	_, err := d.sup.Print(args[0], args[1:])
	return err
}

func (d *Dispatcher) cmdCancel(args []string) error {
	id, err := singleJobID(args)
	if err != nil {
		return err
	}
	return d.sup.Cancel(id)
}

func (d *Dispatcher) cmdPause(args []string) error {
	id, err := singleJobID(args)
	if err != nil {
		return err
	}
	return d.sup.Pause(id)
}

func (d *Dispatcher) cmdResume(args []string) error {
	id, err := singleJobID(args)
	if err != nil {
		return err
	}
	return d.sup.Resume(id)
}

func (d *Dispatcher) cmdDisable(args []string) error {
	id, err := printerIDByName(d.sup, args)
	if err != nil {
		return err
	}
	return d.sup.SetPrinterStatus(id, spool.PrinterDisabled)
}

func (d *Dispatcher) cmdEnable(args []string) error {
	id, err := printerIDByName(d.sup, args)
	if err != nil {
		return err
	}
	return d.sup.SetPrinterStatus(id, spool.PrinterIdle)
}

func singleJobID(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected a single job id")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid job id %q", args[0])
	}
	return id, nil
}

func printerIDByName(sup *dispatch.Supervisor, args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected a single printer name")
	}
	p, ok := sup.Tables().FindPrinterByName(args[0])
	if !ok {
		return 0, fmt.Errorf("no such printer %q", args[0])
	}
	return p.ID, nil
}
