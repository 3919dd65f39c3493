// Command imprimerctl is a small seed-loader utility: it reads a YAML
// file of type/printer/conversion declarations and writes the
// equivalent imprimer command lines to stdout, so an operator can do
//
//	imprimerctl -seed fleet.yaml | imprimer
//
// instead of typing declarations by hand. Modeled on the teacher's
// cmd/bulk-delete (a small flag-driven one-shot utility wrapping a
// single batch operation), generalized from deleting a range of
// channel ids to replaying a declared fleet as commands.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// seed is the YAML seed-file shape: types and printers declared once,
// plus the conversion edges between them.
type seed struct {
	Types       []string        `yaml:"types"`
	Printers    []seedPrinter   `yaml:"printers"`
	Conversions []seedConversion `yaml:"conversions"`
}

type seedPrinter struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type seedConversion struct {
	From string   `yaml:"from"`
	To   string   `yaml:"to"`
	Argv []string `yaml:"argv"`
}

func main() {
	path := flag.String("seed", "", "path to a YAML seed file")
	enable := flag.Bool("enable", true, "emit `enable` for each declared printer")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: imprimerctl -seed fleet.yaml")
		os.Exit(1)
	}

	log := buildLogger().Named("main")

	if err := run(*path, *enable, os.Stdout); err != nil {
		log.Fatal("seed file replay failed", zap.Error(err))
	}
}

// buildLogger mirrors the teacher's cmd/bulk-delete buildLogger: colored
// level, no timestamp key, no stacktrace/caller. The command stream
// written to stdout by run() is piped into imprimer and must stay plain
// fmt; only error reporting goes through zap.
func buildLogger() *zap.Logger {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.TimeKey = ""
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	logConfig.DisableCaller = true
	logConfig.Level.SetLevel(zap.DebugLevel)

	return zap.Must(logConfig.Build())
}

func run(path string, enable bool, out *os.File) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var s seed
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	for _, t := range s.Types {
		fmt.Fprintf(out, "type %s\n", t)
	}
	for _, p := range s.Printers {
		fmt.Fprintf(out, "printer %s %s\n", p.Name, p.Type)
	}
	for _, c := range s.Conversions {
		fmt.Fprintf(out, "conversion %s %s %s\n", c.From, c.To, joinArgv(c.Argv))
	}
	if enable {
		for _, p := range s.Printers {
			fmt.Fprintf(out, "enable %s\n", p.Name)
		}
	}

	return nil
}

func joinArgv(argv []string) string {
	s := ""
	for i, a := range argv {
		if i > 0 {
			s += " "
		}
		s += a
	}
	return s
}
