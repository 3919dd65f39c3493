// Package printerdev implements the printer transport: opening a
// writable byte sink for a named printer (§6). spec.md deliberately
// excludes real print-protocol concerns, so the reference transport
// resolves a printer name to a file under a configured spool
// directory — enough to exercise the full descriptor-wiring contract
// of §4.3/§5 with a genuine, closable *os.File.
package printerdev

import (
	"fmt"
	"os"
	"path/filepath"
)

// Transport opens connections to named printers under a fixed spool
// directory.
type Transport struct {
	dir string
}

// New returns a Transport rooted at dir, creating it if necessary.
func New(dir string) (*Transport, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("printerdev: create spool dir: %w", err)
	}
	return &Transport{dir: dir}, nil
}

// Connect opens a writable sink for the named printer. Closing the
// returned file finalizes the print. typeName is accepted per the
// registry contract in spec.md §6 but only used to namespace the
// output path; the reference transport has no real device-capability
// negotiation to perform.
func (t *Transport) Connect(name string, typeName string) (*os.File, error) {
	path := filepath.Join(t.dir, fmt.Sprintf("%s.%s.out", name, typeName))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("printerdev: connect %q: %w", name, err)
	}
	return f, nil
}
