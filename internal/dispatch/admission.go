package dispatch

import (
	"fmt"

	"imprimer/internal/spool"
)

// AddPrinter declares a new printer, initially disabled (spec.md's
// `printer` verb). name must be unique among existing printers.
func (s *Supervisor) AddPrinter(name string, typeName string) (*spool.Printer, error) {
	if _, exists := s.tables.FindPrinterByName(name); exists {
		return nil, fmt.Errorf("printer %q already declared", name)
	}
	ty, ok := s.registry.FindType(typeName)
	if !ok {
		return nil, fmt.Errorf("unknown type %q", typeName)
	}

	p := s.tables.AddPrinter(name, ty)
	s.sink.PrinterDefined(p.ID, p.Name, typeName)
	return p, nil
}

// Print creates a job for the given file (spec.md's `print` verb).
// eligibility is every declared printer when printerNames is empty,
// otherwise exactly the named printers, all of which must already
// exist.
func (s *Supervisor) Print(file string, printerNames []string) (*spool.Job, error) {
	ty, err := s.registry.InferFileType(file)
	if err != nil {
		return nil, err
	}

	var eligibility spool.Bitset
	if len(printerNames) == 0 {
		eligibility = spool.AllPrinters(len(s.tables.Printers))
	} else {
		ids := make([]int, 0, len(printerNames))
		for _, name := range printerNames {
			p, ok := s.tables.FindPrinterByName(name)
			if !ok {
				return nil, fmt.Errorf("no such printer %q", name)
			}
			ids = append(ids, p.ID)
		}
		eligibility = spool.NewBitset(ids...)
	}

	job := s.tables.NewJob(ty, eligibility, file)
	s.sink.JobCreated(job.ID, job.Correlation, s.registry.Name(ty))
	return job, nil
}
