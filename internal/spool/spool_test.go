package spool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imprimer/internal/typegraph"
)

func TestTables_AddPrinter(t *testing.T) {
	tab := NewTables()
	ty := typegraph.Type{}

	p := tab.AddPrinter("p1", ty)
	assert.Equal(t, 0, p.ID)
	assert.Equal(t, PrinterDisabled, p.Status)

	found, ok := tab.FindPrinterByName("p1")
	require.True(t, ok)
	assert.Same(t, p, found)

	_, ok = tab.FindPrinterByName("nope")
	assert.False(t, ok)
}

func TestTables_NewJob_ReusesFreedSlots(t *testing.T) {
	tab := NewTables()
	ty := typegraph.Type{}

	j0 := tab.NewJob(ty, AllPrinters(1), "f0.txt")
	j1 := tab.NewJob(ty, AllPrinters(1), "f1.txt")
	assert.Equal(t, 0, j0.ID)
	assert.Equal(t, 1, j1.ID)

	tab.FreeJob(j0.ID)
	j2 := tab.NewJob(ty, AllPrinters(1), "f2.txt")
	assert.Equal(t, 0, j2.ID, "freed slot 0 must be reused before growing the table")

	_, err := tab.Job(j0.ID)
	assert.NoError(t, err, "slot 0 now holds j2")
	assert.Equal(t, "f2.txt", tab.Jobs[0].File)
}

func TestTables_Job_UnknownOrFreedIsError(t *testing.T) {
	tab := NewTables()
	_, err := tab.Job(0)
	assert.Error(t, err)

	j := tab.NewJob(typegraph.Type{}, AllPrinters(1), "f.txt")
	tab.FreeJob(j.ID)
	_, err = tab.Job(j.ID)
	assert.Error(t, err)
}

func TestBitset(t *testing.T) {
	b := NewBitset(1, 3)
	assert.True(t, b.Has(1))
	assert.True(t, b.Has(3))
	assert.False(t, b.Has(2))

	all := AllPrinters(3)
	for i := 0; i < 3; i++ {
		assert.True(t, all.Has(i))
	}
	assert.False(t, all.Has(3))
}

func TestJobStatus_Terminal(t *testing.T) {
	assert.True(t, JobFinished.Terminal())
	assert.True(t, JobAborted.Terminal())
	assert.False(t, JobRunning.Terminal())
	assert.False(t, JobCreated.Terminal())
	assert.False(t, JobPaused.Terminal())
	assert.False(t, JobDeleted.Terminal())
}

func TestNewJob_FreshCorrelationPerJob(t *testing.T) {
	tab := NewTables()
	j0 := tab.NewJob(typegraph.Type{}, AllPrinters(1), "a.txt")
	j1 := tab.NewJob(typegraph.Type{}, AllPrinters(1), "b.txt")
	assert.NotEqual(t, j0.Correlation, j1.Correlation)
}
