package lineio

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_NextYieldsLinesInOrder(t *testing.T) {
	src := New(strings.NewReader("one\ntwo\nthree\n"))

	for _, want := range []string{"one", "two", "three"} {
		line, ok := src.Next()
		require.True(t, ok)
		assert.Equal(t, want, line)
	}

	_, ok := src.Next()
	assert.False(t, ok)
	assert.NoError(t, src.Err())
}

func TestSource_PreBlockRunsBeforeEachScan(t *testing.T) {
	src := New(strings.NewReader("a\nb\n"))
	var calls int
	src.PreBlock = func() { calls++ }

	_, ok := src.Next()
	require.True(t, ok)
	assert.Equal(t, 1, calls)

	_, ok = src.Next()
	require.True(t, ok)
	assert.Equal(t, 2, calls)

	_, ok = src.Next()
	assert.False(t, ok)
	assert.Equal(t, 3, calls, "PreBlock still fires before the terminal Scan that hits EOF")
}

type errReader struct{ err error }

func (r errReader) Read(p []byte) (int, error) { return 0, r.err }

func TestSource_ErrSurfacesScannerFailure(t *testing.T) {
	boom := errors.New("boom")
	src := New(errReader{err: boom})

	_, ok := src.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, src.Err(), boom)
}

func TestSource_NilPreBlockIsSafe(t *testing.T) {
	src := New(strings.NewReader("x\n"))
	line, ok := src.Next()
	require.True(t, ok)
	assert.Equal(t, "x", line)
}
