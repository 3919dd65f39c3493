package typegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefineType_Idempotent(t *testing.T) {
	r := New()

	t1, err := r.DefineType("txt")
	require.NoError(t, err)

	t2, err := r.DefineType("txt")
	require.NoError(t, err)

	assert.Equal(t, t1, t2)
}

func TestDefineType_RejectsEmpty(t *testing.T) {
	r := New()
	_, err := r.DefineType("  ")
	assert.Error(t, err)
}

func TestInferFileType(t *testing.T) {
	r := New()
	_, err := r.DefineType("txt")
	require.NoError(t, err)

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"known extension", "f.txt", false},
		{"unknown extension", "f.ps", true},
		{"no extension", "f", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.InferFileType(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFindConversionPath_SameTypeIsEmptyButFound(t *testing.T) {
	r := New()
	txt, _ := r.DefineType("txt")

	path, ok := r.FindConversionPath(txt, txt)
	assert.True(t, ok)
	assert.Nil(t, path)
}

func TestFindConversionPath_Unreachable(t *testing.T) {
	r := New()
	a, _ := r.DefineType("a")
	b, _ := r.DefineType("b")

	_, ok := r.FindConversionPath(a, b)
	assert.False(t, ok)
}

func TestFindConversionPath_ShortestPath(t *testing.T) {
	r := New()
	a, _ := r.DefineType("a")
	b, _ := r.DefineType("b")
	c, _ := r.DefineType("c")

	require.NoError(t, r.DefineConversion(a, c, []string{"direct"}))
	require.NoError(t, r.DefineConversion(a, b, []string{"hop1"}))
	require.NoError(t, r.DefineConversion(b, c, []string{"hop2"}))

	path, ok := r.FindConversionPath(a, c)
	require.True(t, ok)
	require.Len(t, path, 1)
	assert.Equal(t, []string{"direct"}, path[0].Argv)
}

func TestFindConversionPath_DeclarationOrderTieBreak(t *testing.T) {
	r := New()
	a, _ := r.DefineType("a")
	b, _ := r.DefineType("b")
	c, _ := r.DefineType("c")

	// Two equally-short (length-1) paths a->c; the first declared wins.
	require.NoError(t, r.DefineConversion(a, b, []string{"viaB"}))
	require.NoError(t, r.DefineConversion(a, c, []string{"direct1"}))
	require.NoError(t, r.DefineConversion(a, c, []string{"direct2"}))

	path, ok := r.FindConversionPath(a, c)
	require.True(t, ok)
	require.Len(t, path, 1)
	assert.Equal(t, []string{"direct1"}, path[0].Argv)
}

func TestDefineConversion_RequiresDeclaredEndpoints(t *testing.T) {
	r := New()
	a, _ := r.DefineType("a")
	err := r.DefineConversion(a, Type{}, []string{"cmd"})
	assert.Error(t, err)
}

func TestDefineConversion_RequiresArgv(t *testing.T) {
	r := New()
	a, _ := r.DefineType("a")
	b, _ := r.DefineType("b")
	err := r.DefineConversion(a, b, nil)
	assert.Error(t, err)
}
