package hasher

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	chunk := bytes.Repeat([]byte("q"), ChunkSize)
	twoChunks := append(append([]byte(nil), chunk...), chunk...)
	lateDiff := append(append([]byte(nil), chunk...), chunk...)
	lateDiff[len(lateDiff)-1] = 'z'

	tests := []struct {
		name string
		a, b []byte
		want bool
	}{
		{"empty", nil, nil, true},
		{"small equal", []byte("hello"), []byte("hello"), true},
		{"small different", []byte("hello"), []byte("world"), false},
		{"exact chunk", chunk, chunk, true},
		{"multi chunk", twoChunks, twoChunks, true},
		{"differs in last chunk", twoChunks, lateDiff, false},
		{"prefix", chunk, twoChunks, false},
		{"prefix reversed", twoChunks, chunk, false},
		{"empty vs data", nil, []byte("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := writeFile(t, "a", tt.a)
			b := writeFile(t, "b", tt.b)

			got, err := Compare(a, b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, Equal(a, b))
		})
	}
}

func TestCompare_Unreadable(t *testing.T) {
	a := writeFile(t, "a", []byte("data"))
	missing := filepath.Join(t.TempDir(), "missing")

	same, err := Compare(a, missing)
	assert.Error(t, err)
	assert.False(t, same)

	assert.False(t, Equal(missing, a))
	assert.False(t, Equal(missing, missing))
}
