package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soyunomas/dupfinder/internal/entities"
)

// writeFiles crea los archivos en dir y devuelve sus rutas en el orden dado.
func writeFiles(t *testing.T, dir string, files [][2]string) []string {
	t.Helper()
	paths := make([]string, 0, len(files))
	for _, f := range files {
		p := filepath.Join(dir, f[0])
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(f[1]), 0o644))
		paths = append(paths, p)
	}
	return paths
}

// requireValidGroups comprueba las propiedades que debe cumplir toda salida.
func requireValidGroups(t *testing.T, groups []entities.Group, input []string) {
	t.Helper()

	inInput := make(map[string]bool, len(input))
	for _, p := range input {
		inInput[p] = true
	}

	seen := make(map[string]bool)
	for _, g := range groups {
		require.GreaterOrEqual(t, g.Len(), 2, "grupo con menos de dos miembros: %v", g.Files)

		first, err := os.ReadFile(g.Files[0])
		require.NoError(t, err)
		require.EqualValues(t, len(first), g.Size)

		for _, p := range g.Files {
			require.True(t, inInput[p], "ruta ajena a la entrada: %s", p)
			require.False(t, seen[p], "ruta repetida: %s", p)
			seen[p] = true

			data, err := os.ReadFile(p)
			require.NoError(t, err)
			require.Equal(t, first, data, "contenido distinto dentro del grupo: %s", p)
		}
	}
}

func memberships(groups []entities.Group) [][]string {
	out := make([][]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Files)
	}
	return out
}
