package engine

import (
	"context"
	"errors"
	"io/fs"

	"github.com/soyunomas/dupfinder/internal/hasher"
)

// CompareFunc decide si dos archivos tienen el mismo contenido.
type CompareFunc func(a, b string) (bool, error)

// GroupByContent parte paths en clases de igualdad exacta byte a byte.
// Toma como pivote el primer archivo pendiente, le asigna todos los que
// sean iguales y repite con los restantes. Coste cuadrático en el peor caso,
// asumible porque la entrada ya comparte tamaño.
func GroupByContent(ctx context.Context, paths []string, compare CompareFunc, onErr func(string, error)) ([][]string, error) {
	if compare == nil {
		compare = hasher.Compare
	}

	var groups [][]string
	remaining := append([]string(nil), paths...)

	for len(remaining) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pivot := remaining[0]
		group := []string{pivot}
		next := make([]string, 0, len(remaining)-1)

		for i, p := range remaining[1:] {
			same, err := compare(pivot, p)
			if err != nil {
				bad := failedPath(err, pivot)
				if onErr != nil {
					onErr(bad, err)
				}
				// Pivote ilegible: no puede agruparse con nada
				if bad == pivot {
					next = append(next, remaining[1+i:]...)
					break
				}
			}
			if same && err == nil {
				group = append(group, p)
			} else {
				next = append(next, p)
			}
		}

		if len(group) > 1 {
			groups = append(groups, group)
		}
		remaining = next
	}

	return groups, nil
}

// failedPath extrae la ruta que provocó el error, o fallback si no se sabe.
func failedPath(err error, fallback string) string {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Path
	}
	return fallback
}
