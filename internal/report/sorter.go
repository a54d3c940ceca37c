package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/facette/natsort"
)

// SortKey define el orden de los grupos en el reporte.
type SortKey int

const (
	SortByTotal SortKey = iota // Default: tamaño * miembros
	SortBySize
	SortByCount
	SortByPath
)

// ParseSortKey acepta total, size, count o path.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "total", "":
		return SortByTotal, nil
	case "size":
		return SortBySize, nil
	case "count":
		return SortByCount, nil
	case "path":
		return SortByPath, nil
	default:
		return 0, fmt.Errorf("criterio de orden desconocido: %q", s)
	}
}

// Sort ordena los grupos según key. No toca el orden interno de cada grupo.
func Sort(groups []GroupResult, key SortKey) {
	sort.SliceStable(groups, func(i, j int) bool {
		g1, g2 := groups[i], groups[j]

		switch key {
		case SortByTotal:
			t1, t2 := g1.Size*int64(g1.Count()), g2.Size*int64(g2.Count())
			if t1 != t2 {
				return t1 > t2
			}
		case SortBySize:
			if g1.Size != g2.Size {
				return g1.Size > g2.Size
			}
		case SortByCount:
			if g1.Count() != g2.Count() {
				return g1.Count() > g2.Count()
			}
		}

		// Desempate: orden natural por ruta del Keeper
		if g1.Keeper != g2.Keeper {
			return natsort.Compare(g1.Keeper, g2.Keeper)
		}
		return false
	})
}
