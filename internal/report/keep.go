package report

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Keep decide qué archivo de cada grupo se conserva (el "Keeper").
// El script de limpieza borra todos los demás.
type Keep int

const (
	KeepShortestPath Keep = iota // Default
	KeepLongestPath
	KeepOldest
	KeepNewest
	KeepFirst // primero en orden de escaneo
)

var keepNames = map[Keep]string{
	KeepShortestPath: "shortest",
	KeepLongestPath:  "longest",
	KeepOldest:       "oldest",
	KeepNewest:       "newest",
	KeepFirst:        "first",
}

func (k Keep) String() string {
	if name, ok := keepNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Keep(%d)", int(k))
}

// ParseKeep acepta shortest, longest, oldest, newest o first.
func ParseKeep(s string) (Keep, error) {
	name := strings.TrimSpace(strings.ToLower(s))
	if name == "" {
		return KeepShortestPath, nil
	}
	for k, n := range keepNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("criterio de conservación desconocido: %q", s)
}

// keeperIndex devuelve la posición del Keeper en files, sin reordenarlo.
func keeperIndex(files []string, keep Keep) int {
	if keep == KeepFirst || len(files) == 0 {
		return 0
	}

	// Fecha solo si la estrategia la necesita
	var mods []time.Time
	var known []bool
	if keep == KeepOldest || keep == KeepNewest {
		mods = make([]time.Time, len(files))
		known = make([]bool, len(files))
		for i, p := range files {
			if info, err := os.Stat(p); err == nil {
				mods[i], known[i] = info.ModTime(), true
			}
		}
	}

	best := 0
	for i := 1; i < len(files); i++ {
		f1, f2 := files[i], files[best]

		switch keep {
		case KeepShortestPath:
			if len(f1) != len(f2) {
				if len(f1) < len(f2) {
					best = i
				}
				continue
			}

		case KeepLongestPath:
			if len(f1) != len(f2) {
				if len(f1) > len(f2) {
					best = i
				}
				continue
			}

		case KeepOldest, KeepNewest:
			// Un archivo sin fecha nunca gana a uno con fecha
			if known[i] != known[best] {
				if known[i] {
					best = i
				}
				continue
			}
			if !mods[i].Equal(mods[best]) {
				if (keep == KeepOldest) == mods[i].Before(mods[best]) {
					best = i
				}
				continue
			}
		}

		// --- DESEMPATE ---
		// 1. Longitud de ruta (si no fue el criterio principal)
		if len(f1) != len(f2) {
			if (keep == KeepLongestPath) == (len(f1) > len(f2)) {
				best = i
			}
			continue
		}
		// 2. Alfabético
		if f1 < f2 {
			best = i
		}
	}
	return best
}
