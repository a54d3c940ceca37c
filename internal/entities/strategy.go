package entities

import (
	"fmt"
	"strings"
)

// Strategy es la forma de agrupar archivos candidatos.
type Strategy int

const (
	BySize     Strategy = iota // Solo tamaño (primera fase)
	ByChecksum                 // Digest del contenido completo
	ByContent                  // Comparación byte a byte
)

func (s Strategy) String() string {
	switch s {
	case BySize:
		return "size"
	case ByChecksum:
		return "checksum"
	case ByContent:
		return "content"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy acepta "checksum" o "content" (y sus alias).
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "checksum", "hash":
		return ByChecksum, nil
	case "content", "bytes", "exact":
		return ByContent, nil
	case "size":
		return BySize, nil
	default:
		return 0, fmt.Errorf("estrategia desconocida: %q", name)
	}
}
