package entities

// Group representa un conjunto de archivos (>= 2) con contenido idéntico.
// Files conserva el orden relativo de la entrada.
type Group struct {
	Size  int64    `json:"size_bytes"`
	Files []string `json:"files"`
}

// Len devuelve el número de miembros del grupo.
func (g Group) Len() int {
	return len(g.Files)
}

// Skip registra un archivo excluido por un fallo de E/S.
type Skip struct {
	Path  string `json:"path"`
	Stage string `json:"stage"`
	Err   string `json:"error"`
}
