package engine

// FeatureFunc extrae de un archivo un valor comparable (tamaño, digest...).
// Dos archivos con distinto valor nunca son duplicados.
type FeatureFunc[K comparable] func(path string) (K, error)

// Class es una clase de equivalencia para una característica.
type Class[K comparable] struct {
	Key   K
	Paths []string
}

// Classify reparte paths por el valor de feature. Los archivos cuya
// característica falla se descartan (y se notifican a onErr si no es nil).
// Las clases con un solo miembro se eliminan. El orden de las clases es el
// de la primera aparición de cada clave y dentro de cada clase se conserva
// el orden de entrada.
func Classify[K comparable](paths []string, feature FeatureFunc[K], onErr func(path string, err error)) []Class[K] {
	index := make(map[K]int)
	var classes []Class[K]

	for _, p := range paths {
		key, err := feature(p)
		if err != nil {
			if onErr != nil {
				onErr(p, err)
			}
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(classes)
			index[key] = i
			classes = append(classes, Class[K]{Key: key})
		}
		classes[i].Paths = append(classes[i].Paths, p)
	}

	out := classes[:0]
	for _, c := range classes {
		if len(c.Paths) > 1 {
			out = append(out, c)
		}
	}
	return out
}

// GroupByFeature es Classify sin las claves.
func GroupByFeature[K comparable](paths []string, feature FeatureFunc[K], onErr func(path string, err error)) [][]string {
	classes := Classify(paths, feature, onErr)
	groups := make([][]string, 0, len(classes))
	for _, c := range classes {
		groups = append(groups, c.Paths)
	}
	return groups
}
