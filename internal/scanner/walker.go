package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
)

// ErrNotDirectory se devuelve cuando la raíz no es un directorio.
var ErrNotDirectory = errors.New("la ruta no es un directorio")

// Config define las reglas para el escaneo.
type Config struct {
	MinSize  int64    // Tamaño mínimo en bytes para considerar
	Excludes []string // Lista de carpetas a ignorar
	Logger   logrus.FieldLogger
}

// FileScanner encapsula la lógica de recorrido del sistema de archivos.
type FileScanner struct {
	cfg        Config
	excludeMap map[string]struct{} // Optimización O(1)
	log        logrus.FieldLogger
}

// New crea una nueva instancia del escáner con configuración.
func New(cfg Config) *FileScanner {
	exMap := make(map[string]struct{}, len(cfg.Excludes))
	for _, e := range cfg.Excludes {
		exMap[e] = struct{}{}
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &FileScanner{
		cfg:        cfg,
		excludeMap: exMap,
		log:        log,
	}
}

// Scan recorre rootDir y devuelve las rutas absolutas de los archivos
// regulares, ordenadas y sin repetir. Los enlaces simbólicos se ignoran.
func (s *FileScanner) Scan(rootDir string) ([]string, error) {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("ruta inválida %s: %w", rootDir, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("no se puede acceder a %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}

	s.log.WithField("root", root).Info("escaneando sistema de archivos")

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		// 1. Errores de acceso (permisos, etc): se omite la entrada
		if err != nil {
			s.log.WithError(err).WithField("path", path).Debug("entrada omitida")
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		// 2. Directorios excluidos por nombre (la raíz nunca)
		if d.IsDir() {
			if _, ok := s.excludeMap[d.Name()]; ok && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		// 3. Solo archivos regulares: fuera symlinks, sockets, fifos...
		if !d.Type().IsRegular() {
			return nil
		}

		// 4. Filtro de tamaño
		if s.cfg.MinSize > 0 {
			fi, err := d.Info()
			if err != nil {
				s.log.WithError(err).WithField("path", path).Debug("entrada omitida")
				return nil
			}
			if fi.Size() < s.cfg.MinSize {
				return nil
			}
		}

		paths = append(paths, filepath.Clean(path))
		return nil
	})
	if err != nil {
		return nil, err
	}

	// WalkDir ya recorre en orden léxico; ordenamos igualmente para
	// garantizar el contrato aunque cambie la implementación.
	sort.Strings(paths)
	return dedupSorted(paths), nil
}

func dedupSorted(paths []string) []string {
	if len(paths) < 2 {
		return paths
	}
	out := paths[:1]
	for _, p := range paths[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
