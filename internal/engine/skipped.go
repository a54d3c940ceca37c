package engine

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/soyunomas/dupfinder/internal/entities"
)

// skipLog acumula los archivos excluidos por errores de E/S.
// Es seguro para uso concurrente entre grupos de tamaño.
type skipLog struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	items []entities.Skip
	log   logrus.FieldLogger
}

func newSkipLog(log logrus.FieldLogger) *skipLog {
	return &skipLog{seen: make(map[string]struct{}), log: log}
}

// recorder devuelve un callback onErr asociado a una fase.
func (s *skipLog) recorder(stage string) func(string, error) {
	return func(path string, err error) {
		s.record(stage, path, err)
	}
}

func (s *skipLog) record(stage, path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.seen[path]; dup {
		return
	}
	s.seen[path] = struct{}{}
	s.items = append(s.items, entities.Skip{Path: path, Stage: stage, Err: err.Error()})

	s.log.WithFields(logrus.Fields{
		"path":  path,
		"stage": stage,
		"error": err,
	}).Debug("archivo omitido")
}

// list devuelve los registros ordenados por ruta.
func (s *skipLog) list() []entities.Skip {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]entities.Skip(nil), s.items...)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
