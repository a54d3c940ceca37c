package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/soyunomas/dupfinder/internal/entities"
	"github.com/soyunomas/dupfinder/internal/hasher"
)

// ErrInvalidStrategy indica una estrategia que no sirve como segunda fase.
var ErrInvalidStrategy = errors.New("estrategia inválida")

// Grouper parte un conjunto de candidatos en grupos de equivalencia.
type Grouper interface {
	Strategy() entities.Strategy
	Group(ctx context.Context, paths []string) ([][]string, error)
}

// sizer lo implementa el Grouper de tamaño: devuelve también el tamaño de
// cada clase, que el pipeline guarda en entities.Group.
type sizer interface {
	Classes(paths []string) []Class[int64]
}

type sizeGrouper struct {
	onErr func(string, error)
}

func (sizeGrouper) Strategy() entities.Strategy { return entities.BySize }

func (g sizeGrouper) Classes(paths []string) []Class[int64] {
	return GroupBySize(paths, g.onErr)
}

func (g sizeGrouper) Group(_ context.Context, paths []string) ([][]string, error) {
	return GroupByFeature(paths, FileSize, g.onErr), nil
}

type checksumGrouper struct {
	feature FeatureFunc[string]
	onErr   func(string, error)
}

func (checksumGrouper) Strategy() entities.Strategy { return entities.ByChecksum }

func (g checksumGrouper) Group(_ context.Context, paths []string) ([][]string, error) {
	return GroupByFeature(paths, g.feature, g.onErr), nil
}

type contentGrouper struct {
	compare CompareFunc
	onErr   func(string, error)
}

func (contentGrouper) Strategy() entities.Strategy { return entities.ByContent }

func (g contentGrouper) Group(ctx context.Context, paths []string) ([][]string, error) {
	return GroupByContent(ctx, paths, g.compare, g.onErr)
}

// NewGrouper construye el Grouper de una estrategia. alg solo se usa con
// ByChecksum y onErr recibe los archivos excluidos.
func NewGrouper(s entities.Strategy, alg *hasher.Algorithm, onErr func(string, error)) (Grouper, error) {
	switch s {
	case entities.BySize:
		return sizeGrouper{onErr: onErr}, nil
	case entities.ByChecksum:
		if alg == nil {
			return nil, fmt.Errorf("%w: checksum sin algoritmo", ErrInvalidStrategy)
		}
		return checksumGrouper{feature: ChecksumFeature(alg), onErr: onErr}, nil
	case entities.ByContent:
		return contentGrouper{compare: hasher.Compare, onErr: onErr}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidStrategy, s)
	}
}
