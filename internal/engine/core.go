package engine

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/soyunomas/dupfinder/internal/entities"
	"github.com/soyunomas/dupfinder/internal/hasher"
)

type Options struct {
	// Strategy es la segunda fase: ByChecksum o ByContent.
	Strategy entities.Strategy
	// Algorithm para ByChecksum; nil usa hasher.DefaultAlgorithm.
	Algorithm *hasher.Algorithm
	// PreHash filtra cada grupo de tamaño por el hash de su primer bloque.
	PreHash bool
	// Workers limita los grupos de tamaño procesados en paralelo (0 = NumCPU).
	Workers int
	Logger  logrus.FieldLogger

	// Checksum sustituye al digest de Algorithm (nil = HashFile).
	Checksum FeatureFunc[string]
	// Compare sustituye a hasher.Compare en ByContent.
	Compare CompareFunc
}

type Result struct {
	Groups          []entities.Group
	Skipped         []entities.Skip
	FilesConsidered int
	SizeCandidates  int
	Duration        time.Duration
}

type Runner struct {
	opts Options
	log  logrus.FieldLogger
}

// New valida las opciones antes de hacer ningún trabajo.
func New(opts Options) (*Runner, error) {
	if opts.Strategy != entities.ByChecksum && opts.Strategy != entities.ByContent {
		return nil, fmt.Errorf("%w: %s no es una segunda fase", ErrInvalidStrategy, opts.Strategy)
	}
	if opts.Algorithm == nil {
		alg, err := hasher.Lookup(hasher.DefaultAlgorithm)
		if err != nil {
			return nil, err
		}
		opts.Algorithm = alg
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}

	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Runner{opts: opts, log: log}, nil
}

// FindDuplicates ejecuta el pipeline con las opciones por defecto.
func FindDuplicates(ctx context.Context, paths []string, strategy entities.Strategy) ([]entities.Group, error) {
	r, err := New(Options{Strategy: strategy})
	if err != nil {
		return nil, err
	}
	res, err := r.Run(ctx, paths)
	if err != nil {
		return nil, err
	}
	return res.Groups, nil
}

// Run agrupa por tamaño y aplica la segunda fase a cada grupo de tamaño
// por separado. Los grupos nunca se mezclan entre clases de tamaño.
func (r *Runner) Run(ctx context.Context, paths []string) (*Result, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	skips := newSkipLog(r.log)
	paths = uniquePaths(paths)

	// --- FASE 1: TAMAÑO ---
	r.log.WithField("files", len(paths)).Info("fase 1: agrupando por tamaño")
	first, err := NewGrouper(entities.BySize, nil, skips.recorder(StageSize))
	if err != nil {
		return nil, err
	}
	sizeClasses := first.(sizer).Classes(paths)

	candidates := 0
	for _, c := range sizeClasses {
		candidates += len(c.Paths)
	}
	r.log.WithFields(logrus.Fields{
		"size_groups": len(sizeClasses),
		"candidates":  candidates,
	}).Info("candidatos por tamaño")

	// --- FASE 2: CHECKSUM o CONTENIDO ---
	second, err := r.secondStage(skips.recorder(r.stage()))
	if err != nil {
		return nil, err
	}
	r.log.WithField("strategy", second.Strategy()).Info("fase 2: verificando contenido")

	perClass := make([][]entities.Group, len(sizeClasses))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for i, class := range sizeClasses {
		g.Go(func() error {
			sets, err := r.refine(gctx, class.Paths, second, skips)
			if err != nil {
				return err
			}
			for _, files := range sets {
				perClass[i] = append(perClass[i], entities.Group{Size: class.Key, Files: files})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var groups []entities.Group
	for _, gs := range perClass {
		groups = append(groups, gs...)
	}

	res := &Result{
		Groups:          groups,
		Skipped:         skips.list(),
		FilesConsidered: len(paths),
		SizeCandidates:  candidates,
		Duration:        time.Since(start),
	}
	r.log.WithFields(logrus.Fields{
		"groups":  len(res.Groups),
		"skipped": len(res.Skipped),
	}).Info("búsqueda terminada")
	return res, nil
}

// refine aplica (opcionalmente) el pre-hash y después la segunda fase.
func (r *Runner) refine(ctx context.Context, paths []string, second Grouper, skips *skipLog) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runs := [][]string{paths}
	if r.opts.PreHash {
		runs = GroupByPrefix(paths, skips.recorder(StagePreHash))
	}

	var out [][]string
	for _, run := range runs {
		sets, err := second.Group(ctx, run)
		if err != nil {
			return nil, err
		}
		out = append(out, sets...)
	}
	return out, nil
}

// secondStage es NewGrouper con las funciones inyectadas en Options.
func (r *Runner) secondStage(onErr func(string, error)) (Grouper, error) {
	switch {
	case r.opts.Strategy == entities.ByChecksum && r.opts.Checksum != nil:
		return checksumGrouper{feature: r.opts.Checksum, onErr: onErr}, nil
	case r.opts.Strategy == entities.ByContent && r.opts.Compare != nil:
		return contentGrouper{compare: r.opts.Compare, onErr: onErr}, nil
	}
	return NewGrouper(r.opts.Strategy, r.opts.Algorithm, onErr)
}

func (r *Runner) stage() string {
	if r.opts.Strategy == entities.ByContent {
		return StageContent
	}
	return StageChecksum
}

// uniquePaths elimina rutas repetidas conservando la primera aparición.
func uniquePaths(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
