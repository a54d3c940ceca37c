package main

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/soyunomas/dupfinder/internal/config"
	"github.com/soyunomas/dupfinder/internal/engine"
	"github.com/soyunomas/dupfinder/internal/entities"
	"github.com/soyunomas/dupfinder/internal/hasher"
	"github.com/soyunomas/dupfinder/internal/report"
	"github.com/soyunomas/dupfinder/internal/scanner"
)

type rootOptions struct {
	path       string
	configPath string
	strategy   string
	fasterAlgo bool
	digest     string
	preHash    bool
	workers    int
	minSize    int64
	excludes   []string
	jsonOut    bool
	sortBy     string
	keep       string
	output     string
	timing     bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "dupfinder [DIR]",
		Short: "Encuentra archivos duplicados comparando su contenido",
		Long: `dupfinder agrupa los archivos de un árbol de directorios cuyo contenido
es idéntico byte a byte. Primero descarta por tamaño y después confirma con
un checksum (rápido) o con comparación exacta por bloques (sin colisiones).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if cmd.Flags().Changed("path") {
					return fmt.Errorf("indica el directorio como argumento o con --path, no ambos")
				}
				opts.path = args[0]
			}
			return runScan(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.path, "path", "p", ".", "directorio a escanear")
	f.StringVar(&opts.configPath, "config", config.DefaultPath(), "archivo de configuración INI")
	f.StringVarP(&opts.strategy, "strategy", "s", "checksum", "segunda fase: checksum | content")
	f.BoolVarP(&opts.fasterAlgo, "faster-algo", "a", false, "alias de --strategy=content")
	f.StringVar(&opts.digest, "digest", hasher.DefaultAlgorithm, "algoritmo del checksum: md5 | xxhash | highway")
	f.BoolVar(&opts.preHash, "prehash", false, "filtrar por hash de los primeros 4KB antes de la segunda fase")
	f.IntVarP(&opts.workers, "workers", "w", 0, "grupos de tamaño en paralelo (0 = NumCPU)")
	f.Int64Var(&opts.minSize, "min-size", 1, "tamaño mínimo en bytes")
	f.StringSliceVar(&opts.excludes, "exclude", nil, "nombres de directorio a ignorar")
	f.BoolVar(&opts.jsonOut, "json", false, "salida en formato JSON a stdout")
	f.StringVar(&opts.sortBy, "sort", "total", "orden de grupos: total | size | count | path")
	f.StringVarP(&opts.keep, "keep", "k", "shortest", "archivo a conservar: shortest | longest | oldest | newest | first")
	f.StringVarP(&opts.output, "output", "o", "", "genera un script .sh con los rm de los duplicados")
	f.BoolVar(&opts.timing, "timing", false, "muestra el tiempo empleado en stderr")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log detallado (debug)")

	cmd.AddCommand(newConfigCmd())
	return cmd
}

// resolveConfig combina archivo de configuración y flags (los flags mandan).
func resolveConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("strategy") {
		cfg.Engine.Strategy = opts.strategy
	}
	if opts.fasterAlgo {
		cfg.Engine.Strategy = entities.ByContent.String()
	}
	if f.Changed("digest") {
		cfg.Engine.Digest = opts.digest
	}
	if f.Changed("prehash") {
		cfg.Engine.PreHash = opts.preHash
	}
	if f.Changed("workers") {
		cfg.Engine.Workers = opts.workers
	}
	if f.Changed("min-size") {
		cfg.Scan.MinSize = opts.minSize
	}
	if f.Changed("exclude") {
		cfg.Scan.Excludes = opts.excludes
	}
	if opts.jsonOut {
		cfg.Output.Format = "json"
	}
	if f.Changed("sort") {
		cfg.Output.Sort = opts.sortBy
	}
	if f.Changed("keep") {
		cfg.Output.Keep = opts.keep
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runScan(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	log, err := newLogger(cmd.ErrOrStderr(), cfg.Log.Level)
	if err != nil {
		return err
	}

	// 1. Validación previa: cualquier error aquí es fatal
	strategy, err := entities.ParseStrategy(cfg.Engine.Strategy)
	if err != nil {
		return err
	}
	alg, err := hasher.Lookup(cfg.Engine.Digest)
	if err != nil {
		return err
	}
	sortKey, err := report.ParseSortKey(cfg.Output.Sort)
	if err != nil {
		return err
	}
	keep, err := report.ParseKeep(cfg.Output.Keep)
	if err != nil {
		return err
	}
	runner, err := engine.New(engine.Options{
		Strategy:  strategy,
		Algorithm: alg,
		PreHash:   cfg.Engine.PreHash,
		Workers:   cfg.Engine.Workers,
		Logger:    log,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Enumerar y buscar
	start := time.Now()
	paths, err := scanner.New(scanner.Config{
		MinSize:  cfg.Scan.MinSize,
		Excludes: cfg.Scan.Excludes,
		Logger:   log,
	}).Scan(opts.path)
	if err != nil {
		return err
	}

	res, err := runner.Run(ctx, paths)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("búsqueda interrumpida: %w", err)
		}
		return err
	}

	// 3. Reporte
	meta := report.Metadata{
		ScannedPath: opts.path,
		Strategy:    strategy.String(),
		Timestamp:   time.Now(),
	}
	if strategy == entities.ByChecksum {
		meta.Digest = alg.Name
	}
	rep := report.Build(res, meta, keep)
	report.Sort(rep.Groups, sortKey)

	if opts.output != "" {
		if err := report.SaveScript(opts.output, rep); err != nil {
			return fmt.Errorf("error generando script: %w", err)
		}
		log.WithField("file", opts.output).Info("script generado")
	}

	if err := writeReport(cmd.OutOrStdout(), cfg.Output.Format, rep); err != nil {
		return err
	}

	if opts.timing {
		fmt.Fprintf(cmd.ErrOrStderr(), "⏱  %s\n", time.Since(start))
	}
	return nil
}

func writeReport(w io.Writer, format string, rep report.Report) error {
	if format == "json" {
		return report.WriteJSON(w, rep)
	}
	return report.WriteText(w, rep)
}

// newLogger crea un logger de texto sin colores hacia w.
func newLogger(w io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	return log, nil
}

