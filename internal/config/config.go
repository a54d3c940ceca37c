package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"

	"github.com/soyunomas/dupfinder/internal/entities"
	"github.com/soyunomas/dupfinder/internal/hasher"
)

// Config agrupa los valores efectivos de configuración.
type Config struct {
	Scan   ScanConfig
	Engine EngineConfig
	Output OutputConfig
	Log    LogConfig
}

// ScanConfig controla el recorrido del directorio.
type ScanConfig struct {
	MinSize  int64    // Archivos más pequeños se ignoran (1 = fuera vacíos)
	Excludes []string // Nombres de directorio a saltar
}

// EngineConfig controla el pipeline.
type EngineConfig struct {
	Strategy string // checksum | content
	Digest   string // md5 | xxhash | highway
	Workers  int    // 0 = NumCPU
	PreHash  bool
}

// OutputConfig controla el formato del reporte.
type OutputConfig struct {
	Format string // text | json
	Sort   string // total | size | count | path
	Keep   string // shortest | longest | oldest | newest | first
}

// LogConfig controla el nivel de logrus.
type LogConfig struct {
	Level string
}

// Default devuelve la configuración integrada.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			MinSize:  1,
			Excludes: []string{".git", "node_modules"},
		},
		Engine: EngineConfig{
			Strategy: "checksum",
			Digest:   hasher.DefaultAlgorithm,
		},
		Output: OutputConfig{
			Format: "text",
			Sort:   "total",
			Keep:   "shortest",
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultPath es $XDG_CONFIG_HOME/dupfinder/config.ini (o equivalente).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dupfinder", "config.ini")
}

// Load lee path sobre los valores por defecto. Si el archivo no existe se
// devuelven los valores por defecto sin error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("no se pudo leer la configuración: %w", err)
	}
	if err := cfg.apply(file); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) apply(file *ini.File) error {
	if file.HasSection("scan") {
		sec := file.Section("scan")
		if sec.HasKey("min_size") {
			v, err := sec.Key("min_size").Int64()
			if err != nil {
				return fmt.Errorf("scan.min_size: %w", err)
			}
			c.Scan.MinSize = v
		}
		if sec.HasKey("excludes") {
			c.Scan.Excludes = splitList(sec.Key("excludes").String())
		}
	}

	if file.HasSection("engine") {
		sec := file.Section("engine")
		if sec.HasKey("strategy") {
			c.Engine.Strategy = sec.Key("strategy").String()
		}
		if sec.HasKey("digest") {
			c.Engine.Digest = sec.Key("digest").String()
		}
		if sec.HasKey("workers") {
			v, err := sec.Key("workers").Int()
			if err != nil {
				return fmt.Errorf("engine.workers: %w", err)
			}
			c.Engine.Workers = v
		}
		if sec.HasKey("prehash") {
			v, err := sec.Key("prehash").Bool()
			if err != nil {
				return fmt.Errorf("engine.prehash: %w", err)
			}
			c.Engine.PreHash = v
		}
	}

	if file.HasSection("output") {
		sec := file.Section("output")
		if sec.HasKey("format") {
			c.Output.Format = sec.Key("format").String()
		}
		if sec.HasKey("sort") {
			c.Output.Sort = sec.Key("sort").String()
		}
		if sec.HasKey("keep") {
			c.Output.Keep = sec.Key("keep").String()
		}
	}

	if file.HasSection("log") {
		sec := file.Section("log")
		if sec.HasKey("level") {
			c.Log.Level = sec.Key("level").String()
		}
	}

	return c.Validate()
}

// Validate comprueba los valores enumerados.
func (c *Config) Validate() error {
	if _, err := entities.ParseStrategy(c.Engine.Strategy); err != nil {
		return err
	}
	if _, err := hasher.Lookup(c.Engine.Digest); err != nil {
		return err
	}
	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("formato de salida desconocido: %q", c.Output.Format)
	}
	switch c.Output.Sort {
	case "total", "size", "count", "path":
	default:
		return fmt.Errorf("criterio de orden desconocido: %q", c.Output.Sort)
	}
	switch c.Output.Keep {
	case "shortest", "longest", "oldest", "newest", "first":
	default:
		return fmt.Errorf("criterio de conservación desconocido: %q", c.Output.Keep)
	}
	if c.Engine.Workers < 0 {
		return fmt.Errorf("engine.workers no puede ser negativo: %d", c.Engine.Workers)
	}
	return nil
}

// File convierte la configuración a un ini.File.
func (c *Config) File() (*ini.File, error) {
	file := ini.Empty()

	sections := []struct {
		name string
		keys [][2]string
	}{
		{"scan", [][2]string{
			{"min_size", fmt.Sprint(c.Scan.MinSize)},
			{"excludes", strings.Join(c.Scan.Excludes, ",")},
		}},
		{"engine", [][2]string{
			{"strategy", c.Engine.Strategy},
			{"digest", c.Engine.Digest},
			{"workers", fmt.Sprint(c.Engine.Workers)},
			{"prehash", fmt.Sprint(c.Engine.PreHash)},
		}},
		{"output", [][2]string{
			{"format", c.Output.Format},
			{"sort", c.Output.Sort},
			{"keep", c.Output.Keep},
		}},
		{"log", [][2]string{
			{"level", c.Log.Level},
		}},
	}

	for _, s := range sections {
		sec, err := file.NewSection(s.name)
		if err != nil {
			return nil, fmt.Errorf("no se pudo crear la sección %s: %w", s.name, err)
		}
		for _, kv := range s.keys {
			if _, err := sec.NewKey(kv[0], kv[1]); err != nil {
				return nil, fmt.Errorf("no se pudo asignar %s.%s: %w", s.name, kv[0], err)
			}
		}
	}
	return file, nil
}

// WriteTo escribe la configuración en formato INI.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	file, err := c.File()
	if err != nil {
		return 0, err
	}
	return file.WriteTo(w)
}

// Save guarda la configuración en path, creando el directorio si falta.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("no se pudo crear el directorio de configuración: %w", err)
	}
	file, err := c.File()
	if err != nil {
		return err
	}
	return file.SaveTo(path)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
