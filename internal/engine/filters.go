package engine

import (
	"fmt"
	"os"

	"github.com/soyunomas/dupfinder/internal/hasher"
)

// Nombres de fase usados en los registros de archivos omitidos.
const (
	StageSize     = "size"
	StagePreHash  = "prehash"
	StageChecksum = "checksum"
	StageContent  = "content"
)

// FileSize obtiene el tamaño vía metadatos, sin leer el contenido.
func FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%s: no es un archivo regular", path)
	}
	return info.Size(), nil
}

// ChecksumFeature devuelve la característica "digest del contenido" para alg.
func ChecksumFeature(alg *hasher.Algorithm) FeatureFunc[string] {
	return func(path string) (string, error) {
		return hasher.HashFile(path, alg)
	}
}

// GroupBySize agrupa por tamaño de archivo.
func GroupBySize(paths []string, onErr func(string, error)) []Class[int64] {
	return Classify(paths, FileSize, onErr)
}

// GroupByChecksum agrupa por digest del contenido completo.
// Una colisión del digest produce un falso positivo: no se verifica byte a byte.
func GroupByChecksum(paths []string, alg *hasher.Algorithm, onErr func(string, error)) [][]string {
	return GroupByFeature(paths, ChecksumFeature(alg), onErr)
}

// GroupByPrefix agrupa por el hash del primer bloque (4KB).
func GroupByPrefix(paths []string, onErr func(string, error)) [][]string {
	return GroupByFeature(paths, hasher.HashFirstBlock, onErr)
}
