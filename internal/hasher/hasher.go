package hasher

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/minio/highwayhash"
)

// BlockSize optimiza la lectura del disco (32KB es un buen estándar)
const BlockSize = 32 * 1024

// PreHashSize define cuánto leemos para la prueba rápida (4KB)
const PreHashSize = 4 * 1024

// highwayKey es fija: el digest solo se compara dentro de una misma ejecución.
var highwayKey, _ = hex.DecodeString("000102030405060708090A0B0C0D0E0FF0E0D0C0B0A090807060504030201000")

// Buffers de lectura de HashFile, reutilizados entre archivos.
var bufferPool = sync.Pool{
	New: func() any {
		b := make([]byte, BlockSize)
		return &b
	},
}

// Digests xxhash del pre-hash; se llaman una vez por candidato.
var hashPool = sync.Pool{
	New: func() any {
		return xxhash.New()
	},
}

// Algorithm describe un algoritmo de digest disponible.
type Algorithm struct {
	Name string
	Size int // bytes del digest
	New  func() hash.Hash
}

// DefaultAlgorithm es el digest de 128 bits usado si no se indica otro.
const DefaultAlgorithm = "md5"

// Names lista los algoritmos soportados.
func Names() []string {
	return []string{"md5", "xxhash", "highway"}
}

// Lookup devuelve el algoritmo con ese nombre.
func Lookup(name string) (*Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "md5", "":
		return &Algorithm{Name: "md5", Size: md5.Size, New: md5.New}, nil
	case "xxhash", "xxh64":
		return &Algorithm{Name: "xxhash", Size: 8, New: func() hash.Hash { return xxhash.New() }}, nil
	case "highway", "highwayhash":
		return &Algorithm{
			Name: "highway",
			Size: highwayhash.Size128,
			New: func() hash.Hash {
				h, err := highwayhash.New128(highwayKey)
				if err != nil {
					// la clave es de 32 bytes, no puede fallar
					panic(err)
				}
				return h
			},
		}, nil
	default:
		return nil, fmt.Errorf("algoritmo de hash no soportado: %s", name)
	}
}

// HashFile calcula el digest del contenido completo.
// El resultado es el digest en bytes crudos, usable como clave de mapa.
func HashFile(path string, alg *Algorithm) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	h := alg.New()

	bufPtr := bufferPool.Get().(*[]byte)
	buf := *bufPtr
	defer bufferPool.Put(bufPtr)

	if _, err := io.CopyBuffer(h, file, buf); err != nil {
		return "", err
	}

	return string(h.Sum(nil)), nil
}

// HashFirstBlock devuelve el xxhash de los primeros PreHashSize bytes.
// Un archivo más corto se hashea entero.
func HashFirstBlock(path string) (uint64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	h := hashPool.Get().(*xxhash.Digest)
	defer hashPool.Put(h)
	h.Reset()

	if _, err := io.CopyN(h, file, PreHashSize); err != nil && err != io.EOF {
		return 0, err
	}
	return h.Sum64(), nil
}
