package hasher

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// ChunkSize es el tamaño de cada bloque comparado.
const ChunkSize = 4 * 1024

// Equal indica si dos archivos tienen exactamente el mismo contenido.
// Cualquier error de apertura o lectura cuenta como "distintos".
func Equal(a, b string) bool {
	same, err := Compare(a, b)
	return err == nil && same
}

// Compare lee ambos archivos por bloques de ChunkSize hasta encontrar una
// diferencia o llegar a EOF en los dos a la vez.
// Si devuelve error, el resultado booleano es siempre false.
func Compare(a, b string) (bool, error) {
	fa, err := os.Open(a)
	if err != nil {
		return false, err
	}
	defer fa.Close()

	fb, err := os.Open(b)
	if err != nil {
		return false, err
	}
	defer fb.Close()

	bufA := make([]byte, ChunkSize)
	bufB := make([]byte, ChunkSize)

	for {
		na, errA := io.ReadFull(fa, bufA)
		if errA != nil && !isEOF(errA) {
			return false, errA
		}
		nb, errB := io.ReadFull(fb, bufB)
		if errB != nil && !isEOF(errB) {
			return false, errB
		}

		if !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}

		// Un bloque corto (o vacío) marca el final del archivo
		endA, endB := errA != nil, errB != nil
		if endA || endB {
			return endA && endB, nil
		}
	}
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
