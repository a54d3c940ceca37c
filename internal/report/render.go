package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
)

// WriteJSON escribe el reporte indentado.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText escribe el reporte para lectura humana.
func WriteText(w io.Writer, r Report) error {
	bw := bufio.NewWriter(w)

	if len(r.Groups) == 0 {
		fmt.Fprintln(bw, "✅ ¡Limpio! No se encontraron duplicados.")
	} else {
		fmt.Fprintln(bw, "🔴 DUPLICADOS ENCONTRADOS:")
		for _, g := range r.Groups {
			fmt.Fprintf(bw, "   📦 Grupo (Size: %s) | 👑 KEEPER: %s\n", humanize.Bytes(uint64(g.Size)), g.Keeper)
			for _, hl := range g.HardLinks {
				fmt.Fprintf(bw, "      🔗 [HardLink]: %s (0B)\n", hl)
			}
			for _, v := range g.Victims {
				fmt.Fprintf(bw, "      🗑️  [Candidato]: %s\n", v)
			}
			fmt.Fprintln(bw)
		}
	}

	if len(r.Skipped) > 0 {
		fmt.Fprintf(bw, "⚠️  %d archivos omitidos por errores de lectura\n", len(r.Skipped))
	}

	fmt.Fprintln(bw, "------------------------------------------------")
	fmt.Fprintf(bw, "🏁 Escaneo terminado. Grupos: %d | Candidatos a borrar: %d\n", r.Summary.TotalGroups, r.Summary.TotalDuplicates)
	fmt.Fprintf(bw, "💾 Espacio recuperable: %s\n", r.Summary.BytesSavedHuman)

	return bw.Flush()
}

// WriteScript genera un script sh con un rm por cada duplicado, para
// revisarlo antes de ejecutarlo. Los enlaces duros no se incluyen.
func WriteScript(w io.Writer, r Report) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "#!/bin/sh\n")
	fmt.Fprintf(bw, "# Generado por dupfinder (%s)\n", r.Metadata.Strategy)
	fmt.Fprintf(bw, "echo 'Iniciando limpieza...'\n\n")

	for _, g := range r.Groups {
		if len(g.Victims) == 0 {
			continue
		}
		fmt.Fprintf(bw, "# Size: %d\n", g.Size)
		fmt.Fprintf(bw, "# Keeper: %s\n", g.Keeper)
		for _, v := range g.Victims {
			fmt.Fprintf(bw, "rm -v %s\n", shellQuote(v))
		}
		fmt.Fprintf(bw, "\n")
	}
	return bw.Flush()
}

// SaveScript escribe WriteScript en filename con permisos de ejecución.
func SaveScript(filename string, r Report) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o755)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteScript(f, r); err != nil {
		return err
	}
	return f.Close()
}

// shellQuote entrecomilla con comillas simples, seguro para sh.
func shellQuote(s string) string {
	out := []byte{'\''}
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			out = append(out, `'\''`...)
			continue
		}
		out = append(out, s[i])
	}
	return string(append(out, '\''))
}
