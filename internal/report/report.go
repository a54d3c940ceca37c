package report

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/soyunomas/dupfinder/internal/engine"
	"github.com/soyunomas/dupfinder/internal/entities"
)

// --- ESTRUCTURAS PARA EL REPORTE FINAL ---

type Report struct {
	Summary  Summary         `json:"summary"`
	Groups   []GroupResult   `json:"groups"`
	Skipped  []entities.Skip `json:"skipped,omitempty"`
	Metadata Metadata        `json:"metadata"`
}

type Metadata struct {
	ScannedPath string    `json:"scanned_path"`
	Strategy    string    `json:"strategy"`
	Keep        string    `json:"keep"`
	Digest      string    `json:"digest,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Duration    string    `json:"duration_human"`
}

type Summary struct {
	TotalFilesScanned int    `json:"total_files_scanned"`
	TotalGroups       int    `json:"total_groups"`
	TotalDuplicates   int    `json:"total_duplicates"`
	TotalHardLinks    int    `json:"total_hard_links"`
	TotalSkipped      int    `json:"total_skipped"`
	BytesSaved        int64  `json:"bytes_saved"`
	BytesSavedHuman   string `json:"bytes_saved_human"`
}

type GroupResult struct {
	Size      int64    `json:"file_size"`
	Keeper    string   `json:"keeper"`
	Victims   []string `json:"victims"`
	HardLinks []string `json:"hardlinks,omitempty"`
}

// Count es el número total de miembros del grupo.
func (g GroupResult) Count() int {
	return 1 + len(g.Victims) + len(g.HardLinks)
}

// Build genera el reporte a partir del resultado del motor. keep elige el
// "Keeper" de cada grupo; el resto conserva el orden del motor. Los que
// comparten dispositivo e inodo con el Keeper o con un miembro anterior se
// listan como enlaces duros y no suman espacio recuperable.
// res no se modifica.
func Build(res *engine.Result, meta Metadata, keep Keep) Report {
	meta.Duration = res.Duration.String()
	meta.Keep = keep.String()
	rep := Report{
		Metadata: meta,
		Summary: Summary{
			TotalFilesScanned: res.FilesConsidered,
			TotalSkipped:      len(res.Skipped),
		},
		Groups:  []GroupResult{},
		Skipped: res.Skipped,
	}

	for _, group := range res.Groups {
		if group.Len() < 2 {
			continue
		}

		k := keeperIndex(group.Files, keep)
		keeper := group.Files[k]
		gRes := GroupResult{
			Size:   group.Size,
			Keeper: keeper,
		}

		seen := make(map[fileID]bool)
		if id, ok := lookupID(keeper); ok {
			seen[id] = true
		}

		for i, path := range group.Files {
			if i == k {
				continue
			}
			id, ok := lookupID(path)
			if ok && seen[id] {
				gRes.HardLinks = append(gRes.HardLinks, path)
				rep.Summary.TotalHardLinks++
				continue
			}
			if ok {
				seen[id] = true
			}
			gRes.Victims = append(gRes.Victims, path)
			rep.Summary.TotalDuplicates++
			rep.Summary.BytesSaved += group.Size
		}

		rep.Groups = append(rep.Groups, gRes)
	}

	rep.Summary.TotalGroups = len(rep.Groups)
	rep.Summary.BytesSavedHuman = humanize.Bytes(uint64(rep.Summary.BytesSaved))
	return rep
}
