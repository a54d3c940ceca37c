package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyunomas/dupfinder/internal/engine"
	"github.com/soyunomas/dupfinder/internal/entities"
)

func mkfile(t *testing.T, dir, name, data string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
	return p
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	a := mkfile(t, dir, "a", "hello")
	b := mkfile(t, dir, "b", "hello")
	c := mkfile(t, dir, "c", "hello")

	res := &engine.Result{
		Groups:          []entities.Group{{Size: 5, Files: []string{a, b, c}}},
		Skipped:         []entities.Skip{{Path: "/x", Stage: engine.StageChecksum, Err: "permission denied"}},
		FilesConsidered: 4,
		Duration:        time.Second,
	}

	rep := Build(res, Metadata{ScannedPath: dir, Strategy: "checksum"}, KeepShortestPath)

	require.Len(t, rep.Groups, 1)
	assert.Equal(t, GroupResult{Size: 5, Keeper: a, Victims: []string{b, c}}, rep.Groups[0])
	assert.Equal(t, Summary{
		TotalFilesScanned: 4,
		TotalGroups:       1,
		TotalDuplicates:   2,
		TotalSkipped:      1,
		BytesSaved:        10,
		BytesSavedHuman:   "10 B",
	}, rep.Summary)
	assert.Equal(t, "1s", rep.Metadata.Duration)
	assert.Equal(t, "shortest", rep.Metadata.Keep)
	assert.Equal(t, []string{a, b, c}, res.Groups[0].Files, "Build no debe reordenar el resultado")
}

func TestBuild_HardLinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("sin inodos")
	}

	dir := t.TempDir()
	a := mkfile(t, dir, "a", "payload")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Link(a, link))
	b := mkfile(t, dir, "b", "payload")

	res := &engine.Result{Groups: []entities.Group{{Size: 7, Files: []string{a, link, b}}}}
	rep := Build(res, Metadata{}, KeepFirst)

	require.Len(t, rep.Groups, 1)
	assert.Equal(t, []string{link}, rep.Groups[0].HardLinks)
	assert.Equal(t, []string{b}, rep.Groups[0].Victims)
	assert.Equal(t, 1, rep.Summary.TotalHardLinks)
	assert.EqualValues(t, 7, rep.Summary.BytesSaved)
}

func TestBuild_Keep(t *testing.T) {
	dir := t.TempDir()
	mid := mkfile(t, dir, "mid", "same")
	long := mkfile(t, dir, "longest", "same")
	short := mkfile(t, dir, "s", "same")
	twin := mkfile(t, dir, "t", "same")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range []string{mid, long, short, twin} {
		mod := base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, os.Chtimes(p, mod, mod))
	}
	files := []string{mid, long, short, twin}

	tests := []struct {
		keep    Keep
		keeper  string
		victims []string
	}{
		{KeepShortestPath, short, []string{mid, long, twin}},
		{KeepLongestPath, long, []string{mid, short, twin}},
		{KeepOldest, mid, []string{long, short, twin}},
		{KeepNewest, twin, []string{mid, long, short}},
		{KeepFirst, mid, []string{long, short, twin}},
	}

	for _, tt := range tests {
		t.Run(tt.keep.String(), func(t *testing.T) {
			res := &engine.Result{Groups: []entities.Group{{Size: 4, Files: append([]string(nil), files...)}}}
			rep := Build(res, Metadata{}, tt.keep)

			require.Len(t, rep.Groups, 1)
			assert.Equal(t, tt.keeper, rep.Groups[0].Keeper)
			assert.Equal(t, tt.victims, rep.Groups[0].Victims)
			assert.Equal(t, files, res.Groups[0].Files)
		})
	}
}

func TestBuild_KeepTieBreaks(t *testing.T) {
	dir := t.TempDir()
	b := mkfile(t, dir, "bb", "x")
	a := mkfile(t, dir, "aa", "x")
	gone := filepath.Join(dir, "0") // sin fecha: nunca es Keeper por fecha

	mod := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(a, mod, mod))
	require.NoError(t, os.Chtimes(b, mod, mod))

	// mismas longitudes y fechas: gana el alfabético
	for _, keep := range []Keep{KeepShortestPath, KeepLongestPath, KeepOldest, KeepNewest} {
		assert.Equal(t, 1, keeperIndex([]string{b, a}, keep), keep.String())
	}
	assert.Equal(t, 1, keeperIndex([]string{gone, a}, KeepOldest))
	assert.Equal(t, 0, keeperIndex([]string{b, a}, KeepFirst))
}

func TestParseKeep(t *testing.T) {
	for _, k := range []Keep{KeepShortestPath, KeepLongestPath, KeepOldest, KeepNewest, KeepFirst} {
		got, err := ParseKeep(strings.ToUpper(k.String()))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	got, err := ParseKeep("")
	require.NoError(t, err)
	assert.Equal(t, KeepShortestPath, got)

	_, err = ParseKeep("biggest")
	assert.Error(t, err)
}

func TestSort(t *testing.T) {
	groups := []GroupResult{
		{Size: 10, Keeper: "/d/file10", Victims: []string{"x"}},         // total 20
		{Size: 100, Keeper: "/d/file2", Victims: []string{"y"}},         // total 200
		{Size: 5, Keeper: "/d/file1", Victims: []string{"p", "q", "r"}}, // total 20
	}

	byKeeper := func(gs []GroupResult) []string {
		var out []string
		for _, g := range gs {
			out = append(out, g.Keeper)
		}
		return out
	}

	tests := []struct {
		key  SortKey
		want []string
	}{
		{SortByTotal, []string{"/d/file2", "/d/file1", "/d/file10"}},
		{SortBySize, []string{"/d/file2", "/d/file10", "/d/file1"}},
		{SortByCount, []string{"/d/file1", "/d/file2", "/d/file10"}},
		{SortByPath, []string{"/d/file1", "/d/file2", "/d/file10"}},
	}
	for _, tt := range tests {
		gs := append([]GroupResult(nil), groups...)
		Sort(gs, tt.key)
		assert.Equal(t, tt.want, byKeeper(gs), "key %d", tt.key)
	}
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("COUNT")
	require.NoError(t, err)
	assert.Equal(t, SortByCount, k)

	k, err = ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortByTotal, k)

	_, err = ParseSortKey("random")
	assert.Error(t, err)
}

func sampleReport() Report {
	return Report{
		Summary:  Summary{TotalGroups: 1, TotalDuplicates: 1, BytesSaved: 3, BytesSavedHuman: "3 B"},
		Groups:   []GroupResult{{Size: 3, Keeper: "/k", Victims: []string{"/it's here"}}},
		Metadata: Metadata{Strategy: "content"},
	}
}

func TestWriteScript(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteScript(&buf, sampleReport()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "#!/bin/sh\n"))
	assert.Contains(t, out, `rm -v '/it'\''s here'`)
	assert.NotContains(t, out, "rm -v '/k'")
}

func TestSaveScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.sh")
	require.NoError(t, SaveScript(path, sampleReport()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o100)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReport()))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "/k", decoded.Groups[0].Keeper)
	assert.Equal(t, 1, decoded.Summary.TotalDuplicates)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleReport()))
	assert.Contains(t, buf.String(), "KEEPER: /k")
	assert.Contains(t, buf.String(), "[Candidato]: /it's here")

	buf.Reset()
	require.NoError(t, WriteText(&buf, Report{}))
	assert.Contains(t, buf.String(), "No se encontraron duplicados")
}
