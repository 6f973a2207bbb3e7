package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-betriebsanweisung/adapters/instructionapi"
	"github.com/goliatone/go-betriebsanweisung/instruction"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readPDF(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "expected a PDF at %s", path)
	return data
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := execute(t, "version")

	assert.NoError(t, err)
	assert.Contains(t, out, "betriebsanweisung version test-version-1.0.0")
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	for _, name := range []string{"serve", "render", "render-batch", "categories", "form", "version"} {
		assert.Contains(t, names, name)
	}
}

func TestCategoriesCmd_ListsCatalogInOrder(t *testing.T) {
	out, err := execute(t, "categories")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "maschine"))
	assert.True(t, strings.HasPrefix(lines[1], "gefahrstoff"))
	assert.Contains(t, lines[1], "#E63946")
	assert.True(t, strings.HasPrefix(lines[2], "taetigkeit"))
	assert.True(t, strings.HasPrefix(lines[3], "biologisch"))
}

func TestCategoriesCmd_JSON(t *testing.T) {
	out, err := execute(t, "categories", "--json")
	require.NoError(t, err)

	var templates map[string]instructionapi.Template
	require.NoError(t, json.Unmarshal([]byte(out), &templates))
	require.Len(t, templates, 4)
	assert.Equal(t, "#457B9D", templates["taetigkeit"].Color)
	assert.Equal(t, "Tätigkeiten", templates["taetigkeit"].Name)
	assert.NotEmpty(t, templates["gefahrstoff"].Examples["gefahren"])
}

func TestRenderCmd_RequiresInput(t *testing.T) {
	_, err := execute(t, "render")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--example")
}

func TestRenderCmd_ExampleToDirectory(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "render", "--example", "gefahrstoff", "--out", dir)
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "betriebsanweisung_*.pdf"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	readPDF(t, matches[0])
	assert.Contains(t, out, matches[0])
}

func TestRenderCmd_RecordFileToPath(t *testing.T) {
	dir := t.TempDir()
	record := writeFile(t, dir, "leiter.yaml", `kategorie: taetigkeit
arbeitsbereich: Lager
titel: Ladder work
gefahren: |
  Absturz
  Umkippen der Leiter
`)
	target := filepath.Join(dir, "nested", "leiter.pdf")

	_, err := execute(t, "render", record, "--out", target, "--ersteller", "M. Muster")
	require.NoError(t, err)

	readPDF(t, target)
}

func TestRenderCmd_UnknownCategoryIsRejected(t *testing.T) {
	dir := t.TempDir()
	record := writeFile(t, dir, "record.json",
		`{"kategorie": "nonexistent", "arbeitsbereich": "Lager", "titel": "Regal"}`)

	_, err := execute(t, "render", record, "--out", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")

	matches, globErr := filepath.Glob(filepath.Join(dir, "*.pdf"))
	require.NoError(t, globErr)
	assert.Empty(t, matches)
}

func TestRenderCmd_FallbackRendersUnknownCategory(t *testing.T) {
	dir := t.TempDir()
	record := writeFile(t, dir, "record.toml", `kategorie = "nonexistent"
arbeitsbereich = "Lager"
titel = "Regal"
`)
	target := filepath.Join(dir, "regal.pdf")

	_, err := execute(t, "render", record, "--fallback", "taetigkeit", "--out", target)
	require.NoError(t, err)

	readPDF(t, target)
}

func TestRenderCmd_FallbackCoversMissingCategory(t *testing.T) {
	dir := t.TempDir()
	record := writeFile(t, dir, "record.yaml", "arbeitsbereich: Lager\ntitel: Regal\n")
	target := filepath.Join(dir, "regal.pdf")

	_, err := execute(t, "render", record, "--out", target)
	require.Error(t, err)
	fields := instruction.FieldsFromError(err)
	require.Len(t, fields, 1)
	assert.Equal(t, instruction.FieldCategory, fields[0].Field)

	_, err = execute(t, "render", record, "--fallback", "taetigkeit", "--out", target)
	require.NoError(t, err)
	readPDF(t, target)
}

func TestRenderCmd_UnknownExample(t *testing.T) {
	_, err := execute(t, "render", "--example", "nonexistent", "--out", t.TempDir())

	require.Error(t, err)
	assert.True(t, instruction.IsUnknownCategory(err))
}

func TestRenderBatchCmd_WritesEveryRecord(t *testing.T) {
	dir := t.TempDir()
	batch := writeFile(t, dir, "batch.yaml", `anweisungen:
  - kategorie: maschine
    arbeitsbereich: Halle 1
    titel: Bohrmaschine
  - kategorie: biologisch
    arbeitsbereich: Labor
    titel: Proben
`)
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, "render-batch", batch, "--out", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 document(s)")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRenderBatchCmd_Limit(t *testing.T) {
	dir := t.TempDir()
	batch := writeFile(t, dir, "batch.json", `{"anweisungen": [
  {"kategorie": "maschine", "arbeitsbereich": "Halle 1", "titel": "Bohrmaschine"},
  {"kategorie": "gefahrstoff", "arbeitsbereich": "Labor", "titel": "Aceton"}
]}`)
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, "render-batch", batch, "--out", outDir, "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "1 document(s)")
}

func TestBuildRecord(t *testing.T) {
	catalog := instruction.DefaultCatalog()
	example, err := catalog.ExampleRecord(instruction.CategoryBiological)
	require.NoError(t, err)

	t.Run("bare example gets placeholder header", func(t *testing.T) {
		record, err := buildRecord(catalog, "", &renderOptions{example: "biologisch"}, "Sicherheitsfachkraft")
		require.NoError(t, err)

		assert.Equal(t, instruction.CategoryBiological, record.Category)
		assert.Equal(t, "Beispiel", record.WorkArea)
		assert.Equal(t, "Biologische Arbeitsstoffe", record.Title)
		assert.Equal(t, "Sicherheitsfachkraft", record.Author)
		assert.Equal(t, example.Hazards, record.Hazards)
	})

	t.Run("file sections win over example", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "record.json",
			`{"kategorie": "biologisch", "arbeitsbereich": "Labor", "titel": "Proben", "gefahren": "Infektion"}`)

		record, err := buildRecord(catalog, path, &renderOptions{example: "biologisch", author: "M. Muster"}, "")
		require.NoError(t, err)

		assert.Equal(t, "Labor", record.WorkArea)
		assert.Equal(t, "Infektion", record.Hazards)
		assert.Equal(t, example.Accidents, record.Accidents)
		assert.Equal(t, "M. Muster", record.Author)
	})
}

func TestWriteRendered(t *testing.T) {
	dir := t.TempDir()
	rendered := instruction.Rendered{
		Filename: "betriebsanweisung_20240305_143015.pdf",
		Bytes:    []byte("%PDF-1.3 test"),
	}

	path, err := writeRendered(dir, rendered)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, rendered.Filename), path)

	path, err = writeRendered(filepath.Join(dir, "a", "custom.PDF"), rendered)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a", "custom.PDF"), path)
	readPDF(t, path)
}
