package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-betriebsanweisung/instruction"
)

type fakeRenderer struct {
	records []instruction.Record
	err     error
}

func (f *fakeRenderer) Render(_ context.Context, record instruction.Record) (instruction.Rendered, error) {
	f.records = append(f.records, record)
	if f.err != nil {
		return instruction.Rendered{}, f.err
	}
	return instruction.Rendered{
		ID:          "doc-1",
		Filename:    "betriebsanweisung_20240305_143015.pdf",
		ContentType: instruction.ContentTypePDF,
		Bytes:       []byte("%PDF-1.3 test"),
		Pages:       1,
		Category:    record.Category,
		GeneratedAt: time.Date(2024, 3, 5, 14, 30, 15, 0, time.UTC),
	}, nil
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m *Model, msg tea.Msg) tea.Cmd {
	t.Helper()
	model, cmd := m.Update(msg)
	require.Same(t, m, model)
	return cmd
}

func TestNew_PreselectsActivity(t *testing.T) {
	m := New(Config{})

	assert.Equal(t, StepSelectCategory, m.Step())
	assert.Equal(t, instruction.CategoryActivity, m.Selected().Key)
}

func TestNew_UsesConfiguredSelectionAndAuthor(t *testing.T) {
	m := New(Config{Selected: instruction.CategoryBiological, Author: "M. Muster"})

	assert.Equal(t, instruction.CategoryBiological, m.Selected().Key)
	assert.Equal(t, "M. Muster", m.Record().Author)
}

func TestUpdate_NavigateCategories(t *testing.T) {
	m := New(Config{Selected: instruction.CategoryMachine})

	press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, instruction.CategoryHazardous, m.Selected().Key)

	press(t, m, keyRunes("j"))
	assert.Equal(t, instruction.CategoryActivity, m.Selected().Key)

	press(t, m, keyRunes("k"))
	press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, instruction.CategoryMachine, m.Selected().Key)
}

func TestUpdate_EnterOpensFields(t *testing.T) {
	m := New(Config{})

	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, StepEditFields, m.Step())
	assert.Contains(t, m.View(), "Arbeitsbereich")
	assert.Contains(t, m.View(), "1. Anwendungsbereich")
}

func TestUpdate_TypingFillsFocusedField(t *testing.T) {
	m := New(Config{})
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	press(t, m, keyRunes("Lager"))
	press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	press(t, m, keyRunes("Leiterarbeiten"))

	record := m.Record()
	assert.Equal(t, "Lager", record.WorkArea)
	assert.Equal(t, "Leiterarbeiten", record.Title)
	assert.Equal(t, instruction.CategoryActivity, record.Category)
}

func TestUpdate_LoadExample(t *testing.T) {
	m := New(Config{})
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlE})

	example, err := instruction.DefaultCatalog().ExampleRecord(instruction.CategoryActivity)
	require.NoError(t, err)
	record := m.Record()
	assert.Equal(t, example.Scope, record.Scope)
	assert.Equal(t, example.Disposal, record.Disposal)
	assert.Empty(t, record.WorkArea)
}

func TestUpdate_ResetKeepsAuthor(t *testing.T) {
	m := New(Config{Author: "M. Muster"})
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	press(t, m, keyRunes("Lager"))
	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlE})

	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})

	record := m.Record()
	assert.Empty(t, record.WorkArea)
	assert.Empty(t, record.Scope)
	assert.Equal(t, "M. Muster", record.Author)
}

func TestUpdate_SubmitRejectsInvalidRecord(t *testing.T) {
	renderer := &fakeRenderer{}
	m := New(Config{Renderer: renderer, Validator: instruction.DefaultRequiredFields})
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Nil(t, cmd)
	require.Error(t, m.Err())
	assert.Equal(t, instruction.KindInvalidInput, instruction.KindFromError(m.Err()))
	assert.Empty(t, renderer.records)
	assert.Contains(t, m.View(), "Fehler")
}

func TestUpdate_SubmitWritesDocument(t *testing.T) {
	dir := t.TempDir()
	renderer := &fakeRenderer{}
	m := New(Config{
		Renderer:  renderer,
		Validator: instruction.DefaultRequiredFields,
		OutputDir: dir,
	})
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	press(t, m, keyRunes("Lager"))
	press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	press(t, m, keyRunes("Leiterarbeiten"))

	cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	press(t, m, cmd())

	require.NoError(t, m.Err())
	assert.Equal(t, StepComplete, m.Step())
	require.Len(t, renderer.records, 1)
	assert.Equal(t, "Leiterarbeiten", renderer.records[0].Title)

	result, path := m.Result()
	require.NotNil(t, result)
	assert.Equal(t, filepath.Join(dir, "betriebsanweisung_20240305_143015.pdf"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 test", string(data))
	assert.Contains(t, m.View(), "PDF erstellt")

	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StepEditFields, m.Step())
}

func TestUpdate_SubmitShowsRenderError(t *testing.T) {
	renderer := &fakeRenderer{err: errors.New("engine down")}
	m := New(Config{Renderer: renderer, Write: func(instruction.Rendered) (string, error) {
		t.Fatal("write must not be called")
		return "", nil
	}})
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	press(t, m, cmd())

	assert.Equal(t, StepEditFields, m.Step())
	require.Error(t, m.Err())
	assert.Contains(t, m.View(), "engine down")
}

func TestUpdate_SubmitWithoutRenderer(t *testing.T) {
	m := New(Config{})
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Nil(t, cmd)
	assert.Equal(t, instruction.KindNotImpl, instruction.KindFromError(m.Err()))
}

func TestUpdate_EscReturnsToCategories(t *testing.T) {
	m := New(Config{})
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, StepSelectCategory, m.Step())
}

func TestUpdate_QuitKeys(t *testing.T) {
	m := New(Config{})

	cmd := press(t, m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	cmd = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestStyles_ForCategory(t *testing.T) {
	s := DefaultStyles()
	category, err := instruction.DefaultCatalog().Lookup(instruction.CategoryHazardous)
	require.NoError(t, err)

	accented := s.ForCategory(category)

	assert.Equal(t, "#E63946", string(accented.Theme().Primary))
	assert.Equal(t, DefaultTheme().Primary, s.Theme().Primary)
}
