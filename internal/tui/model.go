package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-betriebsanweisung/instruction"
)

// Step tracks the current screen of the form.
type Step int

const (
	StepSelectCategory Step = iota
	StepEditFields
	StepComplete
)

// Key constants.
const (
	keyEnter = "enter"
	keyEsc   = "esc"
	keyQuit  = "ctrl+c"
)

const (
	minBlockWidth = 20
	maxBlockWidth = 100
)

// Renderer renders a record into a PDF.
type Renderer interface {
	Render(ctx context.Context, record instruction.Record) (instruction.Rendered, error)
}

// Validator checks a record before rendering.
type Validator interface {
	Validate(record instruction.Record) error
}

// WriteFunc stores a rendered document and returns its path.
type WriteFunc func(result instruction.Rendered) (string, error)

// Config configures the form model.
type Config struct {
	Catalog   *instruction.Catalog
	Renderer  Renderer
	Validator Validator
	Write     WriteFunc
	OutputDir string
	Author    string
	Selected  instruction.CategoryKey
	Styles    *Styles
	Context   context.Context
}

type renderedMsg struct {
	result instruction.Rendered
	path   string
	err    error
}

type field struct {
	spec  instruction.FieldSpec
	line  textinput.Model
	block textarea.Model
}

func newField(spec instruction.FieldSpec) field {
	f := field{spec: spec}
	if spec.Multiline {
		f.block = textarea.New()
		f.block.Placeholder = "Eine Zeile pro Punkt"
		f.block.ShowLineNumbers = false
		f.block.CharLimit = 0
		f.block.SetWidth(72)
		f.block.SetHeight(4)
		return f
	}
	f.line = textinput.New()
	f.line.CharLimit = 200
	f.line.Width = 60
	return f
}

func (f *field) value() string {
	if f.spec.Multiline {
		return f.block.Value()
	}
	return f.line.Value()
}

func (f *field) setValue(value string) {
	if f.spec.Multiline {
		f.block.SetValue(value)
		return
	}
	f.line.SetValue(value)
}

func (f *field) focus() tea.Cmd {
	if f.spec.Multiline {
		return f.block.Focus()
	}
	return f.line.Focus()
}

func (f *field) blur() {
	if f.spec.Multiline {
		f.block.Blur()
		return
	}
	f.line.Blur()
}

func (f *field) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.spec.Multiline {
		f.block, cmd = f.block.Update(msg)
		return cmd
	}
	f.line, cmd = f.line.Update(msg)
	return cmd
}

func (f *field) view() string {
	if f.spec.Multiline {
		return f.block.View()
	}
	return f.line.View()
}

// Model is the bubbletea model of the instruction form.
type Model struct {
	ctx       context.Context
	styles    *Styles
	base      *Styles
	catalog   *instruction.Catalog
	renderer  Renderer
	validator Validator
	write     WriteFunc

	step       Step
	categories []instruction.Category
	selected   int
	fields     []field
	focusIndex int
	rendering  bool

	result *instruction.Rendered
	path   string
	err    error
}

// New creates the form model.
func New(cfg Config) *Model {
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = instruction.DefaultCatalog()
	}
	base := cfg.Styles
	if base == nil {
		base = DefaultStyles()
	}
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	write := cfg.Write
	if write == nil {
		write = DirectoryWriter(cfg.OutputDir)
	}

	m := &Model{
		ctx:        ctx,
		styles:     base,
		base:       base,
		catalog:    catalog,
		renderer:   cfg.Renderer,
		validator:  cfg.Validator,
		write:      write,
		step:       StepSelectCategory,
		categories: catalog.Categories(),
	}

	for _, spec := range instruction.HeaderFields {
		m.fields = append(m.fields, newField(spec))
	}
	for _, spec := range instruction.SectionFields {
		m.fields = append(m.fields, newField(spec))
	}
	if cfg.Author != "" {
		m.setField(instruction.FieldAuthor, cfg.Author)
	}

	preselect := cfg.Selected
	if preselect == "" {
		preselect = instruction.CategoryActivity
	}
	for i, category := range m.categories {
		if category.Key == preselect {
			m.selected = i
		}
	}
	return m
}

// DirectoryWriter writes rendered documents into dir.
func DirectoryWriter(dir string) WriteFunc {
	return func(result instruction.Rendered) (string, error) {
		if dir == "" {
			dir = "."
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
		path := filepath.Join(dir, result.Filename)
		if err := os.WriteFile(path, result.Bytes, 0o644); err != nil {
			return "", err
		}
		return path, nil
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Step returns the current screen.
func (m *Model) Step() Step {
	return m.step
}

// Selected returns the highlighted category.
func (m *Model) Selected() instruction.Category {
	if len(m.categories) == 0 {
		return instruction.Category{}
	}
	return m.categories[m.selected]
}

// Record returns the record the form currently describes.
func (m *Model) Record() instruction.Record {
	record := instruction.Record{Category: m.Selected().Key}
	for i := range m.fields {
		record.SetField(m.fields[i].spec.Name, m.fields[i].value())
	}
	return record
}

// Result returns the last rendered document and the path it was written to.
func (m *Model) Result() (*instruction.Rendered, string) {
	return m.result, m.path
}

// Err returns the last error shown by the form.
func (m *Model) Err() error {
	return m.err
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > minBlockWidth+6 {
			for i := range m.fields {
				if m.fields[i].spec.Multiline {
					m.fields[i].block.SetWidth(min(msg.Width-6, maxBlockWidth))
				}
			}
		}
		return m, nil

	case renderedMsg:
		m.rendering = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.result = &msg.result
		m.path = msg.path
		m.step = StepComplete
		return m, nil

	case tea.KeyMsg:
		if msg.String() == keyQuit {
			return m, tea.Quit
		}
		switch m.step {
		case StepSelectCategory:
			return m.handleCategoryKey(msg)
		case StepEditFields:
			return m.handleFieldKey(msg)
		case StepComplete:
			return m.handleCompleteKey(msg)
		}
	}

	return m, nil
}

func (m *Model) handleCategoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.categories)-1 {
			m.selected++
		}
	case keyEnter:
		if len(m.categories) == 0 {
			return m, nil
		}
		m.styles = m.base.ForCategory(m.Selected())
		m.step = StepEditFields
		m.focusIndex = 0
		return m, m.updateFocus()
	case "q", keyEsc:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleFieldKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.rendering {
		return m, nil
	}
	switch msg.String() {
	case keyEsc:
		m.blurAll()
		m.step = StepSelectCategory
		return m, nil
	case "tab":
		m.focusIndex = (m.focusIndex + 1) % len(m.fields)
		return m, m.updateFocus()
	case "shift+tab":
		m.focusIndex--
		if m.focusIndex < 0 {
			m.focusIndex = len(m.fields) - 1
		}
		return m, m.updateFocus()
	case "ctrl+e":
		m.loadExample()
		return m, nil
	case "ctrl+r":
		m.reset()
		return m, m.updateFocus()
	case "ctrl+s":
		return m, m.submit()
	}
	return m, m.fields[m.focusIndex].update(msg)
}

func (m *Model) handleCompleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter, keyEsc:
		m.step = StepEditFields
		return m, m.updateFocus()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.fields {
		if i == m.focusIndex {
			cmd = m.fields[i].focus()
			continue
		}
		m.fields[i].blur()
	}
	return cmd
}

func (m *Model) blurAll() {
	for i := range m.fields {
		m.fields[i].blur()
	}
}

func (m *Model) setField(name, value string) {
	for i := range m.fields {
		if m.fields[i].spec.Name == name {
			m.fields[i].setValue(value)
		}
	}
}

// loadExample replaces the section texts with the category example.
func (m *Model) loadExample() {
	example, err := m.catalog.ExampleRecord(m.Selected().Key)
	if err != nil {
		m.err = err
		return
	}
	for _, spec := range instruction.SectionFields {
		value, _ := example.Field(spec.Name)
		m.setField(spec.Name, value)
	}
	m.err = nil
}

func (m *Model) reset() {
	for i := range m.fields {
		if m.fields[i].spec.Name == instruction.FieldAuthor {
			continue
		}
		m.fields[i].setValue("")
	}
	m.focusIndex = 0
	m.err = nil
}

func (m *Model) submit() tea.Cmd {
	record := m.Record()
	if m.validator != nil {
		if err := m.validator.Validate(record); err != nil {
			m.err = err
			return nil
		}
	}
	if m.renderer == nil {
		m.err = instruction.NewError(instruction.KindNotImpl, "no renderer configured", nil)
		return nil
	}

	m.rendering = true
	ctx, renderer, write := m.ctx, m.renderer, m.write
	return func() tea.Msg {
		result, err := renderer.Render(ctx, record)
		if err != nil {
			return renderedMsg{err: err}
		}
		path, err := write(result)
		if err != nil {
			return renderedMsg{err: fmt.Errorf("write %s: %w", result.Filename, err)}
		}
		return renderedMsg{result: result, path: path}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("BETRIEBSANWEISUNG"))
	b.WriteString("\n\n")

	switch m.step {
	case StepSelectCategory:
		m.viewCategories(&b)
	case StepEditFields:
		m.viewFields(&b)
	case StepComplete:
		m.viewComplete(&b)
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("Fehler: " + m.err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) viewCategories(b *strings.Builder) {
	b.WriteString(m.styles.Label.Render("Kategorie wählen"))
	b.WriteString("\n\n")
	for i, category := range m.categories {
		line := fmt.Sprintf("%s %s", category.Icon, category.Name)
		if i == m.selected {
			b.WriteString(m.base.ForCategory(category).Selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("↑/↓ wählen • enter weiter • q beenden"))
	b.WriteString("\n")
}

func (m *Model) viewFields(b *strings.Builder) {
	category := m.Selected()
	b.WriteString(m.styles.Label.Render(fmt.Sprintf("%s %s", category.Icon, category.Name)))
	b.WriteString("\n\n")
	for i := range m.fields {
		style := m.styles.Input
		if i == m.focusIndex {
			style = m.styles.Focused
		}
		b.WriteString(m.styles.Label.Render(m.fields[i].spec.Label))
		b.WriteString("\n")
		b.WriteString(style.Render(m.fields[i].view()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.rendering {
		b.WriteString(m.styles.Muted.Render("PDF wird erstellt..."))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render(
		"tab weiter • ctrl+e Beispiel laden • ctrl+r Zurücksetzen • ctrl+s PDF erstellen • esc zurück"))
	b.WriteString("\n")
}

func (m *Model) viewComplete(b *strings.Builder) {
	if m.result != nil {
		b.WriteString(m.styles.Success.Render("PDF erstellt: " + m.path))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d Bytes, %d Seite(n), ID %s",
			len(m.result.Bytes), m.result.Pages, m.result.ID)))
		b.WriteString("\n\n")
	}
	b.WriteString(m.styles.Help.Render("enter weiter bearbeiten • q beenden"))
	b.WriteString("\n")
}

// Run starts the form in the terminal and blocks until it exits.
func Run(ctx context.Context, cfg Config) (*Model, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg.Context = ctx
	m := New(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return m, err
	}
	return m, nil
}
