package instruction

import (
	"fmt"
	"time"
)

// CategoryKey identifies one of the fixed instruction categories.
type CategoryKey string

const (
	CategoryMachine    CategoryKey = "maschine"
	CategoryHazardous  CategoryKey = "gefahrstoff"
	CategoryActivity   CategoryKey = "taetigkeit"
	CategoryBiological CategoryKey = "biologisch"
)

// RGB is an 8-bit color triple.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the color as #RRGGBB.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// White is used for heading bar text.
var White = RGB{R: 255, G: 255, B: 255}

// Category carries display metadata and the example record for a key.
type Category struct {
	Key     CategoryKey
	Name    string
	Icon    string
	Color   RGB
	Example Record
}

// Record is one submission to render.
type Record struct {
	Category           CategoryKey `json:"kategorie" yaml:"kategorie" toml:"kategorie"`
	WorkArea           string      `json:"arbeitsbereich" yaml:"arbeitsbereich" toml:"arbeitsbereich"`
	Title              string      `json:"titel" yaml:"titel" toml:"titel"`
	Author             string      `json:"ersteller" yaml:"ersteller" toml:"ersteller"`
	Scope              string      `json:"anwendungsbereich" yaml:"anwendungsbereich" toml:"anwendungsbereich"`
	Hazards            string      `json:"gefahren" yaml:"gefahren" toml:"gefahren"`
	ProtectiveMeasures string      `json:"schutzmassnahmen" yaml:"schutzmassnahmen" toml:"schutzmassnahmen"`
	Malfunctions       string      `json:"stoerungen" yaml:"stoerungen" toml:"stoerungen"`
	Accidents          string      `json:"unfaelle" yaml:"unfaelle" toml:"unfaelle"`
	Maintenance        string      `json:"instandhaltung" yaml:"instandhaltung" toml:"instandhaltung"`
	Disposal           string      `json:"entsorgung" yaml:"entsorgung" toml:"entsorgung"`
}

// Rendered is the result of rendering one record.
type Rendered struct {
	ID          string
	Filename    string
	ContentType string
	Bytes       []byte
	Pages       int
	Category    CategoryKey
	GeneratedAt time.Time
	Duration    time.Duration
}

// ContentTypePDF is the MIME type of rendered documents.
const ContentTypePDF = "application/pdf"

// Logger is the minimal logging contract used by the package.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards all log messages.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}
