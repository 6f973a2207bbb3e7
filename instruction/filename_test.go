package instruction

import (
	"testing"
	"time"
)

func TestRenderFilenameDefault(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	name, err := RenderFilename("", CategoryMachine, now)
	if err != nil {
		t.Fatalf("render filename: %v", err)
	}
	if name != "betriebsanweisung_20240102_030405.pdf" {
		t.Fatalf("unexpected filename %q", name)
	}
}

func TestRenderFilenameCustomTemplate(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	name, err := RenderFilename("ba_{{.Category}}_{{.Date}}.PDF", CategoryHazardous, now)
	if err != nil {
		t.Fatalf("render filename: %v", err)
	}
	if name != "ba_gefahrstoff_20240102.PDF" {
		t.Fatalf("unexpected filename %q", name)
	}
}

func TestRenderFilenameInvalid(t *testing.T) {
	if _, err := RenderFilename("{{.Missing", CategoryMachine, time.Now()); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := RenderFilename("{{if false}}x{{end}}", CategoryMachine, time.Now()); err == nil {
		t.Fatalf("expected empty filename error")
	}
}
