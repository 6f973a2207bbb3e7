package instruction

import "strings"

// Section describes one numbered body section of a document.
type Section struct {
	Number int
	Label  string
	Text   func(Record) string
}

// Sections lists the six document sections in output order.
var Sections = []Section{
	{Number: 1, Label: "1. ANWENDUNGSBEREICH", Text: func(r Record) string { return r.Scope }},
	{Number: 2, Label: "2. GEFAHREN FÜR MENSCH UND UMWELT", Text: func(r Record) string { return r.Hazards }},
	{Number: 3, Label: "3. SCHUTZMAßNAHMEN UND VERHALTENSREGELN", Text: func(r Record) string { return r.ProtectiveMeasures }},
	{Number: 4, Label: "4. VERHALTEN BEI STÖRUNGEN", Text: func(r Record) string { return r.Malfunctions }},
	{Number: 5, Label: "5. VERHALTEN BEI UNFÄLLEN / ERSTE HILFE", Text: func(r Record) string { return r.Accidents }},
	{Number: 6, Label: "6. INSTANDHALTUNG / ENTSORGUNG", Text: Record.MaintenanceAndDisposal},
}

// MaintenanceAndDisposal is the composite body of section 6: maintenance,
// a blank line, then disposal. A missing half is left out together with the
// blank line.
func (r Record) MaintenanceAndDisposal() string {
	maintenance := strings.TrimSpace(r.Maintenance)
	disposal := strings.TrimSpace(r.Disposal)
	switch {
	case maintenance != "" && disposal != "":
		return maintenance + "\n\n" + disposal
	case maintenance != "":
		return maintenance
	default:
		return disposal
	}
}

// SplitLines breaks section text into rendered lines. Whitespace-only text
// yields no lines.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}
	text = strings.Trim(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return lines
}
