package instruction

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// DefaultFilenameTemplate names downloads betriebsanweisung_YYYYMMDD_HHMMSS.pdf.
const DefaultFilenameTemplate = "betriebsanweisung_{{.Timestamp}}"

type filenameData struct {
	Timestamp string
	Date      string
	Category  string
}

// RenderFilename renders a filename template and ensures the .pdf extension.
func RenderFilename(name string, category CategoryKey, now time.Time) (string, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultFilenameTemplate
	}

	data := filenameData{
		Timestamp: now.Format("20060102_150405"),
		Date:      now.Format("20060102"),
		Category:  string(category),
	}

	tmpl, err := template.New("filename").Parse(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	result := strings.TrimSpace(buf.String())
	if result == "" {
		return "", fmt.Errorf("empty filename")
	}
	if !strings.HasSuffix(strings.ToLower(result), ".pdf") {
		result += ".pdf"
	}
	return result, nil
}
