package instructionpdf

import "strconv"

// Options configures HTML-to-PDF engines. Lengths accept in, cm, mm, pt, px.
type Options struct {
	PageSize        string
	Landscape       *bool
	PrintBackground *bool
	Scale           float64
	MarginTop       string
	MarginBottom    string
	MarginLeft      string
	MarginRight     string
}

func mergeOptions(base, override Options) Options {
	merged := base
	if override.PageSize != "" {
		merged.PageSize = override.PageSize
	}
	if override.Landscape != nil {
		merged.Landscape = override.Landscape
	}
	if override.PrintBackground != nil {
		merged.PrintBackground = override.PrintBackground
	}
	if override.Scale != 0 {
		merged.Scale = override.Scale
	}
	if override.MarginTop != "" {
		merged.MarginTop = override.MarginTop
	}
	if override.MarginBottom != "" {
		merged.MarginBottom = override.MarginBottom
	}
	if override.MarginLeft != "" {
		merged.MarginLeft = override.MarginLeft
	}
	if override.MarginRight != "" {
		merged.MarginRight = override.MarginRight
	}
	return merged
}

func formatMillimetres(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + "mm"
}

func boolPtr(value bool) *bool {
	return &value
}
