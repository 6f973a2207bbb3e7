package instruction

// Wire names of the record fields.
const (
	FieldCategory           = "kategorie"
	FieldWorkArea           = "arbeitsbereich"
	FieldTitle              = "titel"
	FieldAuthor             = "ersteller"
	FieldScope              = "anwendungsbereich"
	FieldHazards            = "gefahren"
	FieldProtectiveMeasures = "schutzmassnahmen"
	FieldMalfunctions       = "stoerungen"
	FieldAccidents          = "unfaelle"
	FieldMaintenance        = "instandhaltung"
	FieldDisposal           = "entsorgung"
)

// FieldSpec describes one form field.
type FieldSpec struct {
	Name      string
	Label     string
	Multiline bool
}

// HeaderFields are the single-line header inputs in form order.
var HeaderFields = []FieldSpec{
	{Name: FieldWorkArea, Label: "Arbeitsbereich"},
	{Name: FieldTitle, Label: "Tätigkeit/Maschine"},
	{Name: FieldAuthor, Label: "Erstellt von"},
}

// SectionFields are the multi-line section inputs in form order.
var SectionFields = []FieldSpec{
	{Name: FieldScope, Label: "1. Anwendungsbereich", Multiline: true},
	{Name: FieldHazards, Label: "2. Gefahren für Mensch und Umwelt", Multiline: true},
	{Name: FieldProtectiveMeasures, Label: "3. Schutzmaßnahmen und Verhaltensregeln", Multiline: true},
	{Name: FieldMalfunctions, Label: "4. Verhalten bei Störungen", Multiline: true},
	{Name: FieldAccidents, Label: "5. Verhalten bei Unfällen / Erste Hilfe", Multiline: true},
	{Name: FieldMaintenance, Label: "6a. Instandhaltung", Multiline: true},
	{Name: FieldDisposal, Label: "6b. Entsorgung", Multiline: true},
}

// Field returns the value of the named field.
func (r Record) Field(name string) (string, bool) {
	switch name {
	case FieldCategory:
		return string(r.Category), true
	case FieldWorkArea:
		return r.WorkArea, true
	case FieldTitle:
		return r.Title, true
	case FieldAuthor:
		return r.Author, true
	case FieldScope:
		return r.Scope, true
	case FieldHazards:
		return r.Hazards, true
	case FieldProtectiveMeasures:
		return r.ProtectiveMeasures, true
	case FieldMalfunctions:
		return r.Malfunctions, true
	case FieldAccidents:
		return r.Accidents, true
	case FieldMaintenance:
		return r.Maintenance, true
	case FieldDisposal:
		return r.Disposal, true
	}
	return "", false
}

// SetField assigns the named field and reports whether the name is known.
func (r *Record) SetField(name, value string) bool {
	switch name {
	case FieldCategory:
		r.Category = CategoryKey(value)
	case FieldWorkArea:
		r.WorkArea = value
	case FieldTitle:
		r.Title = value
	case FieldAuthor:
		r.Author = value
	case FieldScope:
		r.Scope = value
	case FieldHazards:
		r.Hazards = value
	case FieldProtectiveMeasures:
		r.ProtectiveMeasures = value
	case FieldMalfunctions:
		r.Malfunctions = value
	case FieldAccidents:
		r.Accidents = value
	case FieldMaintenance:
		r.Maintenance = value
	case FieldDisposal:
		r.Disposal = value
	default:
		return false
	}
	return true
}

// WithExample fills every empty section of r from example.
func (r Record) WithExample(example Record) Record {
	for _, spec := range SectionFields {
		if value, _ := r.Field(spec.Name); value == "" {
			exampleValue, _ := example.Field(spec.Name)
			r.SetField(spec.Name, exampleValue)
		}
	}
	return r
}
