package instruction

import "fmt"

// Catalog is the read-only set of instruction categories.
type Catalog struct {
	order []CategoryKey
	items map[CategoryKey]Category
}

// DefaultCatalog returns the process-wide catalog of the four fixed categories.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

var defaultCatalog = newCatalog(
	Category{
		Key:   CategoryMachine,
		Name:  "Maschinen und Anlagen",
		Icon:  "⚙️",
		Color: RGB{R: 0xFF, G: 0x6B, B: 0x35},
		Example: Record{
			Scope:              "Bedienung der CNC-Fräsmaschine im Produktionsbereich",
			Hazards:            "• Quetschgefahr durch bewegliche Maschinenteile\n• Verletzungsgefahr durch Späne\n• Lärmbelastung",
			ProtectiveMeasures: "• Schutzeinrichtungen dürfen nicht entfernt werden\n• Gehörschutz und Schutzbrille tragen\n• Lange Haare zusammenbinden\n• Keine weite Kleidung tragen",
			Malfunctions:       "• Maschine sofort ausschalten (NOT-AUS)\n• Vorgesetzten informieren\n• Nicht selbst reparieren",
			Accidents:          "• Verletzte Person aus dem Gefahrenbereich bringen\n• Erste Hilfe leisten\n• Notruf 112\n• Durchgangsarzt kontaktieren",
			Maintenance:        "• Nur durch befugte Personen\n• Maschine vor Wartung ausschalten und gegen Wiedereinschalten sichern\n• Wartungsplan beachten",
			Disposal:           "• Späne in vorgesehenen Behältern sammeln\n• Kühlschmierstoffe ordnungsgemäß entsorgen",
		},
	},
	Category{
		Key:   CategoryHazardous,
		Name:  "Gefahrstoffe",
		Icon:  "☠️",
		Color: RGB{R: 0xE6, G: 0x39, B: 0x46},
		Example: Record{
			Scope:              "Umgang mit Lösungsmitteln in der Lackiererei",
			Hazards:            "• Gesundheitsschädlich bei Einatmen\n• Reizend für Augen und Haut\n• Leichtentzündlich\n• Umweltgefährdend",
			ProtectiveMeasures: "• Nur in gut belüfteten Räumen verwenden\n• Atemschutz, Schutzhandschuhe und Schutzbrille tragen\n• Von Zündquellen fernhalten\n• Nicht rauchen\n• Hautkontakt vermeiden",
			Malfunctions:       "• Bei Verschütten: Räumlichkeit lüften\n• Mit Bindemittel aufnehmen\n• Zündquellen entfernen\n• Vorgesetzten informieren",
			Accidents:          "• Bei Hautkontakt: Sofort mit viel Wasser abwaschen\n• Bei Augenkontakt: 15 Minuten mit Wasser spülen, Arzt aufsuchen\n• Bei Einatmen: An die frische Luft, Arzt konsultieren\n• Notruf 112 bei schweren Vergiftungen",
			Maintenance:        "• Behälter dicht verschlossen halten\n• Regelmäßige Kontrolle der Lagerbedingungen\n• Absauganlage warten",
			Disposal:           "• Nicht in Ausguss oder Mülltonne\n• In gekennzeichneten Behältern sammeln\n• Durch Fachfirma entsorgen lassen",
		},
	},
	Category{
		Key:   CategoryActivity,
		Name:  "Tätigkeiten",
		Icon:  "👷",
		Color: RGB{R: 0x45, G: 0x7B, B: 0x9D},
		Example: Record{
			Scope:              "Arbeiten auf Leitern und Gerüsten",
			Hazards:            "• Absturzgefahr aus der Höhe\n• Umkippen der Leiter\n• Herabfallende Gegenstände",
			ProtectiveMeasures: "• Nur geprüfte Leitern verwenden\n• Leiter auf festem, ebenen Untergrund aufstellen\n• Anlegewinkel von 65-75° einhalten\n• Nicht auf obersten zwei Sprossen stehen\n• Absturzsicherung ab 2m Höhe\n• Arbeitsbereich absperren",
			Malfunctions:       "• Bei beschädigter Leiter: Nicht verwenden, kennzeichnen\n• Vorgesetzten informieren\n• Leiter außer Betrieb nehmen",
			Accidents:          "• Notruf 112\n• Erste Hilfe leisten\n• Verletzte Person nicht bewegen bei Verdacht auf Wirbelsäulenverletzung\n• Unfallstelle sichern",
			Maintenance:        "• Regelmäßige Sichtprüfung vor Benutzung\n• Jährliche Prüfung durch befähigte Person\n• Leitern trocken lagern",
			Disposal:           "• Defekte Leitern fachgerecht entsorgen\n• Nicht reparieren lassen",
		},
	},
	Category{
		Key:   CategoryBiological,
		Name:  "Biologische Arbeitsstoffe",
		Icon:  "🦠",
		Color: RGB{R: 0x2A, G: 0x9D, B: 0x8F},
		Example: Record{
			Scope:              "Umgang mit biologischen Arbeitsstoffen im Labor",
			Hazards:            "• Infektionsgefahr durch Krankheitserreger\n• Allergische Reaktionen\n• Kontamination",
			ProtectiveMeasures: "• Laborkittel, Handschuhe und ggf. Atemschutz tragen\n• Hygienemaßnahmen strikt einhalten\n• Hände desinfizieren\n• Nicht essen, trinken oder rauchen\n• Arbeiten in Sicherheitswerkbank",
			Malfunctions:       "• Bei Kontamination: Bereich absperren\n• Desinfektion durchführen\n• Biologischen Sicherheitsbeauftragten informieren",
			Accidents:          "• Bei Verletzung: Wunde bluten lassen, desinfizieren\n• Betriebsarzt aufsuchen\n• Durchgangsarzt bei schweren Verletzungen\n• Vorfall dokumentieren",
			Maintenance:        "• Regelmäßige Wartung der Sicherheitswerkbank\n• Autoklavierung von Geräten\n• Dekontamination der Arbeitsflächen",
			Disposal:           "• Autoklavierung von kontaminierten Materialien\n• Entsorgung in speziellen Biohazard-Behältern\n• Durch Fachfirma entsorgen lassen",
		},
	},
)

func newCatalog(categories ...Category) *Catalog {
	c := &Catalog{items: make(map[CategoryKey]Category, len(categories))}
	for _, category := range categories {
		category.Example.Category = category.Key
		c.order = append(c.order, category.Key)
		c.items[category.Key] = category
	}
	return c
}

// Lookup resolves a category key.
func (c *Catalog) Lookup(key CategoryKey) (Category, error) {
	category, ok := c.items[key]
	if !ok {
		return Category{}, NewError(KindUnknownCategory, fmt.Sprintf("unknown category %q", key), nil)
	}
	return category, nil
}

// Has reports whether key is one of the catalog categories.
func (c *Catalog) Has(key CategoryKey) bool {
	_, ok := c.items[key]
	return ok
}

// ExampleRecord returns the canned example for a category.
func (c *Catalog) ExampleRecord(key CategoryKey) (Record, error) {
	category, err := c.Lookup(key)
	if err != nil {
		return Record{}, err
	}
	return category.Example, nil
}

// Categories returns all categories in display order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.items[key])
	}
	return out
}

// Keys returns all category keys in display order.
func (c *Catalog) Keys() []CategoryKey {
	return append([]CategoryKey(nil), c.order...)
}
