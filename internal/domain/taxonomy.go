package domain

// CategoryKey identifies one of the fixed subject categories.
type CategoryKey string

const (
	CategoryMechanics      CategoryKey = "mechanik"
	CategoryElectricity    CategoryKey = "elektrizitaetslehre"
	CategoryThermodynamics CategoryKey = "waermelehre"
	CategoryOptics         CategoryKey = "optik"
)

// EntryKind is one of the three views offered per category.
type EntryKind string

const (
	EntryTheory      EntryKind = "theory"
	EntryTasks       EntryKind = "tasks"
	EntryExperiments EntryKind = "experiments"
)

// Category holds the titles the navigator matches against. The titles are
// the German dataset titles; they are compared after normalization.
type Category struct {
	Key               CategoryKey
	Label             string
	TheoryTitle       string
	TasksTitle        string
	ExperimentsPrefix string
}

var categorySequence = []CategoryKey{
	CategoryMechanics,
	CategoryElectricity,
	CategoryThermodynamics,
	CategoryOptics,
}

var categoryConfig = map[CategoryKey]Category{
	CategoryMechanics: {
		Key:               CategoryMechanics,
		Label:             "Mechanik",
		TheoryTitle:       "Mechanik Theorie",
		TasksTitle:        "Mechanik Aufgaben",
		ExperimentsPrefix: "Mechanik",
	},
	CategoryElectricity: {
		Key:               CategoryElectricity,
		Label:             "Elektrizitätslehre",
		TheoryTitle:       "Elektrizitätslehre Theorie",
		TasksTitle:        "Elektrizitätslehre Aufgaben",
		ExperimentsPrefix: "Elektrizitätslehre",
	},
	CategoryThermodynamics: {
		Key:               CategoryThermodynamics,
		Label:             "Wärmelehre",
		TheoryTitle:       "Wärmelehre Theorie",
		TasksTitle:        "Wärmelehre Aufgaben",
		ExperimentsPrefix: "Wärmelehre",
	},
	CategoryOptics: {
		Key:               CategoryOptics,
		Label:             "Optik",
		TheoryTitle:       "Optik Theorie",
		TasksTitle:        "Optik Aufgaben",
		ExperimentsPrefix: "Optik",
	},
}

var entrySequence = []EntryKind{EntryTheory, EntryTasks, EntryExperiments}

// Categories returns the taxonomy in display order.
func Categories() []Category {
	out := make([]Category, 0, len(categorySequence))
	for _, key := range categorySequence {
		out = append(out, categoryConfig[key])
	}
	return out
}

// LookupCategory returns the category configuration for key.
func LookupCategory(key CategoryKey) (Category, bool) {
	c, ok := categoryConfig[key]
	return c, ok
}

// EntryKinds returns the entry kinds in display order.
func EntryKinds() []EntryKind {
	return append([]EntryKind(nil), entrySequence...)
}

// ParseEntryKind validates a raw entry kind.
func ParseEntryKind(raw string) (EntryKind, bool) {
	for _, kind := range entrySequence {
		if string(kind) == raw {
			return kind, true
		}
	}
	return "", false
}

// SingleRecord reports whether the entry resolves to exactly one experiment.
func (e EntryKind) SingleRecord() bool {
	return e == EntryTheory || e == EntryTasks
}

// TitleFor returns the fixed record title for theory and tasks entries.
func (c Category) TitleFor(entry EntryKind) string {
	switch entry {
	case EntryTheory:
		return c.TheoryTitle
	case EntryTasks:
		return c.TasksTitle
	default:
		return ""
	}
}
