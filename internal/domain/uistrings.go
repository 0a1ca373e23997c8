package domain

// UIStrings are the localized labels of the category navigation.
type UIStrings struct {
	CategoryLabels   map[CategoryKey]string `json:"categoryLabels"`
	EntryLabels      map[EntryKind]string   `json:"entryLabels"`
	IntroText        string                 `json:"introText"`
	BackToCategories string                 `json:"backToCategories"`
	ThemePrefix      string                 `json:"themePrefix"`
}

var defaultUIStrings = UIStrings{
	CategoryLabels: map[CategoryKey]string{
		CategoryMechanics:      "Mechanik",
		CategoryElectricity:    "Elektrizitätslehre",
		CategoryThermodynamics: "Wärmelehre",
		CategoryOptics:         "Optik",
	},
	EntryLabels: map[EntryKind]string{
		EntryTheory:      "Theorie",
		EntryTasks:       "Übungsaufgaben",
		EntryExperiments: "Experimente",
	},
	IntroText:        "Bitte ein Themengebiet auswählen.",
	BackToCategories: "Zur Themenauswahl",
	ThemePrefix:      "Thema: ",
}

// Overrides only need to set what differs from the German defaults.
var uiStringOverrides = map[LanguageCode]UIStrings{
	LanguageEnglish: {
		CategoryLabels: map[CategoryKey]string{
			CategoryMechanics:      "Mechanics",
			CategoryElectricity:    "Electricity",
			CategoryThermodynamics: "Thermodynamics",
			CategoryOptics:         "Optics",
		},
		EntryLabels: map[EntryKind]string{
			EntryTheory:      "Theory",
			EntryTasks:       "Exercises",
			EntryExperiments: "Experiments",
		},
		IntroText:        "Please select a subject.",
		BackToCategories: "Back to topics",
		ThemePrefix:      "Topic: ",
	},
	LanguageFrench: {
		CategoryLabels: map[CategoryKey]string{
			CategoryMechanics:      "Mécanique",
			CategoryElectricity:    "Électricité",
			CategoryThermodynamics: "Thermodynamique",
			CategoryOptics:         "Optique",
		},
		EntryLabels: map[EntryKind]string{
			EntryTheory:      "Théorie",
			EntryTasks:       "Exercices",
			EntryExperiments: "Expériences",
		},
		IntroText:        "Veuillez sélectionner un domaine.",
		BackToCategories: "Retour aux thèmes",
		ThemePrefix:      "Thème : ",
	},
	LanguageRussian: {
		CategoryLabels: map[CategoryKey]string{
			CategoryMechanics:      "Механика",
			CategoryElectricity:    "Электричество",
			CategoryThermodynamics: "Термодинамика",
			CategoryOptics:         "Оптика",
		},
		EntryLabels: map[EntryKind]string{
			EntryTheory:      "Теория",
			EntryTasks:       "Упражнения",
			EntryExperiments: "Эксперименты",
		},
		IntroText:        "Выберите тему.",
		BackToCategories: "Назад к темам",
		ThemePrefix:      "Тема: ",
	},
	LanguageUkrainian: {
		CategoryLabels: map[CategoryKey]string{
			CategoryMechanics:      "Механіка",
			CategoryElectricity:    "Електрика",
			CategoryThermodynamics: "Термодинаміка",
			CategoryOptics:         "Оптика",
		},
		EntryLabels: map[EntryKind]string{
			EntryTheory:      "Теорія",
			EntryTasks:       "Вправи",
			EntryExperiments: "Експерименти",
		},
		IntroText:        "Будь ласка, оберіть розділ.",
		BackToCategories: "Повернутися до тем",
		ThemePrefix:      "Тема: ",
	},
}

// UIStringsFor merges the overrides for code over the German defaults.
// The result is a fresh copy and may be modified by the caller.
func UIStringsFor(code LanguageCode) UIStrings {
	merged := UIStrings{
		CategoryLabels:   make(map[CategoryKey]string, len(defaultUIStrings.CategoryLabels)),
		EntryLabels:      make(map[EntryKind]string, len(defaultUIStrings.EntryLabels)),
		IntroText:        defaultUIStrings.IntroText,
		BackToCategories: defaultUIStrings.BackToCategories,
		ThemePrefix:      defaultUIStrings.ThemePrefix,
	}
	for k, v := range defaultUIStrings.CategoryLabels {
		merged.CategoryLabels[k] = v
	}
	for k, v := range defaultUIStrings.EntryLabels {
		merged.EntryLabels[k] = v
	}

	overrides, ok := uiStringOverrides[code]
	if !ok {
		return merged
	}
	for k, v := range overrides.CategoryLabels {
		merged.CategoryLabels[k] = v
	}
	for k, v := range overrides.EntryLabels {
		merged.EntryLabels[k] = v
	}
	if overrides.IntroText != "" {
		merged.IntroText = overrides.IntroText
	}
	if overrides.BackToCategories != "" {
		merged.BackToCategories = overrides.BackToCategories
	}
	if overrides.ThemePrefix != "" {
		merged.ThemePrefix = overrides.ThemePrefix
	}
	return merged
}
