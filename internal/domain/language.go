package domain

// LanguageCode is a two-letter dataset language.
type LanguageCode string

const (
	LanguageGerman    LanguageCode = "de"
	LanguageEnglish   LanguageCode = "en"
	LanguageFrench    LanguageCode = "fr"
	LanguageRussian   LanguageCode = "ru"
	LanguageUkrainian LanguageCode = "uk"

	DefaultLanguage = LanguageGerman
)

// Language describes where the dataset for one language lives.
// Translated datasets were machine translated from the German original.
type Language struct {
	Code       LanguageCode `json:"code"`
	Label      string       `json:"label"`
	File       string       `json:"file"`
	Translated bool         `json:"translated"`
}

var languageSequence = []Language{
	{Code: LanguageGerman, Label: "Deutsch", File: "_experiments_de.json"},
	{Code: LanguageEnglish, Label: "English", File: "_experiments_eng.json", Translated: true},
	{Code: LanguageFrench, Label: "Francais", File: "_experiments_fr.json", Translated: true},
	{Code: LanguageRussian, Label: "Русский", File: "_experiments_ru.json", Translated: true},
	{Code: LanguageUkrainian, Label: "українська", File: "_experiments_uk.json", Translated: true},
}

// Languages returns all supported languages, German first.
func Languages() []Language {
	return append([]Language(nil), languageSequence...)
}

// LookupLanguage resolves a language code. An empty code yields the default.
func LookupLanguage(code string) (Language, bool) {
	if code == "" {
		code = string(DefaultLanguage)
	}
	for _, lang := range languageSequence {
		if string(lang.Code) == code {
			return lang, true
		}
	}
	return Language{}, false
}

// LanguageForFile maps a dataset file name back to its language.
func LanguageForFile(name string) (Language, bool) {
	for _, lang := range languageSequence {
		if lang.File == name {
			return lang, true
		}
	}
	return Language{}, false
}
