package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"alltagslabor/internal/domain"
)

const (
	MaxSearchTextLength = 200
	MaxFacetLength      = 100
	MaxTitleLength      = 300
	MaxAssetPathLength  = 2048
)

var validULID = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateLanguage resolves a language code. An empty code selects the
// default language.
func (v *Validator) ValidateLanguage(code string) (domain.Language, domain.ValidationErrors) {
	lang, ok := domain.LookupLanguage(strings.TrimSpace(code))
	if !ok {
		return domain.Language{}, domain.ValidationErrors{domain.NewInvalidFormatError("lang", code)}
	}
	return lang, nil
}

// ValidateCategoryEntry checks a category key and entry kind.
func (v *Validator) ValidateCategoryEntry(key, entry string) (domain.CategoryKey, domain.EntryKind, domain.ValidationErrors) {
	var errors domain.ValidationErrors

	category, ok := domain.LookupCategory(domain.CategoryKey(key))
	if strings.TrimSpace(key) == "" {
		errors = append(errors, domain.NewMissingFieldError("category"))
	} else if !ok {
		errors = append(errors, domain.NewInvalidFormatError("category", key))
	}

	kind, ok := domain.ParseEntryKind(entry)
	if strings.TrimSpace(entry) == "" {
		errors = append(errors, domain.NewMissingFieldError("entry"))
	} else if !ok {
		errors = append(errors, domain.NewInvalidFormatError("entry", entry))
	}

	return category.Key, kind, errors
}

// ValidateSearchQuery bounds the free text and facet values of a search.
func (v *Validator) ValidateSearchQuery(text, schoolType, subject, grade string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if n := utf8.RuneCountInString(text); n > MaxSearchTextLength {
		errors = append(errors, domain.NewOutOfRangeError("text", n, 0, MaxSearchTextLength))
	}
	facets := []struct{ field, value string }{
		{"schoolType", schoolType},
		{"subject", subject},
		{"grade", grade},
	}
	for _, f := range facets {
		if n := utf8.RuneCountInString(f.value); n > MaxFacetLength {
			errors = append(errors, domain.NewOutOfRangeError(f.field, n, 0, MaxFacetLength))
		}
	}

	return errors
}

// ValidateTitle checks an experiment title used for lookup.
func (v *Validator) ValidateTitle(title string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(title) == "" {
		errors = append(errors, domain.NewMissingFieldError("title"))
	} else if n := utf8.RuneCountInString(title); n > MaxTitleLength {
		errors = append(errors, domain.NewOutOfRangeError("title", n, 1, MaxTitleLength))
	}

	return errors
}

// ValidateSessionID checks that id is a ULID.
func (v *Validator) ValidateSessionID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("session_id"))
	} else if !validULID.MatchString(id) {
		errors = append(errors, domain.NewInvalidFormatError("session_id", id))
	}

	return errors
}

// ValidateAssetPath checks a step content path before URL resolution.
func (v *Validator) ValidateAssetPath(path string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(path) == "" {
		errors = append(errors, domain.NewMissingFieldError("path"))
	} else if len(path) > MaxAssetPathLength {
		errors = append(errors, domain.NewOutOfRangeError("path", len(path), 1, MaxAssetPathLength))
	}

	return errors
}
