package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Catalog specific errors
	CodeExperimentNotFound ErrorCode = "EXPERIMENT_NOT_FOUND"
	CodeContentNotFound    ErrorCode = "CONTENT_NOT_FOUND"
	CodeTopicEmpty         ErrorCode = "TOPIC_EMPTY"
	CodeInvalidLanguage    ErrorCode = "INVALID_LANGUAGE"
	CodeInvalidCategory    ErrorCode = "INVALID_CATEGORY"
	CodeInvalidEntry       ErrorCode = "INVALID_ENTRY"
	CodeFetchFailed        ErrorCode = "FETCH_FAILED"

	// Session specific errors
	CodeSessionNotFound  ErrorCode = "SESSION_NOT_FOUND"
	CodeTutorialInactive ErrorCode = "TUTORIAL_INACTIVE"

	// Playback errors
	CodePlayerBusy     ErrorCode = "PLAYER_BUSY"
	CodePlaybackFailed ErrorCode = "PLAYBACK_FAILED"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// WithContext attaches a key/value pair that is surfaced in error responses.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// HasCode reports whether err is a DomainError carrying code.
func HasCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewExperimentNotFoundError(title string) *DomainError {
	return NewError(CodeExperimentNotFound, fmt.Sprintf("Experiment not found: %s", title), nil).
		WithContext("title", title)
}

// NewContentNotFoundError is the informational miss for theory and tasks entries.
func NewContentNotFoundError(category CategoryKey, entry EntryKind) *DomainError {
	return NewError(CodeContentNotFound, "Der Inhalt konnte nicht gefunden werden.", nil).
		WithContext("category", string(category)).
		WithContext("entry", string(entry))
}

// NewTopicEmptyError is the informational miss for an empty experiment set.
func NewTopicEmptyError(category CategoryKey) *DomainError {
	return NewError(CodeTopicEmpty, "Zu diesem Themengebiet wurden keine Experimente gefunden.", nil).
		WithContext("category", string(category))
}

func NewInvalidLanguageError(code string) *DomainError {
	return NewError(CodeInvalidLanguage, fmt.Sprintf("Invalid language: %s", code), nil)
}

func NewInvalidCategoryError(category string) *DomainError {
	return NewError(CodeInvalidCategory, fmt.Sprintf("Invalid category: %s", category), nil)
}

func NewInvalidEntryError(entry string) *DomainError {
	return NewError(CodeInvalidEntry, fmt.Sprintf("Invalid category entry: %s", entry), nil)
}

func NewFetchFailedError(language LanguageCode, err error) *DomainError {
	return NewError(CodeFetchFailed, "Experimente konnten nicht geladen werden", err).
		WithContext("language", string(language))
}

func NewResourceFetchFailedError(res Resource, err error) *DomainError {
	return NewError(CodeFetchFailed, fmt.Sprintf("%s konnte nicht geladen werden", res.File), err).
		WithContext("resource", res.Name)
}

func NewSessionNotFoundError(id string) *DomainError {
	return NewError(CodeSessionNotFound, fmt.Sprintf("Session not found: %s", id), nil)
}

func NewTutorialInactiveError() *DomainError {
	return NewError(CodeTutorialInactive, "No tutorial experiment is open", nil)
}

// ValidationError describes one invalid request field.
type ValidationError struct {
	Field   string      `json:"field"`
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid field of a request.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Code: CodeMissingField, Message: "field is required"}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{Field: field, Code: CodeInvalidFormat, Message: "field has an invalid format", Value: value}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeOutOfRange,
		Message: fmt.Sprintf("value must be between %d and %d", min, max),
		Value:   value,
	}
}
