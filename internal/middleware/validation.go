package middleware

import (
	"net/url"

	"alltagslabor/internal/domain"
	"alltagslabor/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the validation middleware.
const (
	LocalLanguage  = "validated_language"
	LocalSessionID = "validated_session_id"
	LocalCategory  = "validated_category"
	LocalEntry     = "validated_entry"
	LocalTitle     = "validated_title"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateLanguage resolves the lang query parameter.
func (vm *ValidationMiddleware) ValidateLanguage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lang, errs := vm.validator.ValidateLanguage(c.Query("lang"))
		if len(errs) > 0 {
			return errs
		}
		c.Locals(LocalLanguage, lang)
		return c.Next()
	}
}

// ValidateSessionID checks the :id path parameter.
func (vm *ValidationMiddleware) ValidateSessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errs := vm.validator.ValidateSessionID(id); len(errs) > 0 {
			return errs
		}
		c.Locals(LocalSessionID, id)
		return c.Next()
	}
}

// ValidateCategoryEntry checks the :key and :entry path parameters.
func (vm *ValidationMiddleware) ValidateCategoryEntry() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, entry, errs := vm.validator.ValidateCategoryEntry(c.Params("key"), c.Params("entry"))
		if len(errs) > 0 {
			return errs
		}
		c.Locals(LocalCategory, key)
		c.Locals(LocalEntry, entry)
		return c.Next()
	}
}

// ValidateTitle decodes and checks the :title path parameter.
func (vm *ValidationMiddleware) ValidateTitle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params("title")
		title, err := url.PathUnescape(raw)
		if err != nil {
			return domain.ValidationErrors{domain.NewInvalidFormatError("title", raw)}
		}
		if errs := vm.validator.ValidateTitle(title); len(errs) > 0 {
			return errs
		}
		c.Locals(LocalTitle, title)
		return c.Next()
	}
}

// Language returns the language stored by ValidateLanguage, or the default.
func Language(c *fiber.Ctx) domain.Language {
	if lang, ok := c.Locals(LocalLanguage).(domain.Language); ok {
		return lang
	}
	lang, _ := domain.LookupLanguage("")
	return lang
}
