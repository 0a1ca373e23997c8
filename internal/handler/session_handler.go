package handler

import (
	"alltagslabor/internal/domain"
	"alltagslabor/internal/dto"
	"alltagslabor/internal/middleware"
	"alltagslabor/internal/service"
	"alltagslabor/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler handles browse session requests
type SessionHandler struct {
	service   service.SessionService
	validator *validation.Validator
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(service service.SessionService) *SessionHandler {
	return &SessionHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

func sessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.LocalSessionID).(string)
	return id
}

// Create godoc
// @Summary Create a browse session
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionRequest false "Session language"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return domain.NewInvalidInputError("Invalid request body")
		}
	}
	lang, errs := h.validator.ValidateLanguage(req.Language)
	if len(errs) > 0 {
		return errs
	}

	resp, err := h.service.Create(c.UserContext(), lang)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Get godoc
// @Summary Get session state
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	return h.respond(c)(h.service.Get(c.UserContext(), sessionID(c)))
}

// Delete godoc
// @Summary Discard a session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), sessionID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Search godoc
// @Summary Search within a session
// @Description Switches the session to the flat list and clears the active category
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SearchRequest true "Search"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id}/search [post]
func (h *SessionHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidateSearchQuery(req.Text, req.SchoolType, req.Subject, req.Grade); len(errs) > 0 {
		return errs
	}
	return h.respond(c)(h.service.Search(c.UserContext(), sessionID(c), req))
}

// ResetFilters godoc
// @Summary Reset facet filters
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Router /sessions/{id}/filters/reset [post]
func (h *SessionHandler) ResetFilters(c *fiber.Ctx) error {
	return h.respond(c)(h.service.ResetFilters(c.UserContext(), sessionID(c)))
}

// EnterCategory godoc
// @Summary Open a category entry in a session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param key path string true "Category key"
// @Param entry path string true "Entry kind"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id}/categories/{key}/{entry} [post]
func (h *SessionHandler) EnterCategory(c *fiber.Ctx) error {
	key, _ := c.Locals(middleware.LocalCategory).(domain.CategoryKey)
	entry, _ := c.Locals(middleware.LocalEntry).(domain.EntryKind)
	return h.respond(c)(h.service.EnterCategory(c.UserContext(), sessionID(c), key, entry))
}

// BackToCategories godoc
// @Summary Return to the category grid
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Router /sessions/{id}/categories/back [post]
func (h *SessionHandler) BackToCategories(c *fiber.Ctx) error {
	return h.respond(c)(h.service.BackToCategories(c.UserContext(), sessionID(c)))
}

// SwitchLanguage godoc
// @Summary Switch the session language
// @Description Reloads the dataset and resets search, facets and view mode
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.LanguageRequest true "Language"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /sessions/{id}/language [post]
func (h *SessionHandler) SwitchLanguage(c *fiber.Ctx) error {
	var req dto.LanguageRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if req.Language == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("language")}
	}
	lang, errs := h.validator.ValidateLanguage(req.Language)
	if len(errs) > 0 {
		return errs
	}
	return h.respond(c)(h.service.SwitchLanguage(c.UserContext(), sessionID(c), lang))
}

// Open godoc
// @Summary Open a record
// @Description Opening restarts the tutorial at its first step
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.OpenRequest true "Title"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id}/open [post]
func (h *SessionHandler) Open(c *fiber.Ctx) error {
	var req dto.OpenRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidateTitle(req.Title); len(errs) > 0 {
		return errs
	}
	return h.respond(c)(h.service.Open(c.UserContext(), sessionID(c), req.Title))
}

// Close godoc
// @Summary Close the open record
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Router /sessions/{id}/close [post]
func (h *SessionHandler) Close(c *fiber.Ctx) error {
	return h.respond(c)(h.service.Close(c.UserContext(), sessionID(c)))
}

// Next godoc
// @Summary Next tutorial step
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/tutorial/next [post]
func (h *SessionHandler) Next(c *fiber.Ctx) error {
	return h.respond(c)(h.service.Next(c.UserContext(), sessionID(c)))
}

// Prev godoc
// @Summary Previous tutorial step
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/tutorial/prev [post]
func (h *SessionHandler) Prev(c *fiber.Ctx) error {
	return h.respond(c)(h.service.Prev(c.UserContext(), sessionID(c)))
}

func (h *SessionHandler) respond(c *fiber.Ctx) func(*dto.SessionResponse, error) error {
	return func(resp *dto.SessionResponse, err error) error {
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}
}
