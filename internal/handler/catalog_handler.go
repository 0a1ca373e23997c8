package handler

import (
	"alltagslabor/internal/catalog"
	"alltagslabor/internal/domain"
	"alltagslabor/internal/dto"
	"alltagslabor/internal/middleware"
	"alltagslabor/internal/service"
	"alltagslabor/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// APIVersion is reported by the API root.
const APIVersion = "1.0.0"

// CatalogHandler handles read-only catalog requests
type CatalogHandler struct {
	service   service.CatalogService
	validator *validation.Validator
}

// NewCatalogHandler creates a new CatalogHandler instance
func NewCatalogHandler(service service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// Root godoc
// @Summary API info
// @Tags meta
// @Produce json
// @Success 200 {object} dto.APIInfoResponse
// @Router / [get]
func (h *CatalogHandler) Root(c *fiber.Ctx) error {
	return c.JSON(dto.APIInfoResponse{
		Message: "AlltagsLabor API",
		Version: APIVersion,
	})
}

// GetLanguages godoc
// @Summary List dataset languages
// @Tags meta
// @Produce json
// @Success 200 {array} dto.LanguageResponse
// @Router /languages [get]
func (h *CatalogHandler) GetLanguages(c *fiber.Ctx) error {
	return c.JSON(h.service.Languages())
}

// GetUIStrings godoc
// @Summary Localized navigation labels
// @Tags meta
// @Produce json
// @Param lang query string false "Language code" default(de)
// @Success 200 {object} dto.UIStringsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /ui-strings [get]
func (h *CatalogHandler) GetUIStrings(c *fiber.Ctx) error {
	return c.JSON(h.service.UIStrings(middleware.Language(c)))
}

// GetCategories godoc
// @Summary List categories
// @Description Returns the four fixed categories with localized labels
// @Tags categories
// @Produce json
// @Param lang query string false "Language code" default(de)
// @Success 200 {array} dto.CategoryResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /categories [get]
func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	return c.JSON(h.service.Categories(middleware.Language(c)))
}

// ResolveEntry godoc
// @Summary Open a category entry
// @Description Theory and tasks resolve to one record, experiments to a list
// @Tags categories
// @Produce json
// @Param key path string true "Category key" Enums(mechanik, elektrizitaetslehre, waermelehre, optik)
// @Param entry path string true "Entry kind" Enums(theory, tasks, experiments)
// @Param lang query string false "Language code" default(de)
// @Success 200 {object} dto.EntryResolutionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /categories/{key}/{entry} [get]
func (h *CatalogHandler) ResolveEntry(c *fiber.Ctx) error {
	key, _ := c.Locals(middleware.LocalCategory).(domain.CategoryKey)
	entry, _ := c.Locals(middleware.LocalEntry).(domain.EntryKind)

	resp, err := h.service.ResolveEntry(c.UserContext(), middleware.Language(c), key, entry)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetExperiments godoc
// @Summary List visible experiments
// @Tags experiments
// @Produce json
// @Param lang query string false "Language code" default(de)
// @Success 200 {object} dto.ExperimentListResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /experiments [get]
func (h *CatalogHandler) GetExperiments(c *fiber.Ctx) error {
	resp, err := h.service.ListExperiments(c.UserContext(), middleware.Language(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SearchExperiments godoc
// @Summary Search experiments
// @Description Free text over title, description and subject combined with exact facet filters. Omitted facets match everything.
// @Tags experiments
// @Produce json
// @Param freetext query string false "Free text"
// @Param subject query string false "Subject"
// @Param gradeLevel query string false "Grade level"
// @Param schoolType query string false "School type"
// @Param lang query string false "Language code" default(de)
// @Success 200 {object} dto.ExperimentListResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /experiments/search [get]
func (h *CatalogHandler) SearchExperiments(c *fiber.Ctx) error {
	var params dto.SearchParams
	if err := c.QueryParser(&params); err != nil {
		return domain.NewInvalidInputError("Invalid search parameters")
	}
	if errs := h.validator.ValidateSearchQuery(params.FreeText, params.SchoolType, params.Subject, params.GradeLevel); len(errs) > 0 {
		return errs
	}

	q := catalog.Query{
		Text:       params.FreeText,
		SchoolType: params.SchoolType,
		Subject:    params.Subject,
		Grade:      params.GradeLevel,
	}
	resp, err := h.service.Search(c.UserContext(), middleware.Language(c), q)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetExperiment godoc
// @Summary Get one experiment
// @Description Looks up a visible record by exact title. Tutorial records show their first step only.
// @Tags experiments
// @Produce json
// @Param title path string true "Exact title (URL encoded)"
// @Param lang query string false "Language code" default(de)
// @Success 200 {object} dto.ExperimentDetailResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /experiments/{title} [get]
func (h *CatalogHandler) GetExperiment(c *fiber.Ctx) error {
	title, _ := c.Locals(middleware.LocalTitle).(string)
	resp, err := h.service.GetExperiment(c.UserContext(), middleware.Language(c), title)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetExperimentSteps godoc
// @Summary Rendered steps of an experiment
// @Tags experiments
// @Produce json
// @Param title path string true "Exact title (URL encoded)"
// @Param lang query string false "Language code" default(de)
// @Success 200 {array} dto.StepResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /experiments/{title}/steps [get]
func (h *CatalogHandler) GetExperimentSteps(c *fiber.Ctx) error {
	title, _ := c.Locals(middleware.LocalTitle).(string)
	resp, err := h.service.GetSteps(c.UserContext(), middleware.Language(c), title)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetFacets godoc
// @Summary Facet options
// @Tags experiments
// @Produce json
// @Param lang query string false "Language code" default(de)
// @Success 200 {object} dto.FacetsResponse
// @Router /facets [get]
func (h *CatalogHandler) GetFacets(c *fiber.Ctx) error {
	resp, err := h.service.Facets(c.UserContext(), middleware.Language(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetGrades godoc
// @Summary Distinct grade levels
// @Description Numeric grades ascending, then the others
// @Tags experiments
// @Produce json
// @Param lang query string false "Language code" default(de)
// @Success 200 {object} dto.GradesResponse
// @Router /grades [get]
func (h *CatalogHandler) GetGrades(c *fiber.Ctx) error {
	resp, err := h.service.Grades(c.UserContext(), middleware.Language(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetSubjects godoc
// @Summary Subjects by federal state
// @Description The published subjects.json, passed through unchanged
// @Tags meta
// @Produce json
// @Success 200 {object} object
// @Failure 502 {object} middleware.ErrorResponse
// @Router /subjects [get]
func (h *CatalogHandler) GetSubjects(c *fiber.Ctx) error {
	data, err := h.service.Subjects(c.UserContext())
	if err != nil {
		return err
	}
	return sendRawJSON(c, data)
}

// GetSchoolTypes godoc
// @Summary School types by federal state
// @Description The published typeOfSchoole.json, passed through unchanged
// @Tags meta
// @Produce json
// @Success 200 {object} object
// @Failure 502 {object} middleware.ErrorResponse
// @Router /school-types [get]
func (h *CatalogHandler) GetSchoolTypes(c *fiber.Ctx) error {
	data, err := h.service.SchoolTypes(c.UserContext())
	if err != nil {
		return err
	}
	return sendRawJSON(c, data)
}

// GetImpressum godoc
// @Summary Legal notice
// @Tags meta
// @Produce json
// @Success 200 {object} dto.ImpressumResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /impressum [get]
func (h *CatalogHandler) GetImpressum(c *fiber.Ctx) error {
	resp, err := h.service.Impressum(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func sendRawJSON(c *fiber.Ctx, data []byte) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// ResolveAsset godoc
// @Summary Resolve an asset path
// @Tags meta
// @Produce json
// @Param path query string true "Step content path"
// @Success 200 {object} dto.AssetURLResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /assets/resolve [get]
func (h *CatalogHandler) ResolveAsset(c *fiber.Ctx) error {
	path := c.Query("path")
	if errs := h.validator.ValidateAssetPath(path); len(errs) > 0 {
		return errs
	}
	return c.JSON(h.service.ResolveAsset(path))
}
