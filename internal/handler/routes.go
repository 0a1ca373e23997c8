package handler

import (
	"alltagslabor/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the API under /api. The search route is registered
// before /experiments/:title so it is not taken for a title.
func RegisterRoutes(app *fiber.App, catalogHandler *CatalogHandler, sessionHandler *SessionHandler) {
	vm := middleware.NewValidationMiddleware()
	lang := vm.ValidateLanguage()
	sid := vm.ValidateSessionID()
	entry := vm.ValidateCategoryEntry()
	title := vm.ValidateTitle()

	api := app.Group("/api")
	api.Get("/", catalogHandler.Root)
	api.Get("/languages", catalogHandler.GetLanguages)
	api.Get("/ui-strings", lang, catalogHandler.GetUIStrings)
	api.Get("/categories", lang, catalogHandler.GetCategories)
	api.Get("/categories/:key/:entry", lang, entry, catalogHandler.ResolveEntry)
	api.Get("/experiments", lang, catalogHandler.GetExperiments)
	api.Get("/experiments/search", lang, catalogHandler.SearchExperiments)
	api.Get("/experiments/:title", lang, title, catalogHandler.GetExperiment)
	api.Get("/experiments/:title/steps", lang, title, catalogHandler.GetExperimentSteps)
	api.Get("/facets", lang, catalogHandler.GetFacets)
	api.Get("/grades", lang, catalogHandler.GetGrades)
	api.Get("/assets/resolve", catalogHandler.ResolveAsset)
	api.Get("/subjects", catalogHandler.GetSubjects)
	api.Get("/school-types", catalogHandler.GetSchoolTypes)
	api.Get("/impressum", catalogHandler.GetImpressum)

	api.Post("/sessions", sessionHandler.Create)
	api.Get("/sessions/:id", sid, sessionHandler.Get)
	api.Delete("/sessions/:id", sid, sessionHandler.Delete)
	api.Post("/sessions/:id/search", sid, sessionHandler.Search)
	api.Post("/sessions/:id/filters/reset", sid, sessionHandler.ResetFilters)
	api.Post("/sessions/:id/categories/back", sid, sessionHandler.BackToCategories)
	api.Post("/sessions/:id/categories/:key/:entry", sid, entry, sessionHandler.EnterCategory)
	api.Post("/sessions/:id/language", sid, sessionHandler.SwitchLanguage)
	api.Post("/sessions/:id/open", sid, sessionHandler.Open)
	api.Post("/sessions/:id/close", sid, sessionHandler.Close)
	api.Post("/sessions/:id/tutorial/next", sid, sessionHandler.Next)
	api.Post("/sessions/:id/tutorial/prev", sid, sessionHandler.Prev)
}
