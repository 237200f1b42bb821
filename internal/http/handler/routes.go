package handler

import (
	"github.com/gofiber/fiber/v2"

	"notekeeper/internal/export"
	"notekeeper/internal/presenter"
)

// Deps are the components the HTTP routes are served from.
type Deps struct {
	Store    Pinger
	List     *presenter.ListPresenter
	Detail   *presenter.DetailPresenter
	Exporter *export.Exporter
}

// RegisterRoutes attaches the note API to app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.Store))
	app.Get("/healthz", LivenessProbe())

	notes := app.Group("/notes")
	notes.Get("/", ListNotes(d.List))
	notes.Post("/", CreateNote(d.Detail))
	notes.Post("/quick", QuickNote(d.List))
	notes.Get("/:id", GetNote(d.Detail))
	notes.Put("/:id", UpdateNote(d.Detail))
	notes.Delete("/:id", DeleteNote(d.List))
	notes.Post("/:id/duplicate", DuplicateNote(d.List))

	app.Post("/exports", ExportNotes(d.Exporter))
}
