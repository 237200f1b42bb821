package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"notekeeper/internal/export"
	"notekeeper/internal/model"
	"notekeeper/internal/presenter"
)

// noteRequest is the body accepted by create, update and quick note.
type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// listResponse wraps the note list.
type listResponse struct {
	Items []model.Note `json:"data"`
	Total int          `json:"total"`
}

func parseID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func parseNote(c *fiber.Ctx) (noteRequest, bool) {
	var req noteRequest
	if err := c.BodyParser(&req); err != nil {
		return req, false
	}
	return req, true
}

// ListNotes lists notes newest first. The first call of the process seeds an empty store.
//
// @Summary  List notes
// @Tags     notes
// @Produce  json
// @Param    q query string false "case- and accent-insensitive filter on title or content"
// @Success  200 {object} listResponse
// @Failure  500 {object} errorPayload
// @Router   /notes [get]
func ListNotes(lp *presenter.ListPresenter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := lp.Load(c.UserContext(), c.Query("q"))
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(listResponse{Items: items, Total: len(items)})
	}
}

// CreateNote creates a note. Title and content are both required.
//
// @Summary  Create note
// @Tags     notes
// @Accept   json
// @Produce  json
// @Param    body body noteRequest true "note"
// @Success  201 {object} model.Note
// @Failure  400 {object} errorPayload
// @Failure  500 {object} errorPayload
// @Router   /notes [post]
func CreateNote(dp *presenter.DetailPresenter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, ok := parseNote(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		n, err := dp.Save(c.UserContext(), "", req.Title, req.Content)
		if err != nil {
			return handleError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(n)
	}
}

// GetNote returns a single note.
//
// @Summary  Get note
// @Tags     notes
// @Produce  json
// @Param    id path string true "note id (uuid)"
// @Success  200 {object} model.Note
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /notes/{id} [get]
func GetNote(dp *presenter.DetailPresenter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		n, err := dp.Open(c.UserContext(), id)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(n)
	}
}

// UpdateNote replaces title and content of a note.
//
// @Summary  Update note
// @Tags     notes
// @Accept   json
// @Produce  json
// @Param    id   path string      true "note id (uuid)"
// @Param    body body noteRequest true "note"
// @Success  200 {object} model.Note
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /notes/{id} [put]
func UpdateNote(dp *presenter.DetailPresenter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		req, ok := parseNote(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		n, err := dp.Save(c.UserContext(), id, req.Title, req.Content)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(n)
	}
}

// DeleteNote removes a note.
//
// @Summary  Delete note
// @Tags     notes
// @Param    id path string true "note id (uuid)"
// @Success  204
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /notes/{id} [delete]
func DeleteNote(lp *presenter.ListPresenter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := lp.Delete(c.UserContext(), id); err != nil {
			return handleError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DuplicateNote copies a note as "Copy of <title>".
//
// @Summary  Duplicate note
// @Tags     notes
// @Produce  json
// @Param    id path string true "note id (uuid)"
// @Success  201 {object} model.Note
// @Failure  404 {object} errorPayload
// @Router   /notes/{id}/duplicate [post]
func DuplicateNote(lp *presenter.ListPresenter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		n, err := lp.Duplicate(c.UserContext(), id)
		if err != nil {
			return handleError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(n)
	}
}

// QuickNote creates a note from a title; content is optional.
//
// @Summary  Quick note
// @Tags     notes
// @Accept   json
// @Produce  json
// @Param    body body noteRequest true "note"
// @Success  201 {object} model.Note
// @Failure  400 {object} errorPayload
// @Router   /notes/quick [post]
func QuickNote(lp *presenter.ListPresenter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, ok := parseNote(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		n, err := lp.QuickNote(c.UserContext(), req.Title, req.Content)
		if err != nil {
			return handleError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(n)
	}
}

// ExportNotes uploads a JSON snapshot of all notes and returns a presigned download URL.
//
// @Summary  Export notes
// @Tags     exports
// @Produce  json
// @Success  201 {object} export.Result
// @Failure  503 {object} errorPayload
// @Router   /exports [post]
func ExportNotes(exp *export.Exporter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := exp.Export(c.UserContext())
		if err != nil {
			return handleError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}
