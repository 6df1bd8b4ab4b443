package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/ticket-tracker/internal/api/dto"
	"github.com/spec-kit/ticket-tracker/internal/view"
)

// APIHandler exposes the dashboard views as JSON.
type APIHandler struct {
	sessions  *Sessions
	formatter view.Formatter
	markdown  *view.Markdown
}

// NewAPIHandler constructs handler.
func NewAPIHandler(sessions *Sessions, loc *time.Location) *APIHandler {
	return &APIHandler{sessions: sessions, formatter: view.NewFormatter(loc), markdown: view.NewMarkdown()}
}

// State GET /api/state.
func (h *APIHandler) State(c *fiber.Ctx) error {
	state := h.sessions.Current(c).Snapshot()
	return c.JSON(fiber.Map{"data": dto.StateResponse{
		List:   dto.NewListResponse(view.RenderList(state, h.formatter)),
		Detail: dto.NewDetailResponse(view.RenderDetail(state, h.formatter, h.markdown)),
	}})
}

// ListTickets GET /api/tickets?q=. A failed ticket load is reported as the
// record store error that caused it.
func (h *APIHandler) ListTickets(c *fiber.Ctx) error {
	dashboard := h.sessions.Current(c)
	if err := dashboard.LoadErr(); err != nil {
		return err
	}
	state := dashboard.Search(c.UserContext(), utils.CopyString(c.Query("q")))
	return c.JSON(fiber.Map{"data": dto.NewListResponse(view.RenderList(state, h.formatter))})
}

// GetTicket GET /api/tickets/:id.
func (h *APIHandler) GetTicket(c *fiber.Ctx) error {
	dashboard := h.sessions.Current(c)
	if err := dashboard.LoadErr(); err != nil {
		return err
	}
	state, err := dashboard.Select(c.UserContext(), utils.CopyString(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDetailResponse(view.RenderDetail(state, h.formatter, h.markdown))})
}
