package handlers

import (
	"bytes"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/ticket-tracker/internal/view"
)

// DashboardHandler serves the HTML page and its fragments.
type DashboardHandler struct {
	title     string
	sessions  *Sessions
	renderer  *view.Renderer
	formatter view.Formatter
	markdown  *view.Markdown
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(title string, sessions *Sessions, renderer *view.Renderer, loc *time.Location) *DashboardHandler {
	return &DashboardHandler{
		title:     title,
		sessions:  sessions,
		renderer:  renderer,
		formatter: view.NewFormatter(loc),
		markdown:  view.NewMarkdown(),
	}
}

// Page GET /. Every page load starts a fresh dashboard.
func (h *DashboardHandler) Page(c *fiber.Ctx) error {
	state := h.sessions.Fresh(c).Snapshot()
	page := view.PageView{
		Title:  h.title,
		List:   view.RenderList(state, h.formatter),
		Detail: view.RenderDetail(state, h.formatter, h.markdown),
	}
	var buf bytes.Buffer
	if err := h.renderer.Page(&buf, page); err != nil {
		return err
	}
	return sendHTML(c, buf.Bytes())
}

// ListFragment GET /fragments/tickets?q=.
func (h *DashboardHandler) ListFragment(c *fiber.Ctx) error {
	state := h.sessions.Current(c).Search(c.UserContext(), utils.CopyString(c.Query("q")))
	var buf bytes.Buffer
	if err := h.renderer.List(&buf, view.RenderList(state, h.formatter)); err != nil {
		return err
	}
	return sendHTML(c, buf.Bytes())
}

// DetailFragment GET /fragments/tickets/:id.
func (h *DashboardHandler) DetailFragment(c *fiber.Ctx) error {
	state, err := h.sessions.Current(c).Select(c.UserContext(), utils.CopyString(c.Params("id")))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := h.renderer.Detail(&buf, view.RenderDetail(state, h.formatter, h.markdown)); err != nil {
		return err
	}
	return sendHTML(c, buf.Bytes())
}

func sendHTML(c *fiber.Ctx, body []byte) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(body)
}
