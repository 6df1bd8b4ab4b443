package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/ticket-tracker/internal/service"
)

// SessionCookie names the cookie holding the dashboard session id.
const SessionCookie = "tracker_session"

// Sessions resolves the dashboard of the requesting browser.
type Sessions struct {
	store  *service.SessionStore
	ttl    time.Duration
	secure bool
}

// NewSessions wraps store with cookie handling.
func NewSessions(store *service.SessionStore, ttl time.Duration, secure bool) *Sessions {
	return &Sessions{store: store, ttl: ttl, secure: secure}
}

// Fresh starts a new dashboard for the request, as a page load does, and
// loads its tickets. A load failure is recorded in the dashboard state.
func (s *Sessions) Fresh(c *fiber.Ctx) *service.Dashboard {
	id, dashboard := s.store.Reset(utils.CopyString(c.Cookies(SessionCookie)))
	s.setCookie(c, id)
	_ = dashboard.Load(c.UserContext())
	return dashboard
}

// Current returns the request's live dashboard, starting a fresh one when
// the cookie is missing or the session expired.
func (s *Sessions) Current(c *fiber.Ctx) *service.Dashboard {
	if id := c.Cookies(SessionCookie); id != "" {
		if dashboard, ok := s.store.Get(id); ok {
			s.setCookie(c, dashboard.SessionID())
			return dashboard
		}
	}
	return s.Fresh(c)
}

func (s *Sessions) setCookie(c *fiber.Ctx, id string) {
	cookie := &fiber.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if s.ttl > 0 {
		cookie.MaxAge = int(s.ttl.Seconds())
	}
	c.Cookie(cookie)
}
