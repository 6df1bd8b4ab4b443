package http

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-tracker/internal/api/http/handlers"
	"github.com/spec-kit/ticket-tracker/internal/config"
	"github.com/spec-kit/ticket-tracker/internal/events"
	"github.com/spec-kit/ticket-tracker/internal/observability"
	"github.com/spec-kit/ticket-tracker/internal/persistence"
	"github.com/spec-kit/ticket-tracker/internal/recordstore"
	"github.com/spec-kit/ticket-tracker/internal/repository"
	"github.com/spec-kit/ticket-tracker/internal/service"
	"github.com/spec-kit/ticket-tracker/internal/view"
)

const ticketsJSON = `{"records":[
	{"id":"r1","fields":{"Jira Key":"ABC-1","Jira Summary":"Login broken","Status":"Open","Created Date":"2024-01-01","Compliance Status":"Approved","Finance Status":"Validated","Comments":["c1","c2"]}},
	{"id":"r2","fields":{"Jira Key":"ABC-2","Jira Summary":"Export slow","Status":"Resolved","Resolved Date":"2024-02-01"}}
]}`

const commentsJSON = `{"records":[
	{"id":"c2","fields":{"Commenter":"Bo","Date":"2024-01-02","Comment":"second"}},
	{"id":"c1","fields":{"Commenter":"Ana","Date":"2024-01-01","Comment":"first"}}
]}`

type fakeStore struct {
	server       *httptest.Server
	ticketStatus int
	commentCalls atomic.Int32
}

func newFakeStore(t *testing.T, ticketStatus int) *fakeStore {
	t.Helper()
	store := &fakeStore{ticketStatus: ticketStatus}
	store.server = httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/appTest/Tickets":
			if store.ticketStatus != nethttp.StatusOK {
				w.WriteHeader(store.ticketStatus)
				_, _ = w.Write([]byte(`{"error":{"type":"AUTHENTICATION_REQUIRED","message":"Authentication required"}}`))
				return
			}
			_, _ = w.Write([]byte(ticketsJSON))
		case "/appTest/Comments":
			store.commentCalls.Add(1)
			_, _ = w.Write([]byte(commentsJSON))
		default:
			w.WriteHeader(nethttp.StatusNotFound)
		}
	}))
	t.Cleanup(store.server.Close)
	return store
}

func newTestApp(t *testing.T, store *fakeStore) *fiber.App {
	t.Helper()
	cfg := config.RecordStoreConfig{
		BaseID:        "appTest",
		Token:         "pat.test",
		TicketsTable:  "Tickets",
		CommentsTable: "Comments",
		PageSize:      100,
	}
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	client := recordstore.NewClient(cfg, recordstore.WithBaseURL(store.server.URL), recordstore.WithObserver(metrics))

	deps := service.DashboardDependencies{
		Tickets:    repository.NewTicketRepository(client),
		Comments:   repository.NewCommentRepository(client),
		Dispatcher: events.NewInMemoryDispatcher(),
		Logger:     logger,
	}
	sessions := service.NewSessionStore(time.Hour, func(id string) *service.Dashboard {
		return service.NewDashboard(id, deps)
	})
	cookies := handlers.NewSessions(sessions, time.Hour, false)

	renderer, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:    handlers.NewHealthHandler("tracker", "test", client, &persistence.Redis{}, metrics),
		Dashboard: handlers.NewDashboardHandler("Tickets", cookies, renderer, time.UTC),
		API:       handlers.NewAPIHandler(cookies, time.UTC),
	})
	return app
}

func do(t *testing.T, app *fiber.App, path string, cookie *nethttp.Cookie) (*nethttp.Response, string) {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("GET %s error = %v", path, err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func sessionCookie(t *testing.T, resp *nethttp.Response) *nethttp.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == handlers.SessionCookie {
			return c
		}
	}
	t.Fatalf("response has no %s cookie", handlers.SessionCookie)
	return nil
}

func TestPageRendersTickets(t *testing.T) {
	app := newTestApp(t, newFakeStore(t, nethttp.StatusOK))

	resp, body := do(t, app, "/", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{"Login broken | ABC-1", "dot-middle full-approved", "End Date<br>Pending", "End Date<br>Feb 1, 2024", view.MessageSelectTicket} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if cookie := sessionCookie(t, resp); len(cookie.Value) != 36 || !cookie.HttpOnly {
		t.Errorf("cookie = %+v", cookie)
	}
}

func TestPageLoadFailureShowsStaticMessage(t *testing.T) {
	app := newTestApp(t, newFakeStore(t, nethttp.StatusUnauthorized))

	resp, body := do(t, app, "/", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, the page renders even when loading fails", resp.StatusCode)
	}
	if !strings.Contains(body, view.MessageLoadFailed) {
		t.Errorf("page missing load failure message")
	}
	if strings.Contains(body, "Authentication required") {
		t.Errorf("upstream error text leaked into the page")
	}

	_, stateBody := do(t, app, "/api/state", sessionCookie(t, resp))
	var state struct {
		Data struct {
			List struct {
				LoadFailed bool `json:"load_failed"`
			} `json:"list"`
			Detail struct {
				Phase string `json:"phase"`
			} `json:"detail"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(stateBody), &state); err != nil {
		t.Fatalf("decode state: %v (%s)", err, stateBody)
	}
	if !state.Data.List.LoadFailed || state.Data.Detail.Phase != string(service.DetailIdle) {
		t.Errorf("state = %+v", state.Data)
	}
}

func TestDetailFragmentWithoutComments(t *testing.T) {
	store := newFakeStore(t, nethttp.StatusOK)
	app := newTestApp(t, store)

	resp, _ := do(t, app, "/", nil)
	_, body := do(t, app, "/fragments/tickets/r2", sessionCookie(t, resp))

	if !strings.Contains(body, view.MessageNoComments) {
		t.Errorf("detail fragment = %s", body)
	}
	if !strings.Contains(body, "Status: Resolved") || !strings.Contains(body, "Compliance: N/A") {
		t.Errorf("detail pills missing: %s", body)
	}
	if store.commentCalls.Load() != 0 {
		t.Errorf("comment calls = %d, want 0", store.commentCalls.Load())
	}
}

func TestAPITicketReturnsSortedComments(t *testing.T) {
	store := newFakeStore(t, nethttp.StatusOK)
	app := newTestApp(t, store)

	resp, _ := do(t, app, "/", nil)
	cookie := sessionCookie(t, resp)
	_, body := do(t, app, "/api/tickets/r1", cookie)

	var detail struct {
		Data struct {
			Phase    string `json:"phase"`
			Key      string `json:"key"`
			Comments []struct {
				Author string `json:"author"`
				Body   string `json:"body"`
			} `json:"comments"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(body), &detail); err != nil {
		t.Fatalf("decode: %v (%s)", err, body)
	}
	if detail.Data.Phase != string(service.DetailLoaded) || detail.Data.Key != "ABC-1" {
		t.Errorf("detail = %+v", detail.Data)
	}
	if len(detail.Data.Comments) != 2 || detail.Data.Comments[0].Body != "first" || detail.Data.Comments[1].Body != "second" {
		t.Errorf("comments = %+v", detail.Data.Comments)
	}

	_, listBody := do(t, app, "/fragments/tickets?q=abc-1", cookie)
	if !strings.Contains(listBody, "ticket-item status-open active") {
		t.Errorf("selected row should stay active after search: %s", listBody)
	}
	if strings.Contains(listBody, "ABC-2") {
		t.Errorf("search should hide ABC-2")
	}
}

func TestSearchWithoutMatches(t *testing.T) {
	app := newTestApp(t, newFakeStore(t, nethttp.StatusOK))

	_, body := do(t, app, "/fragments/tickets?q=zzz", nil)
	if !strings.Contains(body, view.MessageNoMatches) {
		t.Errorf("list fragment = %s", body)
	}
}

func TestUnknownTicket(t *testing.T) {
	app := newTestApp(t, newFakeStore(t, nethttp.StatusOK))
	resp, _ := do(t, app, "/", nil)
	cookie := sessionCookie(t, resp)

	apiResp, apiBody := do(t, app, "/api/tickets/nope", cookie)
	if apiResp.StatusCode != fiber.StatusNotFound || !strings.Contains(apiBody, `"code":"NOT_FOUND"`) {
		t.Errorf("api = %d %s", apiResp.StatusCode, apiBody)
	}

	fragResp, fragBody := do(t, app, "/fragments/tickets/nope", cookie)
	if fragResp.StatusCode != fiber.StatusNotFound || !strings.Contains(fragBody, `<div class="error" data-code="NOT_FOUND">`) {
		t.Errorf("fragment = %d %s", fragResp.StatusCode, fragBody)
	}
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t, newFakeStore(t, nethttp.StatusOK))
	resp, body := do(t, app, "/api/nothing", nil)
	if resp.StatusCode != fiber.StatusNotFound || !strings.Contains(body, `"code":"NOT_FOUND"`) {
		t.Errorf("unknown route = %d %s", resp.StatusCode, body)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	store := newFakeStore(t, nethttp.StatusOK)
	app := newTestApp(t, store)

	resp, body := do(t, app, "/health/ready", nil)
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(body, `"record_store":"ok"`) {
		t.Errorf("ready = %d %s", resp.StatusCode, body)
	}
	if strings.Contains(body, "redis") {
		t.Errorf("redis should not be checked when unconfigured: %s", body)
	}

	do(t, app, "/", nil)
	_, metricsBody := do(t, app, "/metrics", nil)
	var snap observability.MetricsSnapshot
	if err := json.Unmarshal([]byte(metricsBody), &snap); err != nil {
		t.Fatalf("decode metrics: %v", err)
	}
	if snap.Fetches["Tickets|ok"] != 1 {
		t.Errorf("fetches = %v", snap.Fetches)
	}
}

func TestReadyFailsWhenStoreRejects(t *testing.T) {
	app := newTestApp(t, newFakeStore(t, nethttp.StatusUnauthorized))
	resp, body := do(t, app, "/health/ready", nil)
	if resp.StatusCode != fiber.StatusServiceUnavailable || !strings.Contains(body, "DEPENDENCY_UNAVAILABLE") {
		t.Errorf("ready = %d %s", resp.StatusCode, body)
	}
}

func TestAPIReportsRecordStoreRejection(t *testing.T) {
	app := newTestApp(t, newFakeStore(t, nethttp.StatusUnauthorized))

	resp, body := do(t, app, "/api/tickets", nil)
	if resp.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("status = %d, want 502 (%s)", resp.StatusCode, body)
	}
	for _, want := range []string{`"code":"RECORD_STORE_ERROR"`, `"upstream_status":401`, `"upstream_type":"AUTHENTICATION_REQUIRED"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %s: %s", want, body)
		}
	}

	detailResp, detailBody := do(t, app, "/api/tickets/r1", sessionCookie(t, resp))
	if detailResp.StatusCode != fiber.StatusBadGateway || !strings.Contains(detailBody, "RECORD_STORE_ERROR") {
		t.Errorf("detail = %d %s", detailResp.StatusCode, detailBody)
	}
}

func TestAPIReportsUnreachableRecordStore(t *testing.T) {
	store := newFakeStore(t, nethttp.StatusOK)
	app := newTestApp(t, store)
	store.server.Close()

	resp, body := do(t, app, "/api/tickets", nil)
	if resp.StatusCode != fiber.StatusBadGateway || !strings.Contains(body, `"code":"RECORD_STORE_UNAVAILABLE"`) {
		t.Errorf("api = %d %s", resp.StatusCode, body)
	}
}

func TestPageIgnoresForeignSessionID(t *testing.T) {
	app := newTestApp(t, newFakeStore(t, nethttp.StatusOK))
	chosen := &nethttp.Cookie{Name: handlers.SessionCookie, Value: "7f9c2ba4-e88f-4d1b-9c1e-3f0a1b2c3d4e"}

	resp, _ := do(t, app, "/", chosen)
	issued := sessionCookie(t, resp)
	if issued.Value == chosen.Value {
		t.Fatal("page load adopted a session id the server never issued")
	}

	again, _ := do(t, app, "/", issued)
	if sessionCookie(t, again).Value != issued.Value {
		t.Error("a live session id should be kept across page loads")
	}
}
