package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/deppfellow/kringe-music/internal/config"
	"github.com/deppfellow/kringe-music/internal/handler"
	"github.com/deppfellow/kringe-music/internal/model"
	"github.com/deppfellow/kringe-music/internal/server"
	"github.com/deppfellow/kringe-music/internal/service"
	"github.com/deppfellow/kringe-music/internal/session"
)

type memUsers struct {
	mu    sync.Mutex
	users []model.User
}

func (m *memUsers) FindByLoginOrEmail(_ context.Context, identifier string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Login == identifier || u.Email == identifier {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("find user: %w", pgx.ErrNoRows)
}

func (m *memUsers) Taken(_ context.Context, login, email string) (bool, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var l, e bool
	for _, u := range m.users {
		l = l || u.Login == login
		e = e || u.Email == email
	}
	return l, e, nil
}

func (m *memUsers) Create(_ context.Context, login, email, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, model.User{Login: login, Email: email, Password: hash})
	return nil
}

type memCatalog struct {
	tracks []model.Track
}

func (m *memCatalog) CountTracks(context.Context) (int, error) { return len(m.tracks), nil }

func (m *memCatalog) RandomTracks(_ context.Context, limit int) ([]model.Track, error) {
	return m.ListTracks(context.Background(), limit)
}

func (m *memCatalog) ListTracks(_ context.Context, limit int) ([]model.Track, error) {
	return m.tracks[:min(limit, len(m.tracks))], nil
}

func (m *memCatalog) PopularTracks(context.Context, int) ([]model.PopularTrack, error) {
	return []model.PopularTrack{}, nil
}

func (m *memCatalog) GetTrack(_ context.Context, id int) (*model.Track, error) {
	for _, t := range m.tracks {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("get track %d: %w", id, pgx.ErrNoRows)
}

func (m *memCatalog) TracksByArtist(context.Context, int) ([]model.Track, error) {
	return []model.Track{}, nil
}

func (m *memCatalog) SearchTracks(context.Context, string) ([]model.Track, error) {
	return []model.Track{}, nil
}

func (m *memCatalog) ListArtists(context.Context, int) ([]model.Artist, error) {
	return []model.Artist{}, nil
}

func (m *memCatalog) GetArtist(_ context.Context, id int) (*model.Artist, error) {
	return nil, fmt.Errorf("get artist %d: %w", id, pgx.ErrNoRows)
}

type memFeedback struct {
	rows []model.Feedback
}

func (m *memFeedback) Create(_ context.Context, f *model.Feedback) (int, error) {
	m.rows = append(m.rows, *f)
	return len(m.rows), nil
}

type memNews struct {
	items []model.News
}

func (m *memNews) View(_ context.Context, id string) (*model.News, error) {
	return nil, fmt.Errorf("view news %s: %w", id, pgx.ErrNoRows)
}

func (m *memNews) Search(context.Context, string, int64) ([]model.News, error) { return nil, nil }

func (m *memNews) List(context.Context, int64, int64) ([]model.News, error) { return m.items, nil }

func (m *memNews) Create(_ context.Context, item *model.News) (string, error) {
	item.ID = primitive.NewObjectID()
	m.items = append(m.items, *item)
	return item.ID.Hex(), nil
}

func (m *memNews) CreateMany(_ context.Context, items []model.News) (int, error) {
	m.items = append(m.items, items...)
	return len(items), nil
}

type stack struct {
	echo     *echo.Echo
	server   *server.Server
	sessions *session.Manager
	users    *memUsers
	feedback *memFeedback
	news     *memNews

	// requests counts calls so each one gets its own client address and
	// stays clear of the per-IP rate limits.
	requests int
}

func newStack(t *testing.T) *stack {
	t.Helper()

	staticDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<h1>Kringe</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}

	logger := zerolog.Nop()
	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server:  config.ServerConfig{StaticDir: staticDir, CORSAllowedOrigins: []string{"*"}},
		Auth:    config.AuthConfig{SecretKey: "test-secret-test-secret"},
	}
	cfg.ApplyDefaults()
	srv := &server.Server{Config: cfg, Logger: &logger}

	st := &stack{
		server:   srv,
		users:    &memUsers{},
		feedback: &memFeedback{},
		news:     &memNews{},
	}
	st.sessions = session.NewManager(session.NewMemoryStore(), cfg.Auth.SecretKey, cfg.Auth.SessionTTL)

	services := &service.Services{
		Auth:     service.NewAuthService(st.users, st.sessions, nil, &logger),
		Catalog:  service.NewCatalogService(&memCatalog{tracks: []model.Track{{ID: 7, Title: "Kringe", TrackURL: "/music/7.mp3"}}}),
		Feedback: service.NewFeedbackService(st.feedback),
		News:     service.NewNewsService(st.news),
	}

	st.echo = NewRouter(srv, handler.NewHandlers(srv, services), services)
	return st
}

func (st *stack) do(t *testing.T, method, target, body string, cookies ...*http.Cookie) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	st.requests++
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.RemoteAddr = fmt.Sprintf("198.51.100.%d:40000", st.requests%250+1)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	st.echo.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode %s %s: %v", method, target, err)
		}
	}
	return rec, out
}

func TestRegisterReportsEveryInvalidField(t *testing.T) {
	st := newStack(t)

	rec, body := st.do(t, http.MethodPost, "/api/register",
		`{"username":"ab","email":"x","password":"123","confirm_password":"123"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body["success"] != false {
		t.Errorf("success = %v", body["success"])
	}
	fields, _ := body["errors"].(map[string]any)
	for _, f := range []string{"username", "email", "password"} {
		if _, ok := fields[f]; !ok {
			t.Errorf("errors.%s missing in %v", f, fields)
		}
	}
	if len(st.users.users) != 0 {
		t.Error("user created despite validation errors")
	}
}

func TestRegisterThenSession(t *testing.T) {
	st := newStack(t)

	rec, body := st.do(t, http.MethodPost, "/api/register",
		`{"username":"kringe_fan","email":"fan@kringe.music","password":"secret1","confirm_password":"secret1"}`)
	if rec.Code != http.StatusOK || body["success"] != true {
		t.Fatalf("register: status = %d, body = %v", rec.Code, body)
	}
	if body["redirect"] != "/" {
		t.Errorf("redirect = %v", body["redirect"])
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || !cookies[0].HttpOnly {
		t.Fatalf("cookies = %v, want one HttpOnly session cookie", cookies)
	}

	_, session := st.do(t, http.MethodGet, "/api/session", "", cookies[0])
	if session["logged_in"] != true || session["login"] != "kringe_fan" {
		t.Errorf("session = %v", session)
	}

	forged := *cookies[0]
	forged.Value += "0"
	_, anon := st.do(t, http.MethodGet, "/api/session", "", &forged)
	if anon["logged_in"] != false || anon["login"] != nil {
		t.Errorf("forged cookie session = %v, want anonymous", anon)
	}
}

func TestLoginWrongPasswordIsRejected(t *testing.T) {
	st := newStack(t)
	st.do(t, http.MethodPost, "/api/register",
		`{"username":"kringe_fan","email":"fan@kringe.music","password":"secret1","confirm_password":"secret1"}`)

	_, wrong := st.do(t, http.MethodPost, "/api/login", `{"email":"kringe_fan","password":"nope-nope"}`)
	_, unknown := st.do(t, http.MethodPost, "/api/login", `{"email":"ghost","password":"nope-nope"}`)

	if wrong["success"] != false || wrong["message"] != service.MsgInvalidCredentials {
		t.Errorf("wrong password body = %v", wrong)
	}
	if wrong["message"] != unknown["message"] {
		t.Errorf("messages differ: %v vs %v", wrong["message"], unknown["message"])
	}
}

func TestTrackNotFound(t *testing.T) {
	st := newStack(t)

	for _, path := range []string{"/api/track/42", "/api/track/abc", "/api/track/a%2Fb"} {
		rec, body := st.do(t, http.MethodGet, path, "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, rec.Code)
		}
		if body["success"] != false || body["error"] != service.MsgTrackNotFound {
			t.Errorf("%s: body = %v", path, body)
		}
	}

	rec, body := st.do(t, http.MethodGet, "/api/track/7", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	track, _ := body["track"].(map[string]any)
	if track["title"] != "Kringe" {
		t.Errorf("track = %v", track)
	}
}

func TestFeedback(t *testing.T) {
	st := newStack(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantField  string
	}{
		{"rating too high", `{"email":"fan@kringe.music","rating":6,"comment":"Отличный сервис!"}`, http.StatusBadRequest, "rating"},
		{"rating not a number", `{"email":"fan@kringe.music","rating":"five","comment":"Отличный сервис!"}`, http.StatusBadRequest, "rating"},
		{"comment too short", `{"email":"fan@kringe.music","rating":5,"comment":"  short  "}`, http.StatusBadRequest, "comment"},
		{"bad email", `{"email":"fan","rating":5,"comment":"Отличный сервис!"}`, http.StatusBadRequest, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := st.do(t, http.MethodPost, "/api/feedback", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			fields, _ := body["errors"].(map[string]any)
			if _, ok := fields[tt.wantField]; !ok {
				t.Errorf("errors = %v, want %s", fields, tt.wantField)
			}
		})
	}

	if len(st.feedback.rows) != 0 {
		t.Fatalf("invalid feedback inserted %d rows", len(st.feedback.rows))
	}

	rec, body := st.do(t, http.MethodPost, "/api/feedback", `{"email":"fan@kringe.music","rating":"4","comment":"Отличный сервис!"}`)
	if rec.Code != http.StatusOK || body["success"] != true {
		t.Fatalf("status = %d, body = %v", rec.Code, body)
	}
	data, _ := body["data"].(map[string]any)
	if data["id"] != float64(1) || len(st.feedback.rows) != 1 {
		t.Errorf("data = %v, rows = %d", data, len(st.feedback.rows))
	}
	if st.feedback.rows[0].Rating != 4 {
		t.Errorf("rating = %d, want 4", st.feedback.rows[0].Rating)
	}
}

func TestNews(t *testing.T) {
	st := newStack(t)

	rec, body := st.do(t, http.MethodPost, "/api/news", `{"author":"redaktor"}`)
	if rec.Code != http.StatusBadRequest || body["message"] != "Title and content are required" {
		t.Fatalf("create without fields: status = %d, body = %v", rec.Code, body)
	}

	rec, body = st.do(t, http.MethodPost, "/api/news", `{"title":"Новый релиз","content":"Вышел новый альбом"}`)
	if rec.Code != http.StatusOK || body["success"] != true || body["id"] == "" {
		t.Fatalf("create: status = %d, body = %v", rec.Code, body)
	}

	rec, body = st.do(t, http.MethodGet, "/api/news", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if data, _ := body["data"].([]any); len(data) != 1 {
		t.Errorf("data = %v", body["data"])
	}

	rec, _ = st.do(t, http.MethodGet, "/api/news?id=nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	st := newStack(t)

	rec, body := st.do(t, http.MethodGet, "/api/feedback", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if body["message"] != "Метод не разрешен" {
		t.Errorf("message = %v", body["message"])
	}

	rec, _ = st.do(t, http.MethodOptions, "/api/feedback", "")
	if rec.Code != http.StatusOK {
		t.Errorf("OPTIONS status = %d, want 200", rec.Code)
	}
}

func TestPagesAndFallback(t *testing.T) {
	st := newStack(t)

	rec, _ := st.do(t, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Kringe") {
		t.Errorf("index: status = %d, body = %q", rec.Code, rec.Body.String())
	}

	rec, _ = st.do(t, http.MethodGet, "/about", "")
	if rec.Code != http.StatusNotFound || rec.Body.String() != handler.MsgFileNotFound {
		t.Errorf("missing page: status = %d, body = %q", rec.Code, rec.Body.String())
	}

	rec, _ = st.do(t, http.MethodGet, "/no/such/page", "")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "Страница не найдена") {
		t.Errorf("unknown path: status = %d", rec.Code)
	}
}

func TestStatus(t *testing.T) {
	st := newStack(t)

	rec, body := st.do(t, http.MethodGet, "/status", "")
	if rec.Code != http.StatusOK || body["status"] != "healthy" {
		t.Errorf("status = %d, body = %v", rec.Code, body)
	}
}
