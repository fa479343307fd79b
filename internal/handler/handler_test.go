package handler_test

// Test harness: the full echo app wired against in-memory fakes for the
// stores and the real session manager, throttle, validator and
// templates. Requests go through ServeHTTP, so routing, middleware and
// cookie handling are exercised exactly as in production.

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/flash"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/forms"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/handler"
	appmw "github.com/damsolebgdu91/Projet-Fil-Rouge/internal/middleware"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/model"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/repository"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/router"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/session"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/throttle"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/utils"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/view"
)

// fakeUserStore is an in-memory handler.UserStore that mirrors the
// repository's error contract.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]model.User
	tasks  *fakeTaskStore // cascade target for DeleteWithTasks
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint64]model.User)}
}

func (s *fakeUserStore) Create(_ context.Context, username, passwordHash string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return model.User{}, repository.ErrUsernameTaken
		}
	}
	s.nextID++
	u := model.User{ID: s.nextID, Username: username, PasswordHash: passwordHash, CreatedAt: time.Now()}
	s.users[u.ID] = u
	return u, nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, id uint64, username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for otherID, u := range s.users {
		if u.Username == username && otherID != id {
			return repository.ErrUsernameTaken
		}
	}
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Username = username
	if passwordHash != "" {
		u.PasswordHash = passwordHash
	}
	s.users[id] = u
	return nil
}

func (s *fakeUserStore) DeleteWithTasks(ctx context.Context, id uint64) error {
	s.mu.Lock()
	_, ok := s.users[id]
	delete(s.users, id)
	s.mu.Unlock()
	if !ok {
		return repository.ErrUserNotFound
	}
	return s.tasks.deleteAllForUser(id)
}

// fakeTaskStore is an in-memory handler.TaskStore with owner scoping.
type fakeTaskStore struct {
	mu     sync.Mutex
	nextID uint64
	tasks  map[uint64]model.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[uint64]model.Task)}
}

func (s *fakeTaskStore) Create(_ context.Context, ownerID uint64, content string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t := model.Task{ID: s.nextID, Content: content, UserID: ownerID, CreatedAt: time.Now()}
	s.tasks[t.ID] = t
	return t, nil
}

func (s *fakeTaskStore) ListByOwner(_ context.Context, ownerID uint64) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Task{}
	for id := uint64(1); id <= s.nextID; id++ {
		if t, ok := s.tasks[id]; ok && t.UserID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeTaskStore) DeleteOwned(_ context.Context, ownerID, taskID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok || t.UserID != ownerID {
		return repository.ErrTaskNotFound
	}
	delete(s.tasks, taskID)
	return nil
}

func (s *fakeTaskStore) ToggleOwned(_ context.Context, ownerID, taskID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok || t.UserID != ownerID {
		return repository.ErrTaskNotFound
	}
	t.Done = !t.Done
	s.tasks[taskID] = t
	return nil
}

func (s *fakeTaskStore) deleteAllForUser(ownerID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.tasks {
		if t.UserID == ownerID {
			delete(s.tasks, id)
		}
	}
	return nil
}

func (s *fakeTaskStore) countForUser(ownerID uint64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if t.UserID == ownerID {
			n++
		}
	}
	return n
}

type testApp struct {
	e        *echo.Echo
	users    *fakeUserStore
	tasks    *fakeTaskStore
	throttle *throttle.LoginThrottle
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	users := newFakeUserStore()
	tasks := newFakeTaskStore()
	users.tasks = tasks

	sessions := session.NewManager(session.NewMemoryStore(), time.Hour, 48*time.Hour)
	cookies := session.NewCookieCodec("test_secret", 48*time.Hour)
	flashes := flash.NewManager("test_secret")
	th := throttle.New(5, 5*time.Minute)
	hasher := utils.NewHasher(bcrypt.MinCost)

	e := echo.New()
	e.Renderer = view.New()
	e.Validator = forms.NewValidator()

	authHandler := handler.NewAuthHandler(users, sessions, th, hasher, cookies, flashes)
	taskHandler := handler.NewTaskHandler(tasks, flashes)
	profileHandler := handler.NewProfileHandler(users, sessions, hasher, cookies, flashes)

	router.RegisterPublic(e, authHandler)
	router.RegisterPrivate(e, authHandler, taskHandler, profileHandler,
		appmw.RequireAuth(cookies, sessions, users, flashes))

	return &testApp{e: e, users: users, tasks: tasks, throttle: th}
}

// get performs a GET with the given cookies.
func (a *testApp) get(target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// postForm performs a POST with url-encoded form values and cookies.
func (a *testApp) postForm(target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// register creates an account through the real endpoint.
func (a *testApp) register(t *testing.T, username, password string) {
	t.Helper()
	rec := a.postForm("/register", url.Values{
		"username":         {username},
		"password":         {password},
		"confirm_password": {password},
	})
	if rec.Code != http.StatusFound {
		t.Fatalf("register %s: expected 302, got %d (%s)", username, rec.Code, rec.Body.String())
	}
}

// login authenticates and returns the session cookie.
func (a *testApp) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	rec := a.postForm("/login", url.Values{
		"username": {username},
		"password": {password},
	})
	if rec.Code != http.StatusFound {
		t.Fatalf("login %s: expected 302, got %d (%s)", username, rec.Code, rec.Body.String())
	}
	ck := sessionCookie(rec)
	if ck == nil {
		t.Fatalf("login %s: no session cookie set", username)
	}
	return ck
}

// sessionCookie extracts the session cookie from a response, nil when
// absent.
func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.CookieName && ck.Value != "" {
			return ck
		}
	}
	return nil
}
