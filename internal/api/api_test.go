package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"restaurant_booking/internal/api"
	"restaurant_booking/internal/domain"
	"restaurant_booking/internal/middleware"
	"restaurant_booking/internal/storage"
	"restaurant_booking/internal/store"
	"restaurant_booking/internal/testutil"
	"restaurant_booking/internal/utils"
	"restaurant_booking/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

// fixed clock: 2026-10-14 noon UTC
var testNow = time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

// memCache is a map-backed utils.Cache
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (m *memCache) Get(_ context.Context, key string, dest any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (m *memCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = b
	return nil
}

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

type testEnv struct {
	t      *testing.T
	router http.Handler
	st     *store.Store
	images *storage.ImageStore
	cache  *memCache
	user   *domain.User
	other  *domain.User
	admin  *domain.User
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	return newEnvWithLimit(t, 10<<20)
}

// newEnvWithLimit builds the router with a custom request body cap
func newEnvWithLimit(t *testing.T, maxBody int64) *testEnv {
	t.Helper()
	st := store.New(testutil.NewDB(t))
	images, err := storage.NewImageStore(t.TempDir())
	require.NoError(t, err)
	tmpl, err := web.Templates()
	require.NoError(t, err)
	cache := newMemCache()

	h := &api.Handler{
		Store:      st,
		Cache:      cache,
		Images:     images,
		Secret:     testSecret,
		SessionTTL: time.Hour,
		CacheTTL:   time.Minute,
		Location:   time.UTC,
		Clock:      func() time.Time { return testNow },
	}
	router, err := api.NewRouter(h, api.RouterOptions{Templates: tmpl, MaxUploadBytes: maxBody})
	require.NoError(t, err)

	env := &testEnv{t: t, router: router, st: st, images: images, cache: cache}
	env.user = env.createUser("kim", "kim@example.com", domain.RoleUser)
	env.other = env.createUser("lee", "lee@example.com", domain.RoleUser)
	env.admin = env.createUser("boss", "boss@example.com", domain.RoleAdmin)
	return env
}

func (e *testEnv) createUser(name, email string, role domain.Role) *domain.User {
	e.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(e.t, err)
	u := &domain.User{Username: name, Email: email, PasswordHash: string(hash)}
	require.NoError(e.t, e.st.CreateUser(context.Background(), u))
	if role != domain.RoleUser {
		require.NoError(e.t, e.st.DB().Model(u).Update("role", role).Error)
		u.Role = role
	}
	return u
}

func (e *testEnv) createRestaurant(name, city string) *domain.Restaurant {
	e.t.Helper()
	r := &domain.Restaurant{Name: name, City: city, Description: "Charcoal grill", Address: "1 Main St"}
	require.NoError(e.t, e.st.CreateRestaurant(context.Background(), r))
	return r
}

// serve sends req with the user's session cookie when user is non-nil
func (e *testEnv) serve(req *http.Request, user *domain.User) *httptest.ResponseRecorder {
	e.t.Helper()
	if user != nil {
		token, err := utils.GenerateSessionToken(user.ID, testSecret, time.Hour)
		require.NoError(e.t, err)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string, user *domain.User) *httptest.ResponseRecorder {
	return e.serve(httptest.NewRequest(http.MethodGet, path, nil), user)
}

func (e *testEnv) postForm(path string, form url.Values, user *domain.User) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.serve(req, user)
}

func (e *testEnv) postJSON(path string, user *domain.User) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.Header.Set("Accept", "application/json")
	return e.serve(req, user)
}

// postMultipart submits fields plus an optional image file
func (e *testEnv) postMultipart(path string, fields map[string]string, filename string, content []byte, user *domain.User) *httptest.ResponseRecorder {
	e.t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(e.t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("image", filename)
		require.NoError(e.t, err)
		_, err = part.Write(content)
		require.NoError(e.t, err)
	}
	require.NoError(e.t, w.Close())
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return e.serve(req, user)
}

// postRaw sends body with an explicit content type
func (e *testEnv) postRaw(path, contentType, body string, user *domain.User) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	return e.serve(req, user)
}

func (e *testEnv) uploads() []string {
	e.t.Helper()
	entries, err := os.ReadDir(e.images.Dir)
	require.NoError(e.t, err)
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func (e *testEnv) count(model any) int64 {
	e.t.Helper()
	var n int64
	require.NoError(e.t, e.st.DB().Model(model).Count(&n).Error)
	return n
}

func (e *testEnv) uploadExists(name string) bool {
	_, err := os.Stat(filepath.Join(e.images.Dir, name))
	return err == nil
}
