package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"greenpoints-backend/config"
	"greenpoints-backend/internal/catalog"
	"greenpoints-backend/internal/db"
	"greenpoints-backend/internal/model"
	"greenpoints-backend/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	store  store.Store
	db     *gorm.DB
	cfg    *config.Config
}

// newTestEnv wires the full router over a seeded sqlite database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := db.SQLiteDSN(filepath.Join(t.TempDir(), "api.db"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(gormDB))

	s := store.NewGormStore(gormDB)
	c, err := catalog.Default()
	require.NoError(t, err)
	_, err = s.Seed(context.Background(), c)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Server.RateLimitPerSec = 0

	return &testEnv{
		router: NewRouter(s, cfg),
		store:  s,
		db:     gormDB,
		cfg:    cfg,
	}
}

func (e *testEnv) do(method, path string, body io.Reader, contentType string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) form(method, path string, values url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	return e.do(method, path, strings.NewReader(values.Encode()), "application/x-www-form-urlencoded", cookie)
}

func (e *testEnv) sendJSON(method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	return e.do(method, path, strings.NewReader(body), "application/json", cookie)
}

func (e *testEnv) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	return e.do(http.MethodGet, path, nil, "", cookie)
}

func (e *testEnv) dormID(t *testing.T, name string) int64 {
	t.Helper()
	var d model.Dorm
	require.NoError(t, e.db.Where("name = ?", name).First(&d).Error)
	return d.ID
}

func (e *testEnv) actionTypeID(t *testing.T, name string) int64 {
	t.Helper()
	var at model.ActionType
	require.NoError(t, e.db.Where("name = ?", name).First(&at).Error)
	return at.ID
}

func (e *testEnv) sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == e.cfg.Session.CookieName {
			return c
		}
	}
	return nil
}

// signUp registers and logs in a user, returning the session cookie.
func (e *testEnv) signUp(t *testing.T, email, dorm string) *http.Cookie {
	t.Helper()

	values := url.Values{"email": {email}, "password": {"hunter22"}}
	if dorm != "" {
		values.Set("dorm_id", strconv.FormatInt(e.dormID(t, dorm), 10))
	}
	w := e.form(http.MethodPost, "/auth/register", values, nil)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())

	w = e.form(http.MethodPost, "/auth/login", url.Values{"email": {email}, "password": {"hunter22"}}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	cookie := e.sessionCookie(w)
	require.NotNil(t, cookie)
	return cookie
}

// logAction logs an action through the fragment endpoint and returns its id.
func (e *testEnv) logAction(t *testing.T, cookie *http.Cookie, actionType string) int64 {
	t.Helper()

	values := url.Values{"action_type_id": {strconv.FormatInt(e.actionTypeID(t, actionType), 10)}}
	w := e.form(http.MethodPost, "/fragments/actions/log", values, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var action model.Action
	require.NoError(t, e.db.Order("id DESC").First(&action).Error)
	return action.ID
}

func (e *testEnv) user(t *testing.T, email string) model.User {
	t.Helper()
	var u model.User
	require.NoError(t, e.db.Where("email = ?", email).First(&u).Error)
	return u
}

func (e *testEnv) dorm(t *testing.T, name string) model.Dorm {
	t.Helper()
	var d model.Dorm
	require.NoError(t, e.db.Where("name = ?", name).First(&d).Error)
	return d
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
