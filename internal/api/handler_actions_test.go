package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenpoints-backend/internal/model"
)

func TestProtectedRoutes_RequireSession(t *testing.T) {
	env := newTestEnv(t)
	bogus := &http.Cookie{Name: env.cfg.Session.CookieName, Value: "not-a-session"}

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/me"},
		{http.MethodGet, "/api/actions"},
		{http.MethodPut, "/api/actions/1"},
		{http.MethodDelete, "/api/actions/1"},
		{http.MethodPost, "/fragments/actions/log"},
		{http.MethodGet, "/fragments/actions/1/edit"},
		{http.MethodPut, "/fragments/actions/1"},
		{http.MethodDelete, "/fragments/actions/1"},
		{http.MethodGet, "/dashboard"},
	}

	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			w := env.do(r.method, r.path, nil, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"not authenticated"}`, w.Body.String())

			w = env.do(r.method, r.path, nil, "", bogus)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestBikeToClass_LedgerRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signUp(t, "alex@umass.edu", "Sylvan")
	before := env.dorm(t, "Sylvan").TotalPoints

	id := env.logAction(t, cookie, "Bike to Class")
	assert.Equal(t, int64(50), env.user(t, "alex@umass.edu").TotalPoints)
	assert.Equal(t, before+50, env.dorm(t, "Sylvan").TotalPoints)

	w := env.get("/api/actions", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	actions := decode[[]ActionResponse](t, w)
	require.Len(t, actions, 1)
	assert.Equal(t, id, actions[0].ID)
	assert.Equal(t, "Bike to Class", actions[0].ActionName)
	assert.Equal(t, int64(50), actions[0].PointsEarned)
	assert.InDelta(t, 2.0, actions[0].CarbonSavedKg, 1e-9)

	w = env.do(http.MethodDelete, fmt.Sprintf("/api/actions/%d", id), nil, "", cookie)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, env.user(t, "alex@umass.edu").TotalPoints)
	assert.Equal(t, before, env.dorm(t, "Sylvan").TotalPoints)

	w = env.get("/api/actions", cookie)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUpdateAction_API(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signUp(t, "jo@umass.edu", "Orchard Hill")
	id := env.logAction(t, cookie, "Recycle")
	path := fmt.Sprintf("/api/actions/%d", id)

	w := env.sendJSON(http.MethodPut, path, `{"points_earned": 80}`, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[ActionResponse](t, w)
	assert.Equal(t, int64(80), updated.PointsEarned)
	assert.Equal(t, "Recycle", updated.ActionName)
	assert.Equal(t, int64(80), env.user(t, "jo@umass.edu").TotalPoints)
	assert.Equal(t, int64(80), env.dorm(t, "Orchard Hill").TotalPoints)

	w = env.sendJSON(http.MethodPut, path, `{"points_earned": 0}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, env.user(t, "jo@umass.edu").TotalPoints)

	testCases := []struct {
		name     string
		path     string
		body     string
		expected int
	}{
		{name: "Missing field", path: path, body: `{}`, expected: http.StatusBadRequest},
		{name: "Wrong type", path: path, body: `{"points_earned": "lots"}`, expected: http.StatusBadRequest},
		{name: "Malformed JSON", path: path, body: `{`, expected: http.StatusBadRequest},
		{name: "Non-numeric id", path: "/api/actions/abc", body: `{"points_earned": 1}`, expected: http.StatusBadRequest},
		{name: "Missing action", path: "/api/actions/99999", body: `{"points_earned": 1}`, expected: http.StatusNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.sendJSON(http.MethodPut, tc.path, tc.body, cookie)
			assert.Equal(t, tc.expected, w.Code)
		})
	}
	assert.Zero(t, env.user(t, "jo@umass.edu").TotalPoints)
}

func TestForeignAction_API(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signUp(t, "owner@umass.edu", "Southwest")
	other := env.signUp(t, "other@umass.edu", "Southwest")
	id := env.logAction(t, owner, "Bike to Class")
	path := fmt.Sprintf("/api/actions/%d", id)

	w := env.do(http.MethodDelete, path, nil, "", other)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"action not found"}`, w.Body.String())

	w = env.sendJSON(http.MethodPut, path, `{"points_earned": 1000}`, other)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var action model.Action
	require.NoError(t, env.db.First(&action, id).Error)
	assert.Equal(t, int64(50), action.PointsEarned)
	assert.Equal(t, int64(50), env.user(t, "owner@umass.edu").TotalPoints)
	assert.Equal(t, int64(50), env.dorm(t, "Southwest").TotalPoints)

	w = env.get("/api/actions", other)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetMe(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signUp(t, "me@umass.edu", "Central")
	env.logAction(t, cookie, "Turn Off Lights")

	w := env.get("/api/me", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[MeResponse](t, w)
	assert.Equal(t, "me@umass.edu", me.Email)
	assert.Equal(t, int64(10), me.TotalPoints)
	assert.Equal(t, 1, me.CurrentStreak)
	assert.Equal(t, "Central", me.DormName)
}

func TestGetDorms_InvalidatedAfterWrites(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signUp(t, "fan@umass.edu", "Puffton Apartments")

	w := env.get("/api/dorms", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dorms := decode[[]DormResponse](t, w)
	require.Len(t, dorms, 10)
	assert.Zero(t, dorms[0].TotalPoints)

	id := env.logAction(t, cookie, "Bike to Class")

	dorms = decode[[]DormResponse](t, env.get("/api/dorms", nil))
	assert.Equal(t, "Puffton Apartments", dorms[0].Name)
	assert.Equal(t, int64(50), dorms[0].TotalPoints)

	env.do(http.MethodDelete, fmt.Sprintf("/api/actions/%d", id), nil, "", cookie)

	dorms = decode[[]DormResponse](t, env.get("/api/dorms", nil))
	assert.Zero(t, dorms[0].TotalPoints)
}

func TestGetActionTypes(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/api/action-types", nil)
	require.Equal(t, http.StatusOK, w.Code)
	types := decode[[]model.ActionType](t, w)
	require.Len(t, types, 20)
	assert.Equal(t, "Turn Off Lights", types[0].Name)
	assert.Equal(t, int64(10), types[0].BasePoints)
}
