package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/store"
	"go-storefront/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	utils.JwtKey = []byte("middleware-test-secret")
}

func seedUser(t *testing.T, st *store.Store, role int) *models.User {
	t.Helper()
	u := &models.User{
		Name:     "Test User",
		Email:    "user@example.com",
		Password: "irrelevant",
		Role:     role,
	}
	require.NoError(t, st.Users.Insert(context.Background(), u))
	return u
}

func nextProbe() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestRequireSignInMissingHeader(t *testing.T) {
	auth := middleware.NewAuth(store.NewMemory().Users)
	next, called := nextProbe()

	rec := httptest.NewRecorder()
	auth.RequireSignIn(next).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestRequireSignInInvalidToken(t *testing.T) {
	auth := middleware.NewAuth(store.NewMemory().Users)
	next, called := nextProbe()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	auth.RequireSignIn(next).ServeHTTP(rec, req)

	// The rejected state always answers; the connection is never left hanging.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
	assert.NotEmpty(t, rec.Body.String())
}

func TestRequireSignInValidToken(t *testing.T) {
	st := store.NewMemory()
	user := seedUser(t, st, models.RoleUser)
	auth := middleware.NewAuth(st.Users)

	token, err := utils.GenerateJWT(user.ID.Hex())
	require.NoError(t, err)

	var gotID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.UserID(r)
		require.True(t, ok)
		gotID = id.Hex()
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	auth.RequireSignIn(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, user.ID.Hex(), gotID)
}

func TestRequireSignInBareToken(t *testing.T) {
	st := store.NewMemory()
	user := seedUser(t, st, models.RoleUser)
	auth := middleware.NewAuth(st.Users)

	token, err := utils.GenerateJWT(user.ID.Hex())
	require.NoError(t, err)

	next, called := nextProbe()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", token)
	auth.RequireSignIn(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, *called)
}

func TestIsAdminRejectsOrdinaryUser(t *testing.T) {
	st := store.NewMemory()
	user := seedUser(t, st, models.RoleUser)
	auth := middleware.NewAuth(st.Users)

	token, err := utils.GenerateJWT(user.ID.Hex())
	require.NoError(t, err)

	next, called := nextProbe()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	auth.RequireSignIn(auth.IsAdmin(next)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestIsAdminAllowsAdmin(t *testing.T) {
	st := store.NewMemory()
	user := seedUser(t, st, models.RoleAdmin)
	auth := middleware.NewAuth(st.Users)

	token, err := utils.GenerateJWT(user.ID.Hex())
	require.NoError(t, err)

	next, called := nextProbe()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	auth.RequireSignIn(auth.IsAdmin(next)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}
