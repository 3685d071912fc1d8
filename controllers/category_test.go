package controllers_test

import (
	"net/http"
	"testing"

	"go-storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryDerivesSlug(t *testing.T) {
	e := newEnv(t)
	_, adminToken := e.seedUser(t, "admin@example.com", models.RoleAdmin)

	rec := e.do("POST", "/api/v1/category/create-category", adminToken, map[string]string{"name": "Books"})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	require.Equal(t, true, body["success"])
	category := body["category"].(map[string]interface{})
	assert.Equal(t, "Books", category["name"])
	assert.Equal(t, "books", category["slug"])
}

func TestUpdateCategoryKeepsIdentifier(t *testing.T) {
	e := newEnv(t)
	_, adminToken := e.seedUser(t, "admin@example.com", models.RoleAdmin)

	rec := e.do("POST", "/api/v1/category/create-category", adminToken, map[string]string{"name": "Books"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)["category"].(map[string]interface{})
	id := created["id"].(string)

	rec = e.do("PUT", "/api/v1/category/update-category/"+id, adminToken, map[string]string{"name": "Comic Books"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode(t, rec)["category"].(map[string]interface{})
	assert.Equal(t, id, updated["id"])
	assert.Equal(t, "comic-books", updated["slug"])
}

func TestCreateCategoryDuplicate(t *testing.T) {
	e := newEnv(t)
	_, adminToken := e.seedUser(t, "admin@example.com", models.RoleAdmin)

	rec := e.do("POST", "/api/v1/category/create-category", adminToken, map[string]string{"name": "Books"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do("POST", "/api/v1/category/create-category", adminToken, map[string]string{"name": "Books"})
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Category already exists", body["message"])
}

func TestCreateCategoryRequiresAdmin(t *testing.T) {
	e := newEnv(t)
	_, userToken := e.seedUser(t, "plain@example.com", models.RoleUser)

	rec := e.do("POST", "/api/v1/category/create-category", userToken, map[string]string{"name": "Books"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The underlying operation never ran.
	rec = e.do("GET", "/api/v1/category/get-category", "", nil)
	body := decode(t, rec)
	assert.Len(t, body["category"].([]interface{}), 0)
}

func TestSingleAndDeleteCategory(t *testing.T) {
	e := newEnv(t)
	_, adminToken := e.seedUser(t, "admin@example.com", models.RoleAdmin)
	c := e.seedCategory(t, "Garden", "garden")

	rec := e.do("GET", "/api/v1/category/single-category/garden", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	category := decode(t, rec)["category"].(map[string]interface{})
	assert.Equal(t, "Garden", category["name"])

	rec = e.do("DELETE", "/api/v1/category/delete-category/"+c.ID.Hex(), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do("GET", "/api/v1/category/single-category/garden", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
