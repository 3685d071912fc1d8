package controllers_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"testing"

	"go-storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productNames(body map[string]interface{}) []string {
	items := body["products"].([]interface{})
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.(map[string]interface{})["name"].(string))
	}
	return names
}

func TestCreateProductWithPhoto(t *testing.T) {
	e := newEnv(t)
	_, adminToken := e.seedUser(t, "admin@example.com", models.RoleAdmin)
	c := e.seedCategory(t, "Electronics", "electronics")

	photo := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}
	rec := e.doForm(t, "POST", "/api/v1/product/create-product", adminToken, map[string]string{
		"name":        "Solar Charger",
		"description": "Folding solar charger",
		"price":       "39.99",
		"category":    c.ID.Hex(),
		"quantity":    "25",
		"shipping":    "true",
	}, photo, "image/jpeg")
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	require.Equal(t, true, body["success"])
	created := body["products"].(map[string]interface{})
	assert.Equal(t, "solar-charger", created["slug"])

	// The photo is served back with its stored content type.
	id := created["id"].(string)
	rec = e.do("GET", "/api/v1/product/product-photo/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.Equal(photo, rec.Body.Bytes()))
}

func TestCreateProductPhotoTooLarge(t *testing.T) {
	e := newEnv(t)
	_, adminToken := e.seedUser(t, "admin@example.com", models.RoleAdmin)
	c := e.seedCategory(t, "Electronics", "electronics")

	oversized := make([]byte, models.MaxPhotoSize+1)
	rec := e.doForm(t, "POST", "/api/v1/product/create-product", adminToken, map[string]string{
		"name":        "Solar Charger",
		"description": "Folding solar charger",
		"price":       "39.99",
		"category":    c.ID.Hex(),
		"quantity":    "25",
	}, oversized, "image/jpeg")
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Photo should be less than 1mb", body["message"])

	rec = e.do("GET", "/api/v1/product/product-count", "", nil)
	assert.Equal(t, float64(0), decode(t, rec)["total"])
}

func TestCreateProductMissingField(t *testing.T) {
	e := newEnv(t)
	_, adminToken := e.seedUser(t, "admin@example.com", models.RoleAdmin)
	c := e.seedCategory(t, "Electronics", "electronics")

	rec := e.doForm(t, "POST", "/api/v1/product/create-product", adminToken, map[string]string{
		"name":     "Solar Charger",
		"price":    "39.99",
		"category": c.ID.Hex(),
		"quantity": "25",
	}, nil, "")
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Description is required", body["message"])
}

func TestUpdateProductKeepsPhotoWhenNotReplaced(t *testing.T) {
	e := newEnv(t)
	_, adminToken := e.seedUser(t, "admin@example.com", models.RoleAdmin)
	c := e.seedCategory(t, "Electronics", "electronics")

	photo := []byte{1, 2, 3, 4}
	rec := e.doForm(t, "POST", "/api/v1/product/create-product", adminToken, map[string]string{
		"name":        "Lamp",
		"description": "Desk lamp",
		"price":       "12",
		"category":    c.ID.Hex(),
		"quantity":    "5",
	}, photo, "image/png")
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["products"].(map[string]interface{})["id"].(string)

	rec = e.doForm(t, "PUT", "/api/v1/product/update-product/"+id, adminToken, map[string]string{
		"name":        "Brass Lamp",
		"description": "Desk lamp",
		"price":       "15",
		"category":    c.ID.Hex(),
		"quantity":    "5",
	}, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode(t, rec)["products"].(map[string]interface{})
	assert.Equal(t, "brass-lamp", updated["slug"])

	rec = e.do("GET", "/api/v1/product/product-photo/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.Equal(photo, rec.Body.Bytes()))
}

func TestFilterByPriceRange(t *testing.T) {
	e := newEnv(t)
	c := e.seedCategory(t, "Misc", "misc")
	e.seedProduct(t, "below", 9.99, c)
	e.seedProduct(t, "low-edge", 10, c)
	e.seedProduct(t, "mid", 30, c)
	e.seedProduct(t, "high-edge", 50, c)
	e.seedProduct(t, "above", 50.01, c)

	rec := e.do("POST", "/api/v1/product/product-filters", "", map[string]interface{}{
		"checked": []string{},
		"radio":   []float64{10, 50},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	names := productNames(decode(t, rec))
	assert.ElementsMatch(t, []string{"low-edge", "mid", "high-edge"}, names)
}

func TestFilterByCategoryAndPrice(t *testing.T) {
	e := newEnv(t)
	books := e.seedCategory(t, "Books", "books")
	games := e.seedCategory(t, "Games", "games")
	e.seedProduct(t, "cheap-book", 8, books)
	e.seedProduct(t, "pricey-book", 20, books)
	e.seedProduct(t, "pricey-game", 20, games)

	rec := e.do("POST", "/api/v1/product/product-filters", "", map[string]interface{}{
		"checked": []string{books.ID.Hex()},
		"radio":   []float64{10, 50},
	})
	names := productNames(decode(t, rec))
	assert.Equal(t, []string{"pricey-book"}, names)
}

func TestProductListPagination(t *testing.T) {
	e := newEnv(t)
	c := e.seedCategory(t, "Misc", "misc")
	for i := 1; i <= 15; i++ {
		e.seedProduct(t, fmt.Sprintf("p%02d", i), float64(i), c)
	}

	// Page 2 holds products ranked 7-12 by descending creation time.
	rec := e.do("GET", "/api/v1/product/product-list/2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	names := productNames(decode(t, rec))
	assert.Equal(t, []string{"p09", "p08", "p07", "p06", "p05", "p04"}, names)
}

func TestGetAllLimitedToTwelveNewestFirst(t *testing.T) {
	e := newEnv(t)
	c := e.seedCategory(t, "Misc", "misc")
	for i := 1; i <= 14; i++ {
		e.seedProduct(t, fmt.Sprintf("p%02d", i), float64(i), c)
	}

	rec := e.do("GET", "/api/v1/product/get-product", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	names := productNames(body)
	require.Len(t, names, 12)
	assert.Equal(t, "p14", names[0])
	assert.Equal(t, float64(12), body["total_count"])

	// Categories come back populated.
	first := body["products"].([]interface{})[0].(map[string]interface{})
	category := first["category"].(map[string]interface{})
	assert.Equal(t, "Misc", category["name"])
}

func TestSearchCaseInsensitive(t *testing.T) {
	e := newEnv(t)
	c := e.seedCategory(t, "Misc", "misc")
	e.seedProduct(t, "Walnut Desk", 100, c)
	e.seedProduct(t, "Chair", 50, c)
	shelf := &models.Product{
		Name:        "Shelf",
		Slug:        "shelf",
		Description: "walnut veneer shelf",
		Price:       30,
		Category:    c.ID,
		Quantity:    3,
	}
	require.NoError(t, e.store.Products.Insert(context.Background(), shelf))

	rec := e.do("GET", "/api/v1/product/search/WALNUT", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	names := productNames(decode(t, rec))
	assert.ElementsMatch(t, []string{"Walnut Desk", "Shelf"}, names)
}

func TestRelatedProducts(t *testing.T) {
	e := newEnv(t)
	books := e.seedCategory(t, "Books", "books")
	games := e.seedCategory(t, "Games", "games")
	base := e.seedProduct(t, "base", 10, books)
	for i := 0; i < 6; i++ {
		e.seedProduct(t, fmt.Sprintf("book%d", i), 10, books)
	}
	e.seedProduct(t, "game", 10, games)

	rec := e.do("GET", "/api/v1/product/related-product/"+base.ID.Hex()+"/"+books.ID.Hex(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	names := productNames(decode(t, rec))
	assert.Len(t, names, 4)
	assert.NotContains(t, names, "base")
	assert.NotContains(t, names, "game")
}

func TestProductsByCategorySlug(t *testing.T) {
	e := newEnv(t)
	books := e.seedCategory(t, "Books", "books")
	games := e.seedCategory(t, "Games", "games")
	e.seedProduct(t, "novel", 12, books)
	e.seedProduct(t, "puzzle", 18, games)

	rec := e.do("GET", "/api/v1/product/product-category/books", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, []string{"novel"}, productNames(body))
	assert.Equal(t, "Books", body["category"].(map[string]interface{})["name"])
}

func TestDeleteProductRequiresAdmin(t *testing.T) {
	e := newEnv(t)
	_, userToken := e.seedUser(t, "plain@example.com", models.RoleUser)
	_, adminToken := e.seedUser(t, "admin@example.com", models.RoleAdmin)
	c := e.seedCategory(t, "Misc", "misc")
	p := e.seedProduct(t, "doomed", 5, c)

	assert.Equal(t, http.StatusUnauthorized, e.do("DELETE", "/api/v1/product/delete-product/"+p.ID.Hex(), userToken, nil).Code)

	rec := e.do("DELETE", "/api/v1/product/delete-product/"+p.ID.Hex(), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do("GET", "/api/v1/product/product-count", "", nil)
	assert.Equal(t, float64(0), decode(t, rec)["total"])
}
