package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"go-storefront/controllers"
	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/payment"
	"go-storefront/routes"
	"go-storefront/store"
	"go-storefront/utils"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func init() {
	utils.JwtKey = []byte("controllers-test-secret")
}

type env struct {
	router  *mux.Router
	store   *store.Store
	gateway *payment.Fake
}

func newEnv(t *testing.T) *env {
	t.Helper()
	st := store.NewMemory()
	gateway := &payment.Fake{}

	auth := middleware.NewAuth(st.Users)
	authController := controllers.NewAuthController(st.Users, st.Orders)
	categoryController := controllers.NewCategoryController(st.Categories)
	productController := controllers.NewProductController(st.Products, st.Categories)
	paymentController := controllers.NewPaymentController(gateway, st.Orders, st.Users, nil)

	router := mux.NewRouter()
	routes.RegisterRoutes(router, auth, authController, categoryController, productController, paymentController)
	return &env{router: router, store: st, gateway: gateway}
}

// seedUser inserts a user directly and returns it with a valid token.
func (e *env) seedUser(t *testing.T, email string, role int) (*models.User, string) {
	t.Helper()
	hashed, err := utils.HashPassword("secret123")
	require.NoError(t, err)
	u := &models.User{
		Name:     "Seeded User",
		Email:    email,
		Password: hashed,
		Phone:    "12345",
		Address:  "1 Test Street",
		Answer:   "blue",
		Role:     role,
	}
	require.NoError(t, e.store.Users.Insert(context.Background(), u))
	token, err := utils.GenerateJWT(u.ID.Hex())
	require.NoError(t, err)
	return u, token
}

func (e *env) seedCategory(t *testing.T, name, slugStr string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name, Slug: slugStr}
	require.NoError(t, e.store.Categories.Insert(context.Background(), c))
	return c
}

func (e *env) seedProduct(t *testing.T, name string, price float64, category *models.Category) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:        name,
		Slug:        name,
		Description: name + " description",
		Price:       price,
		Quantity:    10,
	}
	if category != nil {
		p.Category = category.ID
	}
	require.NoError(t, e.store.Products.Insert(context.Background(), p))
	return p
}

// do performs a JSON request against the router.
func (e *env) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		buf, _ := json.Marshal(body)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// doForm performs a multipart product form request.
func (e *env) doForm(t *testing.T, method, path, token string, fields map[string]string, photo []byte, photoType string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if photo != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, "photo", "photo.jpg"))
		header.Set("Content-Type", photoType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a response body into a generic map.
func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
