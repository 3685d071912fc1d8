// routes/routes.go
package routes

import (
	"net/http"

	"go-storefront/controllers"
	"go-storefront/middleware"
	"go-storefront/utils"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, auth *middleware.Auth,
	authController *controllers.AuthController,
	categoryController *controllers.CategoryController,
	productController *controllers.ProductController,
	paymentController *controllers.PaymentController) {

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Metrics)

	// Auth routes: public
	authPublic := api.PathPrefix("/auth").Subrouter()
	authPublic.HandleFunc("/register", authController.Register).Methods("POST")
	authPublic.HandleFunc("/login", authController.Login).Methods("POST")
	authPublic.HandleFunc("/forgot-password", authController.ForgotPassword).Methods("POST")

	// Auth routes: signed in
	authUser := api.PathPrefix("/auth").Subrouter()
	authUser.Use(auth.RequireSignIn)
	authUser.HandleFunc("/user-auth", ok).Methods("GET")
	authUser.HandleFunc("/profile", authController.UpdateProfile).Methods("PUT")
	authUser.HandleFunc("/orders", authController.GetOrders).Methods("GET")

	// Auth routes: admin
	authAdmin := api.PathPrefix("/auth").Subrouter()
	authAdmin.Use(auth.RequireSignIn, auth.IsAdmin)
	authAdmin.HandleFunc("/test", authController.Test).Methods("GET")
	authAdmin.HandleFunc("/admin-auth", ok).Methods("GET")
	authAdmin.HandleFunc("/all-orders", authController.GetAllOrders).Methods("GET")
	authAdmin.HandleFunc("/order-status/{id}", authController.OrderStatus).Methods("PUT")

	// Category routes: public
	category := api.PathPrefix("/category").Subrouter()
	category.HandleFunc("/get-category", categoryController.GetAll).Methods("GET")
	category.HandleFunc("/single-category/{slug}", categoryController.GetSingle).Methods("GET")

	// Category routes: admin
	categoryAdmin := api.PathPrefix("/category").Subrouter()
	categoryAdmin.Use(auth.RequireSignIn, auth.IsAdmin)
	categoryAdmin.HandleFunc("/create-category", categoryController.Create).Methods("POST")
	categoryAdmin.HandleFunc("/update-category/{id}", categoryController.Update).Methods("PUT")
	categoryAdmin.HandleFunc("/delete-category/{id}", categoryController.Delete).Methods("DELETE")

	// Product routes: public
	product := api.PathPrefix("/product").Subrouter()
	product.HandleFunc("/get-product", productController.GetAll).Methods("GET")
	product.HandleFunc("/get-product/{slug}", productController.GetSingle).Methods("GET")
	product.HandleFunc("/product-photo/{pid}", productController.Photo).Methods("GET")
	product.HandleFunc("/product-filters", productController.Filters).Methods("POST")
	product.HandleFunc("/product-count", productController.Count).Methods("GET")
	product.HandleFunc("/product-list/{page}", productController.List).Methods("GET")
	product.HandleFunc("/search/{keyword}", productController.Search).Methods("GET")
	product.HandleFunc("/related-product/{pid}/{cid}", productController.Related).Methods("GET")
	product.HandleFunc("/product-category/{slug}", productController.ByCategory).Methods("GET")
	product.HandleFunc("/braintree/token", paymentController.Token).Methods("GET")

	// Product routes: signed in
	productUser := api.PathPrefix("/product").Subrouter()
	productUser.Use(auth.RequireSignIn)
	productUser.HandleFunc("/braintree/payment", paymentController.Pay).Methods("POST")

	// Product routes: admin
	productAdmin := api.PathPrefix("/product").Subrouter()
	productAdmin.Use(auth.RequireSignIn, auth.IsAdmin)
	productAdmin.HandleFunc("/create-product", productController.Create).Methods("POST")
	productAdmin.HandleFunc("/update-product/{pid}", productController.Update).Methods("PUT")
	productAdmin.HandleFunc("/delete-product/{id}", productController.Delete).Methods("DELETE")
}

func ok(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}
