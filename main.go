// main.go
package main

import (
	"context"
	"net/http"
	"time"

	"go-storefront/config"
	"go-storefront/controllers"
	"go-storefront/middleware"
	"go-storefront/payment"
	"go-storefront/routes"
	"go-storefront/store"
	"go-storefront/utils"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()

	// Set the JWT secret key
	utils.JwtKey = []byte(cfg.JWTSecret)

	// Connect to MongoDB
	client, err := config.ConnectDB(cfg.MongoURI)
	if err != nil {
		logrus.WithError(err).Fatal("connecting to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logrus.WithError(err).Error("disconnecting from MongoDB")
		}
	}()

	db := client.Database(cfg.Database)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := store.EnsureIndexes(ctx, db); err != nil {
		logrus.WithError(err).Fatal("creating indexes")
	}
	st := store.NewMongo(db)

	// Payment gateway and mail, both injected
	gateway := payment.NewBraintree(cfg.BraintreeEnv, cfg.BraintreeMerchantID, cfg.BraintreePublicKey, cfg.BraintreePrivateKey)
	emailService := utils.NewEmailService(cfg.PostmarkToken, cfg.EmailSender)

	// Initialize controllers
	authController := controllers.NewAuthController(st.Users, st.Orders)
	categoryController := controllers.NewCategoryController(st.Categories)
	productController := controllers.NewProductController(st.Products, st.Categories)
	paymentController := controllers.NewPaymentController(gateway, st.Orders, st.Users, emailService)

	// Set up the router
	router := mux.NewRouter()
	auth := middleware.NewAuth(st.Users)
	routes.RegisterRoutes(router, auth, authController, categoryController, productController, paymentController)

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}).Handler(router)

	logrus.WithField("port", cfg.Port).Info("server is running")
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
