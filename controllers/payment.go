package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/payment"
	"go-storefront/store"
	"go-storefront/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentController handles gateway token generation and sale transactions.
// The gateway client is injected, never a package-level singleton.
type PaymentController struct {
	Gateway payment.Gateway
	Orders  store.OrderStore
	Users   store.UserStore
	Email   *utils.EmailService
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(gateway payment.Gateway, orders store.OrderStore, users store.UserStore, email *utils.EmailService) *PaymentController {
	return &PaymentController{Gateway: gateway, Orders: orders, Users: users, Email: email}
}

// CartLine is one client-supplied cart entry.
type CartLine struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Price float64            `json:"price"`
}

// Token requests a client token from the gateway and forwards it.
func (pc *PaymentController) Token(w http.ResponseWriter, r *http.Request) {
	token, err := pc.Gateway.ClientToken(r.Context())
	if err != nil {
		utils.Internal(w, err, "Error generating payment token")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"clientToken": token,
	})
}

// Pay sums the cart, submits a sale with auto-settlement, and persists the
// order. The order insert is awaited: a persist failure after a successful
// charge is surfaced as its own error kind so it can be reconciled.
func (pc *PaymentController) Pay(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := middleware.UserID(r)
	if !ok {
		utils.Fail(w, http.StatusUnauthorized, "UnAuthorized Access")
		return
	}

	var req struct {
		Nonce string     `json:"nonce"`
		Cart  []CartLine `json:"cart"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Nonce == "" {
		utils.Fail(w, http.StatusBadRequest, "Payment nonce is required")
		return
	}
	if len(req.Cart) == 0 {
		utils.Fail(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	total := 0.0
	productIDs := make([]primitive.ObjectID, 0, len(req.Cart))
	for _, line := range req.Cart {
		total += line.Price
		productIDs = append(productIDs, line.ID)
	}

	result, err := pc.Gateway.Sale(r.Context(), total, req.Nonce)
	if err != nil {
		utils.Internal(w, err, "Payment failed")
		return
	}

	order := models.Order{
		Products: productIDs,
		Payment: models.PaymentResult{
			TransactionID: result.TransactionID,
			Status:        result.Status,
			Amount:        result.Amount,
			Success:       result.Success,
		},
		Buyer: buyerID,
	}
	if err := pc.Orders.Insert(r.Context(), &order); err != nil {
		// Charged but unrecorded: distinct from an ordinary internal error,
		// the transaction id is handed back for reconciliation.
		correlationID := uuid.NewString()
		logrus.WithError(err).WithFields(logrus.Fields{
			"correlation_id": correlationID,
			"transaction_id": result.TransactionID,
			"buyer":          buyerID.Hex(),
		}).Error("payment captured but order not recorded")
		utils.WriteEnvelope(w, http.StatusInternalServerError, false,
			"Payment captured but order not recorded", map[string]interface{}{
				"correlation_id": correlationID,
				"transaction_id": result.TransactionID,
			})
		return
	}

	pc.sendConfirmation(buyerID, result)

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// sendConfirmation mails the buyer in the background, best-effort.
func (pc *PaymentController) sendConfirmation(buyerID primitive.ObjectID, result *payment.Result) {
	if pc.Email == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		buyer, err := pc.Users.FindByID(ctx, buyerID)
		if err != nil {
			logrus.WithError(err).Warn("order confirmation: buyer lookup failed")
			return
		}
		if err := pc.Email.SendOrderConfirmation(buyer.Email, buyer.Name, result.TransactionID, result.Amount); err != nil {
			logrus.WithError(err).WithField("email", buyer.Email).Warn("order confirmation mail failed")
		}
	}()
}
