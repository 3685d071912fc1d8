package controllers

import (
	"encoding/json"
	"net/http"

	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/store"
	"go-storefront/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthController handles registration, login, password reset, profile and
// order tracking.
type AuthController struct {
	Users  store.UserStore
	Orders store.OrderStore
}

// NewAuthController creates a new AuthController
func NewAuthController(users store.UserStore, orders store.OrderStore) *AuthController {
	return &AuthController{Users: users, Orders: orders}
}

// Register handles user registration
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
		Answer   string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	switch {
	case req.Name == "":
		utils.Fail(w, http.StatusBadRequest, "Name is required")
		return
	case req.Email == "":
		utils.Fail(w, http.StatusBadRequest, "Email is required")
		return
	case req.Password == "":
		utils.Fail(w, http.StatusBadRequest, "Password is required")
		return
	case req.Phone == "":
		utils.Fail(w, http.StatusBadRequest, "Phone is required")
		return
	case req.Address == "":
		utils.Fail(w, http.StatusBadRequest, "Address is required")
		return
	case req.Answer == "":
		utils.Fail(w, http.StatusBadRequest, "Answer is required")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Internal(w, err, "Error in registration")
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Phone:    req.Phone,
		Address:  req.Address,
		Answer:   req.Answer,
		Role:     models.RoleUser,
	}

	// Uniqueness comes from the email index, not a pre-check.
	err = ac.Users.Insert(r.Context(), &user)
	if err == store.ErrDuplicate {
		utils.Fail(w, http.StatusBadRequest, "Already registered please login")
		return
	}
	if err != nil {
		utils.Internal(w, err, "Error in registration")
		return
	}

	utils.WriteEnvelope(w, http.StatusCreated, true, "User registered successfully", map[string]interface{}{
		"user": user.Summary(),
	})
}

// Login handles user authentication
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if creds.Email == "" || creds.Password == "" {
		utils.Fail(w, http.StatusBadRequest, "Invalid credentials please try again")
		return
	}

	user, err := ac.Users.FindByEmail(r.Context(), creds.Email)
	if err == store.ErrNotFound {
		utils.Fail(w, http.StatusBadRequest, "Email is not registered")
		return
	}
	if err != nil {
		utils.Internal(w, err, "Error in login")
		return
	}

	if !utils.ComparePassword(creds.Password, user.Password) {
		utils.Fail(w, http.StatusBadRequest, "Invalid credentials please try again")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex())
	if err != nil {
		utils.Internal(w, err, "Error in login")
		return
	}

	utils.WriteEnvelope(w, http.StatusOK, true, "User login successfully", map[string]interface{}{
		"user":  user.Summary(),
		"token": token,
	})
}

// ForgotPassword resets the password when the email and security answer match.
func (ac *AuthController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		Answer      string `json:"answer"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	switch {
	case req.Email == "":
		utils.Fail(w, http.StatusBadRequest, "Email is required")
		return
	case req.Answer == "":
		utils.Fail(w, http.StatusBadRequest, "Answer is required")
		return
	case req.NewPassword == "":
		utils.Fail(w, http.StatusBadRequest, "New password is required")
		return
	}

	user, err := ac.Users.FindByEmailAndAnswer(r.Context(), req.Email, req.Answer)
	if err == store.ErrNotFound {
		utils.Fail(w, http.StatusBadRequest, "Wrong email or answer")
		return
	}
	if err != nil {
		utils.Internal(w, err, "Error resetting password")
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		utils.Internal(w, err, "Error resetting password")
		return
	}
	if err := ac.Users.SetPassword(r.Context(), user.ID, hashed); err != nil {
		utils.Internal(w, err, "Error resetting password")
		return
	}

	utils.WriteEnvelope(w, http.StatusOK, true, "Password reset successfully", nil)
}

// Test is a trivial admin-protected probe.
func (ac *AuthController) Test(w http.ResponseWriter, r *http.Request) {
	utils.WriteEnvelope(w, http.StatusOK, true, "Protected route", nil)
}

// UpdateProfile partially updates the authenticated user's profile.
func (ac *AuthController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Fail(w, http.StatusUnauthorized, "UnAuthorized Access")
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Password *string `json:"password"`
		Phone    *string `json:"phone"`
		Address  *string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	upd := store.ProfileUpdate{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			utils.Fail(w, http.StatusBadRequest, "Password is required and must be 6 characters long")
			return
		}
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			utils.Internal(w, err, "Error updating profile")
			return
		}
		upd.Password = &hashed
	}

	user, err := ac.Users.UpdateProfile(r.Context(), userID, upd)
	if err == store.ErrNotFound {
		utils.Fail(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		utils.Internal(w, err, "Error updating profile")
		return
	}

	utils.WriteEnvelope(w, http.StatusOK, true, "Profile updated successfully", map[string]interface{}{
		"updatedUser": user.Summary(),
	})
}

// GetOrders lists the authenticated buyer's orders.
func (ac *AuthController) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Fail(w, http.StatusUnauthorized, "UnAuthorized Access")
		return
	}

	orders, err := ac.Orders.ByBuyer(r.Context(), userID)
	if err != nil {
		utils.Internal(w, err, "Error while getting orders")
		return
	}
	utils.WriteEnvelope(w, http.StatusOK, true, "", map[string]interface{}{
		"orders": orders,
	})
}

// GetAllOrders lists every order, newest first (admin).
func (ac *AuthController) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := ac.Orders.All(r.Context())
	if err != nil {
		utils.Internal(w, err, "Error while getting orders")
		return
	}
	utils.WriteEnvelope(w, http.StatusOK, true, "", map[string]interface{}{
		"orders": orders,
	})
}

// OrderStatus updates an order's status (admin). The status must be a member
// of the enumeration.
func (ac *AuthController) OrderStatus(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	orderID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if !models.ValidStatus(req.Status) {
		utils.Fail(w, http.StatusBadRequest, "Invalid order status")
		return
	}

	order, err := ac.Orders.UpdateStatus(r.Context(), orderID, req.Status)
	if err == store.ErrNotFound {
		utils.Fail(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		utils.Internal(w, err, "Error while updating order")
		return
	}

	utils.WriteEnvelope(w, http.StatusOK, true, "Order status updated", map[string]interface{}{
		"order": order,
	})
}
