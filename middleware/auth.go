package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-storefront/models"
	"go-storefront/store"
	"go-storefront/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Key type for context
type contextKey string

const UserContextKey = contextKey("user")

// Auth holds the dependencies of the request gates.
type Auth struct {
	Users store.UserStore
}

// NewAuth creates the auth middleware with its user lookup.
func NewAuth(users store.UserStore) *Auth {
	return &Auth{Users: users}
}

// RequireSignIn verifies the bearer token and attaches the decoded claims to
// the request context. Every failure answers an explicit 401; the request is
// never left hanging.
func (a *Auth) RequireSignIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.Fail(w, http.StatusUnauthorized, "Authorization header missing")
			return
		}

		// Clients may send the token bare or with the Bearer prefix.
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ParseJWT(tokenStr)
		if err != nil {
			utils.Fail(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IsAdmin loads the authenticated user and requires the admin role.
func (a *Auth) IsAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r)
		if !ok {
			utils.Fail(w, http.StatusUnauthorized, "UnAuthorized Access")
			return
		}

		user, err := a.Users.FindByID(r.Context(), userID)
		if err == store.ErrNotFound {
			utils.Fail(w, http.StatusUnauthorized, "UnAuthorized Access")
			return
		}
		if err != nil {
			utils.Internal(w, err, "Error in admin middleware")
			return
		}
		if user.Role != models.RoleAdmin {
			utils.Fail(w, http.StatusUnauthorized, "UnAuthorized Access")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserID extracts the authenticated user's id from the request context.
func UserID(r *http.Request) (primitive.ObjectID, bool) {
	claims, ok := r.Context().Value(UserContextKey).(*utils.Claims)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
