package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pulseboard-dev/pulseboard/backend/internal/domain"
	"github.com/pulseboard-dev/pulseboard/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Register creates an operator account. Role and product set are not caller
// controlled: self-registered users always start as operators with no
// products until an admin assigns some.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
		Name     string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Name:         req.Name,
		Role:         domain.RoleOperator,
		Products:     []string{},
	}

	if err := h.repository.CreateUser(user); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "users_email_key":
			h.badRequest(w, r, errors.New("email already registered"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "registered", user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.repository.GetUserByEmail(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.unauthenticated(w, r, "unknown email or wrong password")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.unauthenticated(w, r, "unknown email or wrong password")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// bind the session: the jti lives in redis until logout or expiry
	expiration := time.Now().Add(time.Duration(h.config.Session.Expiration) * time.Second)
	jti := utils.GenerateSessionID(32)

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	sub := strconv.FormatInt(user.ID, 10)
	if err := h.redisClient.Set(ctx, sessionKey(jti), sub, time.Until(expiration)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   sub,
			ID:        jti,
		},
	})
	ss, err := token.SignedString([]byte(h.config.Session.Secret))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	cookie := &http.Cookie{
		Name:     h.config.Session.CookieName,
		Value:    ss,
		Expires:  expiration,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
	}

	if h.config.Environment == "production" {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, cookie)

	h.successResponse(w, r, "logged in", user)
}

// Logout destroys the server-side session and expires the cookie. It succeeds
// even without a valid session so repeated calls are harmless.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.config.Session.CookieName); err == nil {
		claims := &SessionClaims{}
		if _, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(h.config.Session.Secret), nil
		}); err == nil && claims.ID != "" {
			ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
			defer cancel()

			if err := h.redisClient.Del(ctx, sessionKey(claims.ID)).Err(); err != nil {
				h.internalServerError(w, r, err)
				return
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:    h.config.Session.CookieName,
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
		Path:    "/",
	})

	h.successResponse(w, r, "logged out", nil)
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(CurrentUserCtx).(*domain.User)
	h.successResponse(w, r, "current user", user)
}
