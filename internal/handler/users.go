package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pulseboard-dev/pulseboard/backend/internal/domain"
	"github.com/pulseboard-dev/pulseboard/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.repository.GetAllUsers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "users", users)
}

// CreateUser is the admin-side account creation: unlike Register it accepts
// any role and an initial product assignment.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string   `json:"email" validate:"required,email"`
		Password string   `json:"password" validate:"required,min=6"`
		Name     string   `json:"name" validate:"required"`
		Role     string   `json:"role" validate:"required,oneof=admin operator"`
		Products []string `json:"products"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateProducts(req.Products); err != nil {
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
		Role:         domain.Role(req.Role),
		Products:     req.Products,
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

	h.successResponse(w, r, "user created", user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     *string   `json:"name"`
		Email    *string   `json:"email" validate:"omitempty,email"`
		Role     *string   `json:"role" validate:"omitempty,oneof=admin operator"`
		Password *string   `json:"password" validate:"omitempty,min=6"`
		Products *[]string `json:"products"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user := r.Context().Value(UserInfoCtx).(*domain.User)

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = domain.Role(*req.Role)
	}
	if req.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		user.PasswordHash = string(hashedPassword)
	}
	if req.Products != nil {
		if err := utils.ValidateProducts(*req.Products); err != nil {
			h.badRequest(w, r, err)
			return
		}
		user.Products = *req.Products
	}

	if err := h.repository.UpdateUser(user); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "users_email_key":
			h.badRequest(w, r, errors.New("email already registered"))
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusConflict, "user was modified concurrently, retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "user updated", user)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	// admins never delete themselves, even the last remaining one
	sub, err := strconv.ParseInt(r.Context().Value(SubCtxKey).(string), 10, 64)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if user.ID == sub {
		h.forbidden(w, r, "you cannot delete your own account")
		return
	}

	existed, err := h.repository.DeleteUser(user.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !existed {
		h.notFound(w, r, "user not found")
		return
	}

	h.successResponse(w, r, "user deleted", nil)
}
