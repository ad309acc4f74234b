package account

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/account/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/utilities"
)

// TokenIssuer issues a bearer token for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

// Handler exposes HTTP endpoints for user operations (signup / login).
type Handler struct {
	svc    *Service
	tokens TokenIssuer
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, tokens TokenIssuer, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, tokens: tokens, logger: logger}
}

// SignupRequest request body for signup endpoint.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both signup and login.
type AuthResponse struct {
	Token string            `json:"token"`
	User  entity.PublicView `json:"user"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := utilities.DecodeStrict(r, &req); err != nil {
		h.logger.Debugw("invalid signup payload", "err", err)
		utilities.WriteMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.svc.Create(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, utilities.ErrValidation):
			utilities.WriteMessage(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrEmailTaken):
			utilities.WriteMessage(w, http.StatusBadRequest, ErrEmailTaken.Error())
		default:
			h.logger.Errorw("signup failed", "err", err)
			utilities.WriteMessage(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	h.respondWithToken(w, u)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utilities.DecodeStrict(r, &req); err != nil {
		h.logger.Debugw("invalid login payload", "err", err)
		utilities.WriteMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.svc.VerifyCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			h.logger.Debugw("login failed", "err", err)
			utilities.WriteMessage(w, http.StatusBadRequest, ErrBadCredentials.Error())
			return
		}
		h.logger.Errorw("login failed", "err", err)
		utilities.WriteMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.respondWithToken(w, u)
}

func (h *Handler) respondWithToken(w http.ResponseWriter, u *entity.User) {
	token, err := h.tokens.Issue(u.ID, u.Email)
	if err != nil {
		h.logger.Errorw("issue token failed", "err", err)
		utilities.WriteMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	utilities.WriteJSON(w, http.StatusOK, AuthResponse{Token: token, User: u.Public()})
}
