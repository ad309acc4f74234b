package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/cart/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/session"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/utilities"
)

// Handler exposes the authenticated cart endpoints.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// AddRequest is the body of POST /cart/add. Qty may be a number or a
// numeric string; anything unusable counts as 1.
type AddRequest struct {
	ItemID string          `json:"itemId"`
	Qty    json.RawMessage `json:"qty"`
}

type RemoveRequest struct {
	ItemID string `json:"itemId"`
}

type ReplaceRequest struct {
	Items entity.Lines `json:"items"`
}

// MutationResponse is returned by every cart write.
type MutationResponse struct {
	OK   bool         `json:"ok"`
	Cart *entity.Cart `json:"cart"`
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := session.UserID(r.Context())
	if err != nil {
		utilities.WriteMessage(w, http.StatusUnauthorized, session.ErrMissingAuthorization.Error())
		return
	}
	c, err := h.svc.Expanded(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	userID, err := session.UserID(r.Context())
	if err != nil {
		utilities.WriteMessage(w, http.StatusUnauthorized, session.ErrMissingAuthorization.Error())
		return
	}
	var req AddRequest
	if err := utilities.DecodeStrict(r, &req); err != nil {
		h.logger.Debugw("invalid cart payload", "err", err)
		h.writeError(w, err)
		return
	}
	c, err := h.svc.Add(r.Context(), userID, req.ItemID, qtyFromRaw(req.Qty))
	if err != nil {
		h.writeError(w, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, MutationResponse{OK: true, Cart: c})
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, err := session.UserID(r.Context())
	if err != nil {
		utilities.WriteMessage(w, http.StatusUnauthorized, session.ErrMissingAuthorization.Error())
		return
	}
	var req RemoveRequest
	if err := utilities.DecodeStrict(r, &req); err != nil {
		h.logger.Debugw("invalid cart payload", "err", err)
		h.writeError(w, err)
		return
	}
	c, err := h.svc.Remove(r.Context(), userID, req.ItemID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, MutationResponse{OK: true, Cart: c})
}

func (h *Handler) Replace(w http.ResponseWriter, r *http.Request) {
	userID, err := session.UserID(r.Context())
	if err != nil {
		utilities.WriteMessage(w, http.StatusUnauthorized, session.ErrMissingAuthorization.Error())
		return
	}
	var req ReplaceRequest
	if err := utilities.DecodeStrict(r, &req); err != nil {
		h.logger.Debugw("invalid cart payload", "err", err)
		h.writeError(w, err)
		return
	}
	if err := validateLines(req.Items); err != nil {
		h.writeError(w, err)
		return
	}
	c, err := h.svc.ReplaceAll(r.Context(), userID, req.Items)
	if err != nil {
		h.writeError(w, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, MutationResponse{OK: true, Cart: c})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, utilities.ErrValidation) {
		utilities.WriteMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.Errorw("cart request failed", "err", err)
	utilities.WriteMessage(w, http.StatusInternalServerError, "internal error")
}

func qtyFromRaw(raw json.RawMessage) int {
	v, ok := utilities.ParseNumber(raw)
	if !ok {
		return 1
	}
	return entity.QtyFromFloat(v)
}

// validateLines is the caller-side check the store itself does not perform.
func validateLines(lines entity.Lines) error {
	for i, l := range lines {
		if l.ItemID == "" {
			return fmt.Errorf("%w: items[%d].itemId required", utilities.ErrValidation, i)
		}
		if l.Qty < 1 {
			return fmt.Errorf("%w: items[%d].qty must be a positive integer", utilities.ErrValidation, i)
		}
	}
	return nil
}
