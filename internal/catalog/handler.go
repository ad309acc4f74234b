package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/catalog/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/utilities"
)

// Handler exposes HTTP endpoints for the item catalog.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// CreateItemRequest is the body of POST /items. Price may be a number or a
// numeric string.
type CreateItemRequest struct {
	Name        string          `json:"name"`
	Price       json.RawMessage `json:"price"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// UpdateItemRequest is the body of PUT /items/{id}; absent or null fields
// are left unchanged.
type UpdateItemRequest struct {
	Name        *string         `json:"name"`
	Price       json.RawMessage `json:"price"`
	Category    *string         `json:"category"`
	Description *string         `json:"description"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	items, err := h.svc.List(r.Context(), f)
	if err != nil {
		h.writeError(w, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	it, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, it)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := utilities.DecodeStrict(r, &req); err != nil {
		h.logger.Debugw("invalid item payload", "err", err)
		h.writeError(w, err)
		return
	}
	price, err := optionalPrice(req.Price)
	if err != nil {
		h.writeError(w, err)
		return
	}
	it, err := h.svc.Insert(r.Context(), NewItem{
		Name:        req.Name,
		Price:       price,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, it)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequest
	if err := utilities.DecodeStrict(r, &req); err != nil {
		h.logger.Debugw("invalid item payload", "err", err)
		h.writeError(w, err)
		return
	}
	price, err := optionalPrice(req.Price)
	if err != nil {
		h.writeError(w, err)
		return
	}
	it, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), entity.ItemPatch{
		Name:        req.Name,
		Price:       price,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, it)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, okResponse{OK: true})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, utilities.ErrValidation):
		utilities.WriteMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		utilities.WriteMessage(w, http.StatusNotFound, "not found")
	default:
		h.logger.Errorw("catalog request failed", "err", err)
		utilities.WriteMessage(w, http.StatusInternalServerError, "internal error")
	}
}

// optionalPrice returns nil for an absent or null price.
func optionalPrice(raw json.RawMessage) (*float64, error) {
	if s := strings.TrimSpace(string(raw)); s == "" || s == "null" {
		return nil, nil
	}
	v, ok := utilities.ParseNumber(raw)
	if !ok {
		return nil, fmt.Errorf("%w: price must be a number", utilities.ErrValidation)
	}
	return &v, nil
}

func filterFromQuery(r *http.Request) (entity.Filter, error) {
	q := r.URL.Query()
	f := entity.Filter{
		Text:     q.Get("q"),
		Category: q.Get("category"),
		Sort:     entity.ParseSortOrder(q.Get("sort")),
	}
	var err error
	if f.MinPrice, err = queryFloat(q.Get("min"), "min"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = queryFloat(q.Get("max"), "max"); err != nil {
		return f, err
	}
	return f, nil
}

func queryFloat(s, name string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: %s must be a number", utilities.ErrValidation, name)
	}
	return &v, nil
}
