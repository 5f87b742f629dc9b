package cart

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/onionfightclub-arch/neon-cyber-store/app/api"
	"github.com/onionfightclub-arch/neon-cyber-store/models"
)

type CartService interface {
	Cart(ctx context.Context, sessionID string) (models.Cart, error)
	AddToCart(ctx context.Context, sessionID, productID string) (models.Cart, error)
	AdjustCartQuantity(ctx context.Context, sessionID, productID string, delta int) (models.Cart, error)
	RemoveFromCart(ctx context.Context, sessionID, productID string) (models.Cart, error)
}

type CartHandler struct {
	svc CartService
}

func NewCartHandler(s CartService) *CartHandler {
	return &CartHandler{svc: s}
}

func (h *CartHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	cart, err := h.svc.Cart(r.Context(), api.SessionID(r.Context()))
	if err != nil {
		api.WriteServiceError(w, r, err, "failed to get cart")
		return
	}
	api.WriteJSON(w, r, http.StatusOK, api.NewCart(cart))
}

func (h *CartHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ProductID string `json:"product_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if input.ProductID == "" {
		api.WriteError(w, http.StatusBadRequest, "Missing product_id")
		return
	}

	cart, err := h.svc.AddToCart(r.Context(), api.SessionID(r.Context()), input.ProductID)
	if err != nil {
		api.WriteServiceError(w, r, err, "Failed to add to cart")
		return
	}
	api.WriteJSON(w, r, http.StatusOK, api.NewCart(cart))
}

func (h *CartHandler) HandleAdjust(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Delta *int `json:"delta"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if input.Delta == nil {
		api.WriteError(w, http.StatusBadRequest, "Missing delta")
		return
	}

	cart, err := h.svc.AdjustCartQuantity(r.Context(), api.SessionID(r.Context()), mux.Vars(r)["id"], *input.Delta)
	if err != nil {
		api.WriteServiceError(w, r, err, "Failed to update cart")
		return
	}
	api.WriteJSON(w, r, http.StatusOK, api.NewCart(cart))
}

func (h *CartHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	cart, err := h.svc.RemoveFromCart(r.Context(), api.SessionID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		api.WriteServiceError(w, r, err, "Failed to update cart")
		return
	}
	api.WriteJSON(w, r, http.StatusOK, api.NewCart(cart))
}
