package views

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/onionfightclub-arch/neon-cyber-store/app/api"
	"github.com/onionfightclub-arch/neon-cyber-store/models"
	"github.com/onionfightclub-arch/neon-cyber-store/services/storefront"
)

type ViewService interface {
	Render(ctx context.Context, sessionID string) (storefront.Screen, error)
	Navigate(ctx context.Context, sessionID string, route models.Route) (storefront.Screen, error)
	OpenProduct(ctx context.Context, sessionID, productID string) (storefront.Screen, error)
	SetFilters(ctx context.Context, sessionID string, query, category *string) (storefront.Screen, error)
}

type ViewHandler struct {
	svc ViewService
}

func NewViewHandler(s ViewService) *ViewHandler {
	return &ViewHandler{svc: s}
}

func (h *ViewHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	screen, err := h.svc.Render(r.Context(), api.SessionID(r.Context()))
	h.write(w, r, screen, err)
}

func (h *ViewHandler) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Route string `json:"route"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	route, err := models.ParseRoute(input.Route)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "Unknown route")
		return
	}

	screen, err := h.svc.Navigate(r.Context(), api.SessionID(r.Context()), route)
	h.write(w, r, screen, err)
}

func (h *ViewHandler) HandleOpenProduct(w http.ResponseWriter, r *http.Request) {
	screen, err := h.svc.OpenProduct(r.Context(), api.SessionID(r.Context()), mux.Vars(r)["id"])
	h.write(w, r, screen, err)
}

func (h *ViewHandler) HandleFilters(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Query    *string `json:"query"`
		Category *string `json:"category"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	screen, err := h.svc.SetFilters(r.Context(), api.SessionID(r.Context()), input.Query, input.Category)
	h.write(w, r, screen, err)
}

func (h *ViewHandler) write(w http.ResponseWriter, r *http.Request, screen storefront.Screen, err error) {
	if err != nil {
		switch {
		case errors.Is(err, storefront.ErrProductRequired):
			api.WriteError(w, http.StatusBadRequest, "Product route requires a product")
		case errors.Is(err, models.ErrUnknownRoute):
			api.WriteError(w, http.StatusBadRequest, "Unknown route")
		default:
			api.WriteServiceError(w, r, err, "failed to render view")
		}
		return
	}

	resp, err := NewScreenResponse(screen)
	if err != nil {
		api.WriteServiceError(w, r, err, "failed to render view")
		return
	}
	api.WriteJSON(w, r, http.StatusOK, resp)
}
