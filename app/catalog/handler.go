package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/onionfightclub-arch/neon-cyber-store/app/api"
	"github.com/onionfightclub-arch/neon-cyber-store/models"
)

type Response struct {
	Total    int           `json:"total"`
	Query    string        `json:"query"`
	Category string        `json:"category"`
	Products []api.Product `json:"products"`
}

type ProductProvider interface {
	GetAllProducts() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
}

type CatalogHandler struct {
	repo ProductProvider
}

func NewCatalogHandler(r ProductProvider) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// Parse pagination query params
	offset := 0
	limit := 10

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > 100 {
				limit = 100
			} else {
				limit = l
			}
		}
	}

	// Parse filters
	query := r.URL.Query().Get("q")
	category := models.NormalizeCategory(r.URL.Query().Get("category"))

	all, err := h.repo.GetAllProducts()
	if err != nil {
		api.Logger(r.Context()).WithError(err).Error("catalog query failed")
		api.WriteError(w, http.StatusInternalServerError, "failed to get products")
		return
	}
	visible := models.Filter(all, query, category)

	start := min(offset, len(visible))
	end := min(start+limit, len(visible))

	api.WriteJSON(w, r, http.StatusOK, Response{
		Total:    len(visible),
		Query:    query,
		Category: category,
		Products: api.NewProducts(visible[start:end]),
	})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			api.WriteError(w, http.StatusNotFound, "Product not found")
			return
		}
		api.Logger(r.Context()).WithError(err).Error("product lookup failed")
		api.WriteError(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	api.WriteJSON(w, r, http.StatusOK, api.NewProduct(*product))
}
