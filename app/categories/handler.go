package categories

import (
	"net/http"

	"github.com/onionfightclub-arch/neon-cyber-store/app/api"
	"github.com/onionfightclub-arch/neon-cyber-store/models"
)

type CategoryProvider interface {
	GetAllCategories() ([]models.Category, error)
}

type CategoryHandler struct {
	repo CategoryProvider
}

func NewCategoryHandler(r CategoryProvider) *CategoryHandler {
	return &CategoryHandler{repo: r}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories()
	if err != nil {
		api.Logger(r.Context()).WithError(err).Error("category query failed")
		api.WriteError(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	api.WriteJSON(w, r, http.StatusOK, api.NewCategories(categories))
}
