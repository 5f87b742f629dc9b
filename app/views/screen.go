package views

import (
	"fmt"

	"github.com/onionfightclub-arch/neon-cyber-store/app/api"
	"github.com/onionfightclub-arch/neon-cyber-store/models"
	"github.com/onionfightclub-arch/neon-cyber-store/services/storefront"
)

type ScreenResponse struct {
	Route      string              `json:"route"`
	CartCount  int                 `json:"cart_count"`
	Home       *HomeResponse       `json:"home,omitempty"`
	Product    *ProductResponse    `json:"product,omitempty"`
	Cart       *api.Cart           `json:"cart,omitempty"`
	Restricted *RestrictedResponse `json:"restricted,omitempty"`
}

type HomeResponse struct {
	Greeting        string         `json:"greeting"`
	GreetingLoading bool           `json:"greeting_loading"`
	Query           string         `json:"query"`
	Category        string         `json:"category"`
	Categories      []api.Category `json:"categories"`
	Products        []api.Product  `json:"products"`
}

type ProductResponse struct {
	Product        api.Product `json:"product"`
	Insight        string      `json:"insight"`
	InsightLoading bool        `json:"insight_loading"`
}

type RestrictedResponse struct {
	Code    int    `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// NewScreenResponse maps a screen to its JSON shape. The route decides which
// section is filled in.
func NewScreenResponse(s storefront.Screen) (ScreenResponse, error) {
	resp := ScreenResponse{
		Route:     s.Route.String(),
		CartCount: s.CartCount,
	}

	switch s.Route {
	case models.RouteHome:
		if s.Home == nil {
			return ScreenResponse{}, fmt.Errorf("home screen missing")
		}
		resp.Home = &HomeResponse{
			Greeting:        s.Home.Greeting,
			GreetingLoading: s.Home.GreetingLoading,
			Query:           s.Home.Query,
			Category:        s.Home.Category,
			Categories:      api.NewCategories(s.Home.Categories),
			Products:        api.NewProducts(s.Home.Products),
		}
	case models.RouteProduct:
		if s.Product == nil {
			return ScreenResponse{}, fmt.Errorf("product screen missing")
		}
		resp.Product = &ProductResponse{
			Product:        api.NewProduct(s.Product.Product),
			Insight:        s.Product.Insight,
			InsightLoading: s.Product.InsightLoading,
		}
	case models.RouteCart:
		if s.Cart == nil {
			return ScreenResponse{}, fmt.Errorf("cart screen missing")
		}
		cart := api.NewCart(models.Cart{Items: s.Cart.Items})
		resp.Cart = &cart
	case models.RouteRestricted:
		if s.Restricted == nil {
			return ScreenResponse{}, fmt.Errorf("restricted screen missing")
		}
		resp.Restricted = &RestrictedResponse{
			Code:    s.Restricted.Code,
			Title:   s.Restricted.Title,
			Message: s.Restricted.Message,
		}
	default:
		return ScreenResponse{}, fmt.Errorf("%w: %d", models.ErrUnknownRoute, int(s.Route))
	}
	return resp, nil
}
