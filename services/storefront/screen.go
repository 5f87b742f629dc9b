package storefront

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/onionfightclub-arch/neon-cyber-store/models"
	"github.com/onionfightclub-arch/neon-cyber-store/services/insight"
)

// Restricted screen copy.
const (
	RestrictedCode    = 403
	RestrictedTitle   = "Access Restricted"
	RestrictedMessage = "Sector offline. Level 5 Clearance required for this node."
)

// Screen is the render model for the current route. Exactly one of the
// route-specific fields is set.
type Screen struct {
	Route      models.Route
	CartCount  int
	Home       *HomeScreen
	Product    *ProductScreen
	Cart       *CartScreen
	Restricted *RestrictedScreen
}

type HomeScreen struct {
	Greeting        string
	GreetingLoading bool
	Categories      []models.Category
	Products        []models.Product
	Query           string
	Category        string
}

type ProductScreen struct {
	Product        models.Product
	Insight        string
	InsightLoading bool
}

type CartScreen struct {
	Items     []models.CartItem
	ItemCount int
	Subtotal  decimal.Decimal
}

type RestrictedScreen struct {
	Code    int
	Title   string
	Message string
}

func (s *Service) render(state *State) (Screen, error) {
	screen := Screen{
		Route:     state.View.Route,
		CartCount: state.Cart.ItemCount(),
	}

	switch state.View.Route {
	case models.RouteHome:
		products, err := s.catalog.GetAllProducts()
		if err != nil {
			return Screen{}, fmt.Errorf("load products: %w", err)
		}
		categories, err := s.catalog.GetAllCategories()
		if err != nil {
			return Screen{}, fmt.Errorf("load categories: %w", err)
		}
		screen.Home = &HomeScreen{
			Greeting:        state.Greeting.Text,
			GreetingLoading: state.Greeting.Loading,
			Categories:      categories,
			Products:        models.Filter(products, state.View.Query, state.View.Category),
			Query:           state.View.Query,
			Category:        state.View.Category,
		}
	case models.RouteProduct:
		product, err := s.catalog.GetByID(state.View.SelectedProductID)
		if err != nil {
			return Screen{}, fmt.Errorf("load selected product: %w", err)
		}
		text := state.Insight.Text
		if state.Insight.Loading {
			text = insight.InsightLoading
		}
		screen.Product = &ProductScreen{
			Product:        *product,
			Insight:        text,
			InsightLoading: state.Insight.Loading,
		}
	case models.RouteCart:
		cart := state.Cart.Clone()
		screen.Cart = &CartScreen{
			Items:     cart.Items,
			ItemCount: cart.ItemCount(),
			Subtotal:  cart.Subtotal(),
		}
	case models.RouteRestricted:
		screen.Restricted = &RestrictedScreen{
			Code:    RestrictedCode,
			Title:   RestrictedTitle,
			Message: RestrictedMessage,
		}
	default:
		return Screen{}, fmt.Errorf("%w: %d", models.ErrUnknownRoute, int(state.View.Route))
	}
	return screen, nil
}
