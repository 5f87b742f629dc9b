package storefront

import (
	"time"

	"github.com/onionfightclub-arch/neon-cyber-store/models"
	"github.com/onionfightclub-arch/neon-cyber-store/services/insight"
)

// State is everything one visitor session owns. It is only mutated through
// Service, one writer at a time.
type State struct {
	Cart      models.Cart `json:"cart"`
	View      models.View `json:"view"`
	Greeting  Greeting    `json:"greeting"`
	Insight   Insight     `json:"insight"`
	CreatedAt time.Time   `json:"created_at"`
}

// Greeting is the welcome line shown on the home screen.
type Greeting struct {
	Text    string `json:"text"`
	Loading bool   `json:"loading"`
}

// Insight is the AI blurb for the selected product. Request identifies the
// most recent fetch; results of older fetches are discarded.
type Insight struct {
	ProductID string `json:"product_id,omitempty"`
	Request   uint64 `json:"request"`
	Text      string `json:"text"`
	Loading   bool   `json:"loading"`
}

func newState(now time.Time) *State {
	return &State{
		View: models.NewView(),
		Greeting: Greeting{
			Text:    insight.GreetingPending,
			Loading: true,
		},
		CreatedAt: now,
	}
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	out := *s
	out.Cart = s.Cart.Clone()
	return &out
}
