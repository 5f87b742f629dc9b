// Package storefront owns per-visitor state: the cart, the view, the AI
// greeting and insight, and the chat widget.
package storefront

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/onionfightclub-arch/neon-cyber-store/models"
	"github.com/onionfightclub-arch/neon-cyber-store/services/insight"
)

// ErrProductRequired is returned when navigating to the product route
// without choosing a product.
var ErrProductRequired = errors.New("product route requires a product")

// Catalog is the read-only product source.
type Catalog interface {
	GetAllProducts() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetAllCategories() ([]models.Category, error)
}

type Service struct {
	catalog Catalog
	ai      *insight.Client
	store   SessionStore
	log     logrus.FieldLogger
	now     func() time.Time
	chatTTL time.Duration

	locks *keyedMutex
	wg    sync.WaitGroup

	chatMu sync.Mutex
	chats  map[string]*chatEntry
}

type chatEntry struct {
	session  *insight.ChatSession
	lastUsed time.Time
}

// NewService wires the state container. chatTTL bounds how long an idle chat
// widget is kept; zero keeps chats for the process lifetime.
func NewService(catalog Catalog, ai *insight.Client, store SessionStore, log logrus.FieldLogger, chatTTL time.Duration) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		catalog: catalog,
		ai:      ai,
		store:   store,
		log:     log.WithField("component", "storefront"),
		now:     time.Now,
		chatTTL: chatTTL,
		locks:   newKeyedMutex(),
		chats:   make(map[string]*chatEntry),
	}
}

// NewSession creates a session and starts its greeting fetch.
func (s *Service) NewSession(ctx context.Context) (string, error) {
	id := uuid.NewString()
	if err := s.store.Put(ctx, id, newState(s.now())); err != nil {
		return "", err
	}
	s.log.WithField("session", id).Debug("session created")

	s.background(ctx, func(ctx context.Context) {
		s.fetchGreeting(ctx, id)
	})
	return id, nil
}

// EnsureSession returns id if it names a live session, otherwise a new one.
func (s *Service) EnsureSession(ctx context.Context, id string) (string, error) {
	if id != "" {
		_, err := s.store.Get(ctx, id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, ErrSessionNotFound) {
			return "", err
		}
	}
	return s.NewSession(ctx)
}

// Wait blocks until all background fetches have finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) background(ctx context.Context, fn func(ctx context.Context)) {
	ctx = context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(ctx)
	}()
}

// update applies fn to the session under its lock and saves the result.
func (s *Service) update(ctx context.Context, id string, fn func(*State) error) (*State, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	if u, ok := s.store.(AtomicUpdater); ok {
		return u.Update(ctx, id, fn)
	}

	state, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(state); err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, id, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *Service) snapshot(ctx context.Context, id string) (*State, error) {
	unlock := s.locks.Lock(id)
	defer unlock()
	return s.store.Get(ctx, id)
}

func (s *Service) fetchGreeting(ctx context.Context, id string) {
	text := s.ai.Greeting(ctx)
	_, err := s.update(ctx, id, func(state *State) error {
		state.Greeting = Greeting{Text: text}
		return nil
	})
	if err != nil {
		s.log.WithError(err).WithField("session", id).Warn("greeting not applied")
	}
}

// --- Cart ---

func (s *Service) Cart(ctx context.Context, id string) (models.Cart, error) {
	state, err := s.snapshot(ctx, id)
	if err != nil {
		return models.Cart{}, err
	}
	return state.Cart, nil
}

// AddToCart adds one unit of productID. Unknown products are
// models.ErrProductNotFound.
func (s *Service) AddToCart(ctx context.Context, id, productID string) (models.Cart, error) {
	product, err := s.catalog.GetByID(productID)
	if err != nil {
		return models.Cart{}, err
	}
	state, err := s.update(ctx, id, func(state *State) error {
		state.Cart.Add(*product)
		return nil
	})
	if err != nil {
		return models.Cart{}, err
	}
	return state.Cart, nil
}

func (s *Service) AdjustCartQuantity(ctx context.Context, id, productID string, delta int) (models.Cart, error) {
	state, err := s.update(ctx, id, func(state *State) error {
		state.Cart.AdjustQuantity(productID, delta)
		return nil
	})
	if err != nil {
		return models.Cart{}, err
	}
	return state.Cart, nil
}

func (s *Service) RemoveFromCart(ctx context.Context, id, productID string) (models.Cart, error) {
	state, err := s.update(ctx, id, func(state *State) error {
		state.Cart.Remove(productID)
		return nil
	})
	if err != nil {
		return models.Cart{}, err
	}
	return state.Cart, nil
}

// --- View ---

// Render returns the screen for the session's current route.
func (s *Service) Render(ctx context.Context, id string) (Screen, error) {
	state, err := s.snapshot(ctx, id)
	if err != nil {
		return Screen{}, err
	}
	return s.render(state)
}

// Navigate switches to route. The product route is entered through
// OpenProduct only.
func (s *Service) Navigate(ctx context.Context, id string, route models.Route) (Screen, error) {
	if !route.Valid() {
		return Screen{}, models.ErrUnknownRoute
	}
	if route == models.RouteProduct {
		return Screen{}, ErrProductRequired
	}
	state, err := s.update(ctx, id, func(state *State) error {
		state.View.Route = route
		state.View.SelectedProductID = ""
		return nil
	})
	if err != nil {
		return Screen{}, err
	}
	return s.render(state)
}

// OpenProduct selects productID, shows the product screen right away and
// fetches its insight in the background.
func (s *Service) OpenProduct(ctx context.Context, id, productID string) (Screen, error) {
	product, err := s.catalog.GetByID(productID)
	if err != nil {
		return Screen{}, err
	}

	var request uint64
	state, err := s.update(ctx, id, func(state *State) error {
		state.View.Route = models.RouteProduct
		state.View.SelectedProductID = product.ID
		request = state.Insight.Request + 1
		state.Insight = Insight{
			ProductID: product.ID,
			Request:   request,
			Loading:   true,
		}
		return nil
	})
	if err != nil {
		return Screen{}, err
	}

	name, description := product.Name, product.Description
	s.background(ctx, func(ctx context.Context) {
		text := s.ai.ProductInsight(ctx, name, description)
		s.applyInsight(ctx, id, product.ID, request, text)
	})
	return s.render(state)
}

// applyInsight stores text only if it answers the latest request for the
// product that is still selected.
func (s *Service) applyInsight(ctx context.Context, id, productID string, request uint64, text string) {
	log := s.log.WithField("session", id).WithField("product", productID)
	_, err := s.update(ctx, id, func(state *State) error {
		if state.Insight.Request != request || state.View.SelectedProductID != productID {
			log.WithField("request", request).Debug("discarding stale insight")
			return nil
		}
		state.Insight.Text = text
		state.Insight.Loading = false
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("insight not applied")
	}
}

// SetFilters updates the search query and category selector. Nil leaves a
// value unchanged.
func (s *Service) SetFilters(ctx context.Context, id string, query, category *string) (Screen, error) {
	state, err := s.update(ctx, id, func(state *State) error {
		if query != nil {
			state.View.Query = *query
		}
		if category != nil {
			state.View.Category = models.NormalizeCategory(*category)
		}
		return nil
	})
	if err != nil {
		return Screen{}, err
	}
	return s.render(state)
}

// --- Chat ---

// ChatView is the chat widget state.
type ChatView struct {
	Messages []insight.Message
	Pending  bool
}

func (s *Service) chat(id string) *insight.ChatSession {
	s.chatMu.Lock()
	defer s.chatMu.Unlock()

	now := s.now()
	if entry, ok := s.chats[id]; ok {
		entry.lastUsed = now
		return entry.session
	}
	s.pruneChatsLocked(now)
	session := s.ai.NewChat()
	s.chats[id] = &chatEntry{session: session, lastUsed: now}
	return session
}

// PruneChats drops chat widgets idle for longer than the chat TTL and
// returns how many were removed. Widgets with a reply in flight are kept.
func (s *Service) PruneChats() int {
	s.chatMu.Lock()
	defer s.chatMu.Unlock()
	return s.pruneChatsLocked(s.now())
}

func (s *Service) pruneChatsLocked(now time.Time) int {
	if s.chatTTL <= 0 {
		return 0
	}
	n := 0
	for key, entry := range s.chats {
		if now.Sub(entry.lastUsed) > s.chatTTL && !entry.session.Pending() {
			delete(s.chats, key)
			n++
		}
	}
	return n
}

func (s *Service) Chat(ctx context.Context, id string) (ChatView, error) {
	if _, err := s.snapshot(ctx, id); err != nil {
		return ChatView{}, err
	}
	chat := s.chat(id)
	return ChatView{Messages: chat.Transcript(), Pending: chat.Pending()}, nil
}

// SendChat sends message from the session's chat widget and returns the
// updated transcript. It fails only with insight.ErrChatBusy or a session
// error.
func (s *Service) SendChat(ctx context.Context, id, message string) (ChatView, error) {
	if _, err := s.snapshot(ctx, id); err != nil {
		return ChatView{}, err
	}
	messages, err := s.chat(id).Send(ctx, message)
	if err != nil {
		return ChatView{}, err
	}
	return ChatView{Messages: messages}, nil
}
