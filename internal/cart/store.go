// Package cart holds the per-session cart store: the mutable order selection,
// its catalog-joined views and order submission.
package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/guttosm/pizza-cart/internal/domain/model"
)

var (
	// ErrPizzaNotFound is returned by SavePizza when the index does not address an existing pizza.
	ErrPizzaNotFound = errors.New("pizza index out of range")
	// ErrOrderClientNotConfigured is returned by PublishOrder when no submitter was provided.
	ErrOrderClientNotConfigured = errors.New("order client not configured")
	// ErrCatalogNotConfigured is returned by the derived views when no catalog was provided.
	ErrCatalogNotConfigured = errors.New("catalog provider not configured")
)

// CatalogProvider exposes the current reference data.
type CatalogProvider interface {
	Catalog(ctx context.Context) (*model.Catalog, error)
}

// Pricer computes the unit price of a pizza selection.
type Pricer interface {
	Price(catalog *model.Catalog, pizza model.PizzaSelection) int
}

// IdentityProvider reports the authenticated user of the current request, if any.
type IdentityProvider interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

// OrderSubmitter sends a finished order to the order backend.
type OrderSubmitter interface {
	CreateOrder(ctx context.Context, payload model.OrderPayload) (*model.OrderResult, error)
}

// Dependencies are the collaborators a Store is built with.
// Identity may be nil, in which case every order is anonymous.
type Dependencies struct {
	Catalog  CatalogProvider
	Pricer   Pricer
	Identity IdentityProvider
	Orders   OrderSubmitter
}

// PizzaInput carries the fields of a pizza being saved.
// A nil Index appends a new pizza; otherwise the pizza at Index is replaced.
type PizzaInput struct {
	Index       *int
	Name        string
	DoughID     int
	SizeID      int
	SauceID     int
	Ingredients []model.IngredientSelection
}

// Store owns the cart of one session.
// All mutators are serialized; PublishOrder performs its network call outside the lock.
type Store struct {
	mu      sync.Mutex
	state   model.Cart
	version uint64
	deps    Dependencies
}

// NewStore creates an empty cart store.
func NewStore(deps Dependencies) *Store {
	return &Store{
		state: model.NewCart(),
		deps:  deps,
	}
}

// State returns a deep copy of the normalized cart.
func (s *Store) State() model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// SavePizza replaces the pizza at in.Index keeping its quantity, or appends
// a new pizza with quantity 1 when in.Index is nil.
func (s *Store) SavePizza(in PizzaInput) error {
	ingredients := make([]model.IngredientSelection, len(in.Ingredients))
	copy(ingredients, in.Ingredients)

	s.mu.Lock()
	defer s.mu.Unlock()

	pizza := model.PizzaSelection{
		Name:        in.Name,
		DoughID:     in.DoughID,
		SizeID:      in.SizeID,
		SauceID:     in.SauceID,
		Quantity:    1,
		Ingredients: ingredients,
	}

	if in.Index == nil {
		s.state.Pizzas = append(s.state.Pizzas, pizza)
		s.version++
		return nil
	}

	idx := *in.Index
	if idx < 0 || idx >= len(s.state.Pizzas) {
		return ErrPizzaNotFound
	}
	pizza.Quantity = s.state.Pizzas[idx].Quantity
	s.state.Pizzas[idx] = pizza
	s.version++
	return nil
}

// SetPizzaQuantity sets the quantity of an existing pizza. Unknown indexes are ignored.
func (s *Store) SetPizzaQuantity(index, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.state.Pizzas) {
		return
	}
	s.state.Pizzas[index].Quantity = count
	s.version++
}

// SetMiscQuantity adds, updates or removes a misc selection.
//
// A missing item is added with quantity 1 whatever positive count is given,
// which is the behavior existing clients rely on. A count of 0 removes an
// existing item.
func (s *Store) SetMiscQuantity(miscID, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, m := range s.state.Misc {
		if m.MiscID == miscID {
			idx = i
			break
		}
	}

	if idx == -1 {
		if count > 0 {
			s.state.Misc = append(s.state.Misc, model.MiscSelection{MiscID: miscID, Quantity: 1})
			s.version++
		}
		return
	}

	if count == 0 {
		s.state.Misc = append(s.state.Misc[:idx], s.state.Misc[idx+1:]...)
		s.version++
		return
	}

	s.state.Misc[idx].Quantity = count
	s.version++
}

// SetPhone replaces the contact phone.
func (s *Store) SetPhone(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Phone = phone
	s.version++
}

// SetAddress replaces all four address fields.
func (s *Store) SetAddress(address model.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Address = model.Address{
		Street:   address.Street,
		Building: address.Building,
		Flat:     address.Flat,
		Comment:  address.Comment,
	}
	s.version++
}

// SetStreet replaces the street.
func (s *Store) SetStreet(street string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Address.Street = street
	s.version++
}

// SetBuilding replaces the building.
func (s *Store) SetBuilding(building string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Address.Building = building
	s.version++
}

// SetFlat replaces the flat.
func (s *Store) SetFlat(flat string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Address.Flat = flat
	s.version++
}

// SetComment stores the comment in the street field, matching what deployed
// frontends expect. Use SetAddress to write the comment field itself.
func (s *Store) SetComment(comment string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Address.Street = comment
	s.version++
}

// Reset restores the default empty cart.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = model.NewCart()
	s.version++
}

// Load replaces the cart with the lines of a persisted order.
// The address is left untouched.
func (s *Store) Load(order model.Order) {
	pizzas := order.PizzaSelections()
	misc := order.MiscSelections()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Phone = order.Phone
	s.state.Pizzas = pizzas
	s.state.Misc = misc
	s.version++
}

// Submission describes one order sent by Submit.
type Submission struct {
	// Payload is exactly what the order backend received.
	Payload model.OrderPayload
	Result  *model.OrderResult
	// Version is the cart revision the payload was taken from.
	Version uint64
}

// Payload assembles the order submission from the current state.
func (s *Store) Payload(ctx context.Context) model.OrderPayload {
	payload, _ := s.payload(ctx)
	return payload
}

func (s *Store) payload(ctx context.Context) (model.OrderPayload, uint64) {
	var userID *string
	if s.deps.Identity != nil {
		if id, ok := s.deps.Identity.CurrentUserID(ctx); ok {
			userID = &id
		}
	}

	s.mu.Lock()
	snapshot := s.state.Clone()
	version := s.version
	s.mu.Unlock()

	return model.OrderPayload{
		UserID:  userID,
		Phone:   snapshot.Phone,
		Address: snapshot.Address,
		Pizzas:  snapshot.Pizzas,
		Misc:    snapshot.Misc,
	}, version
}

// PublishOrder submits the current cart and returns the submitter's result
// or error unchanged. The cart is not cleared; callers reset it on success.
func (s *Store) PublishOrder(ctx context.Context) (*model.OrderResult, error) {
	sub, err := s.Submit(ctx)
	if err != nil {
		return nil, err
	}
	return sub.Result, nil
}

// Submit takes one snapshot of the cart, sends it and returns the snapshot
// together with the backend result. The cart itself is left as is.
func (s *Store) Submit(ctx context.Context) (*Submission, error) {
	if s.deps.Orders == nil {
		return nil, ErrOrderClientNotConfigured
	}
	payload, version := s.payload(ctx)
	result, err := s.deps.Orders.CreateOrder(ctx, payload)
	if err != nil {
		return nil, err
	}
	return &Submission{Payload: payload, Result: result, Version: version}, nil
}

// ResetIfUnchanged clears the cart only when it is still at version.
// It reports whether the cart was cleared.
func (s *Store) ResetIfUnchanged(version uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version != version {
		return false
	}
	s.state = model.NewCart()
	s.version++
	return true
}
