package model

import "time"

// OrderPayload is the body submitted to the order backend.
// UserID is nil for anonymous sessions and serializes as null.
//
// @Description Order submitted from the cart
type OrderPayload struct {
	UserID  *string          `json:"userId"`
	Phone   string           `json:"phone"`
	Address Address          `json:"address"`
	Pizzas  []PizzaSelection `json:"pizzas"`
	Misc    []MiscSelection  `json:"misc"`
}

// OrderResult is what the order backend returns for a created order.
//
// @Description Order accepted by the backend
type OrderResult struct {
	ID        string           `json:"id" example:"65b7c0f2a1d3e4f5a6b7c8d9"`
	UserID    *string          `json:"userId"`
	Phone     string           `json:"phone"`
	Address   Address          `json:"address"`
	Pizzas    []PizzaSelection `json:"pizzas,omitempty"`
	Misc      []MiscSelection  `json:"misc,omitempty"`
	Total     int              `json:"total,omitempty" example:"1836"`
	CreatedAt time.Time        `json:"createdAt"`
}

// OrderRef is a nested `{id}` reference used by the persisted order representation.
type OrderRef struct {
	ID int `json:"id"`
}

// OrderIngredient is an ingredient line of a persisted order.
type OrderIngredient struct {
	ID       int `json:"id"`
	Quantity int `json:"quantity"`
}

// OrderPizza is a pizza line of a persisted order.
type OrderPizza struct {
	Name        string            `json:"name"`
	Sauce       OrderRef          `json:"sauce"`
	Dough       OrderRef          `json:"dough"`
	Size        OrderRef          `json:"size"`
	Quantity    int               `json:"quantity"`
	Ingredients []OrderIngredient `json:"ingredients"`
}

// OrderMisc is a misc line of a persisted order.
type OrderMisc struct {
	ID       int `json:"id"`
	Quantity int `json:"quantity"`
}

// Order is a previously persisted order as the backend returns it.
// Both line lists are optional.
//
// @Description Persisted order used to refill a cart
type Order struct {
	ID          string       `json:"id,omitempty"`
	UserID      *string      `json:"userId,omitempty"`
	Phone       string       `json:"phone"`
	Address     *Address     `json:"address,omitempty"`
	OrderPizzas []OrderPizza `json:"orderPizzas,omitempty"`
	OrderMisc   []OrderMisc  `json:"orderMisc,omitempty"`
	CreatedAt   *time.Time   `json:"createdAt,omitempty"`
	// SessionID is the cart session that placed an anonymous order.
	// It is only known for locally stored orders and never serialized.
	SessionID string `json:"-"`
}

// PizzaSelections flattens the order's pizza lines. A missing list yields an empty slice.
func (o Order) PizzaSelections() []PizzaSelection {
	out := make([]PizzaSelection, 0, len(o.OrderPizzas))
	for _, p := range o.OrderPizzas {
		ingredients := make([]IngredientSelection, 0, len(p.Ingredients))
		for _, ing := range p.Ingredients {
			ingredients = append(ingredients, IngredientSelection{
				IngredientID: ing.ID,
				Quantity:     ing.Quantity,
			})
		}
		out = append(out, PizzaSelection{
			Name:        p.Name,
			SauceID:     p.Sauce.ID,
			DoughID:     p.Dough.ID,
			SizeID:      p.Size.ID,
			Quantity:    p.Quantity,
			Ingredients: ingredients,
		})
	}
	return out
}

// MiscSelections flattens the order's misc lines. A missing list yields an empty slice.
func (o Order) MiscSelections() []MiscSelection {
	out := make([]MiscSelection, 0, len(o.OrderMisc))
	for _, m := range o.OrderMisc {
		out = append(out, MiscSelection{MiscID: m.ID, Quantity: m.Quantity})
	}
	return out
}

// OrderFromSelections builds the persisted representation from normalized lines.
func OrderFromSelections(id, phone string, pizzas []PizzaSelection, misc []MiscSelection) Order {
	order := Order{ID: id, Phone: phone}
	for _, p := range pizzas {
		ingredients := make([]OrderIngredient, 0, len(p.Ingredients))
		for _, ing := range p.Ingredients {
			ingredients = append(ingredients, OrderIngredient{ID: ing.IngredientID, Quantity: ing.Quantity})
		}
		order.OrderPizzas = append(order.OrderPizzas, OrderPizza{
			Name:        p.Name,
			Sauce:       OrderRef{ID: p.SauceID},
			Dough:       OrderRef{ID: p.DoughID},
			Size:        OrderRef{ID: p.SizeID},
			Quantity:    p.Quantity,
			Ingredients: ingredients,
		})
	}
	for _, m := range misc {
		order.OrderMisc = append(order.OrderMisc, OrderMisc{ID: m.MiscID, Quantity: m.Quantity})
	}
	return order
}
