package model

// PizzaExtended is a pizza selection joined against the catalog and priced.
// Dough, Size and Sauce are nil when the catalog has no record for the id.
//
// @Description Catalog-joined pizza line with its unit price
type PizzaExtended struct {
	Name        string       `json:"name" example:"Margherita"`
	Quantity    int          `json:"quantity" example:"2"`
	Dough       *Dough       `json:"dough"`
	Size        *Size        `json:"size"`
	Sauce       *Sauce       `json:"sauce"`
	Ingredients []Ingredient `json:"ingredients"`
	Price       int          `json:"price" example:"890"`
}

// MiscExtended is a catalog misc item annotated with the selected quantity.
//
// @Description Catalog misc item with the quantity selected in the cart
type MiscExtended struct {
	Misc
	Quantity int `json:"quantity" example:"0"`
}

// CartSummary bundles the derived views of a cart.
//
// @Description Derived, priced view of the cart
type CartSummary struct {
	Pizzas []PizzaExtended `json:"pizzasExtended"`
	Misc   []MiscExtended  `json:"miscExtended"`
	Total  int             `json:"total" example:"1836"`
}
