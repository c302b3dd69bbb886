package model

// Address is the delivery address of an order.
type Address struct {
	Street   string `bson:"street" json:"street" example:"Lenina"`
	Building string `bson:"building" json:"building" example:"12"`
	Flat     string `bson:"flat" json:"flat" example:"4"`
	Comment  string `bson:"comment" json:"comment" example:"Ring twice"`
}

// IngredientSelection references a catalog ingredient and its portion count.
type IngredientSelection struct {
	IngredientID int `bson:"ingredient_id" json:"ingredientId" example:"3"`
	Quantity     int `bson:"quantity" json:"quantity" example:"2"`
}

// PizzaSelection is a normalized pizza line of the cart.
// Its identity inside a cart is its index in Cart.Pizzas.
type PizzaSelection struct {
	Name        string                `bson:"name" json:"name" example:"Margherita"`
	DoughID     int                   `bson:"dough_id" json:"doughId" example:"1"`
	SizeID      int                   `bson:"size_id" json:"sizeId" example:"2"`
	SauceID     int                   `bson:"sauce_id" json:"sauceId" example:"1"`
	Quantity    int                   `bson:"quantity" json:"quantity" example:"1"`
	Ingredients []IngredientSelection `bson:"ingredients" json:"ingredients"`
}

// MiscSelection is a normalized misc line of the cart.
type MiscSelection struct {
	MiscID   int `bson:"misc_id" json:"miscId" example:"1"`
	Quantity int `bson:"quantity" json:"quantity" example:"1"`
}

// Cart is the in-progress order owned by one session.
//
// @Description Normalized cart state
type Cart struct {
	Phone   string           `json:"phone" example:"+7 999 999-99-99"`
	Address Address          `json:"address"`
	Pizzas  []PizzaSelection `json:"pizzas"`
	Misc    []MiscSelection  `json:"misc"`
}

// NewCart returns a cart in its default empty shape.
func NewCart() Cart {
	return Cart{
		Address: Address{},
		Pizzas:  []PizzaSelection{},
		Misc:    []MiscSelection{},
	}
}

// Clone returns a deep copy of the cart.
func (c Cart) Clone() Cart {
	out := Cart{
		Phone:   c.Phone,
		Address: c.Address,
		Pizzas:  make([]PizzaSelection, len(c.Pizzas)),
		Misc:    make([]MiscSelection, len(c.Misc)),
	}
	for i, p := range c.Pizzas {
		out.Pizzas[i] = p.Clone()
	}
	copy(out.Misc, c.Misc)
	return out
}

// Clone returns a deep copy of the pizza selection.
func (p PizzaSelection) Clone() PizzaSelection {
	out := p
	out.Ingredients = make([]IngredientSelection, len(p.Ingredients))
	copy(out.Ingredients, p.Ingredients)
	return out
}

// IngredientIDs returns the ids of the selected ingredients in selection order.
func (p PizzaSelection) IngredientIDs() []int {
	ids := make([]int, len(p.Ingredients))
	for i, ing := range p.Ingredients {
		ids[i] = ing.IngredientID
	}
	return ids
}
