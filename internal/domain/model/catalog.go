// Package model defines the core domain entities for the pizza cart service.
package model

// Dough is a pizza base option.
//
// @Description Dough option from the catalog
type Dough struct {
	ID          int    `bson:"_id" json:"id" example:"1"`
	Name        string `bson:"name" json:"name" example:"Thin"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Image       string `bson:"image,omitempty" json:"image,omitempty"`
	Price       int    `bson:"price" json:"price" example:"300"`
}

// Size is a pizza size option. Its multiplier scales the pizza price.
//
// @Description Size option from the catalog
type Size struct {
	ID         int    `bson:"_id" json:"id" example:"2"`
	Name       string `bson:"name" json:"name" example:"32 cm"`
	Image      string `bson:"image,omitempty" json:"image,omitempty"`
	Multiplier int    `bson:"multiplier" json:"multiplier" example:"2"`
}

// Sauce is a pizza sauce option.
type Sauce struct {
	ID    int    `bson:"_id" json:"id" example:"1"`
	Name  string `bson:"name" json:"name" example:"Tomato"`
	Price int    `bson:"price" json:"price" example:"50"`
}

// Ingredient is a pizza topping.
type Ingredient struct {
	ID    int    `bson:"_id" json:"id" example:"3"`
	Name  string `bson:"name" json:"name" example:"Mozzarella"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
	Price int    `bson:"price" json:"price" example:"35"`
}

// Misc is an extra item sold alongside pizzas (drinks, sauces, sides).
type Misc struct {
	ID    int    `bson:"_id" json:"id" example:"1"`
	Name  string `bson:"name" json:"name" example:"Cola 0.5l"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
	Price int    `bson:"price" json:"price" example:"56"`
}

// Catalog is an immutable snapshot of all reference data.
// Callers must treat a Catalog returned by a provider as read-only.
//
// @Description Reference data used to build and price pizzas
type Catalog struct {
	Doughs      []Dough      `json:"doughs"`
	Sizes       []Size       `json:"sizes"`
	Sauces      []Sauce      `json:"sauces"`
	Ingredients []Ingredient `json:"ingredients"`
	Misc        []Misc       `json:"misc"`
}

// EmptyCatalog returns a catalog with non-nil empty collections.
func EmptyCatalog() *Catalog {
	return &Catalog{
		Doughs:      []Dough{},
		Sizes:       []Size{},
		Sauces:      []Sauce{},
		Ingredients: []Ingredient{},
		Misc:        []Misc{},
	}
}

// Dough returns the dough with the given id, or nil.
func (c *Catalog) Dough(id int) *Dough {
	for i := range c.Doughs {
		if c.Doughs[i].ID == id {
			return &c.Doughs[i]
		}
	}
	return nil
}

// Size returns the size with the given id, or nil.
func (c *Catalog) Size(id int) *Size {
	for i := range c.Sizes {
		if c.Sizes[i].ID == id {
			return &c.Sizes[i]
		}
	}
	return nil
}

// Sauce returns the sauce with the given id, or nil.
func (c *Catalog) Sauce(id int) *Sauce {
	for i := range c.Sauces {
		if c.Sauces[i].ID == id {
			return &c.Sauces[i]
		}
	}
	return nil
}

// Ingredient returns the ingredient with the given id, or nil.
func (c *Catalog) Ingredient(id int) *Ingredient {
	for i := range c.Ingredients {
		if c.Ingredients[i].ID == id {
			return &c.Ingredients[i]
		}
	}
	return nil
}

// IsEmpty reports whether the catalog has no records at all.
func (c *Catalog) IsEmpty() bool {
	return len(c.Doughs) == 0 && len(c.Sizes) == 0 && len(c.Sauces) == 0 &&
		len(c.Ingredients) == 0 && len(c.Misc) == 0
}
