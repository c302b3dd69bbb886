package service

import "github.com/guttosm/pizza-cart/internal/domain/model"

// CatalogPricer prices a pizza from catalog records:
// (dough + sauce + Σ ingredient × portions) × size multiplier.
//
// Unknown dough, sauce and ingredient ids contribute 0; an unknown size uses a multiplier of 1.
type CatalogPricer struct{}

// NewCatalogPricer creates the default pizza pricer.
func NewCatalogPricer() *CatalogPricer {
	return &CatalogPricer{}
}

// Price returns the unit price of the pizza.
func (CatalogPricer) Price(catalog *model.Catalog, pizza model.PizzaSelection) int {
	if catalog == nil {
		return 0
	}

	base := 0
	if d := catalog.Dough(pizza.DoughID); d != nil {
		base += d.Price
	}
	if s := catalog.Sauce(pizza.SauceID); s != nil {
		base += s.Price
	}
	for _, sel := range pizza.Ingredients {
		if ing := catalog.Ingredient(sel.IngredientID); ing != nil {
			base += ing.Price * sel.Quantity
		}
	}

	multiplier := 1
	if size := catalog.Size(pizza.SizeID); size != nil {
		multiplier = size.Multiplier
	}
	return base * multiplier
}
