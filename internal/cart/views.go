package cart

import (
	"context"
	"fmt"

	"github.com/guttosm/pizza-cart/internal/domain/model"
)

// ExtendPizzas joins pizza selections against the catalog and prices them.
// Missing dough, size or sauce records are left nil. Ingredients keep catalog order.
func ExtendPizzas(catalog *model.Catalog, pricer Pricer, pizzas []model.PizzaSelection) []model.PizzaExtended {
	out := make([]model.PizzaExtended, 0, len(pizzas))
	for _, p := range pizzas {
		selected := make(map[int]struct{}, len(p.Ingredients))
		for _, id := range p.IngredientIDs() {
			selected[id] = struct{}{}
		}

		ingredients := make([]model.Ingredient, 0, len(selected))
		for _, ing := range catalog.Ingredients {
			if _, ok := selected[ing.ID]; ok {
				ingredients = append(ingredients, ing)
			}
		}

		ext := model.PizzaExtended{
			Name:        p.Name,
			Quantity:    p.Quantity,
			Ingredients: ingredients,
		}
		if d := catalog.Dough(p.DoughID); d != nil {
			dough := *d
			ext.Dough = &dough
		}
		if s := catalog.Size(p.SizeID); s != nil {
			size := *s
			ext.Size = &size
		}
		if s := catalog.Sauce(p.SauceID); s != nil {
			sauce := *s
			ext.Sauce = &sauce
		}
		if pricer != nil {
			ext.Price = pricer.Price(catalog, p)
		}
		out = append(out, ext)
	}
	return out
}

// ExtendMisc annotates every catalog misc item with its selected quantity, 0 when unselected.
func ExtendMisc(catalog *model.Catalog, misc []model.MiscSelection) []model.MiscExtended {
	quantities := make(map[int]int, len(misc))
	for _, m := range misc {
		if _, seen := quantities[m.MiscID]; !seen {
			quantities[m.MiscID] = m.Quantity
		}
	}

	out := make([]model.MiscExtended, 0, len(catalog.Misc))
	for _, item := range catalog.Misc {
		out = append(out, model.MiscExtended{
			Misc:     item,
			Quantity: quantities[item.ID],
		})
	}
	return out
}

// Total sums quantity × price over both extended lists.
func Total(pizzas []model.PizzaExtended, misc []model.MiscExtended) int {
	total := 0
	for _, p := range pizzas {
		total += p.Quantity * p.Price
	}
	for _, m := range misc {
		total += m.Quantity * m.Price
	}
	return total
}

func (s *Store) catalog(ctx context.Context) (*model.Catalog, error) {
	if s.deps.Catalog == nil {
		return nil, ErrCatalogNotConfigured
	}
	cat, err := s.deps.Catalog.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if cat == nil {
		return model.EmptyCatalog(), nil
	}
	return cat, nil
}

// PizzasExtended returns the catalog-joined pizza lines.
func (s *Store) PizzasExtended(ctx context.Context) ([]model.PizzaExtended, error) {
	cat, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return ExtendPizzas(cat, s.deps.Pricer, s.State().Pizzas), nil
}

// MiscExtended returns every catalog misc item with its selected quantity.
func (s *Store) MiscExtended(ctx context.Context) ([]model.MiscExtended, error) {
	cat, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return ExtendMisc(cat, s.State().Misc), nil
}

// Total returns the cart total against the current catalog.
func (s *Store) Total(ctx context.Context) (int, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return 0, err
	}
	return summary.Total, nil
}

// Summary derives all views from a single state snapshot and catalog read.
func (s *Store) Summary(ctx context.Context) (model.CartSummary, error) {
	cat, err := s.catalog(ctx)
	if err != nil {
		return model.CartSummary{}, err
	}

	state := s.State()
	pizzas := ExtendPizzas(cat, s.deps.Pricer, state.Pizzas)
	misc := ExtendMisc(cat, state.Misc)
	return model.CartSummary{
		Pizzas: pizzas,
		Misc:   misc,
		Total:  Total(pizzas, misc),
	}, nil
}

// PayloadTotal prices the lines of payload against the current catalog.
func (s *Store) PayloadTotal(ctx context.Context, payload model.OrderPayload) (int, error) {
	cat, err := s.catalog(ctx)
	if err != nil {
		return 0, err
	}
	return Total(ExtendPizzas(cat, s.deps.Pricer, payload.Pizzas), ExtendMisc(cat, payload.Misc)), nil
}
