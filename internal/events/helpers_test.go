package events

import "github.com/guttosm/pizza-cart/internal/domain/model"

func sampleEvent() OrderPublished {
	userID := "user-1"
	return NewOrderPublished("session-1", model.OrderPayload{
		UserID:  &userID,
		Phone:   "555",
		Address: model.Address{Street: "Main"},
		Pizzas:  []model.PizzaSelection{{Name: "A", DoughID: 1, SizeID: 1, SauceID: 1, Quantity: 1, Ingredients: []model.IngredientSelection{}}},
		Misc:    []model.MiscSelection{{MiscID: 1, Quantity: 2}},
	}, &model.OrderResult{ID: "o-1"}, 1200)
}
