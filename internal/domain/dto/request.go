// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import "github.com/guttosm/pizza-cart/internal/domain/model"

// SavePizzaRequest represents the JSON body for saving a pizza into the cart.
//
// Index is optional: when omitted or null the pizza is appended, otherwise the
// pizza at that position is replaced and keeps its quantity.
//
// @Description Pizza to append to the cart or to replace at a position
// @Example {"name": "Margherita", "doughId": 1, "sizeId": 2, "sauceId": 1, "ingredients": [{"ingredientId": 3, "quantity": 1}]}
type SavePizzaRequest struct {
	Index       *int                        `json:"index" example:"0"`
	Name        string                      `json:"name" example:"Margherita"`
	DoughID     int                         `json:"doughId" example:"1"`
	SizeID      int                         `json:"sizeId" example:"2"`
	SauceID     int                         `json:"sauceId" example:"1"`
	Ingredients []model.IngredientSelection `json:"ingredients"`
} // @name SavePizzaRequest

// QuantityRequest carries a new quantity for a pizza or misc line.
//
// @Description New quantity for a cart line
type QuantityRequest struct {
	Count *int `json:"count" binding:"required" example:"2"`
} // @name QuantityRequest

// PhoneRequest carries the contact phone.
type PhoneRequest struct {
	Phone *string `json:"phone" binding:"required" example:"+7 999 999-99-99"`
} // @name PhoneRequest

// FieldRequest carries a single free-text address field.
type FieldRequest struct {
	Value *string `json:"value" binding:"required" example:"Lenina"`
} // @name FieldRequest

// AddressRequest carries all four address fields. Unknown fields are ignored.
type AddressRequest struct {
	Street   string `json:"street" example:"Lenina"`
	Building string `json:"building" example:"12"`
	Flat     string `json:"flat" example:"4"`
	Comment  string `json:"comment" example:"Ring twice"`
} // @name AddressRequest

// ToModel converts the request into a domain address.
func (r AddressRequest) ToModel() model.Address {
	return model.Address{
		Street:   r.Street,
		Building: r.Building,
		Flat:     r.Flat,
		Comment:  r.Comment,
	}
}

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

var (
	// ErrInvalidIndex is returned when a pizza index is negative.
	ErrInvalidIndex = &ValidationError{
		Field:   "index",
		Message: "must be a non-negative integer",
	}
	// ErrInvalidIngredientQuantity is returned when an ingredient portion is not positive.
	ErrInvalidIngredientQuantity = &ValidationError{
		Field:   "ingredients",
		Message: "quantity must be a positive integer",
	}
)

// Validate performs structural validation on the request.
func (r *SavePizzaRequest) Validate() error {
	if r.Index != nil && *r.Index < 0 {
		return ErrInvalidIndex
	}
	for _, ing := range r.Ingredients {
		if ing.Quantity <= 0 {
			return ErrInvalidIngredientQuantity
		}
	}
	return nil
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
