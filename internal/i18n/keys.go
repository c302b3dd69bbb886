// Package i18n provides internationalization support for the pizza cart service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates an idempotency key reused with a different request.
	ErrKeyConflict = "error.conflict"
	// ErrKeyInvalidToken indicates an invalid or expired JWT token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a JWT token is required.
	ErrKeyTokenRequired = "error.token_required"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"

	// ErrKeyPizzaNotFound indicates a pizza position outside the cart.
	ErrKeyPizzaNotFound = "error.pizza_not_found"
	// ErrKeyInvalidIndex indicates a malformed pizza position.
	ErrKeyInvalidIndex = "error.validation.index"
	// ErrKeyInvalidMiscID indicates a malformed misc id.
	ErrKeyInvalidMiscID = "error.validation.misc_id"
	// ErrKeyInvalidIngredientQuantity indicates a non-positive ingredient quantity.
	ErrKeyInvalidIngredientQuantity = "error.validation.ingredient_quantity"
	// ErrKeyOrderNotFound indicates an unknown order id.
	ErrKeyOrderNotFound = "error.order_not_found"
	// ErrKeyOrderRejected indicates the order backend refused or failed the order.
	ErrKeyOrderRejected = "error.order_rejected"
	// ErrKeyOrdersUnavailable indicates the order backend circuit is open or not configured.
	ErrKeyOrdersUnavailable = "error.orders_unavailable"
	// ErrKeyCatalogUnavailable indicates the catalog could not be loaded.
	ErrKeyCatalogUnavailable = "error.catalog_unavailable"
	// ErrKeyLoginRequired indicates an operation that needs a signed-in user.
	ErrKeyLoginRequired = "error.login_required"
)
