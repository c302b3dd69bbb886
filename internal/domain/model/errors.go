package model

import "errors"

// ErrOrderNotFound is returned when an order id is unknown to the order backend.
var ErrOrderNotFound = errors.New("order not found")
