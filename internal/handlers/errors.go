package handlers

import "errors"

var (
	errEmptyName     = errors.New("name must not be empty")
	errNegativePrice = errors.New("price must not be negative")
	errRatingRange   = errors.New("rating must be between 0 and 5")
	errNegativeStock = errors.New("stock must not be negative")
)
