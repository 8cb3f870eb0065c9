package services

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrFoodNotFound     = errors.New("food not found")
	ErrToppingNotFound  = errors.New("topping not found")
	ErrImageNotFound    = errors.New("food image not found")
	ErrLinkNotFound     = errors.New("food-topping link not found")

	// ErrValidation marks rejected mutations: negative price, discount
	// outside [0,100], malformed time window, empty name.
	ErrValidation = errors.New("validation error")

	ErrNameConflict = errors.New("name already exists")
	ErrLinkExists   = errors.New("food already has this topping")
	ErrInUse        = errors.New("record is referenced by other records")
)
