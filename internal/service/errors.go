package service

import "errors"

var (
	ErrValidation = errors.New("validation failed")

	ErrDuplicateName     = errors.New("name already taken")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryInUse     = errors.New("category has items")
	ErrItemNotFound      = errors.New("item not found")
	ErrNoItemsInCategory = errors.New("no items in category")

	ErrDuplicateEmail = errors.New("email already taken")
	ErrEmailNotFound  = errors.New("email not found")
	ErrWrongPassword  = errors.New("wrong password")
	ErrUserNotFound   = errors.New("user not found")

	ErrEmptyOrder    = errors.New("order has no items")
	ErrOrderNotFound = errors.New("order not found")

	ErrAlreadyFavourite = errors.New("item already in favourites")
	ErrNotFavourite     = errors.New("item not in favourites")
)
