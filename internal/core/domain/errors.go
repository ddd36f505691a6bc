package domain

import "errors"

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSubCategoryNotFound = errors.New("subcategory not found")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrNotOwner            = errors.New("caller is not the product owner")
	ErrDuplicateCode       = errors.New("duplicate product code")
	ErrDuplicateCategory   = errors.New("duplicate category name")
)
