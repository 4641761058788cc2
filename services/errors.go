package services

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrPostNotFound       = errors.New("blog post not found")
	ErrSessionNotFound    = errors.New("checkout session not found")
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrInsufficientStock  = errors.New("requested quantity exceeds stock")
	ErrInvalidVariant     = errors.New("unknown variant for product")
	ErrInvalidProduct     = errors.New("invalid product data")
	ErrInvalidPost        = errors.New("invalid blog post")
	ErrCheckoutFailed     = errors.New("checkout failed, please try again")
	ErrInvalidWebhook     = errors.New("invalid webhook payload")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicate          = errors.New("already exists")
	ErrInvalidEmail       = errors.New("invalid email address")
)
