package models

import "github.com/shopspring/decimal"

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type VariantRequest struct {
	Name            string          `json:"name" binding:"required"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
}

type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description" binding:"required"`
	CategoryID  int              `json:"category_id" binding:"required,min=1"`
	Price       decimal.Decimal  `json:"price"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	Stock       int              `json:"stock" binding:"min=0"`
	SKU         string           `json:"sku" binding:"required"`
	ImageURL    string           `json:"image_url" binding:"omitempty,url"`
	ImageAlt    string           `json:"image_alt"`
	Variants    []VariantRequest `json:"variants" binding:"omitempty,dive"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	CategoryID  *int             `json:"category_id" binding:"omitempty,min=1"`
	Price       *decimal.Decimal `json:"price"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	ClearSale   bool             `json:"clear_sale"`
	Stock       *int             `json:"stock" binding:"omitempty,min=0"`
	IsActive    *bool            `json:"is_active"`
}

type CreateBlogPostRequest struct {
	Slug         string `json:"slug" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Excerpt      string `json:"excerpt"`
	Body         string `json:"body"`
	Category     string `json:"category"`
	AuthorName   string `json:"author_name"`
	AuthorAvatar string `json:"author_avatar" binding:"omitempty,url"`
	ImageSrc     string `json:"image_src" binding:"omitempty,url"`
	ImageAlt     string `json:"image_alt"`
}

type AddCartItemRequest struct {
	ProductID int64  `json:"product_id" binding:"required,min=1"`
	Variant   string `json:"variant"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CartPanelRequest struct {
	Open *bool `json:"open" binding:"required"`
}

type CheckoutRequest struct {
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
	Email      string `json:"email" binding:"omitempty,email"`
}

type BuyNowRequest struct {
	ProductID  int64  `json:"product_id" binding:"required,min=1"`
	Variant    string `json:"variant"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
	Email      string `json:"email" binding:"omitempty,email"`
}

type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}
