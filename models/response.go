package models

// Response is the envelope every successful JSON endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type MetaData struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// NewMetaData derives the page count from total. limit must be positive.
func NewMetaData(page, limit, total int) MetaData {
	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}
	return MetaData{Page: page, Limit: limit, TotalItems: total, TotalPages: pages}
}

// CatalogResponse is the product listing envelope: the page of products plus
// the category filters and the search echo the storefront renders above it.
type CatalogResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    interface{}     `json:"data"`
	Filters []CategoryCount `json:"filters"`
	Search  string          `json:"search"`
	Meta    MetaData        `json:"meta"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
	User      User   `json:"user"`
}
