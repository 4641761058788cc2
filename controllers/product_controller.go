package controllers

import (
	"net/http"

	"bayka/models"
	"bayka/services"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	catalog *services.CatalogService
	detail  *services.ProductDetailService
}

func NewProductController(catalog *services.CatalogService, detail *services.ProductDetailService) *ProductController {
	return &ProductController{catalog: catalog, detail: detail}
}

// @Summary Get all categories
// @Description Active categories with their product counts
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response
// @Router /categories [get]
func (ctrl *ProductController) GetAllCategories(c *gin.Context) {
	categories, err := ctrl.catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to retrieve categories", err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Categories retrieved",
		Data:    categories,
	})
}

// @Summary Get all products
// @Description Paginated catalog, cached per query
// @Tags Products
// @Produce json
// @Param search query string false "Search by product name"
// @Param category query int false "Category ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Success 200 {object} models.CatalogResponse{data=[]services.ProductCard}
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	result, err := ctrl.catalog.ListProducts(c.Request.Context(), productFilterFromQuery(c))
	if err != nil {
		respondError(c, "Failed to retrieve products", err)
		return
	}

	c.JSON(http.StatusOK, models.CatalogResponse{
		Success: true,
		Message: "Products retrieved",
		Data:    result.Products,
		Filters: result.Filters,
		Search:  result.Search,
		Meta:    result.Meta,
	})
}

// @Summary Get product detail
// @Description Product with images, variants, quantity options and sale/inventory meta
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Param variant query string false "Selected variant"
// @Param quantity query int false "Selected quantity" default(1)
// @Success 200 {object} models.Response{data=services.ProductDetail}
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}

	detail, err := ctrl.detail.GetDetail(c.Request.Context(), id, c.Query("variant"), queryInt(c, "quantity", 1))
	if err != nil {
		respondError(c, "Product not found", err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product retrieved",
		Data:    detail,
	})
}
