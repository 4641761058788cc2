package controllers

import (
	"net/http"

	"bayka/models"
	"bayka/services"

	"github.com/gin-gonic/gin"
)

type PageController struct {
	pages *services.PageService
}

func NewPageController(pages *services.PageService) *PageController {
	return &PageController{pages: pages}
}

// @Summary Landing page
// @Description Theme, navbar and ordered sections of the home page
// @Tags Pages
// @Produce json
// @Success 200 {object} models.Response{data=services.Page}
// @Router /pages/home [get]
func (ctrl *PageController) GetHome(c *gin.Context) {
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Home page retrieved",
		Data:    ctrl.pages.Home(c.Request.Context()),
	})
}

// @Summary Blog page
// @Tags Pages
// @Produce json
// @Success 200 {object} models.Response{data=services.Page}
// @Router /pages/blog [get]
func (ctrl *PageController) GetBlog(c *gin.Context) {
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Blog page retrieved",
		Data:    ctrl.pages.Blog(c.Request.Context()),
	})
}

// @Summary Shop page
// @Description Product catalog with search, category filter and pagination
// @Tags Pages
// @Produce json
// @Param search query string false "Search by product name"
// @Param category query int false "Category ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Success 200 {object} models.Response{data=services.Page}
// @Router /pages/shop [get]
func (ctrl *PageController) GetShop(c *gin.Context) {
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Shop page retrieved",
		Data:    ctrl.pages.Shop(c.Request.Context(), productFilterFromQuery(c)),
	})
}

// @Summary Product page
// @Tags Pages
// @Produce json
// @Param id path int true "Product ID"
// @Param variant query string false "Selected variant"
// @Param quantity query int false "Selected quantity" default(1)
// @Success 200 {object} models.Response{data=services.Page}
// @Failure 404 {object} models.Response{data=services.Page}
// @Router /pages/shop/{id} [get]
func (ctrl *PageController) GetProduct(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}

	page, found := ctrl.pages.Product(c.Request.Context(), id, c.Query("variant"), queryInt(c, "quantity", 1))
	if !found {
		c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Product not found",
			Data:    page,
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product page retrieved",
		Data:    page,
	})
}

// @Summary Subscribe to the newsletter
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body models.SubscribeRequest true "Email"
// @Success 201 {object} models.Response
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /contact [post]
func (ctrl *PageController) Subscribe(c *gin.Context) {
	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err)
		return
	}

	created, err := ctrl.pages.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, "Failed to subscribe", err)
		return
	}

	if !created {
		c.JSON(http.StatusOK, models.Response{Success: true, Message: "Already subscribed"})
		return
	}
	c.JSON(http.StatusCreated, models.Response{Success: true, Message: "Subscribed successfully"})
}
