package controllers

import (
	"net/http"

	"bayka/middleware"
	"bayka/models"
	"bayka/services"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

func (ctrl *CartController) respond(c *gin.Context, status int, message string, view services.CartView, err error) {
	if err != nil {
		respondError(c, "Failed to update cart", err)
		return
	}
	c.JSON(status, models.Response{
		Success: true,
		Message: message,
		Data:    view,
	})
}

// @Summary Get cart
// @Description Items, total, unit count and panel state of the visitor's cart
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response{data=services.CartView}
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	view, err := ctrl.cart.Get(c.Request.Context(), middleware.GetCartSession(c))
	if err != nil {
		respondError(c, "Failed to retrieve cart", err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Cart retrieved", Data: view})
}

// @Summary Add item to cart
// @Description Adds a product line; an existing line with the same product and variant is incremented
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.AddCartItemRequest true "Item"
// @Success 200 {object} models.Response{data=services.CartView}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err)
		return
	}

	view, err := ctrl.cart.AddItem(c.Request.Context(), middleware.GetCartSession(c), req.ProductID, req.Variant, req.Quantity)
	ctrl.respond(c, http.StatusOK, "Item added to cart", view, err)
}

// @Summary Update cart line quantity
// @Description Zero or less removes the line; unknown lines are ignored
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path string true "Line ID"
// @Param request body models.UpdateCartItemRequest true "Quantity"
// @Success 200 {object} models.Response{data=services.CartView}
// @Failure 409 {object} models.ErrorResponse "Quantity exceeds stock"
// @Router /cart/items/{id} [patch]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err)
		return
	}

	view, err := ctrl.cart.UpdateQuantity(c.Request.Context(), middleware.GetCartSession(c), c.Param("id"), req.Quantity)
	ctrl.respond(c, http.StatusOK, "Cart updated", view, err)
}

// @Summary Remove cart line
// @Tags Cart
// @Produce json
// @Param id path string true "Line ID"
// @Success 200 {object} models.Response{data=services.CartView}
// @Router /cart/items/{id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	view, err := ctrl.cart.RemoveItem(c.Request.Context(), middleware.GetCartSession(c), c.Param("id"))
	ctrl.respond(c, http.StatusOK, "Item removed from cart", view, err)
}

// @Summary Clear cart
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response{data=services.CartView}
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	view, err := ctrl.cart.Clear(c.Request.Context(), middleware.GetCartSession(c))
	ctrl.respond(c, http.StatusOK, "Cart cleared", view, err)
}

// @Summary Open or close the cart panel
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.CartPanelRequest true "Panel state"
// @Success 200 {object} models.Response{data=services.CartView}
// @Router /cart/panel [patch]
func (ctrl *CartController) SetPanel(c *gin.Context) {
	var req models.CartPanelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err)
		return
	}

	view, err := ctrl.cart.SetOpen(c.Request.Context(), middleware.GetCartSession(c), *req.Open)
	ctrl.respond(c, http.StatusOK, "Cart panel updated", view, err)
}
