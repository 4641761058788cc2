package controllers

import (
	"io"
	"net/http"

	"bayka/libs"
	"bayka/middleware"
	"bayka/models"
	"bayka/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxWebhookBody = 1 << 20

type CheckoutController struct {
	checkout *services.CheckoutService
	cart     *services.CartService
}

func NewCheckoutController(checkout *services.CheckoutService, cart *services.CartService) *CheckoutController {
	return &CheckoutController{checkout: checkout, cart: cart}
}

func optionsFrom(successURL, cancelURL, email string) services.CheckoutOptions {
	return services.CheckoutOptions{SuccessURL: successURL, CancelURL: cancelURL, Email: email}
}

func (ctrl *CheckoutController) respond(c *gin.Context, res *services.CheckoutResult, err error) {
	if err != nil {
		respondError(c, "Checkout failed", err)
		return
	}
	if res == nil {
		c.JSON(http.StatusOK, models.Response{Success: true, Message: "Cart is empty, nothing to check out"})
		return
	}
	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Checkout session created",
		Data:    res,
	})
}

// @Summary Check out the cart
// @Description Creates a payment session for every line in the visitor's cart. The cart itself is left untouched.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body models.CheckoutRequest false "Redirect targets"
// @Success 201 {object} models.Response{data=services.CheckoutResult}
// @Success 200 {object} models.Response
// @Failure 502 {object} models.ErrorResponse
// @Router /checkout [post]
func (ctrl *CheckoutController) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request body", err)
			return
		}
	}

	sessionKey := middleware.GetCartSession(c)
	items, err := ctrl.cart.CheckoutItems(c.Request.Context(), sessionKey)
	if err != nil {
		respondError(c, "Failed to load cart", err)
		return
	}

	res, err := ctrl.checkout.Checkout(c.Request.Context(), sessionKey, items, optionsFrom(req.SuccessURL, req.CancelURL, req.Email))
	ctrl.respond(c, res, err)
}

// @Summary Buy a single product now
// @Description Checks out exactly one product line without touching the cart
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body models.BuyNowRequest true "Product line"
// @Success 201 {object} models.Response{data=services.CheckoutResult}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /checkout/buy-now [post]
func (ctrl *CheckoutController) BuyNow(c *gin.Context) {
	var req models.BuyNowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err)
		return
	}

	res, err := ctrl.checkout.BuyNow(c.Request.Context(), middleware.GetCartSession(c), req.ProductID, req.Variant, req.Quantity,
		optionsFrom(req.SuccessURL, req.CancelURL, req.Email))
	ctrl.respond(c, res, err)
}

// @Summary Checkout loading flag
// @Tags Checkout
// @Produce json
// @Success 200 {object} models.Response
// @Router /checkout/status [get]
func (ctrl *CheckoutController) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Checkout status retrieved",
		Data:    gin.H{"is_loading": ctrl.checkout.IsLoading(middleware.GetCartSession(c))},
	})
}

// @Summary Get checkout session
// @Tags Checkout
// @Produce json
// @Param id path string true "Checkout session ID"
// @Success 200 {object} models.Response{data=models.CheckoutSession}
// @Failure 404 {object} models.ErrorResponse
// @Router /checkout/sessions/{id} [get]
func (ctrl *CheckoutController) GetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "Invalid session ID", err)
		return
	}

	session, err := ctrl.checkout.GetSession(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Checkout session not found", err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Checkout session retrieved",
		Data:    session,
	})
}

// @Summary Payment provider webhook
// @Description Signed notification that a checkout session completed or expired
// @Tags Checkout
// @Accept json
// @Produce json
// @Param X-Bayka-Signature header string true "t=<unix>,v1=<hex hmac>"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /checkout/webhook [post]
func (ctrl *CheckoutController) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		respondBadRequest(c, "Failed to read body", err)
		return
	}

	if err := ctrl.checkout.HandleWebhook(c.Request.Context(), c.GetHeader(libs.SignatureHeader), body); err != nil {
		respondError(c, "Webhook rejected", err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Webhook processed"})
}
