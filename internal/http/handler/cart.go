package handler

import (
	"github.com/gofiber/fiber/v2"

	"stallhub/internal/http/middleware"
	"stallhub/internal/service"
)

// GetCart godoc
// @Summary Current cart with live prices
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.CartView
// @Router /api/cart [get]
func GetCart(svc service.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view, err := svc.Get(c.UserContext(), middleware.GetPrincipal(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(view)
	}
}

// AddCartItem godoc
// @Summary Add a product to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CartItemInput true "item"
// @Success 200 {object} model.CartView
// @Failure 409 {object} middleware.ErrorPayload
// @Router /api/cart/items [post]
func AddCartItem(svc service.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CartItemInput
		if err := bindJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		view, err := svc.AddItem(c.UserContext(), middleware.GetPrincipal(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(view)
	}
}

// UpdateCartItem godoc
// @Summary Change the quantity or notes of a cart line
// @Description A quantity of zero removes the line.
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productId path string true "product id"
// @Param body body service.CartLineUpdate true "changes"
// @Success 200 {object} model.CartView
// @Router /api/cart/items/{productId} [put]
func UpdateCartItem(svc service.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID, err := idParam(c, "productId")
		if err != nil {
			return respondError(c, err)
		}
		var in service.CartLineUpdate
		if err := bindJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		view, err := svc.UpdateItem(c.UserContext(), middleware.GetPrincipal(c), productID, in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(view)
	}
}

// RemoveCartItem godoc
// @Summary Remove a cart line
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param productId path string true "product id"
// @Success 200 {object} model.CartView
// @Router /api/cart/items/{productId} [delete]
func RemoveCartItem(svc service.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID, err := idParam(c, "productId")
		if err != nil {
			return respondError(c, err)
		}
		view, err := svc.RemoveItem(c.UserContext(), middleware.GetPrincipal(c), productID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(view)
	}
}

// ClearCart godoc
// @Summary Empty the cart
// @Tags cart
// @Security BearerAuth
// @Success 204
// @Router /api/cart [delete]
func ClearCart(svc service.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Clear(c.UserContext(), middleware.GetPrincipal(c)); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
