package handler

import (
	"github.com/gofiber/fiber/v2"

	"stallhub/internal/http/middleware"
	"stallhub/internal/model"
	"stallhub/internal/service"
)

type checkoutRequest struct {
	Notes string `json:"notes"`
}

type placeOrderRequest struct {
	Items []service.PlaceItem `json:"items"`
	Notes string              `json:"notes"`
}

type statusRequest struct {
	Status model.OrderStatus `json:"status"`
	Reason string            `json:"reason"`
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

type orderList struct {
	Data []model.Order `json:"data"`
}

type eventList struct {
	Data []model.OrderEvent `json:"data"`
}

func orderQuery(c *fiber.Ctx) (service.OrderQuery, error) {
	limit, offset, err := pageParams(c)
	if err != nil {
		return service.OrderQuery{}, err
	}
	return service.OrderQuery{
		Status:  model.OrderStatus(c.Query("status")),
		StallID: c.Query("stall_id"),
		Limit:   limit,
		Offset:  offset,
	}, nil
}

// Checkout godoc
// @Summary Turn the cart into orders, one per stall
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} orderList
// @Failure 400 {object} middleware.ErrorPayload
// @Failure 409 {object} middleware.ErrorPayload
// @Router /api/orders/checkout [post]
func Checkout(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in checkoutRequest
		if len(c.Body()) > 0 {
			if err := bindJSON(c, &in); err != nil {
				return respondError(c, err)
			}
		}
		orders, err := svc.Checkout(c.UserContext(), middleware.GetPrincipal(c), in.Notes)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(orderList{Data: orders})
	}
}

// PlaceOrder godoc
// @Summary Order an explicit list of items
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} orderList
// @Router /api/orders [post]
func PlaceOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in placeOrderRequest
		if err := bindJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		orders, err := svc.Place(c.UserContext(), middleware.GetPrincipal(c), in.Items, in.Notes)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(orderList{Data: orders})
	}
}

// ListMyOrders godoc
// @Summary Orders of the caller
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "status filter"
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {object} service.Page[model.Order]
// @Router /api/orders [get]
func ListMyOrders(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := orderQuery(c)
		if err != nil {
			return respondError(c, err)
		}
		res, err := svc.ListMine(c.UserContext(), middleware.GetPrincipal(c), q)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// ListBusinessOrders godoc
// @Summary Order queue of a business
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "business id"
// @Param status query string false "status filter"
// @Param stall_id query string false "stall filter"
// @Success 200 {object} service.Page[model.Order]
// @Router /api/businesses/{id}/orders [get]
func ListBusinessOrders(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		q, err := orderQuery(c)
		if err != nil {
			return respondError(c, err)
		}
		res, err := svc.ListForBusiness(c.UserContext(), middleware.GetPrincipal(c), id, q)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// GetOrder godoc
// @Summary Order by id
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "order id"
// @Success 200 {object} model.Order
// @Failure 404 {object} middleware.ErrorPayload
// @Router /api/orders/{id} [get]
func GetOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		o, err := svc.Get(c.UserContext(), middleware.GetPrincipal(c), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(o)
	}
}

// OrderEvents godoc
// @Summary Status history of an order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "order id"
// @Success 200 {object} eventList
// @Router /api/orders/{id}/events [get]
func OrderEvents(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		events, err := svc.Events(c.UserContext(), middleware.GetPrincipal(c), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(eventList{Data: events})
	}
}

// UpdateOrderStatus godoc
// @Summary Move an order along its lifecycle
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "order id"
// @Success 200 {object} model.Order
// @Failure 409 {object} middleware.ErrorPayload
// @Router /api/orders/{id}/status [patch]
func UpdateOrderStatus(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var in statusRequest
		if err := bindJSON(c, &in); err != nil {
			return respondError(c, err)
		}
		o, err := svc.UpdateStatus(c.UserContext(), middleware.GetPrincipal(c), id, in.Status, in.Reason)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(o)
	}
}

// CancelOrder godoc
// @Summary Cancel an order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "order id"
// @Success 200 {object} model.Order
// @Router /api/orders/{id}/cancel [post]
func CancelOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var in cancelRequest
		if len(c.Body()) > 0 {
			if err := bindJSON(c, &in); err != nil {
				return respondError(c, err)
			}
		}
		o, err := svc.Cancel(c.UserContext(), middleware.GetPrincipal(c), id, in.Reason)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(o)
	}
}
