package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/merrbio/marketplace-api/internal/api/metrics"
	"github.com/merrbio/marketplace-api/internal/core/domain"
	"github.com/merrbio/marketplace-api/internal/core/ports"
)

// OrderHandler handles purchase-request routes.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type createOrderRequest struct {
	ProductID    uint   `json:"product_id"`
	BuyerName    string `json:"buyer_name"`
	BuyerContact string `json:"buyer_contact"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// Create handles POST /orders — public, buyers are not required to hold an
// account.
//
// @Summary      Place a purchase request
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      createOrderRequest  true  "Order details"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	order, err := h.service.Create(c.Request().Context(), ports.CreateOrderInput{
		ProductID:    req.ProductID,
		BuyerName:    req.BuyerName,
		BuyerContact: req.BuyerContact,
	})
	if err != nil {
		return respondError(c, err)
	}

	metrics.OrdersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, order)
}

// ListByFarmer handles GET /orders/farmer/:farmer. Farmers only see their
// own orders regardless of the path parameter they ask for.
//
// @Summary      List a farmer's orders, newest first
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        farmer  path      string  true  "Farmer username"
// @Success      200     {array}   domain.Order
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /orders/farmer/{farmer} [get]
func (h *OrderHandler) ListByFarmer(c echo.Context) error {
	requester, err := requesterUsername(c)
	if err != nil {
		return err
	}
	if c.Param("farmer") != requester {
		return respondError(c, domain.ErrForbidden)
	}

	orders, err := h.service.ListForFarmer(c.Request().Context(), requester)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateStatus handles PUT /orders/:id/status — the single allowed
// transition out of pending, restricted to the order's farmer.
//
// @Summary      Confirm or reject an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                       true  "Order id"
// @Param        body  body      updateOrderStatusRequest  true  "New status: confirmed or rejected"
// @Success      200   {object}  domain.Order
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	requester, err := requesterUsername(c)
	if err != nil {
		return err
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	order, err := h.service.Transition(c.Request().Context(), ports.TransitionOrderInput{
		OrderID:   id,
		Requester: requester,
		NewStatus: req.Status,
	})
	if err != nil {
		return respondError(c, err)
	}

	metrics.OrderTransitionsTotal.WithLabelValues(string(order.Status)).Inc()
	return c.JSON(http.StatusOK, order)
}
