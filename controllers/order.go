package controllers

import (
	"net/http"

	"carcare-backend/services"
	"carcare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// AddServicesInput wraps the line items appended to an existing order.
type AddServicesInput struct {
	Services []services.ServiceItemInput `json:"services" binding:"required"`
}

// CreateForCustomer handles POST /api/clients/:id/orders. The order is
// created first; an invoice failure is reported alongside the order
// rather than undoing it.
func (oc *OrderController) CreateForCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input services.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, invoice, err := oc.orders.CreateForCustomer(c.Request.Context(), customerID, input)
	if err != nil {
		appErr := utils.AsAppError(err)
		if order != nil {
			message := appErr.Message
			if appErr.Kind == utils.KindInternal {
				message = "Internal server error"
			}
			c.JSON(appErr.HTTPStatus(), gin.H{
				"error":   message,
				"order":   order,
				"invoice": invoice,
			})
			return
		}
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order, "invoice": invoice})
}

// AddServices handles POST /api/orders/:id/services.
func (oc *OrderController) AddServices(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input AddServicesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, added, err := oc.orders.AddServices(c.Request.Context(), orderID, input.Services)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order, "added": added})
}

// Get handles GET /api/orders/:id.
func (oc *OrderController) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	order, err := oc.orders.Get(c.Request.Context(), orderID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// List handles GET /api/orders with an optional clientId filter.
func (oc *OrderController) List(c *gin.Context) {
	var customerID *uuid.UUID
	if raw := c.Query("clientId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
			return
		}
		customerID = &id
	}

	orders, err := oc.orders.List(c.Request.Context(), customerID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// Delete handles DELETE /api/orders/:id as a soft delete.
func (oc *OrderController) Delete(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	if err := oc.orders.SoftDelete(c.Request.Context(), orderID); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}
