package controllers

import (
	"net/http"

	"carcare-backend/models"
	"carcare-backend/services"
	"carcare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GuaranteeController struct {
	guarantees *services.GuaranteeService
}

func NewGuaranteeController(guarantees *services.GuaranteeService) *GuaranteeController {
	return &GuaranteeController{guarantees: guarantees}
}

type SetStatusInput struct {
	Status string `json:"status" binding:"required"`
}

type SetAcceptanceInput struct {
	Accepted *bool `json:"accepted" binding:"required"`
}

// SetStatus handles PATCH /api/orders/:id/guarantees/:guaranteeId/status.
func (gc *GuaranteeController) SetStatus(c *gin.Context) {
	orderID, guaranteeID, ok := parseGuaranteeIDs(c)
	if !ok {
		return
	}

	var input SetStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := gc.guarantees.SetStatus(c.Request.Context(), orderID, guaranteeID, models.GuaranteeStatus(input.Status))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// SetAcceptance handles PATCH /api/orders/:id/guarantees/:guaranteeId/acceptance.
func (gc *GuaranteeController) SetAcceptance(c *gin.Context) {
	orderID, guaranteeID, ok := parseGuaranteeIDs(c)
	if !ok {
		return
	}

	var input SetAcceptanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := gc.guarantees.SetAcceptance(c.Request.Context(), orderID, guaranteeID, *input.Accepted)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// Add handles POST /api/orders/:id/guarantees, the older workflow
// that attaches a standalone guarantee to the order.
func (gc *GuaranteeController) Add(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input services.GuaranteeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := gc.guarantees.AddToOrder(c.Request.Context(), orderID, input)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

func parseGuaranteeIDs(c *gin.Context) (orderID, guaranteeID uuid.UUID, ok bool) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return orderID, guaranteeID, false
	}
	guaranteeID, err = uuid.Parse(c.Param("guaranteeId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid guarantee ID format")
		return orderID, guaranteeID, false
	}
	return orderID, guaranteeID, true
}
