package controllers

import (
	"net/http"

	"carcare-backend/services"
	"carcare-backend/utils"

	"github.com/gin-gonic/gin"
)

// IntakeController exposes the combined register-customer /
// open-order / generate-invoice operation.
type IntakeController struct {
	intake *services.IntakeService
}

func NewIntakeController(intake *services.IntakeService) *IntakeController {
	return &IntakeController{intake: intake}
}

// Create handles POST /api/clients. The response always includes the
// entities created so far plus per-step outcomes, so a mid-flight
// failure is visible rather than silently partial.
func (ic *IntakeController) Create(c *gin.Context) {
	var input services.IntakeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result, err := ic.intake.Intake(c.Request.Context(), input)
	if err != nil {
		appErr := utils.AsAppError(err)
		if result != nil && result.Customer != nil {
			// Partial completion: surface what succeeded together with
			// the failure.
			message := appErr.Message
			if appErr.Kind == utils.KindInternal {
				message = "Internal server error"
			}
			c.JSON(appErr.HTTPStatus(), gin.H{
				"error":    message,
				"customer": result.Customer,
				"order":    result.Order,
				"invoice":  result.Invoice,
				"steps":    result.Steps,
			})
			return
		}
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
