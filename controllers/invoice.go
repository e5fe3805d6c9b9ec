// controllers/invoice.go
package controllers

import (
	"net/http"

	"carcare-backend/services"
	"carcare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceController is the read side of invoicing; invoices are only
// ever created by the intake and order workflows.
type InvoiceController struct {
	invoices *services.InvoiceService
}

func NewInvoiceController(invoices *services.InvoiceService) *InvoiceController {
	return &InvoiceController{invoices: invoices}
}

// List handles GET /api/invoices, newest first.
func (ic *InvoiceController) List(c *gin.Context) {
	invoices, err := ic.invoices.List(c.Request.Context())
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// Get handles GET /api/invoices/:id.
func (ic *InvoiceController) Get(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	invoice, err := ic.invoices.Get(c.Request.Context(), invoiceID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// GetByOrder handles GET /api/orders/:id/invoice.
func (ic *InvoiceController) GetByOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	invoice, err := ic.invoices.GetByOrder(c.Request.Context(), orderID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}
