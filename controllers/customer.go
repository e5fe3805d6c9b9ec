package controllers

import (
	"net/http"
	"strconv"

	"carcare-backend/services"
	"carcare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerController serves the customer directory reads and the
// identity updates outside of intake.
type CustomerController struct {
	reports   *services.ReportService
	customers *services.CustomerService
}

func NewCustomerController(reports *services.ReportService, customers *services.CustomerService) *CustomerController {
	return &CustomerController{reports: reports, customers: customers}
}

// List handles GET /api/clients with branch/search/sort/pagination
// query params. Pagination bounds are rejected before any query runs.
func (cc *CustomerController) List(c *gin.Context) {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "offset must be a number")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "limit must be a number")
		return
	}

	page, err := cc.reports.ListCustomers(c.Request.Context(), services.CustomerQuery{
		Branch:  c.Query("branch"),
		Search:  c.Query("search"),
		SortBy:  c.Query("sortBy"),
		SortDir: c.Query("sortDir"),
		Offset:  offset,
		Limit:   limit,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Get handles GET /api/clients/:id, returning the customer joined with
// its orders and computed stats.
func (cc *CustomerController) Get(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	customer, err := cc.reports.GetCustomerWithOrders(c.Request.Context(), customerID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// Update handles PUT /api/clients/:id with partial identity fields.
func (cc *CustomerController) Update(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input services.CustomerUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, err := cc.customers.Update(c.Request.Context(), customerID, input)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// Delete handles DELETE /api/clients/:id as a soft delete.
func (cc *CustomerController) Delete(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	if err := cc.customers.SoftDelete(c.Request.Context(), customerID); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
