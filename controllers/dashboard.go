package controllers

import (
	"net/http"
	"time"

	"carcare-backend/config"
	"carcare-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetDashboardOverview returns the headline counters: customer, order
// and invoice totals, this month's revenue and how many guarantees are
// still running.
func GetDashboardOverview(c *gin.Context) {
	var totalClients int64
	config.DB.Model(&models.Customer{}).Where("is_deleted = ?", false).Count(&totalClients)

	var totalOrders int64
	config.DB.Model(&models.WorkOrder{}).Where("is_deleted = ?", false).Count(&totalOrders)

	var totalInvoices int64
	config.DB.Model(&models.Invoice{}).Where("is_deleted = ?", false).Count(&totalInvoices)

	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var monthlyRevenue decimal.Decimal
	config.DB.Model(&models.Invoice{}).
		Where("is_deleted = ? AND issue_date >= ?", false, firstOfMonth).
		Select("COALESCE(SUM(final_amount), 0)").Scan(&monthlyRevenue)

	var activeGuarantees int64
	config.DB.Model(&models.Guarantee{}).
		Joins("JOIN work_orders ON work_orders.id = guarantees.order_id").
		Where("work_orders.is_deleted = ?", false).
		Where("guarantees.start_date <= ? AND guarantees.end_date >= ?", now, now).
		Count(&activeGuarantees)

	c.JSON(http.StatusOK, gin.H{
		"totalClients":     totalClients,
		"totalOrders":      totalOrders,
		"totalInvoices":    totalInvoices,
		"monthlyRevenue":   monthlyRevenue,
		"activeGuarantees": activeGuarantees,
	})
}
