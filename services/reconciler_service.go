package services

import (
	"log"

	"carcare-backend/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReconcilerService repairs the non-atomic tail of the intake workflow:
// an invoice can exist while its order lost (or never received) the
// back-link. The sweep finds such invoices and rewrites the link.
type ReconcilerService struct {
	db   *gorm.DB
	spec string
	cron *cron.Cron
}

func NewReconcilerService(db *gorm.DB, spec string) *ReconcilerService {
	return &ReconcilerService{db: db, spec: spec}
}

func (s *ReconcilerService) StartScheduler() {
	c := cron.New()

	if _, err := c.AddFunc(s.spec, func() {
		if n, err := s.ReconcileInvoiceLinks(); err != nil {
			log.Printf("Invoice link reconciliation failed: %v", err)
		} else if n > 0 {
			log.Printf("Reconciled %d invoice links", n)
		}
	}); err != nil {
		log.Printf("Failed to schedule reconciler: %v", err)
		return
	}

	c.Start()
	s.cron = c
	log.Println("Invoice link reconciler started")
}

func (s *ReconcilerService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// ReconcileInvoiceLinks returns the number of repaired orders. The
// update is conditional on the link still being absent, so a concurrent
// writer always wins.
func (s *ReconcilerService) ReconcileInvoiceLinks() (int, error) {
	var invoices []models.Invoice
	err := s.db.
		Joins("JOIN work_orders ON work_orders.id = invoices.order_id").
		Where("work_orders.invoice_id IS NULL").
		Where("invoices.is_deleted = ?", false).
		Find(&invoices).Error
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, inv := range invoices {
		res := s.db.Model(&models.WorkOrder{}).
			Where("id = ? AND invoice_id IS NULL", inv.OrderID).
			Update("invoice_id", inv.ID)
		if res.Error != nil {
			log.Printf("Failed to relink invoice %s to order %s: %v", inv.ID, inv.OrderID, res.Error)
			continue
		}
		repaired += int(res.RowsAffected)
	}
	return repaired, nil
}
