package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/littlelemon/services"
	"github.com/yeremiapane/littlelemon/utils"
)

type AdminController struct {
	Ledger *services.ReservationLedger
}

func NewAdminController(ledger *services.ReservationLedger) *AdminController {
	return &AdminController{Ledger: ledger}
}

// GetDashboardStats -> today's tables and reservations for the host stand
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	stats, err := ac.Ledger.Dashboard(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

// ReconcileTables repairs availability flags on demand instead of waiting
// for the next monitor tick.
func (ac *AdminController) ReconcileTables(c *gin.Context) {
	repaired, err := ac.Ledger.Reconcile(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.WithField("repaired", len(repaired)).Info("manual reconcile")
	utils.RespondJSON(c, http.StatusOK, "Table availability reconciled", gin.H{
		"repaired": repaired,
	})
}
