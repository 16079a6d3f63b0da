package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/littlelemon/services"
	"github.com/yeremiapane/littlelemon/utils"
)

type ReservationController struct {
	Ledger *services.ReservationLedger
}

func NewReservationController(ledger *services.ReservationLedger) *ReservationController {
	return &ReservationController{Ledger: ledger}
}

// CreateReservation books a table for the authenticated customer.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var body services.Candidate
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, err)
		return
	}

	res, err := rc.Ledger.Create(c.Request.Context(), requesterFrom(c), body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Reservation created", res)
}

// ListReservations -> own reservations for customers, all for staff.
// Staff may pass ?mine=true to see only their own, and ?name= to search.
func (rc *ReservationController) ListReservations(c *gin.Context) {
	req := requesterFrom(c)
	if c.Query("mine") == "true" {
		req.Staff = false
	}
	filter := services.ListFilter{
		Name:       c.Query("name"),
		FutureOnly: c.Query("future") == "true",
	}

	reservations, err := rc.Ledger.ListFor(c.Request.Context(), req, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// ListFutureReservations is ListReservations limited to upcoming bookings.
func (rc *ReservationController) ListFutureReservations(c *gin.Context) {
	reservations, err := rc.Ledger.ListFor(c.Request.Context(), requesterFrom(c), services.ListFilter{
		Name:       c.Query("name"),
		FutureOnly: true,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Upcoming reservations", reservations)
}

func (rc *ReservationController) GetReservation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	res, err := rc.Ledger.Get(c.Request.Context(), requesterFrom(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation detail", res)
}

func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var body services.Candidate
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, err)
		return
	}

	res, err := rc.Ledger.Update(c.Request.Context(), requesterFrom(c), id, body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation updated", res)
}

// CancelReservation answers 204 with no body on success.
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if _, err := rc.Ledger.Cancel(c.Request.Context(), requesterFrom(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
