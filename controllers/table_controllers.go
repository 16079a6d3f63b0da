package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/littlelemon/services"
	"github.com/yeremiapane/littlelemon/utils"
)

type availableTable struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type TableController struct {
	Tables       *services.TableService
	Availability *services.AvailabilityService
}

func NewTableController(tables *services.TableService, availability *services.AvailabilityService) *TableController {
	return &TableController{Tables: tables, Availability: availability}
}

// GetAllTables -> every table, smallest first
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Tables.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

func (tc *TableController) GetTableByID(c *gin.Context) {
	id, ok := idParam(c, "table_id")
	if !ok {
		return
	}
	table, err := tc.Tables.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// FindAvailableTables searches free tables for ?date=&time=&guests=. Without
// any of them it lists the tables currently flagged available.
func (tc *TableController) FindAvailableTables(c *gin.Context) {
	date, clock, guestsRaw := c.Query("date"), c.Query("time"), c.Query("guests")
	if date == "" && clock == "" && guestsRaw == "" {
		tables, err := tc.Availability.ListFlaggedAvailable(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Available tables", tables)
		return
	}

	if date == "" || clock == "" {
		utils.RespondReason(c, http.StatusBadRequest, services.ReasonInvalidRequest, "date and time are required")
		return
	}
	guests := 1
	if guestsRaw != "" {
		n, err := strconv.Atoi(guestsRaw)
		if err != nil {
			utils.RespondReason(c, http.StatusBadRequest, services.ReasonInvalidRequest, "guests must be a number")
			return
		}
		guests = n
	}

	tables, err := tc.Availability.FindAvailable(c.Request.Context(), date, clock, guests)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	found := make([]availableTable, 0, len(tables))
	for _, t := range tables {
		found = append(found, availableTable{ID: t.ID, Name: t.Name, Capacity: t.Seats})
	}
	message := fmt.Sprintf("%d table(s) available for %d guest(s)", len(found), guests)
	if len(found) == 0 {
		message = "no tables available for the requested date and time"
	}
	utils.RespondJSON(c, http.StatusOK, message, gin.H{
		"available": len(found) > 0,
		"tables":    found,
		"message":   message,
	})
}

func (tc *TableController) CreateTable(c *gin.Context) {
	var req services.TableInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	table, err := tc.Tables.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.WithFields(map[string]interface{}{"table_id": table.ID, "seats": table.Seats}).Info("table created")
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// UpdateTable edits name and seats. The availability flag is not writable here.
func (tc *TableController) UpdateTable(c *gin.Context) {
	id, ok := idParam(c, "table_id")
	if !ok {
		return
	}
	var req services.TableInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	table, err := tc.Tables.Update(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable removes the table and its reservations.
func (tc *TableController) DeleteTable(c *gin.Context) {
	id, ok := idParam(c, "table_id")
	if !ok {
		return
	}
	if err := tc.Tables.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.WithField("table_id", id).Info("table deleted")
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": id})
}
