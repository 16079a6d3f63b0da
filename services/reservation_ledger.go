package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yeremiapane/littlelemon/metrics"
	"github.com/yeremiapane/littlelemon/models"
	"github.com/yeremiapane/littlelemon/utils"
	"golang.org/x/text/cases"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Requester is the authenticated caller of a ledger operation.
type Requester struct {
	UserID uint
	Name   string
	Staff  bool
}

func (r Requester) owns(res models.Reservation) bool {
	return r.UserID != 0 && res.OwnerID != nil && *res.OwnerID == r.UserID
}

// ReservationEvents receives committed ledger changes.
type ReservationEvents interface {
	ReservationCreated(models.Reservation)
	ReservationUpdated(models.Reservation)
	ReservationCancelled(models.Reservation)
	TableAvailabilityChanged(tableID uint, available bool)
}

// ListFilter narrows ListFor. Name matches case-insensitively as a substring.
type ListFilter struct {
	Name       string
	FutureOnly bool
}

// ReservationLedger is the only writer of reservations. Every write pairs the
// reservation row with the matching table availability change in a single
// transaction.
type ReservationLedger struct {
	DB        *gorm.DB
	Validator *ReservationValidator
	State     TableState
	Events    ReservationEvents
	Metrics   *metrics.ReservationMetrics
}

func NewReservationLedger(db *gorm.DB, v *ReservationValidator, events ReservationEvents, m *metrics.ReservationMetrics) *ReservationLedger {
	if v == nil {
		v = NewReservationValidator(nil, nil, OpeningHours{})
	}
	return &ReservationLedger{DB: db, Validator: v, Events: events, Metrics: m}
}

func (l *ReservationLedger) now() time.Time {
	return l.Validator.Now()
}

func (l *ReservationLedger) location() *time.Location {
	return l.Validator.Location
}

// Create admits a booking: validate, insert, mark the table unavailable.
func (l *ReservationLedger) Create(ctx context.Context, req Requester, c Candidate) (models.Reservation, error) {
	c = c.Normalize()
	if c.Name == "" || c.Name == "No name" {
		c.Name = req.Name
	}

	var created models.Reservation
	err := l.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		table, err := l.Validator.Validate(ctx, tx, c, 0)
		if err != nil {
			return err
		}

		res := models.Reservation{
			Name:        c.Name,
			Guests:      c.Guests,
			BookingDate: c.Date,
			BookingTime: c.Time,
			TableID:     table.ID,
		}
		if req.UserID != 0 {
			owner := req.UserID
			res.OwnerID = &owner
		}
		if err := tx.Omit(clause.Associations).Create(&res).Error; err != nil {
			return fmt.Errorf("insert reservation: %w", err)
		}
		if err := l.State.MarkUnavailable(tx, table.ID); err != nil {
			return err
		}

		table.Available = false
		res.Table = table
		created = res
		return nil
	})
	err = translateLedgerError(err)
	l.Metrics.ObserveAdmission(outcomeOf(err, "accepted"))
	if err != nil {
		logLedgerFailure("create", err)
		return models.Reservation{}, err
	}

	utils.InfoLogger.WithFields(map[string]interface{}{
		"reservation_id": created.ID,
		"table_id":       created.TableID,
		"slot":           created.BookingDate + " " + created.BookingTime,
	}).Info("reservation created")
	if l.Events != nil {
		l.Events.ReservationCreated(created)
		l.Events.TableAvailabilityChanged(created.TableID, false)
	}
	return created, nil
}

// Update re-admits an existing, still-future reservation with new details.
func (l *ReservationLedger) Update(ctx context.Context, req Requester, id uint, c Candidate) (models.Reservation, error) {
	c = c.Normalize()

	var (
		updated      models.Reservation
		oldTableID   uint
		oldAvailable bool
		oldChanged   bool
	)
	err := l.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := l.loadForChange(tx, req, id)
		if err != nil {
			return err
		}
		if c.Name == "" {
			c.Name = current.Name
		}

		table, err := l.Validator.Validate(ctx, tx, c, current.ID)
		if err != nil {
			return err
		}

		if err := tx.Model(&current).Omit(clause.Associations).Updates(map[string]interface{}{
			"name":         c.Name,
			"no_of_guest":  c.Guests,
			"booking_date": c.Date,
			"booking_time": c.Time,
			"table_id":     table.ID,
		}).Error; err != nil {
			return fmt.Errorf("update reservation %d: %w", current.ID, err)
		}
		if err := l.State.MarkUnavailable(tx, table.ID); err != nil {
			return err
		}

		if current.TableID != table.ID {
			var previous models.Table
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&previous, current.TableID).Error; err != nil {
				return fmt.Errorf("load previous table %d: %w", current.TableID, err)
			}
			oldTableID = previous.ID
			oldAvailable, oldChanged, err = l.State.Refresh(tx, previous, l.now(), l.location())
			if err != nil {
				return err
			}
		}

		current.Name = c.Name
		current.Guests = c.Guests
		current.BookingDate = c.Date
		current.BookingTime = c.Time
		current.TableID = table.ID
		table.Available = false
		current.Table = table
		updated = current
		return nil
	})
	err = translateLedgerError(err)
	l.Metrics.ObserveUpdate(outcomeOf(err, "updated"))
	if err != nil {
		logLedgerFailure("update", err)
		return models.Reservation{}, err
	}

	if l.Events != nil {
		l.Events.ReservationUpdated(updated)
		l.Events.TableAvailabilityChanged(updated.TableID, false)
		if oldChanged {
			l.Events.TableAvailabilityChanged(oldTableID, oldAvailable)
		}
	}
	return updated, nil
}

// Cancel deletes a future reservation and frees its table when no other
// active reservation holds it.
func (l *ReservationLedger) Cancel(ctx context.Context, req Requester, id uint) (models.Reservation, error) {
	var (
		cancelled models.Reservation
		available bool
		changed   bool
	)
	err := l.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := l.loadForChange(tx, req, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.Reservation{}, res.ID).Error; err != nil {
			return fmt.Errorf("delete reservation %d: %w", res.ID, err)
		}

		var table models.Table
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&table, res.TableID).Error; err != nil {
			return fmt.Errorf("load table %d: %w", res.TableID, err)
		}
		available, changed, err = l.State.Refresh(tx, table, l.now(), l.location())
		if err != nil {
			return err
		}
		table.Available = available
		res.Table = table
		cancelled = res
		return nil
	})
	l.Metrics.ObserveCancellation(outcomeOf(err, "cancelled"))
	if err != nil {
		logLedgerFailure("cancel", err)
		return models.Reservation{}, err
	}

	utils.InfoLogger.WithFields(map[string]interface{}{
		"reservation_id": cancelled.ID,
		"table_id":       cancelled.TableID,
		"table_free":     available,
	}).Info("reservation cancelled")
	if l.Events != nil {
		l.Events.ReservationCancelled(cancelled)
		if changed {
			l.Events.TableAvailabilityChanged(cancelled.TableID, available)
		}
	}
	return cancelled, nil
}

// loadForChange fetches a reservation for update or cancellation. A past
// reservation is rejected as too late for everyone; otherwise only its owner
// or staff may change it.
func (l *ReservationLedger) loadForChange(tx *gorm.DB, req Requester, id uint) (models.Reservation, error) {
	var res models.Reservation
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&res, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res, notFoundError(ReasonReservationNotFound, fmt.Sprintf("reservation %d not found", id))
		}
		return res, fmt.Errorf("load reservation %d: %w", id, err)
	}

	instant, err := SlotInstant(res.BookingDate, res.BookingTime, l.location())
	if err != nil {
		return res, fmt.Errorf("reservation %d has a malformed slot: %w", id, err)
	}
	if !instant.After(l.now()) {
		return res, validationError(ReasonTooLate, "past reservations cannot be changed or cancelled")
	}
	if !req.Staff && !req.owns(res) {
		return res, permissionError("you do not have permission to change this reservation")
	}
	return res, nil
}

// Get returns one reservation visible to the requester.
func (l *ReservationLedger) Get(ctx context.Context, req Requester, id uint) (models.Reservation, error) {
	var res models.Reservation
	if err := l.DB.WithContext(ctx).Preload("Table").First(&res, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res, notFoundError(ReasonReservationNotFound, fmt.Sprintf("reservation %d not found", id))
		}
		return res, fmt.Errorf("load reservation %d: %w", id, err)
	}
	if !req.Staff && !req.owns(res) {
		return models.Reservation{}, notFoundError(ReasonReservationNotFound, fmt.Sprintf("reservation %d not found", id))
	}
	return res, nil
}

// ListFor returns the requester's reservations, or every reservation for
// staff, newest slot first.
func (l *ReservationLedger) ListFor(ctx context.Context, req Requester, f ListFilter) ([]models.Reservation, error) {
	reservations := []models.Reservation{}
	if !req.Staff && req.UserID == 0 {
		return reservations, nil
	}

	q := l.DB.WithContext(ctx).Preload("Table").Order("booking_date DESC, booking_time DESC, id DESC")
	if !req.Staff {
		q = q.Where("owner_id = ?", req.UserID)
	}
	if f.FutureOnly {
		q = q.Scopes(activeReservations(l.now(), l.location()))
	}
	if err := q.Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	needle := strings.TrimSpace(f.Name)
	if needle == "" {
		return reservations, nil
	}
	folder := cases.Fold()
	needle = folder.String(needle)
	matched := reservations[:0]
	for _, res := range reservations {
		if strings.Contains(folder.String(res.Name), needle) {
			matched = append(matched, res)
		}
	}
	return matched, nil
}

// Reconcile recomputes every table's availability from the active
// reservations and repairs drifted flags. It returns the repaired tables.
func (l *ReservationLedger) Reconcile(ctx context.Context) ([]models.Table, error) {
	var repaired []models.Table
	err := l.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Locked so a concurrent Create cannot commit between the count and the flag write.
		var tables []models.Table
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Order("id ASC").Find(&tables).Error; err != nil {
			return fmt.Errorf("list tables: %w", err)
		}
		now := l.now()
		for _, table := range tables {
			available, changed, err := l.State.Refresh(tx, table, now, l.location())
			if err != nil {
				return err
			}
			if changed {
				table.Available = available
				repaired = append(repaired, table)
			}
		}
		return nil
	})
	if err != nil {
		logLedgerFailure("reconcile", err)
		return nil, err
	}

	l.Metrics.AddRepairs(len(repaired))
	if l.Events != nil {
		for _, table := range repaired {
			l.Events.TableAvailabilityChanged(table.ID, table.Available)
		}
	}
	return repaired, nil
}

// translateLedgerError turns a lost race on the slot index into the same
// slot_taken rejection the pre-check gives.
func translateLedgerError(err error) error {
	if err == nil || AsServiceError(err) != nil {
		return err
	}
	if isUniqueViolation(err) {
		return slotTakenError(err)
	}
	return err
}

func outcomeOf(err error, success string) string {
	if err == nil {
		return success
	}
	if typed := AsServiceError(err); typed != nil {
		return typed.Reason
	}
	return "error"
}

func logLedgerFailure(op string, err error) {
	if typed := AsServiceError(err); typed != nil {
		utils.InfoLogger.WithFields(map[string]interface{}{
			"op":     op,
			"reason": typed.Reason,
		}).Info("reservation request rejected")
		return
	}
	utils.ErrorLogger.WithError(err).WithField("op", op).Error("reservation ledger failure")
}
