package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/skillbridge/internal/database"
	"github.com/thereayou/skillbridge/internal/middleware"
	"github.com/thereayou/skillbridge/internal/models"
)

type BookingHandler struct {
	db            *database.Database
	notifications *NotificationHandler
}

func NewBookingHandler(db *database.Database, notifications *NotificationHandler) *BookingHandler {
	return &BookingHandler{db: db, notifications: notifications}
}

// Create — клиент бронирует время у специалиста
func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req struct {
		SpecialistID string    `json:"specialist_id" binding:"required"`
		StartsAt     time.Time `json:"starts_at" binding:"required"`
		EndsAt       time.Time `json:"ends_at" binding:"required"`
		Comment      string    `json:"comment"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.EndsAt.After(req.StartsAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ends_at must be after starts_at"})
		return
	}

	specialistID, err := uuid.Parse(req.SpecialistID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid specialist id"})
		return
	}

	client, err := h.db.GetClientByUserID(userID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "only clients can create bookings"})
		return
	}

	spec, err := h.db.GetSpecialist(specialistID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "specialist not found"})
		return
	}

	hours := req.EndsAt.Sub(req.StartsAt).Hours()

	booking := &models.Booking{
		ClientID:     client.ID,
		SpecialistID: spec.ID,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		Status:       models.BookingStatusPending,
		Price:        spec.HourlyRate * hours,
		Comment:      req.Comment,
		CreatedAt:    time.Now(),
	}

	if err := h.db.CreateBooking(booking); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		return
	}

	h.notifications.Push(spec.UserID,
		"New booking request",
		fmt.Sprintf("%s requested a session on %s", client.User.DisplayName(), req.StartsAt.Format("02 Jan 15:04")),
		"/bookings/"+booking.ID.String(),
		gin.H{"booking_id": booking.ID},
	)

	c.JSON(http.StatusCreated, booking)
}

// List возвращает бронирования текущего пользователя по его роли
func (h *BookingHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	role := c.GetString(middleware.RoleKey)

	var (
		bookings []models.Booking
		err      error
	)

	switch role {
	case models.RoleSpecialist:
		spec, serr := h.db.GetSpecialistByUserID(userID)
		if serr != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "specialist profile not found"})
			return
		}
		bookings, err = h.db.GetSpecialistBookings(spec.ID)
	default:
		client, cerr := h.db.GetClientByUserID(userID)
		if cerr != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "client profile not found"})
			return
		}
		bookings, err = h.db.GetClientBookings(client.ID)
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// UpdateStatus — специалист подтверждает/отклоняет/завершает бронирование
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required,oneof=confirmed declined completed cancelled"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.db.GetBooking(bookingID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}

	isSpecialist := booking.Specialist.UserID == userID
	isClient := booking.Client.UserID == userID

	// Клиент может только отменить, остальные переходы — за специалистом
	if req.Status == models.BookingStatusCancelled {
		if !isClient && !isSpecialist {
			c.JSON(http.StatusForbidden, gin.H{"error": "not your booking"})
			return
		}
	} else if !isSpecialist {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the specialist can change booking status"})
		return
	}

	booking.Status = req.Status

	if req.Status == models.BookingStatusCompleted {
		spec := booking.Specialist
		spec.Balance += booking.Price
		if err := h.db.UpdateSpecialist(&spec); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to credit specialist"})
			return
		}
	}

	if err := h.db.UpdateBooking(booking); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update booking"})
		return
	}

	// Уведомляем вторую сторону
	target := booking.Client.UserID
	if isClient {
		target = booking.Specialist.UserID
	}

	h.notifications.Push(target,
		"Booking "+req.Status,
		fmt.Sprintf("Booking on %s is now %s", booking.StartsAt.Format("02 Jan 15:04"), req.Status),
		"/bookings/"+booking.ID.String(),
		gin.H{"booking_id": booking.ID, "status": req.Status},
	)

	c.JSON(http.StatusOK, booking)
}
