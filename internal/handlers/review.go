package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/skillbridge/internal/database"
	"github.com/thereayou/skillbridge/internal/middleware"
	"github.com/thereayou/skillbridge/internal/models"
	"gorm.io/gorm"
)

type ReviewHandler struct {
	db            *database.Database
	notifications *NotificationHandler
}

func NewReviewHandler(db *database.Database, notifications *NotificationHandler) *ReviewHandler {
	return &ReviewHandler{db: db, notifications: notifications}
}

// Create — один отзыв на завершенное бронирование
func (h *ReviewHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req struct {
		BookingID string `json:"booking_id" binding:"required"`
		Rating    int    `json:"rating" binding:"required,min=1,max=5"`
		Comment   string `json:"comment" binding:"max=2000"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	booking, err := h.db.GetBooking(bookingID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}

	if booking.Client.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the booking client can leave a review"})
		return
	}

	if booking.Status != models.BookingStatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking is not completed"})
		return
	}

	if _, err := h.db.GetReviewByBooking(bookingID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "review already exists"})
		return
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check existing review"})
		return
	}

	review := &models.Review{
		BookingID:    bookingID,
		ClientID:     booking.ClientID,
		SpecialistID: booking.SpecialistID,
		Rating:       req.Rating,
		Comment:      req.Comment,
		CreatedAt:    time.Now(),
	}

	if err := h.db.CreateReview(review); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create review"})
		return
	}

	if err := h.db.RecalculateSpecialistRating(booking.SpecialistID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update rating"})
		return
	}

	h.notifications.Push(booking.Specialist.UserID,
		"New review",
		booking.Client.User.DisplayName()+" left you a review",
		"/specialists/"+booking.SpecialistID.String()+"/reviews",
		gin.H{"review_id": review.ID, "rating": review.Rating},
	)

	c.JSON(http.StatusCreated, review)
}

// ListForSpecialist — публичный список отзывов специалиста
func (h *ReviewHandler) ListForSpecialist(c *gin.Context) {
	specID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid specialist id"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	reviews, err := h.db.GetSpecialistReviews(specID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
