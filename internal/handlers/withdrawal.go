package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/skillbridge/internal/database"
	"github.com/thereayou/skillbridge/internal/middleware"
	"github.com/thereayou/skillbridge/internal/models"
)

type WithdrawalHandler struct {
	db *database.Database
}

func NewWithdrawalHandler(db *database.Database) *WithdrawalHandler {
	return &WithdrawalHandler{db: db}
}

// Create — заявка на вывод, сумма сразу списывается с баланса
func (h *WithdrawalHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	spec, err := h.db.GetSpecialistByUserID(userID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "specialist profile not found"})
		return
	}

	withdrawal := &models.Withdrawal{
		SpecialistID: spec.ID,
		Amount:       req.Amount,
		Status:       models.WithdrawalStatusRequested,
		CreatedAt:    time.Now(),
	}

	if err := h.db.CreateWithdrawal(withdrawal); err != nil {
		if err == database.ErrInsufficientBalance {
			c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient balance"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create withdrawal"})
		return
	}

	c.JSON(http.StatusCreated, withdrawal)
}

func (h *WithdrawalHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	spec, err := h.db.GetSpecialistByUserID(userID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "specialist profile not found"})
		return
	}

	list, err := h.db.GetSpecialistWithdrawals(spec.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get withdrawals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"withdrawals": list})
}
