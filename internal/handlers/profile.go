package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/skillbridge/internal/database"
	"github.com/thereayou/skillbridge/internal/middleware"
	"github.com/thereayou/skillbridge/internal/models"
	"github.com/thereayou/skillbridge/internal/realtime"
)

type ProfileHandler struct {
	db       *database.Database
	presence realtime.PresenceStore
}

func NewProfileHandler(db *database.Database, presence realtime.PresenceStore) *ProfileHandler {
	return &ProfileHandler{db: db, presence: presence}
}

// Me возвращает профиль текущего пользователя
func (h *ProfileHandler) Me(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	user, err := h.db.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, formatUser(user))
}

// UpdateMe обновляет только переданные поля
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		AvatarURL string `json:"avatar_url"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.db.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}

	if err := h.db.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, formatUser(user))
}

// ListSpecialists — публичный каталог специалистов
func (h *ProfileHandler) ListSpecialists(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	specs, err := h.db.ListSpecialists(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list specialists"})
		return
	}

	resp := make([]gin.H, len(specs))
	for i := range specs {
		resp[i] = h.formatSpecialist(&specs[i])
	}

	c.JSON(http.StatusOK, gin.H{"specialists": resp})
}

func (h *ProfileHandler) GetSpecialist(c *gin.Context) {
	specID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid specialist id"})
		return
	}

	spec, err := h.db.GetSpecialist(specID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "specialist not found"})
		return
	}

	c.JSON(http.StatusOK, h.formatSpecialist(spec))
}

func (h *ProfileHandler) formatSpecialist(spec *models.Specialist) gin.H {
	status := realtime.StatusOffline
	if rec, ok := h.presence.Get(spec.UserID); ok {
		status = rec.Status
	}

	return gin.H{
		"id":           spec.ID,
		"user_id":      spec.UserID,
		"name":         spec.User.DisplayName(),
		"avatar_url":   spec.User.AvatarURL,
		"title":        spec.Title,
		"description":  spec.Description,
		"hourly_rate":  spec.HourlyRate,
		"rating":       spec.Rating,
		"review_count": spec.ReviewCount,
		"is_verified":  spec.IsVerified,
		"status":       status,
	}
}

func formatUser(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"role":       user.Role,
		"avatar_url": user.AvatarURL,
		"created_at": user.CreatedAt,
	}
}
