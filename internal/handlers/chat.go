package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/skillbridge/internal/database"
	"github.com/thereayou/skillbridge/internal/handlers/dto"
	"github.com/thereayou/skillbridge/internal/middleware"
	"github.com/thereayou/skillbridge/internal/models"
	"github.com/thereayou/skillbridge/internal/realtime"
)

type ChatHandler struct {
	db      *database.Database
	emitter *realtime.Emitter
}

func NewChatHandler(db *database.Database, emitter *realtime.Emitter) *ChatHandler {
	return &ChatHandler{db: db, emitter: emitter}
}

// CreateOrGetRoom лениво создает комнату клиента с указанным специалистом
func (h *ChatHandler) CreateOrGetRoom(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req struct {
		SpecialistID string `json:"specialist_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	specialistID, err := uuid.Parse(req.SpecialistID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid specialist id"})
		return
	}

	client, err := h.db.GetClientByUserID(userID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "only clients can open chat rooms"})
		return
	}

	if _, err := h.db.GetSpecialist(specialistID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "specialist not found"})
		return
	}

	room, err := h.db.GetOrCreateChatRoom(client.ID, specialistID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}

	c.JSON(http.StatusOK, h.formatRoom(room, userID))
}

// GetMyRooms возвращает комнаты пользователя с последним сообщением
// и числом непрочитанных
func (h *ChatHandler) GetMyRooms(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	rooms, err := h.db.GetUserChatRooms(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get rooms"})
		return
	}

	resp := make([]dto.RoomResponse, len(rooms))
	for i := range rooms {
		resp[i] = h.formatRoom(&rooms[i], userID)
	}

	c.JSON(http.StatusOK, gin.H{"rooms": resp})
}

// GetRoomMessages — история комнаты, только для её участников
func (h *ChatHandler) GetRoomMessages(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	room, err := h.db.GetChatRoom(roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	if room.Client.UserID != userID && room.Specialist.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a participant of this room"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var beforeID *uuid.UUID
	if before := c.Query("before"); before != "" {
		id, err := uuid.Parse(before)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid before id"})
			return
		}
		beforeID = &id
	}

	messages, err := h.db.GetRoomMessages(roomID, limit, beforeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}

	resp := make([]dto.MessageResponse, len(messages))
	for i := range messages {
		resp[i] = formatMessage(&messages[i])
	}

	c.JSON(http.StatusOK, gin.H{"messages": resp})
}

// SendMessage сохраняет сообщение и пушит его всем, кто сейчас в
// канале комнаты. Пуш best-effort: запись уже состоялась, её судьба
// от доставки не зависит.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.db.GetChatRoom(roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	if room.Client.UserID != userID && room.Specialist.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a participant of this room"})
		return
	}

	message := &models.Message{
		RoomID:    roomID,
		SenderID:  userID,
		Text:      req.Text,
		CreatedAt: time.Now(),
	}

	if err := h.db.SaveMessage(message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save message"})
		return
	}

	resp := formatMessage(message)
	h.emitter.EmitToRoom(roomID, realtime.EventChatMessageNew, resp)

	go h.db.UpdateLastSeen(userID)

	c.JSON(http.StatusCreated, resp)
}

func (h *ChatHandler) formatRoom(room *models.ChatRoom, userID uuid.UUID) dto.RoomResponse {
	resp := dto.RoomResponse{
		ID:             room.ID,
		ClientUserID:   room.Client.UserID,
		ClientName:     room.Client.User.DisplayName(),
		SpecialistID:   room.SpecialistID,
		SpecialistName: room.Specialist.User.DisplayName(),
		CreatedAt:      room.CreatedAt,
	}

	if count, err := h.db.CountUnreadMessages(room.ID, userID); err == nil {
		resp.UnreadCount = count
	}

	if messages, err := h.db.GetRoomMessages(room.ID, 1, nil); err == nil && len(messages) > 0 {
		last := formatMessage(&messages[0])
		resp.LastMessage = &last
	}

	return resp
}

func formatMessage(m *models.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        m.ID,
		RoomID:    m.RoomID,
		SenderID:  m.SenderID,
		Text:      m.Text,
		IsRead:    m.IsRead,
		ReadAt:    m.ReadAt,
		CreatedAt: m.CreatedAt,
	}
}
