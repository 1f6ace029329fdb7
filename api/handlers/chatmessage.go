package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rayseal/supportapp-api/api"
	"github.com/rayseal/supportapp-api/config"
	"github.com/rayseal/supportapp-api/databases"
	"github.com/rayseal/supportapp-api/models"
	"github.com/rayseal/supportapp-api/moderation"
)

// Chat handles chat message submission
type Chat struct {
	MDB   databases.ChatMessageDatabase
	Flags *moderation.FlagService
	Gate  *moderation.AccessGate
}

type createChatMessageRequest struct {
	RoomID     string `json:"roomId" validate:"required"`
	SenderID   string `json:"senderId" validate:"required"`
	SenderName string `json:"senderName"`
	Content    string `json:"content" validate:"required"`
}

// CreateChatMessageHandler stores a new chat message, running it through the
// content analyzer first. Flagged messages are stored hidden pending review.
func (c Chat) CreateChatMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req createChatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid chat message payload", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if banned, _ := c.Gate.IsBanned(ctx, req.SenderID); banned {
		config.ErrorStatus("banned users cannot send messages", http.StatusForbidden, w, moderation.ErrNotAuthorized)
		return
	}

	message := models.ChatMessage{
		MessageID:      uuid.NewString(),
		RoomID:         req.RoomID,
		SenderID:       req.SenderID,
		SenderName:     req.SenderName,
		Content:        req.Content,
		Timestamp:      time.Now().UnixMilli(),
		ContentVisible: true,
	}

	flagged, err := c.Flags.FlagSubmission(ctx, models.ContentTypeChat, message.MessageID, req.SenderID, req.SenderName, req.Content)
	if err != nil {
		moderationError("failed to analyze chat message", w, err)
		return
	}
	if flagged != nil {
		message.ContentVisible = false
	}

	if _, err := c.MDB.InsertOne(ctx, message); err != nil {
		config.ErrorStatus("failed to create chat message", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(message)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}
