package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/rayseal/supportapp-api/api"
	"github.com/rayseal/supportapp-api/config"
	"github.com/rayseal/supportapp-api/databases"
	"github.com/rayseal/supportapp-api/models"
	"github.com/rayseal/supportapp-api/moderation"
)

// Comment handles comment submission
type Comment struct {
	CDB   databases.CommentDatabase
	PDB   databases.PostDatabase
	Flags *moderation.FlagService
	Gate  *moderation.AccessGate
}

type createCommentRequest struct {
	PostID     string `json:"postId" validate:"required"`
	UserID     string `json:"userId" validate:"required"`
	AuthorName string `json:"authorName"`
	Content    string `json:"content" validate:"required"`
}

// CreateCommentHandler stores a new comment, running it through the content
// analyzer first. Flagged comments are stored hidden pending review, and the
// parent post's comment count goes up either way.
func (c Comment) CreateCommentHandler(w http.ResponseWriter, r *http.Request) {
	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid comment payload", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if banned, _ := c.Gate.IsBanned(ctx, req.UserID); banned {
		config.ErrorStatus("banned users cannot comment", http.StatusForbidden, w, moderation.ErrNotAuthorized)
		return
	}

	comment := models.Comment{
		CommentID:      uuid.NewString(),
		PostID:         req.PostID,
		UserID:         req.UserID,
		AuthorName:     req.AuthorName,
		Content:        req.Content,
		Timestamp:      time.Now().UnixMilli(),
		ContentVisible: true,
	}

	flagged, err := c.Flags.FlagSubmission(ctx, models.ContentTypeComment, comment.CommentID, req.UserID, req.AuthorName, req.Content)
	if err != nil {
		moderationError("failed to analyze comment", w, err)
		return
	}
	if flagged != nil {
		comment.ContentVisible = false
	}

	if _, err := c.CDB.InsertOne(ctx, comment); err != nil {
		config.ErrorStatus("failed to create comment", http.StatusInternalServerError, w, err)
		return
	}

	// keep the parent post's counter in step; best effort
	if _, err := c.PDB.UpdateOne(ctx, bson.M{"_id": req.PostID},
		bson.M{"$inc": bson.M{"commentCount": 1}}); err != nil {
		zap.S().With(err).Errorw("failed to increment comment count", "postId", req.PostID)
	}

	b, err := json.Marshal(comment)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}
