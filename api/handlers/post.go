package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/rayseal/supportapp-api/api"
	"github.com/rayseal/supportapp-api/config"
	"github.com/rayseal/supportapp-api/databases"
	"github.com/rayseal/supportapp-api/models"
	"github.com/rayseal/supportapp-api/moderation"
)

// Post handles post submission and reactions
type Post struct {
	PDB    databases.PostDatabase
	Flags  *moderation.FlagService
	Ledger *moderation.ReactionLedger
	Gate   *moderation.AccessGate
}

type createPostRequest struct {
	UserID     string   `json:"userId" validate:"required"`
	AuthorName string   `json:"authorName"`
	Content    string   `json:"content" validate:"required"`
	Categories []string `json:"categories"`
	ImageURL   string   `json:"imageUrl"`
}

type reactRequest struct {
	UserID       string `json:"userId" validate:"required"`
	ReactionType string `json:"reactionType" validate:"required,oneof=youGotThis notAlone withYou strong support"`
}

// CreatePostHandler stores a new post, running it through the content analyzer
// first. Flagged posts are stored hidden pending review.
func (p Post) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid post payload", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if banned, _ := p.Gate.IsBanned(ctx, req.UserID); banned {
		config.ErrorStatus("banned users cannot post", http.StatusForbidden, w, moderation.ErrNotAuthorized)
		return
	}

	post := models.Post{
		PostID:         uuid.NewString(),
		Content:        req.Content,
		Categories:     req.Categories,
		ImageURL:       req.ImageURL,
		UserID:         req.UserID,
		AuthorName:     req.AuthorName,
		Timestamp:      time.Now().UnixMilli(),
		Reactions:      map[string]int{},
		UserReactions:  map[string][]string{},
		ContentVisible: true,
	}

	flagged, err := p.Flags.FlagSubmission(ctx, models.ContentTypePost, post.PostID, req.UserID, req.AuthorName, req.Content)
	if err != nil {
		moderationError("failed to analyze post", w, err)
		return
	}
	if flagged != nil {
		post.ContentVisible = false
	}

	if _, err := p.PDB.InsertOne(ctx, post); err != nil {
		config.ErrorStatus("failed to create post", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(post)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// ReactToPostHandler toggles the caller's reaction on a post
func (p Post) ReactToPostHandler(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["post_id"]

	var req reactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid reaction payload", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	post, err := p.PDB.FindOne(ctx, bson.M{"_id": postID})
	if err != nil {
		config.ErrorStatus("post not found", http.StatusNotFound, w, err)
		return
	}

	if err := p.Ledger.Toggle(ctx, post, req.ReactionType, req.UserID); err != nil {
		moderationError("failed to toggle reaction", w, err)
		return
	}

	b, err := json.Marshal(post)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
