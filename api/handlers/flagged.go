package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/rayseal/supportapp-api/api"
	"github.com/rayseal/supportapp-api/config"
	"github.com/rayseal/supportapp-api/databases"
	"github.com/rayseal/supportapp-api/models"
	"github.com/rayseal/supportapp-api/moderation"
)

// Flagged handles flagged-content review requests
type Flagged struct {
	Service *moderation.FlagService
	FDB     databases.FlaggedContentDatabase
}

// PendingFlaggedContentHandler returns the pending flagged content queue
func (f Flagged) PendingFlaggedContentHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	flagged, err := f.FDB.Find(ctx, bson.M{"status": models.FlagStatusPending})
	if err != nil {
		config.ErrorStatus("failed to get pending flagged content", http.StatusInternalServerError, w, err)
		return
	}
	if flagged == nil {
		flagged = []models.FlaggedContent{}
	}
	b, err := json.Marshal(flagged)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ApproveFlaggedContentHandler releases the content for display
func (f Flagged) ApproveFlaggedContentHandler(w http.ResponseWriter, r *http.Request) {
	f.transition(w, r, func(ctx requestContext, req reviewRequest) error {
		return f.Service.Approve(ctx.ctx, ctx.id, req.ReviewerUserID)
	})
}

// RejectFlaggedContentHandler keeps the content hidden indefinitely
func (f Flagged) RejectFlaggedContentHandler(w http.ResponseWriter, r *http.Request) {
	f.transition(w, r, func(ctx requestContext, req reviewRequest) error {
		return f.Service.Reject(ctx.ctx, ctx.id, req.ReviewerUserID)
	})
}

// DeleteFlaggedContentHandler removes the underlying content record
func (f Flagged) DeleteFlaggedContentHandler(w http.ResponseWriter, r *http.Request) {
	f.transition(w, r, func(ctx requestContext, req reviewRequest) error {
		return f.Service.Delete(ctx.ctx, ctx.id, req.ReviewerUserID)
	})
}

// BanAuthorHandler bans the author of the flagged content without
// transitioning the case
func (f Flagged) BanAuthorHandler(w http.ResponseWriter, r *http.Request) {
	f.transition(w, r, func(ctx requestContext, req reviewRequest) error {
		return f.Service.BanAuthor(ctx.ctx, ctx.id, req.ReviewerUserID, req.Reason)
	})
}

func (f Flagged) transition(w http.ResponseWriter, r *http.Request, fn func(requestContext, reviewRequest) error) {
	flagID := mux.Vars(r)["flag_id"]

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid review payload", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := fn(requestContext{ctx: ctx, id: flagID}, req); err != nil {
		moderationError("failed to update flagged content", w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "flagged content updated successfully"}`))
}
