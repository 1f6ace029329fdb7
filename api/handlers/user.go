package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rayseal/supportapp-api/api"
	"github.com/rayseal/supportapp-api/config"
	"github.com/rayseal/supportapp-api/databases"
	"github.com/rayseal/supportapp-api/models"
	"github.com/rayseal/supportapp-api/moderation"
)

// User handles admin actions against user profiles plus the block list
type User struct {
	Executor *moderation.ActionExecutor
	Gate     *moderation.AccessGate
	PDB      databases.ProfileDatabase
	BDB      databases.BlockedUserDatabase
}

type adminActionRequest struct {
	AdminUserID string `json:"adminUserId" validate:"required"`
	Reason      string `json:"reason"`
}

type blockRequest struct {
	BlockerUserID   string `json:"blockerUserId" validate:"required"`
	BlockedUserID   string `json:"blockedUserId" validate:"required"`
	BlockedUserName string `json:"blockedUserName"`
	Reason          string `json:"reason"`
}

// BanUserHandler bans the target user
func (u User) BanUserHandler(w http.ResponseWriter, r *http.Request) {
	u.action(w, r, "failed to ban user", func(ctx requestContext, req adminActionRequest) error {
		return u.Executor.BanUser(ctx.ctx, ctx.id, req.Reason, req.AdminUserID)
	})
}

// UnbanUserHandler lifts a ban on the target user
func (u User) UnbanUserHandler(w http.ResponseWriter, r *http.Request) {
	u.action(w, r, "failed to unban user", func(ctx requestContext, req adminActionRequest) error {
		return u.Executor.UnbanUser(ctx.ctx, ctx.id, req.AdminUserID)
	})
}

// WarnUserHandler issues a warning to the target user. The admin gate lives
// here at the boundary; the executor takes the caller at its word.
func (u User) WarnUserHandler(w http.ResponseWriter, r *http.Request) {
	u.action(w, r, "failed to warn user", func(ctx requestContext, req adminActionRequest) error {
		if !u.Gate.IsAdmin(ctx.ctx, req.AdminUserID) {
			return moderation.ErrNotAuthorized
		}
		return u.Executor.WarnUser(ctx.ctx, ctx.id, req.AdminUserID)
	})
}

// PromoteUserHandler grants admin privileges to the target user
func (u User) PromoteUserHandler(w http.ResponseWriter, r *http.Request) {
	u.action(w, r, "failed to promote user", func(ctx requestContext, req adminActionRequest) error {
		return u.Executor.PromoteToAdmin(ctx.ctx, ctx.id, req.AdminUserID)
	})
}

// DemoteUserHandler revokes admin privileges from the target user
func (u User) DemoteUserHandler(w http.ResponseWriter, r *http.Request) {
	u.action(w, r, "failed to demote user", func(ctx requestContext, req adminActionRequest) error {
		return u.Executor.DemoteFromAdmin(ctx.ctx, ctx.id, req.AdminUserID)
	})
}

// BannedUsersHandler lists all currently banned profiles
func (u User) BannedUsersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	banned, err := u.PDB.Find(ctx, bson.M{"isBanned": true})
	if err != nil {
		config.ErrorStatus("failed to get banned users", http.StatusInternalServerError, w, err)
		return
	}
	if banned == nil {
		banned = []models.Profile{}
	}
	b, err := json.Marshal(banned)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// BlockUserHandler records a block of one user by another
func (u User) BlockUserHandler(w http.ResponseWriter, r *http.Request) {
	var req blockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid block payload", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	block := models.BlockedUser{
		BlockID:         uuid.NewString(),
		BlockerUserID:   req.BlockerUserID,
		BlockedUserID:   req.BlockedUserID,
		BlockedUserName: req.BlockedUserName,
		Reason:          req.Reason,
		BlockedAt:       primitive.NewDateTimeFromTime(time.Now()),
	}
	if _, err := u.BDB.InsertOne(ctx, block); err != nil {
		config.ErrorStatus("failed to block user", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(`{"message": "user blocked successfully"}`))
}

// UnblockUserHandler removes a block record
func (u User) UnblockUserHandler(w http.ResponseWriter, r *http.Request) {
	var req blockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid block payload", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	err := u.BDB.DeleteOne(ctx, bson.M{
		"blockerUserId": req.BlockerUserID,
		"blockedUserId": req.BlockedUserID,
	})
	if err != nil {
		config.ErrorStatus("failed to unblock user", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "user unblocked successfully"}`))
}

// BlockedUsersHandler lists the users blocked by the given user
func (u User) BlockedUsersHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	blocks, err := u.BDB.Find(ctx, bson.M{"blockerUserId": userID})
	if err != nil {
		config.ErrorStatus("failed to get blocked users", http.StatusInternalServerError, w, err)
		return
	}
	if blocks == nil {
		blocks = []models.BlockedUser{}
	}
	b, err := json.Marshal(blocks)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func (u User) action(w http.ResponseWriter, r *http.Request, message string, fn func(requestContext, adminActionRequest) error) {
	targetID := mux.Vars(r)["user_id"]

	var req adminActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid action payload", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := fn(requestContext{ctx: ctx, id: targetID}, req); err != nil {
		moderationError(message, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "action applied successfully"}`))
}
