package handlers

import (
	"context"
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

// Report handles report-related requests
type Report struct {
	Service *moderation.ReportService
	RDB     databases.ReportDatabase
}

type reviewRequest struct {
	ReviewerUserID string `json:"reviewerUserId" validate:"required"`
	Reason         string `json:"reason"`
}

// requestContext bundles the query-scoped context with the path id so the
// shared transition plumbing stays flat.
type requestContext struct {
	ctx context.Context
	id  string
}

// SubmitReportHandler files a new report and alerts the admins
func (re Report) SubmitReportHandler(w http.ResponseWriter, r *http.Request) {
	var req moderation.SubmitReport
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid report payload", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	report, err := re.Service.Submit(ctx, req)
	if err != nil {
		moderationError("failed to submit report", w, err)
		return
	}

	b, err := json.Marshal(report)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// PendingReportsHandler returns the pending report queue, newest first
func (re Report) PendingReportsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	reports, err := re.RDB.Find(ctx, bson.M{"status": models.ReportStatusPending})
	if err != nil {
		config.ErrorStatus("failed to get pending reports", http.StatusInternalServerError, w, err)
		return
	}
	if reports == nil {
		reports = []models.Report{}
	}
	b, err := json.Marshal(reports)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DismissReportHandler dismisses a pending report
func (re Report) DismissReportHandler(w http.ResponseWriter, r *http.Request) {
	re.transition(w, r, func(ctx requestContext, req reviewRequest) error {
		return re.Service.Dismiss(ctx.ctx, ctx.id, req.ReviewerUserID)
	})
}

// ResolveReportHandler resolves a pending report without further action
func (re Report) ResolveReportHandler(w http.ResponseWriter, r *http.Request) {
	re.transition(w, r, func(ctx requestContext, req reviewRequest) error {
		return re.Service.Resolve(ctx.ctx, ctx.id, req.ReviewerUserID)
	})
}

// ResolveWithBanHandler bans the reported user and resolves the report
func (re Report) ResolveWithBanHandler(w http.ResponseWriter, r *http.Request) {
	re.transition(w, r, func(ctx requestContext, req reviewRequest) error {
		return re.Service.ResolveWithBan(ctx.ctx, ctx.id, req.ReviewerUserID, req.Reason)
	})
}

// ResolveWithContentDeletionHandler deletes the reported content and resolves the report
func (re Report) ResolveWithContentDeletionHandler(w http.ResponseWriter, r *http.Request) {
	re.transition(w, r, func(ctx requestContext, req reviewRequest) error {
		return re.Service.ResolveWithContentDeletion(ctx.ctx, ctx.id, req.ReviewerUserID)
	})
}

func (re Report) transition(w http.ResponseWriter, r *http.Request, fn func(requestContext, reviewRequest) error) {
	reportID := mux.Vars(r)["report_id"]

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

	if err := fn(requestContext{ctx: ctx, id: reportID}, req); err != nil {
		moderationError("failed to update report", w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "report updated successfully"}`))
}
