package moderation

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/rayseal/supportapp-api/databases"
	"github.com/rayseal/supportapp-api/models"
)

// SubmitReport is the payload for a user-initiated complaint.
type SubmitReport struct {
	ReportType     string `json:"reportType" validate:"required,oneof=post user comment chat_message"`
	ReportedItemID string `json:"reportedItemId" validate:"required"`
	ReportedUserID string `json:"reportedUserId"`
	ReporterUserID string `json:"reporterUserId" validate:"required"`
	Reason         string `json:"reason" validate:"required,oneof=spam harassment inappropriate_content hate_speech personal_info_sharing other"`
	Description    string `json:"description"`
}

// ReportService owns the report case lifecycle: pending at submission, then a
// single admin transition to resolved or dismissed. Terminal cases reject any
// further transition; there is no re-opening.
type ReportService struct {
	Gate     *AccessGate
	Reports  databases.ReportDatabase
	Profiles databases.ProfileDatabase
	Posts    databases.PostDatabase
	Comments databases.CommentDatabase
	Chats    databases.ChatMessageDatabase
	Executor *ActionExecutor
}

// Submit files a new report and fans out an alert to every admin. The reporter
// name is snapshotted from their profile at submission time.
func (s *ReportService) Submit(ctx context.Context, req SubmitReport) (*models.Report, error) {
	reporterName := "Anonymous"
	if profile, err := s.Profiles.FindOne(ctx, bson.M{"_id": req.ReporterUserID}); err == nil && profile.DisplayName != "" {
		reporterName = profile.DisplayName
	}

	report := models.Report{
		ID:             primitive.NewObjectID(),
		ReportType:     req.ReportType,
		ReportedItemID: req.ReportedItemID,
		ReportedUserID: req.ReportedUserID,
		ReporterUserID: req.ReporterUserID,
		ReporterName:   reporterName,
		Reason:         req.Reason,
		Description:    req.Description,
		CreatedAt:      primitive.NewDateTimeFromTime(time.Now()),
		Status:         models.ReportStatusPending,
	}
	if _, err := s.Reports.InsertOne(ctx, report); err != nil {
		return nil, persistence("insert report", err)
	}

	// bump the reported user's counter; best effort
	if req.ReportedUserID != "" {
		if _, err := s.Profiles.UpdateOne(ctx, bson.M{"_id": req.ReportedUserID},
			bson.M{"$inc": bson.M{"reportCount": 1}}); err != nil {
			zap.S().With(err).Errorw("failed to increment report count", "userId", req.ReportedUserID)
		}
	}

	if err := s.Executor.NotifyAllAdmins(ctx, "New Report",
		fmt.Sprintf("A new %s has been reported for review", report.ReportType),
		report.ID.Hex()); err != nil {
		zap.S().With(err).Error("failed to notify admins of new report")
	}
	return &report, nil
}

// Dismiss moves a pending report to dismissed with no further side effect.
func (s *ReportService) Dismiss(ctx context.Context, reportID, actor string) error {
	report, err := s.reviewable(ctx, reportID, actor)
	if err != nil {
		return err
	}
	return s.close(ctx, report, actor, models.ReportStatusDismissed, models.ActionNone)
}

// Resolve moves a pending report to resolved without taking action.
func (s *ReportService) Resolve(ctx context.Context, reportID, actor string) error {
	report, err := s.reviewable(ctx, reportID, actor)
	if err != nil {
		return err
	}
	return s.close(ctx, report, actor, models.ReportStatusResolved, models.ActionNone)
}

// ResolveWithBan bans the reported user, then resolves the report with
// actionTaken=user_banned. The ban is not rolled back if the case update
// fails afterwards; that leaves "action performed, case still pending", a
// known gap surfaced to the caller through the returned error.
func (s *ReportService) ResolveWithBan(ctx context.Context, reportID, actor, reason string) error {
	report, err := s.reviewable(ctx, reportID, actor)
	if err != nil {
		return err
	}
	if report.ReportedUserID == "" {
		return fmt.Errorf("report %s has no reported user: %w", reportID, ErrInvalidReference)
	}
	if err := s.Executor.BanUser(ctx, report.ReportedUserID, reason, actor); err != nil {
		return err
	}
	return s.close(ctx, report, actor, models.ReportStatusResolved, models.ActionUserBanned)
}

// ResolveWithContentDeletion deletes the reported content record, then
// resolves the report with actionTaken=content_deleted. A report type that
// maps to no content collection deletes nothing.
func (s *ReportService) ResolveWithContentDeletion(ctx context.Context, reportID, actor string) error {
	report, err := s.reviewable(ctx, reportID, actor)
	if err != nil {
		return err
	}
	if err := s.deleteContent(ctx, report.ReportType, report.ReportedItemID); err != nil {
		return err
	}
	return s.close(ctx, report, actor, models.ReportStatusResolved, models.ActionContentDeleted)
}

// reviewable loads the report and enforces the admin gate and the
// terminal-state guard shared by every transition.
func (s *ReportService) reviewable(ctx context.Context, reportID, actor string) (*models.Report, error) {
	if !s.Gate.IsAdmin(ctx, actor) {
		return nil, fmt.Errorf("report review requires admin: %w", ErrNotAuthorized)
	}
	id, err := primitive.ObjectIDFromHex(reportID)
	if err != nil {
		return nil, fmt.Errorf("report id %q: %w", reportID, ErrInvalidReference)
	}
	report, err := s.Reports.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", reportID, ErrNotFound)
	}
	if report.Terminal() {
		return nil, fmt.Errorf("report %s is %s: %w", reportID, report.Status, ErrAlreadyResolved)
	}
	return report, nil
}

func (s *ReportService) close(ctx context.Context, report *models.Report, actor, status, action string) error {
	update := bson.M{"$set": bson.M{
		"status":      status,
		"reviewedBy":  actor,
		"reviewedAt":  primitive.NewDateTimeFromTime(time.Now()),
		"actionTaken": action,
	}}
	if _, err := s.Reports.UpdateOne(ctx, bson.M{"_id": report.ID}, update); err != nil {
		return persistence("update report", err)
	}
	return nil
}

func (s *ReportService) deleteContent(ctx context.Context, reportType, itemID string) error {
	filter := bson.M{"_id": itemID}
	switch reportType {
	case models.ReportTypePost:
		if err := s.Posts.DeleteOne(ctx, filter); err != nil {
			return persistence("delete post", err)
		}
	case models.ReportTypeComment:
		if err := s.Comments.DeleteOne(ctx, filter); err != nil {
			return persistence("delete comment", err)
		}
	case models.ReportTypeChatMessage:
		if err := s.Chats.DeleteOne(ctx, filter); err != nil {
			return persistence("delete chat message", err)
		}
	default:
		// user reports have no content record to delete
		return fmt.Errorf("report type %q has no content collection: %w", reportType, ErrInvalidReference)
	}
	return nil
}
