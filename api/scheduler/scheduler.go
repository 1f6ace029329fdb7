package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/rayseal/supportapp-api/databases"
	"github.com/rayseal/supportapp-api/models"
)

// Scheduler handles periodic background jobs for the moderation queues
type Scheduler struct {
	cron   *cron.Cron
	RDB    databases.ReportDatabase
	FDB    databases.FlaggedContentDatabase
	PDB    databases.ProfileDatabase
	NDB    databases.NotificationDatabase
	sender string
}

// NewScheduler creates a new scheduler instance
func NewScheduler(
	rDB databases.ReportDatabase,
	fDB databases.FlaggedContentDatabase,
	pDB databases.ProfileDatabase,
	nDB databases.NotificationDatabase,
) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		RDB:    rDB,
		FDB:    fDB,
		PDB:    pDB,
		NDB:    nDB,
		sender: os.Getenv("DIGEST_FROM_EMAIL"),
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Remind admins about unreviewed queues hourly
	_, err := s.cron.AddFunc("0 * * * *", s.sendModerationDigest)
	if err != nil {
		zap.S().Errorw("failed to register moderation digest job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Moderation scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Moderation scheduler stopped")
}

// sendModerationDigest counts the pending queues and, when nonzero, fans a
// digest notification out to every admin and emails those with an address on
// file. Nothing is marked read; the digest repeats every hour until the
// queues drain.
func (s *Scheduler) sendModerationDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pendingReports, err := s.RDB.CountDocuments(ctx, bson.M{"status": models.ReportStatusPending})
	if err != nil {
		zap.S().Errorw("failed to count pending reports", "error", err)
		return
	}
	pendingFlags, err := s.FDB.CountDocuments(ctx, bson.M{"status": models.FlagStatusPending})
	if err != nil {
		zap.S().Errorw("failed to count pending flagged content", "error", err)
		return
	}
	if pendingReports == 0 && pendingFlags == 0 {
		return
	}

	zap.S().Infow("Running moderation digest job",
		"pendingReports", pendingReports,
		"pendingFlags", pendingFlags,
	)

	admins, err := s.PDB.Find(ctx, bson.M{"isAdmin": true})
	if err != nil {
		zap.S().Errorw("failed to find admins for digest", "error", err)
		return
	}

	message := fmt.Sprintf("%d reports and %d flagged items are waiting for review", pendingReports, pendingFlags)
	for _, admin := range admins {
		if admin.UID == "" {
			continue
		}
		notification := models.Notification{
			ID:        uuid.NewString(),
			UserID:    admin.UID,
			Type:      models.NotificationAdminDigest,
			Title:     "Moderation Digest",
			Message:   message,
			Timestamp: primitive.NewDateTimeFromTime(time.Now()),
		}
		if _, err := s.NDB.InsertOne(ctx, notification); err != nil {
			zap.S().Errorw("failed to create digest notification", "userId", admin.UID, "error", err)
			continue
		}
		if admin.Email != "" {
			if err := s.sendDigestEmail(admin.Email, message); err != nil {
				zap.S().Errorw("failed to send digest email", "email", admin.Email, "error", err)
			}
		}
	}
}

func (s *Scheduler) sendDigestEmail(toEmail, body string) error {
	sender := s.sender
	if sender == "" {
		sender = "no-reply@supportapp.example"
	}
	from := mail.NewEmail("Support App Moderation", sender)
	subject := "Moderation queues need attention"
	to := mail.NewEmail("", toEmail)
	plain := body
	html := fmt.Sprintf("<p>%s</p><p>Open the moderation console to review.</p>", body)
	msg := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	_, err := client.Send(msg)
	return err
}
