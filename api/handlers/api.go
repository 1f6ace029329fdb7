package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rayseal/supportapp-api/api"
	"github.com/rayseal/supportapp-api/config"
	"github.com/rayseal/supportapp-api/databases"
	"github.com/rayseal/supportapp-api/models"
	"github.com/rayseal/supportapp-api/moderation"
)

var validate = validator.New()

// App stores the router and db connection, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewProfileDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	profiles := databases.NewProfileDatabase(a.dbHelper)
	reports := databases.NewReportDatabase(a.dbHelper)
	flags := databases.NewFlaggedContentDatabase(a.dbHelper)
	posts := databases.NewPostDatabase(a.dbHelper)
	comments := databases.NewCommentDatabase(a.dbHelper)
	chats := databases.NewChatMessageDatabase(a.dbHelper)
	notifications := databases.NewNotificationDatabase(a.dbHelper)
	blocks := databases.NewBlockedUserDatabase(a.dbHelper)

	gate := &moderation.AccessGate{Profiles: profiles, Blocks: blocks}
	executor := &moderation.ActionExecutor{
		Gate:          gate,
		Profiles:      profiles,
		Notifications: notifications,
		ChatMessages:  chats,
	}
	flagService := &moderation.FlagService{
		Analyzer: moderation.NewAnalyzer(moderation.DefaultRuleSet()),
		Gate:     gate,
		Flags:    flags,
		Posts:    posts,
		Comments: comments,
		Chats:    chats,
		Executor: executor,
	}
	reportService := &moderation.ReportService{
		Gate:     gate,
		Reports:  reports,
		Profiles: profiles,
		Posts:    posts,
		Comments: comments,
		Chats:    chats,
		Executor: executor,
	}
	ledger := &moderation.ReactionLedger{Posts: posts, Notifications: notifications}

	report := Report{Service: reportService, RDB: reports}
	flagged := Flagged{Service: flagService, FDB: flags}
	u := User{Executor: executor, Gate: gate, PDB: profiles, BDB: blocks}
	p := Post{PDB: posts, Flags: flagService, Ledger: ledger, Gate: gate}
	c := Comment{CDB: comments, PDB: posts, Flags: flagService, Gate: gate}
	chat := Chat{MDB: chats, Flags: flagService, Gate: gate}
	n := Notification{NDB: notifications}
	watch := ReportWatch{RDB: reports, Gate: gate}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/report", api.Middleware(http.HandlerFunc(report.SubmitReportHandler))).Methods("POST")
	apiCreate.Handle("/reports", api.Middleware(http.HandlerFunc(report.PendingReportsHandler))).Methods("GET")
	apiCreate.Handle("/report/{report_id}/dismiss", api.Middleware(http.HandlerFunc(report.DismissReportHandler))).Methods("PUT")
	apiCreate.Handle("/report/{report_id}/resolve", api.Middleware(http.HandlerFunc(report.ResolveReportHandler))).Methods("PUT")
	apiCreate.Handle("/report/{report_id}/ban", api.Middleware(http.HandlerFunc(report.ResolveWithBanHandler))).Methods("PUT")
	apiCreate.Handle("/report/{report_id}/delete-content", api.Middleware(http.HandlerFunc(report.ResolveWithContentDeletionHandler))).Methods("PUT")

	apiCreate.Handle("/flagged", api.Middleware(http.HandlerFunc(flagged.PendingFlaggedContentHandler))).Methods("GET")
	apiCreate.Handle("/flagged/{flag_id}/approve", api.Middleware(http.HandlerFunc(flagged.ApproveFlaggedContentHandler))).Methods("PUT")
	apiCreate.Handle("/flagged/{flag_id}/reject", api.Middleware(http.HandlerFunc(flagged.RejectFlaggedContentHandler))).Methods("PUT")
	apiCreate.Handle("/flagged/{flag_id}/delete", api.Middleware(http.HandlerFunc(flagged.DeleteFlaggedContentHandler))).Methods("PUT")
	apiCreate.Handle("/flagged/{flag_id}/ban-author", api.Middleware(http.HandlerFunc(flagged.BanAuthorHandler))).Methods("POST")

	apiCreate.Handle("/post", api.Middleware(http.HandlerFunc(p.CreatePostHandler))).Methods("POST")
	apiCreate.Handle("/post/{post_id}/react", api.Middleware(http.HandlerFunc(p.ReactToPostHandler))).Methods("PUT")
	apiCreate.Handle("/comment", api.Middleware(http.HandlerFunc(c.CreateCommentHandler))).Methods("POST")
	apiCreate.Handle("/chat-message", api.Middleware(http.HandlerFunc(chat.CreateChatMessageHandler))).Methods("POST")

	apiCreate.Handle("/user/block", api.Middleware(http.HandlerFunc(u.BlockUserHandler))).Methods("POST")
	apiCreate.Handle("/user/unblock", api.Middleware(http.HandlerFunc(u.UnblockUserHandler))).Methods("POST")
	apiCreate.Handle("/user/{user_id}/ban", api.Middleware(http.HandlerFunc(u.BanUserHandler))).Methods("POST")
	apiCreate.Handle("/user/{user_id}/unban", api.Middleware(http.HandlerFunc(u.UnbanUserHandler))).Methods("POST")
	apiCreate.Handle("/user/{user_id}/warn", api.Middleware(http.HandlerFunc(u.WarnUserHandler))).Methods("POST")
	apiCreate.Handle("/user/{user_id}/promote", api.Middleware(http.HandlerFunc(u.PromoteUserHandler))).Methods("POST")
	apiCreate.Handle("/user/{user_id}/demote", api.Middleware(http.HandlerFunc(u.DemoteUserHandler))).Methods("POST")
	apiCreate.Handle("/user/{user_id}/blocked", api.Middleware(http.HandlerFunc(u.BlockedUsersHandler))).Methods("GET")
	apiCreate.Handle("/users/banned", api.Middleware(http.HandlerFunc(u.BannedUsersHandler))).Methods("GET")

	apiCreate.Handle("/user/{user_id}/notifications", api.Middleware(http.HandlerFunc(n.GetUserNotificationsHandler))).Methods("GET")
	apiCreate.Handle("/user/{user_id}/notifications/{notification_id}/read", api.Middleware(http.HandlerFunc(n.MarkNotificationAsReadHandler))).Methods("PUT")

	r.HandleFunc("/ws/reports", watch.ServeWS)

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("supportapp-api has connected to the database")

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

// Database exposes the connected db helper so main can wire the scheduler
func (a *App) Database() databases.DatabaseHelper {
	return a.dbHelper
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}

// moderationError maps the core's sentinel errors onto HTTP statuses and
// writes the standard error body.
func moderationError(message string, w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, moderation.ErrNotAuthorized):
		code = http.StatusForbidden
	case errors.Is(err, moderation.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, moderation.ErrAlreadyResolved):
		code = http.StatusConflict
	case errors.Is(err, moderation.ErrInvalidReference):
		code = http.StatusBadRequest
	}
	config.ErrorStatus(message, code, w, err)
}
