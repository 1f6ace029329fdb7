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
)

// Notification handles notification reads
type Notification struct {
	NDB databases.NotificationDatabase
}

// GetUserNotificationsHandler returns the user's notifications
func (n Notification) GetUserNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	notifications, err := n.NDB.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		config.ErrorStatus("failed to get notifications", http.StatusInternalServerError, w, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	b, err := json.Marshal(notifications)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MarkNotificationAsReadHandler marks a single notification as read
func (n Notification) MarkNotificationAsReadHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["user_id"]
	notificationID := vars["notification_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := n.NDB.UpdateOne(ctx,
		bson.M{"_id": notificationID, "userId": userID},
		bson.M{"$set": bson.M{"isRead": true}})
	if err != nil {
		config.ErrorStatus("failed to mark notification as read", http.StatusInternalServerError, w, err)
		return
	}
	if res != nil && res.MatchedCount == 0 {
		config.ErrorStatus("notification not found", http.StatusNotFound, w, nil)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "notification marked as read"}`))
}
