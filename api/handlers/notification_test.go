package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rayseal/supportapp-api/api/handlers"
	mocksdb "github.com/rayseal/supportapp-api/databases/mocks"
	"github.com/rayseal/supportapp-api/models"
)

func TestNotification_GetUserNotificationsHandlerSuccess(t *testing.T) {
	notifications := &mocksdb.NotificationDatabase{}
	notifications.On("Find", mock.Anything, bson.M{"userId": "user-1"}).Return([]models.Notification{
		{ID: "notif-1", UserID: "user-1", Type: models.NotificationWarning},
	}, nil)

	req, err := http.NewRequest("GET", "/api/v1/user/user-1/notifications", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"user_id": "user-1"})

	u := handlers.Notification{NDB: notifications}
	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.GetUserNotificationsHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	var got []models.Notification
	_ = json.Unmarshal(rr.Body.Bytes(), &got)
	assert.Len(t, got, 1)
	assert.Equal(t, "notif-1", got[0].ID)
}

func TestNotification_GetUserNotificationsHandlerEmptyResponse(t *testing.T) {
	notifications := &mocksdb.NotificationDatabase{}
	notifications.On("Find", mock.Anything, bson.M{"userId": "user-1"}).Return(nil, nil)

	req, err := http.NewRequest("GET", "/api/v1/user/user-1/notifications", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"user_id": "user-1"})

	u := handlers.Notification{NDB: notifications}
	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.GetUserNotificationsHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	expected := "[]"
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: \ngot: %v \nwant: %v", rr.Body.String(), expected)
	}
}

func TestNotification_MarkNotificationAsReadHandlerSuccess(t *testing.T) {
	notifications := &mocksdb.NotificationDatabase{}
	notifications.On("UpdateOne", mock.Anything,
		bson.M{"_id": "notif-1", "userId": "user-1"},
		bson.M{"$set": bson.M{"isRead": true}}).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil)

	req, err := http.NewRequest("PUT", "/api/v1/user/user-1/notifications/notif-1/read", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"user_id": "user-1", "notification_id": "notif-1"})

	u := handlers.Notification{NDB: notifications}
	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.MarkNotificationAsReadHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	expected := `{"message": "notification marked as read"}`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: \ngot: %v \nwant: %v", rr.Body.String(), expected)
	}
}

func TestNotification_MarkNotificationAsReadHandlerNotFound(t *testing.T) {
	notifications := &mocksdb.NotificationDatabase{}
	notifications.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 0}, nil)

	req, err := http.NewRequest("PUT", "/api/v1/user/user-1/notifications/ghost/read", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"user_id": "user-1", "notification_id": "ghost"})

	u := handlers.Notification{NDB: notifications}
	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.MarkNotificationAsReadHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusNotFound {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusNotFound)
	}
}
