package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/rayseal/supportapp-api/api/handlers"
	mocksdb "github.com/rayseal/supportapp-api/databases/mocks"
	"github.com/rayseal/supportapp-api/models"
	"github.com/rayseal/supportapp-api/moderation"
)

func newChatHandler(profiles *mocksdb.ProfileDatabase, chats *mocksdb.ChatMessageDatabase, flags *mocksdb.FlaggedContentDatabase) handlers.Chat {
	gate := &moderation.AccessGate{Profiles: profiles}
	return handlers.Chat{
		MDB: chats,
		Flags: &moderation.FlagService{
			Analyzer: moderation.NewAnalyzer(moderation.DefaultRuleSet()),
			Gate:     gate,
			Flags:    flags,
			Posts:    &mocksdb.PostDatabase{},
			Comments: &mocksdb.CommentDatabase{},
			Chats:    chats,
		},
		Gate: gate,
	}
}

func TestChat_CreateChatMessageHandlerSuccess(t *testing.T) {
	profiles := &mocksdb.ProfileDatabase{}
	chats := &mocksdb.ChatMessageDatabase{}
	flags := &mocksdb.FlaggedContentDatabase{}

	profiles.On("FindOne", mock.Anything, bson.M{"_id": "user-1"}).
		Return(&models.Profile{UID: "user-1"}, nil)
	chats.On("InsertOne", mock.Anything, mock.AnythingOfType("models.ChatMessage")).Return(nil, nil)

	body, _ := json.Marshal(map[string]string{
		"roomId":   "anxiety-support",
		"senderId": "user-1",
		"content":  "welcome to the group",
	})
	req, err := http.NewRequest("POST", "/api/v1/chat-message", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	u := newChatHandler(profiles, chats, flags)
	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.CreateChatMessageHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusCreated {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusCreated)
	}

	var created models.ChatMessage
	_ = json.Unmarshal(rr.Body.Bytes(), &created)
	assert.True(t, created.ContentVisible)
	assert.Equal(t, "anxiety-support", created.RoomID)
	flags.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestChat_CreateChatMessageHandlerFlaggedHidden(t *testing.T) {
	profiles := &mocksdb.ProfileDatabase{}
	chats := &mocksdb.ChatMessageDatabase{}
	flags := &mocksdb.FlaggedContentDatabase{}

	profiles.On("FindOne", mock.Anything, bson.M{"_id": "user-1"}).
		Return(&models.Profile{UID: "user-1"}, nil)
	flags.On("InsertOne", mock.Anything, mock.AnythingOfType("models.FlaggedContent")).Return(nil, nil)
	chats.On("InsertOne", mock.Anything, mock.AnythingOfType("models.ChatMessage")).Return(nil, nil)

	body, _ := json.Marshal(map[string]string{
		"roomId":   "anxiety-support",
		"senderId": "user-1",
		"content":  "my number is 555-867-5309, call me",
	})
	req, err := http.NewRequest("POST", "/api/v1/chat-message", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	u := newChatHandler(profiles, chats, flags)
	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.CreateChatMessageHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusCreated {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusCreated)
	}

	var created models.ChatMessage
	_ = json.Unmarshal(rr.Body.Bytes(), &created)
	assert.False(t, created.ContentVisible)
	flags.AssertNumberOfCalls(t, "InsertOne", 1)
}

func TestChat_CreateChatMessageHandlerBannedSender(t *testing.T) {
	profiles := &mocksdb.ProfileDatabase{}
	chats := &mocksdb.ChatMessageDatabase{}

	profiles.On("FindOne", mock.Anything, bson.M{"_id": "user-1"}).
		Return(&models.Profile{UID: "user-1", IsBanned: true}, nil)

	body, _ := json.Marshal(map[string]string{
		"roomId":   "anxiety-support",
		"senderId": "user-1",
		"content":  "welcome to the group",
	})
	req, err := http.NewRequest("POST", "/api/v1/chat-message", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	u := newChatHandler(profiles, chats, &mocksdb.FlaggedContentDatabase{})
	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.CreateChatMessageHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusForbidden {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusForbidden)
	}
	chats.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}
