package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	mocksdb "github.com/rayseal/supportapp-api/databases/mocks"
	"github.com/rayseal/supportapp-api/models"
)

func TestValidateUserSuccess(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	profiles := &mocksdb.ProfileDatabase{}
	profiles.On("FindOne", mock.Anything, bson.M{"email": "jess@example.com"}).
		Return(&models.Profile{UID: "user-1", Email: "jess@example.com", Password: string(hash)}, nil)

	m := MiddlewareDB{DB: profiles}
	req, _ := http.NewRequest("GET", "/api/v1/auth/token", nil)

	info, err := m.ValidateUser(context.TODO(), req, "jess@example.com", "correct-horse")

	assert.NoError(t, err)
	assert.Equal(t, "user-1", info.ID())
	assert.Equal(t, "jess@example.com", info.UserName())
}

func TestValidateUserWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	profiles := &mocksdb.ProfileDatabase{}
	profiles.On("FindOne", mock.Anything, bson.M{"email": "jess@example.com"}).
		Return(&models.Profile{UID: "user-1", Email: "jess@example.com", Password: string(hash)}, nil)

	m := MiddlewareDB{DB: profiles}
	req, _ := http.NewRequest("GET", "/api/v1/auth/token", nil)

	info, err := m.ValidateUser(context.TODO(), req, "jess@example.com", "battery-staple")

	assert.Error(t, err)
	assert.Nil(t, info)
}

func TestValidateUserUnknownEmail(t *testing.T) {
	profiles := &mocksdb.ProfileDatabase{}
	profiles.On("FindOne", mock.Anything, mock.Anything).
		Return(nil, errors.New("mongo: no documents in result"))

	m := MiddlewareDB{DB: profiles}
	req, _ := http.NewRequest("GET", "/api/v1/auth/token", nil)

	info, err := m.ValidateUser(context.TODO(), req, "ghost@example.com", "whatever")

	assert.Error(t, err)
	assert.Nil(t, info)
}
