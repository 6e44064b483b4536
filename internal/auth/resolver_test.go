package auth

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/roomboard/internal/common"
	"github.com/dmitrijs2005/roomboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers struct {
	byID map[string]*models.User
}

func (s *stubUsers) ListByGroup(ctx context.Context, groupID string) ([]models.User, error) {
	return nil, nil
}

func (s *stubUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, common.ErrUserNotFound
	}
	return u, nil
}

func TestGroupResolver_ResolveGroupID(t *testing.T) {
	secret := []byte("secret")
	group := "g1"
	repo := &stubUsers{byID: map[string]*models.User{
		"u1": {ID: "u1", Name: "Alice", GroupID: &group},
		"u2": {ID: "u2", Name: "Newcomer"},
	}}
	r := NewGroupResolver(repo, secret)

	token := func(userID string) string {
		tok, err := GenerateToken(userID, secret, time.Hour)
		require.NoError(t, err)
		return tok
	}

	tests := []struct {
		name      string
		token     string
		wantUser  string
		wantGroup string
		wantErr   error
	}{
		{name: "member", token: token("u1"), wantUser: "u1", wantGroup: "g1"},
		{name: "no group yet", token: token("u2"), wantUser: "u2", wantGroup: ""},
		{name: "unknown user", token: token("u9"), wantErr: common.ErrUserNotFound},
		{name: "bad token", token: "garbage", wantErr: common.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, groupID, err := r.ResolveGroupID(context.Background(), tt.token)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, userID)
			assert.Equal(t, tt.wantGroup, groupID)
		})
	}
}
