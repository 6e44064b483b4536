package auth

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/roomboard/internal/repositories/users"
)

// GroupResolver maps a session token to the id of the user's household.
type GroupResolver struct {
	users     users.Repository
	secretKey []byte
}

func NewGroupResolver(users users.Repository, secretKey []byte) *GroupResolver {
	return &GroupResolver{users: users, secretKey: secretKey}
}

// ResolveGroupID returns the user id of the token and the group that user
// belongs to. A user without a group yields an empty group id.
func (r *GroupResolver) ResolveGroupID(ctx context.Context, token string) (string, string, error) {
	userID, err := GetUserIDFromToken(token, r.secretKey)
	if err != nil {
		return "", "", err
	}

	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return "", "", fmt.Errorf("resolve user %s: %w", userID, err)
	}

	if user.GroupID == nil {
		return user.ID, "", nil
	}
	return user.ID, *user.GroupID, nil
}
