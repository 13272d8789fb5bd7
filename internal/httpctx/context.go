package httpctx

import (
	"context"

	"brightsteps/backend/internal/models"
)

type ctxKey string

const userKey ctxKey = "user"

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) *models.User {
	if val := ctx.Value(userKey); val != nil {
		if user, ok := val.(*models.User); ok {
			return user
		}
	}
	return nil
}
