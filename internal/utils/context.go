package utils

import (
	"context"

	"github.com/comp2537/web-portal/internal/session"
)

type contextKey string

const ContextSessionKey contextKey = "session"

func GetSessionFromContext(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(ContextSessionKey).(session.Session)
	return sess, ok
}

func WithSession(ctx context.Context, sess session.Session) context.Context {
	return context.WithValue(ctx, ContextSessionKey, sess)
}
