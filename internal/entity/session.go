package entity

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of the signed session cookie. SessionID keys the
// server-side record in Redis so a session can be revoked before it expires.
type Claims struct {
	jwt.RegisteredClaims

	EmployeeID int64  `json:"employee_id"`
	Username   string `json:"username"`
	IsAdmin    bool   `json:"is_admin"`
	SessionID  string `json:"session_id"`
}

// Actor is the authenticated identity of the current request.
type Actor struct {
	EmployeeID int64
	Username   string
	IsAdmin    bool
	SessionID  string
}

type actorKey struct{}

func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns nil for anonymous requests.
func ActorFromContext(ctx context.Context) *Actor {
	actor, _ := ctx.Value(actorKey{}).(*Actor)
	return actor
}
