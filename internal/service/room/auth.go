package room

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/watchtogether/server/internal/repository/room"
)

type iSecretSource interface {
	GetRoom(context.Context, string) (room.Room, error)
}

// secretAuthorizer is the default scheme: the host token is the room's
// stored secret, compared for equality. A missing room verifies to false so
// callers cannot distinguish it from a wrong token.
type secretAuthorizer struct {
	rooms iSecretSource
}

func NewSecretAuthorizer(rooms iSecretSource) *secretAuthorizer {
	return &secretAuthorizer{rooms: rooms}
}

func (a secretAuthorizer) Issue(ctx context.Context, roomID, hostSecret string) (string, error) {
	return hostSecret, nil
}

func (a secretAuthorizer) Verify(ctx context.Context, roomID, token string) (bool, error) {
	rm, err := a.rooms.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get room: %w", err)
	}

	return subtle.ConstantTimeCompare([]byte(rm.HostSecret), []byte(token)) == 1, nil
}

// jwtAuthorizer is the stateless alternative: the token is an HS256-signed
// claim on the room id, verified without touching the store.
type jwtAuthorizer struct {
	secret []byte
}

func NewJWTAuthorizer(secret string) *jwtAuthorizer {
	return &jwtAuthorizer{secret: []byte(secret)}
}

func (a jwtAuthorizer) Issue(ctx context.Context, roomID, hostSecret string) (string, error) {
	claims := jwt.MapClaims{
		"room_id": roomID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(a.secret)
}

func (a jwtAuthorizer) Verify(ctx context.Context, roomID, token string) (bool, error) {
	parsed, err := jwt.ParseWithClaims(token, jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return false, nil
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return false, nil
	}

	claimedRoomID, _ := claims["room_id"].(string)

	return claimedRoomID == roomID, nil
}
