package service

import (
	"bitwise74/files-api/internal/session"
	"bitwise74/files-api/internal/store"
	"bitwise74/files-api/pkg/security"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DefaultSessionTTL = 24 * time.Hour

// Gate turns credentials into session tokens and tokens back into users
type Gate struct {
	users    UserRepo
	sessions session.Store
	argon    *security.ArgonHash
	ttl      time.Duration
}

func NewGate(users UserRepo, sessions session.Store, argon *security.ArgonHash, ttl time.Duration) *Gate {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return &Gate{
		users:    users,
		sessions: sessions,
		argon:    argon,
		ttl:      ttl,
	}
}

// Resolve returns the ID of the user a token belongs to
func (g *Gate) Resolve(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, ErrUnauthenticated
	}

	v, err := g.sessions.Get(ctx, session.Key(token))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return 0, ErrUnauthenticated
		}

		return 0, fmt.Errorf("failed to read session, %w", err)
	}

	userID, err := strconv.ParseUint(v, 10, 64)
	if err != nil || userID == 0 {
		return 0, ErrUnauthenticated
	}

	return uint(userID), nil
}

// Login checks the credentials and opens a new session. Every user can hold
// as many sessions as they want
func (g *Gate) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrUnauthenticated
	}

	user, err := g.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUnauthenticated
		}

		return "", fmt.Errorf("failed to find user, %w", err)
	}

	ok, err := g.argon.VerifyPasswd(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("failed to verify password, %w", err)
	}

	if !ok {
		return "", ErrUnauthenticated
	}

	token, err := security.NewSessionToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate token, %w", err)
	}

	err = g.sessions.Set(ctx, session.Key(token), strconv.FormatUint(uint64(user.ID), 10), g.ttl)
	if err != nil {
		return "", fmt.Errorf("failed to store session, %w", err)
	}

	return token, nil
}

// Logout closes the session of token
func (g *Gate) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrUnauthenticated
	}

	err := g.sessions.Del(ctx, session.Key(token))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return ErrUnauthenticated
		}

		return fmt.Errorf("failed to delete session, %w", err)
	}

	return nil
}

// ParseBasic extracts the email and password of a basic authorization
// header. The password may contain colons
func ParseBasic(header string) (email, password string, err error) {
	scheme, encoded, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Basic") {
		return "", "", ErrUnauthenticated
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", "", ErrUnauthenticated
	}

	email, password, ok = strings.Cut(string(raw), ":")
	if !ok || email == "" || password == "" {
		return "", "", ErrUnauthenticated
	}

	return email, password, nil
}
