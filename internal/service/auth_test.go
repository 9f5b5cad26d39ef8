package service

import (
	"bitwise74/files-api/internal/session"
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateLoginResolveLogout(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	id := e.register(t, "bob@dylan.com")

	token, err := e.gate.Login(ctx, "bob@dylan.com", "secret")
	require.NoError(t, err)
	_, err = uuid.Parse(token)
	require.NoError(t, err)

	got, err := e.gate.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	require.NoError(t, e.gate.Logout(ctx, token))

	_, err = e.gate.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	assert.ErrorIs(t, e.gate.Logout(ctx, token), ErrUnauthenticated)
}

func TestGateRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.register(t, "bob@dylan.com")

	_, err := e.gate.Login(ctx, "bob@dylan.com", "nope")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = e.gate.Login(ctx, "alice@dylan.com", "secret")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = e.gate.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestGateConcurrentSessions(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	id := e.register(t, "bob@dylan.com")

	t1, err := e.gate.Login(ctx, "bob@dylan.com", "secret")
	require.NoError(t, err)
	t2, err := e.gate.Login(ctx, "bob@dylan.com", "secret")
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)

	require.NoError(t, e.gate.Logout(ctx, t1))

	got, err := e.gate.Resolve(ctx, t2)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestGateResolveUnknown(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.gate.Resolve(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = e.gate.Resolve(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// Garbage left in the store
	require.NoError(t, e.sessions.Set(ctx, session.Key("bad"), "not-a-number", time.Minute))
	_, err = e.gate.Resolve(ctx, "bad")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	assert.ErrorIs(t, e.gate.Logout(ctx, ""), ErrUnauthenticated)
}

func TestGateSessionExpires(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.register(t, "bob@dylan.com")

	gate := NewGate(e.users, e.sessions, testArgon(), 50*time.Millisecond)

	token, err := gate.Login(ctx, "bob@dylan.com", "secret")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := gate.Resolve(ctx, token)
		return err == ErrUnauthenticated
	}, 3*time.Second, 20*time.Millisecond)
}

func TestParseBasic(t *testing.T) {
	b64 := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

	email, password, err := ParseBasic("Basic " + b64("bob@dylan.com:toto1234!"))
	require.NoError(t, err)
	assert.Equal(t, "bob@dylan.com", email)
	assert.Equal(t, "toto1234!", password)

	_, password, err = ParseBasic("basic " + b64("bob@dylan.com:a:b"))
	require.NoError(t, err)
	assert.Equal(t, "a:b", password)

	for _, h := range []string{
		"",
		"Basic",
		"Bearer " + b64("bob@dylan.com:x"),
		"Basic %%%",
		"Basic " + b64("no-colon"),
		"Basic " + b64(":secret"),
		"Basic " + b64("bob@dylan.com:"),
	} {
		_, _, err := ParseBasic(h)
		assert.ErrorIs(t, err, ErrUnauthenticated, h)
	}
}
