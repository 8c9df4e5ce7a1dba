package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/boutique/internal/config"
	"github.com/mamadbah2/boutique/internal/domain/models"
)

func newTestService() *Service {
	svc := NewService(config.AuthConfig{Email: "rao@rao.com", Password: "1234", TokenSecret: "secret"}, nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestLogin_Success(t *testing.T) {
	svc := newTestService()

	token, sess, err := svc.Login("rao@rao.com", "1234")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "rao@rao.com", sess.Email)

	got, err := svc.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, sess.Email, got.Email)
	assert.True(t, sess.IssuedAt.Equal(got.IssuedAt))
}

func TestLogin_WrongCredentials(t *testing.T) {
	svc := newTestService()

	for _, tc := range []struct{ email, password string }{
		{"rao@rao.com", "wrong"},
		{"someone@else.com", "1234"},
		{"", ""},
	} {
		_, _, err := svc.Login(tc.email, tc.password)
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	}
}

func TestAuthenticate_Rejects(t *testing.T) {
	svc := newTestService()

	_, err := svc.Authenticate("")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	_, err = svc.Authenticate("garbage")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	other := NewService(config.AuthConfig{Email: "rao@rao.com", Password: "1234", TokenSecret: "other"}, nil)
	token, _, err := other.Login("rao@rao.com", "1234")
	require.NoError(t, err)
	_, err = svc.Authenticate(token)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}
