package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/studentbite/backend/internal/models"
)

const testSecret = "test-secret"

func TestRegisterCreatesStudent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, time.Hour)

	user, err := svc.Register("alex", "alex@example.com", "pass123")
	require.NoError(t, err)

	assert.Equal(t, models.RoleStudent, user.Role)
	assert.Zero(t, user.Points)
	assert.NotEqual(t, "pass123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")))
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, time.Hour)

	_, err := svc.Register("alex", "alex@example.com", "pass123")
	require.NoError(t, err)

	_, err = svc.Register("alex", "other@example.com", "pass123")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Register("other", "alex@example.com", "pass123")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, time.Hour)

	registered, err := svc.Register("alex", "alex@example.com", "pass123")
	require.NoError(t, err)

	user, token, err := svc.Login("alex", "pass123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, time.Hour)

	_, err := svc.Register("alex", "alex@example.com", "pass123")
	require.NoError(t, err)

	_, _, err = svc.Login("alex", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody", "pass123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminLoginBypassesHash(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, time.Hour)

	// Seeded admin row carries an unrelated hash; the fixed credential wins.
	createUser(t, db, "admin", models.RoleAdmin, 0, "")

	user, token, err := svc.Login("admin", "admin@1234")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestAdminLoginRequiresSeededRow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, time.Hour)

	_, _, err := svc.Login("admin", "admin@1234")
	assert.ErrorIs(t, err, ErrAdminNotSeeded)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, time.Hour)
	other := NewAuthService(db, "another-secret", time.Hour)

	_, err := svc.Register("alex", "alex@example.com", "pass123")
	require.NoError(t, err)
	_, token, err := other.Login("alex", "pass123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, -time.Minute)

	_, err := svc.Register("alex", "alex@example.com", "pass123")
	require.NoError(t, err)
	_, token, err := svc.Login("alex", "pass123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, time.Hour)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
