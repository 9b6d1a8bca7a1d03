package auth

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/viniciusmf/gym-management-backend/config"
	"github.com/viniciusmf/gym-management-backend/internal/auditlog"
)

func setupAuthService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Operator{}, &auditlog.AuditLog{}))

	cfg := &config.Config{JWTAccessSecret: "test-secret", JWTAccessTTLHours: 1}
	auditSvc := auditlog.NewService(auditlog.NewRepository(db), logrus.New())
	return NewService(NewRepository(db), cfg, auditSvc)
}

func registerRequest(email, role string) *RegisterRequest {
	return &RegisterRequest{Name: "Op", Email: email, Password: "s3cret-pass", Role: role}
}

func TestRegisterFirstOperatorBecomesAdmin(t *testing.T) {
	svc := setupAuthService(t)

	op, err := svc.Register(registerRequest("first@gym.test", ""), "")

	require.NoError(t, err)
	assert.Equal(t, "admin", op.Role, "the first account runs the gym")
}

func TestRegisterAfterBootstrapDefaultsToStaff(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Register(registerRequest("first@gym.test", ""), "")
	require.NoError(t, err)

	op, err := svc.Register(registerRequest("second@gym.test", ""), "")
	require.NoError(t, err)
	assert.Equal(t, "staff", op.Role)
}

func TestRegisterCannotSelfAssignAdmin(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Register(registerRequest("first@gym.test", ""), "")
	require.NoError(t, err)

	_, err = svc.Register(registerRequest("intruder@gym.test", "admin"), "")
	assert.EqualError(t, err, "admin accounts cannot be self-registered")
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Register(registerRequest("first@gym.test", "owner"), "")

	assert.Error(t, err)
}

func TestLoginChecksPassword(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Register(registerRequest("first@gym.test", ""), "")
	require.NoError(t, err)

	resp, err := svc.Login(&LoginRequest{Email: "first@gym.test", Password: "s3cret-pass"}, "")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(&LoginRequest{Email: "first@gym.test", Password: "wrong"}, "")
	assert.EqualError(t, err, "invalid credentials")
}
