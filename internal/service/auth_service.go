package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// wrongPasswordDelay slows down credential guessing. Variable so tests can
// zero it.
var wrongPasswordDelay = 3 * time.Second

// AuthService is the identity provider: it authenticates teachers against
// their stored bcrypt hash and maps session tokens to principal ids.
type AuthService struct {
	users      UserStore
	sessions   SessionStore
	sessionTTL time.Duration
	logger     *zap.Logger
}

func NewAuthService(users UserStore, sessions SessionStore, sessionTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Login verifies the teacher's password and issues a session token.
func (s *AuthService) Login(ctx context.Context, teacherID, password string) (string, error) {
	teacher, err := s.users.GetTeacher(ctx, teacherID)
	if err != nil {
		return "", fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return "", ErrTeacherNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(teacher.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Login failed", zap.String("teacher_id", teacherID))
		select {
		case <-time.After(wrongPasswordDelay):
		case <-ctx.Done():
		}
		return "", ErrWrongPassword
	}

	token := uuid.NewString()
	if err := s.sessions.Insert(ctx, token, teacher.ID, time.Now().Add(s.sessionTTL)); err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}

	s.logger.Info("Teacher logged in", zap.String("teacher_id", teacherID))
	return token, nil
}

// PrincipalID resolves a session token to the authenticated principal id.
// Returns "" when the token is unknown or expired.
func (s *AuthService) PrincipalID(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", nil
	}
	userID, err := s.sessions.GetUserID(ctx, token)
	if err != nil {
		return "", fmt.Errorf("resolve session: %w", err)
	}
	return userID, nil
}

// Logout invalidates a session token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
