package service

import (
	"context"
	"fmt"

	"github.com/dtroode/studyprofile-server/internal/logger"
	"github.com/dtroode/studyprofile-server/internal/model"
)

// TokenService issues access tokens and resolves them back to user IDs.
type TokenService struct {
	manager model.TokenManager
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, logger: logger}
}

// Issue mints an access token for userID.
func (s *TokenService) Issue(_ context.Context, userID int64) (string, error) {
	if userID <= 0 {
		return "", fmt.Errorf("invalid user id %d", userID)
	}

	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		s.logger.Error("Token service: failed to issue access token",
			"user_id", userID,
			"error", err.Error())
		return "", fmt.Errorf("issue access: %w", err)
	}

	return access, nil
}

func (s *TokenService) GetUserID(_ context.Context, token string) (int64, error) {
	return s.manager.ParseAccessToken(token)
}
