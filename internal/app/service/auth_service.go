package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cm_sheet/internal/common"
	"cm_sheet/internal/common/security"
	"cm_sheet/internal/domain/model"
	"cm_sheet/internal/domain/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SyncEnqueuer schedules a background judge sync.
type SyncEnqueuer interface {
	Enqueue(ctx context.Context, userID string) error
}

type AuthService struct {
	userRepo repository.UserRepository
	syncer   SyncEnqueuer
	logger   *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, syncer SyncEnqueuer, logger *zap.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, syncer: syncer, logger: logger}
}

type SignupRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	CFHandle string `json:"cf_handle"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// UsernameFromName derives the login key from a display name: lowercased,
// with every whitespace character removed.
func UsernameFromName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	handle := strings.TrimSpace(req.CFHandle)
	username := UsernameFromName(name)
	if username == "" || req.Password == "" || handle == "" {
		return nil, fmt.Errorf("name, password and cf_handle are required: %w", common.ErrBadRequest)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       username,
		DisplayName:    name,
		CFHandle:       handle,
		HashedPassword: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	s.logger.Info("User signed up", zap.String("user_id", user.ID), zap.String("cf_handle", user.CFHandle))
	s.enqueueSync(ctx, user.ID)

	user.HashedPassword = "" // Clear password before returning
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	username := UsernameFromName(req.Name)
	if username == "" || req.Password == "" {
		return nil, fmt.Errorf("name and password are required: %w", common.ErrBadRequest)
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	s.enqueueSync(ctx, user.ID)

	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

// Me restores a session from the user id carried by a token.
func (s *AuthService) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user.HashedPassword = ""
	return user, nil
}

// enqueueSync refreshes judge progress in the background. Failing to enqueue
// does not fail the sign-in.
func (s *AuthService) enqueueSync(ctx context.Context, userID string) {
	if s.syncer == nil {
		return
	}
	if err := s.syncer.Enqueue(ctx, userID); err != nil {
		s.logger.Warn("Failed to enqueue judge sync", zap.String("user_id", userID), zap.Error(err))
	}
}
