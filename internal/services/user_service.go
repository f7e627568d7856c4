package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/repositories"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{3,50}$`)

type UserService interface {
	Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListResumes(ctx context.Context, userID uuid.UUID) ([]models.Resume, error)
}

type userService struct {
	userRepo   repositories.UserRepository
	resumeRepo repositories.ResumeRepository
}

func NewUserService(userRepo repositories.UserRepository, resumeRepo repositories.ResumeRepository) UserService {
	return &userService{
		userRepo:   userRepo,
		resumeRepo: resumeRepo,
	}
}

// Create implements UserService. Usernames are 3 to 50 characters of
// letters, digits, dot, underscore or dash, and must be unique.
func (s *userService) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if !usernamePattern.MatchString(username) {
		return nil, fmt.Errorf("%w: username must be 3-50 letters, digits, '.', '_' or '-'", ErrValidation)
	}

	user := &models.User{
		ID:        uuid.New(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username %q is already taken", ErrValidation, username)
		}
		return nil, err
	}
	return user, nil
}

// Get implements UserService.
func (s *userService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// ListResumes implements UserService.
func (s *userService) ListResumes(ctx context.Context, userID uuid.UUID) ([]models.Resume, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.resumeRepo.FindByUser(ctx, userID)
}
