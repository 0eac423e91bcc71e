package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/collin-smith/CdkApp/internal/models"
	"github.com/collin-smith/CdkApp/internal/repositories"
)

// userService implements the UserService interface
type userService struct {
	userRepo  repositories.UserRepository
	validator *validator.Validate
	logger    *logrus.Logger
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repositories.UserRepository, logger *logrus.Logger) UserService {
	if logger == nil {
		logger = logrus.New()
	}
	return &userService{
		userRepo:  userRepo,
		validator: validator.New(),
		logger:    logger,
	}
}

// SaveUser validates the request and writes the record to {environment}-User.
// The write has completed when SaveUser returns.
func (s *userService) SaveUser(ctx context.Context, environment string, req *SaveUserRequest) (*models.User, error) {
	if req == nil {
		return nil, fmt.Errorf("save user request cannot be nil")
	}

	user := models.NewUser(req.Email, req.FirstName, req.LastName)
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	table := models.UserTable(environment)

	if err := s.userRepo.Put(ctx, table, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"table": table,
		"email": user.Email,
	}).Info("User saved")

	return user, nil
}

// FindUser looks the email up in {environment}-User
func (s *userService) FindUser(ctx context.Context, environment, email string) (*UserLookup, error) {
	if err := s.validator.Struct(&FindUserRequest{Email: email}); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	table := models.UserTable(environment)
	lookup := &UserLookup{
		Log: fmt.Sprintf("Looking for user(%s) within table %s.", email, table),
	}

	user, err := s.userRepo.Get(ctx, table, email)
	switch {
	case repositories.IsNotFound(err):
		lookup.Log += " Did not find that user."
		return lookup, nil
	case err != nil:
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	lookup.User = user
	lookup.Found = true
	lookup.Log += " Found that user."
	return lookup, nil
}
