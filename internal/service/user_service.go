package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aebalz/mindful-journal/internal/auth"
	"github.com/aebalz/mindful-journal/internal/model"
	"github.com/aebalz/mindful-journal/internal/repository"
)

// UserServiceInterface defines the interface for account operations.
type UserServiceInterface interface {
	Register(ctx context.Context, in model.UserCreate) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.Token, error)
	// Authenticate resolves a bearer token to an active user.
	Authenticate(ctx context.Context, token string) (*model.User, error)
	Export(ctx context.Context, userID uuid.UUID) (*model.UserDataExport, error)
	Delete(ctx context.Context, userID uuid.UUID) (*model.UserDeleteResponse, error)
}

// UserService implements UserServiceInterface.
type UserService struct {
	users       repository.UserRepositoryInterface
	entries     repository.JournalRepositoryInterface
	articles    repository.ArticleRepositoryInterface
	tokens      *auth.TokenManager
	invalidator Invalidator
	validate    *validator.Validate
	log         zerolog.Logger
}

// NewUserService creates a new UserService. invalidator may be nil.
func NewUserService(
	users repository.UserRepositoryInterface,
	entries repository.JournalRepositoryInterface,
	articles repository.ArticleRepositoryInterface,
	tokens *auth.TokenManager,
	invalidator Invalidator,
	log zerolog.Logger,
) UserServiceInterface {
	return &UserService{
		users:       users,
		entries:     entries,
		articles:    articles,
		tokens:      tokens,
		invalidator: invalidator,
		validate:    validator.New(),
		log:         log.With().Str("component", "users").Logger(),
	}
}

func (s *UserService) Register(ctx context.Context, in model.UserCreate) (*model.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	if _, err := s.users.GetUserByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.users.CreateUser(ctx, &model.User{
		Email:          in.Email,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		HashedPassword: hash,
		IsActive:       true,
	})
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*model.Token, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(user.HashedPassword, password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &model.Token{AccessToken: token, TokenType: "bearer"}, nil
}

func (s *UserService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	id, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.users.GetUserByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}
	return user, nil
}

// Export returns everything stored for the user.
func (s *UserService) Export(ctx context.Context, userID uuid.UUID) (*model.UserDataExport, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.ListAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	articles, err := s.articles.ListAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &model.UserDataExport{UserInfo: *user, JournalEntries: entries, Articles: articles}, nil
}

// Delete removes the account; entries and articles go with it.
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) (*model.UserDeleteResponse, error) {
	count, err := s.users.DeleteUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, userID)
	}

	s.log.Info().Str("user_id", userID.String()).Int64("deleted_entries", count).Msg("user deleted")
	return &model.UserDeleteResponse{
		Message:           "User account and all associated data deleted successfully",
		DeletedUserID:     userID,
		DeletedEntryCount: count,
	}, nil
}
