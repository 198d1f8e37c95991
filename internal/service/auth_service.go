package service

import (
	"context"
	"time"

	"notetaking-be/internal/dto"
	"notetaking-be/internal/entity"
	"notetaking-be/internal/pkg/apperror"
	"notetaking-be/internal/pkg/logger"
	"notetaking-be/internal/pkg/token"
	"notetaking-be/internal/repository/specification"
	"notetaking-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error)
}

type authService struct {
	uowFactory    unitofwork.RepositoryFactory
	tokenProvider *token.Provider
	log           logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, tokenProvider *token.Provider, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory:    uowFactory,
		tokenProvider: tokenProvider,
		log:           log,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Check-then-insert runs inside one transaction; the unique index on email
	// backstops concurrent registrations.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.log.Warn("auth", "register attempt with used email", map[string]interface{}{
			"email": req.Email,
		})
		return nil, apperror.Conflict("email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		CreatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.log.Info("auth", "user registered", map[string]interface{}{
		"user_id": user.Id,
		"email":   user.Email,
	})

	return &dto.RegisterResponse{
		Id:       user.Id,
		Email:    user.Email,
		FullName: user.FullName,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	// Unknown email and wrong password return the identical error so callers
	// cannot enumerate accounts.
	if user == nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}

	accessToken, refreshToken, err := s.issueTokenPair(ctx, uow, user)
	if err != nil {
		return nil, err
	}

	s.log.Info("auth", "login succeeded", map[string]interface{}{
		"user_id": user.Id,
	})

	return &dto.LoginResponse{
		FullName:     user.FullName,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.log.Warn("auth", "refresh failed: user not found", map[string]interface{}{
			"email": req.Email,
		})
		return nil, apperror.Unauthorized("invalid refresh token")
	}

	if user.StoredRefreshToken == nil || *user.StoredRefreshToken == "" || *user.StoredRefreshToken != req.RefreshToken {
		s.log.Warn("auth", "invalid refresh token attempt", map[string]interface{}{
			"user_id": user.Id,
		})
		return nil, apperror.Unauthorized("invalid refresh token")
	}

	accessToken, refreshToken, err := s.issueTokenPair(ctx, uow, user)
	if err != nil {
		return nil, err
	}

	s.log.Info("auth", "refresh token rotated", map[string]interface{}{
		"user_id": user.Id,
	})

	return &dto.RefreshTokenResponse{
		FullName:     user.FullName,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// issueTokenPair signs a fresh access token, generates a new opaque refresh
// token and overwrites the stored pair in one update. Overwriting invalidates
// whatever refresh token the user held before.
func (s *authService) issueTokenPair(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User) (string, string, error) {
	accessToken, err := s.tokenProvider.Create(user)
	if err != nil {
		return "", "", err
	}
	refreshToken := uuid.New().String()

	if err := uow.UserRepository().UpdateTokens(ctx, user.Id, accessToken, refreshToken); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}
