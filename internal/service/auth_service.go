package service

import (
	"context"
	"errors"
	"time"

	"notepad-api/internal/dto"
	"notepad-api/internal/entity"
	"notepad-api/internal/pkg/apperror"
	"notepad-api/internal/pkg/logger"
	"notepad-api/internal/repository/memory"
	"notepad-api/internal/repository/specification"
	"notepad-api/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is deliberately the same for a missing user and a
// wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	uowFactory    unitofwork.RepositoryFactory
	revokedTokens *memory.RevokedTokenStore
	jwtSecret     string
	tokenTTL      time.Duration
	log           logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	revokedTokens *memory.RevokedTokenStore,
	jwtSecret string,
	tokenTTL time.Duration,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:    uowFactory,
		revokedTokens: revokedTokens,
		jwtSecret:     jwtSecret,
		tokenTTL:      tokenTTL,
		log:           log,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("email_taken", "email already registered")
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
		// Unique index on email backstops a concurrent registration.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("email_taken", "email already registered")
		}
		return nil, err
	}

	s.log.Info("auth", "user registered", map[string]interface{}{
		"user_id": user.Id,
	})

	return &dto.RegisterResponse{Id: user.Id, Email: user.Email}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"exp":     expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	s.log.Info("auth", "user logged in", map[string]interface{}{
		"user_id": user.Id,
	})

	return &dto.LoginResponse{
		Token:     signedToken,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func (s *authService) Logout(ctx context.Context, tokenStr string) error {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		// An invalid token has nothing to revoke.
		return nil
	}

	until := time.Now().Add(s.tokenTTL)
	if exp, err := token.Claims.GetExpirationTime(); err == nil && exp != nil {
		until = exp.Time
	}

	s.revokedTokens.Revoke(tokenStr, until)
	return nil
}
