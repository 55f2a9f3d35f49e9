package authservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storyforge/storyforge/internal/domain"
	"github.com/storyforge/storyforge/internal/pg"
	"github.com/storyforge/storyforge/pkg/auth"
)

//go:generate mockgen -source=authservice.go -destination=authservice_mock.go -package=authservice

type Repo interface {
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type CreditService interface {
	GrantSignupBonus(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error
}

type Service struct {
	userRepo      Repo
	creditService CreditService
	hashService   auth.HashServiceInterface
	jwtService    auth.JWTServiceInterface
	txManager     pg.TXManager
	signupBonus   decimal.Decimal
}

func New(repo Repo, creditService CreditService, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface, txManager pg.TXManager, signupBonus decimal.Decimal) *Service {
	return &Service{
		userRepo:      repo,
		creditService: creditService,
		hashService:   hashService,
		jwtService:    jwtService,
		txManager:     txManager,
		signupBonus:   signupBonus,
	}
}

func (s *Service) Register(ctx context.Context, login, password string) (*domain.User, error) {
	existingUser, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		zap.L().Info("user already exists, login: ", zap.String("login", login))
		return nil, errors.New("username already taken")
	}
	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password: ", zap.Error(err))
		return nil, err
	}
	user := &domain.User{
		Login:        login,
		PasswordHash: hashedPassword,
	}

	// The user row and the bonus batch commit together; a failed grant
	// must not leave a registered user without the bonus.
	var newUser *domain.User
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		newUser, err = s.userRepo.Create(ctx, user)
		if err != nil {
			zap.L().Error("can't create user: ", zap.Error(err))
			return err
		}
		if err = s.creditService.GrantSignupBonus(ctx, newUser.ID, s.signupBonus); err != nil {
			zap.L().Error("can't grant signup bonus: ", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("user successfully registered", zap.String("login", login))
	return newUser, nil
}

func (s *Service) Authenticate(ctx context.Context, login, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil || user == nil {
		zap.L().Error("invalid credentials", zap.Error(err))
		return nil, errors.New("invalid credentials")
	}
	if ok := s.hashService.ComparePassword(user.PasswordHash, password); !ok {
		zap.L().Error("invalid credentials", zap.String("login", login))
		return nil, errors.New("invalid credentials")
	}
	zap.L().Info("user successfully authenticated", zap.String("login", login))
	return user, nil
}

func (s *Service) GenerateToken(userID uuid.UUID) (string, error) {
	expirationTime := time.Now().Add(15 * time.Minute)

	token, err := s.jwtService.GenerateJWT(userID, expirationTime)
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", err
	}
	return token, nil
}
