// Package auth содержит бизнес-логику учётных записей: регистрацию, вход,
// выдачу профиля и проверку токенов доступа.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/oforha-backend/internal/events"
	"github.com/magabrotheeeer/oforha-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/oforha-backend/internal/lib/password"
	"github.com/magabrotheeeer/oforha-backend/internal/lib/sl"
	"github.com/magabrotheeeer/oforha-backend/internal/models"
	"github.com/magabrotheeeer/oforha-backend/internal/storage/repository"
)

var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrAccountNotFound = errors.New("account not found")
	ErrInvalidPassword = errors.New("invalid password")
)

// AccountRepository описывает хранилище учётных записей.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account *models.Account) error
	GetAccountByID(ctx context.Context, id string) (*models.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
}

// Cache описывает кэш представлений профиля.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service отвечает за регистрацию, вход и профиль.
type Service struct {
	log        *slog.Logger
	accounts   AccountRepository
	tokens     jwt.Maker
	cache      Cache
	profileTTL time.Duration
	events     events.Publisher
}

// New создаёт сервис учётных записей.
func New(log *slog.Logger, accounts AccountRepository, tokens jwt.Maker, cache Cache, profileTTL time.Duration, publisher events.Publisher) *Service {
	return &Service{
		log:        log,
		accounts:   accounts,
		tokens:     tokens,
		cache:      cache,
		profileTTL: profileTTL,
		events:     publisher,
	}
}

// Signup регистрирует учётную запись и сразу выдаёт токен доступа.
// Сначала проверяется почта, затем имя пользователя.
func (s *Service) Signup(ctx context.Context, username, email, rawPassword string) (*models.Account, string, error) {
	const op = "services.auth.Signup"

	if err := s.ensureFree(ctx, op, s.accounts.GetAccountByEmail, email, ErrEmailTaken); err != nil {
		return nil, "", err
	}
	if err := s.ensureFree(ctx, op, s.accounts.GetAccountByUsername, username, ErrUsernameTaken); err != nil {
		return nil, "", err
	}

	hash, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	account := models.NewAccount(username, email, hash)
	if err = s.accounts.SaveAccount(ctx, account); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.tokens.GenerateToken(account.ID, account.Username, account.Email)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	events.Emit(ctx, s.log, s.events, events.AccountCreated, account.View())
	return account, token, nil
}

func (s *Service) ensureFree(ctx context.Context, op string, lookup func(context.Context, string) (*models.Account, error), value string, taken error) error {
	_, err := lookup(ctx, value)
	switch {
	case err == nil:
		return taken
	case errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// Login проверяет пароль и выдаёт токен доступа.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (*models.Account, string, error) {
	const op = "services.auth.Login"

	account, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrAccountNotFound
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if !password.Matches(account.PasswordHash, rawPassword) {
		return nil, "", ErrInvalidPassword
	}

	token, err := s.tokens.GenerateToken(account.ID, account.Username, account.Email)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return account, token, nil
}

func profileKey(accountID string) string {
	return "profile:" + accountID
}

// Profile возвращает профиль учётной записи. Ошибки кэша не мешают ответу.
func (s *Service) Profile(ctx context.Context, accountID string) (models.AccountView, error) {
	const op = "services.auth.Profile"
	log := s.log.With(slog.String("op", op), slog.String("account_id", accountID))

	var view models.AccountView
	found, err := s.cache.Get(ctx, profileKey(accountID), &view)
	if err != nil {
		log.Warn("failed to read profile from cache", sl.Err(err))
	}
	if found {
		return view, nil
	}

	account, err := s.accounts.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.AccountView{}, ErrAccountNotFound
		}
		return models.AccountView{}, fmt.Errorf("%s: %w", op, err)
	}

	view = account.Profile()
	if err = s.cache.Set(ctx, profileKey(accountID), view, s.profileTTL); err != nil {
		log.Warn("failed to cache profile", sl.Err(err))
	}
	return view, nil
}

// VerifyToken проверяет токен доступа и возвращает его данные.
func (s *Service) VerifyToken(token string) (*jwt.CustomClaims, error) {
	return s.tokens.ParseToken(token)
}
