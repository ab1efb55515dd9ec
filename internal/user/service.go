package user

import (
	"context"

	"tokomart-be/internal/config"
	"tokomart-be/internal/logger"
	"tokomart-be/internal/retry"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, params RegisterParams) (*User, error)
	Login(ctx context.Context, username, password string) (string, error)
	AdminLogin(ctx context.Context, username, password string) (string, *User, error)
	VerifyToken(ctx context.Context, token string) (*User, error)
	VerifyAdminToken(ctx context.Context, token string) (*User, error)
}

type service struct {
	repo Repository
	cfg  *config.Config
}

func NewService(repo Repository, cfg *config.Config) Service {
	return &service{repo: repo, cfg: cfg}
}

func (s *service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
		zap.String("username", params.Username),
	)

	hashed, err := HashPassword(params.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u := &User{
		TenantID:    s.cfg.TenantID,
		Username:    params.Username,
		Email:       params.Email,
		Password:    hashed,
		FullName:    params.FullName,
		Address:     params.Address,
		PhoneNumber: params.PhoneNumber,
	}

	created, err := s.repo.Insert(ctx, u)
	if err != nil {
		log.Error("failed to insert user", zap.Error(err))
		return nil, err
	}

	log.Info("user registered", zap.String("user_id", created.ID))
	return created, nil
}

// Login checks credentials and issues a token. Admin accounts get a token
// signed with the admin secret, everyone else with the user secret.
func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
		zap.String("username", username),
	)

	u, err := retry.Do(ctx, "user.GetByUsername", func(ctx context.Context) (*User, error) {
		return s.repo.GetByUsername(ctx, s.cfg.TenantID, username)
	})
	if err != nil {
		log.Error("failed to fetch user", zap.Error(err))
		return "", err
	}
	if u == nil {
		log.Warn("user not found")
		return "", ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Warn("invalid password attempt", zap.String("user_id", u.ID))
		return "", ErrInvalidCredentials
	}

	secret := s.cfg.JWTSecret
	if u.IsAdmin {
		secret = s.cfg.AdminJWTSecret
	}

	token, err := GenerateJWT(u, secret)
	if err != nil {
		log.Error("failed to sign token", zap.Error(err))
		return "", err
	}

	log.Info("login successful", zap.String("user_id", u.ID), zap.Bool("is_admin", u.IsAdmin))
	return token, nil
}

func (s *service) AdminLogin(ctx context.Context, username, password string) (string, *User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AdminLogin"),
		zap.String("username", username),
	)

	u, err := retry.Do(ctx, "user.GetByUsername", func(ctx context.Context) (*User, error) {
		return s.repo.GetByUsername(ctx, s.cfg.AdminTenantID, username)
	})
	if err != nil {
		log.Error("failed to fetch admin user", zap.Error(err))
		return "", nil, err
	}
	if u == nil {
		log.Warn("admin user not found")
		return "", nil, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Warn("invalid password attempt", zap.String("user_id", u.ID))
		return "", nil, ErrInvalidCredentials
	}

	if !u.IsAdmin {
		log.Warn("non-admin attempted admin login", zap.String("user_id", u.ID))
		return "", nil, ErrNotAdmin
	}

	token, err := GenerateJWT(u, s.cfg.AdminJWTSecret)
	if err != nil {
		log.Error("failed to sign admin token", zap.Error(err))
		return "", nil, err
	}

	log.Info("admin login successful", zap.String("user_id", u.ID))
	return token, u, nil
}

func (s *service) VerifyToken(ctx context.Context, token string) (*User, error) {
	return s.verify(ctx, token, s.cfg.JWTSecret)
}

func (s *service) VerifyAdminToken(ctx context.Context, token string) (*User, error) {
	u, err := s.verify(ctx, token, s.cfg.AdminJWTSecret)
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin {
		return nil, ErrNotAdmin
	}
	return u, nil
}

func (s *service) verify(ctx context.Context, token, secret string) (*User, error) {
	claims, err := ParseJWT(token, secret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	u, err := s.repo.GetByID(ctx, claims.TenantID, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidToken
	}
	return u, nil
}
