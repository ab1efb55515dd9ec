package tenant

import (
	"context"

	"tokomart-be/internal/authz"
	"tokomart-be/internal/logger"
	"tokomart-be/internal/retry"

	"go.uber.org/zap"
)

type Service interface {
	Get(ctx context.Context, tenantID string) (*Tenant, error)
	Create(ctx context.Context, requester authz.Identity, params CreateTenantParams) (*Tenant, error)
	Edit(ctx context.Context, requester authz.Identity, tenantID string, params EditTenantParams) (*Tenant, error)
	Delete(ctx context.Context, requester authz.Identity, tenantID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, tenantID string) (*Tenant, error) {
	t, err := retry.Do(ctx, "tenant.GetByID", func(ctx context.Context) (*Tenant, error) {
		return s.repo.GetByID(ctx, tenantID)
	})
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTenantNotFound
	}
	return t, nil
}

func (s *service) Create(ctx context.Context, requester authz.Identity, params CreateTenantParams) (*Tenant, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateTenant"),
		zap.String("owner_id", params.OwnerID),
	)

	ownerID := params.OwnerID
	if ownerID == "" {
		ownerID = requester.UserID
	}

	t, err := s.repo.Insert(ctx, &Tenant{OwnerID: ownerID, Name: params.Name})
	if err != nil {
		log.Error("failed to create tenant", zap.Error(err))
		return nil, err
	}

	log.Info("tenant created", zap.String("tenant_id", t.ID))
	return t, nil
}

func (s *service) Edit(ctx context.Context, requester authz.Identity, tenantID string, params EditTenantParams) (*Tenant, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "EditTenant"),
		zap.String("tenant_id", tenantID),
	)

	existing, err := s.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if err := authz.RequireOwner(existing.OwnerID, requester.UserID); err != nil {
		log.Warn("unauthorized tenant edit attempt", zap.String("user_id", requester.UserID))
		return nil, ErrNotTenantOwner
	}

	t, err := s.repo.Update(ctx, tenantID, params)
	if err != nil {
		log.Error("failed to edit tenant", zap.Error(err))
		return nil, err
	}

	log.Info("tenant edited")
	return t, nil
}

func (s *service) Delete(ctx context.Context, requester authz.Identity, tenantID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteTenant"),
		zap.String("tenant_id", tenantID),
	)

	existing, err := s.Get(ctx, tenantID)
	if err != nil {
		return err
	}

	if err := authz.RequireOwner(existing.OwnerID, requester.UserID); err != nil {
		log.Warn("unauthorized tenant delete attempt", zap.String("user_id", requester.UserID))
		return ErrNotTenantOwner
	}

	if err := s.repo.Delete(ctx, tenantID); err != nil {
		log.Error("failed to delete tenant", zap.Error(err))
		return err
	}

	log.Info("tenant deleted")
	return nil
}
