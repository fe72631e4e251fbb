package providerRepo

import (
	"context"

	"servana/models"
)

// ProviderRepository defines persistence operations for provider records.
type ProviderRepository interface {
	Create(ctx context.Context, provider *models.Provider) error
	GetByID(ctx context.Context, providerID string) (*models.Provider, error)
	Update(ctx context.Context, provider *models.Provider) error
}
