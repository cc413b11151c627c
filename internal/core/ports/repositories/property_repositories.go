package repositories

import (
	"context"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

// PropertyReader defines read operations for properties
type PropertyReader interface {
	// FindPropertyByID retrieves a property within an organization.
	FindPropertyByID(ctx context.Context, organizationID, propertyID string) (*domain.Property, error)

	// ListPropertiesByOrganization retrieves every property of an organization ordered by name.
	ListPropertiesByOrganization(ctx context.Context, organizationID string) ([]domain.Property, error)
}

// PropertyWriter defines write operations for properties
type PropertyWriter interface {
	SaveProperty(ctx context.Context, property domain.Property) error

	// UpdateProperty updates the mutable fields. The organization of a property never changes.
	UpdateProperty(ctx context.Context, property domain.Property) error

	DeleteProperty(ctx context.Context, organizationID, propertyID string) error
}

// PropertyRepositoryFacade combines all property-related repository interfaces
type PropertyRepositoryFacade interface {
	PropertyReader
	PropertyWriter
}
