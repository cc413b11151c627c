package services

import (
	"context"

	"github.com/SscSPs/property_ledger_app/internal/core/domain"
)

// PropertyReaderSvc defines read operations for properties
type PropertyReaderSvc interface {
	GetProperty(ctx context.Context, tc domain.TenancyContext, propertyID string) (*domain.Property, error)
	ListProperties(ctx context.Context, tc domain.TenancyContext) ([]domain.Property, error)
}

// PropertyWriterSvc defines write operations for properties
type PropertyWriterSvc interface {
	CreateProperty(ctx context.Context, tc domain.TenancyContext, in domain.PropertyInput) (*domain.Property, error)
	UpdateProperty(ctx context.Context, tc domain.TenancyContext, propertyID string, in domain.PropertyInput) (*domain.Property, error)
	DeleteProperty(ctx context.Context, tc domain.TenancyContext, propertyID string) error
}

// PropertySvcFacade combines all property-related service interfaces
type PropertySvcFacade interface {
	PropertyReaderSvc
	PropertyWriterSvc
}
