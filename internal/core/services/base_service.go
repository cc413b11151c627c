package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/property_ledger_app/internal/middleware"
	"github.com/google/uuid"
)

// BaseService provides common functionality for all services
type BaseService struct {
	OrganizationAuthorizer portssvc.OrganizationAuthorizerSvc
	Clock                  func() time.Time
	NewID                  func() string
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the current instant in UTC.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// GenerateID returns a fresh entity id.
func (s *BaseService) GenerateID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

// AuthorizeUser checks if a user has the required role for an organization
func (s *BaseService) AuthorizeUser(ctx context.Context, userID, organizationID string, requiredRole domain.Role) error {
	if userID == "" {
		return apperrors.ErrUnauthenticated
	}
	if s.OrganizationAuthorizer == nil {
		s.LogError(ctx, apperrors.ErrForbidden, "No organization authorizer configured, denying access",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID))
		return apperrors.ErrForbidden
	}
	return s.OrganizationAuthorizer.AuthorizeUserAction(ctx, userID, organizationID, requiredRole)
}

// Authorize re-checks a tenancy context against the membership store. A
// forged or stale context fails here before any read or write.
func (s *BaseService) Authorize(ctx context.Context, tc domain.TenancyContext, requiredRole domain.Role) error {
	if err := s.AuthorizeUser(ctx, tc.UserID, tc.OrganizationID, requiredRole); err != nil {
		if !isAuthError(err) {
			s.LogError(ctx, err, "Authorization check failed",
				slog.String("user_id", tc.UserID),
				slog.String("organization_id", tc.OrganizationID))
		}
		return err
	}
	return nil
}

// ServiceOption configures the shared parts of a service.
type ServiceOption func(*BaseService)

// WithOrganizationAuthorizer sets the authorizer every operation re-checks against.
func WithOrganizationAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) ServiceOption {
	return func(s *BaseService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// WithClock overrides the wall clock.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

// WithIDGenerator overrides id generation.
func WithIDGenerator(newID func() string) ServiceOption {
	return func(s *BaseService) {
		s.NewID = newID
	}
}

func newBaseService(options []ServiceOption) BaseService {
	var b BaseService
	for _, option := range options {
		option(&b)
	}
	return b
}
