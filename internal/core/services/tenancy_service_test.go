package services_test

import (
	"testing"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TenancyServiceTestSuite struct {
	serviceSuite
}

func TestTenancyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TenancyServiceTestSuite))
}

func (s *TenancyServiceTestSuite) TestResolve_Owner() {
	tc, err := s.svc.Tenancy.Resolve(s.ctx, ownerUserID, s.owner.OrganizationID)
	s.Require().NoError(err)
	s.Equal(domain.RoleOwner, tc.Role)
	s.Equal(ownerUserID, tc.UserID)
}

func (s *TenancyServiceTestSuite) TestResolve_Failures() {
	_, err := s.svc.Tenancy.Resolve(s.ctx, "", s.owner.OrganizationID)
	s.ErrorIs(err, apperrors.ErrUnauthenticated)

	_, err = s.svc.Tenancy.Resolve(s.ctx, "stranger", s.owner.OrganizationID)
	s.ErrorIs(err, apperrors.ErrNotAMember)

	_, err = s.svc.Tenancy.Resolve(s.ctx, ownerUserID, "")
	s.ErrorIs(err, apperrors.ErrNotAMember)
}

func (s *TenancyServiceTestSuite) TestListMemberships_OrderedByName() {
	_, err := s.svc.Tenancy.CreateOrganization(s.ctx, ownerUserID, "Alpha Holdings", nil)
	s.Require().NoError(err)

	memberships, err := s.svc.Tenancy.ListMemberships(s.ctx, ownerUserID)
	s.Require().NoError(err)
	s.Require().Len(memberships, 2)
	s.Equal("Alpha Holdings", memberships[0].Organization.Name)
	s.Equal("Org A", memberships[1].Organization.Name)

	empty, err := s.svc.Tenancy.ListMemberships(s.ctx, "nobody")
	s.Require().NoError(err)
	s.Empty(empty)
}

func (s *TenancyServiceTestSuite) TestCreateOrganization_RequiresName() {
	_, err := s.svc.Tenancy.CreateOrganization(s.ctx, ownerUserID, "", nil)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Tenancy.CreateOrganization(s.ctx, "", "Org", nil)
	s.ErrorIs(err, apperrors.ErrUnauthenticated)
}

func (s *TenancyServiceTestSuite) TestAddMember_RoleRules() {
	admin := s.addMember("user-admin", domain.RoleAdmin)
	member := s.addMember("user-member", domain.RoleMember)

	err := s.svc.Tenancy.AddMember(s.ctx, member, "user-x", domain.RoleMember)
	s.ErrorIs(err, apperrors.ErrForbidden)

	err = s.svc.Tenancy.AddMember(s.ctx, admin, "user-y", domain.RoleOwner)
	s.ErrorIs(err, apperrors.ErrForbidden)

	s.NoError(s.svc.Tenancy.AddMember(s.ctx, admin, "user-y", domain.RoleMember))
	s.NoError(s.svc.Tenancy.AddMember(s.ctx, s.owner, "user-z", domain.RoleOwner))

	err = s.svc.Tenancy.AddMember(s.ctx, s.owner, "user-w", domain.Role("superuser"))
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *TenancyServiceTestSuite) TestMemberCannotWriteProperties() {
	member := s.addMember("user-member", domain.RoleMember)
	_, err := s.svc.Property.CreateProperty(s.ctx, member, domain.PropertyInput{
		Name:         "Elm",
		Address:      "2 Elm St",
		PropertyType: domain.PropertyCondo,
	})
	s.ErrorIs(err, apperrors.ErrForbidden)

	properties, err := s.svc.Property.ListProperties(s.ctx, member)
	s.Require().NoError(err)
	s.Len(properties, 1)
}

// A user who belongs to organization A only cannot write into organization B,
// even with a forged context, and nothing is stored.
func (s *TenancyServiceTestSuite) TestScopedWriteIntoForeignOrganization() {
	orgB, err := s.svc.Tenancy.CreateOrganization(s.ctx, "user-b", "Org B", nil)
	s.Require().NoError(err)

	forged := domain.TenancyContext{UserID: ownerUserID, OrganizationID: orgB.OrganizationID, Role: domain.RoleOwner}
	_, err = s.svc.Ledger.CreateExpense(s.ctx, forged, domain.ExpenseInput{
		PropertyID:      s.property.PropertyID,
		Amount:          decimal.NewFromInt(100),
		ExpenseType:     domain.ExpenseRepairs,
		TransactionDate: date(2024, 4, 1),
	})
	s.ErrorIs(err, apperrors.ErrNotAMember)
	s.Empty(s.store.Expenses())
}

func (s *TenancyServiceTestSuite) TestPropertyIsolationAcrossOrganizations() {
	orgB, err := s.svc.Tenancy.CreateOrganization(s.ctx, "user-b", "Org B", nil)
	s.Require().NoError(err)
	tcB, err := s.svc.Tenancy.Resolve(s.ctx, "user-b", orgB.OrganizationID)
	s.Require().NoError(err)

	_, err = s.svc.Property.GetProperty(s.ctx, tcB, s.property.PropertyID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.Ledger.CreateIncome(s.ctx, tcB, domain.IncomeInput{
		PropertyID:      s.property.PropertyID,
		Amount:          decimal.NewFromInt(10),
		IncomeType:      domain.IncomeOther,
		TransactionDate: date(2024, 4, 1),
	})
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Empty(s.store.Incomes())
}
