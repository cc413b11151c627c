package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/apperrors"
	"github.com/SscSPs/property_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/property_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/property_ledger_app/internal/handlers"
	"github.com/SscSPs/property_ledger_app/internal/middleware"
	"github.com/SscSPs/property_ledger_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	testUserID = "user-1"
	testOrgID  = "org-1"
)

type APIHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	jwtSecret string

	tenancy   *MockTenancyService
	property  *MockPropertyService
	ledger    *MockLedgerService
	pending   *MockPendingService
	recurring *MockRecurringService

	tc domain.TenancyContext
}

func (suite *APIHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
}

func (suite *APIHandlerTestSuite) SetupTest() {
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.tenancy = new(MockTenancyService)
	suite.property = new(MockPropertyService)
	suite.ledger = new(MockLedgerService)
	suite.pending = new(MockPendingService)
	suite.recurring = new(MockRecurringService)
	suite.tc = domain.TenancyContext{UserID: testUserID, OrganizationID: testOrgID, Role: domain.RoleOwner}

	services := &portssvc.ServiceContainer{
		Tenancy:   suite.tenancy,
		Property:  suite.property,
		Ledger:    suite.ledger,
		Pending:   suite.pending,
		Recurring: suite.recurring,
	}
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret, ""))
	handlers.RegisterOrganizationAPI(v1, services)
}

func (suite *APIHandlerTestSuite) generateTestToken(userID string) string {
	claims := middleware.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *APIHandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(testUserID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APIHandlerTestSuite) expectMember() {
	suite.tenancy.On("Resolve", mock.Anything, testUserID, testOrgID).Return(suite.tc, nil)
}

func (suite *APIHandlerTestSuite) errorBody(w *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (suite *APIHandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/organizations", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("unauthenticated", suite.errorBody(w)["kind"])
	suite.tenancy.AssertNotCalled(suite.T(), "ListMemberships", mock.Anything, mock.Anything)
}

func (suite *APIHandlerTestSuite) TestListOrganizations() {
	memberships := []domain.OrganizationMembership{
		{Organization: domain.Organization{OrganizationID: testOrgID, Name: "Acme Rentals"}, Role: domain.RoleOwner},
	}
	suite.tenancy.On("ListMemberships", mock.Anything, testUserID).Return(memberships, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/organizations", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body struct {
		Organizations []domain.OrganizationMembership `json:"organizations"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body.Organizations, 1)
	suite.Equal("Acme Rentals", body.Organizations[0].Organization.Name)
	suite.tenancy.AssertExpectations(suite.T())
}

func (suite *APIHandlerTestSuite) TestNonMember_Rejected() {
	suite.tenancy.On("Resolve", mock.Anything, testUserID, testOrgID).
		Return(domain.TenancyContext{}, apperrors.NewNotAMemberError("user is not a member of organization "+testOrgID)).Once()

	w := suite.do(http.MethodGet, "/api/v1/organizations/"+testOrgID+"/properties", nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("not_a_member", suite.errorBody(w)["kind"])
	suite.property.AssertNotCalled(suite.T(), "ListProperties", mock.Anything, mock.Anything)
}

func (suite *APIHandlerTestSuite) TestCreateProperty_Success() {
	suite.expectMember()
	purchaseDate := domain.NewDate(2020, 3, 15)
	created := &domain.Property{
		PropertyID:     "prop-1",
		OrganizationID: testOrgID,
		Name:           "Maple Court",
		PropertyType:   domain.PropertyApartment,
		PurchasePrice:  decimal.RequireFromString("250000"),
		PurchaseDate:   &purchaseDate,
		MonthlyRent:    decimal.RequireFromString("1500"),
	}
	suite.property.On("CreateProperty", mock.Anything, suite.tc, mock.MatchedBy(func(in domain.PropertyInput) bool {
		return in.Name == "Maple Court" &&
			in.PropertyType == domain.PropertyApartment &&
			in.MonthlyRent.Equal(decimal.RequireFromString("1500")) &&
			in.PurchaseDate != nil && in.PurchaseDate.Equal(purchaseDate)
	})).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/organizations/"+testOrgID+"/properties", map[string]any{
		"name":          "Maple Court",
		"propertyType":  "apartment",
		"purchasePrice": "250000",
		"purchaseDate":  "2020-03-15",
		"monthlyRent":   "1500",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var body domain.Property
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("prop-1", body.PropertyID)
	suite.property.AssertExpectations(suite.T())
}

func (suite *APIHandlerTestSuite) TestCreateProperty_InvalidDate() {
	suite.expectMember()

	w := suite.do(http.MethodPost, "/api/v1/organizations/"+testOrgID+"/properties", map[string]any{
		"name":         "Maple Court",
		"propertyType": "apartment",
		"purchaseDate": "15/03/2020",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("validation", suite.errorBody(w)["kind"])
	suite.property.AssertNotCalled(suite.T(), "CreateProperty", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *APIHandlerTestSuite) TestGetProperty_NotFound() {
	suite.expectMember()
	suite.property.On("GetProperty", mock.Anything, suite.tc, "missing").
		Return(nil, apperrors.NewNotFoundError("property missing not found")).Once()

	w := suite.do(http.MethodGet, "/api/v1/organizations/"+testOrgID+"/properties/missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("not_found", suite.errorBody(w)["kind"])
}

func (suite *APIHandlerTestSuite) TestDeleteProperty_Forbidden() {
	suite.expectMember()
	suite.property.On("DeleteProperty", mock.Anything, suite.tc, "prop-1").
		Return(apperrors.NewForbiddenError("role member cannot delete properties")).Once()

	w := suite.do(http.MethodDelete, "/api/v1/organizations/"+testOrgID+"/properties/prop-1", nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("forbidden", suite.errorBody(w)["kind"])
}

func (suite *APIHandlerTestSuite) TestListIncomes_PassesPagination() {
	suite.expectMember()
	next := "opaque-token"
	page := &portssvc.IncomePage{
		Incomes: []domain.Income{{IncomeID: "inc-1", PropertyID: "prop-1", Amount: decimal.RequireFromString("1500")}},
	}
	suite.ledger.On("ListIncomes", mock.Anything, suite.tc, mock.MatchedBy(func(p portssvc.LedgerPageParams) bool {
		return p.Limit == 5 && p.NextToken != nil && *p.NextToken == next &&
			p.PropertyID != nil && *p.PropertyID == "prop-1"
	})).Return(page, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/organizations/"+testOrgID+"/incomes?limit=5&property_id=prop-1&next_token="+next, nil)

	suite.Equal(http.StatusOK, w.Code)
	var body portssvc.IncomePage
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body.Incomes, 1)
	suite.Nil(body.NextToken)
	suite.ledger.AssertExpectations(suite.T())
}

func (suite *APIHandlerTestSuite) TestListIncomes_LimitOutOfRange() {
	suite.expectMember()

	w := suite.do(http.MethodGet, "/api/v1/organizations/"+testOrgID+"/incomes?limit=1000", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.ledger.AssertNotCalled(suite.T(), "ListIncomes", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *APIHandlerTestSuite) TestCreateIncome_MissingDate() {
	suite.expectMember()

	w := suite.do(http.MethodPost, "/api/v1/organizations/"+testOrgID+"/incomes", map[string]any{
		"propertyID": "prop-1",
		"amount":     "1500",
		"incomeType": "rent",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.ledger.AssertNotCalled(suite.T(), "CreateIncome", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *APIHandlerTestSuite) TestCreateExpense_BackendErrorHidesCause() {
	suite.expectMember()
	suite.ledger.On("CreateExpense", mock.Anything, suite.tc, mock.Anything).
		Return(nil, apperrors.NewBackendError("failed to save expense", errors.New("dial tcp 10.0.0.5:5432: connection refused"))).Once()

	w := suite.do(http.MethodPost, "/api/v1/organizations/"+testOrgID+"/expenses", map[string]any{
		"propertyID":      "prop-1",
		"amount":          "120.50",
		"expenseType":     "repairs",
		"transactionDate": "2024-05-10",
	})

	suite.Equal(http.StatusInternalServerError, w.Code)
	body := suite.errorBody(w)
	suite.Equal("backend", body["kind"])
	suite.Equal("Failed to record expense", body["error"])
}

func (suite *APIHandlerTestSuite) TestConfirmPending() {
	suite.expectMember()
	result := &portssvc.ConfirmResult{
		TransactionType: domain.TransactionIncome,
		Income:          &domain.Income{IncomeID: "inc-9", Amount: decimal.RequireFromString("1500")},
	}
	suite.pending.On("ConfirmPending", mock.Anything, suite.tc, "pend-1").Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/organizations/"+testOrgID+"/pending/pend-1/confirm", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body portssvc.ConfirmResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(domain.TransactionIncome, body.TransactionType)
	suite.Require().NotNil(body.Income)
	suite.Equal("inc-9", body.Income.IncomeID)
	suite.False(body.AlreadyRealized)
}

func (suite *APIHandlerTestSuite) TestEditPending_PassesPatch() {
	suite.expectMember()
	suite.pending.On("EditPending", mock.Anything, suite.tc, "pend-1", mock.MatchedBy(func(p domain.PendingPatch) bool {
		return p.Amount != nil && p.Amount.Equal(decimal.RequireFromString("1550")) &&
			p.TransactionDate != nil && p.TransactionDate.Equal(domain.NewDate(2024, 6, 3)) &&
			p.Description == nil
	})).Return(&domain.PendingTransaction{PendingTransactionID: "pend-1"}, nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/organizations/"+testOrgID+"/pending/pend-1", map[string]any{
		"amount":          "1550",
		"transactionDate": "2024-06-03",
	})

	suite.Equal(http.StatusOK, w.Code)
	suite.pending.AssertExpectations(suite.T())
}

func (suite *APIHandlerTestSuite) TestListRecurring_DefaultsToActive() {
	suite.expectMember()
	suite.recurring.On("ListRecurring", mock.Anything, suite.tc, true).Return([]domain.RecurringTransaction{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/organizations/"+testOrgID+"/recurring", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.recurring.AssertExpectations(suite.T())
}

func (suite *APIHandlerTestSuite) TestExpandRecurring() {
	suite.expectMember()
	suite.recurring.On("ExpandPending", mock.Anything, suite.tc, mock.AnythingOfType("time.Time")).
		Return(domain.ExpansionResult{Created: 2, Skipped: 1}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/organizations/"+testOrgID+"/recurring/expand", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body domain.ExpansionResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(2, body.Created)
	suite.Equal(1, body.Skipped)
}

func TestAPIHandler(t *testing.T) {
	suite.Run(t, new(APIHandlerTestSuite))
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		want   string
	}{
		{"healthy", nil, http.StatusOK, "healthy"},
		{"database down", errors.New("connection refused"), http.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			handlers.RegisterRoutes(r, testConfig(), &portssvc.ServiceContainer{}, handlers.Probes{DB: fakePinger{err: tt.err}}, nil)

			req, _ := http.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			var body handlers.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.want, body.Status)
			assert.Equal(t, tt.want, body.Services["database"])
		})
	}
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret-key-that-is-long-enough"}
}
