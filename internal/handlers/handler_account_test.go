package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/apperrors"
	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	portssvc "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/services"
	"github.com/ecclesiahq/ecclesia-backend/internal/dto"
	"github.com/ecclesiahq/ecclesia-backend/internal/handlers"
	"github.com/ecclesiahq/ecclesia-backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, churchID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, churchID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, churchID string, accountID string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, churchID, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByCode(ctx context.Context, churchID string, code string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, churchID, code, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, churchID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	args := m.Called(ctx, churchID, accountIDs, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, churchID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, churchID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, churchID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, churchID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, churchID string, accountID string, userID string) error {
	args := m.Called(ctx, churchID, accountID, userID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ecclesia-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockAccountService = new(MockAccountService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	container := &portssvc.ServiceContainer{Account: suite.mockAccountService}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *AccountHandlerTestSuite) serve(method, url, token string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	churchID := uuid.NewString()
	userID := uuid.NewString()
	accountID := uuid.NewString()

	expected := &domain.Account{
		AccountID:   accountID,
		ChurchID:    churchID,
		Code:        "1000",
		Name:        "General Fund",
		AccountType: domain.Asset,
		IsActive:    true,
		Balance:     decimal.Zero,
	}

	suite.mockAccountService.On("CreateAccount",
		mock.AnythingOfType("*context.valueCtx"),
		churchID,
		mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
			return req.Code == "1000" && req.AccountType == domain.Asset
		}),
		userID,
	).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/churches/%s/accounts", churchID)
	body := `{"code":"1000","name":"General Fund","accountType":"ASSET"}`
	w := suite.serve(http.MethodPost, url, suite.generateTestToken(userID), body)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.AccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(accountID, resp.AccountID)
	suite.Equal("1000", resp.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_DuplicateCode() {
	churchID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAccountService.On("CreateAccount",
		mock.AnythingOfType("*context.valueCtx"), churchID, mock.Anything, userID,
	).Return(nil, apperrors.ErrDuplicate).Once()

	url := fmt.Sprintf("/api/v1/churches/%s/accounts", churchID)
	body := `{"code":"1000","name":"General Fund","accountType":"ASSET"}`
	w := suite.serve(http.MethodPost, url, suite.generateTestToken(userID), body)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "already exists")
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidAccountType() {
	churchID := uuid.NewString()
	userID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/churches/%s/accounts", churchID)
	body := `{"code":"1000","name":"General Fund","accountType":"SAVINGS"}`
	w := suite.serve(http.MethodPost, url, suite.generateTestToken(userID), body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	churchID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID",
		mock.AnythingOfType("*context.valueCtx"), churchID, accountID, userID,
	).Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/churches/%s/accounts/%s", churchID, accountID)
	w := suite.serve(http.MethodGet, url, suite.generateTestToken(userID), "")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount_NonZeroBalance() {
	churchID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAccountService.On("DeactivateAccount",
		mock.AnythingOfType("*context.valueCtx"), churchID, accountID, userID,
	).Return(apperrors.ErrValidation).Once()

	url := fmt.Sprintf("/api/v1/churches/%s/accounts/%s", churchID, accountID)
	w := suite.serve(http.MethodDelete, url, suite.generateTestToken(userID), "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "non-zero balance")
}

func (suite *AccountHandlerTestSuite) TestListAccounts_MissingToken() {
	churchID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/churches/%s/accounts", churchID)
	w := suite.serve(http.MethodGet, url, "", "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
