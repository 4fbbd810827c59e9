package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/apperrors"
	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	portsrepo "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/repositories"
	portssvc "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/services"
	"github.com/ecclesiahq/ecclesia-backend/internal/core/services"
	"github.com/ecclesiahq/ecclesia-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

// Ensure MockTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceChanges)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByChurch(ctx context.Context, churchID string, limit int, nextToken *string, includeVoided bool) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, churchID, limit, nextToken, includeVoided)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, balanceChanges map[string]decimal.Decimal, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, transactionID, status, balanceChanges, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindLinesByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionLine, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionLine), args.Error(1)
}

func (m *MockTransactionRepository) FindLinesByTransactionIDs(ctx context.Context, transactionIDs []string) (map[string][]domain.TransactionLine, error) {
	args := m.Called(ctx, transactionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.TransactionLine), args.Error(1)
}

func (m *MockTransactionRepository) ListLinesByAccountID(ctx context.Context, churchID, accountID string, limit int, nextToken *string) ([]domain.TransactionLine, *string, error) {
	args := m.Called(ctx, churchID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.TransactionLine), returnedNextToken, args.Error(2)
}

// --- Mock AccountService (as used by TransactionService) ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

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

// --- Mock ChurchAuthorizer ---
type MockChurchAuthorizer struct {
	mock.Mock
}

var _ portssvc.ChurchAuthorizerSvc = (*MockChurchAuthorizer)(nil)

func (m *MockChurchAuthorizer) AuthorizeUserAction(ctx context.Context, userID, churchID string, requiredRole domain.UserChurchRole) error {
	args := m.Called(ctx, userID, churchID, requiredRole)
	return args.Error(0)
}

// --- Test Suite Setup ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockAccountSvc   *MockAccountService
	mockAuthorizer   *MockChurchAuthorizer
	service          portssvc.TransactionSvcFacade
	cashAccount      domain.Account
	donationAccount  domain.Account
	expenseAccount   domain.Account
	inactiveAccount  domain.Account
	churchID         string
	userID           string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockAuthorizer = new(MockChurchAuthorizer)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccountSvc, suite.mockAuthorizer)

	suite.churchID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		ChurchID:    suite.churchID,
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.donationAccount = domain.Account{
		AccountID:   uuid.NewString(),
		ChurchID:    suite.churchID,
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	suite.expenseAccount = domain.Account{
		AccountID:   uuid.NewString(),
		ChurchID:    suite.churchID,
		AccountType: domain.Expense,
		IsActive:    true,
	}
	suite.inactiveAccount = domain.Account{
		AccountID:   uuid.NewString(),
		ChurchID:    suite.churchID,
		AccountType: domain.Expense,
		IsActive:    false,
	}
}

func (suite *TransactionServiceTestSuite) balancedRequest(status domain.TransactionStatus) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Date:        time.Now(),
		Description: "Sunday offering",
		Status:      status,
		Lines: []dto.CreateTransactionLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.donationAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_PendingSuccess() {
	ctx := context.Background()
	req := suite.balancedRequest(domain.Pending)

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.churchID, domain.RoleTreasurer).Return(nil).Once()

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:     suite.cashAccount,
		suite.donationAccount.AccountID: suite.donationAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.churchID, mock.AnythingOfType("[]string"), suite.userID).Return(accountsMap, nil).Once()

	// A pending save carries no balance changes.
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), map[string]decimal.Decimal(nil)).Return(nil).Once()

	created, err := suite.service.CreateTransaction(ctx, suite.churchID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.TransactionID)
	suite.Equal(suite.churchID, created.ChurchID)
	suite.Equal(domain.Pending, created.Status)
	suite.Equal(suite.userID, created.CreatedBy)
	suite.Len(created.Lines, 2)

	suite.mockAuthorizer.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_PostedAppliesBalances() {
	ctx := context.Background()
	req := suite.balancedRequest(domain.Posted)

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.churchID, domain.RoleTreasurer).Return(nil).Once()

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:     suite.cashAccount,
		suite.donationAccount.AccountID: suite.donationAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.churchID, mock.AnythingOfType("[]string"), suite.userID).Return(accountsMap, nil).Once()

	// Debit-normal cash goes up by 100, credit-normal donations go up by 100.
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return len(changes) == 2 &&
			changes[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(100)) &&
			changes[suite.donationAccount.AccountID].Equal(decimal.NewFromInt(100))
	})).Return(nil).Once()

	created, err := suite.service.CreateTransaction(ctx, suite.churchID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, created.Status)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_AuthorizationFail() {
	ctx := context.Background()
	req := suite.balancedRequest(domain.Pending)

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.churchID, domain.RoleTreasurer).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.churchID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_LessThanTwoLines() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Date:        time.Now(),
		Description: "Half a transaction",
		Lines: []dto.CreateTransactionLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
		},
	}
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.churchID, domain.RoleTreasurer).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.churchID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTransactionMinLines)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_SingleAccount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Date:        time.Now(),
		Description: "Self transfer",
		Lines: []dto.CreateTransactionLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(50)},
			{AccountID: suite.cashAccount.AccountID, Credit: decimal.NewFromInt(50)},
		},
	}
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.churchID, domain.RoleTreasurer).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.churchID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTransactionMinAccounts)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Date:        time.Now(),
		Description: "Lopsided entry",
		Lines: []dto.CreateTransactionLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.donationAccount.AccountID, Credit: decimal.NewFromInt(90)},
		},
	}
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.churchID, domain.RoleTreasurer).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.churchID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTransactionUnbalanced)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_AccountNotFound() {
	ctx := context.Background()
	unknownAccountID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		Date:        time.Now(),
		Description: "Unknown account",
		Lines: []dto.CreateTransactionLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: unknownAccountID, Credit: decimal.NewFromInt(100)},
		},
	}
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
		// unknownAccountID is missing
	}
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.churchID, domain.RoleTreasurer).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.churchID, mock.Anything, suite.userID).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.churchID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotFound)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InactiveAccount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Date:        time.Now(),
		Description: "Posting to a closed account",
		Lines: []dto.CreateTransactionLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.inactiveAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:     suite.cashAccount,
		suite.inactiveAccount.AccountID: suite.inactiveAccount,
	}
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.churchID, domain.RoleTreasurer).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.churchID, mock.Anything, suite.userID).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.churchID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_Success() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	pending := &domain.Transaction{
		TransactionID: transactionID,
		ChurchID:      suite.churchID,
		Status:        domain.Pending,
	}
	lines := []domain.TransactionLine{
		{LineID: uuid.NewString(), TransactionID: transactionID, AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(40)},
		{LineID: uuid.NewString(), TransactionID: transactionID, AccountID: suite.donationAccount.AccountID, Credit: decimal.NewFromInt(40)},
	}
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:     suite.cashAccount,
		suite.donationAccount.AccountID: suite.donationAccount,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.churchID, domain.RoleTreasurer).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(pending, nil).Once()
	suite.mockTxnRepo.On("FindLinesByTransactionID", ctx, transactionID).Return(lines, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.churchID, mock.Anything, suite.userID).Return(accountsMap, nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionStatus", ctx, transactionID, domain.Posted, mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return changes[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(40)) &&
			changes[suite.donationAccount.AccountID].Equal(decimal.NewFromInt(40))
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	posted, err := suite.service.PostTransaction(ctx, suite.churchID, transactionID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_InvalidTransition() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	voided := &domain.Transaction{
		TransactionID: transactionID,
		ChurchID:      suite.churchID,
		Status:        domain.Voided,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.churchID, domain.RoleTreasurer).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(voided, nil).Once()

	_, err := suite.service.PostTransaction(ctx, suite.churchID, transactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidTransition)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransactionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestVoidTransaction_ReversesPostedBalances() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	posted := &domain.Transaction{
		TransactionID: transactionID,
		ChurchID:      suite.churchID,
		Status:        domain.Posted,
	}
	lines := []domain.TransactionLine{
		{LineID: uuid.NewString(), TransactionID: transactionID, AccountID: suite.expenseAccount.AccountID, Debit: decimal.NewFromInt(25)},
		{LineID: uuid.NewString(), TransactionID: transactionID, AccountID: suite.cashAccount.AccountID, Credit: decimal.NewFromInt(25)},
	}
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.expenseAccount.AccountID: suite.expenseAccount,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.churchID, domain.RoleTreasurer).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(posted, nil).Once()
	suite.mockTxnRepo.On("FindLinesByTransactionID", ctx, transactionID).Return(lines, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.churchID, mock.Anything, suite.userID).Return(accountsMap, nil).Once()

	// Voiding flips the original effects: expense -25, cash +25.
	suite.mockTxnRepo.On("UpdateTransactionStatus", ctx, transactionID, domain.Voided, mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return changes[suite.expenseAccount.AccountID].Equal(decimal.NewFromInt(-25)) &&
			changes[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(25))
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	voided, err := suite.service.VoidTransaction(ctx, suite.churchID, transactionID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Voided, voided.Status)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestVoidTransaction_PendingSkipsBalances() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	pending := &domain.Transaction{
		TransactionID: transactionID,
		ChurchID:      suite.churchID,
		Status:        domain.Pending,
	}
	lines := []domain.TransactionLine{
		{LineID: uuid.NewString(), TransactionID: transactionID, AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(10)},
		{LineID: uuid.NewString(), TransactionID: transactionID, AccountID: suite.donationAccount.AccountID, Credit: decimal.NewFromInt(10)},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.churchID, domain.RoleTreasurer).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(pending, nil).Once()
	suite.mockTxnRepo.On("FindLinesByTransactionID", ctx, transactionID).Return(lines, nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionStatus", ctx, transactionID, domain.Voided, map[string]decimal.Decimal(nil), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	_, err := suite.service.VoidTransaction(ctx, suite.churchID, transactionID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetAccountsByIDs", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NotPending() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	posted := &domain.Transaction{
		TransactionID: transactionID,
		ChurchID:      suite.churchID,
		Status:        domain.Posted,
	}
	newDescription := "Corrected description"

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.churchID, domain.RoleTreasurer).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(posted, nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, suite.churchID, transactionID, dto.UpdateTransactionRequest{Description: &newDescription}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotPending)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_WrongChurch() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	otherChurch := &domain.Transaction{
		TransactionID: transactionID,
		ChurchID:      uuid.NewString(),
		Status:        domain.Posted,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.churchID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(otherChurch, nil).Once()

	_, err := suite.service.GetTransactionByID(ctx, suite.churchID, transactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestCheckBalance() {
	ctx := context.Background()

	balanced := []dto.CreateTransactionLineRequest{
		{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(75)},
		{AccountID: suite.donationAccount.AccountID, Credit: decimal.NewFromInt(75)},
	}
	check, err := suite.service.CheckBalance(ctx, balanced)
	suite.Require().NoError(err)
	suite.True(check.Balanced)
	assert.True(suite.T(), check.TotalDebits.Equal(check.TotalCredits))

	unbalanced := []dto.CreateTransactionLineRequest{
		{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(75)},
		{AccountID: suite.donationAccount.AccountID, Credit: decimal.NewFromInt(50)},
	}
	check, err = suite.service.CheckBalance(ctx, unbalanced)
	suite.Require().NoError(err)
	suite.False(check.Balanced)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
