package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/milk_supply_chain/internal/apperrors"
	"github.com/SscSPs/milk_supply_chain/internal/core/domain"
	portssvc "github.com/SscSPs/milk_supply_chain/internal/core/ports/services"
	"github.com/SscSPs/milk_supply_chain/internal/dto"
	"github.com/SscSPs/milk_supply_chain/internal/handlers"
	"github.com/SscSPs/milk_supply_chain/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RegistryService ---
type MockRegistryService struct {
	mock.Mock
}

func (m *MockRegistryService) RoleOf(ctx context.Context, accountID string) (domain.Role, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(domain.Role), args.Error(1)
}

func (m *MockRegistryService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockRegistryService) SetProducer(ctx context.Context, callerID, accountID string) error {
	return m.Called(ctx, callerID, accountID).Error(0)
}

func (m *MockRegistryService) SetReseller(ctx context.Context, callerID, accountID string, maxQuantity decimal.Decimal) error {
	return m.Called(ctx, callerID, accountID, maxQuantity).Error(0)
}

func (m *MockRegistryService) Bootstrap(ctx context.Context, adminID string) error {
	return m.Called(ctx, adminID).Error(0)
}

var _ portssvc.RegistrySvcFacade = (*MockRegistryService)(nil)

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) StockBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceService) ListHoldings(ctx context.Context, accountID string) ([]domain.Holding, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Holding), args.Error(1)
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

// --- Mock BatchService ---
type MockBatchService struct {
	mock.Mock
}

func (m *MockBatchService) Produce(ctx context.Context, callerID string, quantity decimal.Decimal) (int64, error) {
	args := m.Called(ctx, callerID, quantity)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBatchService) GetBatch(ctx context.Context, batchID int64) (*domain.Batch, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}

func (m *MockBatchService) ListBatches(ctx context.Context, params dto.ListBatchesParams) (*dto.ListBatchesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListBatchesResponse), args.Error(1)
}

var _ portssvc.BatchSvcFacade = (*MockBatchService)(nil)

// --- Mock TransferService ---
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) TransferStock(ctx context.Context, callerID, toID string, quantity decimal.Decimal, batchID int64) error {
	return m.Called(ctx, callerID, toID, quantity, batchID).Error(0)
}

func (m *MockTransferService) ListTransfers(ctx context.Context, params dto.ListTransfersParams) (*dto.ListTransfersResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransfersResponse), args.Error(1)
}

var _ portssvc.TransferSvcFacade = (*MockTransferService)(nil)

// decimalEq matches a decimal argument by value rather than representation.
func decimalEq(want int64) any {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(want)) })
}

// --- Test Suite ---
type HandlersTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockRegistry *MockRegistryService
	mockBalance  *MockBalanceService
	mockBatch    *MockBatchService
	mockTransfer *MockTransferService
	jwtSecret    string
}

// generateTestToken creates a signed JWT whose subject is the caller account.
func (suite *HandlersTestSuite) generateTestToken(callerID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "milk-test",
		Subject:   callerID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockRegistry = new(MockRegistryService)
	suite.mockBalance = new(MockBalanceService)
	suite.mockBatch = new(MockBatchService)
	suite.mockTransfer = new(MockTransferService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret, "milk-test"))
	handlers.RegisterAccountRoutes(v1, suite.mockRegistry, suite.mockBalance)
	handlers.RegisterBatchRoutes(v1, suite.mockBatch)
	handlers.RegisterTransferRoutes(v1, suite.mockTransfer)
}

func (suite *HandlersTestSuite) do(method, path, callerID, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if callerID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(callerID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) errorKind(w *httptest.ResponseRecorder) string {
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body["kind"]
}

// --- Test Cases ---

func (suite *HandlersTestSuite) TestMissingToken() {
	w := suite.do(http.MethodPost, "/api/v1/batches", "", `{"quantity": 5}`)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockBatch.AssertNotCalled(suite.T(), "Produce", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestProduce_Success() {
	suite.mockBatch.On("Produce", mock.Anything, "farm", decimalEq(50)).Return(int64(7), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/batches", "farm", `{"quantity": 50}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ProduceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(7), resp.BatchID)
	suite.mockBatch.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestProduce_QuantityCheckedByService() {
	invalid := fmt.Errorf("%w: quantity must be positive", apperrors.ErrInvalidArgument)
	suite.mockBatch.On("Produce", mock.Anything, "farm", decimalEq(0)).Return(int64(0), invalid).Twice()
	suite.mockBatch.On("Produce", mock.Anything, "farm", decimalEq(-3)).Return(int64(0), invalid).Once()

	for _, body := range []string{`{"quantity": 0}`, `{"quantity": "-3"}`, `{}`} {
		w := suite.do(http.MethodPost, "/api/v1/batches", "farm", body)
		suite.Equal(http.StatusBadRequest, w.Code, body)
		suite.Equal("invalid_argument", suite.errorKind(w))
	}
	suite.mockBatch.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestProduce_Unauthorized() {
	err := fmt.Errorf("%w: not an authorized producer", apperrors.ErrUnauthorized)
	suite.mockBatch.On("Produce", mock.Anything, "stranger", decimalEq(10)).Return(int64(0), err).Once()

	w := suite.do(http.MethodPost, "/api/v1/batches", "stranger", `{"quantity": 10}`)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("unauthorized", suite.errorKind(w))
}

func (suite *HandlersTestSuite) TestTransfer_Success() {
	suite.mockTransfer.On("TransferStock", mock.Anything, "farm", "shop", decimalEq(30), int64(0)).Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transfers", "farm", `{"to": "shop", "quantity": 30, "batchID": 0}`)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockTransfer.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestTransfer_ErrorMapping() {
	cases := []struct {
		err    error
		status int
		kind   string
	}{
		{fmt.Errorf("%w: balance 5", apperrors.ErrInsufficientStock), http.StatusConflict, "insufficient_stock"},
		{fmt.Errorf("%w: cap 10", apperrors.ErrQuotaExceeded), http.StatusConflict, "quota_exceeded"},
		{fmt.Errorf("%w: caller does not hold batch 1", apperrors.ErrUnauthorized), http.StatusForbidden, "unauthorized"},
		{fmt.Errorf("%w: unknown batch 1", apperrors.ErrInvalidArgument), http.StatusBadRequest, "invalid_argument"},
		{apperrors.NewAppError(500, "failed to commit transaction", errors.New("conn reset")), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		suite.mockTransfer.On("TransferStock", mock.Anything, "farm", "shop", decimalEq(1), int64(1)).Return(tc.err).Once()

		w := suite.do(http.MethodPost, "/api/v1/transfers", "farm", `{"to": "shop", "quantity": "1", "batchID": 1}`)

		suite.Equal(tc.status, w.Code, tc.kind)
		suite.Equal(tc.kind, suite.errorKind(w))
	}
}

func (suite *HandlersTestSuite) TestTransfer_InternalErrorHidesCause() {
	dbErr := apperrors.NewAppError(500, "failed to save holding", errors.New("password authentication failed"))
	suite.mockTransfer.On("TransferStock", mock.Anything, "farm", "shop", decimalEq(2), int64(0)).Return(dbErr).Once()

	w := suite.do(http.MethodPost, "/api/v1/transfers", "farm", `{"to": "shop", "quantity": 2, "batchID": 0}`)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "password")
}

func (suite *HandlersTestSuite) TestTransfer_BindingErrors() {
	bodies := []string{
		`{"to": "shop", "quantity": 1}`,
		`{"quantity": 1, "batchID": 0}`,
		`{"to": "shop", "quantity": 1, "batchID": -1}`,
		`{"to": "shop", "quantity": 0, "batchID": 0}`,
		`not json`,
	}
	for _, body := range bodies {
		w := suite.do(http.MethodPost, "/api/v1/transfers", "farm", body)
		suite.Equal(http.StatusBadRequest, w.Code, body)
	}
	suite.mockTransfer.AssertNotCalled(suite.T(), "TransferStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestSetProducer() {
	suite.mockRegistry.On("SetProducer", mock.Anything, "authority", "farm").Return(nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/accounts/farm/producer", "authority", "")

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockRegistry.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestSetReseller() {
	suite.mockRegistry.On("SetReseller", mock.Anything, "authority", "shop", decimalEq(100)).Return(nil).Once()
	suite.mockRegistry.On("SetReseller", mock.Anything, "authority", "shop", decimalEq(0)).Return(nil).Once()
	suite.mockRegistry.On("SetReseller", mock.Anything, "authority", "shop", decimalEq(-1)).
		Return(fmt.Errorf("%w: maxQuantity must not be negative", apperrors.ErrInvalidArgument)).Once()

	w := suite.do(http.MethodPut, "/api/v1/accounts/shop/reseller", "authority", `{"maxQuantity": "100"}`)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodPut, "/api/v1/accounts/shop/reseller", "authority", `{"maxQuantity": 0}`)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodPut, "/api/v1/accounts/shop/reseller", "authority", `{"maxQuantity": -1}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.mockRegistry.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestSetReseller_MissingCap() {
	for _, body := range []string{`{}`, `{"maxQuantity": null}`} {
		w := suite.do(http.MethodPut, "/api/v1/accounts/shop/reseller", "authority", body)
		suite.Equal(http.StatusBadRequest, w.Code, body)
		suite.Equal("invalid_argument", suite.errorKind(w))
	}
	suite.mockRegistry.AssertNotCalled(suite.T(), "SetReseller", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestAccountReads() {
	acc := domain.NewAccount("shop")
	acc.Role = domain.RoleReseller
	acc.MaxQuantity = decimal.NewFromInt(100)
	acc.Balance = decimal.NewFromInt(30)
	suite.mockRegistry.On("GetAccount", mock.Anything, "shop").Return(&acc, nil).Once()
	suite.mockRegistry.On("RoleOf", mock.Anything, "shop").Return(domain.RoleReseller, nil).Once()
	suite.mockBalance.On("StockBalance", mock.Anything, "shop").Return(decimal.NewFromInt(30), nil).Once()
	suite.mockBalance.On("ListHoldings", mock.Anything, "shop").
		Return([]domain.Holding{{BatchID: 0, HolderID: "shop", Quantity: decimal.NewFromInt(30)}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/shop", "anyone", "")
	suite.Equal(http.StatusOK, w.Code)
	var account dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &account))
	suite.Equal(domain.RoleReseller, account.Role)
	suite.True(account.Balance.Equal(decimal.NewFromInt(30)))

	w = suite.do(http.MethodGet, "/api/v1/accounts/shop/role", "anyone", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"accountID": "shop", "role": "RESELLER"}`, w.Body.String())

	w = suite.do(http.MethodGet, "/api/v1/accounts/shop/balance", "anyone", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"accountID": "shop", "balance": "30"}`, w.Body.String())

	w = suite.do(http.MethodGet, "/api/v1/accounts/shop/holdings", "anyone", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"accountID": "shop", "holdings": [{"batchID": 0, "quantity": "30"}]}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestGetBatch() {
	batch := &domain.Batch{BatchID: 3, ProducerID: "farm", Quantity: decimal.NewFromInt(10), Remaining: decimal.Zero}
	suite.mockBatch.On("GetBatch", mock.Anything, int64(3)).Return(batch, nil).Once()
	suite.mockBatch.On("GetBatch", mock.Anything, int64(4)).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/batches/3", "anyone", "")
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BatchResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.BatchExhausted, resp.State)

	w = suite.do(http.MethodGet, "/api/v1/batches/4", "anyone", "")
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/batches/abc", "anyone", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestListTransfers_BindsQuery() {
	batchID := int64(2)
	token := "abc"
	want := dto.ListTransfersParams{AccountID: "shop", BatchID: &batchID, Limit: 5, NextToken: &token}
	suite.mockTransfer.On("ListTransfers", mock.Anything, want).
		Return(&dto.ListTransfersResponse{Transfers: []dto.TransferResponse{}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transfers?account=shop&batchID=2&limit=5&nextToken=abc", "anyone", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"transfers": []}`, w.Body.String())
	suite.mockTransfer.AssertExpectations(suite.T())

	w = suite.do(http.MethodGet, "/api/v1/transfers?limit=1000", "anyone", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestListBatches_DefaultLimit() {
	suite.mockBatch.On("ListBatches", mock.Anything, dto.ListBatchesParams{ProducerID: "farm", Limit: 20}).
		Return(&dto.ListBatchesResponse{Batches: []dto.BatchResponse{}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/batches?producer=farm", "anyone", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockBatch.AssertExpectations(suite.T())
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
