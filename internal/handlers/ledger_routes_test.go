package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	portsrepo "github.com/SscSPs/milk_supply_chain/internal/core/ports/repositories"
	"github.com/SscSPs/milk_supply_chain/internal/core/services"
	"github.com/SscSPs/milk_supply_chain/internal/dto"
	"github.com/SscSPs/milk_supply_chain/internal/handlers"
	"github.com/SscSPs/milk_supply_chain/internal/middleware"
	"github.com/SscSPs/milk_supply_chain/internal/repositories/database/memory"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// LedgerRoutesTestSuite drives the routes against the real services on the in-memory store.
type LedgerRoutesTestSuite struct {
	suite.Suite
	router    *gin.Engine
	jwtSecret string
}

func (suite *LedgerRoutesTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "ledger-routes-secret"
	ctx := context.Background()

	svc := services.NewServiceContainer(portsrepo.RepositoryProvider{LedgerRepo: memory.NewLedgerRepository()})
	suite.Require().NoError(svc.Registry.Bootstrap(ctx, "authority"))
	suite.Require().NoError(svc.Registry.SetProducer(ctx, "authority", "farm"))
	suite.Require().NoError(svc.Registry.SetReseller(ctx, "authority", "shop", decimal.NewFromInt(100)))

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret, ""))
	handlers.RegisterAccountRoutes(v1, svc.Registry, svc.Balance)
	handlers.RegisterBatchRoutes(v1, svc.Batch)
	handlers.RegisterTransferRoutes(v1, svc.Transfer)
}

func (suite *LedgerRoutesTestSuite) do(method, path, callerID, body string) *httptest.ResponseRecorder {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   callerID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *LedgerRoutesTestSuite) assertError(w *httptest.ResponseRecorder, status int, kind string) {
	suite.Equal(status, w.Code, w.Body.String())
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(kind, body["kind"])
}

func (suite *LedgerRoutesTestSuite) TestProduceByNonProducerIsUnauthorizedWhateverTheQuantity() {
	for _, caller := range []string{"shop", "authority", "nobody"} {
		for _, body := range []string{`{"quantity": 0}`, `{"quantity": "-5"}`, `{}`, `{"quantity": 10}`} {
			w := suite.do(http.MethodPost, "/api/v1/batches", caller, body)
			suite.assertError(w, http.StatusForbidden, "unauthorized")
		}
	}
}

func (suite *LedgerRoutesTestSuite) TestProduceByProducerRejectsNonPositiveQuantity() {
	w := suite.do(http.MethodPost, "/api/v1/batches", "farm", `{"quantity": 0}`)
	suite.assertError(w, http.StatusBadRequest, "invalid_argument")
}

func (suite *LedgerRoutesTestSuite) TestSetResellerByNonAdminIsUnauthorizedWhateverTheCap() {
	for _, body := range []string{`{"maxQuantity": -1}`, `{"maxQuantity": 10}`} {
		w := suite.do(http.MethodPut, "/api/v1/accounts/kiosk/reseller", "farm", body)
		suite.assertError(w, http.StatusForbidden, "unauthorized")
	}

	w := suite.do(http.MethodPut, "/api/v1/accounts/kiosk/reseller", "authority", `{"maxQuantity": -1}`)
	suite.assertError(w, http.StatusBadRequest, "invalid_argument")
}

func (suite *LedgerRoutesTestSuite) TestProduceTransferAndRead() {
	w := suite.do(http.MethodPost, "/api/v1/batches", "farm", `{"quantity": 150}`)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var produced dto.ProduceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &produced))
	suite.Equal(int64(0), produced.BatchID)

	w = suite.do(http.MethodPost, "/api/v1/transfers", "farm", `{"to": "shop", "quantity": 100, "batchID": 0}`)
	suite.Equal(http.StatusNoContent, w.Code, w.Body.String())

	w = suite.do(http.MethodPost, "/api/v1/transfers", "farm", `{"to": "shop", "quantity": 1, "batchID": 0}`)
	suite.assertError(w, http.StatusConflict, "quota_exceeded")

	w = suite.do(http.MethodGet, "/api/v1/accounts/shop/balance", "anyone", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"accountID": "shop", "balance": "100"}`, w.Body.String())
}

func TestLedgerRoutesTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerRoutesTestSuite))
}
