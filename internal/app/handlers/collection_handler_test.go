package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"collections-service/internal/pkg/consts"
	"collections-service/internal/pkg/models"
	storemodels "collections-service/internal/pkg/store/models"
)

type mockActivationService struct {
	mock.Mock
}

func (m *mockActivationService) ActivateLead(ctx context.Context, pan, loanNo, leadNo string) (bool, error) {
	args := m.Called(ctx, pan, loanNo, leadNo)
	return args.Bool(0), args.Error(1)
}

type mockProjectionService struct {
	mock.Mock
}

func (m *mockProjectionService) ActiveLeads(ctx context.Context) ([]models.ActiveLeadSummary, int64, error) {
	args := m.Called(ctx)
	var rows []models.ActiveLeadSummary
	if args.Get(0) != nil {
		rows = args.Get(0).([]models.ActiveLeadSummary)
	}
	return rows, args.Get(1).(int64), args.Error(2)
}

func (m *mockProjectionService) ActiveLeadDetail(ctx context.Context, loanNo string) (*models.ActiveLeadDetail, error) {
	args := m.Called(ctx, loanNo)
	var detail *models.ActiveLeadDetail
	if args.Get(0) != nil {
		detail = args.Get(0).(*models.ActiveLeadDetail)
	}
	return detail, args.Error(1)
}

func (m *mockProjectionService) ClosedLeads(ctx context.Context) ([]models.ClosedLeadSummary, int64, error) {
	args := m.Called(ctx)
	var rows []models.ClosedLeadSummary
	if args.Get(0) != nil {
		rows = args.Get(0).([]models.ClosedLeadSummary)
	}
	return rows, args.Get(1).(int64), args.Error(2)
}

type mockUpdateService struct {
	mock.Mock
}

func (m *mockUpdateService) UpdateSubRecord(ctx context.Context, loanNo string, req models.UpdateLeadRequest) (string, error) {
	args := m.Called(ctx, loanNo, req)
	return args.String(0), args.Error(1)
}

type mockBankVerifier struct {
	mock.Mock
}

func (m *mockBankVerifier) VerifyBankAccount(ctx context.Context, accountNumber, ifsc string) (models.BankVerificationResult, error) {
	args := m.Called(ctx, accountNumber, ifsc)
	return args.Get(0).(models.BankVerificationResult), args.Error(1)
}

type handlerFixture struct {
	activation *mockActivationService
	projection *mockProjectionService
	update     *mockUpdateService
	verifier   *mockBankVerifier
	handler    *CollectionHandler
}

func newHandlerFixture() *handlerFixture {
	gin.SetMode(gin.TestMode)
	f := &handlerFixture{
		activation: new(mockActivationService),
		projection: new(mockProjectionService),
		update:     new(mockUpdateService),
		verifier:   new(mockBankVerifier),
	}
	f.handler = NewCollectionHandler(f.activation, f.projection, f.update, f.verifier)
	return f
}

func performRequest(handler gin.HandlerFunc, method, path, target string, body interface{}, role string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if role != "" {
		r.Use(func(c *gin.Context) {
			c.Set(consts.ActiveRoleContextKey, role)
			c.Next()
		})
	}
	r.Handle(method, path, handler)

	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateActiveLead(t *testing.T) {
	t.Run("accepted activation answers success true", func(t *testing.T) {
		f := newHandlerFixture()
		f.activation.On("ActivateLead", mock.Anything, "ABCDE1234F", "LN100", "LD100").Return(true, nil)

		w := performRequest(f.handler.CreateActiveLead, http.MethodPost, "/leads", "/leads",
			models.ActivateLeadRequest{PAN: "ABCDE1234F", LoanNo: "LN100", LeadNo: "LD100"}, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success": true}`, w.Body.String())
		f.activation.AssertExpectations(t)
	})

	t.Run("gate rejection still answers 200", func(t *testing.T) {
		f := newHandlerFixture()
		f.activation.On("ActivateLead", mock.Anything, "ABCDE1234F", "LN101", "LD101").Return(false, nil)

		w := performRequest(f.handler.CreateActiveLead, http.MethodPost, "/leads", "/leads",
			models.ActivateLeadRequest{PAN: "ABCDE1234F", LoanNo: "LN101", LeadNo: "LD101"}, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success": false}`, w.Body.String())
	})

	t.Run("missing fields fail binding", func(t *testing.T) {
		f := newHandlerFixture()

		w := performRequest(f.handler.CreateActiveLead, http.MethodPost, "/leads", "/leads",
			map[string]string{"pan": "ABCDE1234F"}, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.activation.AssertNotCalled(t, "ActivateLead")
	})

	t.Run("duplicate loan number maps to conflict", func(t *testing.T) {
		f := newHandlerFixture()
		f.activation.On("ActivateLead", mock.Anything, "ABCDE1234F", "LN100", "LD100").
			Return(false, &models.ConflictError{Message: "loan number already recorded"})

		w := performRequest(f.handler.CreateActiveLead, http.MethodPost, "/leads", "/leads",
			models.ActivateLeadRequest{PAN: "ABCDE1234F", LoanNo: "LN100", LeadNo: "LD100"}, "")

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestActiveLeads(t *testing.T) {
	t.Run("lists rows with total for collection executives", func(t *testing.T) {
		f := newHandlerFixture()
		f.projection.On("ActiveLeads", mock.Anything).
			Return([]models.ActiveLeadSummary{{Data: models.ActiveLeadRef{LeadNo: "LD1", LoanNo: "LN1"}}}, int64(1), nil)

		w := performRequest(f.handler.ActiveLeads, http.MethodGet, "/active", "/active", nil, consts.RoleCollectionExecutive)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			TotalActiveLeads int64                      `json:"totalActiveLeads"`
			ActiveLeads      []models.ActiveLeadSummary `json:"activeLeads"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.TotalActiveLeads)
		require.Len(t, resp.ActiveLeads, 1)
		assert.Equal(t, "LN1", resp.ActiveLeads[0].Data.LoanNo)
	})

	t.Run("other roles are forbidden", func(t *testing.T) {
		f := newHandlerFixture()

		w := performRequest(f.handler.ActiveLeads, http.MethodGet, "/active", "/active", nil, "screener")

		assert.Equal(t, http.StatusForbidden, w.Code)
		f.projection.AssertNotCalled(t, "ActiveLeads")
	})

	t.Run("projection failure surfaces as 500", func(t *testing.T) {
		f := newHandlerFixture()
		f.projection.On("ActiveLeads", mock.Anything).Return(nil, int64(0), assert.AnError)

		w := performRequest(f.handler.ActiveLeads, http.MethodGet, "/active", "/active", nil, consts.RoleCollectionExecutive)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGetActiveLead(t *testing.T) {
	t.Run("returns the expanded detail", func(t *testing.T) {
		f := newHandlerFixture()
		detail := &models.ActiveLeadDetail{
			PAN: "ABCDE1234F",
			Data: models.ExpandedSubRecord{
				LoanSubRecord: storemodels.LoanSubRecord{LoanNo: "LN1", LeadNo: "LD1"},
			},
		}
		f.projection.On("ActiveLeadDetail", mock.Anything, "LN1").Return(detail, nil)

		w := performRequest(f.handler.GetActiveLead, http.MethodGet, "/active/:loanNo", "/active/LN1", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ABCDE1234F")
	})

	t.Run("unknown loan number answers 404", func(t *testing.T) {
		f := newHandlerFixture()
		f.projection.On("ActiveLeadDetail", mock.Anything, "LN404").
			Return(nil, &models.NotFoundError{Message: "Loan number not found."})

		w := performRequest(f.handler.GetActiveLead, http.MethodGet, "/active/:loanNo", "/active/LN404", nil, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Loan number not found.")
	})
}

func TestUpdateActiveLead(t *testing.T) {
	t.Run("successful merge reports the service message", func(t *testing.T) {
		f := newHandlerFixture()
		f.update.On("UpdateSubRecord", mock.Anything, "LN1", mock.AnythingOfType("models.UpdateLeadRequest")).
			Return("Record updated successfully.", nil)

		amount := 42000.0
		w := performRequest(f.handler.UpdateActiveLead, http.MethodPatch, "/active/:loanNo", "/active/LN1",
			models.UpdateLeadRequest{Data: &models.SubRecordPatch{Amount: &amount}}, consts.RoleCollectionExecutive)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Record updated successfully.")
	})

	t.Run("other roles are forbidden", func(t *testing.T) {
		f := newHandlerFixture()

		w := performRequest(f.handler.UpdateActiveLead, http.MethodPatch, "/active/:loanNo", "/active/LN1",
			models.UpdateLeadRequest{}, "sanctionHead")

		assert.Equal(t, http.StatusForbidden, w.Code)
		f.update.AssertNotCalled(t, "UpdateSubRecord")
	})

	t.Run("validation failure maps to 400", func(t *testing.T) {
		f := newHandlerFixture()
		f.update.On("UpdateSubRecord", mock.Anything, "LN1", mock.AnythingOfType("models.UpdateLeadRequest")).
			Return("", &models.ValidationError{Message: "invalid requested status"})

		w := performRequest(f.handler.UpdateActiveLead, http.MethodPatch, "/active/:loanNo", "/active/LN1",
			models.UpdateLeadRequest{}, consts.RoleCollectionExecutive)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate payment reference maps to 409", func(t *testing.T) {
		f := newHandlerFixture()
		f.update.On("UpdateSubRecord", mock.Anything, "LN1", mock.AnythingOfType("models.UpdateLeadRequest")).
			Return("", &models.ConflictError{Message: "utr already recorded"})

		w := performRequest(f.handler.UpdateActiveLead, http.MethodPatch, "/active/:loanNo", "/active/LN1",
			models.UpdateLeadRequest{}, consts.RoleCollectionExecutive)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestClosedLeads(t *testing.T) {
	t.Run("lists closed rows with total", func(t *testing.T) {
		f := newHandlerFixture()
		f.projection.On("ClosedLeads", mock.Anything).
			Return([]models.ClosedLeadSummary{{LoanSubRecord: storemodels.LoanSubRecord{LoanNo: "LN9"}}}, int64(1), nil)

		w := performRequest(f.handler.ClosedLeads, http.MethodGet, "/closed", "/closed", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "totalClosedLeads")
		assert.Contains(t, w.Body.String(), "LN9")
	})
}

func TestVerifyBank(t *testing.T) {
	t.Run("passes the verification result through", func(t *testing.T) {
		f := newHandlerFixture()
		f.verifier.On("VerifyBankAccount", mock.Anything, "1234567890", "HDFC0001234").
			Return(models.BankVerificationResult{Success: true}, nil)

		w := performRequest(f.handler.VerifyBank, http.MethodPost, "/verify-bank", "/verify-bank",
			models.VerifyBankRequest{AccountNumber: "1234567890", IFSC: "HDFC0001234"}, consts.RoleCollectionExecutive)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success": true}`, w.Body.String())
	})

	t.Run("soft verification failure is still 200", func(t *testing.T) {
		f := newHandlerFixture()
		f.verifier.On("VerifyBankAccount", mock.Anything, "1234567890", "HDFC0001234").
			Return(models.BankVerificationResult{Success: false, Message: "Bank couldn't be verified!!"}, nil)

		w := performRequest(f.handler.VerifyBank, http.MethodPost, "/verify-bank", "/verify-bank",
			models.VerifyBankRequest{AccountNumber: "1234567890", IFSC: "HDFC0001234"}, consts.RoleCollectionExecutive)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Bank couldn't be verified!!")
	})

	t.Run("upstream outage maps to 502", func(t *testing.T) {
		f := newHandlerFixture()
		f.verifier.On("VerifyBankAccount", mock.Anything, "1234567890", "HDFC0001234").
			Return(models.BankVerificationResult{}, &models.UpstreamError{StatusCode: 503, Message: "service unavailable"})

		w := performRequest(f.handler.VerifyBank, http.MethodPost, "/verify-bank", "/verify-bank",
			models.VerifyBankRequest{AccountNumber: "1234567890", IFSC: "HDFC0001234"}, consts.RoleCollectionExecutive)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("other roles are forbidden", func(t *testing.T) {
		f := newHandlerFixture()

		w := performRequest(f.handler.VerifyBank, http.MethodPost, "/verify-bank", "/verify-bank",
			models.VerifyBankRequest{AccountNumber: "1234567890", IFSC: "HDFC0001234"}, "loanManager")

		assert.Equal(t, http.StatusForbidden, w.Code)
		f.verifier.AssertNotCalled(t, "VerifyBankAccount")
	})
}
