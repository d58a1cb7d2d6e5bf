package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/caseflow_app/internal/apperrors"
	"github.com/opsdesk/caseflow_app/internal/core/domain"
	portssvc "github.com/opsdesk/caseflow_app/internal/core/ports/services"
	"github.com/opsdesk/caseflow_app/internal/core/services"
	"github.com/opsdesk/caseflow_app/internal/dto"
	"github.com/opsdesk/caseflow_app/internal/middleware"
)

// MockCaseService mocks the case service facade for handler tests.
type MockCaseService struct {
	mock.Mock
}

var _ portssvc.CaseSvcFacade = (*MockCaseService)(nil)

func (m *MockCaseService) CreateCase(ctx context.Context, actor domain.Identity, req dto.CreateCaseRequest) (*domain.Case, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCaseService) ApplyAction(ctx context.Context, caseID string, actor domain.Identity, req dto.CaseActionRequest) (*domain.Case, error) {
	args := m.Called(ctx, caseID, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCaseService) UpdateCaseDetails(ctx context.Context, caseID string, actor domain.Identity, req dto.UpdateCaseRequest) (*domain.Case, error) {
	args := m.Called(ctx, caseID, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCaseService) AddDocument(ctx context.Context, caseID string, actor domain.Identity, req dto.AddDocumentRequest) (*domain.Case, error) {
	args := m.Called(ctx, caseID, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCaseService) GetCase(ctx context.Context, caseID string, actor domain.Identity) (*domain.Case, error) {
	args := m.Called(ctx, caseID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCaseService) ListForRole(ctx context.Context, actor domain.Identity, params dto.ListCasesParams) (*dto.ListCasesResponse, error) {
	args := m.Called(ctx, actor, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListCasesResponse), args.Error(1)
}

// identityInjector stands in for the auth middleware in tests.
func identityInjector(identity domain.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(middleware.WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

func setupCaseRouter(svc portssvc.CaseSvcFacade, identity *domain.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/api/v1")
	if identity != nil {
		group.Use(identityInjector(*identity))
	}
	registerCaseRoutes(group, svc)
	return r
}

func sampleCase(createdBy string) *domain.Case {
	now := time.Now().UTC()
	return &domain.Case{
		CaseID:                 uuid.NewString(),
		Name:                   "Deposit for ACME",
		Beneficiary:            "ACME Corp",
		Domiciliation:          "Main Branch",
		CurrencyCode:           "USD",
		Amount:                 decimal.NewFromInt(1000),
		Reason:                 "Quarterly deposit",
		PhysicalDepositDate:    now,
		SystemRegistrationDate: now,
		Status:                 domain.StatusCreated,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
			Version:       1,
		},
	}
}

func TestCreateCaseHandler(t *testing.T) {
	agent := domain.Identity{UserID: uuid.NewString(), Email: "agent@example.com", Role: domain.RoleAgentOPS}
	body := map[string]any{
		"name":                "Deposit for ACME",
		"beneficiary":         "ACME Corp",
		"domiciliation":       "Main Branch",
		"currencyCode":        "USD",
		"amount":              "1000",
		"reason":              "Quarterly deposit",
		"physicalDepositDate": time.Now().UTC().Format(time.RFC3339),
	}

	t.Run("created", func(t *testing.T) {
		mockSvc := new(MockCaseService)
		kase := sampleCase(agent.UserID)
		mockSvc.On("CreateCase", mock.Anything, agent, mock.AnythingOfType("dto.CreateCaseRequest")).Return(kase, nil).Once()

		r := setupCaseRouter(mockSvc, &agent)
		w := httptest.NewRecorder()
		payload, _ := json.Marshal(body)
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/cases", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp dto.CaseResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, kase.CaseID, resp.CaseID)
		assert.Equal(t, string(domain.StatusCreated), resp.Status)
		mockSvc.AssertExpectations(t)
	})

	t.Run("role denied maps to 403", func(t *testing.T) {
		mockSvc := new(MockCaseService)
		desk := domain.Identity{UserID: uuid.NewString(), Role: domain.RoleTradeDesk}
		mockSvc.On("CreateCase", mock.Anything, desk, mock.AnythingOfType("dto.CreateCaseRequest")).
			Return(nil, fmt.Errorf("%w: only Agent OPS may create cases", apperrors.ErrRoleNotPermitted)).Once()

		r := setupCaseRouter(mockSvc, &desk)
		w := httptest.NewRecorder()
		payload, _ := json.Marshal(body)
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/cases", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing identity maps to 401", func(t *testing.T) {
		mockSvc := new(MockCaseService)
		r := setupCaseRouter(mockSvc, nil)
		w := httptest.NewRecorder()
		payload, _ := json.Marshal(body)
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/cases", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockSvc.AssertNotCalled(t, "CreateCase", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed body maps to 400", func(t *testing.T) {
		mockSvc := new(MockCaseService)
		r := setupCaseRouter(mockSvc, &agent)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/cases", bytes.NewReader([]byte(`{"name":`)))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertNotCalled(t, "CreateCase", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestApplyActionHandler(t *testing.T) {
	desk := domain.Identity{UserID: uuid.NewString(), Email: "desk@example.com", Role: domain.RoleTradeDesk}
	caseID := uuid.NewString()

	actionBody := func(action string, comment string) []byte {
		payload, _ := json.Marshal(map[string]string{"action": action, "comment": comment})
		return payload
	}

	t.Run("transition applied returns 200", func(t *testing.T) {
		mockSvc := new(MockCaseService)
		kase := sampleCase(uuid.NewString())
		kase.CaseID = caseID
		kase.Status = domain.StatusCompleted
		mockSvc.On("ApplyAction", mock.Anything, caseID, desk, mock.AnythingOfType("dto.CaseActionRequest")).Return(kase, nil).Once()

		r := setupCaseRouter(mockSvc, &desk)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/cases/"+caseID+"/actions", bytes.NewReader(actionBody("complete", "")))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.CaseResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	})

	t.Run("delete returns 204 with empty body", func(t *testing.T) {
		mockSvc := new(MockCaseService)
		kase := sampleCase(uuid.NewString())
		mockSvc.On("ApplyAction", mock.Anything, caseID, desk, mock.AnythingOfType("dto.CaseActionRequest")).Return(kase, nil).Once()

		r := setupCaseRouter(mockSvc, &desk)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/cases/"+caseID+"/actions", bytes.NewReader(actionBody("delete", "")))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("invalid forward target reads as missing target, not missing case", func(t *testing.T) {
		mockSvc := new(MockCaseService)
		mockSvc.On("ApplyAction", mock.Anything, caseID, desk, mock.AnythingOfType("dto.CaseActionRequest")).
			Return(nil, services.ErrInvalidTarget).Once()

		r := setupCaseRouter(mockSvc, &desk)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/cases/"+caseID+"/actions", bytes.NewReader(actionBody("forward_to_officer", "please review this case")))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "target treasury officer")
	})

	t.Run("error taxonomy maps to status codes", func(t *testing.T) {
		tests := []struct {
			name       string
			err        error
			wantStatus int
			retryable  *bool
		}{
			{"forbidden", fmt.Errorf("%w: role may not act", apperrors.ErrRoleNotPermitted), http.StatusForbidden, nil},
			{"no such transition", fmt.Errorf("%w: action not defined", apperrors.ErrNoSuchTransition), http.StatusForbidden, nil},
			{"not found", apperrors.ErrNotFound, http.StatusNotFound, nil},
			{"validation", fmt.Errorf("%w: comment too short", apperrors.ErrValidation), http.StatusBadRequest, nil},
			{"state moved", fmt.Errorf("%w: case moved on", apperrors.ErrInvalidTransition), http.StatusConflict, boolPtr(false)},
			{"lock contention", fmt.Errorf("%w: concurrent update", apperrors.ErrConflict), http.StatusConflict, boolPtr(true)},
			{"store timeout", fmt.Errorf("%w: case store timed out", apperrors.ErrUnavailable), http.StatusServiceUnavailable, boolPtr(true)},
			{"unexpected", fmt.Errorf("broken pipe"), http.StatusInternalServerError, nil},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				mockSvc := new(MockCaseService)
				mockSvc.On("ApplyAction", mock.Anything, caseID, desk, mock.AnythingOfType("dto.CaseActionRequest")).Return(nil, tc.err).Once()

				r := setupCaseRouter(mockSvc, &desk)
				w := httptest.NewRecorder()
				req, _ := http.NewRequest(http.MethodPost, "/api/v1/cases/"+caseID+"/actions", bytes.NewReader(actionBody("complete", "")))
				req.Header.Set("Content-Type", "application/json")
				r.ServeHTTP(w, req)

				assert.Equal(t, tc.wantStatus, w.Code)
				if tc.retryable != nil {
					var resp map[string]any
					require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
					assert.Equal(t, *tc.retryable, resp["retryable"])
				}
			})
		}
	})
}

func TestGetCaseHandler(t *testing.T) {
	agent := domain.Identity{UserID: uuid.NewString(), Role: domain.RoleAgentOPS}
	caseID := uuid.NewString()

	t.Run("found", func(t *testing.T) {
		mockSvc := new(MockCaseService)
		kase := sampleCase(agent.UserID)
		kase.CaseID = caseID
		mockSvc.On("GetCase", mock.Anything, caseID, agent).Return(kase, nil).Once()

		r := setupCaseRouter(mockSvc, &agent)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/cases/"+caseID, nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.CaseResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, caseID, resp.CaseID)
	})

	t.Run("invisible reads as 404", func(t *testing.T) {
		mockSvc := new(MockCaseService)
		mockSvc.On("GetCase", mock.Anything, caseID, agent).Return(nil, apperrors.ErrNotFound).Once()

		r := setupCaseRouter(mockSvc, &agent)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/cases/"+caseID, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListCasesHandler(t *testing.T) {
	desk := domain.Identity{UserID: uuid.NewString(), Role: domain.RoleTradeDesk}

	t.Run("query params bound", func(t *testing.T) {
		mockSvc := new(MockCaseService)
		token := "b3BhcXVl"
		resp := &dto.ListCasesResponse{Cases: []dto.CaseResponse{}, NextToken: &token}
		mockSvc.On("ListForRole", mock.Anything, desk, mock.AnythingOfType("dto.ListCasesParams")).Return(resp, nil).Once()

		r := setupCaseRouter(mockSvc, &desk)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/cases?includeCompleted=true&limit=5", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		params := mockSvc.Calls[0].Arguments.Get(2).(dto.ListCasesParams)
		assert.True(t, params.IncludeCompleted)
		assert.Equal(t, 5, params.Limit)

		var body dto.ListCasesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.NotNil(t, body.NextToken)
		assert.Equal(t, token, *body.NextToken)
	})

	t.Run("limit defaults to 20", func(t *testing.T) {
		mockSvc := new(MockCaseService)
		mockSvc.On("ListForRole", mock.Anything, desk, mock.AnythingOfType("dto.ListCasesParams")).
			Return(&dto.ListCasesResponse{Cases: []dto.CaseResponse{}}, nil).Once()

		r := setupCaseRouter(mockSvc, &desk)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/cases", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		params := mockSvc.Calls[0].Arguments.Get(2).(dto.ListCasesParams)
		assert.Equal(t, 20, params.Limit)
	})
}

func TestUpdateCaseHandler(t *testing.T) {
	agent := domain.Identity{UserID: uuid.NewString(), Role: domain.RoleAgentOPS}
	caseID := uuid.NewString()

	t.Run("no longer editable maps to 409 not retryable", func(t *testing.T) {
		mockSvc := new(MockCaseService)
		mockSvc.On("UpdateCaseDetails", mock.Anything, caseID, agent, mock.AnythingOfType("dto.UpdateCaseRequest")).
			Return(nil, fmt.Errorf("%w: case details may only be changed before submission", apperrors.ErrInvalidTransition)).Once()

		r := setupCaseRouter(mockSvc, &agent)
		w := httptest.NewRecorder()
		payload, _ := json.Marshal(map[string]string{"reason": "corrected"})
		req, _ := http.NewRequest(http.MethodPut, "/api/v1/cases/"+caseID, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["retryable"])
	})
}

func TestAddDocumentHandler(t *testing.T) {
	agent := domain.Identity{UserID: uuid.NewString(), Role: domain.RoleAgentOPS}
	caseID := uuid.NewString()

	t.Run("created", func(t *testing.T) {
		mockSvc := new(MockCaseService)
		kase := sampleCase(agent.UserID)
		kase.CaseID = caseID
		kase.Documents = []domain.Document{{
			DocumentID: uuid.NewString(),
			CaseID:     caseID,
			FileName:   "slip.pdf",
			FileType:   "application/pdf",
			UploadedBy: agent.UserID,
		}}
		mockSvc.On("AddDocument", mock.Anything, caseID, agent, mock.AnythingOfType("dto.AddDocumentRequest")).Return(kase, nil).Once()

		r := setupCaseRouter(mockSvc, &agent)
		w := httptest.NewRecorder()
		payload, _ := json.Marshal(map[string]string{
			"fileName":    "slip.pdf",
			"fileType":    "application/pdf",
			"storagePath": "cases/slip.pdf",
		})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/cases/"+caseID+"/documents", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp dto.CaseResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Documents, 1)
		assert.Equal(t, "slip.pdf", resp.Documents[0].FileName)
	})

	t.Run("missing fields map to 400", func(t *testing.T) {
		mockSvc := new(MockCaseService)
		r := setupCaseRouter(mockSvc, &agent)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/cases/"+caseID+"/documents", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertNotCalled(t, "AddDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func boolPtr(b bool) *bool { return &b }
