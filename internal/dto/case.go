package dto

import (
	"time"

	"github.com/opsdesk/caseflow_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCaseRequest carries the descriptive fields an agent supplies at creation.
type CreateCaseRequest struct {
	Name                string          `json:"name" binding:"required"`
	Beneficiary         string          `json:"beneficiary" binding:"required"`
	Domiciliation       string          `json:"domiciliation" binding:"required"`
	CurrencyCode        string          `json:"currencyCode" binding:"required,len=3"`
	Amount              decimal.Decimal `json:"amount" binding:"required"`
	Reason              string          `json:"reason" binding:"required"`
	PhysicalDepositDate time.Time       `json:"physicalDepositDate" binding:"required"`
}

// UpdateCaseRequest updates descriptive fields before submission.
// Pointers distinguish omitted fields from zero values.
type UpdateCaseRequest struct {
	Name                *string          `json:"name"`
	Beneficiary         *string          `json:"beneficiary"`
	Domiciliation       *string          `json:"domiciliation"`
	CurrencyCode        *string          `json:"currencyCode" binding:"omitempty,len=3"`
	Amount              *decimal.Decimal `json:"amount"`
	Reason              *string          `json:"reason"`
	PhysicalDepositDate *time.Time       `json:"physicalDepositDate"`
}

// CaseActionRequest is the payload of the single workflow-action endpoint.
type CaseActionRequest struct {
	Action          domain.CaseAction `json:"action" binding:"required"`
	Comment         string            `json:"comment"`
	TargetOfficerID string            `json:"targetOfficerId"`
}

// AddDocumentRequest appends document metadata to a case. The bytes
// themselves live behind the external document store; the workflow core
// only tracks the reference.
type AddDocumentRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	FileType    string `json:"fileType" binding:"required"`
	StoragePath string `json:"storagePath" binding:"required"`
}

// ListCasesParams defines query parameters for listing a role's queue.
type ListCasesParams struct {
	IncludeCompleted bool    `form:"includeCompleted"`
	Limit            int     `form:"limit,default=20"`
	NextToken        *string `form:"nextToken"`
}

// DocumentResponse is the API shape of attached document metadata.
type DocumentResponse struct {
	DocumentID  string    `json:"documentID"`
	FileName    string    `json:"fileName"`
	FileType    string    `json:"fileType"`
	StoragePath string    `json:"storagePath"`
	UploadedAt  time.Time `json:"uploadedAt"`
	UploadedBy  string    `json:"uploadedBy"`
}

// AuditEntryResponse is one row of a case's history.
type AuditEntryResponse struct {
	EntryID   string    `json:"entryID"`
	ActorID   string    `json:"actorID"`
	ActorRole string    `json:"actorRole"`
	Action    string    `json:"action"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CaseResponse is the API shape of a case.
type CaseResponse struct {
	CaseID                 string               `json:"caseID"`
	Name                   string               `json:"name"`
	Beneficiary            string               `json:"beneficiary"`
	Domiciliation          string               `json:"domiciliation"`
	CurrencyCode           string               `json:"currencyCode"`
	Amount                 decimal.Decimal      `json:"amount"`
	Reason                 string               `json:"reason"`
	PhysicalDepositDate    time.Time            `json:"physicalDepositDate"`
	SystemRegistrationDate time.Time            `json:"systemRegistrationDate"`
	Status                 string               `json:"status"`
	AssignedOfficerID      *string              `json:"assignedOfficerID,omitempty"`
	Documents              []DocumentResponse   `json:"documents,omitempty"`
	Comments               []AuditEntryResponse `json:"comments,omitempty"`
	CreatedAt              time.Time            `json:"createdAt"`
	CreatedBy              string               `json:"createdBy"`
	LastUpdatedAt          time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy          string               `json:"lastUpdatedBy"`
}

// ListCasesResponse wraps a page of cases plus the next pagination token.
type ListCasesResponse struct {
	Cases     []CaseResponse `json:"cases"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToCaseResponse converts a domain Case to its API shape.
func ToCaseResponse(c *domain.Case) CaseResponse {
	resp := CaseResponse{
		CaseID:                 c.CaseID,
		Name:                   c.Name,
		Beneficiary:            c.Beneficiary,
		Domiciliation:          c.Domiciliation,
		CurrencyCode:           c.CurrencyCode,
		Amount:                 c.Amount,
		Reason:                 c.Reason,
		PhysicalDepositDate:    c.PhysicalDepositDate,
		SystemRegistrationDate: c.SystemRegistrationDate,
		Status:                 string(c.Status),
		AssignedOfficerID:      c.AssignedOfficerID,
		CreatedAt:              c.CreatedAt,
		CreatedBy:              c.CreatedBy,
		LastUpdatedAt:          c.LastUpdatedAt,
		LastUpdatedBy:          c.LastUpdatedBy,
	}
	if len(c.Documents) > 0 {
		resp.Documents = make([]DocumentResponse, len(c.Documents))
		for i, d := range c.Documents {
			resp.Documents[i] = DocumentResponse{
				DocumentID:  d.DocumentID,
				FileName:    d.FileName,
				FileType:    d.FileType,
				StoragePath: d.StoragePath,
				UploadedAt:  d.UploadedAt,
				UploadedBy:  d.UploadedBy,
			}
		}
	}
	if len(c.Comments) > 0 {
		resp.Comments = make([]AuditEntryResponse, len(c.Comments))
		for i, e := range c.Comments {
			resp.Comments[i] = AuditEntryResponse{
				EntryID:   e.EntryID,
				ActorID:   e.ActorID,
				ActorRole: string(e.ActorRole),
				Action:    string(e.Action),
				Comment:   e.Comment,
				CreatedAt: e.CreatedAt,
			}
		}
	}
	return resp
}

// ToListCasesResponse converts a page of domain cases plus token.
func ToListCasesResponse(cases []domain.Case, nextToken *string) ListCasesResponse {
	out := make([]CaseResponse, len(cases))
	for i := range cases {
		out[i] = ToCaseResponse(&cases[i])
	}
	return ListCasesResponse{Cases: out, NextToken: nextToken}
}
