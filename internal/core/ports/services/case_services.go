package services

import (
	"context"

	"github.com/opsdesk/caseflow_app/internal/core/domain"
	"github.com/opsdesk/caseflow_app/internal/dto"
)

// CaseSvcFacade is the workflow engine surface. Every status mutation in the
// system flows through ApplyAction; no other code path writes a case status.
type CaseSvcFacade interface {
	// CreateCase opens a new case in state created. Agent OPS only.
	CreateCase(ctx context.Context, actor domain.Identity, req dto.CreateCaseRequest) (*domain.Case, error)

	// ApplyAction validates the requested transition against the authorization
	// policy, applies it, and appends exactly one audit entry, atomically.
	ApplyAction(ctx context.Context, caseID string, actor domain.Identity, req dto.CaseActionRequest) (*domain.Case, error)

	// UpdateCaseDetails edits the descriptive fields. Creator only, and only
	// while the case has not left the creating role's hands.
	UpdateCaseDetails(ctx context.Context, caseID string, actor domain.Identity, req dto.UpdateCaseRequest) (*domain.Case, error)

	// AddDocument appends document metadata to the case. Creator only, same
	// window as UpdateCaseDetails.
	AddDocument(ctx context.Context, caseID string, actor domain.Identity, req dto.AddDocumentRequest) (*domain.Case, error)

	// GetCase returns the case with documents and audit trail, subject to the
	// same role-scoped visibility as ListForRole.
	GetCase(ctx context.Context, caseID string, actor domain.Identity) (*domain.Case, error)

	// ListForRole returns the actor's queue: a filtered projection derived
	// strictly from status plus assignment.
	ListForRole(ctx context.Context, actor domain.Identity, params dto.ListCasesParams) (*dto.ListCasesResponse, error)
}
