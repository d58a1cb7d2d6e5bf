package repositories

import (
	"context"

	"github.com/opsdesk/caseflow_app/internal/core/domain"
)

// CaseFilter narrows a case listing to one role's queue. It is a projection
// over status and assignment only; there is no independently maintained view.
type CaseFilter struct {
	Statuses          []domain.CaseStatus
	CreatedBy         string // Non-empty: only cases created by this user
	AssignedOfficerID string // Non-empty: only cases assigned to this officer
	Limit             int
	NextToken         *string
}

// CaseReader defines read operations for case data.
type CaseReader interface {
	// FindCaseByID retrieves a case with its documents and audit trail.
	FindCaseByID(ctx context.Context, caseID string) (*domain.Case, error)

	// ListCases retrieves a filtered, token-paginated list of cases (headers only,
	// without documents or audit entries). Returns the cases and a next-page token.
	ListCases(ctx context.Context, filter CaseFilter) ([]domain.Case, *string, error)
}

// CaseWriter defines write operations for case data. Every status write is
// paired with exactly one audit entry inside a single database transaction.
type CaseWriter interface {
	// CreateCaseWithAudit inserts a new case together with its creation audit entry.
	CreateCaseWithAudit(ctx context.Context, kase domain.Case, entry domain.AuditEntry) error

	// SaveCaseWithAudit updates the case row conditioned on expectedVersion and
	// appends the audit entry atomically. Returns apperrors.ErrConflict when the
	// version no longer matches, apperrors.ErrNotFound when the case is gone.
	SaveCaseWithAudit(ctx context.Context, kase domain.Case, entry domain.AuditEntry, expectedVersion int64) error

	// UpdateCaseDetails rewrites the descriptive fields, conditioned on expectedVersion.
	UpdateCaseDetails(ctx context.Context, kase domain.Case, expectedVersion int64) error

	// DeleteCase hard-deletes the case, its documents, and its ledger, conditioned
	// on expectedVersion. There is no soft delete or undo.
	DeleteCase(ctx context.Context, caseID string, expectedVersion int64) error

	// AddDocument appends document metadata to the case.
	AddDocument(ctx context.Context, doc domain.Document) error
}

// CaseRepositoryFacade combines all case-related repository interfaces.
type CaseRepositoryFacade interface {
	CaseReader
	CaseWriter
}

// CaseRepositoryWithTx extends CaseRepositoryFacade with transaction capabilities.
type CaseRepositoryWithTx interface {
	CaseRepositoryFacade
	TransactionManager
}
