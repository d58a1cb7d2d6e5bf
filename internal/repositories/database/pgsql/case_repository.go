package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opsdesk/caseflow_app/internal/apperrors"
	"github.com/opsdesk/caseflow_app/internal/core/domain"
	portsrepo "github.com/opsdesk/caseflow_app/internal/core/ports/repositories"
	"github.com/opsdesk/caseflow_app/internal/models"
	"github.com/opsdesk/caseflow_app/internal/utils/mapping"
	"github.com/opsdesk/caseflow_app/internal/utils/pagination"
)

type PgxCaseRepository struct {
	BaseRepository
}

// newPgxCaseRepository creates a new repository for case, document, and audit ledger data.
func newPgxCaseRepository(pool *pgxpool.Pool) portsrepo.CaseRepositoryWithTx {
	return &PgxCaseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCaseRepository implements portsrepo.CaseRepositoryWithTx
var _ portsrepo.CaseRepositoryWithTx = (*PgxCaseRepository)(nil)

const caseColumns = `case_id, name, beneficiary, domiciliation, currency_code, amount, reason,
	       physical_deposit_date, system_registration_date, status, assigned_officer_id,
	       created_at, created_by, last_updated_at, last_updated_by, version`

const insertAuditEntryQuery = `
	INSERT INTO case_audit_entries (entry_id, case_id, actor_id, actor_role, action, comment, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

// CreateCaseWithAudit inserts the case row together with its creation audit
// entry inside one database transaction.
func (r *PgxCaseRepository) CreateCaseWithAudit(ctx context.Context, kase domain.Case, entry domain.AuditEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored after a successful commit

	modelCase := mapping.ToModelCase(kase)
	caseQuery := `
		INSERT INTO cases (
			case_id, name, beneficiary, domiciliation, currency_code, amount, reason,
			physical_deposit_date, system_registration_date, status, assigned_officer_id,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, caseQuery,
		modelCase.CaseID,
		modelCase.Name,
		modelCase.Beneficiary,
		modelCase.Domiciliation,
		modelCase.CurrencyCode,
		modelCase.Amount,
		modelCase.Reason,
		modelCase.PhysicalDepositDate,
		modelCase.SystemRegistrationDate,
		modelCase.Status,
		modelCase.AssignedOfficerID,
		modelCase.CreatedAt,
		modelCase.CreatedBy,
		modelCase.LastUpdatedAt,
		modelCase.LastUpdatedBy,
		modelCase.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert case "+modelCase.CaseID, err)
	}

	if err := insertAuditEntry(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveCaseWithAudit updates the case row conditioned on expectedVersion and
// appends the audit entry in the same transaction. A version mismatch leaves
// both tables untouched and reports ErrConflict; a missing row reports
// ErrNotFound.
func (r *PgxCaseRepository) SaveCaseWithAudit(ctx context.Context, kase domain.Case, entry domain.AuditEntry, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelCase := mapping.ToModelCase(kase)
	updateQuery := `
		UPDATE cases
		SET status = $1,
		    assigned_officer_id = $2,
		    last_updated_at = $3,
		    last_updated_by = $4,
		    version = version + 1
		WHERE case_id = $5 AND version = $6;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		modelCase.Status,
		modelCase.AssignedOfficerID,
		modelCase.LastUpdatedAt,
		modelCase.LastUpdatedBy,
		modelCase.CaseID,
		expectedVersion,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update case "+modelCase.CaseID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMissedWrite(ctx, tx, modelCase.CaseID)
	}

	if err := insertAuditEntry(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateCaseDetails rewrites the descriptive fields, conditioned on expectedVersion.
// No audit entry is written; details edits are not workflow transitions.
func (r *PgxCaseRepository) UpdateCaseDetails(ctx context.Context, kase domain.Case, expectedVersion int64) error {
	modelCase := mapping.ToModelCase(kase)
	query := `
		UPDATE cases
		SET name = $1,
		    beneficiary = $2,
		    domiciliation = $3,
		    currency_code = $4,
		    amount = $5,
		    reason = $6,
		    physical_deposit_date = $7,
		    last_updated_at = $8,
		    last_updated_by = $9,
		    version = version + 1
		WHERE case_id = $10 AND version = $11;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelCase.Name,
		modelCase.Beneficiary,
		modelCase.Domiciliation,
		modelCase.CurrencyCode,
		modelCase.Amount,
		modelCase.Reason,
		modelCase.PhysicalDepositDate,
		modelCase.LastUpdatedAt,
		modelCase.LastUpdatedBy,
		modelCase.CaseID,
		expectedVersion,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update case details "+modelCase.CaseID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMissedWrite(ctx, r.Pool, modelCase.CaseID)
	}
	return nil
}

// DeleteCase hard-deletes the case row, conditioned on expectedVersion.
// Documents and audit entries go with it via ON DELETE CASCADE.
func (r *PgxCaseRepository) DeleteCase(ctx context.Context, caseID string, expectedVersion int64) error {
	query := `DELETE FROM cases WHERE case_id = $1 AND version = $2;`
	tag, err := r.Pool.Exec(ctx, query, caseID, expectedVersion)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete case "+caseID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMissedWrite(ctx, r.Pool, caseID)
	}
	return nil
}

// AddDocument appends document metadata to the case.
func (r *PgxCaseRepository) AddDocument(ctx context.Context, doc domain.Document) error {
	modelDoc := mapping.ToModelCaseDocument(doc)
	query := `
		INSERT INTO case_documents (document_id, case_id, file_name, file_type, storage_path, uploaded_at, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelDoc.DocumentID,
		modelDoc.CaseID,
		modelDoc.FileName,
		modelDoc.FileType,
		modelDoc.StoragePath,
		modelDoc.UploadedAt,
		modelDoc.UploadedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert document for case "+modelDoc.CaseID, err)
	}
	return nil
}

// FindCaseByID retrieves a case with its documents and full audit ledger.
func (r *PgxCaseRepository) FindCaseByID(ctx context.Context, caseID string) (*domain.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases WHERE case_id = $1;`

	var m models.Case
	err := r.Pool.QueryRow(ctx, query, caseID).Scan(
		&m.CaseID,
		&m.Name,
		&m.Beneficiary,
		&m.Domiciliation,
		&m.CurrencyCode,
		&m.Amount,
		&m.Reason,
		&m.PhysicalDepositDate,
		&m.SystemRegistrationDate,
		&m.Status,
		&m.AssignedOfficerID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find case by ID "+caseID, err)
	}

	domainCase := mapping.ToDomainCase(m)

	documents, err := r.findDocumentsByCaseID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	domainCase.Documents = documents

	entries, err := r.findAuditEntriesByCaseID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	domainCase.Comments = entries

	return &domainCase, nil
}

// ListCases retrieves a filtered, token-paginated list of case headers
// (without documents or audit entries), newest first.
func (r *PgxCaseRepository) ListCases(ctx context.Context, filter portsrepo.CaseFilter) ([]domain.Case, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether there is a next page.
	fetchLimit := limit + 1

	query := `SELECT ` + caseColumns + ` FROM cases WHERE 1=1`
	args := []interface{}{}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		query += ` AND status = ANY($` + strconv.Itoa(len(args)) + `)`
	}
	if filter.CreatedBy != "" {
		args = append(args, filter.CreatedBy)
		query += ` AND created_by = $` + strconv.Itoa(len(args))
	}
	if filter.AssignedOfficerID != "" {
		args = append(args, filter.AssignedOfficerID)
		query += ` AND assigned_officer_id = $` + strconv.Itoa(len(args))
	}

	if filter.NextToken != nil && *filter.NextToken != "" {
		lastCreatedAt, lastCaseID, decodeErr := pagination.DecodeCursor(*filter.NextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt, lastCaseID)
		query += ` AND (created_at, case_id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY created_at DESC, case_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query cases", err)
	}
	defer rows.Close()

	cases := make([]models.Case, 0, fetchLimit)
	for rows.Next() {
		var m models.Case
		err := rows.Scan(
			&m.CaseID,
			&m.Name,
			&m.Beneficiary,
			&m.Domiciliation,
			&m.CurrencyCode,
			&m.Amount,
			&m.Reason,
			&m.PhysicalDepositDate,
			&m.SystemRegistrationDate,
			&m.Status,
			&m.AssignedOfficerID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&m.Version,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan case row", err)
		}
		cases = append(cases, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating case rows", err)
	}

	var nextTokenVal *string
	if len(cases) > limit {
		last := cases[limit-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.CaseID)
		nextTokenVal = &token
		cases = cases[:limit]
	}

	return mapping.ToDomainCaseSlice(cases), nextTokenVal, nil
}

func (r *PgxCaseRepository) findDocumentsByCaseID(ctx context.Context, caseID string) ([]domain.Document, error) {
	query := `
		SELECT document_id, case_id, file_name, file_type, storage_path, uploaded_at, uploaded_by
		FROM case_documents
		WHERE case_id = $1
		ORDER BY uploaded_at, document_id;
	`
	rows, err := r.Pool.Query(ctx, query, caseID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query documents for case "+caseID, err)
	}
	defer rows.Close()

	documents := []models.CaseDocument{}
	for rows.Next() {
		var d models.CaseDocument
		err := rows.Scan(
			&d.DocumentID,
			&d.CaseID,
			&d.FileName,
			&d.FileType,
			&d.StoragePath,
			&d.UploadedAt,
			&d.UploadedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan document row for case "+caseID, err)
		}
		documents = append(documents, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating document rows for case "+caseID, err)
	}

	return mapping.ToDomainCaseDocumentSlice(documents), nil
}

func (r *PgxCaseRepository) findAuditEntriesByCaseID(ctx context.Context, caseID string) ([]domain.AuditEntry, error) {
	// Insertion order: the ledger reads as the case's transition history.
	query := `
		SELECT entry_id, case_id, actor_id, actor_role, action, comment, created_at
		FROM case_audit_entries
		WHERE case_id = $1
		ORDER BY created_at, entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, caseID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit entries for case "+caseID, err)
	}
	defer rows.Close()

	entries := []models.CaseAuditEntry{}
	for rows.Next() {
		var e models.CaseAuditEntry
		err := rows.Scan(
			&e.EntryID,
			&e.CaseID,
			&e.ActorID,
			&e.ActorRole,
			&e.Action,
			&e.Comment,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit entry row for case "+caseID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit entry rows for case "+caseID, err)
	}

	return mapping.ToDomainCaseAuditEntrySlice(entries), nil
}

// querier covers both the pool and an open transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// classifyMissedWrite distinguishes a version-check loss from a deleted case
// after a conditional write touched zero rows.
func (r *PgxCaseRepository) classifyMissedWrite(ctx context.Context, q querier, caseID string) error {
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cases WHERE case_id = $1);`, caseID).Scan(&exists)
	if err != nil {
		return apperrors.NewAppError(500, "failed to check case existence "+caseID, err)
	}
	if exists {
		return apperrors.ErrConflict
	}
	return apperrors.ErrNotFound
}

// insertAuditEntry appends one immutable ledger row inside the given transaction.
func insertAuditEntry(ctx context.Context, tx pgx.Tx, entry domain.AuditEntry) error {
	modelEntry := mapping.ToModelCaseAuditEntry(entry)
	_, err := tx.Exec(ctx, insertAuditEntryQuery,
		modelEntry.EntryID,
		modelEntry.CaseID,
		modelEntry.ActorID,
		modelEntry.ActorRole,
		modelEntry.Action,
		modelEntry.Comment,
		modelEntry.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit entry for case "+modelEntry.CaseID, err)
	}
	return nil
}
