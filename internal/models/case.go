package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Case is the database row for a client case.
type Case struct {
	CaseID                 string          `db:"case_id"`
	Name                   string          `db:"name"`
	Beneficiary            string          `db:"beneficiary"`
	Domiciliation          string          `db:"domiciliation"`
	CurrencyCode           string          `db:"currency_code"`
	Amount                 decimal.Decimal `db:"amount"`
	Reason                 string          `db:"reason"`
	PhysicalDepositDate    time.Time       `db:"physical_deposit_date"`
	SystemRegistrationDate time.Time       `db:"system_registration_date"`
	Status                 string          `db:"status"`
	AssignedOfficerID      *string         `db:"assigned_officer_id"`
	AuditFields
}

// CaseDocument is the database row for document metadata attached to a case.
type CaseDocument struct {
	DocumentID  string    `db:"document_id"`
	CaseID      string    `db:"case_id"`
	FileName    string    `db:"file_name"`
	FileType    string    `db:"file_type"`
	StoragePath string    `db:"storage_path"`
	UploadedAt  time.Time `db:"uploaded_at"`
	UploadedBy  string    `db:"uploaded_by"`
}

// CaseAuditEntry is the database row for one immutable ledger entry.
type CaseAuditEntry struct {
	EntryID   string    `db:"entry_id"`
	CaseID    string    `db:"case_id"`
	ActorID   string    `db:"actor_id"`
	ActorRole string    `db:"actor_role"`
	Action    string    `db:"action"`
	Comment   string    `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
}
