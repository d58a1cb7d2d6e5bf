package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CaseStatus is the single source of truth for where a case sits in the
// pipeline. It is mutated exclusively through the workflow engine.
type CaseStatus string

const (
	StatusCreated            CaseStatus = "created"
	StatusWaiting            CaseStatus = "waiting"
	StatusSentBack           CaseStatus = "sent_back"
	StatusForwardedOfficer   CaseStatus = "forwarded_officer"
	StatusForwardedTradeDesk CaseStatus = "forwarded_trade_desk"
	StatusCompleted          CaseStatus = "completed"
)

// AllStatuses lists every reachable case status.
func AllStatuses() []CaseStatus {
	return []CaseStatus{
		StatusCreated,
		StatusWaiting,
		StatusSentBack,
		StatusForwardedOfficer,
		StatusForwardedTradeDesk,
		StatusCompleted,
	}
}

// CaseAction is a workflow action an actor may request against a case.
type CaseAction string

const (
	ActionSubmit             CaseAction = "submit"
	ActionSendBack           CaseAction = "send_back"
	ActionForwardToOfficer   CaseAction = "forward_to_officer"
	ActionResubmit           CaseAction = "resubmit"
	ActionForwardToTradeDesk CaseAction = "forward_to_trade_desk"
	ActionComplete           CaseAction = "complete"
	ActionDelete             CaseAction = "delete"
	ActionAddNote            CaseAction = "add_note"
)

// AllActions lists every workflow action.
func AllActions() []CaseAction {
	return []CaseAction{
		ActionSubmit,
		ActionSendBack,
		ActionForwardToOfficer,
		ActionResubmit,
		ActionForwardToTradeDesk,
		ActionComplete,
		ActionDelete,
		ActionAddNote,
	}
}

// Case represents one deposit/transfer request moving through the organization.
type Case struct {
	CaseID        string          `json:"caseID"` // Primary Key (UUID)
	Name          string          `json:"name"`
	Beneficiary   string          `json:"beneficiary"`
	Domiciliation string          `json:"domiciliation"`
	CurrencyCode  string          `json:"currencyCode"`
	Amount        decimal.Decimal `json:"amount"`
	Reason        string          `json:"reason"`

	// PhysicalDepositDate records a real-world event supplied by the agent;
	// it is never derived from server time. SystemRegistrationDate is.
	PhysicalDepositDate    time.Time `json:"physicalDepositDate"`
	SystemRegistrationDate time.Time `json:"systemRegistrationDate"`

	Status            CaseStatus `json:"status"`
	AssignedOfficerID *string    `json:"assignedOfficerID,omitempty"` // Set on forward_to_officer, cleared on send_back

	Documents []Document   `json:"documents,omitempty"` // Append-only
	Comments  []AuditEntry `json:"comments,omitempty"`  // Append-only

	AuditFields
}

// Editable reports whether the case's descriptive fields may still be changed.
// Only the creating role may edit, and only before the case leaves its hands.
func (c *Case) Editable() bool {
	return c.Status == StatusCreated || c.Status == StatusSentBack
}

// Terminal reports whether the case has reached a final state.
func (c *Case) Terminal() bool {
	return c.Status == StatusCompleted
}

// Document is file metadata attached to a case. The workflow core never
// reads file bytes; upload and download live behind the document store boundary.
type Document struct {
	DocumentID  string    `json:"documentID"`
	CaseID      string    `json:"caseID"`
	FileName    string    `json:"fileName"`
	FileType    string    `json:"fileType"`
	StoragePath string    `json:"storagePath"`
	UploadedAt  time.Time `json:"uploadedAt"`
	UploadedBy  string    `json:"uploadedBy"`
}
