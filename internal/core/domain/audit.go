package domain

import "time"

// AuditAction tags what kind of action produced an audit entry.
type AuditAction string

const (
	AuditCreated       AuditAction = "created"
	AuditSentBack      AuditAction = "sent_back"
	AuditForwarded     AuditAction = "forwarded"
	AuditStatusChanged AuditAction = "status_changed"
	AuditNoteAdded     AuditAction = "note_added"
	AuditCompleted     AuditAction = "completed"
	AuditDeleted       AuditAction = "deleted"
)

// AuditEntry is one immutable record of an action taken on a case.
// ActorRole is captured at action time, not looked up later, so a later
// role change on the user never reinterprets history. Entries are never
// edited or removed; the per-case ledger reconstructs the full transition
// history of a case.
type AuditEntry struct {
	EntryID   string      `json:"entryID"`
	CaseID    string      `json:"caseID"`
	ActorID   string      `json:"actorID"`
	ActorRole Role        `json:"actorRole"`
	Action    AuditAction `json:"action"`
	Comment   string      `json:"comment"`
	CreatedAt time.Time   `json:"createdAt"`
}
