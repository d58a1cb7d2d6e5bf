// Package workflow holds the case state machine and its role-based
// authorization policy. Decide is a pure function over the transition
// table: no storage, no side effects, so the full {role x state x action}
// cross product can be tested exhaustively.
package workflow

import (
	"fmt"
	"strings"

	"github.com/opsdesk/caseflow_app/internal/apperrors"
	"github.com/opsdesk/caseflow_app/internal/core/domain"
)

// Payload is the action payload the policy validates before permitting
// a transition. Comment length and officer presence rules live here,
// enforced once, server-side.
type Payload struct {
	Comment         string
	TargetOfficerID string
}

// Transition is one row of the state machine: who may move a case from
// where, to where, and under which payload constraints.
type Transition struct {
	From   domain.CaseStatus
	Action domain.CaseAction
	Role   domain.Role
	To     domain.CaseStatus

	// MinCommentLen of 0 means the comment is optional.
	MinCommentLen   int
	RequiresOfficer bool // Payload must name a target treasury officer
	AssignsOfficer  bool // Applying sets Case.AssignedOfficerID
	ClearsOfficer   bool // Applying clears Case.AssignedOfficerID
	Removes         bool // Hard delete; the case leaves the store entirely
	Audit           domain.AuditAction
}

// transitions is the complete machine. Any (state, action) pair absent
// here does not exist; any role mismatch on a present pair is denied.
var transitions = []Transition{
	{From: domain.StatusCreated, Action: domain.ActionSubmit, Role: domain.RoleAgentOPS,
		To: domain.StatusWaiting, Audit: domain.AuditStatusChanged},
	{From: domain.StatusWaiting, Action: domain.ActionSendBack, Role: domain.RoleTreasuryOPS,
		To: domain.StatusSentBack, MinCommentLen: 1, ClearsOfficer: true, Audit: domain.AuditSentBack},
	{From: domain.StatusWaiting, Action: domain.ActionForwardToOfficer, Role: domain.RoleTreasuryOPS,
		To: domain.StatusForwardedOfficer, MinCommentLen: 10, RequiresOfficer: true, AssignsOfficer: true, Audit: domain.AuditForwarded},
	{From: domain.StatusSentBack, Action: domain.ActionResubmit, Role: domain.RoleAgentOPS,
		To: domain.StatusWaiting, Audit: domain.AuditStatusChanged},
	{From: domain.StatusForwardedOfficer, Action: domain.ActionForwardToTradeDesk, Role: domain.RoleTreasuryOfficer,
		To: domain.StatusForwardedTradeDesk, Audit: domain.AuditForwarded},
	{From: domain.StatusForwardedOfficer, Action: domain.ActionComplete, Role: domain.RoleTreasuryOfficer,
		To: domain.StatusCompleted, Audit: domain.AuditCompleted},
	{From: domain.StatusForwardedTradeDesk, Action: domain.ActionComplete, Role: domain.RoleTradeDesk,
		To: domain.StatusCompleted, Audit: domain.AuditCompleted},
	{From: domain.StatusForwardedTradeDesk, Action: domain.ActionDelete, Role: domain.RoleTradeDesk,
		Removes: true, Audit: domain.AuditDeleted},
	{From: domain.StatusForwardedTradeDesk, Action: domain.ActionAddNote, Role: domain.RoleTradeDesk,
		To: domain.StatusForwardedTradeDesk, MinCommentLen: 10, Audit: domain.AuditNoteAdded},
}

// Table returns a copy of the transition table, mainly for diagnostics and tests.
func Table() []Transition {
	out := make([]Transition, len(transitions))
	copy(out, transitions)
	return out
}

// Decide maps (role, current state, requested action, payload) to either the
// matching transition or a typed denial:
//   - apperrors.ErrNoSuchTransition when the (state, action) pair is not in the table,
//   - apperrors.ErrRoleNotPermitted when the pair exists for a different role,
//   - apperrors.ErrValidation when the payload fails the transition's rules.
func Decide(role domain.Role, current domain.CaseStatus, action domain.CaseAction, p Payload) (Transition, error) {
	var match *Transition
	pairExists := false
	for i := range transitions {
		t := &transitions[i]
		if t.From != current || t.Action != action {
			continue
		}
		pairExists = true
		if t.Role == role {
			match = t
			break
		}
	}
	if match == nil {
		if pairExists {
			return Transition{}, fmt.Errorf("%w: role %s may not %s a case in state %s",
				apperrors.ErrRoleNotPermitted, role, action, current)
		}
		return Transition{}, fmt.Errorf("%w: action %s is not defined for state %s",
			apperrors.ErrNoSuchTransition, action, current)
	}

	if err := validatePayload(*match, p); err != nil {
		return Transition{}, err
	}
	return *match, nil
}

func validatePayload(t Transition, p Payload) error {
	comment := strings.TrimSpace(p.Comment)
	if t.MinCommentLen > 0 && len([]rune(comment)) < t.MinCommentLen {
		return fmt.Errorf("%w: action %s requires a comment of at least %d characters",
			apperrors.ErrValidation, t.Action, t.MinCommentLen)
	}
	if t.RequiresOfficer && strings.TrimSpace(p.TargetOfficerID) == "" {
		return fmt.Errorf("%w: action %s requires a target treasury officer",
			apperrors.ErrValidation, t.Action)
	}
	return nil
}
