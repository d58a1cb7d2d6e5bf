package workflow_test

import (
	"testing"

	"github.com/opsdesk/caseflow_app/internal/apperrors"
	"github.com/opsdesk/caseflow_app/internal/core/domain"
	"github.com/opsdesk/caseflow_app/internal/core/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validPayloadFor builds a payload that satisfies the given transition's rules.
func validPayloadFor(t workflow.Transition) workflow.Payload {
	p := workflow.Payload{}
	if t.MinCommentLen > 0 {
		p.Comment = "a comment long enough to satisfy any minimum"
	}
	if t.RequiresOfficer {
		p.TargetOfficerID = "officer-1"
	}
	return p
}

// TestDecide_FullCrossProduct walks every (role, state, action) triple.
// Triples in the table permit under a valid payload; every other triple
// denies, with the reason distinguishing a role mismatch from a
// nonexistent transition.
func TestDecide_FullCrossProduct(t *testing.T) {
	table := workflow.Table()

	lookup := func(role domain.Role, from domain.CaseStatus, action domain.CaseAction) *workflow.Transition {
		for i := range table {
			if table[i].Role == role && table[i].From == from && table[i].Action == action {
				return &table[i]
			}
		}
		return nil
	}
	pairExists := func(from domain.CaseStatus, action domain.CaseAction) bool {
		for i := range table {
			if table[i].From == from && table[i].Action == action {
				return true
			}
		}
		return false
	}

	for _, role := range domain.AllRoles() {
		for _, state := range domain.AllStatuses() {
			for _, action := range domain.AllActions() {
				entry := lookup(role, state, action)

				var payload workflow.Payload
				if entry != nil {
					payload = validPayloadFor(*entry)
				} else {
					payload = workflow.Payload{Comment: "long enough for any rule", TargetOfficerID: "officer-1"}
				}

				tr, err := workflow.Decide(role, state, action, payload)

				if entry != nil {
					require.NoError(t, err, "expected permit for %s/%s/%s", role, state, action)
					assert.Equal(t, entry.To, tr.To)
					assert.Equal(t, entry.Audit, tr.Audit)
					continue
				}

				require.Error(t, err, "expected deny for %s/%s/%s", role, state, action)
				if pairExists(state, action) {
					assert.ErrorIs(t, err, apperrors.ErrRoleNotPermitted, "%s/%s/%s", role, state, action)
				} else {
					assert.ErrorIs(t, err, apperrors.ErrNoSuchTransition, "%s/%s/%s", role, state, action)
				}
				// Both deny reasons are Forbidden subcases.
				assert.ErrorIs(t, err, apperrors.ErrForbidden)
			}
		}
	}
}

func TestDecide_PayloadValidation(t *testing.T) {
	tests := []struct {
		name    string
		role    domain.Role
		state   domain.CaseStatus
		action  domain.CaseAction
		payload workflow.Payload
		wantErr error
	}{
		{
			name:    "forward to officer with short comment",
			role:    domain.RoleTreasuryOPS,
			state:   domain.StatusWaiting,
			action:  domain.ActionForwardToOfficer,
			payload: workflow.Payload{Comment: "ok", TargetOfficerID: "officer-1"},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "forward to officer with exactly 10 chars passes",
			role:    domain.RoleTreasuryOPS,
			state:   domain.StatusWaiting,
			action:  domain.ActionForwardToOfficer,
			payload: workflow.Payload{Comment: "0123456789", TargetOfficerID: "officer-1"},
		},
		{
			name:    "forward to officer without target",
			role:    domain.RoleTreasuryOPS,
			state:   domain.StatusWaiting,
			action:  domain.ActionForwardToOfficer,
			payload: workflow.Payload{Comment: "needs manual review"},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "send back requires non-empty comment",
			role:    domain.RoleTreasuryOPS,
			state:   domain.StatusWaiting,
			action:  domain.ActionSendBack,
			payload: workflow.Payload{Comment: "   "},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "send back with one char passes",
			role:    domain.RoleTreasuryOPS,
			state:   domain.StatusWaiting,
			action:  domain.ActionSendBack,
			payload: workflow.Payload{Comment: "x"},
		},
		{
			name:    "trade desk note below minimum",
			role:    domain.RoleTradeDesk,
			state:   domain.StatusForwardedTradeDesk,
			action:  domain.ActionAddNote,
			payload: workflow.Payload{Comment: "too short"},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:   "forward to trade desk comment is optional",
			role:   domain.RoleTreasuryOfficer,
			state:  domain.StatusForwardedOfficer,
			action: domain.ActionForwardToTradeDesk,
		},
		{
			name:   "submit needs no payload",
			role:   domain.RoleAgentOPS,
			state:  domain.StatusCreated,
			action: domain.ActionSubmit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := workflow.Decide(tt.role, tt.state, tt.action, tt.payload)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecide_NoSilentDefaults(t *testing.T) {
	// Completed is terminal: nothing moves out of it.
	for _, role := range domain.AllRoles() {
		for _, action := range domain.AllActions() {
			_, err := workflow.Decide(role, domain.StatusCompleted, action, workflow.Payload{Comment: "a sufficiently long comment"})
			assert.ErrorIs(t, err, apperrors.ErrForbidden, "%s/%s from completed", role, action)
		}
	}

	// Delete is only reachable from the trade desk queue.
	for _, state := range domain.AllStatuses() {
		if state == domain.StatusForwardedTradeDesk {
			continue
		}
		_, err := workflow.Decide(domain.RoleTradeDesk, state, domain.ActionDelete, workflow.Payload{})
		assert.ErrorIs(t, err, apperrors.ErrNoSuchTransition, "delete from %s", state)
	}
}

func TestTable_SideEffectFlags(t *testing.T) {
	tr, err := workflow.Decide(domain.RoleTreasuryOPS, domain.StatusWaiting, domain.ActionForwardToOfficer,
		workflow.Payload{Comment: "needs manual review", TargetOfficerID: "officer-1"})
	require.NoError(t, err)
	assert.True(t, tr.AssignsOfficer)
	assert.True(t, tr.RequiresOfficer)

	tr, err = workflow.Decide(domain.RoleTreasuryOPS, domain.StatusWaiting, domain.ActionSendBack,
		workflow.Payload{Comment: "missing beneficiary details"})
	require.NoError(t, err)
	assert.True(t, tr.ClearsOfficer)

	tr, err = workflow.Decide(domain.RoleTradeDesk, domain.StatusForwardedTradeDesk, domain.ActionDelete, workflow.Payload{})
	require.NoError(t, err)
	assert.True(t, tr.Removes)

	tr, err = workflow.Decide(domain.RoleTradeDesk, domain.StatusForwardedTradeDesk, domain.ActionAddNote,
		workflow.Payload{Comment: "settlement reference 84512"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusForwardedTradeDesk, tr.To, "add_note keeps the case in place")
}
