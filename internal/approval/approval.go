// Package approval applies approved change requests to tasks. The
// lookup is built once per run from the change-request table; applying
// it to a task depends only on that task's own fields, so tasks can be
// resolved in any order.
package approval

import (
	"strings"
	"time"

	"github.com/zulandar/followup/internal/models"
)

// StatusApproved is the value written to a task's approval status when
// its change request is approved.
const StatusApproved = "Approved"

// approvedRequest holds the fields of an approved change request the
// resolver needs.
type approvedRequest struct {
	approver     string
	rescheduleTo *time.Time
}

// Lookup is an immutable index of approved change requests by ID.
type Lookup map[string]approvedRequest

// BuildLookup indexes the approved rows of a change-request table.
// Status matching is case-insensitive; non-approved rows are ignored.
func BuildLookup(requests []models.ChangeRequest) Lookup {
	l := make(Lookup, len(requests))
	for _, cr := range requests {
		id := strings.TrimSpace(cr.ID)
		if id == "" {
			continue
		}
		if strings.ToLower(strings.TrimSpace(cr.Status)) != "approved" {
			continue
		}
		l[id] = approvedRequest{approver: cr.ApprovedBy, rescheduleTo: cr.RescheduleTo}
	}
	return l
}

// Apply resolves one task against the lookup and returns the updated
// copy. Tasks with no change-request ID, or whose ID matches no
// approved request, come back unchanged. A matching approval:
//
//   - sets the approval status to Approved,
//   - fills the approver only when the task has none (task-level wins),
//   - extends the due date to the reschedule target, forward only. The
//     target is the task's own RescheduledTo when set, otherwise the
//     change request's. Due dates never move earlier here.
//
// An unapproved change request never clears a previously set approval.
func (l Lookup) Apply(t models.Task) models.Task {
	id := strings.TrimSpace(t.ChangeRequestID)
	if id == "" {
		return t
	}
	req, ok := l[id]
	if !ok {
		return t
	}

	t.ApprovalStatus = StatusApproved
	if strings.TrimSpace(t.ApprovalBy) == "" {
		t.ApprovalBy = req.approver
	}

	target := t.RescheduledTo
	if target == nil {
		target = req.rescheduleTo
	}
	if target != nil && (t.DueDate == nil || target.After(*t.DueDate)) {
		due := *target
		t.DueDate = &due
	}
	return t
}
