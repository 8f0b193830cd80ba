package services

import (
	"errors"
	"strings"

	"github.com/civicdesk/backend/internal/identity"
	"github.com/civicdesk/backend/internal/models"
)

// Error taxonomy surfaced by the complaint service. Anything else coming
// out of an operation is a store failure.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("complaint not found")
)

// CanReadComplaint reports whether the caller may read the complaint:
// the owner, a department caller whose department matches exactly, or an
// authority/developer caller.
func CanReadComplaint(caller identity.Caller, complaint *models.Complaint) bool {
	if caller.ID == complaint.UserID {
		return true
	}
	if caller.Role == models.RoleDepartment && caller.Department == complaint.Department {
		return true
	}
	return caller.Role == models.RoleAuthority || caller.Role == models.RoleDeveloper
}

// CanListAllComplaints restricts the unscoped listing to oversight roles.
func CanListAllComplaints(caller identity.Caller) bool {
	return caller.Role == models.RoleAuthority || caller.Role == models.RoleDeveloper
}

// CanUpdateStatus reports whether the caller may append status updates.
func CanUpdateStatus(caller identity.Caller) bool {
	switch caller.Role {
	case models.RoleDepartment, models.RoleAuthority, models.RoleDeveloper:
		return true
	}
	return false
}

// TransitionAllowed is the single chokepoint for status-transition policy.
// The transition set is deliberately open: any authorized actor may move a
// complaint to any valid status, pending product guidance on a stricter
// state machine.
func TransitionAllowed(from, to models.ComplaintStatus) bool {
	return models.ValidStatus(to)
}

// ValidateCommentText rejects comments that are empty after trimming.
func ValidateCommentText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrInvalidInput
	}
	return nil
}
