package services

import (
	"testing"

	"github.com/civicdesk/backend/internal/identity"
	"github.com/civicdesk/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCanReadComplaint(t *testing.T) {
	complaint := &models.Complaint{
		ID:         "c-1",
		UserID:     1,
		Department: "Public Works",
	}

	tests := []struct {
		name    string
		caller  identity.Caller
		allowed bool
	}{
		{
			name:    "owner",
			caller:  identity.Caller{ID: 1, Role: models.RoleUser},
			allowed: true,
		},
		{
			name:    "other citizen",
			caller:  identity.Caller{ID: 2, Role: models.RoleUser},
			allowed: false,
		},
		{
			name:    "matching department",
			caller:  identity.Caller{ID: 3, Role: models.RoleDepartment, Department: "Public Works"},
			allowed: true,
		},
		{
			name:    "other department",
			caller:  identity.Caller{ID: 4, Role: models.RoleDepartment, Department: "Sanitation"},
			allowed: false,
		},
		{
			name:    "department match is case-sensitive",
			caller:  identity.Caller{ID: 5, Role: models.RoleDepartment, Department: "public works"},
			allowed: false,
		},
		{
			name:    "authority",
			caller:  identity.Caller{ID: 6, Role: models.RoleAuthority},
			allowed: true,
		},
		{
			name:    "developer",
			caller:  identity.Caller{ID: 7, Role: models.RoleDeveloper},
			allowed: true,
		},
		{
			name:    "department caller owning the complaint",
			caller:  identity.Caller{ID: 1, Role: models.RoleDepartment, Department: "Sanitation"},
			allowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanReadComplaint(tt.caller, complaint))
		})
	}
}

func TestCanListAllComplaints(t *testing.T) {
	assert.False(t, CanListAllComplaints(identity.Caller{Role: models.RoleUser}))
	assert.False(t, CanListAllComplaints(identity.Caller{Role: models.RoleDepartment}))
	assert.True(t, CanListAllComplaints(identity.Caller{Role: models.RoleAuthority}))
	assert.True(t, CanListAllComplaints(identity.Caller{Role: models.RoleDeveloper}))
}

func TestCanUpdateStatus(t *testing.T) {
	assert.False(t, CanUpdateStatus(identity.Caller{Role: models.RoleUser}))
	assert.True(t, CanUpdateStatus(identity.Caller{Role: models.RoleDepartment}))
	assert.True(t, CanUpdateStatus(identity.Caller{Role: models.RoleAuthority}))
	assert.True(t, CanUpdateStatus(identity.Caller{Role: models.RoleDeveloper}))
}

func TestTransitionAllowedIsOpen(t *testing.T) {
	statuses := []models.ComplaintStatus{
		models.StatusPending,
		models.StatusInProgress,
		models.StatusResolved,
		models.StatusRejected,
		models.StatusClosed,
	}

	// Any valid status may follow any other, including moving a resolved
	// complaint back to pending.
	for _, from := range statuses {
		for _, to := range statuses {
			assert.True(t, TransitionAllowed(from, to), "from %s to %s", from, to)
		}
	}

	assert.False(t, TransitionAllowed(models.StatusPending, "archived"))
	assert.False(t, TransitionAllowed(models.StatusPending, ""))
}

func TestValidateCommentText(t *testing.T) {
	assert.ErrorIs(t, ValidateCommentText(""), ErrInvalidInput)
	assert.ErrorIs(t, ValidateCommentText("   "), ErrInvalidInput)
	assert.ErrorIs(t, ValidateCommentText("\n\t"), ErrInvalidInput)
	assert.NoError(t, ValidateCommentText("Fixed now"))
}
