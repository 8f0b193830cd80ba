package services

import (
	"strings"
	"time"

	"github.com/civicdesk/backend/internal/identity"
	"github.com/civicdesk/backend/internal/logger"
	"github.com/civicdesk/backend/internal/models"
	"github.com/civicdesk/backend/internal/storage"
	"github.com/google/uuid"
)

// ComplaintService owns the complaint lifecycle: creation, scoped reads and
// the append-only comment and status-update threads. Every mutation passes
// the access guard first; the store's per-row atomicity is the concurrency
// boundary, so no locking happens here.
type ComplaintService struct {
	store storage.Storage
}

func NewComplaintService(store storage.Storage) *ComplaintService {
	return &ComplaintService{store: store}
}

type CreateComplaintInput struct {
	Title       string
	Description string
	Location    string
	Category    string
	Department  string
	AIAnalysis  *models.AIAnalysis
}

// Create files a new complaint for the caller. Status starts at pending;
// priority comes from the supplied analysis (lowercased) or defaults to
// medium; confidence is clamped into [0,1] before persistence.
func (s *ComplaintService) Create(caller identity.Caller, in CreateComplaintInput) (*models.Complaint, error) {
	if strings.TrimSpace(in.Title) == "" ||
		strings.TrimSpace(in.Description) == "" ||
		strings.TrimSpace(in.Category) == "" ||
		strings.TrimSpace(in.Department) == "" {
		return nil, ErrInvalidInput
	}

	priority := models.PriorityMedium
	if in.AIAnalysis != nil {
		if in.AIAnalysis.Confidence < 0 {
			in.AIAnalysis.Confidence = 0
		}
		if in.AIAnalysis.Confidence > 1 {
			in.AIAnalysis.Confidence = 1
		}
		p := models.ComplaintPriority(strings.ToLower(strings.TrimSpace(in.AIAnalysis.Priority)))
		if models.ValidPriority(p) {
			priority = p
		}
	}

	complaint := &models.Complaint{
		ID:          uuid.NewString(),
		UserID:      caller.ID,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Category:    in.Category,
		Department:  in.Department,
		Priority:    priority,
		Status:      models.StatusPending,
		AIAnalysis:  in.AIAnalysis,
	}

	if err := s.store.CreateComplaint(complaint); err != nil {
		return nil, err
	}

	logger.WithComplaint(complaint.ID).WithField("user_id", caller.ID).Info("complaint created")

	// Re-read to resolve the owner reference to display fields.
	created, err := s.store.GetComplaintByID(complaint.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return complaint, nil
	}
	return created, nil
}

// Get returns the complaint when the caller passes the read check.
func (s *ComplaintService) Get(caller identity.Caller, id string) (*models.Complaint, error) {
	complaint, err := s.store.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrNotFound
	}
	if !CanReadComplaint(caller, complaint) {
		return nil, ErrUnauthorized
	}
	return complaint, nil
}

// ListAll returns every complaint, newest first. Oversight roles only.
func (s *ComplaintService) ListAll(caller identity.Caller) ([]models.Complaint, error) {
	if !CanListAllComplaints(caller) {
		return nil, ErrUnauthorized
	}
	return s.store.ListComplaints()
}

// ListMine returns the caller's own complaints, newest first.
func (s *ComplaintService) ListMine(caller identity.Caller) ([]models.Complaint, error) {
	return s.store.ListComplaintsByOwner(caller.ID)
}

// ListForDepartment returns the complaints routed to the caller's own
// department, newest first. Department role only.
func (s *ComplaintService) ListForDepartment(caller identity.Caller) ([]models.Complaint, error) {
	if caller.Role != models.RoleDepartment {
		return nil, ErrUnauthorized
	}
	return s.store.ListComplaintsByDepartment(caller.Department)
}

// AddComment appends a comment for any caller who may read the complaint.
// Comments are allowed at every status, closed included.
func (s *ComplaintService) AddComment(caller identity.Caller, complaintID, text string) (*models.Complaint, error) {
	if err := ValidateCommentText(text); err != nil {
		return nil, err
	}

	complaint, err := s.store.GetComplaintByID(complaintID)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrNotFound
	}
	if !CanReadComplaint(caller, complaint) {
		return nil, ErrUnauthorized
	}

	comment := &models.ComplaintComment{
		ComplaintID: complaint.ID,
		AuthorID:    caller.ID,
		Text:        text,
	}
	if err := s.store.AddComment(comment); err != nil {
		return nil, err
	}

	return s.store.GetComplaintByID(complaintID)
}

// UpdateStatus appends a status update and moves the complaint to the new
// status, stamping resolvedAt/closedAt on entry to those statuses.
func (s *ComplaintService) UpdateStatus(caller identity.Caller, complaintID, message string, newStatus models.ComplaintStatus) (*models.Complaint, error) {
	if !CanUpdateStatus(caller) {
		return nil, ErrUnauthorized
	}
	if !models.ValidStatus(newStatus) || strings.TrimSpace(message) == "" {
		return nil, ErrInvalidInput
	}

	complaint, err := s.store.GetComplaintByID(complaintID)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrNotFound
	}
	if !TransitionAllowed(complaint.Status, newStatus) {
		return nil, ErrInvalidInput
	}

	update := &models.ComplaintUpdate{
		ComplaintID: complaint.ID,
		AuthorID:    caller.ID,
		Message:     message,
		Status:      newStatus,
	}
	if err := s.store.AddUpdate(update); err != nil {
		return nil, err
	}

	complaint.Status = newStatus
	now := time.Now()
	switch newStatus {
	case models.StatusResolved:
		complaint.ResolvedAt = &now
	case models.StatusClosed:
		complaint.ClosedAt = &now
	}
	if err := s.store.SaveComplaint(complaint); err != nil {
		return nil, err
	}

	logger.WithComplaint(complaint.ID).WithFields(map[string]interface{}{
		"status":  string(newStatus),
		"user_id": caller.ID,
	}).Info("complaint status updated")

	return s.store.GetComplaintByID(complaintID)
}
