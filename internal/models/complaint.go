package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type ComplaintStatus string
type ComplaintPriority string
type Sentiment string

const (
	StatusPending    ComplaintStatus = "pending"
	StatusInProgress ComplaintStatus = "in-progress"
	StatusResolved   ComplaintStatus = "resolved"
	StatusRejected   ComplaintStatus = "rejected"
	StatusClosed     ComplaintStatus = "closed"
)

const (
	PriorityLow      ComplaintPriority = "low"
	PriorityMedium   ComplaintPriority = "medium"
	PriorityHigh     ComplaintPriority = "high"
	PriorityCritical ComplaintPriority = "critical"
)

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// AIAnalysis is the structured categorization produced at creation time.
// It is stored as a single jsonb column and never mutated afterwards.
type AIAnalysis struct {
	Category   string   `json:"category"`
	Department string   `json:"department"`
	Priority   string   `json:"priority"`
	Keywords   []string `json:"keywords"`
	Sentiment  string   `json:"sentiment"`
	Confidence float64  `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
}

func (a AIAnalysis) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *AIAnalysis) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for AIAnalysis: %T", value)
	}
	return json.Unmarshal(data, a)
}

type Complaint struct {
	ID           string             `json:"id" gorm:"primaryKey;size:36"`
	UserID       uint               `json:"userId" gorm:"not null;index:idx_complaints_owner_status"`
	User         User               `json:"user" gorm:"foreignKey:UserID"`
	Title        string             `json:"title" gorm:"not null"`
	Description  string             `json:"description" gorm:"type:text;not null"`
	Category     string             `json:"category" gorm:"not null;index"`
	Department   string             `json:"department" gorm:"not null;index:idx_complaints_department_status"`
	Priority     ComplaintPriority  `json:"priority" gorm:"not null;default:'medium'"`
	Status       ComplaintStatus    `json:"status" gorm:"not null;default:'pending';index:idx_complaints_owner_status;index:idx_complaints_department_status"`
	Location     string             `json:"location"`
	AIAnalysis   *AIAnalysis        `json:"aiAnalysis" gorm:"type:jsonb"`
	AssignedToID *uint              `json:"assignedToId"`
	AssignedTo   *User              `json:"assignedTo" gorm:"foreignKey:AssignedToID"`
	Updates      []ComplaintUpdate  `json:"updates" gorm:"foreignKey:ComplaintID"`
	Comments     []ComplaintComment `json:"comments" gorm:"foreignKey:ComplaintID"`
	ResolvedAt   *time.Time         `json:"resolvedAt"`
	ClosedAt     *time.Time         `json:"closedAt"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt     `json:"-" gorm:"index"`
}

func (Complaint) TableName() string {
	return "complaints"
}

// ComplaintUpdate is an append-only status-change record. Insertion order
// is chronological order.
type ComplaintUpdate struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	ComplaintID string          `json:"complaintId" gorm:"not null;size:36;index"`
	AuthorID    uint            `json:"authorId" gorm:"not null"`
	Author      User            `json:"author" gorm:"foreignKey:AuthorID"`
	Message     string          `json:"message" gorm:"type:text;not null"`
	Status      ComplaintStatus `json:"status" gorm:"not null"`
	CreatedAt   time.Time       `json:"timestamp"`
}

func (ComplaintUpdate) TableName() string {
	return "complaint_updates"
}

// ComplaintComment is an append-only comment record.
type ComplaintComment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ComplaintID string    `json:"complaintId" gorm:"not null;size:36;index"`
	AuthorID    uint      `json:"authorId" gorm:"not null"`
	Author      User      `json:"author" gorm:"foreignKey:AuthorID"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"timestamp"`
}

func (ComplaintComment) TableName() string {
	return "complaint_comments"
}

func ValidStatus(s ComplaintStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected, StatusClosed:
		return true
	}
	return false
}

func ValidPriority(p ComplaintPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

func ValidSentiment(s Sentiment) bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}
