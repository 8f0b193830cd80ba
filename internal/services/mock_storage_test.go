package services

import (
	"time"

	"github.com/civicdesk/backend/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of storage.Storage for service tests.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateComplaint(c *models.Complaint) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *MockStorage) GetComplaintByID(id string) (*models.Complaint, error) {
	args := m.Called(id)
	if c := args.Get(0); c != nil {
		return c.(*models.Complaint), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) ListComplaints() ([]models.Complaint, error) {
	args := m.Called()
	if c := args.Get(0); c != nil {
		return c.([]models.Complaint), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) ListComplaintsByOwner(userID uint) ([]models.Complaint, error) {
	args := m.Called(userID)
	if c := args.Get(0); c != nil {
		return c.([]models.Complaint), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) ListComplaintsByDepartment(department string) ([]models.Complaint, error) {
	args := m.Called(department)
	if c := args.Get(0); c != nil {
		return c.([]models.Complaint), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) SaveComplaint(c *models.Complaint) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *MockStorage) AddComment(cm *models.ComplaintComment) error {
	args := m.Called(cm)
	return args.Error(0)
}

func (m *MockStorage) AddUpdate(u *models.ComplaintUpdate) error {
	args := m.Called(u)
	return args.Error(0)
}

func (m *MockStorage) CountComplaintsByStatus() (map[models.ComplaintStatus]int64, error) {
	args := m.Called()
	if c := args.Get(0); c != nil {
		return c.(map[models.ComplaintStatus]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) CreateUser(u *models.User) error {
	args := m.Called(u)
	return args.Error(0)
}

func (m *MockStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) CountUsers() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) ListActiveDepartments() ([]models.Department, error) {
	args := m.Called()
	if d := args.Get(0); d != nil {
		return d.([]models.Department), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) CacheGet(key string) (string, bool) {
	args := m.Called(key)
	return args.String(0), args.Bool(1)
}

func (m *MockStorage) CacheSet(key, value string, ttl time.Duration) {
	m.Called(key, value, ttl)
}
