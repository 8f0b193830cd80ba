// Package storage owns the persistence boundary: a Storage interface over
// PostgreSQL (via gorm) plus an optional Redis cache. The handles are
// constructed once by the composition root and injected everywhere.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/civicdesk/backend/internal/logger"
	"github.com/civicdesk/backend/internal/models"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Storage interface {
	CreateComplaint(c *models.Complaint) error
	GetComplaintByID(id string) (*models.Complaint, error)
	ListComplaints() ([]models.Complaint, error)
	ListComplaintsByOwner(userID uint) ([]models.Complaint, error)
	ListComplaintsByDepartment(department string) ([]models.Complaint, error)
	SaveComplaint(c *models.Complaint) error
	AddComment(cm *models.ComplaintComment) error
	AddUpdate(u *models.ComplaintUpdate) error
	CountComplaintsByStatus() (map[models.ComplaintStatus]int64, error)

	CreateUser(u *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	CountUsers() (int64, error)

	ListActiveDepartments() ([]models.Department, error)

	CacheGet(key string) (string, bool)
	CacheSet(key, value string, ttl time.Duration)
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewService wires the storage service. rdb may be nil; cache calls
// degrade to misses.
func NewService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

func (s *Service) CreateComplaint(c *models.Complaint) error {
	return s.DB.Create(c).Error
}

// GetComplaintByID loads a complaint with its owner, assignee and the
// chronologically ordered comment and update threads. Returns (nil, nil)
// when no record matches so NotFound stays a caller-level decision.
func (s *Service) GetComplaintByID(id string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.DB.
		Preload("User").
		Preload("AssignedTo").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		Preload("Comments.Author").
		Preload("Updates", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		Preload("Updates.Author").
		Where("id = ?", id).
		First(&complaint).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (s *Service) ListComplaints() ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.
		Preload("User").
		Order("created_at desc").
		Find(&complaints).Error
	return complaints, err
}

func (s *Service) ListComplaintsByOwner(userID uint) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&complaints).Error
	return complaints, err
}

func (s *Service) ListComplaintsByDepartment(department string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.
		Preload("User").
		Where("department = ?", department).
		Order("created_at desc").
		Find(&complaints).Error
	return complaints, err
}

// SaveComplaint persists scalar field changes only; the comment and
// update threads are append-only through their own methods.
func (s *Service) SaveComplaint(c *models.Complaint) error {
	return s.DB.Omit(clause.Associations).Save(c).Error
}

func (s *Service) AddComment(cm *models.ComplaintComment) error {
	return s.DB.Create(cm).Error
}

func (s *Service) AddUpdate(u *models.ComplaintUpdate) error {
	return s.DB.Create(u).Error
}

func (s *Service) CountComplaintsByStatus() (map[models.ComplaintStatus]int64, error) {
	type row struct {
		Status models.ComplaintStatus
		Count  int64
	}
	var rows []row
	err := s.DB.Model(&models.Complaint{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[models.ComplaintStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (s *Service) CreateUser(u *models.User) error {
	return s.DB.Create(u).Error
}

func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) CountUsers() (int64, error) {
	var count int64
	err := s.DB.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (s *Service) ListActiveDepartments() ([]models.Department, error) {
	var departments []models.Department
	err := s.DB.
		Where("is_active = ?", true).
		Order("name asc").
		Find(&departments).Error
	return departments, err
}

// CacheGet returns the cached value for key. A nil client, a miss or a
// Redis error all read as a miss; the cache is never load-bearing.
func (s *Service) CacheGet(key string) (string, bool) {
	if s.Redis == nil {
		return "", false
	}
	value, err := s.Redis.Get(s.Ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		logger.Warn("cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		return "", false
	}
	return value, true
}

func (s *Service) CacheSet(key, value string, ttl time.Duration) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Set(s.Ctx, key, value, ttl).Err(); err != nil {
		logger.Warn("cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
