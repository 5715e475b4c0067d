package stores

import (
	"errors"
	"time"

	"github.com/servihub/reports-api/models"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrAlreadyResolved = errors.New("report already resolved")
)

const (
	StatusAll        = "all"
	StatusResolved   = "resolved"
	StatusUnresolved = "unresolved"
)

// ReportFilter selects reports by resolution status and type. Zero values
// mean no predicate.
type ReportFilter struct {
	Status string // all, resolved, unresolved
	Type   string // all or one of the report type enum values
}

type ReportStore struct {
	DB *gorm.DB
}

func NewReportStore(db *gorm.DB) *ReportStore {
	return &ReportStore{DB: db}
}

func (s *ReportStore) Create(report *models.Report) error {
	return s.DB.Create(report).Error
}

func (s *ReportStore) filtered(filter ReportFilter) *gorm.DB {
	db := s.DB.Model(&models.Report{})
	switch filter.Status {
	case StatusResolved:
		db = db.Where("resolved_at IS NOT NULL")
	case StatusUnresolved:
		db = db.Where("resolved_at IS NULL")
	}
	if filter.Type != "" && filter.Type != "all" {
		db = db.Where("type = ?", filter.Type)
	}
	return db
}

// List returns one page of reports with submitter and resolver identities
// eager-loaded. sortColumn must come from a whitelisted column set; it is
// never caller input.
func (s *ReportStore) List(filter ReportFilter, sortColumn, sortOrder string, offset, limit int) ([]models.Report, error) {
	var reports []models.Report
	err := s.filtered(filter).
		Preload("Submitter").
		Preload("Resolver").
		Order(sortColumn + " " + sortOrder).
		Offset(offset).
		Limit(limit).
		Find(&reports).Error
	return reports, err
}

// Count runs under the same filter as List so pagination metadata stays
// consistent with the returned slice.
func (s *ReportStore) Count(filter ReportFilter) (int64, error) {
	var total int64
	err := s.filtered(filter).Count(&total).Error
	return total, err
}

func (s *ReportStore) FindByID(id int64) (*models.Report, error) {
	var report models.Report
	err := s.DB.Preload("Submitter").Preload("Resolver").First(&report, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Resolve marks a report resolved exactly once. The conditional update keeps
// concurrent resolvers from overwriting each other: the first wins, later
// calls get ErrAlreadyResolved.
func (s *ReportStore) Resolve(id, resolverID int64) (*models.Report, error) {
	result := s.DB.Model(&models.Report{}).
		Where("id = ? AND resolved_at IS NULL", id).
		Updates(map[string]interface{}{
			"resolved_at": time.Now(),
			"resolved_by": resolverID,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := s.DB.Model(&models.Report{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrReportNotFound
		}
		return nil, ErrAlreadyResolved
	}
	return s.FindByID(id)
}
