package repositoryImp

import (
	"time"

	"gorm.io/gorm"

	"cropdoc/entities"
	"cropdoc/pkg/diagnostic/repository"
)

type diagRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.DiagnosticRepository { return &diagRepo{db} }

func (r *diagRepo) Create(d *entities.Diagnostic) error { return r.db.Create(d).Error }

func (r *diagRepo) FindByID(id uint) (*entities.Diagnostic, error) {
	var d entities.Diagnostic
	if err := r.db.Where("diag_id = ?", id).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *diagRepo) ListByFarms(farmIDs []uint, since *time.Time, limit int) ([]entities.Diagnostic, error) {
	out := []entities.Diagnostic{}
	if len(farmIDs) == 0 {
		return out, nil
	}
	q := r.db.Where("farm_id IN ?", farmIDs)
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}
	// diag_id breaks ties so repeated queries return a stable order
	q = q.Order("created_at DESC").Order("diag_id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *diagRepo) Delete(id uint) error {
	return r.db.Where("diag_id = ?", id).Delete(&entities.Diagnostic{}).Error
}

func (r *diagRepo) CountSince(farmIDs []uint, since time.Time) (int64, error) {
	if len(farmIDs) == 0 {
		return 0, nil
	}
	var n int64
	err := r.db.Model(&entities.Diagnostic{}).
		Where("farm_id IN ?", farmIDs).
		Where("created_at >= ?", since).
		Count(&n).Error
	return n, err
}
