package repositoryImp

import (
	"gorm.io/gorm"

	"cropdoc/entities"
	"cropdoc/pkg/farm/repository"
)

type farmRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FarmRepository { return &farmRepo{db} }

func (r *farmRepo) Create(f *entities.Farm) error { return r.db.Create(f).Error }

// FindByID is scoped by owner; asking for another user's farm behaves exactly
// like asking for a farm that does not exist.
func (r *farmRepo) FindByID(id uint, uid string) (*entities.Farm, error) {
	var f entities.Farm
	if err := r.db.Where("farm_id = ? AND user_id = ?", id, uid).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *farmRepo) FindByUser(uid string) ([]entities.Farm, error) {
	var out []entities.Farm
	if err := r.db.Where("user_id = ?", uid).Order("farm_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *farmRepo) FirstByUser(uid string) (*entities.Farm, error) {
	var f entities.Farm
	if err := r.db.Where("user_id = ?", uid).Order("farm_id ASC").First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}
