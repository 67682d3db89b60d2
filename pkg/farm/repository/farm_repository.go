package repository

import "cropdoc/entities"

type FarmRepository interface {
	Create(f *entities.Farm) error
	FindByID(id uint, uid string) (*entities.Farm, error)
	FindByUser(uid string) ([]entities.Farm, error)
	FirstByUser(uid string) (*entities.Farm, error)
}
