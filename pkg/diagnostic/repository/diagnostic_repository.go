package repository

import (
	"time"

	"cropdoc/entities"
)

type DiagnosticRepository interface {
	Create(d *entities.Diagnostic) error
	FindByID(id uint) (*entities.Diagnostic, error)

	// ListByFarms returns records across the given farm set, newest-first,
	// optionally bounded below by createdAt and capped at limit.
	ListByFarms(farmIDs []uint, since *time.Time, limit int) ([]entities.Diagnostic, error)

	Delete(id uint) error
	CountSince(farmIDs []uint, since time.Time) (int64, error)
}
