package gormdb

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// notFound swaps gorm's sentinel for the domain one so usecases never import gorm.
func notFound(err, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}

var forUpdate = clause.Locking{Strength: "UPDATE"}
