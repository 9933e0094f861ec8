package store

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"greenpoints-backend/internal/catalog"
	"greenpoints-backend/internal/model"
)

// Seed inserts catalog dorms and action types that are missing by name.
// Existing rows are never modified, so repeated runs are no-ops.
func (s *gormStore) Seed(ctx context.Context, c *catalog.Catalog) (SeedResult, error) {
	var result SeedResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existingDorms []string
		if err := tx.Model(&model.Dorm{}).Pluck("name", &existingDorms).Error; err != nil {
			return err
		}
		dorms := missingByName(c.DormModels(), existingDorms, func(d model.Dorm) string { return d.Name })
		if len(dorms) > 0 {
			log.Printf("Seeding %d dorms...", len(dorms))
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).Create(&dorms)
			if res.Error != nil {
				return fmt.Errorf("seed dorms failed: %w", res.Error)
			}
			result.DormsInserted = res.RowsAffected
		}

		var existingTypes []string
		if err := tx.Model(&model.ActionType{}).Pluck("name", &existingTypes).Error; err != nil {
			return err
		}
		types := missingByName(c.ActionTypeModels(), existingTypes, func(at model.ActionType) string { return at.Name })
		if len(types) > 0 {
			log.Printf("Seeding %d action types...", len(types))
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).Create(&types)
			if res.Error != nil {
				return fmt.Errorf("seed action types failed: %w", res.Error)
			}
			result.ActionTypesInserted = res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	return result, nil
}

func missingByName[T any](wanted []T, existing []string, name func(T) string) []T {
	have := make(map[string]struct{}, len(existing))
	for _, n := range existing {
		have[n] = struct{}{}
	}
	var missing []T
	for _, w := range wanted {
		if _, ok := have[name(w)]; !ok {
			missing = append(missing, w)
		}
	}
	return missing
}
