package repo

import (
	"ModelHub/model"
	_ "embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed categories.yaml
var categorySeed []byte

type categorySeedEntry struct {
	ID          uint64 `yaml:"id"`
	Name        string `yaml:"nombre"`
	Description string `yaml:"descripcion"`
}

// LoadCategorySeed parses the embedded category list.
func LoadCategorySeed() ([]model.Category, error) {
	var entries []categorySeedEntry
	if err := yaml.Unmarshal(categorySeed, &entries); err != nil {
		return nil, fmt.Errorf("parse category seed: %w", err)
	}
	out := make([]model.Category, 0, len(entries))
	for _, e := range entries {
		if e.ID == 0 || e.Name == "" {
			return nil, fmt.Errorf("parse category seed: invalid entry %+v", e)
		}
		desc := e.Description
		out = append(out, model.Category{ID: e.ID, Name: e.Name, Description: &desc})
	}
	return out, nil
}

// SeedCategories inserts the fixed categories that are missing. Existing rows
// are left untouched so running it on every start is safe.
func SeedCategories(db *gorm.DB) error {
	categories, err := LoadCategorySeed()
	if err != nil {
		return err
	}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&categories)
	if res.Error != nil {
		return fmt.Errorf("seed categories: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		slog.Info("categories seeded", "inserted", res.RowsAffected)
	}
	return nil
}
