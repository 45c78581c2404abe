package service

import (
	"ModelHub/internal/dto"
	"ModelHub/internal/repo"
	"ModelHub/model"
	"context"
	"sort"
)

const noCategoryLabel = "Sin categoría"

type scoreRow struct {
	ModelID uint64  `gorm:"column:id_modelo"`
	Score   float64 `gorm:"column:puntuacion"`
}

// BuildRanking aggregates the ratings of every model and orders the result by
// average descending, ties by model id ascending. It is recomputed from the
// tables on every call.
func BuildRanking(ctx context.Context) ([]dto.RankingEntry, error) {
	db := repo.Db.WithContext(ctx)

	var models []model.Model3D
	if err := db.Preload("User").Preload("Category").Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	var rows []scoreRow
	if err := db.Model(&model.Rating{}).Select("id_modelo, puntuacion").Order("id ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	scoresByModel := make(map[uint64][]float64, len(models))
	for _, row := range rows {
		scoresByModel[row.ModelID] = append(scoresByModel[row.ModelID], row.Score)
	}

	ranking := make([]dto.RankingEntry, 0, len(models))
	for _, m := range models {
		average, total := AggregateScores(scoresByModel[m.ID])
		categoryName := noCategoryLabel
		if m.Category != nil {
			categoryName = m.Category.Name
		}
		userName := unknownUserLabel
		if m.User != nil {
			userName = m.User.Name
		}
		ranking = append(ranking, dto.RankingEntry{
			ModelID:      m.ID,
			ModelName:    m.FileName,
			Description:  m.Description,
			CategoryName: categoryName,
			UserName:     userName,
			Average:      average,
			TotalRatings: total,
		})
	}

	SortRanking(ranking)
	return ranking, nil
}

// SortRanking orders entries by average descending, then model id ascending.
func SortRanking(entries []dto.RankingEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Average != entries[j].Average {
			return entries[i].Average > entries[j].Average
		}
		return entries[i].ModelID < entries[j].ModelID
	})
}
