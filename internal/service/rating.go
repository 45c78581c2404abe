package service

import (
	"ModelHub/internal/dto"
	"ModelHub/internal/repo"
	"ModelHub/model"
	"context"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm/clause"
)

// Accepted score range, inclusive.
const (
	MinScore = 1.0
	MaxScore = 5.0
)

const unknownUserLabel = "Desconocido"

// AggregateScores returns the mean of scores rounded to two decimals and the
// number of scores. No scores yields (0, 0).
func AggregateScores(scores []float64) (float64, int) {
	total := len(scores)
	if total == 0 {
		return 0, 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return round2(sum / float64(total)), total
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ValidateScore rejects scores outside [MinScore, MaxScore].
func ValidateScore(score float64) error {
	if math.IsNaN(score) || math.IsInf(score, 0) || score < MinScore || score > MaxScore {
		return invalid(fmt.Sprintf("puntuacion debe estar entre %g y %g", MinScore, MaxScore))
	}
	return nil
}

// UpsertRating records userID's score for modelID. A second submission for the
// same pair overwrites score and comment on the existing row, in one statement
// keyed by the (id_usuario, id_modelo) unique index.
func UpsertRating(ctx context.Context, req *dto.RatingRequest) (*model.Rating, bool, error) {
	if err := ValidateScore(req.Score); err != nil {
		return nil, false, err
	}
	if _, err := GetModel(ctx, req.ModelID); err != nil {
		return nil, false, err
	}
	if _, err := GetUser(ctx, req.UserID); err != nil {
		return nil, false, err
	}

	db := repo.Db.WithContext(ctx)
	// only used to report created/updated, the write below does not depend on it
	var existing int64
	if err := db.Model(&model.Rating{}).
		Where("id_usuario = ? AND id_modelo = ?", req.UserID, req.ModelID).
		Count(&existing).Error; err != nil {
		return nil, false, err
	}

	rating := model.Rating{
		UserID:    req.UserID,
		ModelID:   req.ModelID,
		Score:     req.Score,
		Comment:   req.Comment,
		UpdatedAt: time.Now(),
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id_usuario"}, {Name: "id_modelo"}},
		DoUpdates: clause.AssignmentColumns([]string{"puntuacion", "comentario", "updated_at"}),
	}).Create(&rating).Error
	if err != nil {
		return nil, false, err
	}

	var stored model.Rating
	if err := db.Where("id_usuario = ? AND id_modelo = ?", req.UserID, req.ModelID).First(&stored).Error; err != nil {
		return nil, false, translate(err, "calificación")
	}
	return &stored, existing == 0, nil
}

// GetModelRatings aggregates and itemizes the ratings of a model. An unknown
// model id reads like a model nobody rated.
func GetModelRatings(ctx context.Context, modelID uint64) (*dto.ModelRatingsResponse, error) {
	var ratings []model.Rating
	err := repo.Db.WithContext(ctx).
		Preload("User").
		Where("id_modelo = ?", modelID).
		Order("id ASC").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}

	scores := make([]float64, 0, len(ratings))
	items := make([]dto.RatingItem, 0, len(ratings))
	for _, r := range ratings {
		scores = append(scores, r.Score)
		userName := unknownUserLabel
		if r.User != nil {
			userName = r.User.Name
		}
		items = append(items, dto.RatingItem{
			ID:       r.ID,
			UserID:   r.UserID,
			UserName: userName,
			Score:    r.Score,
			Comment:  r.Comment,
		})
	}
	average, total := AggregateScores(scores)
	return &dto.ModelRatingsResponse{
		ModelID: modelID,
		Average: average,
		Total:   total,
		Ratings: items,
	}, nil
}
