package dto

import "ModelHub/model"

// UploadModelResponse echoes the stored model metadata.
type UploadModelResponse struct {
	Message     string  `json:"mensaje"`
	ID          uint64  `json:"id"`
	FileName    string  `json:"nombre_archivo"`
	Description *string `json:"descripcion"`
	UserID      uint64  `json:"id_usuario"`
	CategoryID  uint64  `json:"id_categoria"`
	Size        int64   `json:"tamano"`
}

type RatingItem struct {
	ID       uint64  `json:"id"`
	UserID   uint64  `json:"id_usuario"`
	UserName string  `json:"usuario"`
	Score    float64 `json:"puntuacion"`
	Comment  *string `json:"comentario"`
}

// ModelRatingsResponse is the aggregate plus itemized ratings of one model.
type ModelRatingsResponse struct {
	ModelID uint64       `json:"id_modelo"`
	Average float64      `json:"promedio"`
	Total   int          `json:"total"`
	Ratings []RatingItem `json:"calificaciones"`
}

type RatingResponse struct {
	Message string        `json:"mensaje"`
	Created bool          `json:"creada"`
	Rating  *model.Rating `json:"calificacion"`
}

type RankingEntry struct {
	ModelID      uint64  `json:"id_modelo"`
	ModelName    string  `json:"nombre_modelo"`
	Description  *string `json:"descripcion"`
	CategoryName string  `json:"categoria"`
	UserName     string  `json:"usuario"`
	Average      float64 `json:"promedio"`
	TotalRatings int     `json:"total_calificaciones"`
}

type LoginResponse struct {
	ID    uint64  `json:"id"`
	Name  string  `json:"nombre"`
	Email string  `json:"correo"`
	Phone *string `json:"telefono"`
	New   bool    `json:"nuevo"`
	Token string  `json:"token"`
}
