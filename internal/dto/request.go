package dto

import "io"

type CreateUserRequest struct {
	Name  string  `json:"nombre" binding:"required"`
	Email string  `json:"correo" binding:"required"`
	Phone *string `json:"telefono"`
}

type LoginRequest struct {
	Name  string `json:"nombre" binding:"required"`
	Email string `json:"correo" binding:"required"`
}

// UploadModelRequest is filled from the multipart form of /subir_modelo/.
type UploadModelRequest struct {
	FileName    string
	Description *string
	UserID      *uint64
	CategoryID  *uint64
	ContentType string
	Size        int64
	Reader      io.Reader
}

type RatingRequest struct {
	UserID  uint64  `json:"id_usuario" binding:"required"`
	ModelID uint64  `json:"id_modelo" binding:"required"`
	Score   float64 `json:"puntuacion"`
	Comment *string `json:"comentario"`
}
