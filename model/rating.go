package model

import "time"

type Rating struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	UserID uint64 `gorm:"column:id_usuario;not null;uniqueIndex:uk_rating_user_model,priority:1" json:"id_usuario"`
	User   *User  `gorm:"foreignKey:UserID;references:ID" json:"-"`

	ModelID uint64   `gorm:"column:id_modelo;not null;uniqueIndex:uk_rating_user_model,priority:2;index" json:"id_modelo"`
	Model   *Model3D `gorm:"foreignKey:ModelID;references:ID" json:"-"`

	Score   float64 `gorm:"column:puntuacion;not null" json:"puntuacion"`
	Comment *string `gorm:"column:comentario;type:text" json:"comentario"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the database table name.
func (Rating) TableName() string {
	return "calificaciones"
}

/*
一个用户对同一个模型最多只有一条评分
(id_usuario, id_modelo) 上的唯一索引让 upsert 可以用一条 INSERT ... ON CONFLICT 完成
*/
