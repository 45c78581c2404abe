package model

import "time"

// Model3D is an uploaded 3D asset. FileName is the name the client sent and is
// metadata only; the bytes live in the file store under StorageKey.
type Model3D struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	FileName   string `gorm:"column:nombre_archivo;type:varchar(255);not null;index" json:"nombre_archivo"`
	StorageKey string `gorm:"column:clave_almacen;type:varchar(128);not null;uniqueIndex" json:"-"`

	Size        int64  `gorm:"column:tamano;not null;default:0" json:"tamano"`
	ContentType string `gorm:"column:content_type;type:varchar(128);not null;default:''" json:"-"`

	Description *string `gorm:"column:descripcion;type:text" json:"descripcion"`

	UserID uint64 `gorm:"column:id_usuario;not null;index" json:"id_usuario"`
	User   *User  `gorm:"foreignKey:UserID;references:ID" json:"-"`

	CategoryID uint64    `gorm:"column:id_categoria;not null;index" json:"id_categoria"`
	Category   *Category `gorm:"foreignKey:CategoryID;references:ID" json:"-"`

	CreatedAt time.Time `json:"-"`
}

// TableName returns the database table name.
func (Model3D) TableName() string {
	return "modelos"
}
