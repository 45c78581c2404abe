package model

import "time"

type User struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Name string `gorm:"column:nombre;type:varchar(120);not null" json:"nombre"`

	Email string `gorm:"column:correo;type:varchar(255);not null;uniqueIndex" json:"correo"`

	Phone *string `gorm:"column:telefono;type:varchar(40)" json:"telefono"`

	CreatedAt time.Time `json:"-"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "usuarios"
}
