package model

// FallbackCategoryID is used when an upload does not name a category.
const FallbackCategoryID uint64 = 10

type Category struct {
	// seeded with fixed identifiers, never allocated by the store
	ID uint64 `gorm:"primaryKey;autoIncrement:false" json:"id"`

	Name string `gorm:"column:nombre;type:varchar(120);not null" json:"nombre"`

	Description *string `gorm:"column:descripcion;type:text" json:"descripcion"`
}

// TableName returns the database table name.
func (Category) TableName() string {
	return "categorias"
}
