package categories

import (
	"github.com/google/uuid"
)

type Category struct {
	ID   uuid.UUID `json:"id"   gorm:"column:id"`
	Name string    `json:"name" gorm:"column:name"`
}

func (Category) TableName() string {
	return "categories"
}
