package techstacks

import (
	"github.com/google/uuid"
)

type TechStack struct {
	ID      uuid.UUID     `json:"id"      gorm:"column:id"`
	Name    string        `json:"name"    gorm:"column:name"`
	IconURL string        `json:"iconUrl" gorm:"column:icon_url"`
	Type    TechStackType `json:"type"    gorm:"column:type"`
}

func (TechStack) TableName() string {
	return "tech_stacks"
}
