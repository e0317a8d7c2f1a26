package model

type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Slug        string `gorm:"type:varchar(120);uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}
