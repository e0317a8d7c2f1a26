package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	Popularity  int             `gorm:"not null;default:0;index"`
	CategoryID  *uint           `gorm:"index"`
	Category    *Category       `gorm:"constraint:OnDelete:SET NULL"`
	Images      []ProductImage  `gorm:"constraint:OnDelete:CASCADE"`
	BaseModel
}

// PrimaryImage 沒有圖片時回傳nil
func (p *Product) PrimaryImage() *ProductImage {
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	return nil
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"not null;index"`
	Filename  string `gorm:"type:varchar(255);not null"`
	IsPrimary bool   `gorm:"not null;default:false"`
}

func (i *ProductImage) URL(mediaURL string) string {
	return fmt.Sprintf("%s/products/%s", mediaURL, i.Filename)
}

// ProductRating 評論聚合結果
type ProductRating struct {
	ProductID     uint
	AverageRating float64
	ReviewsCount  int64
}
