package entities

import "time"

type Farm struct {
	FarmID   uint    `gorm:"primaryKey" json:"farm_id"`
	UserID   string  `json:"user_id" gorm:"index"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	AreaRai  float64 `json:"area_rai"`
	CropType string  `json:"crop_type"` // rice|sugarcane|cassava|vegetable|other

	CreatedAt time.Time
	UpdatedAt time.Time
}
