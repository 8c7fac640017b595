package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Brand       string          `json:"brand"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"active" gorm:"default:true"`
	Category    string          `json:"category"`
	Attributes  datatypes.JSON  `json:"attributes"`
}
