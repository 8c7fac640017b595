package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Fullname  string    `json:"fullname"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Password  string    `json:"password"`
	Role      string    `json:"role"`
	Addresses []Address `json:"addresses" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Address struct {
	gorm.Model
	UserID    uint   `json:"userId" gorm:"index"`
	FullName  string `json:"fullName" binding:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Line1     string `json:"line1" binding:"required"`
	Line2     string `json:"line2"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	Country   string `json:"country"`
	IsDefault bool   `json:"isDefault"`
}
