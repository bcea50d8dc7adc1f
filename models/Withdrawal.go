package models

import "gorm.io/gorm"

const (
	WithdrawalStatusPending  = "pending"
	WithdrawalStatusApproved = "approved"
	WithdrawalStatusRejected = "rejected"
)

const (
	PayoutMethodBank      = "bank"
	PayoutMethodEasypaisa = "easypaisa"
	PayoutMethodJazzcash  = "jazzcash"
)

type Withdrawal struct {
	gorm.Model
	UserID         uint    `json:"userID" gorm:"index"`
	Amount         float64 `json:"amount"`
	Status         string  `json:"status" gorm:"type:varchar(20);default:pending;index"` // pending, approved, rejected
	PayoutMethod   string  `json:"payoutMethod" gorm:"type:varchar(20)"`                 // bank, easypaisa, jazzcash
	AccountDetails string  `json:"accountDetails"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
