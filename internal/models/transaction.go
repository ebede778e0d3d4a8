package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recognized transaction kinds. SIP is a recurring purchase and is treated as
// BUY by the holdings engine; DIV affects neither units nor cost basis.
const (
	TxnBuy  = "BUY"
	TxnSell = "SELL"
	TxnDiv  = "DIV"
	TxnSIP  = "SIP"
)

// Recognized asset type labels. Free-form in the ledger; not validated against
// the market data gateway.
const (
	AssetStock      = "stock"
	AssetMutualFund = "mutual_fund"
	AssetETF        = "etf"
	AssetCrypto     = "crypto"
)

// Transaction is one append-only ledger row. Rows are created by user action
// and never updated in place; symbols are upper-cased at write time.
type Transaction struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint64 `gorm:"not null;index:idx_transactions_user_date,priority:1" json:"user_id"`

	// Date is an ISO calendar date (YYYY-MM-DD) so lexicographic order is
	// chronological order.
	Date      string `gorm:"type:varchar(10);not null;index:idx_transactions_user_date,priority:2" json:"date"`
	Symbol    string `gorm:"type:varchar(32);not null;index" json:"symbol"`
	AssetType string `gorm:"type:varchar(20);not null" json:"asset_type"`
	TxnType   string `gorm:"type:varchar(10);not null" json:"txn_type"`

	Units decimal.Decimal `gorm:"type:numeric(30,10);not null" json:"units"`
	Price decimal.Decimal `gorm:"type:numeric(20,10);not null" json:"price"`
	Fees  decimal.Decimal `gorm:"type:numeric(20,10);not null;default:0" json:"fees"`

	Account string `gorm:"type:varchar(64);not null;default:'Default'" json:"account"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
