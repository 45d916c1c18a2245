package model

import "time"

type Wallet struct {
	ID           int64     `json:"id"`
	ChildID      int64     `json:"child_id"`
	BalancePence int       `json:"balance_pence"`
	BalanceStars int       `json:"balance_stars"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type TransactionType string

const (
	TxnBonus TransactionType = "bonus"
	TxnEarn  TransactionType = "earn"
	TxnSpend TransactionType = "spend"
)

// Transaction is an append-only wallet ledger entry. Bonus transactions
// carry the dedup key that scopes their eligibility window.
type Transaction struct {
	ID         int64           `json:"id"`
	WalletID   int64           `json:"wallet_id"`
	Type       TransactionType `json:"type"`
	BonusType  BonusType       `json:"bonus_type,omitempty"`
	DedupKey   *string         `json:"dedup_key,omitempty"`
	MoneyPence int             `json:"money_pence"`
	Stars      int             `json:"stars"`
	Reason     string          `json:"reason"`
	CreatedAt  time.Time       `json:"created_at"`
}
