package store

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type TransactionType string

const (
	TransactionCredit TransactionType = "CREDIT"
	TransactionDebit  TransactionType = "DEBIT"
)

type ActionType string

const (
	ActionRegistration           ActionType = "REGISTRATION"
	ActionAuthorization          ActionType = "AUTHORIZATION"
	ActionBalanceInquiry         ActionType = "BALANCE_INQUIRY"
	ActionCreditTransaction      ActionType = "CREDIT_TRANSACTION"
	ActionDebitTransaction       ActionType = "DEBIT_TRANSACTION"
	ActionViewTransactionHistory ActionType = "VIEW_TRANSACTION_HISTORY"
)

type AuditType string

const (
	AuditSuccess AuditType = "SUCCESS"
	AuditFail    AuditType = "FAIL"
)

type Player struct {
	ID           string          `json:"id"`
	Username     string          `json:"username"`
	PasswordHash string          `json:"-"`
	Balance      decimal.Decimal `json:"balance"`
	Role         Role            `json:"role"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Transaction is one accepted ledger movement. ExternalID is the global
// idempotency key.
type Transaction struct {
	ID            string          `json:"id"`
	ExternalID    int64           `json:"transaction_id"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	PlayerID      string          `json:"player_id"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	CreatedAt     time.Time       `json:"created_at"`
}

type Audit struct {
	ID             string     `json:"id"`
	PlayerFullName string     `json:"player_full_name"`
	ActionType     ActionType `json:"action_type"`
	AuditType      AuditType  `json:"audit_type"`
	CreatedAt      time.Time  `json:"created_at"`
}
