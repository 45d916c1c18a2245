package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hollyoak/starjar/internal/model"
	sqlite "modernc.org/sqlite"
)

// sqliteConstraintUnique is SQLITE_CONSTRAINT_UNIQUE, the extended result
// code raised when the dedup index rejects a duplicate award.
const sqliteConstraintUnique = 2067

// AwardOutcome distinguishes the two success outcomes of an award attempt.
// "Already awarded" is not an error: under concurrent completions the loser
// of the insert race simply learns the bonus was paid.
type AwardOutcome string

const (
	Awarded        AwardOutcome = "awarded"
	AlreadyAwarded AwardOutcome = "already_awarded"
)

// WalletStore owns wallet balances and their append-only transaction ledger,
// including the idempotency guard around bonus awards.
type WalletStore struct {
	db *sql.DB
}

func NewWalletStore(db *sql.DB) *WalletStore {
	return &WalletStore{db: db}
}

const walletCols = `id, child_id, balance_pence, balance_stars, updated_at`

func scanWallet(scanner interface{ Scan(...any) error }) (*model.Wallet, error) {
	var w model.Wallet
	err := scanner.Scan(&w.ID, &w.ChildID, &w.BalancePence, &w.BalanceStars, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// EnsureWallet returns the child's wallet, creating an empty one if needed.
func (s *WalletStore) EnsureWallet(childID int64) (*model.Wallet, error) {
	_, err := s.db.Exec(
		`INSERT INTO wallets (child_id, updated_at) VALUES (?, ?) ON CONFLICT(child_id) DO NOTHING`,
		childID, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("ensure wallet: %w", err)
	}
	return s.GetByChildID(childID)
}

func (s *WalletStore) GetByChildID(childID int64) (*model.Wallet, error) {
	row := s.db.QueryRow(`SELECT `+walletCols+` FROM wallets WHERE child_id = ?`, childID)
	w, err := scanWallet(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	return w, nil
}

// AwardBonus records a bonus transaction and credits the wallet as one
// database transaction. The partial unique index on (wallet_id, dedup_key)
// makes the insert the point of arbitration: if another request already
// awarded the same eligibility window, the insert fails with a UNIQUE
// violation and the whole attempt rolls back to a no-op. A result with an
// empty dedup key is never deduplicated.
func (s *WalletStore) AwardBonus(walletID int64, res model.BonusResult) (AwardOutcome, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin award: %w", err)
	}
	defer tx.Rollback()

	var dedup sql.NullString
	if res.DedupKey != "" {
		dedup = sql.NullString{String: res.DedupKey, Valid: true}
	}

	_, err = tx.Exec(
		`INSERT INTO transactions (wallet_id, type, bonus_type, dedup_key, money_pence, stars, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		walletID, string(model.TxnBonus), string(res.Type), dedup, res.MoneyPence, res.Stars, res.Reason, time.Now().UTC(),
	)
	if isUniqueViolation(err) {
		return AlreadyAwarded, nil
	}
	if err != nil {
		return "", fmt.Errorf("insert award: %w", err)
	}

	_, err = tx.Exec(
		`UPDATE wallets SET balance_pence = balance_pence + ?, balance_stars = balance_stars + ?, updated_at = ? WHERE id = ?`,
		res.MoneyPence, res.Stars, time.Now().UTC(), walletID,
	)
	if err != nil {
		return "", fmt.Errorf("credit wallet: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit award: %w", err)
	}
	return Awarded, nil
}

// ListTransactions returns the wallet's ledger, newest first.
func (s *WalletStore) ListTransactions(walletID int64) ([]model.Transaction, error) {
	rows, err := s.db.Query(
		`SELECT id, wallet_id, type, bonus_type, dedup_key, money_pence, stars, reason, created_at
		 FROM transactions WHERE wallet_id = ? ORDER BY created_at DESC, id DESC`,
		walletID,
	)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var bonusType sql.NullString
		var dedup sql.NullString
		if err := rows.Scan(&t.ID, &t.WalletID, &t.Type, &bonusType, &dedup, &t.MoneyPence, &t.Stars, &t.Reason, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if bonusType.Valid {
			t.BonusType = model.BonusType(bonusType.String)
		}
		if dedup.Valid {
			t.DedupKey = &dedup.String
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// Balance pairs a wallet with its owner for the family leaderboard.
type Balance struct {
	ChildID      int64  `json:"child_id"`
	ChildName    string `json:"child_name"`
	BalancePence int    `json:"balance_pence"`
	BalanceStars int    `json:"balance_stars"`
}

// ListBalances returns every child's balances, highest star balance first.
func (s *WalletStore) ListBalances() ([]Balance, error) {
	rows, err := s.db.Query(
		`SELECT c.id, c.name, COALESCE(w.balance_pence, 0), COALESCE(w.balance_stars, 0)
		 FROM children c
		 LEFT JOIN wallets w ON w.child_id = c.id
		 ORDER BY COALESCE(w.balance_stars, 0) DESC, c.name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()

	var balances []Balance
	for rows.Next() {
		var b Balance
		if err := rows.Scan(&b.ChildID, &b.ChildName, &b.BalancePence, &b.BalanceStars); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqliteConstraintUnique
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
