package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/hollyoak/starjar/internal/model"
)

// CatalogStore reads the reward catalog. The ranking engine never fetches
// data itself; callers pull the candidate list from here and hand it over.
type CatalogStore struct {
	db *sql.DB
}

func NewCatalogStore(db *sql.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

const rewardCols = `id, title, description, age_group, interests, category, price_pence, popularity, featured, blocked, created_at, last_synced_at`

func scanRewardItem(scanner interface{ Scan(...any) error }) (*model.RewardItem, error) {
	var r model.RewardItem
	var ageGroup, interests string
	var price sql.NullInt64
	var featured, blocked int
	var lastSynced sql.NullTime

	err := scanner.Scan(&r.ID, &r.Title, &r.Description, &ageGroup, &interests, &r.Category,
		&price, &r.Popularity, &featured, &blocked, &r.CreatedAt, &lastSynced)
	if err != nil {
		return nil, err
	}

	r.AgeGroup = model.AgeGroup(ageGroup)
	r.Interests = decodeStrings(interests)
	if price.Valid {
		p := int(price.Int64)
		r.PricePence = &p
	}
	r.Featured = featured != 0
	r.Blocked = blocked != 0
	if lastSynced.Valid {
		t := lastSynced.Time
		r.LastSyncedAt = &t
	}
	return &r, nil
}

// Create inserts a catalog item. A zero CreatedAt defaults to now; tests set
// it explicitly to exercise freshness decay.
func (s *CatalogStore) Create(item model.RewardItem) (*model.RewardItem, error) {
	var price sql.NullInt64
	if item.PricePence != nil {
		price = sql.NullInt64{Int64: int64(*item.PricePence), Valid: true}
	}
	var lastSynced sql.NullTime
	if item.LastSyncedAt != nil {
		lastSynced = sql.NullTime{Time: *item.LastSyncedAt, Valid: true}
	}
	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	result, err := s.db.Exec(
		`INSERT INTO rewards (title, description, age_group, interests, category, price_pence, popularity, featured, blocked, created_at, last_synced_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Title, item.Description, string(item.AgeGroup), encodeStrings(item.Interests), item.Category,
		price, item.Popularity, boolInt(item.Featured), boolInt(item.Blocked), createdAt, lastSynced,
	)
	if err != nil {
		return nil, fmt.Errorf("insert reward: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *CatalogStore) GetByID(id int64) (*model.RewardItem, error) {
	row := s.db.QueryRow(`SELECT `+rewardCols+` FROM rewards WHERE id = ?`, id)
	r, err := scanRewardItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reward: %w", err)
	}
	return r, nil
}

// List returns the whole catalog in id order so score ties rank
// deterministically.
func (s *CatalogStore) List() ([]model.RewardItem, error) {
	rows, err := s.db.Query(`SELECT ` + rewardCols + ` FROM rewards ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list rewards: %w", err)
	}
	defer rows.Close()

	var items []model.RewardItem
	for rows.Next() {
		r, err := scanRewardItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reward: %w", err)
		}
		items = append(items, *r)
	}
	return items, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
