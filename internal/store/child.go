package store

import (
	"database/sql"
	"fmt"

	"github.com/hollyoak/starjar/internal/model"
)

type ChildStore struct {
	db *sql.DB
}

func NewChildStore(db *sql.DB) *ChildStore {
	return &ChildStore{db: db}
}

const childCols = `id, name, age_group, interests, birth_month, birth_year, created_at`

func scanChild(scanner interface{ Scan(...any) error }) (*model.Child, error) {
	var c model.Child
	var ageGroup, interests string
	var birthMonth, birthYear sql.NullInt64

	err := scanner.Scan(&c.ID, &c.Name, &ageGroup, &interests, &birthMonth, &birthYear, &c.CreatedAt)
	if err != nil {
		return nil, err
	}

	c.AgeGroup = model.AgeGroup(ageGroup)
	c.Interests = decodeStrings(interests)
	if birthMonth.Valid {
		m := int(birthMonth.Int64)
		c.BirthMonth = &m
	}
	if birthYear.Valid {
		y := int(birthYear.Int64)
		c.BirthYear = &y
	}
	return &c, nil
}

func (s *ChildStore) Create(name string, ageGroup model.AgeGroup, interests []string, birthMonth, birthYear *int) (*model.Child, error) {
	var bm, by sql.NullInt64
	if birthMonth != nil {
		bm = sql.NullInt64{Int64: int64(*birthMonth), Valid: true}
	}
	if birthYear != nil {
		by = sql.NullInt64{Int64: int64(*birthYear), Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO children (name, age_group, interests, birth_month, birth_year) VALUES (?, ?, ?, ?, ?)`,
		name, string(ageGroup), encodeStrings(interests), bm, by,
	)
	if err != nil {
		return nil, fmt.Errorf("insert child: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ChildStore) GetByID(id int64) (*model.Child, error) {
	row := s.db.QueryRow(`SELECT `+childCols+` FROM children WHERE id = ?`, id)
	c, err := scanChild(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get child: %w", err)
	}
	return c, nil
}

func (s *ChildStore) List() ([]model.Child, error) {
	rows, err := s.db.Query(`SELECT ` + childCols + ` FROM children ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()

	var children []model.Child
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, fmt.Errorf("scan child: %w", err)
		}
		children = append(children, *c)
	}
	return children, rows.Err()
}
