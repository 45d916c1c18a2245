package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/hollyoak/starjar/internal/model"
)

// CompletionStore tracks chore assignments and their completions, and
// answers the history questions the bonus engine asks. Timestamps that feed
// SQL comparisons are always bound from Go so their stored form is uniform.
type CompletionStore struct {
	db *sql.DB
}

func NewCompletionStore(db *sql.DB) *CompletionStore {
	return &CompletionStore{db: db}
}

const assignmentCols = `id, child_id, title, frequency, active, created_at`

func scanAssignment(scanner interface{ Scan(...any) error }) (*model.Assignment, error) {
	var a model.Assignment
	var frequency string
	var active int

	err := scanner.Scan(&a.ID, &a.ChildID, &a.Title, &frequency, &active, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	a.Frequency = model.Frequency(frequency)
	a.Active = active != 0
	return &a, nil
}

func (s *CompletionStore) CreateAssignment(childID int64, title string, freq model.Frequency, active bool) (*model.Assignment, error) {
	result, err := s.db.Exec(
		`INSERT INTO assignments (child_id, title, frequency, active, created_at) VALUES (?, ?, ?, ?, ?)`,
		childID, title, string(freq), boolInt(active), time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert assignment: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetAssignment(id)
}

func (s *CompletionStore) GetAssignment(id int64) (*model.Assignment, error) {
	row := s.db.QueryRow(`SELECT `+assignmentCols+` FROM assignments WHERE id = ?`, id)
	a, err := scanAssignment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return a, nil
}

const completionCols = `id, assignment_id, child_id, status, completed_at, approved_at`

func scanCompletion(scanner interface{ Scan(...any) error }) (*model.Completion, error) {
	var c model.Completion
	var status string
	var approvedAt sql.NullTime

	err := scanner.Scan(&c.ID, &c.AssignmentID, &c.ChildID, &status, &c.CompletedAt, &approvedAt)
	if err != nil {
		return nil, err
	}

	c.Status = model.CompletionStatus(status)
	if approvedAt.Valid {
		t := approvedAt.Time
		c.ApprovedAt = &t
	}
	return &c, nil
}

// Record logs a pending completion for an assignment.
func (s *CompletionStore) Record(assignmentID, childID int64) (*model.Completion, error) {
	result, err := s.db.Exec(
		`INSERT INTO completions (assignment_id, child_id, status, completed_at) VALUES (?, ?, ?, ?)`,
		assignmentID, childID, string(model.CompletionPending), time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert completion: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *CompletionStore) GetByID(id int64) (*model.Completion, error) {
	row := s.db.QueryRow(`SELECT `+completionCols+` FROM completions WHERE id = ?`, id)
	c, err := scanCompletion(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get completion: %w", err)
	}
	return c, nil
}

// Approve marks a completion approved. Approving an already-approved
// completion is a no-op update.
func (s *CompletionStore) Approve(id int64) (*model.Completion, error) {
	_, err := s.db.Exec(
		`UPDATE completions SET status = ?, approved_at = ? WHERE id = ?`,
		string(model.CompletionApproved), time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("approve completion: %w", err)
	}
	return s.GetByID(id)
}

// CountApproved returns the child's lifetime approved completion count.
func (s *CompletionStore) CountApproved(childID int64) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM completions WHERE child_id = ? AND status = ?`,
		childID, string(model.CompletionApproved),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count approved: %w", err)
	}
	return count, nil
}

// CountApprovedSince counts approved completions with completed_at at or
// after the given instant.
func (s *CompletionStore) CountApprovedSince(childID int64, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM completions WHERE child_id = ? AND status = ? AND completed_at >= ?`,
		childID, string(model.CompletionApproved), since.UTC(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count approved since: %w", err)
	}
	return count, nil
}

// WeekAssignmentSummary reports, for the Monday-opened week at weekStart,
// how many active daily assignments existed during the week and how many of
// those have at least one approved completion timestamped inside it.
func (s *CompletionStore) WeekAssignmentSummary(childID int64, weekStart time.Time) (daily, completed int, err error) {
	weekEnd := weekStart.AddDate(0, 0, 7)

	err = s.db.QueryRow(
		`SELECT COUNT(*) FROM assignments
		 WHERE child_id = ? AND frequency = ? AND active = 1 AND created_at < ?`,
		childID, string(model.FreqDaily), weekEnd.UTC(),
	).Scan(&daily)
	if err != nil {
		return 0, 0, fmt.Errorf("count daily assignments: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COUNT(*) FROM assignments a
		 WHERE a.child_id = ? AND a.frequency = ? AND a.active = 1 AND a.created_at < ?
		   AND EXISTS (
		       SELECT 1 FROM completions c
		       WHERE c.assignment_id = a.id AND c.status = ?
		         AND c.completed_at >= ? AND c.completed_at < ?
		   )`,
		childID, string(model.FreqDaily), weekEnd.UTC(),
		string(model.CompletionApproved), weekStart.UTC(), weekEnd.UTC(),
	).Scan(&completed)
	if err != nil {
		return 0, 0, fmt.Errorf("count completed assignments: %w", err)
	}

	return daily, completed, nil
}
