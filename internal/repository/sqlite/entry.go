package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/garnizeh/skilltrack/pkg/models"
)

const entryColumns = `id, user_id, skills, hours_spent, start_date, end_date, practice_type, project_name, other_practice_type, result, notes, created`

func (r *SQLiteRepo) CreateEntry(ctx context.Context, e *models.Entry) (string, error) {
	if e == nil {
		return "", fmt.Errorf("entry is nil")
	}

	id := e.ID
	if id == "" {
		id = uuid.NewString()
	}
	created := e.Created
	if created == 0 {
		created = now()
	}

	_, err := r.conn.Exec(ctx, `INSERT INTO entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, e.UserID, marshalList(e.Skills), float64(e.HoursSpent), e.StartDate, e.EndDate,
		marshalList(e.PracticeType), e.ProjectName, e.OtherPracticeType, marshalList(e.Result), e.Notes, created)
	if err != nil {
		return "", err
	}

	return id, nil
}

// ListEntries returns every stored entry in insertion order. The
// aggregation engine depends on a stable order to keep skill rows
// deterministic, so the sort key is (created, id).
func (r *SQLiteRepo) ListEntries(ctx context.Context) ([]models.Entry, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+entryColumns+` FROM entries ORDER BY created, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (r *SQLiteRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.conn.QueryRows(ctx, `SELECT `+entryColumns+` FROM entries WHERE user_id = ? ORDER BY created DESC, id LIMIT ? OFFSET ?`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (r *SQLiteRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM entries WHERE user_id = ?`, userID)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

func scanEntries(rows *sql.Rows) ([]models.Entry, error) {
	var out []models.Entry
	for rows.Next() {
		var e models.Entry
		var skills, practiceType, result string
		var hours float64
		var project, other sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &skills, &hours, &e.StartDate, &e.EndDate, &practiceType, &project, &other, &result, &e.Notes, &e.Created); err != nil {
			return nil, err
		}

		e.Skills = unmarshalList(skills)
		e.HoursSpent = models.Hours(hours)
		e.PracticeType = unmarshalList(practiceType)
		e.Result = unmarshalList(result)
		if project.Valid {
			e.ProjectName = &project.String
		}
		if other.Valid {
			e.OtherPracticeType = &other.String
		}

		out = append(out, e)
	}

	return out, rows.Err()
}
