package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/skilltrack/pkg/models"
)

func (r *SQLiteRepo) CreateReset(ctx context.Context, pr *models.PasswordReset) (int64, error) {
	if pr == nil {
		return 0, fmt.Errorf("reset is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO password_resets (user_id, code_hash, expires, used, created) VALUES (?, ?, ?, 0, ?)`, pr.UserID, pr.CodeHash, pr.Expires, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

// GetActiveReset returns the newest unused, unexpired reset for the
// user, or nil when none exists.
func (r *SQLiteRepo) GetActiveReset(ctx context.Context, userID string, nowMillis int64) (*models.PasswordReset, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, user_id, code_hash, expires, used, created FROM password_resets WHERE user_id = ? AND used = 0 AND expires > ? ORDER BY created DESC LIMIT 1`, userID, nowMillis)
	var pr models.PasswordReset
	var used int
	if err := row.Scan(&pr.ID, &pr.UserID, &pr.CodeHash, &pr.Expires, &used, &pr.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	pr.Used = used != 0
	return &pr, nil
}

func (r *SQLiteRepo) ConsumeReset(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `UPDATE password_resets SET used = 1 WHERE id = ?`, id)
	return err
}
