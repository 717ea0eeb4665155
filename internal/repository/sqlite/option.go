package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/garnizeh/skilltrack/pkg/models"
)

func (r *SQLiteRepo) CreateOption(ctx context.Context, o *models.Option) (string, error) {
	if o == nil {
		return "", fmt.Errorf("option is nil")
	}

	id := o.ID
	if id == "" {
		id = uuid.NewString()
	}

	_, err := r.conn.Exec(ctx, `INSERT INTO options (id, type, value, icon, image, updated) VALUES (?, ?, ?, ?, ?, ?)`, id, o.Type, o.Value, o.Icon, o.Image, now())
	if err != nil {
		return "", err
	}

	return id, nil
}

func (r *SQLiteRepo) GetOption(ctx context.Context, id string) (*models.Option, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, type, value, icon, image, updated FROM options WHERE id = ?`, id)
	var o models.Option
	if err := row.Scan(&o.ID, &o.Type, &o.Value, &o.Icon, &o.Image, &o.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &o, nil
}

func (r *SQLiteRepo) ListOptions(ctx context.Context) ([]models.Option, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, type, value, icon, image, updated FROM options ORDER BY type, value`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Option
	for rows.Next() {
		var o models.Option
		if err := rows.Scan(&o.ID, &o.Type, &o.Value, &o.Icon, &o.Image, &o.Updated); err != nil {
			return nil, err
		}

		out = append(out, o)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateOption(ctx context.Context, o *models.Option) error {
	if o == nil {
		return fmt.Errorf("option is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE options SET type = ?, value = ?, icon = ?, image = ?, updated = ? WHERE id = ?`, o.Type, o.Value, o.Icon, o.Image, now(), o.ID)
	return err
}

func (r *SQLiteRepo) DeleteOption(ctx context.Context, id string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM options WHERE id = ?`, id)
	return err
}
