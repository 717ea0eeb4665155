package sqlite

import (
	"encoding/json"
	"time"

	"log/slog"

	"github.com/garnizeh/skilltrack/internal/db"
	"github.com/garnizeh/skilltrack/pkg/models"
	"github.com/garnizeh/skilltrack/pkg/repository"
)

// SQLiteRepo implements repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.UserRepo = (*SQLiteRepo)(nil)
var _ repository.EntryRepo = (*SQLiteRepo)(nil)
var _ repository.OptionRepo = (*SQLiteRepo)(nil)
var _ repository.ResetRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}

// list-valued entry fields are stored as JSON text columns

func marshalList(s models.StringList) string {
	if s == nil {
		s = models.StringList{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func unmarshalList(raw string) models.StringList {
	var s models.StringList
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil
	}
	return s
}
