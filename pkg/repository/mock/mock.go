package mock

import (
	"context"
	"fmt"

	"github.com/garnizeh/skilltrack/pkg/models"
)

// Test helpers and mocks
type Mocks struct {
	Users   *UserRepo
	Entries *EntryRepo
	Options *OptionRepo
	Resets  *ResetRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Users:   &UserRepo{},
		Entries: &EntryRepo{},
		Options: &OptionRepo{},
		Resets:  &ResetRepo{},
	}
}

type UserRepo struct {
	Stored    []models.User
	CreateErr error
	ListErr   error
}

func (m *UserRepo) CreateUser(ctx context.Context, u *models.User) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	id := u.ID
	if id == "" {
		id = fmt.Sprintf("u%d", len(m.Stored)+1)
	}
	stored := *u
	stored.ID = id
	m.Stored = append(m.Stored, stored)
	return id, nil
}

func (m *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			u := m.Stored[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (m *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for i := range m.Stored {
		if m.Stored[i].Email == email {
			u := m.Stored[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (m *UserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]models.User(nil), m.Stored...), nil
}

func (m *UserRepo) UpdateUser(ctx context.Context, u *models.User) error {
	for i := range m.Stored {
		if m.Stored[i].ID == u.ID {
			m.Stored[i] = *u
			return nil
		}
	}
	return fmt.Errorf("user %s not found", u.ID)
}

func (m *UserRepo) DeleteUser(ctx context.Context, id string) error {
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			m.Stored = append(m.Stored[:i], m.Stored[i+1:]...)
			return nil
		}
	}
	return nil
}

type EntryRepo struct {
	Stored    []models.Entry
	CreateErr error
	ListErr   error
}

func (m *EntryRepo) CreateEntry(ctx context.Context, e *models.Entry) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	id := e.ID
	if id == "" {
		id = fmt.Sprintf("e%d", len(m.Stored)+1)
	}
	stored := *e
	stored.ID = id
	m.Stored = append(m.Stored, stored)
	return id, nil
}

func (m *EntryRepo) ListEntries(ctx context.Context) ([]models.Entry, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]models.Entry(nil), m.Stored...), nil
}

func (m *EntryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Entry, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []models.Entry
	for _, e := range m.Stored {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *EntryRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	for _, e := range m.Stored {
		if e.UserID == userID {
			n++
		}
	}
	return n, nil
}

type OptionRepo struct {
	Stored    []models.Option
	CreateErr error
}

func (m *OptionRepo) CreateOption(ctx context.Context, o *models.Option) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	id := o.ID
	if id == "" {
		id = fmt.Sprintf("o%d", len(m.Stored)+1)
	}
	stored := *o
	stored.ID = id
	m.Stored = append(m.Stored, stored)
	return id, nil
}

func (m *OptionRepo) GetOption(ctx context.Context, id string) (*models.Option, error) {
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			o := m.Stored[i]
			return &o, nil
		}
	}
	return nil, nil
}

func (m *OptionRepo) ListOptions(ctx context.Context) ([]models.Option, error) {
	return append([]models.Option(nil), m.Stored...), nil
}

func (m *OptionRepo) UpdateOption(ctx context.Context, o *models.Option) error {
	for i := range m.Stored {
		if m.Stored[i].ID == o.ID {
			m.Stored[i] = *o
			return nil
		}
	}
	return fmt.Errorf("option %s not found", o.ID)
}

func (m *OptionRepo) DeleteOption(ctx context.Context, id string) error {
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			m.Stored = append(m.Stored[:i], m.Stored[i+1:]...)
			return nil
		}
	}
	return nil
}

type ResetRepo struct {
	Stored []models.PasswordReset
	nextID int64
}

func (m *ResetRepo) CreateReset(ctx context.Context, r *models.PasswordReset) (int64, error) {
	m.nextID++
	stored := *r
	stored.ID = m.nextID
	m.Stored = append(m.Stored, stored)
	return stored.ID, nil
}

func (m *ResetRepo) GetActiveReset(ctx context.Context, userID string, now int64) (*models.PasswordReset, error) {
	for i := len(m.Stored) - 1; i >= 0; i-- {
		r := m.Stored[i]
		if r.UserID == userID && !r.Used && r.Expires > now {
			return &r, nil
		}
	}
	return nil, nil
}

func (m *ResetRepo) ConsumeReset(ctx context.Context, id int64) error {
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			m.Stored[i].Used = true
			return nil
		}
	}
	return fmt.Errorf("reset %d not found", id)
}
