package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jask/palette/internal/database"
)

var ErrNotFound = errors.New("not found")

// AlarmRepo handles alarms.
type AlarmRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewAlarmRepo(db *sql.DB) *AlarmRepo {
	return &AlarmRepo{db: db, now: database.Now}
}

// Create stores a new alarm at minute-of-day at.
func (r *AlarmRepo) Create(ctx context.Context, at int, label string) (Alarm, error) {
	if at < 0 || at >= 24*60 {
		return Alarm{}, fmt.Errorf("create alarm: minute %d out of range", at)
	}
	a := Alarm{
		ID:        uuid.NewString(),
		AtMinute:  at,
		Label:     strings.TrimSpace(label),
		CreatedAt: r.now(),
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO alarms(id, at_minute, label, created_at) VALUES (?, ?, ?, ?);
	`, a.ID, a.AtMinute, a.Label, a.CreatedAt)
	if err != nil {
		return Alarm{}, fmt.Errorf("create alarm: %w", err)
	}
	return a, nil
}

func (r *AlarmRepo) List(ctx context.Context) ([]Alarm, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, at_minute, label, created_at FROM alarms ORDER BY at_minute, created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list alarms: %w", err)
	}
	defer rows.Close()
	var out []Alarm
	for rows.Next() {
		var a Alarm
		if err := rows.Scan(&a.ID, &a.AtMinute, &a.Label, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes the alarm with id. It reports ErrNotFound when nothing matched.
func (r *AlarmRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM alarms WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete alarm: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll removes every alarm and returns how many there were.
func (r *AlarmRepo) DeleteAll(ctx context.Context) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM alarms`)
	if err != nil {
		return 0, fmt.Errorf("delete alarms: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}
