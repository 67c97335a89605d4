package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ZeeshanAK/my-availability-app/internal/app"
	"github.com/ZeeshanAK/my-availability-app/internal/domain"
	_ "modernc.org/sqlite"
)

// driverName defines a package constant value.
const driverName = "sqlite"

// Repository stores owners, activities, and schedule entries in SQLite.
type Repository struct {
	db *sql.DB
}

// Open opens (and creates if needed) the database at path.
func Open(path string) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo := &Repository{db: db}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// OpenInMemory opens a throwaway in-memory database, used by tests.
func OpenInMemory() (*Repository, error) {
	db, err := sql.Open(driverName, "file::memory:?cache=shared")
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	repo := &Repository{db: db}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Close closes the underlying database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// migrate creates the schema. Entries carry no foreign key to activities:
// deleting an activity must not cascade into entries, which keep their
// name/color snapshot.
func (r *Repository) migrate(ctx context.Context) error {
	stmts := []string{
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS owners (
			id TEXT PRIMARY KEY,
			display_name TEXT NOT NULL,
			timezone TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS activities (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			name TEXT NOT NULL,
			color TEXT NOT NULL,
			created_at TEXT NOT NULL,
			FOREIGN KEY(owner_id) REFERENCES owners(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS schedule_entries (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			activity_id TEXT NOT NULL,
			activity_name TEXT NOT NULL,
			color TEXT NOT NULL,
			start_utc TEXT NOT NULL,
			end_utc TEXT NOT NULL,
			anchor_date TEXT NOT NULL,
			recurrence_kind TEXT NOT NULL,
			weekdays TEXT NOT NULL DEFAULT '',
			window_start TEXT,
			window_end TEXT,
			created_at TEXT NOT NULL,
			FOREIGN KEY(owner_id) REFERENCES owners(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_activities_owner ON activities(owner_id);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_owner ON schedule_entries(owner_id);`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// CreateOwner persists an owner row.
func (r *Repository) CreateOwner(ctx context.Context, o domain.Owner) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO owners(id, display_name, timezone, created_at)
		VALUES (?, ?, ?, ?)
	`, o.ID, o.DisplayName, o.Timezone, ts(o.CreatedAt))
	return err
}

// GetOwner fetches one owner by ID.
func (r *Repository) GetOwner(ctx context.Context, id string) (domain.Owner, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, display_name, timezone, created_at
		FROM owners
		WHERE id = ?
	`, id)
	return scanOwner(row)
}

// CreateActivity persists an activity row.
func (r *Repository) CreateActivity(ctx context.Context, a domain.Activity) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activities(id, owner_id, name, color, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, a.ID, a.OwnerID, a.Name, a.Color, ts(a.CreatedAt))
	return err
}

// GetActivity fetches one of the owner's activities by ID.
func (r *Repository) GetActivity(ctx context.Context, ownerID, id string) (domain.Activity, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, color, created_at
		FROM activities
		WHERE owner_id = ? AND id = ?
	`, ownerID, id)
	return scanActivity(row)
}

// ListActivities lists the owner's activities.
func (r *Repository) ListActivities(ctx context.Context, ownerID string) ([]domain.Activity, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, name, color, created_at
		FROM activities
		WHERE owner_id = ?
		ORDER BY name ASC, id ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteActivity removes one of the owner's activities. Entries referencing
// it are left untouched.
func (r *Repository) DeleteActivity(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM activities WHERE owner_id = ? AND id = ?
	`, ownerID, id)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// CreateEntry persists a schedule entry row.
func (r *Repository) CreateEntry(ctx context.Context, e domain.ScheduleEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO schedule_entries(
			id, owner_id, activity_id, activity_name, color,
			start_utc, end_utc, anchor_date,
			recurrence_kind, weekdays, window_start, window_end,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.ID, e.OwnerID, e.ActivityID, e.ActivityName, e.Color,
		ts(e.StartUTC), ts(e.EndUTC), e.Anchor.String(),
		string(e.Recurrence.Kind), encodeWeekdays(e.Recurrence.Weekdays),
		nullableDate(e.Recurrence.WindowStart), nullableDate(e.Recurrence.WindowEnd),
		ts(e.CreatedAt),
	)
	return err
}

// GetEntry fetches one of the owner's entries by ID.
func (r *Repository) GetEntry(ctx context.Context, ownerID, id string) (domain.ScheduleEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, activity_id, activity_name, color,
			start_utc, end_utc, anchor_date,
			recurrence_kind, weekdays, window_start, window_end,
			created_at
		FROM schedule_entries
		WHERE owner_id = ? AND id = ?
	`, ownerID, id)
	return scanEntry(row)
}

// ListEntries lists the owner's full entry set in deterministic order.
func (r *Repository) ListEntries(ctx context.Context, ownerID string) ([]domain.ScheduleEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, activity_id, activity_name, color,
			start_utc, end_utc, anchor_date,
			recurrence_kind, weekdays, window_start, window_end,
			created_at
		FROM schedule_entries
		WHERE owner_id = ?
		ORDER BY anchor_date ASC, start_utc ASC, id ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ScheduleEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteEntry removes one of the owner's entries.
func (r *Repository) DeleteEntry(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM schedule_entries WHERE owner_id = ? AND id = ?
	`, ownerID, id)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// scanner represents scanner data used by this package.
type scanner interface {
	Scan(dest ...any) error
}

func scanOwner(s scanner) (domain.Owner, error) {
	var (
		o          domain.Owner
		createdRaw string
	)
	if err := s.Scan(&o.ID, &o.DisplayName, &o.Timezone, &createdRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Owner{}, app.ErrNotFound
		}
		return domain.Owner{}, err
	}
	o.CreatedAt = parseTS(createdRaw)
	return o, nil
}

func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a          domain.Activity
		createdRaw string
	)
	if err := s.Scan(&a.ID, &a.OwnerID, &a.Name, &a.Color, &createdRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Activity{}, app.ErrNotFound
		}
		return domain.Activity{}, err
	}
	a.CreatedAt = parseTS(createdRaw)
	return a, nil
}

// scanEntry decodes a stored entry leniently: unparseable dates, clocks, or
// weekday tokens come back as zero values so the aggregator's shape check
// can skip and report the record instead of one bad row failing the whole
// list.
func scanEntry(s scanner) (domain.ScheduleEntry, error) {
	var (
		e           domain.ScheduleEntry
		startRaw    string
		endRaw      string
		anchorRaw   string
		kindRaw     string
		weekdaysRaw string
		windowStart sql.NullString
		windowEnd   sql.NullString
		createdRaw  string
	)
	if err := s.Scan(
		&e.ID,
		&e.OwnerID,
		&e.ActivityID,
		&e.ActivityName,
		&e.Color,
		&startRaw,
		&endRaw,
		&anchorRaw,
		&kindRaw,
		&weekdaysRaw,
		&windowStart,
		&windowEnd,
		&createdRaw,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ScheduleEntry{}, app.ErrNotFound
		}
		return domain.ScheduleEntry{}, err
	}
	e.StartUTC = parseTS(startRaw)
	e.EndUTC = parseTS(endRaw)
	e.Anchor = parseDate(anchorRaw)
	e.CreatedAt = parseTS(createdRaw)
	e.Recurrence = domain.Recurrence{
		Kind:        domain.RecurrenceKind(kindRaw),
		Weekdays:    parseWeekdays(weekdaysRaw),
		WindowStart: parseNullDate(windowStart),
		WindowEnd:   parseNullDate(windowEnd),
	}
	return e, nil
}

// translateNoRows handles translate no rows.
func translateNoRows(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return app.ErrNotFound
	}
	return nil
}

// ts handles ts.
func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTS parses input into a normalized form.
func parseTS(v string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return ts.UTC()
}

func nullableDate(d domain.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

func parseDate(v string) domain.Date {
	d, err := domain.ParseDate(v)
	if err != nil {
		return domain.Date{}
	}
	return d
}

func parseNullDate(v sql.NullString) domain.Date {
	if !v.Valid || strings.TrimSpace(v.String) == "" {
		return domain.Date{}
	}
	return parseDate(v.String)
}

// encodeWeekdays serializes a weekday set as comma-separated indices.
func encodeWeekdays(days []time.Weekday) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(int(d)))
	}
	return strings.Join(parts, ",")
}

func parseWeekdays(v string) []time.Weekday {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	var out []time.Weekday
	for _, part := range strings.Split(v, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 6 {
			continue
		}
		out = append(out, time.Weekday(n))
	}
	return out
}
