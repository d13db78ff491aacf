/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements every persistence interface the services consume using SQLite.
  The same schema ports to PostgreSQL with minor dialect changes.

INTERFACES IMPLEMENTED:
  wage.AttendanceStore:  Enriched attendance records, one per (worker, date)
  wage.ReferenceStore:   Versioned master-data snapshot
  payroll.StatusStore:   Approval status per (worker, month)

KEY TABLES:
  attendance:      One row per worker-day; sessions kept as JSON
  payroll_status:  Workflow state per (worker, period)
  workers, positions, salary_grades, grade_rates, work_schedules, holidays:
                   The master-data snapshot
  meta:            reference_version, bumped by every master-data write

MONEY AND HOURS:
  Wages are whole currency units (INTEGER). Rates and multipliers are
  decimals stored as TEXT so nothing passes through float64.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, and a single connection so that
  ":memory:" databases are shared by every query. UpdateStatus runs its
  read-modify-write inside one SQL transaction.

USAGE:
  store, err := sqlite.New("./data/sipilpro.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  svc := attendance.NewService(store, wage.Engine{Reconcile: true}, wage.NewDayCache())

SEE ALSO:
  - wage/store.go: Attendance and reference interfaces
  - payroll/service.go: StatusStore interface
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/subkh4n/SIPILPRO-sub000/payroll"
	"github.com/subkh4n/SIPILPRO-sub000/wage"
)

const (
	timeLayout = time.RFC3339Nano

	referenceVersionKey = "reference_version"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex

	// ref caches the loaded snapshot; nil after a master-data write.
	ref *wage.Reference
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	-- Master data
	CREATE TABLE IF NOT EXISTS work_schedules (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		work_days_per_week INTEGER NOT NULL DEFAULT 0,
		hours_per_day TEXT NOT NULL DEFAULT '0',
		overtime_multiplier TEXT NOT NULL DEFAULT '0',
		holiday_multiplier TEXT NOT NULL DEFAULT '0'
	);

	CREATE TABLE IF NOT EXISTS positions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		schedule_id TEXT,
		overtime_multiplier TEXT NOT NULL DEFAULT '0',
		holiday_multiplier TEXT NOT NULL DEFAULT '0'
	);

	CREATE TABLE IF NOT EXISTS salary_grades (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS grade_rates (
		grade_id TEXT NOT NULL,
		position_id TEXT NOT NULL,
		daily TEXT NOT NULL DEFAULT '0',
		hourly TEXT NOT NULL DEFAULT '0',
		PRIMARY KEY (grade_id, position_id)
	);

	CREATE TABLE IF NOT EXISTS workers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		skill_tier TEXT,
		position_id TEXT,
		grade_id TEXT,
		rate_normal TEXT NOT NULL DEFAULT '0',
		rate_overtime TEXT NOT NULL DEFAULT '0',
		rate_holiday TEXT NOT NULL DEFAULT '0'
	);

	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_holidays_date
		ON holidays(date);

	-- Attendance (one enriched record per worker-day)
	CREATE TABLE IF NOT EXISTS attendance (
		id TEXT NOT NULL,
		worker_id TEXT NOT NULL,
		date TEXT NOT NULL,
		sessions_json TEXT NOT NULL,
		is_holiday BOOLEAN NOT NULL DEFAULT FALSE,
		holiday_reason TEXT,
		total_minutes INTEGER NOT NULL,
		rate_normal TEXT NOT NULL,
		rate_overtime TEXT NOT NULL,
		rate_holiday TEXT NOT NULL,
		wage INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (worker_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_attendance_date
		ON attendance(date);

	-- Payroll workflow
	CREATE TABLE IF NOT EXISTS payroll_status (
		id TEXT NOT NULL,
		worker_id TEXT NOT NULL,
		period TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		reason TEXT,
		actor_id TEXT,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (worker_id, period)
	);

	CREATE INDEX IF NOT EXISTS idx_payroll_status_period
		ON payroll_status(period, status);
	`

	_, err := s.db.Exec(schema)
	return err
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// =============================================================================
// ATTENDANCE STORE (wage.AttendanceStore interface)
// =============================================================================

type sessionJSON struct {
	ProjectID     string `json:"project_id"`
	Start         string `json:"start"`
	End           string `json:"end"`
	Minutes       int    `json:"minutes"`
	AllocatedWage int64  `json:"allocated_wage"`
}

// SaveAttendance inserts or replaces the record for (worker, date).
func (s *Store) SaveAttendance(ctx context.Context, rec wage.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := make([]sessionJSON, len(rec.Sessions))
	for i, ws := range rec.Sessions {
		sessions[i] = sessionJSON{
			ProjectID:     string(ws.ProjectID),
			Start:         ws.Start,
			End:           ws.End,
			Minutes:       ws.Minutes,
			AllocatedWage: int64(ws.AllocatedWage),
		}
	}
	sessionsJSON, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to encode sessions: %w", err)
	}

	query := `
		INSERT INTO attendance
		(id, worker_id, date, sessions_json, is_holiday, holiday_reason, total_minutes,
		 rate_normal, rate_overtime, rate_holiday, wage, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(worker_id, date) DO UPDATE SET
			id = excluded.id,
			sessions_json = excluded.sessions_json,
			is_holiday = excluded.is_holiday,
			holiday_reason = excluded.holiday_reason,
			total_minutes = excluded.total_minutes,
			rate_normal = excluded.rate_normal,
			rate_overtime = excluded.rate_overtime,
			rate_holiday = excluded.rate_holiday,
			wage = excluded.wage,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		string(rec.ID),
		string(rec.WorkerID),
		rec.Date.String(),
		string(sessionsJSON),
		rec.IsHoliday,
		nullString(rec.HolidayReason),
		rec.TotalMinutes,
		rec.Rates.Normal.String(),
		rec.Rates.Overtime.String(),
		rec.Rates.Holiday.String(),
		int64(rec.Wage),
		rec.CreatedAt.UTC().Format(timeLayout),
		rec.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to save attendance: %w", err)
	}
	return nil
}

const attendanceColumns = `
	id, worker_id, date, sessions_json, is_holiday, holiday_reason, total_minutes,
	rate_normal, rate_overtime, rate_holiday, wage, created_at, updated_at`

// GetAttendance returns nil, nil when no record exists.
func (s *Store) GetAttendance(ctx context.Context, workerID wage.WorkerID, date wage.Date) (*wage.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE worker_id = ? AND date = ?`
	records, err := s.queryAttendance(ctx, query, string(workerID), date.String())
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// ListAttendance returns matching records ordered by date, then worker.
func (s *Store) ListAttendance(ctx context.Context, filter wage.AttendanceFilter) ([]wage.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		where []string
		args  []any
	)
	if filter.WorkerID != "" {
		where = append(where, "worker_id = ?")
		args = append(args, string(filter.WorkerID))
	}
	if !filter.From.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, filter.From.String())
	}
	if !filter.To.IsZero() {
		where = append(where, "date <= ?")
		args = append(args, filter.To.String())
	}

	query := `SELECT ` + attendanceColumns + ` FROM attendance`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY date ASC, worker_id ASC`

	records, err := s.queryAttendance(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if filter.ProjectID == "" {
		return records, nil
	}

	// Sessions live in JSON; the project filter runs after the scan.
	out := records[:0]
	for _, r := range records {
		if filter.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) queryAttendance(ctx context.Context, query string, args ...any) ([]wage.AttendanceRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var records []wage.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanAttendance(rows *sql.Rows) (wage.AttendanceRecord, error) {
	var (
		rec           wage.AttendanceRecord
		id, workerID  string
		date          string
		sessionsJSON  string
		holidayReason sql.NullString
		normal        string
		overtime      string
		holiday       string
		wageValue     int64
		createdAt     string
		updatedAt     string
	)

	err := rows.Scan(
		&id, &workerID, &date, &sessionsJSON, &rec.IsHoliday, &holidayReason, &rec.TotalMinutes,
		&normal, &overtime, &holiday, &wageValue, &createdAt, &updatedAt,
	)
	if err != nil {
		return rec, fmt.Errorf("failed to scan attendance: %w", err)
	}

	rec.ID = wage.RecordID(id)
	rec.WorkerID = wage.WorkerID(workerID)
	rec.HolidayReason = holidayReason.String
	rec.Wage = wage.Money(wageValue)
	if rec.Date, err = wage.ParseDate(date); err != nil {
		return rec, fmt.Errorf("attendance %s: %w", id, err)
	}
	if rec.Rates, err = parseRates(normal, overtime, holiday); err != nil {
		return rec, fmt.Errorf("attendance %s: %w", id, err)
	}
	rec.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	rec.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)

	var sessions []sessionJSON
	if err := json.Unmarshal([]byte(sessionsJSON), &sessions); err != nil {
		return rec, fmt.Errorf("attendance %s: failed to decode sessions: %w", id, err)
	}
	rec.Sessions = make([]wage.WorkSession, len(sessions))
	for i, sj := range sessions {
		rec.Sessions[i] = wage.WorkSession{
			ProjectID:     wage.ProjectID(sj.ProjectID),
			Start:         sj.Start,
			End:           sj.End,
			Minutes:       sj.Minutes,
			AllocatedWage: wage.Money(sj.AllocatedWage),
		}
	}
	return rec, nil
}

// =============================================================================
// REFERENCE STORE (wage.ReferenceStore interface)
// =============================================================================

// LoadReference returns the current master-data snapshot.
func (s *Store) LoadReference(ctx context.Context) (*wage.Reference, error) {
	s.mu.RLock()
	ref := s.ref
	s.mu.RUnlock()
	if ref != nil {
		return ref, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ref != nil {
		return s.ref, nil
	}

	version, err := readVersion(ctx, s.db)
	if err != nil {
		return nil, err
	}
	data, err := readReferenceData(ctx, s.db)
	if err != nil {
		return nil, err
	}
	s.ref = wage.NewReference(strconv.Itoa(version), data)
	return s.ref, nil
}

// SaveReference replaces the master-data snapshot and bumps the version.
func (s *Store) SaveReference(ctx context.Context, data wage.ReferenceData) error {
	return s.writeReference(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"workers", "grade_rates", "salary_grades", "positions", "work_schedules", "holidays"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		for _, sc := range data.Schedules {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO work_schedules (id, name, work_days_per_week, hours_per_day, overtime_multiplier, holiday_multiplier)
				VALUES (?, ?, ?, ?, ?, ?)`,
				string(sc.ID), sc.Name, sc.WorkDaysPerWeek,
				sc.HoursPerDay.String(), sc.OvertimeMultiplier.String(), sc.HolidayMultiplier.String())
			if err != nil {
				return fmt.Errorf("failed to save schedule %s: %w", sc.ID, err)
			}
		}
		for _, p := range data.Positions {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO positions (id, name, schedule_id, overtime_multiplier, holiday_multiplier)
				VALUES (?, ?, ?, ?, ?)`,
				string(p.ID), p.Name, nullString(string(p.ScheduleID)),
				p.OvertimeMultiplier.String(), p.HolidayMultiplier.String())
			if err != nil {
				return fmt.Errorf("failed to save position %s: %w", p.ID, err)
			}
		}
		for _, g := range data.Grades {
			if _, err := tx.ExecContext(ctx, `INSERT INTO salary_grades (id, name) VALUES (?, ?)`, string(g.ID), g.Name); err != nil {
				return fmt.Errorf("failed to save grade %s: %w", g.ID, err)
			}
			for pos, r := range g.Rates {
				_, err := tx.ExecContext(ctx, `
					INSERT INTO grade_rates (grade_id, position_id, daily, hourly)
					VALUES (?, ?, ?, ?)`,
					string(g.ID), string(pos), r.Daily.String(), r.Hourly.String())
				if err != nil {
					return fmt.Errorf("failed to save grade %s rate for %s: %w", g.ID, pos, err)
				}
			}
		}
		for _, w := range data.Workers {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO workers (id, name, skill_tier, position_id, grade_id, rate_normal, rate_overtime, rate_holiday)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				string(w.ID), w.Name, nullString(w.SkillTier),
				nullString(string(w.PositionID)), nullString(string(w.GradeID)),
				w.FlatRates.Normal.String(), w.FlatRates.Overtime.String(), w.FlatRates.Holiday.String())
			if err != nil {
				return fmt.Errorf("failed to save worker %s: %w", w.ID, err)
			}
		}
		for _, h := range data.Holidays {
			if err := upsertHoliday(ctx, tx, h); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddHoliday adds one holiday, replacing an entry with the same id.
func (s *Store) AddHoliday(ctx context.Context, h wage.Holiday) error {
	return s.writeReference(ctx, func(tx *sql.Tx) error {
		return upsertHoliday(ctx, tx, h)
	})
}

// DeleteHoliday removes a holiday by id.
func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	return s.writeReference(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM holidays WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to delete holiday: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: %s", wage.ErrHolidayNotFound, id)
		}
		return nil
	})
}

// writeReference runs fn in a transaction, bumps the reference version and
// drops the cached snapshot.
func (s *Store) writeReference(ctx context.Context, fn func(tx *sql.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	version, err := readVersion(ctx, tx)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		referenceVersionKey, strconv.Itoa(version+1))
	if err != nil {
		return fmt.Errorf("failed to bump reference version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.ref = nil
	return nil
}

func upsertHoliday(ctx context.Context, db execer, h wage.Holiday) error {
	query := `
		INSERT INTO holidays (id, date, name, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			name = excluded.name
	`
	_, err := db.ExecContext(ctx, query, h.ID, h.Date.String(), h.Name, time.Now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to save holiday %s: %w", h.ID, err)
	}
	return nil
}

func readVersion(ctx context.Context, db querier) (int, error) {
	var value string
	err := db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = ?", referenceVersionKey).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read reference version: %w", err)
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("corrupt reference version %q: %w", value, err)
	}
	return v, nil
}

func readReferenceData(ctx context.Context, db querier) (wage.ReferenceData, error) {
	var (
		data wage.ReferenceData
		err  error
	)
	if data.Schedules, err = readSchedules(ctx, db); err != nil {
		return data, err
	}
	if data.Positions, err = readPositions(ctx, db); err != nil {
		return data, err
	}
	if data.Grades, err = readGrades(ctx, db); err != nil {
		return data, err
	}
	if data.Workers, err = readWorkers(ctx, db); err != nil {
		return data, err
	}
	if data.Holidays, err = readHolidays(ctx, db); err != nil {
		return data, err
	}
	return data, nil
}

func readSchedules(ctx context.Context, db querier) ([]wage.WorkSchedule, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, work_days_per_week, hours_per_day, overtime_multiplier, holiday_multiplier
		FROM work_schedules ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var out []wage.WorkSchedule
	for rows.Next() {
		var (
			sc                   wage.WorkSchedule
			id                   string
			hours, ot, holidayMx string
		)
		if err := rows.Scan(&id, &sc.Name, &sc.WorkDaysPerWeek, &hours, &ot, &holidayMx); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		sc.ID = wage.ScheduleID(id)
		if sc.HoursPerDay, err = decimal.NewFromString(hours); err != nil {
			return nil, fmt.Errorf("schedule %s: %w", id, err)
		}
		if sc.OvertimeMultiplier, err = decimal.NewFromString(ot); err != nil {
			return nil, fmt.Errorf("schedule %s: %w", id, err)
		}
		if sc.HolidayMultiplier, err = decimal.NewFromString(holidayMx); err != nil {
			return nil, fmt.Errorf("schedule %s: %w", id, err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func readPositions(ctx context.Context, db querier) ([]wage.Position, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, schedule_id, overtime_multiplier, holiday_multiplier
		FROM positions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var out []wage.Position
	for rows.Next() {
		var (
			p             wage.Position
			id            string
			scheduleID    sql.NullString
			ot, holidayMx string
		)
		if err := rows.Scan(&id, &p.Name, &scheduleID, &ot, &holidayMx); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		p.ID = wage.PositionID(id)
		p.ScheduleID = wage.ScheduleID(scheduleID.String)
		if p.OvertimeMultiplier, err = decimal.NewFromString(ot); err != nil {
			return nil, fmt.Errorf("position %s: %w", id, err)
		}
		if p.HolidayMultiplier, err = decimal.NewFromString(holidayMx); err != nil {
			return nil, fmt.Errorf("position %s: %w", id, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func readGrades(ctx context.Context, db querier) ([]wage.SalaryGrade, error) {
	grades, err := func() ([]wage.SalaryGrade, error) {
		rows, err := db.QueryContext(ctx, `SELECT id, name FROM salary_grades ORDER BY id`)
		if err != nil {
			return nil, fmt.Errorf("failed to query grades: %w", err)
		}
		defer rows.Close()

		var out []wage.SalaryGrade
		for rows.Next() {
			var id, name string
			if err := rows.Scan(&id, &name); err != nil {
				return nil, fmt.Errorf("failed to scan grade: %w", err)
			}
			out = append(out, wage.SalaryGrade{ID: wage.GradeID(id), Name: name, Rates: make(map[wage.PositionID]wage.PositionRate)})
		}
		return out, rows.Err()
	}()
	if err != nil {
		return nil, err
	}

	index := make(map[wage.GradeID]int, len(grades))
	for i, g := range grades {
		index[g.ID] = i
	}

	rows, err := db.QueryContext(ctx, `SELECT grade_id, position_id, daily, hourly FROM grade_rates`)
	if err != nil {
		return nil, fmt.Errorf("failed to query grade rates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var gradeID, positionID, daily, hourly string
		if err := rows.Scan(&gradeID, &positionID, &daily, &hourly); err != nil {
			return nil, fmt.Errorf("failed to scan grade rate: %w", err)
		}
		i, ok := index[wage.GradeID(gradeID)]
		if !ok {
			continue
		}
		var r wage.PositionRate
		if r.Daily, err = decimal.NewFromString(daily); err != nil {
			return nil, fmt.Errorf("grade %s: %w", gradeID, err)
		}
		if r.Hourly, err = decimal.NewFromString(hourly); err != nil {
			return nil, fmt.Errorf("grade %s: %w", gradeID, err)
		}
		grades[i].Rates[wage.PositionID(positionID)] = r
	}
	return grades, rows.Err()
}

func readWorkers(ctx context.Context, db querier) ([]wage.Worker, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, skill_tier, position_id, grade_id, rate_normal, rate_overtime, rate_holiday
		FROM workers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer rows.Close()

	var out []wage.Worker
	for rows.Next() {
		var (
			w                           wage.Worker
			id                          string
			tier, positionID, gradeID   sql.NullString
			normal, overtime, holidayRt string
		)
		if err := rows.Scan(&id, &w.Name, &tier, &positionID, &gradeID, &normal, &overtime, &holidayRt); err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		w.ID = wage.WorkerID(id)
		w.SkillTier = tier.String
		w.PositionID = wage.PositionID(positionID.String)
		w.GradeID = wage.GradeID(gradeID.String)
		if w.FlatRates, err = parseRates(normal, overtime, holidayRt); err != nil {
			return nil, fmt.Errorf("worker %s: %w", id, err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func readHolidays(ctx context.Context, db querier) ([]wage.Holiday, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, date, name FROM holidays ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var out []wage.Holiday
	for rows.Next() {
		var h wage.Holiday
		var date string
		if err := rows.Scan(&h.ID, &date, &h.Name); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		if h.Date, err = wage.ParseDate(date); err != nil {
			return nil, fmt.Errorf("holiday %s: %w", h.ID, err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// =============================================================================
// PAYROLL STATUS STORE (payroll.StatusStore interface)
// =============================================================================

const statusColumns = `id, worker_id, period, status, reason, actor_id, updated_at`

// GetStatus returns nil, nil when the key has no status yet.
func (s *Store) GetStatus(ctx context.Context, key payroll.Key) (*payroll.StatusEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getStatus(ctx, s.db, key)
}

// ListStatuses returns every status entry of a month ordered by worker.
func (s *Store) ListStatuses(ctx context.Context, period wage.Month) ([]payroll.StatusEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+statusColumns+` FROM payroll_status WHERE period = ? ORDER BY worker_id`,
		period.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll status: %w", err)
	}
	defer rows.Close()

	var out []payroll.StatusEntry
	for rows.Next() {
		entry, err := scanStatus(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

// UpdateStatus applies fn inside a transaction; on error nothing is stored.
func (s *Store) UpdateStatus(ctx context.Context, key payroll.Key, fn func(payroll.StatusEntry) (payroll.StatusEntry, error)) (payroll.StatusEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return payroll.StatusEntry{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	current := payroll.StatusEntry{Key: key, Status: payroll.StatusPending}
	existing, err := getStatus(ctx, tx, key)
	if err != nil {
		return current, err
	}
	if existing != nil {
		current = *existing
	}

	next, err := fn(current)
	if err != nil {
		return current, err
	}
	next.Key = key

	query := `
		INSERT INTO payroll_status (id, worker_id, period, status, reason, actor_id, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(worker_id, period) DO UPDATE SET
			id = excluded.id,
			status = excluded.status,
			reason = excluded.reason,
			actor_id = excluded.actor_id,
			updated_at = excluded.updated_at
	`
	_, err = tx.ExecContext(ctx, query,
		next.ID,
		string(key.WorkerID),
		key.Period.String(),
		string(next.Status),
		nullString(next.Reason),
		nullString(next.ActorID),
		next.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return current, fmt.Errorf("failed to save payroll status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return current, fmt.Errorf("failed to commit payroll status: %w", err)
	}
	return next, nil
}

func getStatus(ctx context.Context, db querier, key payroll.Key) (*payroll.StatusEntry, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+statusColumns+` FROM payroll_status WHERE worker_id = ? AND period = ?`,
		string(key.WorkerID), key.Period.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll status: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	entry, err := scanStatus(rows)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func scanStatus(rows *sql.Rows) (payroll.StatusEntry, error) {
	var (
		entry           payroll.StatusEntry
		workerID        string
		period          string
		status          string
		reason, actorID sql.NullString
		updatedAt       string
	)
	if err := rows.Scan(&entry.ID, &workerID, &period, &status, &reason, &actorID, &updatedAt); err != nil {
		return entry, fmt.Errorf("failed to scan payroll status: %w", err)
	}
	month, err := wage.ParseMonth(period)
	if err != nil {
		return entry, fmt.Errorf("payroll status %s: %w", entry.ID, err)
	}
	entry.Key = payroll.Key{WorkerID: wage.WorkerID(workerID), Period: month}
	entry.Status = payroll.Status(status)
	entry.Reason = reason.String
	entry.ActorID = actorID.String
	entry.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	return entry, nil
}

// =============================================================================
// ADMIN
// =============================================================================

// Reset drops attendance and payroll status. Master data is kept.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM attendance;
		DELETE FROM payroll_status;
	`)
	return err
}

// Helper functions

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func parseRates(normal, overtime, holiday string) (wage.Rates, error) {
	var (
		r   wage.Rates
		err error
	)
	if r.Normal, err = decimal.NewFromString(normal); err != nil {
		return r, fmt.Errorf("invalid normal rate %q: %w", normal, err)
	}
	if r.Overtime, err = decimal.NewFromString(overtime); err != nil {
		return r, fmt.Errorf("invalid overtime rate %q: %w", overtime, err)
	}
	if r.Holiday, err = decimal.NewFromString(holiday); err != nil {
		return r, fmt.Errorf("invalid holiday rate %q: %w", holiday, err)
	}
	return r, nil
}
