/*
Package sqlite provides a SQLite-backed implementation of the collaborator
interfaces.

PURPOSE:
  The calculations never persist anything; they read holidays, exchange
  rates and company policies from providers. This package implements those
  providers on SQLite so the HTTP server has somewhere to keep them.

INTERFACES IMPLEMENTED:
  engine.HolidayProvider: Company and national holidays
  engine.RateProvider:    Point-in-time exchange rates
  engine.PolicyProvider:  Company compensation policies

KEY TABLES:
  holidays:         One row per holiday; recurring rows repeat every year
  exchange_rates:   One rate per (base, quote, as_of) date
  company_policies: Policy JSON per company (versioned)

STORAGE FORMATS:
  - Dates are TEXT "YYYY-MM-DD"
  - Decimals are TEXT so rates and amounts are stored exactly
  - Policies are stored as the factory JSON document

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, and a single connection so
  ":memory:" databases are shared by every query.

USAGE:
  store, err := sqlite.New("./data/nominix.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  holidays, err := engine.LoadHolidaySet(ctx, store, companyID, 2024, 2025)

SEE ALSO:
  - engine/provider.go: Interface definitions
  - engine/store/memory.go: In-memory implementation for testing
  - factory/policy.go: Policy JSON format
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/T3Cread18/Nominix-sub001/engine"
	"github.com/T3Cread18/Nominix-sub001/factory"
)

// Store implements the collaborator interfaces using SQLite.
type Store struct {
	db      *sql.DB
	mu      sync.RWMutex
	factory *factory.PolicyFactory
}

var (
	_ engine.HolidayProvider = (*Store)(nil)
	_ engine.RateProvider    = (*Store)(nil)
	_ engine.PolicyProvider  = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db, factory: factory.NewPolicyFactory()}
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

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Reset clears all data (for demo scenarios).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"holidays", "exchange_rates", "company_policies"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}

func (s *Store) migrate() error {
	schema := `
	-- Holidays (company_id '' = national)
	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		recurring INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_holidays_company_date_name
		ON holidays(company_id, date, name);

	-- Exchange rates (quote units per base unit)
	CREATE TABLE IF NOT EXISTS exchange_rates (
		base TEXT NOT NULL,
		quote TEXT NOT NULL,
		as_of TEXT NOT NULL,
		rate TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (base, quote, as_of)
	);

	-- Company policies
	CREATE TABLE IF NOT EXISTS company_policies (
		company_id TEXT PRIMARY KEY,
		config_json TEXT NOT NULL,
		version INTEGER DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// HOLIDAY PROVIDER
// =============================================================================

// SaveHoliday saves a holiday and returns it with its ID. An empty ID gets a
// new UUID. Saving the same company, date and name again updates the row.
func (s *Store) SaveHoliday(ctx context.Context, h engine.Holiday) (engine.Holiday, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h.ID == "" {
		h.ID = uuid.NewString()
	}

	query := `
		INSERT INTO holidays (id, company_id, date, name, recurring, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			company_id = excluded.company_id,
			date = excluded.date,
			name = excluded.name,
			recurring = excluded.recurring
		ON CONFLICT(company_id, date, name) DO UPDATE SET
			recurring = excluded.recurring
	`

	_, err := s.db.ExecContext(ctx, query,
		h.ID,
		h.CompanyID,
		h.Date.String(),
		h.Name,
		h.Recurring,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return engine.Holiday{}, fmt.Errorf("save holiday %s: %w", h.Date, err)
	}

	// An existing row keeps its original ID.
	err = s.db.QueryRowContext(ctx,
		"SELECT id FROM holidays WHERE company_id = ? AND date = ? AND name = ?",
		h.CompanyID, h.Date.String(), h.Name,
	).Scan(&h.ID)
	if err != nil {
		return engine.Holiday{}, fmt.Errorf("save holiday %s: %w", h.Date, err)
	}
	return h, nil
}

// SeedNationalHolidays stores the recurring national holidays. Running it
// twice leaves one row per holiday.
func (s *Store) SeedNationalHolidays(ctx context.Context) (int, error) {
	holidays := engine.NationalHolidays()
	for _, h := range holidays {
		if _, err := s.SaveHoliday(ctx, h); err != nil {
			return 0, err
		}
	}
	return len(holidays), nil
}

// DeleteHoliday deletes a holiday by ID.
func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("holiday %s: %w", id, engine.ErrHolidayNotFound)
	}
	return nil
}

// Holidays returns all holidays for a company in a given year, including
// national ones. Recurring holidays are moved to that year.
func (s *Store) Holidays(ctx context.Context, companyID string, year int) ([]engine.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, company_id, date, name, recurring
		FROM holidays
		WHERE (company_id = ? OR company_id = '')
		  AND (recurring = 1 OR strftime('%Y', date) = ?)
		ORDER BY strftime('%m-%d', date) ASC
	`

	holidays, err := s.queryHolidays(ctx, query, companyID, strconv.Itoa(year))
	if err != nil {
		return nil, err
	}
	out := holidays[:0]
	for _, h := range holidays {
		if moved, ok := h.OnYear(year); ok {
			out = append(out, moved)
		}
	}
	return out, nil
}

// GetAllHolidays returns every stored holiday for a company (for admin UI).
func (s *Store) GetAllHolidays(ctx context.Context, companyID string) ([]engine.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, company_id, date, name, recurring
		FROM holidays
		WHERE company_id = ? OR company_id = ''
		ORDER BY date ASC
	`
	return s.queryHolidays(ctx, query, companyID)
}

func (s *Store) queryHolidays(ctx context.Context, query string, args ...any) ([]engine.Holiday, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []engine.Holiday
	for rows.Next() {
		var h engine.Holiday
		var dateStr string
		if err := rows.Scan(&h.ID, &h.CompanyID, &dateStr, &h.Name, &h.Recurring); err != nil {
			return nil, err
		}
		h.Date, err = engine.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("holiday %s: %w", h.ID, err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// =============================================================================
// RATE PROVIDER
// =============================================================================

// SaveRate publishes an exchange rate. A second rate for the same pair and
// date replaces the first.
func (s *Store) SaveRate(ctx context.Context, r engine.ExchangeRate) error {
	if err := r.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO exchange_rates (base, quote, as_of, rate, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(base, quote, as_of) DO UPDATE SET
			rate = excluded.rate
	`

	_, err := s.db.ExecContext(ctx, query,
		string(r.Base), string(r.Quote), r.AsOf.String(), r.Rate.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// RateAt returns the latest rate published on or before on.
func (s *Store) RateAt(ctx context.Context, base, quote engine.Currency, on engine.Date) (engine.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT base, quote, as_of, rate
		FROM exchange_rates
		WHERE base = ? AND quote = ? AND as_of <= ?
		ORDER BY as_of DESC
		LIMIT 1
	`

	rates, err := s.queryRates(ctx, query, string(base), string(quote), on.String())
	if err != nil {
		return engine.ExchangeRate{}, err
	}
	if len(rates) == 0 {
		return engine.ExchangeRate{}, fmt.Errorf("%s/%s on %s: %w", base, quote, on, engine.ErrRateNotFound)
	}
	return rates[0], nil
}

// ListRates returns all published rates, newest first.
func (s *Store) ListRates(ctx context.Context) ([]engine.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryRates(ctx, "SELECT base, quote, as_of, rate FROM exchange_rates ORDER BY as_of DESC, base, quote")
}

func (s *Store) queryRates(ctx context.Context, query string, args ...any) ([]engine.ExchangeRate, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []engine.ExchangeRate
	for rows.Next() {
		var r engine.ExchangeRate
		var base, quote, asOf, value string
		if err := rows.Scan(&base, &quote, &asOf, &value); err != nil {
			return nil, err
		}
		r.Base, r.Quote = engine.Currency(base), engine.Currency(quote)
		if r.AsOf, err = engine.ParseDate(asOf); err != nil {
			return nil, err
		}
		if r.Rate, err = decimal.NewFromString(value); err != nil {
			return nil, fmt.Errorf("rate %s/%s on %s: %w", base, quote, asOf, err)
		}
		rates = append(rates, r)
	}
	return rates, rows.Err()
}

// =============================================================================
// POLICY PROVIDER
// =============================================================================

// PolicyRecord is a stored company policy with its JSON config.
type PolicyRecord struct {
	CompanyID  string
	ConfigJSON string
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SavePolicy stores a company policy. Updating an existing company bumps
// its version.
func (s *Store) SavePolicy(ctx context.Context, policy *engine.CompanyPolicy) (*PolicyRecord, error) {
	config, err := s.factory.Marshal(policy)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	query := `
		INSERT INTO company_policies (company_id, config_json, version, created_at, updated_at)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT(company_id) DO UPDATE SET
			config_json = excluded.config_json,
			version = company_policies.version + 1,
			updated_at = excluded.updated_at
	`
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, query, policy.CompanyID, config, now, now)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("save policy %s: %w", policy.CompanyID, err)
	}

	return s.GetPolicy(ctx, policy.CompanyID)
}

// GetPolicy retrieves a policy record by company ID. Returns nil, nil when
// none is stored.
func (s *Store) GetPolicy(ctx context.Context, companyID string) (*PolicyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p PolicyRecord
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT company_id, config_json, version, created_at, updated_at FROM company_policies WHERE company_id = ?",
		companyID,
	).Scan(&p.CompanyID, &p.ConfigJSON, &p.Version, &createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &p, nil
}

// CompanyPolicy implements engine.PolicyProvider.
func (s *Store) CompanyPolicy(ctx context.Context, companyID string) (*engine.CompanyPolicy, error) {
	rec, err := s.GetPolicy(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("company %s: %w", companyID, engine.ErrPolicyNotFound)
	}

	policy, err := s.factory.ParsePolicy(rec.ConfigJSON)
	if err != nil {
		return nil, fmt.Errorf("company %s: %w", companyID, err)
	}
	policy.Version = rec.Version
	return policy, nil
}
