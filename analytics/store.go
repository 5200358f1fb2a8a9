package analytics

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// tsLayout is how view timestamps are stored: UTC, fixed width, so string
// comparison orders them and substr() cuts out hours, days and months.
const tsLayout = "2006-01-02 15:04:05"

// Store provides database operations for analytics.
type Store struct {
	db   *sql.DB
	salt string
}

// NewStore opens (creating if needed) the analytics database at dbPath and
// loads or generates the visitor hashing salt.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create analytics dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := s.initSalt(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS page_views (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			visitor_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			slug TEXT NOT NULL,
			path TEXT NOT NULL,
			browser TEXT NOT NULL,
			os TEXT NOT NULL,
			device TEXT NOT NULL,
			referrer TEXT NOT NULL DEFAULT '',
			ts TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_page_views_ts ON page_views(ts);
		CREATE INDEX IF NOT EXISTS idx_page_views_kind_ts ON page_views(kind, ts);
		CREATE INDEX IF NOT EXISTS idx_page_views_visitor ON page_views(visitor_id);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// currentSchemaVersion is the latest schema version. Increment when adding migrations.
const currentSchemaVersion = 1

// migrate applies incremental schema migrations based on a version stored in the settings table.
func (s *Store) migrate() error {
	verStr, err := s.GetSetting("schema_version")
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	version := 0
	if verStr != "" {
		version, err = strconv.Atoi(verStr)
		if err != nil {
			return fmt.Errorf("parse schema version %q: %w", verStr, err)
		}
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}

	return s.SetSetting("schema_version", strconv.Itoa(currentSchemaVersion))
}

func (s *Store) initSalt() error {
	v, err := s.GetSetting("hash_salt")
	if err != nil {
		return fmt.Errorf("read hash salt: %w", err)
	}
	if v == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return fmt.Errorf("generate salt: %w", err)
		}
		v = hex.EncodeToString(b)
		if err := s.SetSetting("hash_salt", v); err != nil {
			return fmt.Errorf("store hash salt: %w", err)
		}
	}
	s.salt = v
	return nil
}

// VisitorID hashes ip and userAgent with this installation's salt.
func (s *Store) VisitorID(ip, userAgent string) string {
	return VisitorID(s.salt, ip, userAgent)
}

// GetSetting retrieves a setting value by key. Returns empty string if not found.
func (s *Store) GetSetting(key string) (string, error) {
	var val string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return val, err
}

// SetSetting stores a setting value by key (upsert).
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// Record stores a page view.
func (s *Store) Record(ctx context.Context, v View) error {
	ts := v.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO page_views (visitor_id, kind, slug, path, browser, os, device, referrer, ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.VisitorID, v.Kind, v.Slug, v.Path, v.Browser, v.OS, v.Device, v.Referrer,
		ts.UTC().Format(tsLayout),
	)
	return err
}

// TopPages returns the most viewed pages of kind in [from, to), most views
// first, ties by path. An empty kind ranks every page.
func (s *Store) TopPages(ctx context.Context, kind string, from, to time.Time, limit int) ([]PageStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, slug, path, COUNT(*) AS views
		FROM page_views
		WHERE ts >= ? AND ts < ? AND (? = '' OR kind = ?)
		GROUP BY kind, slug, path
		ORDER BY views DESC, path ASC
		LIMIT ?`,
		from.UTC().Format(tsLayout), to.UTC().Format(tsLayout), kind, kind, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pages := []PageStat{}
	for rows.Next() {
		var p PageStat
		if err := rows.Scan(&p.Kind, &p.Slug, &p.Path, &p.Views); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

func (s *Store) dimension(ctx context.Context, column string, from, to time.Time) ([]DimensionStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+column+` AS name, COUNT(*) AS n
		FROM page_views
		WHERE ts >= ? AND ts < ?
		GROUP BY name
		ORDER BY n DESC, name ASC
		LIMIT 10`,
		from.UTC().Format(tsLayout), to.UTC().Format(tsLayout),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DimensionStat{}
	for rows.Next() {
		var d DimensionStat
		if err := rows.Scan(&d.Name, &d.Count); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

var bucketExpr = map[Granularity]string{
	Hourly:  `substr(ts, 12, 2) || ':00'`,
	Daily:   `substr(ts, 1, 10)`,
	Monthly: `substr(ts, 1, 7)`,
}

func (s *Store) series(ctx context.Context, g Granularity, from, to time.Time) ([]DailyView, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+bucketExpr[g]+` AS bucket, COUNT(*)
		FROM page_views
		WHERE ts >= ? AND ts < ?
		GROUP BY bucket
		ORDER BY bucket`,
		from.UTC().Format(tsLayout), to.UTC().Format(tsLayout),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DailyView{}
	for rows.Next() {
		var v DailyView
		if err := rows.Scan(&v.Date, &v.Views); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if g == Hourly {
		out = fillHourlyData(out, from.UTC())
	}
	return out, nil
}

// GetStats returns aggregated statistics for [from, to). The queries run
// concurrently; the first failure is returned.
func (s *Store) GetStats(ctx context.Context, from, to time.Time, g Granularity) (*Stats, error) {
	stats := &Stats{
		Period: from.UTC().Format("2006-01-02") + " to " + to.UTC().Format("2006-01-02"),
	}
	fromTS, toTS := from.UTC().Format(tsLayout), to.UTC().Format(tsLayout)

	var mu sync.Mutex
	var wg sync.WaitGroup
	var firstErr error

	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("%s: %w", name, err)
				}
				mu.Unlock()
			}
		}()
	}
	dim := func(name, column string, dst *[]DimensionStat) {
		run(name, func() error {
			res, err := s.dimension(ctx, column, from, to)
			if err != nil {
				return err
			}
			mu.Lock()
			*dst = res
			mu.Unlock()
			return nil
		})
	}

	run("count views", func() error {
		var total, unique int
		err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*), COUNT(DISTINCT visitor_id) FROM page_views WHERE ts >= ? AND ts < ?`,
			fromTS, toTS).Scan(&total, &unique)
		if err != nil {
			return err
		}
		mu.Lock()
		stats.TotalViews, stats.UniqueVisitors = total, unique
		mu.Unlock()
		return nil
	})
	run("top pages", func() error {
		pages, err := s.TopPages(ctx, "", from, to, 10)
		if err != nil {
			return err
		}
		mu.Lock()
		stats.TopPages = pages
		mu.Unlock()
		return nil
	})
	run("views", func() error {
		views, err := s.series(ctx, g, from, to)
		if err != nil {
			return err
		}
		mu.Lock()
		stats.Views = views
		mu.Unlock()
		return nil
	})
	dim("kind stats", "kind", &stats.KindStats)
	dim("browser stats", "browser", &stats.BrowserStats)
	dim("os stats", "os", &stats.OSStats)
	dim("device stats", "device", &stats.DeviceStats)
	dim("referrer stats", "referrer", &stats.ReferrerStats)

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return stats, nil
}

// CleanupOldViews removes views older than retentionDays and reports how
// many were deleted.
func (s *Store) CleanupOldViews(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	res, err := s.db.ExecContext(ctx, `DELETE FROM page_views WHERE ts < ?`, cutoff.Format(tsLayout))
	if err != nil {
		return 0, fmt.Errorf("cleanup page_views: %w", err)
	}
	return res.RowsAffected()
}

// StartCleanupScheduler runs periodic cleanup of old data. Returns a stop function.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration, logger *zap.Logger) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		for {
			select {
			case <-ticker.C:
				n, err := s.CleanupOldViews(context.Background(), retentionDays)
				if err != nil {
					logger.Error("analytics cleanup", zap.Error(err))
					continue
				}
				logger.Debug("analytics cleanup", zap.Int64("deleted", n))
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { once.Do(func() { close(done) }) }
}
