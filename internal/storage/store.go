package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"SePushMonitor/internal/domain"
	"SePushMonitor/internal/ports"
)

// Store is the persisted key/value cache. Every value travels inside an
// envelope carrying creation time, an expiry flag and a TTL; expired entries
// are evicted lazily by the read that discovers them.
type Store struct {
	db                *sql.DB
	qb                sq.StatementBuilderType
	clock             ports.Clock
	defaultTTLMinutes int
	logger            *slog.Logger
}

type envelope struct {
	payload    []byte
	createdAt  time.Time
	expires    bool
	ttlMinutes int
}

// Open creates (if needed) and opens the sqlite-backed store.
func Open(path string, clk ports.Clock, defaultTTLMinutes int, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{
		db:                db,
		qb:                sq.StatementBuilder.RunWith(db),
		clock:             clk,
		defaultTTLMinutes: defaultTTLMinutes,
		logger:            logger,
	}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS cache_entries (
			key         TEXT PRIMARY KEY,
			payload     TEXT NOT NULL,
			created_at  INTEGER NOT NULL,
			expires     INTEGER NOT NULL,
			ttl_minutes INTEGER NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Exists reports whether an unexpired entry is present for key. An expired
// entry is deleted as a side effect and reported as a failure.
func (s *Store) Exists(key string) domain.Result[bool] {
	if _, res := s.loadEnvelope(key); !res.IsSuccess {
		return domain.FailFrom[bool](res)
	}
	return domain.Ok(true)
}

// Get unwraps the envelope for key into a value of type T. Absent and
// expired entries are failures; expired entries are evicted.
func Get[T any](s *Store, key string) domain.Result[T] {
	env, res := s.loadEnvelope(key)
	if !res.IsSuccess {
		return domain.FailFrom[T](res)
	}

	var value T
	if err := json.Unmarshal(env.payload, &value); err != nil {
		return domain.Fail[T](fmt.Sprintf("parsing cached data for key [%s]: %v", key, err))
	}
	return domain.Ok(value)
}

// Save wraps value in a fresh envelope and overwrites key unconditionally.
// TTL resolution order: explicit override, then the persisted user
// syncIntervalMinutes setting, then the process-wide default. The TTL is
// only meaningful when expires is true.
func Save[T any](s *Store, key string, value T, expires bool, ttlOverrideMinutes int) domain.ResultBase {
	payload, err := json.Marshal(value)
	if err != nil {
		return domain.FailBase(fmt.Sprintf("serializing value for key [%s]: %v", key, err))
	}

	ttl := s.resolveTTLMinutes(ttlOverrideMinutes)
	_, err = s.qb.Insert("cache_entries").
		Options("OR REPLACE").
		Columns("key", "payload", "created_at", "expires", "ttl_minutes").
		Values(key, string(payload), s.clock.Now().UnixMilli(), expires, ttl).
		Exec()
	if err != nil {
		return domain.FailBase(fmt.Sprintf("saving key [%s]: %v", key, err))
	}
	return domain.OkBase()
}

// Update replaces only the payload of an existing, unexpired entry. The
// original envelope (createdAt, TTL) is preserved so counters can change
// without refreshing the entry's age.
func Update[T any](s *Store, key string, value T) domain.ResultBase {
	if _, res := s.loadEnvelope(key); !res.IsSuccess {
		return res
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return domain.FailBase(fmt.Sprintf("serializing value for key [%s]: %v", key, err))
	}

	_, err = s.qb.Update("cache_entries").
		Set("payload", string(payload)).
		Where(sq.Eq{"key": key}).
		Exec()
	if err != nil {
		return domain.FailBase(fmt.Sprintf("updating key [%s]: %v", key, err))
	}
	return domain.OkBase()
}

// Clear deletes each key best-effort and reports the ones that failed.
func (s *Store) Clear(keys ...string) domain.ResultBase {
	var failures []string
	for _, key := range keys {
		if _, err := s.qb.Delete("cache_entries").Where(sq.Eq{"key": key}).Exec(); err != nil {
			failures = append(failures, fmt.Sprintf("deleting key [%s]: %v", key, err))
		}
	}
	return domain.FailBase(failures...)
}

func (s *Store) resolveTTLMinutes(override int) int {
	if override > 0 {
		return override
	}

	// Direct row read: going through loadEnvelope here would evict, and the
	// settings entry never expires anyway.
	if raw, err := s.readRow(KeyUserSettings); err == nil {
		var settings domain.UserSettings
		if json.Unmarshal(raw.payload, &settings) == nil && settings.SyncIntervalMinutes > 0 {
			return settings.SyncIntervalMinutes
		}
	}

	return s.defaultTTLMinutes
}

func (s *Store) loadEnvelope(key string) (envelope, domain.ResultBase) {
	env, err := s.readRow(key)
	if errors.Is(err, sql.ErrNoRows) {
		return envelope{}, domain.FailBase(fmt.Sprintf("no data found for key [%s]", key))
	}
	if err != nil {
		return envelope{}, domain.FailBase(fmt.Sprintf("reading key [%s]: %v", key, err))
	}

	// Full delta comparison; minutes-of-hour arithmetic breaks across
	// hour/day boundaries.
	if env.expires {
		age := s.clock.Now().Sub(env.createdAt)
		if age > time.Duration(env.ttlMinutes)*time.Minute {
			if _, err := s.qb.Delete("cache_entries").Where(sq.Eq{"key": key}).Exec(); err != nil && s.logger != nil {
				s.logger.Warn("evicting expired entry failed", "key", key, "error", err)
			}
			return envelope{}, domain.FailBase(fmt.Sprintf("cache entry for key [%s] has expired", key))
		}
	}

	return env, domain.OkBase()
}

func (s *Store) readRow(key string) (envelope, error) {
	row := s.qb.Select("payload", "created_at", "expires", "ttl_minutes").
		From("cache_entries").
		Where(sq.Eq{"key": key}).
		QueryRow()

	var (
		payload   string
		createdMs int64
		env       envelope
	)
	if err := row.Scan(&payload, &createdMs, &env.expires, &env.ttlMinutes); err != nil {
		return envelope{}, err
	}
	env.payload = []byte(payload)
	env.createdAt = time.UnixMilli(createdMs)
	return env, nil
}
