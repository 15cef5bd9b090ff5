// Package migration runs versioned schema changes and records which ones
// have been applied in foodtruck_migrations.
//
//	func init() {
//	    migration.Register("20251101000000_create_menu_table", createMenuTable{})
//	}
//
// Names sort lexicographically, so prefix them with a timestamp.
package migration

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/foodtruck-labs/foodtruck/pkg/logger"
)

type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

type record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (record) TableName() string { return "foodtruck_migrations" }

type entry struct {
	name string
	m    Migration
}

var (
	mu       sync.Mutex
	registry []entry
)

// Register adds m under name. Registering the same name twice panics.
func Register(name string, m Migration) {
	mu.Lock()
	defer mu.Unlock()
	for _, e := range registry {
		if e.name == name {
			panic("migration: duplicate name " + name)
		}
	}
	registry = append(registry, entry{name: name, m: m})
}

func registered() []entry {
	mu.Lock()
	defer mu.Unlock()
	out := append([]entry(nil), registry...)
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// ErrUnknownMigration is returned by Rollback when the tracking table names
// a migration that is no longer registered.
var ErrUnknownMigration = errors.New("migration: not registered")

// Runner applies registered migrations to one database and reports progress
// to out.
type Runner struct {
	db  *gorm.DB
	out io.Writer
}

func New(db *gorm.DB, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{db: db, out: out}
}

func (r *Runner) ensureTable() error {
	if err := r.db.AutoMigrate(&record{}); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}
	return nil
}

func (r *Runner) applied() (map[string]record, error) {
	var rows []record
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("migration: read applied: %w", err)
	}
	out := make(map[string]record, len(rows))
	for _, row := range rows {
		out[row.Name] = row
	}
	return out, nil
}

// Run applies every pending migration as one new batch and returns how many
// ran. Each migration and its tracking row commit together.
func (r *Runner) Run() (int, error) {
	if err := r.ensureTable(); err != nil {
		return 0, err
	}
	done, err := r.applied()
	if err != nil {
		return 0, err
	}

	var pending []entry
	for _, e := range registered() {
		if _, ok := done[e.name]; !ok {
			pending = append(pending, e)
		}
	}
	if len(pending) == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
		return 0, nil
	}

	batch, err := r.lastBatch()
	if err != nil {
		return 0, err
	}
	batch++

	for i, e := range pending {
		fmt.Fprintf(r.out, "Migrating: %s\n", e.name)
		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := e.m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&record{Name: e.name, Batch: batch}).Error
		})
		if err != nil {
			return i, fmt.Errorf("migration: %s up: %w", e.name, err)
		}
		fmt.Fprintf(r.out, "Migrated:  %s\n", e.name)
	}

	logger.Info("migrations applied", "count", len(pending), "batch", batch)
	return len(pending), nil
}

// Rollback reverts the most recent batch, newest first, and returns how many
// were reverted.
func (r *Runner) Rollback() (int, error) {
	if err := r.ensureTable(); err != nil {
		return 0, err
	}
	batch, err := r.lastBatch()
	if err != nil {
		return 0, err
	}
	if batch == 0 {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return 0, nil
	}

	var rows []record
	if err := r.db.Where("batch = ?", batch).Order("id desc").Find(&rows).Error; err != nil {
		return 0, fmt.Errorf("migration: read batch %d: %w", batch, err)
	}

	known := make(map[string]Migration)
	for _, e := range registered() {
		known[e.name] = e.m
	}

	for i, row := range rows {
		m, ok := known[row.Name]
		if !ok {
			return i, fmt.Errorf("%w: %s", ErrUnknownMigration, row.Name)
		}
		fmt.Fprintf(r.out, "Rolling back: %s\n", row.Name)
		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return err
			}
			return tx.Delete(&record{}, row.ID).Error
		})
		if err != nil {
			return i, fmt.Errorf("migration: %s down: %w", row.Name, err)
		}
		fmt.Fprintf(r.out, "Rolled back:  %s\n", row.Name)
	}

	logger.Info("migrations rolled back", "count", len(rows), "batch", batch)
	return len(rows), nil
}

// State is one row of Status.
type State struct {
	Name  string
	Ran   bool
	Batch int
}

// Status lists every registered migration in run order.
func (r *Runner) Status() ([]State, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}
	done, err := r.applied()
	if err != nil {
		return nil, err
	}

	var out []State
	for _, e := range registered() {
		row, ok := done[e.name]
		out = append(out, State{Name: e.name, Ran: ok, Batch: row.Batch})
	}
	return out, nil
}

func (r *Runner) lastBatch() (int, error) {
	var last struct{ Max int }
	if err := r.db.Model(&record{}).Select("COALESCE(MAX(batch), 0) AS max").Scan(&last).Error; err != nil {
		return 0, fmt.Errorf("migration: read batch: %w", err)
	}
	return last.Max, nil
}
