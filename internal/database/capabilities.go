package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/helixml/ftsq/domain/capability"
)

var errProbeRollback = errors.New("probe rollback")

// ProbeFacts detects the engine and which FTS generations it can create.
// Each generation is probed by creating a temp virtual table inside a
// transaction that is always rolled back.
func ProbeFacts(ctx context.Context, db Database) (capability.Facts, error) {
	engine := db.Engine()
	if !db.IsSQLite() {
		return capability.NewFacts(engine), nil
	}

	var enabled []capability.Generation
	for _, g := range capability.Generations() {
		ok, err := probeModule(ctx, db, g)
		if err != nil {
			return capability.Facts{}, fmt.Errorf("probe %s: %w", g, err)
		}
		if ok {
			enabled = append(enabled, g)
		}
	}
	return capability.NewFacts(engine, enabled...), nil
}

func probeModule(ctx context.Context, db Database, g capability.Generation) (bool, error) {
	stmt := fmt.Sprintf("CREATE VIRTUAL TABLE temp.ftsq_probe_%s USING %s(body)", g, g)
	err := db.Session(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(stmt).Error; err != nil {
			return err
		}
		return errProbeRollback
	})
	switch {
	case errors.Is(err, errProbeRollback):
		return true, nil
	case isMissingModule(err):
		return false, nil
	default:
		return false, err
	}
}

// isMissingModule reports whether err is SQLite's "no such module" error,
// the only failure that means a generation is not compiled in.
func isMissingModule(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such module")
}
