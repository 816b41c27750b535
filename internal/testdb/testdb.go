// Package testdb provides shared test database helpers backed by
// file-based SQLite databases. The pure-Go driver serves FTS5 and the cgo
// driver serves FTS3 and FTS4.
package testdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/helixml/ftsq/domain/capability"
	"github.com/helixml/ftsq/internal/database"
)

// BreakfastMenu is the canonical eight-row fixture used by search tests.
var BreakfastMenu = []string{
	"Egg and SPAM",
	"Egg, bacon and SPAM",
	"Egg, bacon, sausage and SPAM",
	"SPAM, bacon, sausage and SPAM",
	"SPAM, egg, SPAM, SPAM, bacon and SPAM",
	"SPAM, SPAM, SPAM, egg and SPAM",
	"SPAM, SPAM, SPAM, SPAM, SPAM, SPAM, baked beans, SPAM, SPAM, SPAM and SPAM",
	"Lobster Thermidor aux crevettes with a Mornay sauce, garnished with truffle pâté, brandy and a fried egg on top, and Spam",
}

// URL returns a sqlite URL for a fresh database file in a temp directory.
func URL(t *testing.T) string {
	t.Helper()
	return "sqlite:///" + filepath.Join(t.TempDir(), "test.db")
}

// DriverFor returns the sqlite driver that ships generation g without
// build tags.
func DriverFor(g capability.Generation) string {
	if g == capability.Gen5 {
		return database.DriverModernc
	}
	return database.DriverMattn
}

// New opens a fresh database, by default on the pure-Go driver. Options
// are applied after the default, so WithSQLiteDriver overrides it.
// The database is automatically closed when the test finishes.
func New(t *testing.T, opts ...database.Option) database.Database {
	t.Helper()
	opts = append([]database.Option{database.WithSQLiteDriver(database.DriverModernc)}, opts...)
	db, err := database.NewDatabase(context.Background(), URL(t), opts...)
	if err != nil {
		t.Fatalf("testdb.New: open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Facts probes db and fails the test on error.
func Facts(t *testing.T, db database.Database) capability.Facts {
	t.Helper()
	facts, err := database.ProbeFacts(context.Background(), db)
	if err != nil {
		t.Fatalf("testdb.Facts: %v", err)
	}
	return facts
}

// RequireGeneration skips the test when the engine lacks generation g.
func RequireGeneration(t *testing.T, db database.Database, g capability.Generation) {
	t.Helper()
	if !Facts(t, db).Enabled(g) {
		t.Skipf("%s is not available in this sqlite build", g)
	}
}

// ForGeneration opens a fresh database on DriverFor(g) and skips the test
// if that build still lacks g.
func ForGeneration(t *testing.T, g capability.Generation) database.Database {
	t.Helper()
	db := New(t, database.WithSQLiteDriver(DriverFor(g)))
	RequireGeneration(t, db, g)
	return db
}
