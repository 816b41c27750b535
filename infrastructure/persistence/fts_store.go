// Package persistence stores full-text rows through gorm.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/helixml/ftsq/domain/fts"
	"github.com/helixml/ftsq/domain/repository"
	"github.com/helixml/ftsq/internal/database"
)

// ErrUnknownColumn indicates a row value names a column the table lacks.
var ErrUnknownColumn = errors.New("unknown column")

// FTSStore reads and writes rows of full-text virtual tables.
type FTSStore struct {
	db     database.Database
	logger *slog.Logger
}

// NewFTSStore creates a new FTSStore.
func NewFTSStore(db database.Database, logger *slog.Logger) FTSStore {
	if logger == nil {
		logger = slog.Default()
	}
	return FTSStore{db: db, logger: logger}
}

// CreateTable creates the virtual table described by schema if it is absent.
func (s FTSStore) CreateTable(ctx context.Context, schema fts.Schema) error {
	return s.CreateTables(ctx, schema)
}

// CreateTables creates every absent table in one transaction, so a failed
// statement leaves none of them behind.
func (s FTSStore) CreateTables(ctx context.Context, schemas ...fts.Schema) error {
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		for _, schema := range schemas {
			if err := tx.Exec(schema.CreateTableSQL()).Error; err != nil {
				return fmt.Errorf("create %s table %s: %w", schema.Generation(), schema.Name(), err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, schema := range schemas {
		s.logger.Debug("virtual table ready",
			slog.String("table", schema.Name()),
			slog.String("module", schema.Generation().String()),
		)
	}
	return nil
}

// DropTable removes the virtual table if it exists.
func (s FTSStore) DropTable(ctx context.Context, schema fts.Schema) error {
	if err := s.db.Session(ctx).Exec(schema.DropTableSQL()).Error; err != nil {
		return fmt.Errorf("drop table %s: %w", schema.Name(), err)
	}
	return nil
}

// Insert adds one row and returns its rowid. Columns missing from values
// are stored as empty text.
func (s FTSStore) Insert(ctx context.Context, schema fts.Schema, values map[string]string) (int64, error) {
	ids, err := s.InsertMany(ctx, schema, []map[string]string{values})
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// InsertMany adds rows in a single transaction and returns their rowids
// in input order.
func (s FTSStore) InsertMany(ctx context.Context, schema fts.Schema, rows []map[string]string) ([]int64, error) {
	for _, values := range rows {
		if err := checkColumns(schema, values); err != nil {
			return nil, err
		}
	}
	if len(rows) == 0 {
		return []int64{}, nil
	}

	stmt := insertSQL(schema)
	names := schema.FieldNames()

	return database.WithTransactionResult(ctx, s.db, func(tx *gorm.DB) ([]int64, error) {
		ids := make([]int64, 0, len(rows))
		for _, values := range rows {
			args := make([]any, len(names))
			for i, name := range names {
				args[i] = values[name]
			}
			if err := tx.Exec(stmt, args...).Error; err != nil {
				return nil, fmt.Errorf("insert into %s: %w", schema.Name(), err)
			}
			var id int64
			if err := tx.Raw("SELECT last_insert_rowid()").Scan(&id).Error; err != nil {
				return nil, fmt.Errorf("read rowid: %w", err)
			}
			ids = append(ids, id)
		}
		return ids, nil
	})
}

// Delete removes the row with the given rowid.
func (s FTSStore) Delete(ctx context.Context, schema fts.Schema, rowID int64) error {
	stmt := fmt.Sprintf(`DELETE FROM "%s" WHERE rowid = ?`, schema.Name())
	if err := s.db.Session(ctx).Exec(stmt, rowID).Error; err != nil {
		return fmt.Errorf("delete from %s: %w", schema.Name(), err)
	}
	return nil
}

// Find returns rows matching the options. Rows come back in rowid order
// unless the options say otherwise.
func (s FTSStore) Find(ctx context.Context, schema fts.Schema, options ...repository.Option) ([]fts.Document, error) {
	if len(repository.Build(options...).Orders()) == 0 {
		options = append(options, repository.WithOrderByRowID())
	}

	db := s.db.Session(ctx).Table(schema.Name()).Select(selectColumns(schema))
	rows, err := database.ApplyOptions(db, options...).Rows()
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", schema.Name(), err)
	}
	defer func() { _ = rows.Close() }()

	names := schema.FieldNames()
	var docs []fts.Document
	for rows.Next() {
		var (
			rowID int64
			rank  sql.NullFloat64
		)
		texts := make([]sql.NullString, len(names))
		dest := make([]any, 0, len(names)+2)
		dest = append(dest, &rowID, &rank)
		for i := range texts {
			dest = append(dest, &texts[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", schema.Name(), err)
		}
		values := make(map[string]string, len(names))
		for i, name := range names {
			values[name] = texts[i].String
		}
		docs = append(docs, fts.NewDocument(rowID, rank.Float64, values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", schema.Name(), err)
	}
	return docs, nil
}

// Count returns the number of rows matching the options.
func (s FTSStore) Count(ctx context.Context, schema fts.Schema, options ...repository.Option) (int64, error) {
	var n int64
	db := database.ApplyConditions(s.db.Session(ctx).Table(schema.Name()), options...)
	if err := db.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", schema.Name(), err)
	}
	return n, nil
}

func checkColumns(schema fts.Schema, values map[string]string) error {
	for name := range values {
		if _, ok := schema.Field(name); !ok {
			return fmt.Errorf("%w %q in table %s", ErrUnknownColumn, name, schema.Name())
		}
	}
	return nil
}

func insertSQL(schema fts.Schema) string {
	names := schema.FieldNames()
	cols := make([]string, len(names))
	marks := make([]string, len(names))
	for i, name := range names {
		cols[i] = fmt.Sprintf(`"%s"`, name)
		marks[i] = "?"
	}
	return fmt.Sprintf(`INSERT INTO "%s" (%s) VALUES (%s)`,
		schema.Name(), strings.Join(cols, ", "), strings.Join(marks, ", "))
}

// selectColumns lists rowid, rank, then every field. Tables without a
// rank column report zero.
func selectColumns(schema fts.Schema) string {
	cols := []string{fts.RowIDColumn}
	if schema.HasRank() {
		cols = append(cols, fts.RankColumn)
	} else {
		cols = append(cols, "0.0 AS "+fts.RankColumn)
	}
	for _, name := range schema.FieldNames() {
		cols = append(cols, fmt.Sprintf(`"%s"`, name))
	}
	return strings.Join(cols, ", ")
}
