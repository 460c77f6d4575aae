package repository

import (
	"context"
	"fmt"
	"strings"
)

// ColumnType is the abstract type of a table column.
type ColumnType int

const (
	// TypePrimaryKey is an auto-incrementing integer primary key.
	TypePrimaryKey ColumnType = iota
	// TypeString is a length-limited character column.
	TypeString
)

// Column describes a single column for CreateTable.
type Column struct {
	Name    string
	Type    ColumnType
	Size    int
	NotNull bool
}

// Field is a column/value pair for Insert. Order is preserved in the statement.
type Field struct {
	Column string
	Value  any
}

type SchemaSQLite struct {
	db DBTX
}

func NewSchemaSQLite(db DBTX) *SchemaSQLite {
	return &SchemaSQLite{db: db}
}

// Ensure implementation of Schema interface at compile time.
var _ Schema = (*SchemaSQLite)(nil)

// quoteIdent quotes a table or column name.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func columnDefinition(c Column) (string, error) {
	var b strings.Builder
	b.WriteString(quoteIdent(c.Name))

	switch c.Type {
	case TypePrimaryKey:
		b.WriteString(" INTEGER PRIMARY KEY AUTOINCREMENT")
		return b.String(), nil
	case TypeString:
		if c.Size <= 0 {
			return "", fmt.Errorf("column %q: size must be positive", c.Name)
		}
		fmt.Fprintf(&b, " VARCHAR(%d)", c.Size)
	default:
		return "", fmt.Errorf("column %q: unsupported type %d", c.Name, c.Type)
	}

	if c.NotNull {
		b.WriteString(" NOT NULL")
	}
	return b.String(), nil
}

func createTableSQL(name string, columns []Column) (string, error) {
	if len(columns) == 0 {
		return "", fmt.Errorf("table %q: no columns", name)
	}
	defs := make([]string, 0, len(columns))
	for _, c := range columns {
		def, err := columnDefinition(c)
		if err != nil {
			return "", err
		}
		defs = append(defs, def)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(name), strings.Join(defs, ", ")), nil
}

func insertSQL(table string, fields []Field) (string, []any) {
	cols := make([]string, 0, len(fields))
	marks := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		cols = append(cols, quoteIdent(f.Column))
		marks = append(marks, "?")
		args = append(args, f.Value)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(cols, ", "), strings.Join(marks, ", "))
	return query, args
}

// CreateTable creates a table. It fails if the table already exists.
func (s *SchemaSQLite) CreateTable(ctx context.Context, name string, columns []Column) error {
	query, err := createTableSQL(name, columns)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create table %q: %w", name, err)
	}
	return nil
}

// DropTable drops a table. It fails if the table does not exist.
func (s *SchemaSQLite) DropTable(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, "DROP TABLE "+quoteIdent(name)); err != nil {
		return fmt.Errorf("drop table %q: %w", name, err)
	}
	return nil
}

// Insert adds one row and returns its rowid.
func (s *SchemaSQLite) Insert(ctx context.Context, table string, fields []Field) (int64, error) {
	if len(fields) == 0 {
		return 0, fmt.Errorf("insert into %q: no fields", table)
	}
	query, args := insertSQL(table, fields)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert into %q: %w", table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for %q: %w", table, err)
	}
	return id, nil
}
