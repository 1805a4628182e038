package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pressly/goose/v3"

	"github.com/pratish444/QuoteVault/internal/client/remote/pgmigrations"
	"github.com/pratish444/QuoteVault/internal/dbx"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresClient implements Client directly over Postgres for self-hosted
// deployments. Table and column names are quoted with pgx.Identifier.
type PostgresClient struct {
	db dbx.DBTX
}

func NewPostgresClient(db dbx.DBTX) *PostgresClient {
	return &PostgresClient{db: db}
}

// OpenPostgres opens a pgx-backed pool for dsn.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, unavailable("ping", "", err)
	}
	return db, nil
}

// Provision applies the remote schema migrations.
func Provision(ctx context.Context, db *sql.DB) error {
	p, err := goose.NewProvider(goose.DialectPostgres, db, pgmigrations.Migrations)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

func (c *PostgresClient) Select(ctx context.Context, table string, f Filter) ([]Row, error) {
	where, args := whereClause(f, 1)
	query := `SELECT * FROM ` + ident(table) + where
	if f.Limit > 0 {
		query += ` LIMIT ` + strconv.Itoa(f.Limit)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pgError("select", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("select %s: %w: %w", table, ErrDecode, err)
	}

	result := []Row{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("select %s: %w: %w", table, ErrDecode, err)
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			row[col] = values[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, pgError("select", table, err)
	}
	return result, nil
}

func (c *PostgresClient) Insert(ctx context.Context, table string, row Row) error {
	keys := sortedKeys(row)
	cols := make([]string, len(keys))
	marks := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		cols[i] = ident(k)
		marks[i] = "$" + strconv.Itoa(i+1)
		args[i] = row[k]
	}

	query := `INSERT INTO ` + ident(table) +
		` (` + strings.Join(cols, ", ") + `) VALUES (` + strings.Join(marks, ", ") + `)`
	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return pgError("insert", table, err)
	}
	return nil
}

func (c *PostgresClient) Update(ctx context.Context, table string, row Row, f Filter) error {
	if len(f.Conds) == 0 {
		return fmt.Errorf("update %s: %w", table, ErrUnfiltered)
	}
	keys := sortedKeys(row)
	sets := make([]string, len(keys))
	args := make([]any, 0, len(keys)+len(f.Conds))
	for i, k := range keys {
		sets[i] = ident(k) + " = $" + strconv.Itoa(i+1)
		args = append(args, row[k])
	}
	where, whereArgs := whereClause(f, len(keys)+1)
	args = append(args, whereArgs...)

	query := `UPDATE ` + ident(table) + ` SET ` + strings.Join(sets, ", ") + where
	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return pgError("update", table, err)
	}
	return nil
}

func (c *PostgresClient) Delete(ctx context.Context, table string, f Filter) error {
	if len(f.Conds) == 0 {
		return fmt.Errorf("delete %s: %w", table, ErrUnfiltered)
	}
	where, args := whereClause(f, 1)
	if _, err := c.db.ExecContext(ctx, `DELETE FROM `+ident(table)+where, args...); err != nil {
		return pgError("delete", table, err)
	}
	return nil
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// whereClause renders f with placeholders numbered from start.
func whereClause(f Filter, start int) (string, []any) {
	if len(f.Conds) == 0 {
		return "", nil
	}
	parts := make([]string, len(f.Conds))
	args := make([]any, len(f.Conds))
	for i, c := range f.Conds {
		parts[i] = ident(c.Column) + " = $" + strconv.Itoa(start+i)
		args[i] = c.Value
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

func sortedKeys(row Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// pgError classifies a driver error. Server-reported errors become *Error;
// anything else never reached the server and counts as unavailable.
func pgError(op, table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if strings.HasPrefix(pgErr.Code, "08") {
			return unavailable(op, table, err)
		}
		return fmt.Errorf("%s %s: %w", op, table, NewError(0, pgErr.Code, pgErr.Message))
	}
	return unavailable(op, table, err)
}
