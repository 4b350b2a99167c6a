package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var dbTracer = otel.Tracer("expensemanager/db")

// DB wraps *sql.DB so every statement gets a client span. Repositories take
// it explicitly; there is no package-level connection.
type DB struct {
	*sql.DB
}

func New(ctx context.Context, connStr string) (*DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db}, nil
}

// Health pings the database within the caller's deadline.
func (db *DB) Health(ctx context.Context) error {
	ctx, span := startSpan(ctx, "db.Ping", "SELECT 1")
	defer span.End()
	return recordErr(span, db.DB.PingContext(ctx))
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	ctx, span := startSpan(ctx, "db.Query", query)
	defer span.End()

	rows, err := db.DB.QueryContext(ctx, query, args...)
	return rows, recordErr(span, err)
}

// tracedRow keeps the span open until Scan, where sql.Row reports its errors
// (sql.ErrNoRows included).
type tracedRow struct {
	row  *sql.Row
	span trace.Span
}

func (r *tracedRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	if r.span != nil {
		if err != sql.ErrNoRows {
			recordErr(r.span, err)
		}
		r.span.End()
		r.span = nil
	}
	return err
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *tracedRow {
	ctx, span := startSpan(ctx, "db.QueryRow", query)
	return &tracedRow{
		row:  db.DB.QueryRowContext(ctx, query, args...),
		span: span,
	}
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx, span := startSpan(ctx, "db.Exec", query)
	defer span.End()

	result, err := db.DB.ExecContext(ctx, query, args...)
	return result, recordErr(span, err)
}

func startSpan(ctx context.Context, name, query string) (context.Context, trace.Span) {
	return dbTracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", sqlVerb(query)),
			attribute.String("db.statement", sanitizeQuery(query)),
		),
	)
}

func recordErr(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

var (
	stringLiteral  = regexp.MustCompile(`'(?:[^']|'')*'`)
	numericLiteral = regexp.MustCompile(`\$?\b\d+(?:\.\d+)?\b`)
	whitespace     = regexp.MustCompile(`\s+`)
)

const maxStatementLength = 256

// sanitizeQuery collapses whitespace and masks string and numeric literals so
// that values never reach the trace backend. $N placeholders are kept.
func sanitizeQuery(q string) string {
	q = whitespace.ReplaceAllString(strings.TrimSpace(q), " ")
	q = stringLiteral.ReplaceAllString(q, "'?'")
	q = numericLiteral.ReplaceAllStringFunc(q, func(m string) string {
		if strings.HasPrefix(m, "$") {
			return m
		}
		return "?"
	})
	if len(q) > maxStatementLength {
		return q[:maxStatementLength] + "..."
	}
	return q
}

func sqlVerb(q string) string {
	verb, _, _ := strings.Cut(strings.TrimSpace(q), " ")
	if i := strings.IndexAny(verb, "\n\t"); i >= 0 {
		verb = verb[:i]
	}
	return strings.ToUpper(verb)
}
