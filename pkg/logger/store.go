package logger

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGHandler is a slog.Handler that persists log records to a Postgres table.
// It is a thin pass-through to the driver: one INSERT per record, no
// buffering. Combine it with a stdout handler via NewWithStore for normal
// operation; use it alone for audit-style logs that must survive the process.
//
// Expected table:
//
//	CREATE TABLE logs (
//	    id         BIGSERIAL PRIMARY KEY,
//	    level      TEXT        NOT NULL,
//	    message    TEXT        NOT NULL,
//	    attrs      JSONB       NOT NULL DEFAULT '{}',
//	    created_at TIMESTAMPTZ NOT NULL
//	);
type PGHandler struct {
	pool  *pgxpool.Pool
	level slog.Level
	table string
	attrs []slog.Attr
}

// PGHandlerOption configures a PGHandler.
type PGHandlerOption func(*PGHandler)

// WithPGLevel sets the minimum level persisted. Default: slog.LevelInfo.
func WithPGLevel(level slog.Level) PGHandlerOption {
	return func(h *PGHandler) {
		h.level = level
	}
}

// WithPGTable sets the target table name. Default: "logs".
func WithPGTable(table string) PGHandlerOption {
	return func(h *PGHandler) {
		if table != "" {
			h.table = table
		}
	}
}

// NewPGHandler creates a Postgres-backed slog handler.
func NewPGHandler(pool *pgxpool.Pool, opts ...PGHandlerOption) *PGHandler {
	h := &PGHandler{
		pool:  pool,
		level: slog.LevelInfo,
		table: "logs",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *PGHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *PGHandler) Handle(ctx context.Context, rec slog.Record) error {
	attrs := make(map[string]any, rec.NumAttrs()+len(h.attrs))
	for _, attr := range h.attrs {
		attrs[attr.Key] = attr.Value.Any()
	}
	rec.Attrs(func(attr slog.Attr) bool {
		attrs[attr.Key] = attr.Value.Any()
		return true
	})

	payload, err := json.Marshal(attrs)
	if err != nil {
		payload = []byte("{}")
	}

	created := rec.Time
	if created.IsZero() {
		created = time.Now()
	}

	_, err = h.pool.Exec(ctx,
		`INSERT INTO `+h.table+` (level, message, attrs, created_at) VALUES ($1, $2, $3, $4)`,
		rec.Level.String(), rec.Message, payload, created,
	)
	return err
}

func (h *PGHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

// WithGroup is accepted but flattening is not implemented; grouped attributes
// keep their leaf keys in the persisted payload.
func (h *PGHandler) WithGroup(string) slog.Handler {
	return h
}

// NewWithStore creates a logger that writes JSON to stdout and persists
// records at or above the handler's level to Postgres.
func NewWithStore(pool *pgxpool.Pool, extractors ...ContextExtractor) *slog.Logger {
	stdoutHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	combined := newMultiHandler(stdoutHandler, NewPGHandler(pool))
	return slog.New(NewDecorator(combined, extractors...))
}
