package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QueryRecord is one served query. Result holds the JSON sent to the client.
type QueryRecord struct {
	ID         string
	CreatedAt  time.Time
	RequestID  string
	Source     string // http | telegram | cli
	Engine     string
	Model      string
	Query      string
	Agent      string
	Subject    string
	Type       string
	Result     []byte
	Error      string
	DurationMs int64
}

// QueryLog is an append-only journal of served queries. It is never consulted
// when answering.
type QueryLog struct{ DB *DB }

func NewQueryLog(db *DB) *QueryLog { return &QueryLog{DB: db} }

const schemaPostgres = `
create table if not exists query_log (
	id          text primary key,
	created_at  timestamptz not null,
	request_id  text not null default '',
	source      text not null,
	engine      text not null,
	model       text not null,
	query       text not null,
	agent       text not null default '',
	subject     text not null default '',
	result_type text not null default '',
	result_json jsonb,
	error       text not null default '',
	duration_ms bigint not null default 0
);
create index if not exists query_log_created_at on query_log (created_at desc);`

const schemaSQLite = `
create table if not exists query_log (
	id          text primary key,
	created_at  timestamp not null,
	request_id  text not null default '',
	source      text not null,
	engine      text not null,
	model       text not null,
	query       text not null,
	agent       text not null default '',
	subject     text not null default '',
	result_type text not null default '',
	result_json text,
	error       text not null default '',
	duration_ms integer not null default 0
);
create index if not exists query_log_created_at on query_log (created_at desc);`

func (r *QueryLog) EnsureSchema(ctx context.Context) error {
	ddl := schemaSQLite
	if r.DB.Dialect == Postgres {
		ddl = schemaPostgres
	}
	if _, err := r.DB.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("query_log schema: %w", err)
	}
	return nil
}

// Record inserts rec, filling ID and CreatedAt when empty.
func (r *QueryLog) Record(ctx context.Context, rec QueryRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	var result any
	if len(rec.Result) > 0 {
		result = string(rec.Result)
	}
	q := r.DB.rebind(`
insert into query_log(id, created_at, request_id, source, engine, model, query,
                      agent, subject, result_type, result_json, error, duration_ms)
values (?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	_, err := r.DB.ExecContext(ctx, q,
		rec.ID, rec.CreatedAt, rec.RequestID, rec.Source, rec.Engine, rec.Model, rec.Query,
		rec.Agent, rec.Subject, rec.Type, result, rec.Error, rec.DurationMs)
	if err != nil {
		return fmt.Errorf("query_log insert: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (r *QueryLog) Recent(ctx context.Context, limit int) ([]QueryRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	q := r.DB.rebind(`
select id, created_at, request_id, source, engine, model, query,
       agent, subject, result_type, coalesce(cast(result_json as text), ''), error, duration_ms
from query_log
order by created_at desc
limit ?`)
	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query_log select: %w", err)
	}
	defer rows.Close()

	var out []QueryRecord
	for rows.Next() {
		var (
			rec    QueryRecord
			result string
		)
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.RequestID, &rec.Source, &rec.Engine, &rec.Model,
			&rec.Query, &rec.Agent, &rec.Subject, &rec.Type, &result, &rec.Error, &rec.DurationMs); err != nil {
			return nil, err
		}
		if result != "" {
			rec.Result = []byte(result)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
