package repo

import (
	"context"
	"encoding/json"

	"notifygate/internal/modkit/repokit"
	perr "notifygate/internal/platform/errors"
	"notifygate/internal/services/api/preferences/domain"
)

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// EnsureSchema creates the preferences table when it does not exist yet
func EnsureSchema(ctx context.Context, q repokit.Queryer) error {
	const ddl = `
create table if not exists user_preferences (
	user_id        text primary key,
	dnd_start      text,
	dnd_end        text,
	event_settings jsonb not null,
	updated_at     timestamptz not null default now()
)`
	if _, err := q.Exec(ctx, ddl); err != nil {
		return perr.InternalWrap(err, "ensure preferences schema")
	}
	return nil
}

func (r *queries) Get(ctx context.Context, userID string) (domain.Preference, error) {
	const sql = `
select dnd_start, dnd_end, event_settings
from user_preferences
where user_id = $1`

	var (
		start, end *string
		settings   []byte
	)
	if err := r.q.QueryRow(ctx, sql, userID).Scan(&start, &end, &settings); err != nil {
		return domain.Preference{}, perr.FromPostgres(err, "get preferences")
	}

	out := domain.Preference{}
	if start != nil && end != nil {
		out.Dnd = &domain.DndWindow{Start: *start, End: *end}
	}
	if err := json.Unmarshal(settings, &out.EventSettings); err != nil {
		return domain.Preference{}, perr.InternalWrap(err, "decode event settings")
	}
	return out, nil
}

func (r *queries) Put(ctx context.Context, userID string, p domain.Preference) error {
	const sql = `
insert into user_preferences (user_id, dnd_start, dnd_end, event_settings, updated_at)
values ($1, $2, $3, $4, now())
on conflict (user_id) do update
set dnd_start = excluded.dnd_start,
	dnd_end = excluded.dnd_end,
	event_settings = excluded.event_settings,
	updated_at = now()`

	settings, err := json.Marshal(p.EventSettings)
	if err != nil {
		return perr.InternalWrap(err, "encode event settings")
	}

	var start, end *string
	if p.Dnd != nil {
		start, end = &p.Dnd.Start, &p.Dnd.End
	}

	if _, err := r.q.Exec(ctx, sql, userID, start, end, settings); err != nil {
		return perr.FromPostgres(err, "put preferences")
	}
	return nil
}
