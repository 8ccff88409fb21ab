package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// ProfilesColumns holds the columns for the "profiles" table. The full
	// profile document lives in data; the other columns serve lookups and
	// ordering.
	ProfilesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "email", Type: field.TypeString},
		{Name: "name", Type: field.TypeString},
		{Name: "role", Type: field.TypeString},
		{Name: "xp", Type: field.TypeInt},
		{Name: "updated_at", Type: field.TypeString},
		{Name: "data", Type: field.TypeJSON},
	}
	ProfilesTable = &schema.Table{
		Name:       "profiles",
		Columns:    ProfilesColumns,
		PrimaryKey: []*schema.Column{ProfilesColumns[0]},
		Indexes: []*schema.Index{
			{Name: "profile_email", Unique: false, Columns: []*schema.Column{ProfilesColumns[1]}},
			{Name: "profile_xp", Unique: false, Columns: []*schema.Column{ProfilesColumns[4]}},
		},
	}

	// ChatEntriesColumns holds the columns for the "chat_entries" table.
	ChatEntriesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "learner_id", Type: field.TypeString},
		{Name: "role", Type: field.TypeString},
		{Name: "text", Type: field.TypeString, Size: 2147483647},
		{Name: "created_at", Type: field.TypeString},
	}
	ChatEntriesTable = &schema.Table{
		Name:       "chat_entries",
		Columns:    ChatEntriesColumns,
		PrimaryKey: []*schema.Column{ChatEntriesColumns[0]},
		Indexes: []*schema.Index{
			{Name: "chatentry_learner_id_sequence", Columns: []*schema.Column{ChatEntriesColumns[2], ChatEntriesColumns[1]}},
		},
	}

	// AttemptsColumns holds the columns for the "attempts" table.
	AttemptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "learner_id", Type: field.TypeString},
		{Name: "kind", Type: field.TypeString},
		{Name: "ref_id", Type: field.TypeString},
		{Name: "score", Type: field.TypeInt},
		{Name: "total", Type: field.TypeInt},
		{Name: "passed", Type: field.TypeBool},
		{Name: "attempted_at", Type: field.TypeString},
	}
	AttemptsTable = &schema.Table{
		Name:       "attempts",
		Columns:    AttemptsColumns,
		PrimaryKey: []*schema.Column{AttemptsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "attempt_learner_id_sequence", Columns: []*schema.Column{AttemptsColumns[2], AttemptsColumns[1]}},
		},
	}

	// LlmEventsColumns holds the columns for the "llm_events" table.
	LlmEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "created_at", Type: field.TypeString},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Nullable: true},
		{Name: "request_body", Type: field.TypeString, Nullable: true, Size: 2147483647},
		{Name: "response_body", Type: field.TypeString, Nullable: true, Size: 2147483647},
	}
	LlmEventsTable = &schema.Table{
		Name:       "llm_events",
		Columns:    LlmEventsColumns,
		PrimaryKey: []*schema.Column{LlmEventsColumns[0]},
	}

	// KvColumns holds the columns for the "kv" table.
	KvColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString},
		{Name: "value", Type: field.TypeString, Size: 2147483647},
		{Name: "expires_at", Type: field.TypeString, Nullable: true},
	}
	KvTable = &schema.Table{
		Name:       "kv",
		Columns:    KvColumns,
		PrimaryKey: []*schema.Column{KvColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		ProfilesTable,
		ChatEntriesTable,
		AttemptsTable,
		LlmEventsTable,
		KvTable,
	}
)

// migrate creates or updates every table.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
