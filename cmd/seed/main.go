// Command seed populates a demo board with field definitions of every type,
// a handful of matters with mixed field coverage, and transition histories
// spanning the three workflow stages.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"matterflow/db"
	"matterflow/workflow"
)

func main() {
	ctx := context.Background()

	pool, err := db.NewPool(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("bootstrap database pool: %v", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("begin seed tx: %v", err)
	}
	defer tx.Rollback(ctx)

	if err := seed(ctx, tx); err != nil {
		log.Fatalf("seed: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("commit seed: %v", err)
	}
	log.Printf("demo board seeded")
}

func seed(ctx context.Context, tx pgx.Tx) error {
	var boardID string
	if err := tx.QueryRow(ctx, `INSERT INTO boards (name) VALUES ('Legal Matters') RETURNING id`).Scan(&boardID); err != nil {
		return fmt.Errorf("insert board: %w", err)
	}

	users := map[string]string{}
	for _, u := range [][3]string{
		{"dana@example.com", "Dana", "Whitfield"},
		{"marco@example.com", "Marco", "Reyes"},
		{"priya@example.com", "Priya", "Nair"},
	} {
		var id string
		if err := tx.QueryRow(ctx, `
            INSERT INTO users (email, first_name, last_name, display_name)
            VALUES ($1,$2,$3,$4) RETURNING id
        `, u[0], u[1], u[2], u[1]+" "+u[2]).Scan(&id); err != nil {
			return fmt.Errorf("insert user %s: %w", u[0], err)
		}
		users[u[0]] = id
	}

	statuses := map[string]string{}
	for _, s := range [][2]string{
		{"Backlog", workflow.StageToDo},
		{"Drafting", workflow.StageInProgress},
		{"Review", workflow.StageInProgress},
		{"Closed", workflow.StageDone},
	} {
		var id string
		if err := tx.QueryRow(ctx, `
            INSERT INTO statuses (board_id, name, stage_group)
            VALUES ($1,$2,$3) RETURNING id
        `, boardID, s[0], s[1]).Scan(&id); err != nil {
			return fmt.Errorf("insert status %s: %w", s[0], err)
		}
		statuses[s[0]] = id
	}

	fields := map[string]string{}
	for _, f := range [][2]string{
		{"Subject", "text"},
		{"Filing Count", "number"},
		{"Due Date", "date"},
		{"Billable", "boolean"},
		{"Retainer", "currency"},
		{"Status", "status"},
		{"Practice Area", "select"},
		{"Assignee", "user"},
	} {
		var id string
		if err := tx.QueryRow(ctx, `
            INSERT INTO fields (board_id, name, field_type)
            VALUES ($1,$2,$3) RETURNING id
        `, boardID, f[0], f[1]).Scan(&id); err != nil {
			return fmt.Errorf("insert field %s: %w", f[0], err)
		}
		fields[f[0]] = id
	}

	options := map[string]string{}
	for _, label := range []string{"Litigation", "Contracts", "Compliance"} {
		var id string
		if err := tx.QueryRow(ctx, `
            INSERT INTO field_options (field_id, label) VALUES ($1,$2) RETURNING id
        `, fields["Practice Area"], label).Scan(&id); err != nil {
			return fmt.Errorf("insert option %s: %w", label, err)
		}
		options[label] = id
	}

	now := time.Now().UTC().Truncate(time.Minute)

	type seedMatter struct {
		subject  string
		filing   *float64
		due      *time.Time
		billable *bool
		retainer *float64
		code     string
		area     string
		assignee string
		// history entries: status name + offset from t0
		history []struct {
			status string
			offset time.Duration
		}
	}

	f := func(v float64) *float64 { return &v }
	b := func(v bool) *bool { return &v }
	d := func(v time.Time) *time.Time { return &v }

	t0 := now.Add(-10 * time.Hour)
	matters := []seedMatter{
		{
			subject: "Vendor NDA review", filing: f(2), due: d(now.Add(72 * time.Hour)),
			billable: b(true), retainer: f(5000), code: "USD",
			area: "Contracts", assignee: "dana@example.com",
			history: []struct {
				status string
				offset time.Duration
			}{{"Backlog", 0}},
		},
		{
			subject: "Lease dispute, 4th Ave", filing: f(7),
			billable: b(true), retainer: f(12500), code: "USD",
			area: "Litigation", assignee: "marco@example.com",
			history: []struct {
				status string
				offset time.Duration
			}{{"Backlog", 0}, {"Drafting", time.Hour}},
		},
		{
			subject: "Quarterly compliance filing", due: d(now.Add(24 * time.Hour)),
			billable: b(false),
			area:     "Compliance", assignee: "priya@example.com",
			history: []struct {
				status string
				offset time.Duration
			}{{"Backlog", 0}, {"Drafting", time.Hour}, {"Closed", 9 * time.Hour}},
		},
		{
			// No history at all: exercises the no-workflow-history path.
			subject: "Intake: new client referral",
		},
	}

	for _, sm := range matters {
		var matterID string
		if err := tx.QueryRow(ctx, `
            INSERT INTO matters (board_id, search_text, created_at, updated_at)
            VALUES ($1,$2,$3,$3) RETURNING id
        `, boardID, strings.ToLower(sm.subject), t0).Scan(&matterID); err != nil {
			return fmt.Errorf("insert matter %q: %w", sm.subject, err)
		}

		insertValue := func(fieldName, column string, value any) error {
			if value == nil {
				return nil
			}
			query := fmt.Sprintf(`
                INSERT INTO matter_field_values (matter_id, field_id, %s)
                VALUES ($1,$2,$3)
                ON CONFLICT (matter_id, field_id) DO UPDATE SET %s = EXCLUDED.%s
            `, column, column, column)
			if _, err := tx.Exec(ctx, query, matterID, fields[fieldName], value); err != nil {
				return fmt.Errorf("insert %s for %q: %w", fieldName, sm.subject, err)
			}
			return nil
		}

		if err := insertValue("Subject", "text_value", sm.subject); err != nil {
			return err
		}
		if sm.filing != nil {
			if err := insertValue("Filing Count", "number_value", *sm.filing); err != nil {
				return err
			}
		}
		if sm.due != nil {
			if err := insertValue("Due Date", "date_value", *sm.due); err != nil {
				return err
			}
		}
		if sm.billable != nil {
			if err := insertValue("Billable", "bool_value", *sm.billable); err != nil {
				return err
			}
		}
		if sm.retainer != nil {
			if err := insertValue("Retainer", "currency_amount", *sm.retainer); err != nil {
				return err
			}
			if err := insertValue("Retainer", "currency_code", sm.code); err != nil {
				return err
			}
		}
		if sm.area != "" {
			if err := insertValue("Practice Area", "option_id", options[sm.area]); err != nil {
				return err
			}
		}
		if sm.assignee != "" {
			if err := insertValue("Assignee", "user_id", users[sm.assignee]); err != nil {
				return err
			}
		}

		var prev *string
		for _, h := range sm.history {
			statusID := statuses[h.status]
			if err := insertValue("Status", "status_id", statusID); err != nil {
				return err
			}
			var group string
			if err := tx.QueryRow(ctx, `SELECT stage_group FROM statuses WHERE id=$1`, statusID).Scan(&group); err != nil {
				return fmt.Errorf("resolve stage group: %w", err)
			}
			if _, err := tx.Exec(ctx, `
                INSERT INTO status_transitions (id, matter_id, status_from, status_to, stage_group, changed_at)
                VALUES ($1,$2,$3,$4,$5,$6)
            `, uuid.NewString(), matterID, prev, statusID, group, t0.Add(h.offset)); err != nil {
				return fmt.Errorf("insert transition for %q: %w", sm.subject, err)
			}
			prev = &statusID
		}
	}

	return nil
}
