package oracles

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Oracle struct {
	Name string
	SQL  string
}

// All returns the invariant checks run against the live schema while actors
// churn. Each query must return zero rows.
func All() []Oracle {
	return []Oracle{
		{
			Name: "O1_single_history_start",
			SQL: `SELECT matter_id, COUNT(*) FROM status_transitions
                  WHERE status_from IS NULL
                  GROUP BY matter_id HAVING COUNT(*) > 1`,
		},
		{
			Name: "O2_stage_vocabulary",
			SQL: `SELECT id, stage_group FROM status_transitions
                  WHERE stage_group NOT IN ('To Do','In Progress','Done')`,
		},
		{
			Name: "O3_no_self_transition",
			SQL: `SELECT id FROM status_transitions
                  WHERE status_from IS NOT NULL AND status_from = status_to`,
		},
		{
			Name: "O4_history_chain_links",
			SQL: `WITH chain AS (
                      SELECT matter_id, status_from, status_to,
                             LAG(status_to) OVER (PARTITION BY matter_id ORDER BY changed_at, id) AS prev_to
                      FROM status_transitions)
                  SELECT * FROM chain
                  WHERE prev_to IS NOT NULL AND status_from IS DISTINCT FROM prev_to`,
		},
		{
			Name: "O5_current_status_matches_history",
			SQL: `SELECT v.matter_id FROM matter_field_values v
                  JOIN fields f ON f.id = v.field_id AND f.field_type = 'status'
                  WHERE v.status_id IS DISTINCT FROM (
                      SELECT t.status_to FROM status_transitions t
                      WHERE t.matter_id = v.matter_id
                      ORDER BY t.changed_at DESC, t.id DESC
                      LIMIT 1)`,
		},
	}
}

// Run executes all oracles and returns the first failure (name and sample
// row text) or an empty name if all pass.
func Run(ctx context.Context, pool *pgxpool.Pool) (string, string, error) {
	for _, o := range All() {
		rows, err := pool.Query(ctx, o.SQL)
		if err != nil {
			return o.Name, "", fmt.Errorf("oracle %s: %w", o.Name, err)
		}
		if rows.Next() {
			vals, err := rows.Values()
			rows.Close()
			if err != nil {
				return o.Name, "", err
			}
			return o.Name, fmt.Sprintf("%v", vals), nil
		}
		rows.Close()
	}
	return "", "", nil
}
