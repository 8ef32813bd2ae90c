package actors

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"matterflow/matter"
)

// Transitioner keeps moving one matter between random board statuses,
// including backward moves (Done back to To Do), through the real status
// service so the row lock and append-only history paths are exercised under
// contention.
func Transitioner(ctx context.Context, pool *pgxpool.Pool, matterID string, statusIDs []string, stop <-chan struct{}) error {
	svc := matter.NewStatusService(pool)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}

		target := statusIDs[rand.Intn(len(statusIDs))]
		if err := svc.Transition(ctx, matter.TransitionParams{MatterID: matterID, StatusID: target}); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			// Terminated backends surface as connection errors under chaos;
			// keep hammering.
		}
		time.Sleep(time.Duration(10+rand.Intn(30)) * time.Millisecond)
	}
}

// Lister runs board listings with rotating sort keys and directions while
// writers churn, exercising enrichment fan-out and sorting against live
// histories.
func Lister(ctx context.Context, svc *matter.Service, boardID string, stop <-chan struct{}) error {
	sortKeys := []string{
		matter.SortKeyCreatedAt,
		matter.SortKeyUpdatedAt,
		matter.SortKeySLA,
		matter.SortKeyResolutionTime,
		"subject",
		"retainer",
		"no-such-field",
	}
	directions := []matter.Direction{matter.Asc, matter.Desc}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}

		// Connection churn from chaos is tolerated; invariant breaks are
		// surfaced by the oracles, not by listing errors.
		_, err := svc.List(ctx, matter.ListParams{
			BoardID:   boardID,
			SortKey:   sortKeys[rand.Intn(len(sortKeys))],
			Direction: directions[rand.Intn(len(directions))],
		})
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		time.Sleep(time.Duration(20+rand.Intn(40)) * time.Millisecond)
	}
}

// FieldWriter rewrites a matter's number field and search text to keep the
// listing path racing against value updates.
func FieldWriter(ctx context.Context, pool *pgxpool.Pool, matterID, fieldID string, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}

		amount := float64(rand.Intn(100000))
		_, _ = pool.Exec(ctx, `
            INSERT INTO matter_field_values (matter_id, field_id, number_value)
            VALUES ($1,$2,$3)
            ON CONFLICT (matter_id, field_id) DO UPDATE SET number_value = EXCLUDED.number_value
        `, matterID, fieldID, amount)
		_, _ = pool.Exec(ctx, `UPDATE matters SET search_text=$2, updated_at=now() WHERE id=$1`,
			matterID, fmt.Sprintf("stress matter %d", rand.Int63()))

		time.Sleep(time.Duration(15+rand.Intn(35)) * time.Millisecond)
	}
}
