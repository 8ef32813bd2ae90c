package matter

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrUnknownStatus signals the target status does not exist on the
	// matter's board.
	ErrUnknownStatus = errors.New("matter: unknown status")
	// ErrNoStatusField signals the board has no status-typed field to move.
	ErrNoStatusField = errors.New("matter: board has no status field")
)

// StatusService moves a matter to a new workflow status. The status-field
// update and the append-only transition record are written in the same
// transaction; transition rows are never mutated or deleted afterward.
type StatusService struct {
	pool *pgxpool.Pool
}

func NewStatusService(pool *pgxpool.Pool) *StatusService {
	return &StatusService{pool: pool}
}

type TransitionParams struct {
	MatterID string
	StatusID string
}

func (s *StatusService) Transition(ctx context.Context, params TransitionParams) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("matter: begin transition tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var boardID string
	if err := tx.QueryRow(ctx, `SELECT board_id FROM matters WHERE id=$1 FOR UPDATE`, params.MatterID).Scan(&boardID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("matter: lock matter: %w", err)
	}

	var stageGroup string
	if err := tx.QueryRow(ctx, `SELECT stage_group FROM statuses WHERE id=$1 AND board_id=$2`, params.StatusID, boardID).Scan(&stageGroup); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUnknownStatus
		}
		return fmt.Errorf("matter: resolve status: %w", err)
	}

	// The board's single status-typed field carries the current position.
	var fieldID string
	if err := tx.QueryRow(ctx, `SELECT id FROM fields WHERE board_id=$1 AND field_type='status'`, boardID).Scan(&fieldID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNoStatusField
		}
		return fmt.Errorf("matter: resolve status field: %w", err)
	}

	var statusFrom *string
	if err := tx.QueryRow(ctx, `SELECT status_id::text FROM matter_field_values WHERE matter_id=$1 AND field_id=$2`, params.MatterID, fieldID).Scan(&statusFrom); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("matter: read current status: %w", err)
	}

	if statusFrom != nil && *statusFrom == params.StatusID {
		// No movement, no history row.
		return tx.Commit(ctx)
	}

	if _, err := tx.Exec(ctx, `
        INSERT INTO matter_field_values (matter_id, field_id, status_id)
        VALUES ($1,$2,$3)
        ON CONFLICT (matter_id, field_id) DO UPDATE SET status_id = EXCLUDED.status_id
    `, params.MatterID, fieldID, params.StatusID); err != nil {
		return fmt.Errorf("matter: update status value: %w", err)
	}

	if _, err := tx.Exec(ctx, `
        INSERT INTO status_transitions (id, matter_id, status_from, status_to, stage_group, changed_at)
        VALUES ($1,$2,$3,$4,$5,now())
    `, uuid.NewString(), params.MatterID, statusFrom, params.StatusID, stageGroup); err != nil {
		return fmt.Errorf("matter: insert transition: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE matters SET updated_at=now() WHERE id=$1`, params.MatterID); err != nil {
		return fmt.Errorf("matter: bump updated_at: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("matter: commit transition: %w", err)
	}
	return nil
}
