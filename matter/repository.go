package matter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"matterflow/field"
	"matterflow/workflow"
)

// PGRepository loads matters, their typed field values, and their workflow
// history from PostgreSQL. Reference labels (user names, option labels,
// status names) are resolved into DisplayValue here so the core never
// touches foreign keys.
type PGRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) ListByBoard(ctx context.Context, filters ListFilters) ([]Matter, error) {
	const query = `
		SELECT id::text, board_id::text, created_at, updated_at
		FROM matters
		WHERE board_id = $1
		  AND ($2 = '' OR search_text ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, filters.BoardID, filters.Search)
	if err != nil {
		return nil, fmt.Errorf("matter: list by board: %w", err)
	}
	defer rows.Close()

	matters := make([]Matter, 0, 32)
	for rows.Next() {
		var m Matter
		if err := rows.Scan(&m.ID, &m.BoardID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("matter: scan matter: %w", err)
		}
		m.Fields = field.Set{}
		matters = append(matters, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("matter: iterate matters: %w", err)
	}

	if err := r.attachFieldValues(ctx, matters); err != nil {
		return nil, err
	}
	return matters, nil
}

func (r *PGRepository) GetByID(ctx context.Context, id string) (Matter, error) {
	const query = `
		SELECT id::text, board_id::text, created_at, updated_at
		FROM matters
		WHERE id = $1
	`

	var m Matter
	err := r.pool.QueryRow(ctx, query, id).Scan(&m.ID, &m.BoardID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Matter{}, ErrNotFound
		}
		return Matter{}, fmt.Errorf("matter: get by id: %w", err)
	}
	m.Fields = field.Set{}

	one := []Matter{m}
	if err := r.attachFieldValues(ctx, one); err != nil {
		return Matter{}, err
	}
	return one[0], nil
}

// attachFieldValues bulk-loads every field value for the given matters and
// folds them into each matter's Set.
func (r *PGRepository) attachFieldValues(ctx context.Context, matters []Matter) error {
	if len(matters) == 0 {
		return nil
	}

	ids := make([]string, len(matters))
	byID := make(map[string]*Matter, len(matters))
	for i := range matters {
		ids[i] = matters[i].ID
		byID[matters[i].ID] = &matters[i]
	}

	const query = `
		SELECT
			v.matter_id::text,
			f.id::text,
			f.name,
			f.field_type,
			v.text_value,
			v.number_value,
			v.date_value,
			v.bool_value,
			v.currency_amount,
			v.currency_code,
			v.user_id::text,
			u.email,
			u.first_name,
			u.last_name,
			u.display_name,
			v.option_id::text,
			o.label,
			v.status_id::text,
			st.name,
			st.stage_group
		FROM matter_field_values v
		JOIN fields f ON f.id = v.field_id
		LEFT JOIN users u ON u.id = v.user_id
		LEFT JOIN field_options o ON o.id = v.option_id
		LEFT JOIN statuses st ON st.id = v.status_id
		WHERE v.matter_id = ANY($1::uuid[])
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("matter: load field values: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			matterID  string
			fieldID   string
			fieldName string
			fieldType string

			textValue      *string
			numberValue    *float64
			dateValue      *time.Time
			boolValue      *bool
			currencyAmount *float64
			currencyCode   *string

			userID, email, firstName, lastName, displayName *string
			optionID, optionLabel                           *string
			statusID, statusName, stageGroup                *string
		)
		if err := rows.Scan(
			&matterID, &fieldID, &fieldName, &fieldType,
			&textValue, &numberValue, &dateValue, &boolValue,
			&currencyAmount, &currencyCode,
			&userID, &email, &firstName, &lastName, &displayName,
			&optionID, &optionLabel,
			&statusID, &statusName, &stageGroup,
		); err != nil {
			return fmt.Errorf("matter: scan field value: %w", err)
		}

		v := field.Value{
			FieldID:   fieldID,
			FieldName: fieldName,
			Type:      field.Type(fieldType),
		}

		switch v.Type {
		case field.TypeText:
			if textValue != nil {
				v.Data = field.Text(*textValue)
			}
		case field.TypeNumber:
			if numberValue != nil {
				v.Data = field.Number(*numberValue)
			} else if textValue != nil {
				// Legacy rows store numbers as text.
				v.Data = field.Text(*textValue)
			}
		case field.TypeDate:
			if dateValue != nil {
				v.Data = field.Date(*dateValue)
			}
		case field.TypeBoolean:
			if boolValue != nil {
				v.Data = field.Boolean(*boolValue)
			}
		case field.TypeCurrency:
			if currencyAmount != nil {
				m := field.Money{Amount: *currencyAmount}
				if currencyCode != nil {
					m.Currency = *currencyCode
				}
				v.Data = m
			}
		case field.TypeUser:
			if userID != nil {
				u := field.UserRef{ID: *userID}
				if email != nil {
					u.Email = *email
				}
				if firstName != nil {
					u.FirstName = *firstName
				}
				if lastName != nil {
					u.LastName = *lastName
				}
				if displayName != nil {
					u.DisplayName = *displayName
				}
				v.Data = u
				v.DisplayValue = u.DisplayName
			}
		case field.TypeSelect:
			if optionID != nil {
				v.Data = field.SelectRef{OptionID: *optionID}
				if optionLabel != nil {
					v.DisplayValue = *optionLabel
				}
			}
		case field.TypeStatus:
			if statusID != nil {
				ref := field.StatusRef{StatusID: *statusID}
				if stageGroup != nil {
					ref.Group = *stageGroup
				}
				v.Data = ref
				if statusName != nil {
					v.DisplayValue = *statusName
				}
			}
		}

		if m, ok := byID[matterID]; ok {
			m.Fields.Add(v)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("matter: iterate field values: %w", err)
	}
	return nil
}

func (r *PGRepository) History(ctx context.Context, matterID string) ([]workflow.Transition, error) {
	histories, err := r.HistoryForMatters(ctx, []string{matterID})
	if err != nil {
		return nil, err
	}
	return histories[matterID], nil
}

func (r *PGRepository) HistoryForMatters(ctx context.Context, matterIDs []string) (map[string][]workflow.Transition, error) {
	if len(matterIDs) == 0 {
		return map[string][]workflow.Transition{}, nil
	}

	const query = `
		SELECT id::text, matter_id::text, status_from::text, status_to::text, stage_group, changed_at
		FROM status_transitions
		WHERE matter_id = ANY($1::uuid[])
		ORDER BY changed_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, matterIDs)
	if err != nil {
		return nil, fmt.Errorf("matter: load history: %w", err)
	}
	defer rows.Close()

	histories := make(map[string][]workflow.Transition, len(matterIDs))
	for rows.Next() {
		var t workflow.Transition
		if err := rows.Scan(&t.ID, &t.MatterID, &t.StatusFrom, &t.StatusTo, &t.Stage, &t.ChangedAt); err != nil {
			return nil, fmt.Errorf("matter: scan transition: %w", err)
		}
		histories[t.MatterID] = append(histories[t.MatterID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("matter: iterate history: %w", err)
	}
	return histories, nil
}
