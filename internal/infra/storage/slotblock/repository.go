package slotblock

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PlayCourt-BookingService/internal/domain"
	"github.com/m04kA/PlayCourt-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PlayCourt-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/PlayCourt-BookingService/pkg/types"
)

// DBExecutor общий интерфейс выполнения запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с блокировками слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает блокировку слота.
// Уникальный индекс (venue_id, block_date, start_time) защищает от дублей:
// при конфликте вставка не возвращает строк и метод отдает ErrBlockAlreadyExists.
func (r *Repository) Create(ctx context.Context, block *domain.SlotBlock) (*domain.SlotBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_blocks").
		Columns(
			"venue_id",
			"block_date",
			"start_time",
			"blocked_by",
			"reason",
		).
		Values(
			block.VenueID,
			block.BlockDate,
			block.StartTime,
			block.BlockedBy,
			block.Reason,
		).
		Suffix("ON CONFLICT (venue_id, block_date, start_time) DO NOTHING RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&block.ID,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBlockAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	block.CreatedAt = createdAt.Time

	return block, nil
}

// Delete снимает блокировку слота
func (r *Repository) Delete(ctx context.Context, venueID int64, blockDate time.Time, startTime types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slot_blocks").
		Where(squirrel.Eq{
			"venue_id":   venueID,
			"block_date": blockDate,
			"start_time": startTime,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

// ListForDate возвращает все блокировки площадки на дату,
// ключ - время начала заблокированного слота
func (r *Repository) ListForDate(ctx context.Context, venueID int64, blockDate time.Time) (map[types.TimeString]domain.SlotBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"venue_id",
		"block_date",
		"start_time",
		"blocked_by",
		"reason",
		"created_at",
	).
		From("slot_blocks").
		Where(squirrel.Eq{
			"venue_id":   venueID,
			"block_date": blockDate,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make(map[types.TimeString]domain.SlotBlock)
	for rows.Next() {
		var block domain.SlotBlock
		var createdAt sql.NullTime

		err := rows.Scan(
			&block.ID,
			&block.VenueID,
			&block.BlockDate,
			&block.StartTime,
			&block.BlockedBy,
			&block.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListForDate - scan row: %w", ErrScanRow, err)
		}

		block.CreatedAt = createdAt.Time
		blocks[block.StartTime] = block
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListForDate - rows error: %w", ErrScanRow, err)
	}

	return blocks, nil
}
