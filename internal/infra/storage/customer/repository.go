package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
	"github.com/m04kA/SMC-BarberBot/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BarberBot/pkg/txmanager"
)

// Repository репозиторий для работы с клиентами
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает клиента по идентификатору чата
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"phone_number",
		"created_at",
		"updated_at",
	).
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Customer
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.Name,
		&c.PhoneNumber,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan customer: %v", ErrScanRow, err)
	}

	return &c, nil
}

// Upsert создает клиента или обновляет имя и телефон существующего
func (r *Repository) Upsert(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns("id", "name", "phone_number").
		Values(c.ID, c.Name, c.PhoneNumber).
		Suffix(`ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name,
				phone_number = EXCLUDED.phone_number,
				updated_at = NOW()
			RETURNING created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return c, nil
}

// UpdateName меняет отображаемое имя клиента
func (r *Repository) UpdateName(ctx context.Context, id int64, name string) error {
	return r.update(ctx, "UpdateName", id, "name", name)
}

// UpdatePhone меняет номер телефона клиента
func (r *Repository) UpdatePhone(ctx context.Context, id int64, phone string) error {
	return r.update(ctx, "UpdatePhone", id, "phone_number", phone)
}

func (r *Repository) update(ctx context.Context, op string, id int64, column, value string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("customers").
		Set(column, value).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}
