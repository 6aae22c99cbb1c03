package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/auroranet/portal-service/internal/domain"
)

// SubscriptionFilter captures admin subscription-list parameters.
type SubscriptionFilter struct {
	CustomerID *string
	Status     *domain.SubscriptionStatus
	Cycle      *domain.BillingCycle
	Limit      int
	Offset     int
}

// SubscriptionRepository encapsulates subscription persistence.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	Update(ctx context.Context, sub *domain.Subscription) error
	GetByID(ctx context.Context, id string) (*domain.Subscription, error)
	GetActiveByCustomer(ctx context.Context, customerID string) (*domain.Subscription, error)
	CountWithFilter(ctx context.Context, filter SubscriptionFilter) (int, error)
	ListWithFilter(ctx context.Context, filter SubscriptionFilter) ([]domain.Subscription, error)
	SearchUnpaginated(ctx context.Context, filter SubscriptionFilter, customerIDs []string) ([]domain.Subscription, error)
}

type subscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository instantiates repository.
func NewSubscriptionRepository(pool *pgxpool.Pool) SubscriptionRepository {
	return &subscriptionRepository{pool: pool}
}

const subscriptionColumns = `id, customer_id, plan_id, order_id, status, cycle, period_start, period_end, created_at, updated_at`

func (r *subscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	const query = `
        INSERT INTO subscriptions (customer_id, plan_id, order_id, status, cycle, period_start, period_end)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		sub.CustomerID,
		sub.PlanID,
		sub.OrderID,
		sub.Status,
		sub.Cycle,
		sub.PeriodStart,
		sub.PeriodEnd,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
	return translateError(err)
}

func (r *subscriptionRepository) Update(ctx context.Context, sub *domain.Subscription) error {
	const query = `
        UPDATE subscriptions SET status=$1, cycle=$2, period_start=$3, period_end=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		sub.Status,
		sub.Cycle,
		sub.PeriodStart,
		sub.PeriodEnd,
		sub.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *subscriptionRepository) GetByID(ctx context.Context, id string) (*domain.Subscription, error) {
	return r.fetchSingle(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE id=$1`, id)
}

// GetActiveByCustomer returns the customer's current (non-cancelled) subscription.
func (r *subscriptionRepository) GetActiveByCustomer(ctx context.Context, customerID string) (*domain.Subscription, error) {
	const query = `
        SELECT ` + subscriptionColumns + `
        FROM subscriptions
        WHERE customer_id=$1 AND status <> 'cancelled'
        ORDER BY created_at DESC LIMIT 1`
	return r.fetchSingle(ctx, query, customerID)
}

func (r *subscriptionRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Subscription, error) {
	var sub domain.Subscription
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&sub.ID,
		&sub.CustomerID,
		&sub.PlanID,
		&sub.OrderID,
		&sub.Status,
		&sub.Cycle,
		&sub.PeriodStart,
		&sub.PeriodEnd,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sub, nil
}

func subscriptionFilterClauses(filter SubscriptionFilter) ([]string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, fmt.Sprintf("customer_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Cycle != nil {
		args = append(args, *filter.Cycle)
		clauses = append(clauses, fmt.Sprintf("cycle=$%d", len(args)))
	}
	return clauses, args
}

func (r *subscriptionRepository) CountWithFilter(ctx context.Context, filter SubscriptionFilter) (int, error) {
	clauses, args := subscriptionFilterClauses(filter)
	query := `SELECT COUNT(*) FROM subscriptions WHERE ` + strings.Join(clauses, " AND ")

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *subscriptionRepository) ListWithFilter(ctx context.Context, filter SubscriptionFilter) ([]domain.Subscription, error) {
	clauses, args := subscriptionFilterClauses(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM subscriptions WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		subscriptionColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubscriptions(rows)
}

// SearchUnpaginated returns the full match set for subscriptions whose
// customer matched the identity lookup. Subscriptions carry no local text
// fields, so identity matches are the only search surface.
func (r *subscriptionRepository) SearchUnpaginated(ctx context.Context, filter SubscriptionFilter, customerIDs []string) ([]domain.Subscription, error) {
	if len(customerIDs) == 0 {
		return []domain.Subscription{}, nil
	}
	clauses, args := subscriptionFilterClauses(filter)
	args = append(args, customerIDs)
	clauses = append(clauses, fmt.Sprintf("customer_id = ANY($%d)", len(args)))

	query := fmt.Sprintf(`SELECT %s FROM subscriptions WHERE %s ORDER BY created_at DESC`,
		subscriptionColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubscriptions(rows)
}

func scanSubscriptions(rows pgx.Rows) ([]domain.Subscription, error) {
	var result []domain.Subscription
	for rows.Next() {
		var sub domain.Subscription
		if err := rows.Scan(
			&sub.ID,
			&sub.CustomerID,
			&sub.PlanID,
			&sub.OrderID,
			&sub.Status,
			&sub.Cycle,
			&sub.PeriodStart,
			&sub.PeriodEnd,
			&sub.CreatedAt,
			&sub.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, sub)
	}
	return result, rows.Err()
}
