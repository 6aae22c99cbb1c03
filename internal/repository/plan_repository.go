package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/auroranet/portal-service/internal/domain"
)

// PlanFilter captures admin plan-list parameters.
type PlanFilter struct {
	Active     *bool
	Tag        *domain.PlanTag
	SearchTerm string
	Limit      int
	Offset     int
}

// PlanRepository encapsulates catalog persistence.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.ServicePlan) error
	Update(ctx context.Context, plan *domain.ServicePlan) error
	GetByID(ctx context.Context, id string) (*domain.ServicePlan, error)
	GetBySlug(ctx context.Context, slug string) (*domain.ServicePlan, error)
	ListActive(ctx context.Context) ([]domain.ServicePlan, error)
	CountWithFilter(ctx context.Context, filter PlanFilter) (int, error)
	ListWithFilter(ctx context.Context, filter PlanFilter) ([]domain.ServicePlan, error)
}

type planRepository struct {
	pool *pgxpool.Pool
}

// NewPlanRepository instantiates repository.
func NewPlanRepository(pool *pgxpool.Pool) PlanRepository {
	return &planRepository{pool: pool}
}

const planColumns = `id, name, slug, speed_download_mbps, speed_upload_mbps, price_monthly, setup_fee,
               contract_months, trial_days, priority, features, tags, gateway_prices, active,
               created_at, updated_at`

func (r *planRepository) Create(ctx context.Context, plan *domain.ServicePlan) error {
	const query = `
        INSERT INTO service_plans (name, slug, speed_download_mbps, speed_upload_mbps, price_monthly,
            setup_fee, contract_months, trial_days, priority, features, tags, gateway_prices, active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		plan.Name,
		plan.Slug,
		plan.Speed.Download,
		plan.Speed.Upload,
		plan.PriceMonthly,
		plan.SetupFee,
		plan.ContractMonths,
		plan.TrialDays,
		plan.Priority,
		plan.Features,
		plan.Tags,
		plan.GatewayPrices,
		plan.Active,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
	return translateError(err)
}

func (r *planRepository) Update(ctx context.Context, plan *domain.ServicePlan) error {
	const query = `
        UPDATE service_plans SET name=$1, slug=$2, speed_download_mbps=$3, speed_upload_mbps=$4,
            price_monthly=$5, setup_fee=$6, contract_months=$7, trial_days=$8, priority=$9,
            features=$10, tags=$11, gateway_prices=$12, active=$13, updated_at=NOW()
        WHERE id=$14`

	cmd, err := r.pool.Exec(ctx, query,
		plan.Name,
		plan.Slug,
		plan.Speed.Download,
		plan.Speed.Upload,
		plan.PriceMonthly,
		plan.SetupFee,
		plan.ContractMonths,
		plan.TrialDays,
		plan.Priority,
		plan.Features,
		plan.Tags,
		plan.GatewayPrices,
		plan.Active,
		plan.ID,
	)
	if err != nil {
		return translateError(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *planRepository) GetByID(ctx context.Context, id string) (*domain.ServicePlan, error) {
	return r.fetchSingle(ctx, `SELECT `+planColumns+` FROM service_plans WHERE id=$1`, id)
}

func (r *planRepository) GetBySlug(ctx context.Context, slug string) (*domain.ServicePlan, error) {
	return r.fetchSingle(ctx, `SELECT `+planColumns+` FROM service_plans WHERE slug=$1`, slug)
}

func (r *planRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.ServicePlan, error) {
	var plan domain.ServicePlan
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&plan.ID,
		&plan.Name,
		&plan.Slug,
		&plan.Speed.Download,
		&plan.Speed.Upload,
		&plan.PriceMonthly,
		&plan.SetupFee,
		&plan.ContractMonths,
		&plan.TrialDays,
		&plan.Priority,
		&plan.Features,
		&plan.Tags,
		&plan.GatewayPrices,
		&plan.Active,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListActive returns the public catalog ordered by display priority.
func (r *planRepository) ListActive(ctx context.Context) ([]domain.ServicePlan, error) {
	query := `SELECT ` + planColumns + ` FROM service_plans WHERE active ORDER BY priority DESC, created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlans(rows)
}

func planFilterClauses(filter PlanFilter) ([]string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("active=$%d", len(args)))
	}
	if filter.Tag != nil {
		args = append(args, string(*filter.Tag))
		clauses = append(clauses, fmt.Sprintf("tags ? $%d", len(args)))
	}
	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		args = append(args, "%"+strings.ToLower(term)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(name) LIKE %s OR LOWER(slug) LIKE %s)", placeholder, placeholder))
	}
	return clauses, args
}

func (r *planRepository) CountWithFilter(ctx context.Context, filter PlanFilter) (int, error) {
	clauses, args := planFilterClauses(filter)
	query := `SELECT COUNT(*) FROM service_plans WHERE ` + strings.Join(clauses, " AND ")

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *planRepository) ListWithFilter(ctx context.Context, filter PlanFilter) ([]domain.ServicePlan, error) {
	clauses, args := planFilterClauses(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM service_plans WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		planColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlans(rows)
}

func scanPlans(rows pgx.Rows) ([]domain.ServicePlan, error) {
	var result []domain.ServicePlan
	for rows.Next() {
		var plan domain.ServicePlan
		if err := rows.Scan(
			&plan.ID,
			&plan.Name,
			&plan.Slug,
			&plan.Speed.Download,
			&plan.Speed.Upload,
			&plan.PriceMonthly,
			&plan.SetupFee,
			&plan.ContractMonths,
			&plan.TrialDays,
			&plan.Priority,
			&plan.Features,
			&plan.Tags,
			&plan.GatewayPrices,
			&plan.Active,
			&plan.CreatedAt,
			&plan.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, plan)
	}
	return result, rows.Err()
}
