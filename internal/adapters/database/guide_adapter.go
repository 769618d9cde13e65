package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/ceylontrails/travelmatch/internal/domain/entities"
	"github.com/ceylontrails/travelmatch/internal/domain/repositories"
	"github.com/ceylontrails/travelmatch/internal/infrastructure/clients/postgres"
	"github.com/ceylontrails/travelmatch/internal/infrastructure/observability"
	apperrors "github.com/ceylontrails/travelmatch/pkg/errors"
)

// GuideAdapter reads live guide candidates from PostgreSQL.
type GuideAdapter struct {
	client  *postgres.Client
	db      *goqu.Database
	metrics *observability.Metrics
}

func NewGuideAdapter(client *postgres.Client, metrics *observability.Metrics) *GuideAdapter {
	return &GuideAdapter{
		client:  client,
		db:      goqu.New("postgres", client.DB()),
		metrics: metrics,
	}
}

var _ repositories.GuideRepository = (*GuideAdapter)(nil)

func (a *GuideAdapter) ListCandidates(ctx context.Context, filter repositories.CandidateFilter) ([]*entities.Guide, error) {
	ctx, span := observability.StartSpan(ctx, "db.guides.list_candidates")
	defer span.End()
	start := time.Now()
	defer func() { a.metrics.RecordDBQuery(ctx, "list_guides", time.Since(start)) }()

	ds := a.db.From(goqu.T("guides").As("g")).
		LeftJoin(goqu.T("users").As("u"), goqu.On(goqu.I("g.user_id").Eq(goqu.I("u.id")))).
		Select(
			goqu.I("g.user_id").As("id"),
			goqu.I("u.name"),
			goqu.I("g.experience"),
			goqu.I("g.languages"),
			goqu.I("g.expertise"),
			goqu.I("g.rating"),
			goqu.I("g.price"),
			goqu.I("g.availability"),
			goqu.I("g.city"),
			goqu.I("g.province"),
			goqu.I("g.gender"),
			goqu.I("g.prior_bookings"),
		)

	if filter.BudgetMax > 0 {
		ds = ds.Where(
			goqu.I("g.price").Gte(filter.BudgetMin),
			goqu.I("g.price").Lte(filter.BudgetMax),
		)
	}
	if city := strings.TrimSpace(filter.City); city != "" {
		ds = ds.Where(goqu.Func("LOWER", goqu.I("g.city")).Eq(strings.ToLower(city)))
	}
	ds = ds.Order(goqu.I("g.user_id").Asc())

	query, args, err := ds.ToSQL()
	if err != nil {
		observability.RecordError(span, err)
		return nil, apperrors.NewInternalError("failed to build guide candidate query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		observability.RecordError(span, err)
		return nil, apperrors.NewExternalError("failed to list guide candidates", err)
	}
	defer rows.Close()

	var out []*entities.Guide
	for rows.Next() {
		g := &entities.Guide{Available: true, Origin: entities.OriginLive}
		var (
			name, city, province, gender sql.NullString
			rating, price                sql.NullFloat64
			available                    sql.NullBool
			bookings                     sql.NullInt64
		)

		err := rows.Scan(
			&g.ID,
			&name,
			pq.Array(&g.Experience),
			pq.Array(&g.Languages),
			pq.Array(&g.Expertise),
			&rating,
			&price,
			&available,
			&city,
			&province,
			&gender,
			&bookings,
		)
		if err != nil {
			observability.RecordError(span, err)
			return nil, apperrors.NewInternalError("failed to scan guide candidate", err)
		}

		g.Name = name.String
		if rating.Valid {
			r := rating.Float64
			g.Rating = &r
		}
		g.Price = price.Float64
		if available.Valid {
			g.Available = available.Bool
		}
		g.City = city.String
		g.Province = province.String
		g.Gender = gender.String
		if bookings.Valid && bookings.Int64 > 0 {
			g.PriorBookings = int(bookings.Int64)
		}

		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		observability.RecordError(span, err)
		return nil, apperrors.NewExternalError("failed to iterate guide candidates", err)
	}

	return out, nil
}

// Insert writes guides and their user rows (used by the seeder).
func (a *GuideAdapter) Insert(ctx context.Context, items []*entities.Guide) error {
	if len(items) == 0 {
		return nil
	}
	users := make([]interface{}, 0, len(items))
	guides := make([]interface{}, 0, len(items))
	for _, g := range items {
		users = append(users, goqu.Record{"id": g.ID, "name": g.Name})
		guides = append(guides, goqu.Record{
			"user_id":        g.ID,
			"experience":     pq.Array(g.Experience),
			"languages":      pq.Array(g.Languages),
			"expertise":      pq.Array(g.Expertise),
			"rating":         nullFloat(g.Rating),
			"price":          g.Price,
			"availability":   g.Available,
			"city":           g.City,
			"province":       g.Province,
			"gender":         g.Gender,
			"prior_bookings": g.PriorBookings,
		})
	}

	tx, err := a.client.DB().BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewExternalError("failed to begin guide insert", err)
	}
	defer tx.Rollback()

	query, args, err := a.db.Insert("users").Rows(users...).OnConflict(goqu.DoNothing()).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build user insert query", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewExternalError("failed to insert guide users", err)
	}

	query, args, err = a.db.Insert("guides").Rows(guides...).OnConflict(goqu.DoNothing()).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build guide insert query", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewExternalError("failed to insert guides", err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewExternalError("failed to commit guide insert", err)
	}
	return nil
}
