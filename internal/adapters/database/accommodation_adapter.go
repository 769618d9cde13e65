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

// AccommodationAdapter reads live lodging candidates from PostgreSQL.
type AccommodationAdapter struct {
	client  *postgres.Client
	db      *goqu.Database
	metrics *observability.Metrics
}

func NewAccommodationAdapter(client *postgres.Client, metrics *observability.Metrics) *AccommodationAdapter {
	return &AccommodationAdapter{
		client:  client,
		db:      goqu.New("postgres", client.DB()),
		metrics: metrics,
	}
}

var _ repositories.AccommodationRepository = (*AccommodationAdapter)(nil)

// ListCandidates pushes down only budget overlap and the locked city; every
// other rule is left to the recommendation pipeline.
func (a *AccommodationAdapter) ListCandidates(ctx context.Context, filter repositories.CandidateFilter) ([]*entities.Accommodation, error) {
	ctx, span := observability.StartSpan(ctx, "db.accommodations.list_candidates")
	defer span.End()
	start := time.Now()
	defer func() { a.metrics.RecordDBQuery(ctx, "list_accommodations", time.Since(start)) }()

	ds := a.db.From(goqu.T("accommodations").As("a")).
		LeftJoin(
			goqu.T("accommodation_providers").As("ap"),
			goqu.On(goqu.I("a.provider_id").Eq(goqu.I("ap.provider_id"))),
		).
		Select(
			goqu.I("a.id"),
			goqu.I("a.name"),
			goqu.I("a.type"),
			goqu.I("a.amenities"),
			goqu.I("a.rating"),
			goqu.I("a.district"),
			goqu.I("a.province"),
			goqu.I("a.price_range_min"),
			goqu.I("a.price_range_max"),
			goqu.I("a.interests"),
			goqu.I("a.travel_style"),
			goqu.I("a.group_size"),
			goqu.I("a.prior_bookings"),
			goqu.I("a.availability"),
			goqu.I("ap.company_name").As("provider_name"),
		)

	if filter.BudgetMax > 0 {
		ds = ds.Where(
			goqu.I("a.price_range_min").Lte(filter.BudgetMax),
			goqu.I("a.price_range_max").Gte(filter.BudgetMin),
		)
	}
	if city := strings.TrimSpace(filter.City); city != "" {
		ds = ds.Where(goqu.Func("LOWER", goqu.I("a.district")).Eq(strings.ToLower(city)))
	}
	ds = ds.Order(goqu.I("a.id").Asc())

	query, args, err := ds.ToSQL()
	if err != nil {
		observability.RecordError(span, err)
		return nil, apperrors.NewInternalError("failed to build accommodation candidate query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		observability.RecordError(span, err)
		return nil, apperrors.NewExternalError("failed to list accommodation candidates", err)
	}
	defer rows.Close()

	var out []*entities.Accommodation
	for rows.Next() {
		acc := &entities.Accommodation{Available: true, Origin: entities.OriginLive}
		var (
			rating, priceMin, priceMax  sql.NullFloat64
			district, province, company sql.NullString
			groupSize, bookings         sql.NullInt64
			available                   sql.NullBool
		)

		err := rows.Scan(
			&acc.ID,
			&acc.Name,
			pq.Array(&acc.Types),
			pq.Array(&acc.Amenities),
			&rating,
			&district,
			&province,
			&priceMin,
			&priceMax,
			pq.Array(&acc.Interests),
			pq.Array(&acc.TravelStyles),
			&groupSize,
			&bookings,
			&available,
			&company,
		)
		if err != nil {
			observability.RecordError(span, err)
			return nil, apperrors.NewInternalError("failed to scan accommodation candidate", err)
		}

		if rating.Valid {
			r := rating.Float64
			acc.Rating = &r
		}
		acc.City = district.String
		acc.Province = province.String
		acc.PriceRangeMin = priceMin.Float64
		acc.PriceRangeMax = priceMax.Float64
		acc.Capacity = 1
		if groupSize.Valid && groupSize.Int64 > 0 {
			acc.Capacity = int(groupSize.Int64)
		}
		if bookings.Valid && bookings.Int64 > 0 {
			acc.PriorBookings = int(bookings.Int64)
		}
		if available.Valid {
			acc.Available = available.Bool
		}
		acc.ProviderName = company.String

		out = append(out, acc)
	}
	if err := rows.Err(); err != nil {
		observability.RecordError(span, err)
		return nil, apperrors.NewExternalError("failed to iterate accommodation candidates", err)
	}

	return out, nil
}

// Insert writes accommodations (used by the seeder).
func (a *AccommodationAdapter) Insert(ctx context.Context, items []*entities.Accommodation) error {
	if len(items) == 0 {
		return nil
	}
	records := make([]interface{}, 0, len(items))
	for _, acc := range items {
		records = append(records, goqu.Record{
			"id":              acc.ID,
			"name":            acc.Name,
			"type":            pq.Array(acc.Types),
			"amenities":       pq.Array(acc.Amenities),
			"rating":          nullFloat(acc.Rating),
			"district":        acc.City,
			"province":        acc.Province,
			"price_range_min": acc.PriceRangeMin,
			"price_range_max": acc.PriceRangeMax,
			"interests":       pq.Array(acc.Interests),
			"travel_style":    pq.Array(acc.TravelStyles),
			"group_size":      acc.Capacity,
			"prior_bookings":  acc.PriorBookings,
			"availability":    acc.Available,
		})
	}

	query, args, err := a.db.Insert("accommodations").Rows(records...).OnConflict(goqu.DoNothing()).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build accommodation insert query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewExternalError("failed to insert accommodations", err)
	}
	return nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
