package database

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceylontrails/travelmatch/internal/domain/entities"
	"github.com/ceylontrails/travelmatch/internal/domain/repositories"
	"github.com/ceylontrails/travelmatch/internal/infrastructure/clients/postgres"
	apperrors "github.com/ceylontrails/travelmatch/pkg/errors"
)

func queryPattern(fragments ...string) string {
	quoted := make([]string, len(fragments))
	for i, f := range fragments {
		quoted[i] = regexp.QuoteMeta(f)
	}
	return strings.Join(quoted, ".*")
}

func newMockClient(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return postgres.NewClientFromDB(db), mock
}

func TestAccommodationAdapter_ListCandidates(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewAccommodationAdapter(client, nil)

	rows := sqlmock.NewRows([]string{
		"id", "name", "type", "amenities", "rating", "district", "province",
		"price_range_min", "price_range_max", "interests", "travel_style",
		"group_size", "prior_bookings", "availability", "provider_name",
	}).
		AddRow("a1", "Lagoon Villa", "{villa}", "{wifi,pool}", 4.5, "Galle", "Southern",
			5000.0, 9000.0, "{beach}", "{luxury}", int64(4), int64(12), true, "Lagoon Co").
		AddRow("a2", "Hill Hut", "{}", "{}", nil, "Ella", nil,
			1000.0, 2000.0, "{}", "{}", nil, nil, nil, nil)

	mock.ExpectQuery(queryPattern(
		`FROM "accommodations" AS "a" LEFT JOIN "accommodation_providers" AS "ap"`,
		`"a"."price_range_min" <=`,
		`LOWER("a"."district") = 'galle'`,
	)).WillReturnRows(rows)

	got, err := adapter.ListCandidates(context.Background(), repositories.CandidateFilter{
		BudgetMin: 700, BudgetMax: 10000, City: "Galle",
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, "a1", first.ID)
	assert.Equal(t, []string{"villa"}, first.Types)
	assert.Equal(t, []string{"wifi", "pool"}, first.Amenities)
	require.NotNil(t, first.Rating)
	assert.Equal(t, 4.5, *first.Rating)
	assert.Equal(t, "Galle", first.City)
	assert.Equal(t, 4, first.Capacity)
	assert.Equal(t, 12, first.PriorBookings)
	assert.Equal(t, "Lagoon Co", first.ProviderName)
	assert.True(t, first.Available)
	assert.Equal(t, entities.OriginLive, first.Origin)

	second := got[1]
	assert.Nil(t, second.Rating)
	assert.Equal(t, 1, second.Capacity)
	assert.True(t, second.Available)
	assert.Empty(t, second.Province)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccommodationAdapter_QueryFailureIsExternal(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewAccommodationAdapter(client, nil)

	mock.ExpectQuery(`FROM "accommodations"`).WillReturnError(errors.New("connection reset"))

	_, err := adapter.ListCandidates(context.Background(), repositories.CandidateFilter{BudgetMin: 1, BudgetMax: 2})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
}

func TestGuideAdapter_ListCandidates(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewGuideAdapter(client, nil)

	rows := sqlmock.NewRows([]string{
		"id", "name", "experience", "languages", "expertise", "rating", "price",
		"availability", "city", "province", "gender", "prior_bookings",
	}).
		AddRow("g1", "Nimal Perera", `{"12 years guiding"}`, "{English,Sinhala}", "{history}", 4.7, 6000.0,
			true, "Kandy", "Central", "male", int64(30)).
		AddRow("g2", nil, "{}", "{Tamil}", "{}", nil, nil,
			false, nil, nil, nil, nil)

	mock.ExpectQuery(queryPattern(
		`FROM "guides" AS "g" LEFT JOIN "users" AS "u"`,
		`"g"."price" >=`,
		`ORDER BY "g"."user_id" ASC`,
	)).WillReturnRows(rows)

	got, err := adapter.ListCandidates(context.Background(), repositories.CandidateFilter{BudgetMin: 2000, BudgetMax: 20000})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Nimal Perera", got[0].Name)
	assert.Equal(t, []string{"12 years guiding"}, got[0].Experience)
	assert.Equal(t, []string{"English", "Sinhala"}, got[0].Languages)
	assert.Equal(t, 6000.0, got[0].Price)
	assert.Equal(t, 30, got[0].PriorBookings)
	assert.Equal(t, entities.OriginLive, got[0].Origin)

	assert.False(t, got[1].Available)
	assert.Nil(t, got[1].Rating)
	assert.Equal(t, 0.0, got[1].Price)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGuideAdapter_InsertCommits(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewGuideAdapter(client, nil)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "guides"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := adapter.Insert(context.Background(), []*entities.Guide{{
		ID: "g1", Name: "Kumari", Languages: []string{"English"}, Price: 4000, Available: true,
	}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	client, mock := newMockClient(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS accommodation_providers`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureSchema(context.Background(), client))
	assert.NoError(t, mock.ExpectationsWereMet())
}
