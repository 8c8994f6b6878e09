package queries_test

import (
	"testing"
	"time"

	"foodcourt/internal/core/application/usecases/queries"
	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/ports"
	"foodcourt/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderHistoryQuery(t *testing.T) {
	t.Run("accepts_unconstrained_filter", func(t *testing.T) {
		q, err := queries.NewGetOrderHistoryQuery(kernel.NewUUID(), ports.HistoryFilter{})
		require.NoError(t, err)
		require.NoError(t, q.Validate())
	})

	t.Run("accepts_full_filter", func(t *testing.T) {
		minTotal, maxTotal := 10.0, 100.0
		from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0)

		q, err := queries.NewGetOrderHistoryQuery(kernel.NewUUID(), ports.HistoryFilter{
			Query:    "maria",
			MinTotal: &minTotal,
			MaxTotal: &maxTotal,
			From:     &from,
			To:       &to,
		})
		require.NoError(t, err)
		assert.Equal(t, "maria", q.Filter().Query)
	})

	t.Run("rejects_inverted_total_bounds", func(t *testing.T) {
		minTotal, maxTotal := 100.0, 10.0
		_, err := queries.NewGetOrderHistoryQuery(kernel.NewUUID(), ports.HistoryFilter{
			MinTotal: &minTotal,
			MaxTotal: &maxTotal,
		})
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects_inverted_time_window", func(t *testing.T) {
		from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, -1, 0)
		_, err := queries.NewGetOrderHistoryQuery(kernel.NewUUID(), ports.HistoryFilter{
			From: &from,
			To:   &to,
		})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_invalid_restaurant_id", func(t *testing.T) {
		_, err := queries.NewGetOrderHistoryQuery(kernel.UUID{}, ports.HistoryFilter{})
		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var q queries.GetOrderHistoryQuery
		require.ErrorIs(t, q.Validate(), queries.ErrGetOrderHistoryQueryIsNotConstructed)
	})
}
