package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"

	"newsdesk/internal/repository"
)

func TestUpdateSavedArticlesTotal(t *testing.T) {
	UpdateSavedArticlesTotal(42)
	assert.Equal(t, 42.0, testutil.ToFloat64(SavedArticlesTotal))

	UpdateSavedArticlesTotal(0)
	assert.Equal(t, 0.0, testutil.ToFloat64(SavedArticlesTotal))
}

func TestStoreOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "success"},
		{"unavailable", fmt.Errorf("ListAll: %w", repository.ErrUnavailable), "unavailable"},
		{"other", errors.New("constraint violated"), "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, storeOutcome(tt.err))
		})
	}
}

func TestRecordStoreOperation(t *testing.T) {
	before := testutil.CollectAndCount(StoreOperationDuration)
	assert.NotPanics(t, func() {
		RecordStoreOperation("test_op_unique", 5*time.Millisecond, nil)
	})
	assert.Equal(t, before+1, testutil.CollectAndCount(StoreOperationDuration))
}

func TestRecordStoreOperation_Buckets(t *testing.T) {
	RecordStoreOperation("bucket_probe", 3*time.Millisecond, repository.ErrUnavailable)
	RecordStoreOperation("bucket_probe", 3*time.Millisecond, repository.ErrUnavailable)

	m := &dto.Metric{}
	obs := StoreOperationDuration.WithLabelValues("bucket_probe", "unavailable")
	if err := obs.(prometheus.Metric).Write(m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	h := m.GetHistogram()
	assert.Equal(t, uint64(2), h.GetSampleCount())
	assert.InDelta(t, 0.006, h.GetSampleSum(), 1e-9)
	// 3ms lands above the 1ms and 2ms buckets
	assert.Equal(t, uint64(0), h.GetBucket()[1].GetCumulativeCount())
	assert.Equal(t, uint64(2), h.GetBucket()[2].GetCumulativeCount())
}

func TestRecordStatsRefresh(t *testing.T) {
	failures := testutil.ToFloat64(StatsRefreshTotal.WithLabelValues("failure"))
	RecordStatsRefresh(false, time.Now())
	assert.Equal(t, failures+1, testutil.ToFloat64(StatsRefreshTotal.WithLabelValues("failure")))

	at := time.Date(2025, 11, 16, 9, 0, 0, 0, time.UTC)
	RecordStatsRefresh(true, at)
	assert.Equal(t, float64(at.Unix()), testutil.ToFloat64(StatsLastSuccess))
}
