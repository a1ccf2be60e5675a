package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveFetch_CountsByStatus(t *testing.T) {
	okBefore := testutil.ToFloat64(FetchRequests.WithLabelValues("native", "ok"))
	errBefore := testutil.ToFloat64(FetchRequests.WithLabelValues("native", "error"))

	ObserveFetch("native", time.Now(), nil)
	ObserveFetch("native", time.Now(), errors.New("boom"))
	ObserveFetch("native", time.Now(), nil)

	if got := testutil.ToFloat64(FetchRequests.WithLabelValues("native", "ok")) - okBefore; got != 2 {
		t.Errorf("expected 2 ok calls, got %v", got)
	}
	if got := testutil.ToFloat64(FetchRequests.WithLabelValues("native", "error")) - errBefore; got != 1 {
		t.Errorf("expected 1 failed call, got %v", got)
	}
}

func TestMustRegisterMetrics_IsIdempotent(t *testing.T) {
	MustRegisterMetrics()
	MustRegisterMetrics()
}
