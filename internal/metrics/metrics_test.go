package metrics

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordMatch(t *testing.T) {
	beforeErr := testutil.ToFloat64(MatchErrors.WithLabelValues("subset"))

	RecordMatch("subset", "global", 3, 2*time.Millisecond, nil)
	RecordMatch("subset", "fridge", 0, time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(MatchErrors.WithLabelValues("subset")); got != beforeErr+1 {
		t.Fatalf("expected one more match error, got %v (before %v)", got, beforeErr)
	}
	if n := testutil.CollectAndCount(MatchDuration); n < 2 {
		t.Fatalf("expected duration series for both scopes, got %d", n)
	}
}

func TestRecordUnknownIngredients(t *testing.T) {
	before := testutil.ToFloat64(UnknownIngredients)
	RecordUnknownIngredients(0)
	RecordUnknownIngredients(2)
	if got := testutil.ToFloat64(UnknownIngredients); got != before+2 {
		t.Fatalf("expected %v, got %v", before+2, got)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		endpoint string
		code     int
	}{
		{"search ok", "GET", "/api/v1/search", 200},
		{"search invalid", "GET", "/api/v1/search", 400},
		{"missing recipe", "GET", "/api/v1/recipes/{slug}", 404},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, strconv.Itoa(tt.code))
			before := testutil.ToFloat64(c)
			RecordAPIRequest(tt.method, tt.endpoint, tt.code, 10*time.Millisecond)
			if got := testutil.ToFloat64(c); got != before+1 {
				t.Fatalf("expected counter %v, got %v", before+1, got)
			}
		})
	}
}

func TestRecordRateLimitHit(t *testing.T) {
	c := APIRateLimitHits.WithLabelValues("/api/v1/search")
	before := testutil.ToFloat64(c)
	RecordRateLimitHit("/api/v1/search")
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Fatalf("expected %v, got %v", before+1, got)
	}
}
