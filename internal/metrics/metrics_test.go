package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			var sum float64
			for _, m := range mf.GetMetric() {
				sum += m.GetCounter().GetValue()
			}
			return sum
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestRecordHTTPStatus_LabelsByCode(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(401)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "healthchain_http_status_total" {
			continue
		}
		if len(mf.GetMetric()) != 2 {
			t.Fatalf("label combinations = %d, want 2", len(mf.GetMetric()))
		}
		for _, m := range mf.GetMetric() {
			label := m.GetLabel()[0].GetValue()
			val := m.GetCounter().GetValue()
			if label == "200" && val != 2 {
				t.Errorf("status 200 = %v, want 2", val)
			}
			if label == "401" && val != 1 {
				t.Errorf("status 401 = %v, want 1", val)
			}
		}
		return
	}
	t.Error("healthchain_http_status_total not found")
}

func TestRecordLogin_SplitsByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLogin(true)
	c.RecordLogin(true)
	c.RecordLogin(false)

	if got := counterValue(t, reg, "healthchain_login_success_total"); got != 2 {
		t.Errorf("login_success = %v, want 2", got)
	}
	if got := counterValue(t, reg, "healthchain_login_fail_total"); got != 1 {
		t.Errorf("login_fail = %v, want 1", got)
	}
}

func TestRecordClaimCreated_CountsAndObserves(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordClaimCreated(5_750_000)
	c.RecordClaimCreated(120_000)

	if got := counterValue(t, reg, "healthchain_claims_created_total"); got != 2 {
		t.Errorf("claims_created = %v, want 2", got)
	}

	families, _ := reg.Gather()
	for _, mf := range families {
		if mf.GetName() == "healthchain_claim_amount_idr" {
			h := mf.GetMetric()[0].GetHistogram()
			if h.GetSampleCount() != 2 {
				t.Errorf("sample_count = %d, want 2", h.GetSampleCount())
			}
			if h.GetSampleSum() != 5_870_000 {
				t.Errorf("sample_sum = %v, want 5870000", h.GetSampleSum())
			}
			return
		}
	}
	t.Error("healthchain_claim_amount_idr not found")
}

func TestHandler_ExposesPrometheusFormat(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSignup("peserta")
	c.RecordClaimStatus("approved")
	c.RecordHTTPStatus(200)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	for _, name := range []string{
		"healthchain_signups_total",
		"healthchain_claim_status_total",
		"healthchain_http_status_total",
	} {
		if !strings.Contains(string(body), name) {
			t.Errorf("scrape output missing %s", name)
		}
	}
}
