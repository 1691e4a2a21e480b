package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

// gatherFamily returns the named metric family or nil.
func gatherFamily(t *testing.T, r *Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := r.Gatherer().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestNewRegistry_AllMetricsRegistered(t *testing.T) {
	r := NewRegistry()
	r.UpdateSystemMetrics()

	for _, name := range []string{
		"biztrace_resolution_duration_seconds",
		"biztrace_graph_builds_total",
		"biztrace_graph_nodes",
		"biztrace_validations_total",
		"biztrace_uptime_seconds",
		"biztrace_goroutines",
		"biztrace_memory_alloc_bytes",
	} {
		// Counters without observations still expose a family once touched;
		// force one observation for the untouched ones.
		switch name {
		case "biztrace_graph_builds_total":
			r.GraphBuildsTotal.Add(0)
		case "biztrace_validations_total":
			r.ValidationsTotal.Add(0)
		}
		if gatherFamily(t, r, name) == nil {
			t.Errorf("Expected metric family %s to be registered", name)
		}
	}
}

func TestRecordResolution(t *testing.T) {
	r := NewRegistry()

	r.RecordResolution("success", 3, 50*time.Millisecond)
	r.RecordResolution("success", 2, 30*time.Millisecond)
	r.RecordResolution("error", 0, 5*time.Millisecond)

	mf := gatherFamily(t, r, "biztrace_resolutions_total")
	if mf == nil {
		t.Fatal("Missing resolutions counter")
	}
	byStatus := map[string]float64{}
	for _, m := range mf.GetMetric() {
		for _, lp := range m.GetLabel() {
			if lp.GetName() == "status" {
				byStatus[lp.GetValue()] = m.GetCounter().GetValue()
			}
		}
	}
	if byStatus["success"] != 2 || byStatus["error"] != 1 {
		t.Errorf("Unexpected status counts: %v", byStatus)
	}

	hist := gatherFamily(t, r, "biztrace_layers_resolved")
	if hist == nil {
		t.Fatal("Missing layers histogram")
	}
	if got := hist.GetMetric()[0].GetHistogram().GetSampleCount(); got != 3 {
		t.Errorf("Expected 3 layer observations, got %d", got)
	}
}

func TestRecordGraphBuild(t *testing.T) {
	r := NewRegistry()

	r.RecordGraphBuild(42, 57, 10*time.Millisecond)

	nodes := gatherFamily(t, r, "biztrace_graph_nodes")
	if got := nodes.GetMetric()[0].GetGauge().GetValue(); got != 42 {
		t.Errorf("Expected 42 nodes, got %v", got)
	}
	edges := gatherFamily(t, r, "biztrace_graph_edges")
	if got := edges.GetMetric()[0].GetGauge().GetValue(); got != 57 {
		t.Errorf("Expected 57 edges, got %v", got)
	}

	// Gauges track the latest build, not a running total.
	r.RecordGraphBuild(10, 9, time.Millisecond)
	nodes = gatherFamily(t, r, "biztrace_graph_nodes")
	if got := nodes.GetMetric()[0].GetGauge().GetValue(); got != 10 {
		t.Errorf("Expected gauge to reflect latest build, got %v", got)
	}
}

func TestRecordValidation(t *testing.T) {
	r := NewRegistry()

	r.RecordValidation(2, 5)

	mf := gatherFamily(t, r, "biztrace_validation_issues_total")
	bySeverity := map[string]float64{}
	for _, m := range mf.GetMetric() {
		for _, lp := range m.GetLabel() {
			if lp.GetName() == "severity" {
				bySeverity[lp.GetValue()] = m.GetCounter().GetValue()
			}
		}
	}
	if bySeverity["error"] != 2 || bySeverity["warning"] != 5 {
		t.Errorf("Unexpected severity counts: %v", bySeverity)
	}
}

func TestRecordQuery(t *testing.T) {
	r := NewRegistry()

	r.RecordQuery("path", 2*time.Millisecond)
	r.RecordQuery("path", 3*time.Millisecond)
	r.RecordQuery("traverse", time.Millisecond)

	mf := gatherFamily(t, r, "biztrace_queries_total")
	total := 0.0
	for _, m := range mf.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	if total != 3 {
		t.Errorf("Expected 3 queries recorded, got %v", total)
	}
}

func TestHandler_Exposition(t *testing.T) {
	r := NewRegistry()
	r.RecordGraphBuild(5, 4, time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "biztrace_graph_nodes 5") {
		t.Errorf("Expected exposition to contain graph node gauge, got:\n%s", body)
	}
}

func TestDefaultRegistry_Singleton(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("Expected the same registry instance")
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	r := NewRegistry()

	r.RecordHTTPRequest("POST", "/graphql", "200", time.Millisecond)

	mf := gatherFamily(t, r, "biztrace_http_requests_total")
	if mf == nil || len(mf.GetMetric()) != 1 {
		t.Fatalf("Expected 1 labelled series, got %v", mf)
	}
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 1 {
		t.Errorf("Expected counter 1, got %v", got)
	}
}
