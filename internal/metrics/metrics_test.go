package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rentalog/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMiddleware(t *testing.T) {
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/units/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, path := range []string{"/units/1", "/units/2", "/missing"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/units/:id", "204")); got != 2 {
		t.Errorf("expected 2 requests on route template, got %v", got)
	}
	if got := testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Errorf("expected 1 unmatched request, got %v", got)
	}
}

func TestRecordLogEntries(t *testing.T) {
	m := New()
	m.RecordLogEntries(models.LogActionUpdate, 3)
	m.RecordLogEntries(models.LogActionUpdate, 0)
	m.RecordLogEntries(models.LogActionCreate, 1)

	if got := testutil.ToFloat64(m.changeLogEntries.WithLabelValues("update")); got != 3 {
		t.Errorf("expected 3 update entries, got %v", got)
	}
	if got := testutil.ToFloat64(m.changeLogEntries.WithLabelValues("create")); got != 1 {
		t.Errorf("expected 1 create entry, got %v", got)
	}
}

func TestGetHandler(t *testing.T) {
	m := New()
	m.RecordLogEntries(models.LogActionCreate, 1)

	r := gin.New()
	GetHandler(r.Group(""), m)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `rentalog_rental_log_entries_total{action="create"} 1`) {
		t.Errorf("expected change-log counter in scrape output")
	}
}
