package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordOutcome(t *testing.T) {
	before := testutil.ToFloat64(resetPINOutcomesTotal.WithLabelValues(OutcomeSent))
	RecordOutcome(OutcomeSent)
	after := testutil.ToFloat64(resetPINOutcomesTotal.WithLabelValues(OutcomeSent))

	assert.Equal(t, before+1, after)
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "405"))
	RecordHTTPRequest("POST", http.StatusMethodNotAllowed)
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "405"))

	assert.Equal(t, before+1, after)
}

func TestHandler_ExposesMetrics(t *testing.T) {
	RecordSendDuration(250 * time.Millisecond)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "reset_pin_email_send_duration_seconds")
}
