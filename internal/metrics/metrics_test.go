package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordNotification(t *testing.T) {
	counter := NotificationsProcessed.WithLabelValues("customer", "deliver_card", OutcomeDelivered)
	before := testutil.ToFloat64(counter)

	RecordNotification("customer", "deliver_card", OutcomeDelivered)
	RecordNotification("customer", "deliver_card", OutcomeDelivered)

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestReservationConflicts(t *testing.T) {
	before := testutil.ToFloat64(ReservationConflicts)
	ReservationConflicts.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ReservationConflicts))
}
