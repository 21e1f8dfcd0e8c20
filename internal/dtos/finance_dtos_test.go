package dtos

import (
	"testing"

	"github.com/mansionmuse/backend/internal/models"
)

func TestDisplayStatusCapitalizes(t *testing.T) {
	cases := map[models.RecordStatusType]string{
		models.RecordStatusPending:      "Pending",
		models.RecordStatusPaid:        "Paid",
		models.RecordStatusOverdue:     "Overdue",
		models.RecordStatusFailed:      "Failed",
		models.RecordStatusType("PAID"): "Paid",
		models.RecordStatusType(""):     "",
	}
	for in, want := range cases {
		if got := DisplayStatus(in); got != want {
			t.Errorf("DisplayStatus(%q) = %q, want %q", in, got, want)
		}
	}
}
