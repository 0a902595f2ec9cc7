package entities

import "testing"

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   string
	}{
		{"known status", StatusProcessing, "Uw bestelling wordt verwerkt."},
		{"ready status", StatusReady, "Uw bestelling is gereed."},
		{"unknown status passes through raw", Status("Speciale afspraak"), "Speciale afspraak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Message(); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatusKnown(t *testing.T) {
	for _, s := range []Status{
		StatusPending, StatusNew, StatusProcessing, StatusProcessed,
		StatusInProduction, StatusReady, StatusDeliveryCall,
	} {
		if !s.Known() {
			t.Errorf("expected %q to be known", s)
		}
	}
	if Status("verzonnen").Known() {
		t.Error("expected unknown status to report Known() == false")
	}
}
