package log

import "testing"

func TestInitAndHelpers(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
	}{
		{"production mode", false},
		{"development mode", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Init(tt.debug); err != nil {
				t.Fatalf("Init(%v) returned error: %v", tt.debug, err)
			}
			if GetSugaredLogger() == nil {
				t.Fatal("GetSugaredLogger returned nil after Init")
			}

			// Helpers must be safe to call once the logger is set up.
			Debugf("debug message %d", 1)
			Infof("info message %d", 2)
			Errorf("error message %d", 3)
			Sync()
		})
	}
}

func TestGetSugaredLoggerFallback(t *testing.T) {
	log = nil
	baseLogger = nil

	if GetSugaredLogger() == nil {
		t.Fatal("GetSugaredLogger returned nil without prior Init")
	}

	// The fallback must also keep the helpers usable.
	Errorf("fallback logger in use")
}
