package testutil

import (
	"os"
	"testing"
)

// RequireIntegration skips t unless STOREFRONT_INTEGRATION=1, since the
// integration suite needs a Docker daemon.
func RequireIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("STOREFRONT_INTEGRATION") != "1" {
		t.Skip("set STOREFRONT_INTEGRATION=1 to run container-backed tests")
	}
}
