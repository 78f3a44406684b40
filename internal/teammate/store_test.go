package teammate

import "testing"

// setupTestDir creates a temporary teams directory and overrides
// teamsBaseDirFunc for the duration of the test.
func setupTestDir(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()

	orig := teamsBaseDirFunc
	teamsBaseDirFunc = func() string { return tmpDir }
	t.Cleanup(func() { teamsBaseDirFunc = orig })
}
