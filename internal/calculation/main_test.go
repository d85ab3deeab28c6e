package calculation

import (
	"testing"

	"go.uber.org/goleak"
)

// RunWorksheet fans out goroutines; every one must have exited by the end
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
