package selection

import (
	"bytes"
	"strings"

	"github.com/dshills/textsel/internal/logging"
)

type testWriter struct {
	bytes.Buffer
}

func (w *testWriter) contains(s string) bool {
	return strings.Contains(w.String(), s)
}

func newTestLogger(w *testWriter) *logging.Logger {
	return logging.New(logging.Config{Level: logging.LevelDebug, Output: w})
}
