package plan

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// testNow is a Wednesday; the following Monday is 2026-02-09 (ISO week 7)
var testNow = time.Date(2026, time.February, 4, 10, 30, 0, 0, time.UTC)

// testClock is a settable clock for factories under test
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

// newTestFactory returns a factory with a fixed clock and sequential ids
func newTestFactory() (*Factory, *testClock) {
	clock := &testClock{now: testNow}
	n := 0
	return &Factory{
		Now: clock.Now,
		NewID: func() string {
			n++
			return fmt.Sprintf("gen-%d", n)
		},
	}, clock
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
