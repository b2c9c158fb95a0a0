package billing

import (
	"fmt"
	"time"
)

// testEngine returns an engine pinned to the given date with sequential ids,
// so every operation is reproducible.
func testEngine(today string) *Engine {
	fixed, err := time.Parse(dateLayout, today)
	if err != nil {
		panic(err)
	}
	seq := 0
	return NewEngine(
		WithClock(func() time.Time { return fixed }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)
}
