//go:build debug

package sim

import (
	"github.com/latticesoup/latticesoup/gridsim"
	"github.com/latticesoup/latticesoup/simlog"
)

// assertGridInvariants runs Cell.Validate over every cell and logs any
// violation found. Only compiled into debug builds (`go build -tags
// debug`); the default build links the no-op stub in
// debug_release.go instead, so the hot path pays nothing for it.
func (s *Scheduler) assertGridInvariants(context string) {
	s.grid.Each(func(x, y int, c *gridsim.Cell) {
		if err := c.Validate(); err != nil {
			simlog.Logf("sim: invariant violation at (%d,%d) %s: %v", x, y, context, err)
		}
	})
}
