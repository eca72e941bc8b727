//go:build !debug

package sim

// assertGridInvariants is a no-op outside debug builds.
func (s *Scheduler) assertGridInvariants(context string) {}
