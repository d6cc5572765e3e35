package sweep

type SweeperBuilderOption func(*sweeperImpl)

// WithWorkers sets the number of pool workers running simulations.
//
// Parameters:
//   - n: worker count, values below 1 are ignored
//
// Returns:
//   - SweeperBuilderOption: a function that applies the worker count
func WithWorkers(n int) SweeperBuilderOption {
	return func(s *sweeperImpl) {
		if n >= 1 {
			s.workers = n
		}
	}
}

// WithTimeStep sets the simulated frame time in seconds.
//
// Parameters:
//   - dt: frame time, values not above zero are ignored
//
// Returns:
//   - SweeperBuilderOption: a function that applies the time step
func WithTimeStep(dt float64) SweeperBuilderOption {
	return func(s *sweeperImpl) {
		if dt > 0 {
			s.dt = dt
		}
	}
}

// WithMaxDuration caps how long one simulation may run, in simulated seconds.
//
// Parameters:
//   - seconds: simulated time budget, values not above zero are ignored
//
// Returns:
//   - SweeperBuilderOption: a function that applies the budget
func WithMaxDuration(seconds float64) SweeperBuilderOption {
	return func(s *sweeperImpl) {
		if seconds > 0 {
			s.maxDuration = seconds
		}
	}
}
