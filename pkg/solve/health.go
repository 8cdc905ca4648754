package solve

// Health reports liveness and the solver's version string (spec.md §6).
func Health() HealthResponse {
	return HealthResponse{Alive: true, Version: Version}
}
