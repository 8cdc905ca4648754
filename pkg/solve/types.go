package solve

import (
	"github.com/google/uuid"

	"github.com/behrlich/gto-solver/pkg/bettingtree"
	"github.com/behrlich/gto-solver/pkg/cfr"
)

// SolveRequest is the boundary type for a solve call (spec.md §6). Field
// names mirror the request an HTTP/CLI transport would decode into this
// struct; this module owns none of that transport.
type SolveRequest struct {
	RequestID uuid.UUID

	OopRange string
	IpRange  string

	StartingStack float64
	PotSize       float64

	BoardCards string
	Street     string

	Iterations int
	Seed       *int64

	BetSizes         []float64
	MaxBetsPerStreet map[string]int
	MaxBets          int
	AllowAllIn       bool
	MinRaiseSize     float64

	RegretMatchingPlus bool
	ConvergenceEvery   int
	Workers            int
}

// SolveResponse is the boundary type for a completed (or cancelled) solve
// (spec.md §6).
type SolveResponse struct {
	RequestID uuid.UUID

	OopStrategy map[string]map[string]float64
	IpStrategy  map[string]map[string]float64

	TrainingIterations     int
	ComputationTimeSeconds float64
	NodesCount             int64
	FinalConvergence       float64
	ConvergenceHistory     []cfr.ConvergencePoint
	BoardTexture           []string
	BetSizesUsed           []float64
	MaxBetsPerStreetUsed   map[string]int
}

// ConfigValidationRequest carries the betting subset of SolveRequest
// (spec.md §6).
type ConfigValidationRequest struct {
	StartingStack float64
	PotSize       float64

	BetSizes         []float64
	MaxBetsPerStreet map[string]int
	MaxBets          int
	AllowAllIn       bool
	MinRaiseSize     float64
}

// ConfigValidationResponse reports whether a betting configuration is
// buildable and, if so, an estimate of its cost (spec.md §6).
type ConfigValidationResponse struct {
	IsValid                      bool
	Warnings                     []string
	EstimatedNodes               int64
	EstimatedTrainingTimeSeconds float64
	RecommendedIterations        int
}

// HealthResponse reports liveness and the solver's version (spec.md §6).
type HealthResponse struct {
	Alive   bool
	Version string
}

// Version is the solver package version.
const Version = "1.0"

// toStreet maps the request's street string to bettingtree.Street.
func toStreet(s string) (bettingtree.Street, bool) {
	switch s {
	case "preflop":
		return bettingtree.Preflop, true
	case "flop":
		return bettingtree.Flop, true
	case "turn":
		return bettingtree.Turn, true
	case "river":
		return bettingtree.River, true
	default:
		return 0, false
	}
}

// toBettingConfig assembles a bettingtree.BettingConfig from the shared
// request fields, applying MaxBets as a uniform per-street fallback when
// MaxBetsPerStreet is not supplied for a given street.
func toBettingConfig(startingStack, potSize float64, betSizes []float64, maxBetsPerStreet map[string]int, maxBets int, allowAllIn bool, minRaiseSize float64) bettingtree.BettingConfig {
	caps := make(map[bettingtree.Street]int)
	for _, street := range []bettingtree.Street{bettingtree.Preflop, bettingtree.Flop, bettingtree.Turn, bettingtree.River} {
		if v, ok := maxBetsPerStreet[street.String()]; ok {
			caps[street] = v
		} else if maxBets > 0 {
			caps[street] = maxBets
		}
	}
	return bettingtree.BettingConfig{
		BetSizes:         betSizes,
		MaxBetsPerStreet: caps,
		AllowAllIn:       allowAllIn,
		MinRaiseSize:     minRaiseSize,
		StartingStack:    startingStack,
		PotSize:          potSize,
	}
}
