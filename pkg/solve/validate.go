package solve

import "github.com/behrlich/gto-solver/pkg/bettingtree"

// nodesPerSecond is a fixed calibration constant used to translate a node
// estimate into an estimated wall-clock training time. It is deliberately
// conservative; ValidateConfig is meant to warn, not to promise a number a
// caller can hold the solver to.
const nodesPerSecond = 50_000.0

// targetTrainingSeconds is the wall-clock budget RecommendedIterations is
// calibrated against.
const targetTrainingSeconds = 30.0

// minRecommendedIterations floors RecommendedIterations so tiny trees still
// get enough iterations to converge.
const minRecommendedIterations = 1_000

// ValidateConfig estimates the cost of a betting configuration without
// building the tree, using the same closed-form node-count bound
// bettingtree.Builder.Build checks before materializing anything (spec.md
// §6).
func ValidateConfig(req ConfigValidationRequest) ConfigValidationResponse {
	cfg := toBettingConfig(req.StartingStack, req.PotSize, req.BetSizes, req.MaxBetsPerStreet, req.MaxBets, req.AllowAllIn, req.MinRaiseSize)

	var warnings []string
	if err := cfg.Validate(); err != nil {
		return ConfigValidationResponse{
			IsValid:  false,
			Warnings: []string{err.Error()},
		}
	}

	estimated := bettingtree.EstimateNodes(cfg)

	isValid := true
	if estimated > bettingtree.NodeCeiling {
		isValid = false
		warnings = append(warnings, (&bettingtree.TreeTooLargeError{Estimated: estimated, Ceiling: bettingtree.NodeCeiling}).Error())
	}

	estimatedSeconds := float64(estimated) / nodesPerSecond

	recommended := minRecommendedIterations
	if estimated > 0 {
		budgetIterations := int(targetTrainingSeconds * nodesPerSecond / float64(estimated))
		if budgetIterations > recommended {
			recommended = budgetIterations
		}
	}

	return ConfigValidationResponse{
		IsValid:                      isValid,
		Warnings:                     warnings,
		EstimatedNodes:               estimated,
		EstimatedTrainingTimeSeconds: estimatedSeconds,
		RecommendedIterations:        recommended,
	}
}
