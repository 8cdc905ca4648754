// Command gtosolver is a small CLI front end over pkg/solve's three
// boundary calls: solve, validate, and health.
package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/behrlich/gto-solver/pkg/solve"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9A825"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
)

// bettingFlags is the betting-configuration subset shared by the solve and
// validate subcommands, mirroring spec.md §6's config-validation request.
type bettingFlags struct {
	StartingStack    float64 `help:"Starting effective stack." default:"100"`
	PotSize          float64 `help:"Pot size before any action." default:"1.5"`
	BetSizes         string  `help:"Comma-separated pot fractions, e.g. \"0.5,1.0\"." default:"0.5,1.0"`
	MaxBets          int     `help:"Uniform per-street bet/raise cap, overridden by --max-bets-per-street." default:"3"`
	MaxBetsPerStreet string  `help:"Per-street caps, e.g. \"preflop=3,flop=3,turn=3,river=2\"."`
	AllowAllIn       bool    `help:"Always offer an all-in action." default:"true"`
	MinRaiseSize     float64 `help:"Minimum raise size as a fraction of pot." default:"1.0"`
}

func (f bettingFlags) betSizes() ([]float64, error) {
	var sizes []float64
	for _, tok := range strings.Split(f.BetSizes, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid bet size %q: %w", tok, err)
		}
		sizes = append(sizes, v)
	}
	return sizes, nil
}

func (f bettingFlags) maxBetsPerStreet() (map[string]int, error) {
	caps := make(map[string]int)
	if f.MaxBetsPerStreet == "" {
		return caps, nil
	}
	for _, tok := range strings.Split(f.MaxBetsPerStreet, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		kv := strings.SplitN(tok, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid max-bets-per-street entry %q, want street=cap", tok)
		}
		betCap, err := strconv.Atoi(strings.TrimSpace(kv[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid cap in %q: %w", tok, err)
		}
		caps[strings.TrimSpace(kv[0])] = betCap
	}
	return caps, nil
}

// SolveCmd runs a full CFR solve and prints the resulting strategy.
type SolveCmd struct {
	bettingFlags

	OopRange   string `help:"Out-of-position range, e.g. \"AA,KK,AKs\"." required:""`
	IpRange    string `help:"In-position range." required:""`
	Board      string `help:"Board cards, e.g. \"AsKdQh\". Empty for preflop." default:""`
	Street     string `help:"Street: preflop, flop, turn, or river." default:"preflop"`
	Iterations int    `help:"Number of CFR iterations." default:"10000"`
	Seed       int64  `help:"Deterministic RNG seed." default:"1"`
	Workers    int    `help:"Parallel training workers (1 for deterministic single-threaded)." default:"1"`
	CFRPlus    bool   `help:"Enable CFR+ regret clipping."`
}

func (c *SolveCmd) Run(logger *log.Logger) error {
	betSizes, err := c.betSizes()
	if err != nil {
		return err
	}
	maxBets, err := c.maxBetsPerStreet()
	if err != nil {
		return err
	}

	seed := c.Seed
	req := solve.SolveRequest{
		OopRange:           c.OopRange,
		IpRange:            c.IpRange,
		StartingStack:      c.StartingStack,
		PotSize:            c.PotSize,
		BoardCards:         c.Board,
		Street:             c.Street,
		Iterations:         c.Iterations,
		Seed:               &seed,
		BetSizes:           betSizes,
		MaxBetsPerStreet:   maxBets,
		MaxBets:            c.MaxBets,
		AllowAllIn:         c.AllowAllIn,
		MinRaiseSize:       c.MinRaiseSize,
		RegretMatchingPlus: c.CFRPlus,
		ConvergenceEvery:   c.Iterations / 10,
		Workers:            c.Workers,
	}

	logger.Info("starting solve", "oop_range", c.OopRange, "ip_range", c.IpRange, "iterations", c.Iterations, "seed", seed)

	resp, err := solve.Solve(context.Background(), req)
	if err != nil {
		if cancelled, ok := err.(*solve.CancelledError); ok {
			logger.Warn("solve cancelled", "completed_iterations", cancelled.Partial.TrainingIterations)
			printSolveResponse(cancelled.Partial)
			return nil
		}
		return err
	}

	logger.Info("solve complete", "nodes", resp.NodesCount, "final_convergence", resp.FinalConvergence)
	printSolveResponse(resp)
	return nil
}

func printSolveResponse(resp solve.SolveResponse) {
	fmt.Println(titleStyle.Render(" GTO Solve Result "))
	fmt.Println()
	fmt.Printf("iterations: %d   nodes: %d   final convergence (L2): %.6f\n",
		resp.TrainingIterations, resp.NodesCount, resp.FinalConvergence)
	if len(resp.BoardTexture) > 0 {
		fmt.Printf("board texture: %s\n", strings.Join(resp.BoardTexture, ", "))
	}
	fmt.Println()

	printStrategySide("OOP", resp.OopStrategy)
	printStrategySide("IP", resp.IpStrategy)
}

func printStrategySide(label string, strategy map[string]map[string]float64) {
	fmt.Printf("--- %s strategy (by hand class) ---\n", label)
	classes := make([]string, 0, len(strategy))
	for class := range strategy {
		classes = append(classes, class)
	}
	sortStrings(classes)
	for _, class := range classes {
		fmt.Printf("  %-4s ", class)
		actions := strategy[class]
		actionNames := make([]string, 0, len(actions))
		for a := range actions {
			actionNames = append(actionNames, a)
		}
		sortStrings(actionNames)
		for _, a := range actionNames {
			fmt.Printf("%s=%.2f ", a, actions[a])
		}
		fmt.Println()
	}
	fmt.Println()
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// ValidateCmd checks a betting configuration without running CFR.
type ValidateCmd struct {
	bettingFlags
}

func (c *ValidateCmd) Run(logger *log.Logger) error {
	betSizes, err := c.betSizes()
	if err != nil {
		return err
	}
	maxBets, err := c.maxBetsPerStreet()
	if err != nil {
		return err
	}

	req := solve.ConfigValidationRequest{
		StartingStack:    c.StartingStack,
		PotSize:          c.PotSize,
		BetSizes:         betSizes,
		MaxBetsPerStreet: maxBets,
		MaxBets:          c.MaxBets,
		AllowAllIn:       c.AllowAllIn,
		MinRaiseSize:     c.MinRaiseSize,
	}

	resp := solve.ValidateConfig(req)

	if resp.IsValid {
		fmt.Println(okStyle.Render("valid"))
	} else {
		fmt.Println(warnStyle.Render("invalid"))
	}
	fmt.Printf("estimated nodes: %d\n", resp.EstimatedNodes)
	fmt.Printf("estimated training time: %.1fs\n", resp.EstimatedTrainingTimeSeconds)
	fmt.Printf("recommended iterations: %d\n", resp.RecommendedIterations)
	for _, w := range resp.Warnings {
		fmt.Println(warnStyle.Render("warning: " + w))
	}

	logger.Debug("validate complete", "is_valid", resp.IsValid, "estimated_nodes", resp.EstimatedNodes)
	return nil
}

// HealthCmd reports liveness and the solver version.
type HealthCmd struct{}

func (c *HealthCmd) Run(logger *log.Logger) error {
	resp := solve.Health()
	fmt.Printf("alive: %v   version: %s\n", resp.Alive, resp.Version)
	logger.Debug("health checked", "version", resp.Version)
	return nil
}

var cli struct {
	Solve    SolveCmd    `cmd:"" help:"Run a CFR solve and print the resulting strategy."`
	Validate ValidateCmd `cmd:"" help:"Validate a betting configuration without solving."`
	Health   HealthCmd   `cmd:"" help:"Report solver liveness and version."`
}

func main() {
	logger := log.Default()
	ctx := kong.Parse(&cli, kong.Name("gtosolver"), kong.Description("Heads-up NLHE GTO solver."))
	err := ctx.Run(logger)
	ctx.FatalIfErrorf(err)
}
