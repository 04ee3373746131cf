package scenario

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"TokenSentinel/internal/economy"
	"TokenSentinel/internal/model"
)

// Scenario is a named parameter set to simulate and compare.
type Scenario struct {
	Name   string
	Params model.SimParams
}

// Defaults returns the standard comparison set around the base case.
func Defaults() []Scenario {
	base := model.DefaultParams()

	highGrowth := base
	highGrowth.TaskGrowthRate = 0.10
	highGrowth.DailyTasks = 2000

	lowGrowth := base
	lowGrowth.TaskGrowthRate = 0.02
	lowGrowth.DailyTasks = 500

	noBurn := base
	noBurn.BurnEnabled = false

	highStaking := base
	highStaking.InitialStakedFraction = 0.40

	return []Scenario{
		{Name: "Base Case", Params: base},
		{Name: "High Growth", Params: highGrowth},
		{Name: "Low Growth", Params: lowGrowth},
		{Name: "No Burn", Params: noBurn},
		{Name: "High Staking", Params: highStaking},
	}
}

// fileScenario is the YAML shape: a name plus field overrides applied on top
// of the default parameter set.
type fileScenario struct {
	Name   string    `yaml:"name"`
	Params yaml.Node `yaml:"params"`
}

// Load reads scenarios from a YAML file. Each entry starts from the default
// parameter set, applies its overrides, and is validated eagerly.
func Load(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var raw []fileScenario
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse scenario file: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("scenario file %s defines no scenarios", path)
	}

	scenarios := make([]Scenario, 0, len(raw))
	for i, fs := range raw {
		if fs.Name == "" {
			return nil, fmt.Errorf("scenario %d has no name", i)
		}
		p := model.DefaultParams()
		if !fs.Params.IsZero() {
			if err := fs.Params.Decode(&p); err != nil {
				return nil, fmt.Errorf("scenario %q: %w", fs.Name, err)
			}
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", fs.Name, err)
		}
		scenarios = append(scenarios, Scenario{Name: fs.Name, Params: p})
	}
	return scenarios, nil
}

// Result pairs a scenario with its closing summary.
type Result struct {
	Name    string
	Summary model.RunSummary
}

// RunAll simulates each scenario sequentially and returns the comparison set
// in input order.
func RunAll(ctx context.Context, scenarios []Scenario) ([]Result, error) {
	results := make([]Result, 0, len(scenarios))
	for _, sc := range scenarios {
		econ := economy.New(sc.Params)
		if err := econ.Run(ctx); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		results = append(results, Result{Name: sc.Name, Summary: econ.Summary()})
	}
	return results, nil
}
