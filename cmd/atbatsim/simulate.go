package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/baseball-sim/atbat-core/basestate"
	"github.com/baseball-sim/atbat-core/outcome"
	"github.com/baseball-sim/atbat-core/random"
	"github.com/baseball-sim/atbat-core/simulation"
	"github.com/baseball-sim/atbat-core/stats"
)

// fixture is the JSON shape of a --fixture file: one batter line, one
// pitcher line, and the year to project them against.
type fixture struct {
	Year    int                    `json:"year"`
	Batter  stats.BattingStatLine  `json:"batter"`
	Pitcher stats.PitchingStatLine `json:"pitcher"`
}

func newSimulateCmd() *cobra.Command {
	var fixturePath string
	var seed uint64
	var n int

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run N plate appearances for a batter/pitcher fixture and print the outcome distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFixture(fixturePath)
			if err != nil {
				return err
			}

			cfg, err := loadSimulationConfig()
			if err != nil {
				return err
			}

			engine, err := simulation.New(random.New(seed), nil, cfg)
			if err != nil {
				return err
			}

			counts := map[outcome.Outcome]int{}
			for i := 0; i < n; i++ {
				result, err := engine.SimulatePlateAppearance(f.Batter, f.Pitcher, f.Year, basestate.Empty, 0, stats.ProjectionContext{}, stats.ProjectionContext{})
				if err != nil {
					return err
				}
				counts[result.Outcome]++
			}

			logger.Info("simulation complete", "plate_appearances", n, "seed", seed)
			for o, c := range counts {
				fmt.Printf("%-24s %6d  %.4f\n", o.String(), c, float64(c)/float64(n))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fixturePath, "fixture", "", "path to a JSON fixture with batter/pitcher/year")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "RandomSource seed")
	cmd.Flags().IntVar(&n, "n", 5000, "number of plate appearances to simulate")
	cmd.MarkFlagRequired("fixture")
	return cmd
}

func loadFixture(path string) (fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fixture{}, err
	}
	var f fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return fixture{}, err
	}
	return f, nil
}
