package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/baseball-sim/atbat-core/basestate"
	"github.com/baseball-sim/atbat-core/internal/validation"
	"github.com/baseball-sim/atbat-core/random"
	"github.com/baseball-sim/atbat-core/simulation"
	"github.com/baseball-sim/atbat-core/stats"
)

func newValidateCmd() *cobra.Command {
	var fixturePath string
	var seed uint64
	var n int
	var relTol float64
	var absTolHR float64

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run the statistical-validity checks against a batter/pitcher fixture and report pass/fail",
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

			results := make([]simulation.PlateAppearanceResult, 0, n)
			for i := 0; i < n; i++ {
				result, err := engine.SimulatePlateAppearance(f.Batter, f.Pitcher, f.Year, basestate.Empty, 0, stats.ProjectionContext{}, stats.ProjectionContext{})
				if err != nil {
					return err
				}
				results = append(results, result)
			}

			report := validation.StatisticalValidity(results, relTol, absTolHR)
			fmt.Print(report.String())
			if !report.Passed() {
				logger.Error("statistical validity check failed")
				os.Exit(1)
			}
			logger.Info("statistical validity check passed")
			return nil
		},
	}

	cmd.Flags().StringVar(&fixturePath, "fixture", "", "path to a JSON fixture with batter/pitcher/year")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "RandomSource seed")
	cmd.Flags().IntVar(&n, "n", 5000, "number of plate appearances to sample")
	cmd.Flags().Float64Var(&relTol, "rel-tol", 0.10, "relative tolerance for strikeout rate / batting average")
	cmd.Flags().Float64Var(&absTolHR, "abs-tol-hr", 0.01, "absolute tolerance for home run rate")
	cmd.MarkFlagRequired("fixture")
	return cmd
}
