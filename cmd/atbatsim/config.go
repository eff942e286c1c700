package main

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/baseball-sim/atbat-core/resolver"
	"github.com/baseball-sim/atbat-core/simulation"
	"github.com/baseball-sim/atbat-core/stats"
)

// loadSimulationConfig assembles a simulation.Config from defaults, an
// optional config file, and environment overrides, mirroring the
// defaults-then-env-then-struct sequence a Viper-backed config loader
// follows.
func loadSimulationConfig() (simulation.Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ATBATSIM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetConfigName("atbatsim")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/atbatsim")

	def := simulation.DefaultConfig()
	v.SetDefault("park_factor", def.Projector.ParkFactor)
	v.SetDefault("min_plate_appearances_for_direct_rates", def.Projector.MinPlateAppearancesForDirectRates)
	v.SetDefault("strikeout_swinging_share", def.Resolver.StrikeoutSwingingShare)
	v.SetDefault("infield_single_share", def.Resolver.InfieldSingleShare)
	v.SetDefault("error_rate_on_in_play_out", def.Resolver.ErrorRateOnInPlayOut)
	v.SetDefault("gidp_rate_on_groundout_when_eligible", def.Resolver.GIDPRateOnGroundout)
	v.SetDefault("sac_fly_rate_on_flyout_when_eligible", def.Resolver.SacFlyRateOnFlyout)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return simulation.Config{}, err
		}
	}

	cfg := simulation.Config{
		Projector: stats.ProjectorConfig{
			ParkFactor:                        v.GetInt("park_factor"),
			MinPlateAppearancesForDirectRates: v.GetInt("min_plate_appearances_for_direct_rates"),
		},
		Resolver: resolver.Config{
			StrikeoutSwingingShare: v.GetFloat64("strikeout_swinging_share"),
			InfieldSingleShare:     v.GetFloat64("infield_single_share"),
			OutTypeDistribution:    def.Resolver.OutTypeDistribution,
			ErrorRateOnInPlayOut:   v.GetFloat64("error_rate_on_in_play_out"),
			GIDPRateOnGroundout:    v.GetFloat64("gidp_rate_on_groundout_when_eligible"),
			SacFlyRateOnFlyout:     v.GetFloat64("sac_fly_rate_on_flyout_when_eligible"),
			FoulOutShareOfPopup:    def.Resolver.FoulOutShareOfPopup,
		},
	}
	return cfg, cfg.Validate()
}
