package stats

// ParkWeather is an optional, default-neutral input to the projector,
// adapted from a prior implementation's per-game weather model. Its zero
// value contributes no adjustment at all, so callers who never construct
// one get the projector's unmodified output.
type ParkWeather struct {
	adjustment float64
}

// NewParkWeather derives a small additive adjustment to projected hit rates
// from game conditions: warmer air and a wind blowing out carry batted
// balls further; higher humidity slightly deadens them.
func NewParkWeather(temperatureF, windSpeedMph float64, windBlowingOut bool, humidityPercent float64) ParkWeather {
	const neutralTemp = 70.0
	const neutralHumidity = 50.0

	delta := (temperatureF - neutralTemp) / 1000
	if windBlowingOut {
		delta += windSpeedMph / 500
	} else {
		delta -= windSpeedMph / 500
	}
	delta -= (humidityPercent - neutralHumidity) / 2000

	return ParkWeather{adjustment: delta}
}

// HitRateDelta returns the additive adjustment applied to single, double,
// triple, and home-run rates. Never applied to strikeout, walk, or
// hit-by-pitch rates, mirroring the park-factor restriction.
func (w ParkWeather) HitRateDelta() float64 {
	return w.adjustment
}

// UmpireTendencies is an optional, default-neutral input to the projector,
// adapted from a prior implementation's per-umpire strike-zone model.
type UmpireTendencies struct {
	StrikeZoneSize          float64
	StrikeoutRateAdjustment float64
	WalkRateAdjustment      float64
}

// DefaultUmpireTendencies returns a neutral-zone umpire whose adjustments
// are both zero.
func DefaultUmpireTendencies() UmpireTendencies {
	return UmpireTendencies{StrikeZoneSize: 1.0}
}

// KRateDelta returns the additive adjustment applied to the strikeout rate.
func (u UmpireTendencies) KRateDelta() float64 {
	return u.StrikeoutRateAdjustment
}

// BBRateDelta returns the additive adjustment applied to the walk rate.
func (u UmpireTendencies) BBRateDelta() float64 {
	return u.WalkRateAdjustment
}
