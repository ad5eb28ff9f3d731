// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

package bandit

import "time"

// NumFeatures is the fixed context vector length D. Featurization,
// estimation, and storage all share this constant; changing it invalidates
// every stored context and is a breaking schema change.
const NumFeatures = 15

// maxFeatureValue caps each coordinate. Inputs are normalized to an
// approximate [0, 1] range, but extreme sensor readings (a 180 ug/m3 PM2.5
// spike, a heat wave) can exceed it; the hard clip keeps estimator inputs
// bounded without discarding the "worse than scale" signal entirely.
const maxFeatureValue = 1.5

// Defaults substituted for missing (zero-valued) inputs before
// normalization, so Featurize is total over partially populated profiles
// and snapshots.
const (
	defaultAge         = 30
	defaultHumidity    = 50.0
	defaultTemperature = 20.0
)

// Featurize converts a user profile and an environmental snapshot into the
// fixed-length context vector. It is a pure function: identical inputs,
// including now, always produce an identical vector. Time dependence is
// explicit via now and never read from the ambient clock, so callers and
// tests control it.
//
// Layout, in fixed order: four user coordinates, eight environmental
// coordinates, three temporal coordinates.
func Featurize(profile UserProfile, env EnvironmentalSnapshot, now time.Time) []float64 {
	age := profile.Age
	if age == 0 {
		age = defaultAge
	}
	humidity := env.Humidity
	if humidity == 0 {
		humidity = defaultHumidity
	}
	temperature := env.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}

	features := []float64{
		// User profile
		float64(age) / 100.0,
		profile.SeverityScore / 3.0,
		float64(len(profile.Allergies)) / 10.0,
		float64(len(profile.Triggers)) / 10.0,

		// Environment
		env.PM25 / 100.0,
		env.PM10 / 100.0,
		env.Ozone / 100.0,
		temperature / 50.0,
		humidity / 100.0,
		env.PollenTree / 5.0,
		env.PollenGrass / 5.0,
		env.PollenWeed / 5.0,

		// Temporal
		float64(now.Hour()) / 24.0,
		float64(now.Weekday()) / 7.0,
		float64(now.Month()-1) / 12.0, // zero-based, like hour and weekday
	}

	for i, v := range features {
		features[i] = clipFeature(v)
	}

	return features
}

// clipFeature bounds one coordinate to [0, maxFeatureValue].
func clipFeature(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > maxFeatureValue {
		return maxFeatureValue
	}
	return v
}
