// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

package bandit

import "math"

// Ledger stores one user's reward history and derives per-action
// statistics from it. Retention is a bounded ring: once maxHistory records
// accumulate, the oldest record is dropped for each new one.
//
// Ledger is not synchronized; the owning UserState's mutex serializes all
// access, matching the per-user concurrency model.
type Ledger struct {
	maxHistory int
	records    []RewardRecord

	// total counts every record ever appended, including records that have
	// aged out of the ring.
	total int
}

// NewLedger creates a ledger retaining at most maxHistory records.
func NewLedger(maxHistory int) *Ledger {
	if maxHistory < 1 {
		maxHistory = 1
	}
	return &Ledger{
		maxHistory: maxHistory,
		records:    make([]RewardRecord, 0, 16),
	}
}

// Append stores one feedback record, evicting the oldest if the ring is
// full. The caller is responsible for reward validation.
func (l *Ledger) Append(rec RewardRecord) {
	if len(l.records) >= l.maxHistory {
		copy(l.records, l.records[1:])
		l.records[len(l.records)-1] = rec
	} else {
		l.records = append(l.records, rec)
	}
	l.total++
}

// Len returns the number of records currently retained.
func (l *Ledger) Len() int {
	return len(l.records)
}

// TotalRecorded returns the number of records ever appended.
func (l *Ledger) TotalRecorded() int {
	return l.total
}

// ActionSamples returns the retained (context, reward) pairs for one
// action, oldest first.
func (l *Ledger) ActionSamples(action ActionID) []Sample {
	samples := make([]Sample, 0, len(l.records))
	for _, rec := range l.records {
		if rec.Action == action {
			samples = append(samples, Sample{Context: rec.Context, Reward: rec.Reward})
		}
	}
	return samples
}

// ActionStats computes aggregate statistics for one action by filtering
// the retained history.
func (l *Ledger) ActionStats(action ActionID) ActionStats {
	var (
		count     int
		sum       float64
		successes int
	)
	for _, rec := range l.records {
		if rec.Action != action {
			continue
		}
		count++
		sum += rec.Reward
		if rec.Reward > NeutralScore {
			successes++
		}
	}

	if count == 0 {
		return ActionStats{}
	}

	mean := sum / float64(count)

	var sqDiff float64
	for _, rec := range l.records {
		if rec.Action != action {
			continue
		}
		d := rec.Reward - mean
		sqDiff += d * d
	}

	return ActionStats{
		Count:       count,
		MeanReward:  mean,
		StdReward:   math.Sqrt(sqDiff / float64(count)),
		SuccessRate: float64(successes) / float64(count),
	}
}

// Statistics computes stats for every action with at least one record.
func (l *Ledger) Statistics() map[ActionID]ActionStats {
	stats := make(map[ActionID]ActionStats)
	for _, a := range catalog {
		s := l.ActionStats(a)
		if s.Count > 0 {
			stats[a] = s
		}
	}
	return stats
}
