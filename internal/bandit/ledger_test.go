// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

package bandit

import (
	"math"
	"testing"
	"time"
)

func record(action ActionID, reward float64) RewardRecord {
	return RewardRecord{
		Context:   make([]float64, NumFeatures),
		Action:    action,
		Reward:    reward,
		Timestamp: time.Now(),
	}
}

func TestLedgerAppendAndLen(t *testing.T) {
	l := NewLedger(100)

	for i := 0; i < 5; i++ {
		l.Append(record(ActionStayIndoors, 0.5))
	}

	if l.Len() != 5 {
		t.Errorf("Len() = %d, want 5", l.Len())
	}
	if l.TotalRecorded() != 5 {
		t.Errorf("TotalRecorded() = %d, want 5", l.TotalRecorded())
	}
}

func TestLedgerRingEviction(t *testing.T) {
	l := NewLedger(3)

	rewards := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
	for _, r := range rewards {
		l.Append(record(ActionStayIndoors, r))
	}

	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}
	if l.TotalRecorded() != 5 {
		t.Errorf("TotalRecorded() = %d, want 5", l.TotalRecorded())
	}

	// The two oldest records aged out; the mean reflects 0.3, 0.4, 0.5.
	stats := l.ActionStats(ActionStayIndoors)
	if math.Abs(stats.MeanReward-0.4) > 1e-9 {
		t.Errorf("MeanReward = %f, want 0.4 after eviction", stats.MeanReward)
	}
}

func TestLedgerActionStats(t *testing.T) {
	l := NewLedger(100)
	for _, r := range []float64{0.2, 0.8, 1.0} {
		l.Append(record(ActionRunPurifier, r))
	}
	// Unrelated action must not leak into the stats.
	l.Append(record(ActionGoOutdoors, 0.0))

	stats := l.ActionStats(ActionRunPurifier)

	if stats.Count != 3 {
		t.Errorf("Count = %d, want 3", stats.Count)
	}
	wantMean := (0.2 + 0.8 + 1.0) / 3.0
	if math.Abs(stats.MeanReward-wantMean) > 1e-9 {
		t.Errorf("MeanReward = %f, want %f", stats.MeanReward, wantMean)
	}
	// Population standard deviation.
	wantStd := math.Sqrt((math.Pow(0.2-wantMean, 2) + math.Pow(0.8-wantMean, 2) + math.Pow(1.0-wantMean, 2)) / 3.0)
	if math.Abs(stats.StdReward-wantStd) > 1e-9 {
		t.Errorf("StdReward = %f, want %f", stats.StdReward, wantStd)
	}
	// 0.8 and 1.0 exceed the neutral score; 0.2 does not.
	if math.Abs(stats.SuccessRate-2.0/3.0) > 1e-9 {
		t.Errorf("SuccessRate = %f, want %f", stats.SuccessRate, 2.0/3.0)
	}
}

func TestLedgerActionStatsEmpty(t *testing.T) {
	l := NewLedger(10)
	stats := l.ActionStats(ActionStayIndoors)
	if stats != (ActionStats{}) {
		t.Errorf("ActionStats() = %+v, want zero value", stats)
	}
}

func TestLedgerStatisticsSkipsUnseenActions(t *testing.T) {
	l := NewLedger(10)
	l.Append(record(ActionCloseWindows, 0.9))

	stats := l.Statistics()
	if len(stats) != 1 {
		t.Fatalf("Statistics() has %d entries, want 1", len(stats))
	}
	if _, ok := stats[ActionCloseWindows]; !ok {
		t.Error("Statistics() missing recorded action")
	}
}

func TestLedgerActionSamples(t *testing.T) {
	l := NewLedger(10)
	l.Append(record(ActionStayIndoors, 0.1))
	l.Append(record(ActionRunPurifier, 0.9))
	l.Append(record(ActionStayIndoors, 0.3))

	samples := l.ActionSamples(ActionStayIndoors)
	if len(samples) != 2 {
		t.Fatalf("ActionSamples() returned %d samples, want 2", len(samples))
	}
	// Oldest first.
	if samples[0].Reward != 0.1 || samples[1].Reward != 0.3 {
		t.Errorf("samples out of order: %f, %f", samples[0].Reward, samples[1].Reward)
	}
}

func TestLedgerMinimumCapacity(t *testing.T) {
	l := NewLedger(0)
	l.Append(record(ActionStayIndoors, 0.4))
	l.Append(record(ActionStayIndoors, 0.6))

	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1 with clamped capacity", l.Len())
	}
	if l.TotalRecorded() != 2 {
		t.Errorf("TotalRecorded() = %d, want 2", l.TotalRecorded())
	}
}
