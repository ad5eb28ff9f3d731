// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

package bandit

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/airwise/airwise/internal/logging"
)

// stubEstimator returns a fixed score, or an error when failing is set.
type stubEstimator struct {
	score   float64
	failing bool
}

func (s *stubEstimator) Name() string { return "stub" }

func (s *stubEstimator) Predict(_ []float64) (float64, error) {
	if s.failing {
		return 0, errors.New("stub failure")
	}
	return s.score, nil
}

func (s *stubEstimator) Update(_ []float64, _ float64) {}
func (s *stubEstimator) Retrain(_ []Sample) error      { return nil }
func (s *stubEstimator) IsTrained() bool               { return true }
func (s *stubEstimator) Version() int                  { return 1 }
func (s *stubEstimator) LastTrainedAt() time.Time      { return time.Time{} }
func (s *stubEstimator) Observations() int             { return 1 }

// stubEstimators builds a full catalog of stubs at the neutral score,
// with per-action overrides.
func stubEstimators(overrides map[ActionID]Estimator) map[ActionID]Estimator {
	ests := make(map[ActionID]Estimator, len(catalog))
	for _, a := range catalog {
		ests[a] = &stubEstimator{score: NeutralScore}
	}
	for a, e := range overrides {
		ests[a] = e
	}
	return ests
}

func testContext() []float64 {
	return Featurize(UserProfile{}, EnvironmentalSnapshot{}, time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC))
}

func TestSelectExploitsHighestScore(t *testing.T) {
	sel := NewSelector(0, 1, logging.NewTestLogger(io.Discard))
	ests := stubEstimators(map[ActionID]Estimator{
		ActionRunPurifier: &stubEstimator{score: 0.9},
	})

	got := sel.Select(testContext(), ests)
	if got.Action != ActionRunPurifier {
		t.Errorf("Select() = %s, want %s", got.Action, ActionRunPurifier)
	}
	if got.Score != 0.9 {
		t.Errorf("Score = %f, want 0.9", got.Score)
	}
}

func TestSelectTieBreaksByCatalogOrder(t *testing.T) {
	sel := NewSelector(0, 1, logging.NewTestLogger(io.Discard))

	// All estimators tie at the neutral score; the first catalog entry wins.
	got := sel.Select(testContext(), stubEstimators(nil))
	if got.Action != catalog[0] {
		t.Errorf("Select() = %s, want first catalog action %s", got.Action, catalog[0])
	}
}

func TestSelectFailingEstimatorFallsBackToNeutral(t *testing.T) {
	sel := NewSelector(0, 1, logging.NewTestLogger(io.Discard))
	ests := stubEstimators(map[ActionID]Estimator{
		ActionStayIndoors:  &stubEstimator{failing: true},
		ActionCloseWindows: &stubEstimator{score: 0.6},
	})

	got := sel.Select(testContext(), ests)
	if got.Action != ActionCloseWindows {
		t.Errorf("Select() = %s, want %s despite failing estimator", got.Action, ActionCloseWindows)
	}
}

func TestSelectMissingEstimatorUsesNeutral(t *testing.T) {
	sel := NewSelector(0, 1, logging.NewTestLogger(io.Discard))
	ests := stubEstimators(nil)
	delete(ests, ActionGoOutdoors)
	ests[ActionTakeMedication] = &stubEstimator{score: 0.8}

	got := sel.Select(testContext(), ests)
	if got.Action != ActionTakeMedication {
		t.Errorf("Select() = %s, want %s", got.Action, ActionTakeMedication)
	}
}

func TestTopKDistinctAndOrdered(t *testing.T) {
	sel := NewSelector(0, 1, logging.NewTestLogger(io.Discard))
	ests := stubEstimators(map[ActionID]Estimator{
		ActionTakeMedication: &stubEstimator{score: 0.9},
		ActionRunPurifier:    &stubEstimator{score: 0.8},
		ActionCloseWindows:   &stubEstimator{score: 0.7},
	})

	got := sel.TopK(testContext(), ests, 3)
	if len(got) != 3 {
		t.Fatalf("TopK() returned %d actions, want 3", len(got))
	}

	want := []ActionID{ActionTakeMedication, ActionRunPurifier, ActionCloseWindows}
	for i, sa := range got {
		if sa.Action != want[i] {
			t.Errorf("TopK()[%d] = %s, want %s", i, sa.Action, want[i])
		}
	}

	seen := make(map[ActionID]struct{})
	for _, sa := range got {
		if _, dup := seen[sa.Action]; dup {
			t.Errorf("TopK() returned duplicate action %s", sa.Action)
		}
		seen[sa.Action] = struct{}{}
	}
}

func TestTopKCappedAtCatalogSize(t *testing.T) {
	sel := NewSelector(0, 1, logging.NewTestLogger(io.Discard))

	got := sel.TopK(testContext(), stubEstimators(nil), CatalogSize+5)
	if len(got) != CatalogSize {
		t.Errorf("TopK() returned %d actions, want %d", len(got), CatalogSize)
	}
}

func TestSelectExplorationRate(t *testing.T) {
	// With epsilon 1.0 every draw explores; over many draws every action
	// should appear even though one estimator dominates.
	sel := NewSelector(1.0, 7, logging.NewTestLogger(io.Discard))
	ests := stubEstimators(map[ActionID]Estimator{
		ActionEmergencyAlert: &stubEstimator{score: 0.99},
	})

	seen := make(map[ActionID]int)
	for i := 0; i < 1000; i++ {
		got := sel.Select(testContext(), ests)
		seen[got.Action]++
	}

	if len(seen) != CatalogSize {
		t.Errorf("exploration visited %d actions, want all %d", len(seen), CatalogSize)
	}
}

func TestSelectScoreBelongsToExploredAction(t *testing.T) {
	sel := NewSelector(1.0, 7, logging.NewTestLogger(io.Discard))
	ests := stubEstimators(map[ActionID]Estimator{
		ActionEmergencyAlert: &stubEstimator{score: 0.99},
	})

	for i := 0; i < 200; i++ {
		got := sel.Select(testContext(), ests)
		if got.Action == ActionEmergencyAlert {
			if got.Score != 0.99 {
				t.Fatalf("explored %s score = %f, want 0.99", got.Action, got.Score)
			}
		} else if got.Score != NeutralScore {
			t.Fatalf("explored %s score = %f, want neutral %f", got.Action, got.Score, NeutralScore)
		}
	}
}

func TestSelectorSeedDeterminism(t *testing.T) {
	ests := stubEstimators(nil)
	ctx := testContext()

	a := NewSelector(0.5, 99, logging.NewTestLogger(io.Discard))
	b := NewSelector(0.5, 99, logging.NewTestLogger(io.Discard))

	for i := 0; i < 100; i++ {
		if got, want := a.Select(ctx, ests).Action, b.Select(ctx, ests).Action; got != want {
			t.Fatalf("draw %d diverged: %s vs %s", i, got, want)
		}
	}
}
