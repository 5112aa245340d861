// Package wizard drives the multi-step data-entry flow that creates a
// material, links suppliers, and attaches economics and pricing before
// a final review.
package wizard

import (
	"errors"
	"fmt"
)

type Step int

const (
	StepRawMaterial Step = iota
	StepSupplierAssociation
	StepEconomicMetrics
	StepPricing
	StepReview
)

var stepNames = map[Step]string{
	StepRawMaterial:         "raw_material",
	StepSupplierAssociation: "supplier_association",
	StepEconomicMetrics:     "economic_metrics",
	StepPricing:             "pricing",
	StepReview:              "review",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

var ErrAtBoundary = errors.New("wizard: no such step")

// State is the in-progress wizard data. It is not persisted; an
// abandoned session starts over.
type State struct {
	MaterialName     string
	MaterialType     string
	MaterialQuantity float64
	MaterialUnit     string

	SupplierIDs []string

	// Optional steps carry data only when the user filled them in.
	UnitCost           *float64
	TransportationCost *float64
	StorageCost        *float64

	Pricing []PricingEntry

	step Step
}

type PricingEntry struct {
	SupplierID string
	UnitPrice  float64
	Currency   string
}

func NewState() *State {
	return &State{step: StepRawMaterial}
}

func (s *State) Current() Step { return s.step }

// Validate checks the data the given step requires. Optional steps
// accept an empty form but reject partial input.
func (s *State) Validate(step Step) error {
	switch step {
	case StepRawMaterial:
		if s.MaterialName == "" {
			return errors.New("material name is required")
		}
		if s.MaterialType == "" {
			return errors.New("material type is required")
		}
		if s.MaterialQuantity <= 0 {
			return errors.New("material quantity must be positive")
		}
		if s.MaterialUnit == "" {
			return errors.New("material unit is required")
		}
	case StepSupplierAssociation:
		if len(s.SupplierIDs) == 0 {
			return errors.New("at least one supplier must be selected")
		}
	case StepEconomicMetrics:
		set := 0
		for _, v := range []*float64{s.UnitCost, s.TransportationCost, s.StorageCost} {
			if v != nil {
				set++
			}
		}
		if set != 0 && set != 3 {
			return errors.New("unit, transportation and storage costs must all be set together")
		}
	case StepPricing:
		for _, p := range s.Pricing {
			if p.SupplierID == "" {
				return errors.New("pricing entry is missing its supplier")
			}
			if p.UnitPrice < 0 {
				return errors.New("unit price cannot be negative")
			}
		}
	case StepReview:
	default:
		return ErrAtBoundary
	}
	return nil
}

// Next advances one step after the current step validates. Skipping
// ahead is not possible.
func (s *State) Next() error {
	if s.step == StepReview {
		return ErrAtBoundary
	}
	if err := s.Validate(s.step); err != nil {
		return err
	}
	s.step++
	return nil
}

// Back moves one step back without validation; nothing entered is lost.
func (s *State) Back() error {
	if s.step == StepRawMaterial {
		return ErrAtBoundary
	}
	s.step--
	return nil
}

// Complete reports whether every step up to review validates.
func (s *State) Complete() bool {
	if s.step != StepReview {
		return false
	}
	for step := StepRawMaterial; step < StepReview; step++ {
		if s.Validate(step) != nil {
			return false
		}
	}
	return true
}
