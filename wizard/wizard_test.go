package wizard

import (
	"errors"
	"testing"
)

func validMaterialState() *State {
	s := NewState()
	s.MaterialName = "Organic Oats"
	s.MaterialType = "grain"
	s.MaterialQuantity = 500
	s.MaterialUnit = "kg"
	return s
}

func TestNextBlockedByValidation(t *testing.T) {
	s := NewState()
	if err := s.Next(); err == nil {
		t.Fatal("advanced past an empty material form")
	}
	if s.Current() != StepRawMaterial {
		t.Errorf("step moved to %v on failed validation", s.Current())
	}
}

func TestLinearProgression(t *testing.T) {
	s := validMaterialState()

	if err := s.Next(); err != nil {
		t.Fatalf("material step: %v", err)
	}
	if s.Current() != StepSupplierAssociation {
		t.Fatalf("at %v, want supplier_association", s.Current())
	}

	if err := s.Next(); err == nil {
		t.Fatal("advanced without selecting a supplier")
	}
	s.SupplierIDs = []string{"sup-1"}
	if err := s.Next(); err != nil {
		t.Fatalf("supplier step: %v", err)
	}

	// Economic metrics and pricing are optional when left empty.
	if err := s.Next(); err != nil {
		t.Fatalf("economic step: %v", err)
	}
	if err := s.Next(); err != nil {
		t.Fatalf("pricing step: %v", err)
	}
	if s.Current() != StepReview {
		t.Fatalf("at %v, want review", s.Current())
	}
	if !s.Complete() {
		t.Error("complete wizard reported incomplete")
	}
	if err := s.Next(); !errors.Is(err, ErrAtBoundary) {
		t.Errorf("Next past review = %v, want ErrAtBoundary", err)
	}
}

func TestPartialEconomicsRejected(t *testing.T) {
	s := validMaterialState()
	s.SupplierIDs = []string{"sup-1"}
	s.Next()
	s.Next()

	cost := 12.5
	s.UnitCost = &cost
	if err := s.Next(); err == nil {
		t.Error("accepted unit cost without transportation and storage costs")
	}

	transport, storage := 2.0, 1.0
	s.TransportationCost = &transport
	s.StorageCost = &storage
	if err := s.Next(); err != nil {
		t.Errorf("complete economics rejected: %v", err)
	}
}

func TestBackKeepsData(t *testing.T) {
	s := validMaterialState()
	s.Next()
	s.SupplierIDs = []string{"sup-1", "sup-2"}

	if err := s.Back(); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if s.Current() != StepRawMaterial {
		t.Fatalf("at %v after back", s.Current())
	}
	if len(s.SupplierIDs) != 2 {
		t.Error("going back dropped entered suppliers")
	}
	if err := s.Back(); !errors.Is(err, ErrAtBoundary) {
		t.Errorf("Back at first step = %v, want ErrAtBoundary", err)
	}
}

func TestPricingValidation(t *testing.T) {
	s := validMaterialState()
	s.SupplierIDs = []string{"sup-1"}
	for s.Current() != StepPricing {
		if err := s.Next(); err != nil {
			t.Fatal(err)
		}
	}

	s.Pricing = []PricingEntry{{SupplierID: "", UnitPrice: 10}}
	if err := s.Next(); err == nil {
		t.Error("accepted pricing without a supplier")
	}

	s.Pricing = []PricingEntry{{SupplierID: "sup-1", UnitPrice: -1}}
	if err := s.Next(); err == nil {
		t.Error("accepted a negative unit price")
	}

	s.Pricing = []PricingEntry{{SupplierID: "sup-1", UnitPrice: 10, Currency: "EUR"}}
	if err := s.Next(); err != nil {
		t.Errorf("valid pricing rejected: %v", err)
	}
}
