package coordinator

import "testing"

func TestAccountantBookkeeping(t *testing.T) {
	a := &accountant{budgetMB: 1000}
	if !a.wouldFit(1000) {
		t.Fatalf("exact fit rejected")
	}
	if a.wouldFit(1001) {
		t.Fatalf("overshoot accepted")
	}
	a.recordAllocation(600)
	if got := a.availableMB(); got != 400 {
		t.Fatalf("available=%d want 400", got)
	}
	if a.wouldFit(401) {
		t.Fatalf("wouldFit ignored current usage")
	}
	if err := a.recordRelease(600); err != nil {
		t.Fatalf("release: %v", err)
	}
	if a.usedMB != 0 {
		t.Fatalf("used=%d want 0", a.usedMB)
	}
}

func TestAccountantOverReleaseIsDesync(t *testing.T) {
	a := &accountant{budgetMB: 1000}
	a.recordAllocation(100)
	err := a.recordRelease(200)
	if !IsDesync(err) {
		t.Fatalf("expected desync error, got %v", err)
	}
	// The bad release must not be applied.
	if a.usedMB != 100 {
		t.Fatalf("used=%d want 100", a.usedMB)
	}
}

func TestAccountantUnlimitedBudget(t *testing.T) {
	a := &accountant{}
	if !a.wouldFit(1 << 20) {
		t.Fatalf("unlimited budget rejected an allocation")
	}
	a.recordAllocation(5000)
	if a.utilization() != 0 {
		t.Fatalf("utilization without budget should be 0")
	}
	if a.availableMB() != 0 {
		t.Fatalf("available without budget should be 0")
	}
}
