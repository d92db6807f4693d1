package coordinator

import "fmt"

// accountant tracks aggregate resident memory against a budget. Pure
// bookkeeping: callers hold the coordinator lock.
type accountant struct {
	budgetMB int // 0 = unlimited
	usedMB   int
}

func (a *accountant) availableMB() int {
	if a.budgetMB <= 0 {
		return 0
	}
	return a.budgetMB - a.usedMB
}

func (a *accountant) wouldFit(amountMB int) bool {
	if a.budgetMB <= 0 {
		return true
	}
	return a.usedMB+amountMB <= a.budgetMB
}

func (a *accountant) recordAllocation(amountMB int) {
	a.usedMB += amountMB
}

// recordRelease returns a desync error when asked to release more than is
// tracked. Clamping here would hide cache/accountant drift.
func (a *accountant) recordRelease(amountMB int) error {
	if amountMB > a.usedMB {
		return desyncError{msg: fmt.Sprintf("release %dMB exceeds tracked %dMB", amountMB, a.usedMB)}
	}
	a.usedMB -= amountMB
	return nil
}

func (a *accountant) utilization() float64 {
	if a.budgetMB <= 0 {
		return 0
	}
	return float64(a.usedMB) / float64(a.budgetMB)
}
