package core

import "sort"

// reconcile merges within-budget and over-budget packages into the final
// ordered output. An empty result set is a worse outcome than a
// slightly-over-budget one, so when too few in-budget packages exist the
// cheapest over-budget ones top the list up; the exactMatch flag lets the
// caller disclose that honestly instead of silently mixing tiers.
//
// Waterfall, given minResults n:
//  1. |within| >= n, or the budget is unbounded: within, exact.
//  2. within empty: the n cheapest over-budget, not exact.
//  3. otherwise: within topped up with the cheapest (n - |within|)
//     over-budget entries appended after it, not exact.
func reconcile(pkgs []*Package, minResults int, unbounded bool) ([]Package, bool) {
	var within, over []Package
	for _, p := range pkgs {
		if p == nil {
			continue
		}
		if p.OverBudget {
			over = append(over, *p)
		} else {
			within = append(within, *p)
		}
	}
	sortByTotalPrice(within)
	sortByTotalPrice(over)

	switch {
	case len(within) == 0 && len(over) == 0:
		return []Package{}, false
	case unbounded:
		return within, true
	case len(within) >= minResults:
		return within, true
	case len(within) == 0:
		n := min(minResults, len(over))
		return over[:n], false
	default:
		need := min(minResults-len(within), len(over))
		return append(within, over[:need]...), false
	}
}

func sortByTotalPrice(pkgs []Package) {
	sort.SliceStable(pkgs, func(i, j int) bool {
		return pkgs[i].TotalPrice < pkgs[j].TotalPrice
	})
}
