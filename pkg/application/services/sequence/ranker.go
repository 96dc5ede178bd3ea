package sequence

import (
	"sort"

	"github.com/vsinha/prodseq/pkg/domain/entities"
)

// DefaultTopN is the number of parts shown to operators
const DefaultTopN = 3

// dayGroup is the set of requirements whose earliest shortage falls on one calendar day
type dayGroup struct {
	reqs []entities.ProductionRequirement
}

// RankRequirements orders requirements by (earliest date asc, deficit desc)
// and selects at most topN of them.
//
// A day holding a single requirement absorbs the same part's requirements on
// following days until a day holding any other part is reached. A day holding
// several requirements contributes each of them, largest deficit first, marked
// as same-day contention. Ties in date and deficit keep input order.
func RankRequirements(reqs []entities.ProductionRequirement, topN int) []entities.ProductionRequirement {
	if len(reqs) == 0 || topN <= 0 {
		return nil
	}

	sorted := make([]entities.ProductionRequirement, len(reqs))
	copy(sorted, reqs)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !entities.SameDay(a.EarliestDate, b.EarliestDate) {
			return a.EarliestDate.Before(b.EarliestDate)
		}
		return a.Deficit > b.Deficit
	})

	days := groupByDay(sorted)
	selected := make([]entities.ProductionRequirement, 0, topN)

	for d := 0; d < len(days) && len(selected) < topN; d++ {
		group := days[d].reqs

		if len(group) > 1 {
			for _, req := range group {
				if len(selected) == topN {
					break
				}
				req.Flags.SameDayContention = true
				selected = append(selected, req)
			}
			continue
		}

		req := group[0]
		for d+1 < len(days) {
			next := days[d+1].reqs
			if len(next) != 1 || next[0].PartNumber != req.PartNumber {
				break
			}
			req.Deficit += next[0].Deficit
			req.Containers += next[0].Containers
			req.Flags.GroupedAcrossDays = true
			d++
		}
		selected = append(selected, req)
	}

	if len(selected) > topN {
		selected = selected[:topN]
	}
	return selected
}

func groupByDay(sorted []entities.ProductionRequirement) []dayGroup {
	var days []dayGroup
	for _, req := range sorted {
		if n := len(days); n > 0 && entities.SameDay(days[n-1].reqs[0].EarliestDate, req.EarliestDate) {
			days[n-1].reqs = append(days[n-1].reqs, req)
			continue
		}
		days = append(days, dayGroup{reqs: []entities.ProductionRequirement{req}})
	}
	return days
}
