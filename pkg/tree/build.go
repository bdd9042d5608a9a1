package tree

import (
	"github.com/m-mizutani/twentyq/pkg/model"
)

// Rand is the randomness source used for fallback guesses. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Build recursively partitions records by the most balanced trait and returns the tree root.
//
// A single record or an exhausted trait list yields a leaf picked at random from records;
// with several records left that pick discards the others. A split side with no records
// gets a leaf picked from the records before the split, so question nodes always have two
// children. records must not be empty; Build returns nil if it is.
func Build(records []*model.Record, traits []string, rnd Rand) *Node {
	if len(records) == 0 {
		return nil
	}
	if len(records) == 1 || len(traits) == 0 {
		return randomLeaf(records, rnd)
	}

	best := ChooseBestSplitTrait(records, traits)

	var yesGroup, noGroup []*model.Record
	for _, r := range records {
		if v, _ := r.Value(best); v == 1 {
			yesGroup = append(yesGroup, r)
		} else {
			noGroup = append(noGroup, r)
		}
	}

	remaining := make([]string, 0, len(traits)-1)
	for _, t := range traits {
		if t != best {
			remaining = append(remaining, t)
		}
	}

	return NewQuestion(best,
		buildBranch(yesGroup, records, remaining, rnd),
		buildBranch(noGroup, records, remaining, rnd),
	)
}

func buildBranch(group, parent []*model.Record, traits []string, rnd Rand) *Node {
	if len(group) == 0 {
		return randomLeaf(parent, rnd)
	}
	return Build(group, traits, rnd)
}

func randomLeaf(records []*model.Record, rnd Rand) *Node {
	if len(records) == 1 {
		return NewLeaf(records[0].ID)
	}
	return NewLeaf(records[rnd.IntN(len(records))].ID)
}

// ChooseBestSplitTrait returns the trait whose yes/no partition of records is the most
// balanced. The first trait in order wins ties. Returns empty string when traits is empty.
func ChooseBestSplitTrait(records []*model.Record, traits []string) string {
	best := ""
	bestDiff := -1
	for _, t := range traits {
		yes := 0
		for _, r := range records {
			if v, _ := r.Value(t); v == 1 {
				yes++
			}
		}
		diff := yes - (len(records) - yes)
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best, bestDiff = t, diff
		}
	}
	return best
}
