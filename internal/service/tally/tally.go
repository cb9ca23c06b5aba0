package tally

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/humanbelnik/planpoker/core/internal/model"
)

type Group struct {
	Vote       string  `json:"vote"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	// VoterPercentage uses voters only as the base. Display layers may
	// show it, Percentage stays the canonical share.
	VoterPercentage float64 `json:"voter_percentage"`
}

type Result struct {
	Groups  []Group  `json:"groups"`
	Average *float64 `json:"average"`
	Voters  int      `json:"voters"`
	Total   int      `json:"total"`
}

// Compute groups participants by their current vote.
//
// Percentages are relative to every participant passed in, voters or not.
// Groups are sorted by count descending; equal counts put numeric votes
// first in ascending order, then the remaining tokens lexicographically.
// Average covers finite numeric votes only and is nil when there are none.
func Compute(participants []model.Participant) Result {
	res := Result{
		Groups: []Group{},
		Total:  len(participants),
	}

	counts := make(map[string]int)
	var (
		sum     float64
		numeric int
	)
	for _, p := range participants {
		if p.CurrentVote == nil {
			continue
		}
		v := *p.CurrentVote
		counts[v]++
		res.Voters++

		if n, ok := parseNumeric(v); ok {
			sum += n
			numeric++
		}
	}

	for vote, count := range counts {
		g := Group{
			Vote:       vote,
			Count:      count,
			Percentage: float64(count) / float64(res.Total) * 100,
		}
		g.VoterPercentage = float64(count) / float64(res.Voters) * 100
		res.Groups = append(res.Groups, g)
	}
	sort.Slice(res.Groups, func(i, j int) bool {
		return less(res.Groups[i], res.Groups[j])
	})

	if numeric > 0 {
		avg := sum / float64(numeric)
		res.Average = &avg
	}
	return res
}

func less(a, b Group) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	an, aNum := parseNumeric(a.Vote)
	bn, bNum := parseNumeric(b.Vote)
	switch {
	case aNum && bNum:
		if an != bn {
			return an < bn
		}
		return a.Vote < b.Vote
	case aNum:
		return true
	case bNum:
		return false
	default:
		return a.Vote < b.Vote
	}
}

// parseNumeric accepts decimal tokens like "5", "0.5" or "1,5".
func parseNumeric(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.Replace(v, ",", ".", 1), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
