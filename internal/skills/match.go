package skills

import "math"

// MatchResult describes how a candidate skill set covers a required one.
type MatchResult struct {
	Score         float64 `json:"score"`
	Matched       Set     `json:"matched"`
	Missing       Set     `json:"missing"`
	TotalRequired int     `json:"total_required"`
	TotalMatched  int     `json:"total_matched"`
}

// Score compares candidate against required. An empty required set yields a zero result.
func Score(candidate, required Set) MatchResult {
	if required.Len() == 0 {
		return MatchResult{}
	}

	matched := required.Intersect(candidate)
	missing := required.Difference(candidate)

	return MatchResult{
		Score:         roundTenth(100 * float64(matched.Len()) / float64(required.Len())),
		Matched:       matched,
		Missing:       missing,
		TotalRequired: required.Len(),
		TotalMatched:  matched.Len(),
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
