package srs

import "sort"

// SortDue orders due progress records for a session: never-reviewed
// entries first, then lowest ease (hardest material), then earliest
// due date.
func SortDue(items []Progress) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if (a.TotalReviews == 0) != (b.TotalReviews == 0) {
			return a.TotalReviews == 0
		}
		if a.Ease != b.Ease {
			return a.Ease < b.Ease
		}
		return a.NextReview.Before(b.NextReview)
	})
}
