package ranking

// UngroupedBucket collects records whose group key resolves to empty.
// They are kept visible rather than silently dropped.
const UngroupedBucket = "ungrouped"

// SelectTopPerGroup partitions records by group key and returns the
// single best record per group under the same total order Rank uses.
// Every group with at least one record yields exactly one winner.
func SelectTopPerGroup[T any](records []T, groupKey func(T) string, keys []SortKey[T], tieBreak func(a, b T) int) map[string]T {
	winners := make(map[string]T)

	for _, rec := range records {
		group := groupKey(rec)
		if group == "" {
			group = UngroupedBucket
		}

		current, exists := winners[group]
		if !exists || compare(rec, current, keys, tieBreak) < 0 {
			winners[group] = rec
		}
	}

	return winners
}

// GroupAll partitions records by group key without selecting, preserving
// input order within each group
func GroupAll[T any](records []T, groupKey func(T) string) map[string][]T {
	groups := make(map[string][]T)
	for _, rec := range records {
		group := groupKey(rec)
		if group == "" {
			group = UngroupedBucket
		}
		groups[group] = append(groups[group], rec)
	}
	return groups
}
