package fuzzing

// resampleDistinct repeatedly invokes sample, up to maxAttempts times, looking for a value distinct from exclude
// under the given equality. It returns the last sampled value and whether a distinct value was found. Callers decide
// what to do when the budget is exhausted; the mutation engine keeps the last sampled value, best-effort.
func resampleDistinct[T any](sample func() T, equals func(a, b T) bool, exclude T, maxAttempts int) (T, bool) {
	var value T
	for attempt := 0; attempt < maxAttempts; attempt++ {
		value = sample()
		if !equals(value, exclude) {
			return value, true
		}
	}
	return value, false
}
