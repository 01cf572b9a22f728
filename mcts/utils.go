package mcts

import "github.com/chewxy/math32"

// argmax returns the index of the maximum. Ties go to the first occurrence.
func argmax(a []float32) int {
	var retVal int
	var max float32 = math32.Inf(-1)
	for i := range a {
		if a[i] > max {
			max = a[i]
			retVal = i
		}
	}
	return retVal
}
