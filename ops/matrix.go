package ops

// toMatrix reshapes a row-major flat buffer into an n x n slice of slices
// that alias flat's backing array (no copy); callers that only read the
// result (e.g. linalg.Cholesky) can use it directly against a Data() buffer.
func toMatrix(flat []float64, n int) [][]float64 {
	m := make([][]float64, n)
	for i := 0; i < n; i++ {
		m[i] = flat[i*n : (i+1)*n]
	}
	return m
}

// fromMatrix flattens m row-major into dst, which must already be sized
// len(m)*len(m[0]).
func fromMatrix(dst []float64, m [][]float64) {
	for i, row := range m {
		copy(dst[i*len(row):(i+1)*len(row)], row)
	}
}
