package linalg

import (
	"fmt"
	"math"
)

// Cholesky computes the lower-triangular factor L of a symmetric
// positive-definite matrix a such that L * Lᵀ = a. a must be square; its
// upper triangle is ignored (only a[i][j] for j<=i is read).
func Cholesky(a [][]float64) ([][]float64, error) {
	n := len(a)
	for _, row := range a {
		if len(row) != n {
			return nil, fmt.Errorf("linalg: Cholesky requires a square matrix")
		}
	}

	l := make([][]float64, n)
	for i := range l {
		l[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := 0.0
			for k := 0; k < j; k++ {
				sum += l[i][k] * l[j][k]
			}
			if i == j {
				diag := a[i][i] - sum
				if diag <= 0 {
					return nil, fmt.Errorf("linalg: Cholesky requires a positive-definite matrix (diagonal %d is %g after reduction)", i, diag)
				}
				l[i][j] = math.Sqrt(diag)
			} else {
				l[i][j] = (a[i][j] - sum) / l[j][j]
			}
		}
	}
	return l, nil
}

// ForwardSubstitution solves L x = b for x, where L is lower-triangular
// (as returned by Cholesky).
func ForwardSubstitution(l [][]float64, b []float64) ([]float64, error) {
	n := len(l)
	if len(b) != n {
		return nil, fmt.Errorf("linalg: ForwardSubstitution dimension mismatch")
	}
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := b[i]
		for k := 0; k < i; k++ {
			sum -= l[i][k] * x[k]
		}
		if l[i][i] == 0 {
			return nil, fmt.Errorf("linalg: ForwardSubstitution singular at row %d", i)
		}
		x[i] = sum / l[i][i]
	}
	return x, nil
}

// BackSubstitution solves Lᵀ x = b for x, where L is lower-triangular (so
// Lᵀ is upper-triangular).
func BackSubstitution(l [][]float64, b []float64) ([]float64, error) {
	n := len(l)
	if len(b) != n {
		return nil, fmt.Errorf("linalg: BackSubstitution dimension mismatch")
	}
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := b[i]
		for k := i + 1; k < n; k++ {
			sum -= l[k][i] * x[k]
		}
		if l[i][i] == 0 {
			return nil, fmt.Errorf("linalg: BackSubstitution singular at row %d", i)
		}
		x[i] = sum / l[i][i]
	}
	return x, nil
}

// MatVec computes l * v (plain lower-triangular matrix-vector product),
// used to go from normalized z back to x = mu + L*z.
func MatVec(l [][]float64, v []float64) []float64 {
	n := len(l)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j <= i && j < len(v); j++ {
			sum += l[i][j] * v[j]
		}
		out[i] = sum
	}
	return out
}

// CovarianceFromCorrelation builds a covariance matrix from a correlation
// matrix and a vector of per-variable sigmas: cov[i][j] = corr[i][j] *
// sigma[i] * sigma[j].
func CovarianceFromCorrelation(corr [][]float64, sigma []float64) [][]float64 {
	n := len(sigma)
	cov := make([][]float64, n)
	for i := range cov {
		cov[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			cov[i][j] = corr[i][j] * sigma[i] * sigma[j]
		}
	}
	return cov
}

// DiagonalCovariance builds a covariance matrix from independent sigmas
// (zero off-diagonal).
func DiagonalCovariance(sigma []float64) [][]float64 {
	n := len(sigma)
	cov := make([][]float64, n)
	for i := range cov {
		cov[i] = make([]float64, n)
		cov[i][i] = sigma[i] * sigma[i]
	}
	return cov
}
