package ops

import (
	"github.com/katalvlaran/dagflow/core"
	"github.com/katalvlaran/dagflow/linalg"
	"github.com/katalvlaran/dagflow/typefuncs"
)

// NewCovarianceBuild assembles a covariance matrix from a "sigma" input
// (per-variable standard deviations) and an optional "correlation" input
// (a square matrix, identity if left unconnected). With no correlation
// input the result is the diagonal covariance sigma[i]^2. Grounded on
// original_source/src/dagflow/lib/statistics/covariance.py's
// CovarianceFromCorrelation node, and on linalg.CovarianceFromCorrelation /
// linalg.DiagonalCovariance for the actual arithmetic.
func NewCovarianceBuild(name string, opts ...core.NodeOption) *core.Node {
	allOpts := append([]core.NodeOption{
		core.WithNodeTypeFunc(covarianceTypeFunc),
		core.WithNodeCompute("main", covarianceCompute),
	}, opts...)
	n := core.NewNode(name, allOpts...)
	n.AddInput("sigma")
	n.AddInput("correlation")
	n.AddOutput("result")
	return n
}

func covarianceTypeFunc(n *core.Node) error {
	sigma, _ := n.Inputs().ByName("sigma")
	if err := typefuncs.CheckDimensionOfInputs(n, []*core.Input{sigma}, 1); err != nil {
		return err
	}
	size := sigma.DD().Shape[0]
	if corr, ok := n.Inputs().ByName("correlation"); ok && corr.Connected() {
		if err := typefuncs.CheckInputsAreSquareMatrices(n, []*core.Input{corr}); err != nil {
			return err
		}
		if corr.DD().Shape[0] != size {
			return core.NewError(core.KindTypeFunction, "correlation matrix size does not match sigma", core.WithInput(corr))
		}
	}
	out, _ := n.Outputs().ByName("result")
	out.SetDD(core.NewDataDescriptor(core.DtypeFloat64, size, size))
	return nil
}

func covarianceCompute(n *core.Node) error {
	sigma, _ := n.Inputs().ByName("sigma")
	out, _ := n.Outputs().ByName("result")
	size := sigma.DD().Shape[0]

	var cov [][]float64
	if corr, ok := n.Inputs().ByName("correlation"); ok && corr.Connected() {
		cov = linalg.CovarianceFromCorrelation(toMatrix(corr.Data(), size), sigma.Data())
	} else {
		cov = linalg.DiagonalCovariance(sigma.Data())
	}
	fromMatrix(out.DataUnsafe(), cov)
	return nil
}
