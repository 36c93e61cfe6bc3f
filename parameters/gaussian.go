package parameters

import (
	"github.com/katalvlaran/dagflow/core"
	"github.com/katalvlaran/dagflow/ops"
)

// GaussianConstraint constrains a Parameters group to a multivariate
// normal distribution: a central value plus either independent sigmas, a
// sigma+correlation pair, or a full covariance matrix. It wires a Cholesky
// factor and a forward/backward pair of NormalizeCorrelatedVarsTwoWays
// nodes so the group's raw values and their normalized (uncorrelated,
// zero-mean, unit-sigma) coordinates can be read, and a what-if normalized
// vector applied back onto the real parameters. Grounded on
// original_source/src/dagflow/parameters/gaussian_parameters.py's
// GaussianConstraint.
type GaussianConstraint struct {
	pars *Parameters

	central    *core.Node
	covariance *core.Node
	matrix     *core.Node // Cholesky factor (or its diagonal)
	z          *core.Node // editable normalized-coordinates source for SetNormalized
	forward    *core.Node // value -> normvalue
	backward   *core.Node // normvalue -> value
}

// GaussianOption configures NewGaussianConstraint.
type GaussianOption func(*gaussianConfig)

type gaussianConfig struct {
	sigma       []float64
	correlation [][]float64
	covariance  [][]float64
}

// WithSigma supplies independent (optionally correlated, via
// WithCorrelation) per-parameter sigmas.
func WithSigma(sigma []float64) GaussianOption {
	return func(c *gaussianConfig) { c.sigma = sigma }
}

// WithCorrelation supplies a correlation matrix to pair with WithSigma.
func WithCorrelation(corr [][]float64) GaussianOption {
	return func(c *gaussianConfig) { c.correlation = corr }
}

// WithCovariance supplies a full covariance matrix directly, bypassing
// sigma/correlation assembly.
func WithCovariance(cov [][]float64) GaussianOption {
	return func(c *gaussianConfig) { c.covariance = cov }
}

// NewGaussianConstraint builds a GaussianConstraint for pars given its
// central value and one of WithCovariance or WithSigma(+WithCorrelation).
// It does not call pars.SetConstraint; callers decide whether to attach it.
func NewGaussianConstraint(pars *Parameters, central []float64, opts ...GaussianOption) *GaussianConstraint {
	cfg := &gaussianConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	// Every node this constructor builds must land in pars's own graph, so
	// Graph.CloseAll reaches it exactly like any node the caller built by
	// hand; WithNodeGraph(nil) is a no-op, so a Parameters group built
	// without a graph still works, just without CloseAll coverage.
	g := pars.node.Graph()
	graphOpt := core.WithNodeGraph(g)

	centralNode := ops.NewArray(pars.name+".central", central, graphOpt)
	gc := &GaussianConstraint{pars: pars, central: centralNode}

	var matrixNode *core.Node
	if cfg.covariance != nil {
		covNode := ops.NewArray(pars.name+".covariance", flatten(cfg.covariance), graphOpt)
		gc.covariance = covNode
		matrixNode = ops.NewCholesky(pars.name+".L", graphOpt)
		if _, err := covNode.Outputs().At(0).ConnectToNode(matrixNode); err != nil {
			panic(err)
		}
	} else {
		sigmaNode := ops.NewArray(pars.name+".sigma", cfg.sigma, graphOpt)
		covBuild := ops.NewCovarianceBuild(pars.name+".covariance", graphOpt)
		sigmaIn, _ := covBuild.Inputs().ByName("sigma")
		if err := sigmaNode.Outputs().At(0).ConnectTo(sigmaIn, false); err != nil {
			panic(err)
		}
		if cfg.correlation != nil {
			corrNode := ops.NewArray(pars.name+".correlation", flatten(cfg.correlation), graphOpt)
			corrIn, _ := covBuild.Inputs().ByName("correlation")
			if err := corrNode.Outputs().At(0).ConnectTo(corrIn, false); err != nil {
				panic(err)
			}
		}
		gc.covariance = covBuild
		matrixNode = ops.NewCholesky(pars.name+".L", graphOpt)
		if _, err := covBuild.Outputs().At(0).ConnectToNode(matrixNode); err != nil {
			panic(err)
		}
	}
	gc.matrix = matrixNode

	forward := ops.NewNormalizeCorrelatedVarsTwoWays(pars.name+".forward", ops.NormalizeForward, graphOpt)
	backward := ops.NewNormalizeCorrelatedVarsTwoWays(pars.name+".backward", ops.NormalizeBackward, graphOpt)
	gc.forward, gc.backward = forward, backward

	wireCentralAndMatrix(centralNode, matrixNode, forward)
	wireCentralAndMatrix(centralNode, matrixNode, backward)

	valueIn, _ := forward.Inputs().ByName("value")
	if err := pars.output.ConnectTo(valueIn, false); err != nil {
		panic(err)
	}

	zNode := ops.NewArray(pars.name+".z", make([]float64, len(central)), graphOpt)
	gc.z = zNode
	normIn, _ := backward.Inputs().ByName("normvalue")
	if err := zNode.Outputs().At(0).ConnectTo(normIn, false); err != nil {
		panic(err)
	}

	return gc
}

func wireCentralAndMatrix(central, matrix, node *core.Node) {
	centralIn, _ := node.Inputs().ByName("central")
	_ = central.Outputs().At(0).ConnectTo(centralIn, false)
	matrixIn, _ := node.Inputs().ByName("matrix")
	_ = matrix.Outputs().At(0).ConnectTo(matrixIn, false)
}

// Normalized reads the group's current normalized (uncorrelated,
// zero-mean, unit-sigma) coordinates, recomputing the forward transform if
// stale. Implements the Constraint interface.
func (gc *GaussianConstraint) Normalized() []float64 {
	out, _ := gc.forward.Outputs().ByName("normvalue")
	data := out.Data()
	cp := make([]float64, len(data))
	copy(cp, data)
	return cp
}

// SetNormalized installs z as a what-if normalized coordinate vector,
// without touching the group's real parameters yet; call ApplyNormalized
// to push the corresponding raw values onto pars.
func (gc *GaussianConstraint) SetNormalized(z []float64) {
	ops.SetArrayData(gc.z.Outputs().At(0), z)
}

// ApplyNormalized recomputes the backward transform from the last
// SetNormalized call and pushes the resulting raw values onto every
// Parameter in the group (via Parameter.Push, not SetValue), so a later
// Parameter.Pop restores exactly what was there before.
func (gc *GaussianConstraint) ApplyNormalized() error {
	if err := gc.backward.Touch(); err != nil {
		return err
	}
	out, _ := gc.backward.Outputs().ByName("value")
	data := out.Data()
	for i, par := range gc.pars.pars {
		par.Push(data[i])
	}
	return nil
}

func flatten(m [][]float64) []float64 {
	if len(m) == 0 {
		return nil
	}
	out := make([]float64, 0, len(m)*len(m[0]))
	for _, row := range m {
		out = append(out, row...)
	}
	return out
}
