package core

import "reflect"

// Dtype identifies the element type carried by a buffer. The engine only
// ever moves float64/int64/bool data, matching the numeric subset the
// reference implementation actually exercises (numpy's d/i8/bool dtypes).
type Dtype int

const (
	DtypeUnset Dtype = iota
	DtypeFloat64
	DtypeInt64
	DtypeBool
)

func (d Dtype) String() string {
	switch d {
	case DtypeFloat64:
		return "float64"
	case DtypeInt64:
		return "int64"
	case DtypeBool:
		return "bool"
	default:
		return "unset"
	}
}

// Edges holds the axis-edges metadata (bin boundaries) attached to one axis
// of a buffer, the Go analogue of the reference implementation's
// axes_edges entries.
type Edges struct {
	Data []float64
}

// Mesh holds the axis-mesh metadata (sample points) attached to one axis of
// a buffer.
type Mesh struct {
	Data []float64
}

// DataDescriptor describes the shape and typing of a buffer without owning
// the buffer itself: dtype, shape, and optional per-axis edges/meshes used
// by type functions to validate and propagate axis metadata across a graph.
type DataDescriptor struct {
	Dtype      Dtype
	Shape      []int
	AxesEdges  []*Edges
	AxesMeshes []*Mesh
}

// NewDataDescriptor builds a descriptor for the given dtype and shape.
func NewDataDescriptor(dtype Dtype, shape ...int) *DataDescriptor {
	s := make([]int, len(shape))
	copy(s, shape)
	return &DataDescriptor{Dtype: dtype, Shape: s}
}

// Rank is the number of dimensions of Shape.
func (d *DataDescriptor) Rank() int { return len(d.Shape) }

// Size is the total element count implied by Shape (1 for a rank-0/scalar
// descriptor, 0 if any dimension is zero).
func (d *DataDescriptor) Size() int {
	if len(d.Shape) == 0 {
		return 1
	}
	size := 1
	for _, dim := range d.Shape {
		size *= dim
	}
	return size
}

// ConsistentWith reports whether d and other agree on dtype and shape.
func (d *DataDescriptor) ConsistentWith(other *DataDescriptor) bool {
	if other == nil {
		return false
	}
	return d.Dtype == other.Dtype && reflect.DeepEqual(d.Shape, other.Shape)
}

// Clone returns a deep-enough copy safe to mutate independently of d.
func (d *DataDescriptor) Clone() *DataDescriptor {
	shape := make([]int, len(d.Shape))
	copy(shape, d.Shape)
	edges := make([]*Edges, len(d.AxesEdges))
	copy(edges, d.AxesEdges)
	meshes := make([]*Mesh, len(d.AxesMeshes))
	copy(meshes, d.AxesMeshes)
	return &DataDescriptor{Dtype: d.Dtype, Shape: shape, AxesEdges: edges, AxesMeshes: meshes}
}
