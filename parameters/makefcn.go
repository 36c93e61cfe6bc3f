package parameters

import (
	"strings"

	"github.com/katalvlaran/dagflow/core"
	"github.com/katalvlaran/dagflow/storage"
)

// Fcn is a callable objective: given a map of parameter name to what-if
// value, it pushes each value, touches the wrapped node, reads its first
// output, and pops every pushed value back before returning, so repeated
// calls never leak state into each other.
type Fcn func(values map[string]float64) ([]float64, error)

// MakeFcn resolves parNames against store permissively (a bare name
// matches any stored *Parameter whose dotted path ends with it) and
// returns a safe closure that evaluates node with those parameters
// temporarily overridden. Grounded on
// original_source/src/dagflow/core/make_fcn.py's make_fcn, whose
// fcn_safe does exactly this push/touch/read/pop sequence (fcn_unsafe,
// which skips the pop for speed at the caller's own risk, is intentionally
// not ported: nothing in this engine needs the unsafe variant).
func MakeFcn(node *core.Node, store *storage.NodeStorage, parNames []string) (Fcn, error) {
	pars := make(map[string]*Parameter, len(parNames))
	for _, name := range parNames {
		par, err := findParPermissive(store, name)
		if err != nil {
			return nil, err
		}
		pars[name] = par
	}

	return func(values map[string]float64) ([]float64, error) {
		pushed := make([]*Parameter, 0, len(values))
		for name, v := range values {
			par, ok := pars[name]
			if !ok {
				continue
			}
			par.Push(v)
			pushed = append(pushed, par)
		}
		defer func() {
			for i := len(pushed) - 1; i >= 0; i-- {
				pushed[i].Pop()
			}
		}()

		if err := node.Touch(); err != nil {
			return nil, err
		}
		data := node.Outputs().At(0).Data()
		result := make([]float64, len(data))
		copy(result, data)
		return result, nil
	}, nil
}

func findParPermissive(store *storage.NodeStorage, name string) (*Parameter, error) {
	if v, ok := store.Get(name); ok {
		if par, ok := v.(*Parameter); ok {
			return par, nil
		}
	}
	var found *Parameter
	_ = store.Walk(func(path string, value any) error {
		if found != nil {
			return nil
		}
		if !strings.HasSuffix(path, name) {
			return nil
		}
		if par, ok := value.(*Parameter); ok {
			found = par
		}
		return nil
	})
	if found == nil {
		return nil, core.NewError(core.KindInitialization, "parameter not found: "+name)
	}
	return found, nil
}
