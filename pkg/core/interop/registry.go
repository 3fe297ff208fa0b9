package interop

import "github.com/synapse-chain/synapse/pkg/core/interop/interopnames"

// Function is one registered syscall: its identifier, the ASCII name it
// was derived from, its static gas price (in 10⁻³ GAS, zero meaning
// "variable, computed by Func itself"), and its handler.
type Function struct {
	ID    uint32
	Name  string
	Price int64
	Func  func(*Context) error
}

// Registry maps method identifiers to their registered Function.
type Registry struct {
	methods map[uint32]*Function
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{methods: make(map[uint32]*Function)}
}

// Register adds fn, keyed by fn.ID. A caller that didn't set fn.ID can
// instead pass a raw name; RegisterName fills it in. Registering over an
// existing ID replaces the prior entry.
func (r *Registry) Register(fn Function) {
	r.methods[fn.ID] = &fn
}

// RegisterName registers fn under the identifier derived from name via
// interopnames.ToID, setting fn.Name and fn.ID from it.
func (r *Registry) RegisterName(name string, price int64, handler func(*Context) error) {
	r.Register(Function{
		ID:    interopnames.ToID([]byte(name)),
		Name:  name,
		Price: price,
		Func:  handler,
	})
}

// Get returns the Function registered under id, or nil.
func (r *Registry) Get(id uint32) *Function {
	return r.methods[id]
}

// Invoke resolves method to a Function and runs it against ic. If method
// is exactly 4 bytes it is read directly as a little-endian identifier;
// otherwise the identifier is derived from its hash. A resolution miss
// returns (false, nil): the caller (the VM) is expected to fault the
// frame on a false return without treating it as a Go error. An error
// returned by the handler itself propagates unchanged.
func (r *Registry) Invoke(ic *Context, method []byte) (bool, error) {
	var id uint32
	if len(method) == 4 {
		id = uint32(method[0]) | uint32(method[1])<<8 | uint32(method[2])<<16 | uint32(method[3])<<24
	} else {
		id = interopnames.ToID(method)
	}
	fn := r.Get(id)
	if fn == nil {
		return false, nil
	}
	ic.Metrics.Observe(fn.Name, fn.Price)
	if err := fn.Func(ic); err != nil {
		return false, err
	}
	return true, nil
}
