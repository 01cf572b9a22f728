package dual

import (
	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Inferencer holds a forward-only clone of a *Dual and a VM, so inference
// does not pay for VM construction on every call. It serves as both the
// value oracle and the policy oracle of the search: both read their answer
// off the same forward pass.
type Inferencer struct {
	d *Dual
	m G.VM

	input *tensor.Dense
}

// Infer takes a trained *Dual and creates the inference data structure.
func Infer(d *Dual) (*Inferencer, error) {
	conf := d.Config
	conf.FwdOnly = true
	conf.BatchSize = 1

	newShape := d.planes.Shape().Clone()
	newShape[0] = 1
	retVal := &Inferencer{
		d:     New(conf),
		input: tensor.New(tensor.WithShape(newShape...), tensor.Of(Float)),
	}
	if err := retVal.d.Init(); err != nil {
		return nil, err
	}
	retVal.d.SetTesting()

	infModel := retVal.d.Model()
	for i, n := range d.Model() {
		original := n.Value().Data().([]float32)
		cloned := infModel[i].Value().Data().([]float32)
		copy(cloned, original)
	}

	retVal.m = G.NewTapeMachine(retVal.d.g)
	return retVal, nil
}

// Dual returns the underlying fwd-only network.
func (m *Inferencer) Dual() *Dual { return m.d }

// infer runs one forward pass on the encoded board.
func (m *Inferencer) infer(board []float32) (policy []float32, value float32, err error) {
	for _, op := range m.d.ops {
		op.Reset()
	}

	// copy board to the provided preallocated input tensor
	m.input.Zero()
	data := m.input.Data().([]float32)
	copy(data, board)

	m.m.Reset()
	G.Let(m.d.planes, m.input)
	if err = m.m.RunAll(); err != nil {
		return nil, 0, errors.WithMessage(err, "dual net forward pass")
	}
	policy = m.d.policyValue.Data().([]float32)
	value = m.d.value.Data().([]float32)[0]
	return policy[:m.d.ActionSpace], value, nil
}

// Value implements the search's value oracle: P(White wins) in [0, 1].
func (m *Inferencer) Value(board []float32) (float32, error) {
	_, value, err := m.infer(board)
	return value, err
}

// Policy implements the search's policy oracle: raw per-slot scores over the
// whole move capacity.
func (m *Inferencer) Policy(board []float32) ([]float32, error) {
	policy, _, err := m.infer(board)
	if err != nil {
		return nil, err
	}
	retVal := make([]float32, len(policy))
	copy(retVal, policy)
	return retVal, nil
}

// Close implements a closer, because well, a gorgonia VM is a resource.
func (m *Inferencer) Close() error { return m.m.Close() }
