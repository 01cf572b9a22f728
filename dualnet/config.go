// Package dual provides the dual-headed network behind the engine's value
// and policy oracles: a shared residual tower with a policy head over the
// full move capacity and a value head squashed into [0, 1].
package dual

// Config configures the neural network
type Config struct {
	K            int // number of filters
	SharedLayers int // number of shared residual blocks
	FC           int // fc layer width

	BatchSize     int // batch size
	Width, Height int // board size
	Features      int // feature planes

	ActionSpace int  // policy head width
	FwdOnly     bool // is this a fwd only graph?
}

// DefaultConf returns the configuration for a board of the given geometry
// and move capacity.
func DefaultConf(m, n, features, actionSpace int) Config {
	k := round((m * n) / 3)
	return Config{
		K:            k,
		SharedLayers: m,
		FC:           2 * k,

		BatchSize:   256,
		Width:       n,
		Height:      m,
		Features:    features,
		ActionSpace: actionSpace,
	}
}

func (conf Config) IsValid() bool {
	return conf.K >= 1 &&
		conf.ActionSpace >= 3 &&
		conf.SharedLayers >= 0 &&
		conf.FC > 1 &&
		conf.BatchSize >= 1 &&
		conf.Features > 0
}

// round rounds to the nearest power of two.
func round(a int) int {
	n := a - 1
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++

	lt := n / 2
	if (a - lt) < (n - a) {
		return lt
	}
	return n
}
