package effectchain

// DefaultRegistry returns a Registry pre-populated with the built-in node types.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(NodeTypeGain, func(Context) (Runtime, error) {
		return &gainRuntime{}, nil
	})
	r.MustRegister(NodeTypeSwitch, func(Context) (Runtime, error) {
		return &switchRuntime{}, nil
	})
	r.MustRegister(NodeTypeSum, func(Context) (Runtime, error) {
		return sumRuntime{}, nil
	})
	r.MustRegister(NodeTypeEqualizer, func(Context) (Runtime, error) {
		return &EqualizerRuntime{}, nil
	})
	r.MustRegister(NodeTypeJungle, func(Context) (Runtime, error) {
		return &JungleRuntime{}, nil
	})

	return r
}
