package stereo

// AdapterBuilderOption is a functional option applied to an adapter during construction via NewAdapter.
type AdapterBuilderOption func(*adapterImpl)

// WithProvider sets the provider used by Discover. A nil provider is ignored.
//
// Parameters:
//   - p: the display provider
//
// Returns:
//   - AdapterBuilderOption: a function that sets the provider
func WithProvider(p Provider) AdapterBuilderOption {
	return func(a *adapterImpl) {
		if p != nil {
			a.provider = p
		}
	}
}

// WithDisplay selects d up front, skipping enumeration.
//
// Parameters:
//   - d: the display to select
//
// Returns:
//   - AdapterBuilderOption: a function that preselects the display
func WithDisplay(d Display) AdapterBuilderOption {
	return func(a *adapterImpl) {
		a.display = d
	}
}

// WithEnumerationWorkers sets the number of workers available to enumeration tasks.
func WithEnumerationWorkers(n int) AdapterBuilderOption {
	return func(a *adapterImpl) {
		if n > 0 {
			a.workers = n
		}
	}
}
