package staticanalysis

// VarID identifies a contract state variable within a static analysis report.
type VarID string

// FunctionReport describes the static features of a single contract function, keyed by its 4-byte selector.
type FunctionReport struct {
	// VarsRead is the set of state variables the function reads.
	VarsRead map[VarID]struct{} `json:"varsRead"`

	// VarsWritten is the set of state variables the function writes.
	VarsWritten map[VarID]struct{} `json:"varsWritten"`

	// CallCount is the number of external (contract-to-contract) call sites within the function.
	CallCount int `json:"callCount"`

	// EncodedFeatures is the analyzer's numeric encoding of the function's features, consumed by the learned policy.
	// Its layout is an external contract of the analyzer, opaque to the fuzzing core.
	EncodedFeatures []float64 `json:"encodedFeatures"`
}

// HasExternalCall indicates whether the function performs any external call. Functions performing external calls
// are conservatively treated as always interesting mutation targets.
func (f *FunctionReport) HasExternalCall() bool {
	return f != nil && f.CallCount > 0
}

// WritesIntersect indicates whether the function's written-variable set intersects the provided read-variable set.
func (f *FunctionReport) WritesIntersect(varsRead map[VarID]struct{}) bool {
	if f == nil {
		return false
	}
	for varID := range f.VarsWritten {
		if _, ok := varsRead[varID]; ok {
			return true
		}
	}
	return false
}

// Report describes the per-function static features of a contract, produced once per contract by the static
// analyzer. It is read-only for the fuzzing core.
type Report struct {
	// Functions maps 4-byte function selector hex strings to the static features of that function.
	Functions map[string]*FunctionReport `json:"functions"`
}

// Function returns the report for the function with the given selector hex string, or nil if none exists.
func (r *Report) Function(funcHash string) *FunctionReport {
	if r == nil {
		return nil
	}
	return r.Functions[funcHash]
}
