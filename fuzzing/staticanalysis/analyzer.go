package staticanalysis

// Analyzer describes a static source analyzer consumed by the fuzzing engine. It is loaded with a contract once and
// produces a per-function feature Report.
type Analyzer interface {
	// LoadContract points the analyzer at the contract at the given source path with the given name.
	LoadContract(path string, name string) error

	// Run analyzes the loaded contract and returns its feature report.
	Run() (*Report, error)
}
