package detection

import (
	"fmt"

	"github.com/cinderfuzz/cinder/fuzzing/calls"
	"github.com/google/uuid"
)

// KindExploit tags findings which represent an exploit of contract-owned funds. The engine post-processes findings
// of this kind to attach transaction context.
const KindExploit = "Exploit"

// Finding describes a single vulnerability classification produced by a detector, or synthesized by the engine
// itself (eg a balance-increment exploit).
type Finding struct {
	// ID uniquely identifies this finding instance.
	ID uuid.UUID `json:"id"`

	// Kind is the detector-assigned classification tag of the finding.
	Kind string `json:"kind"`

	// Evidence carries whatever supporting evidence the detector chose to attach.
	Evidence string `json:"evidence"`

	// Sequence is the transaction sequence which produced the finding. Findings are produced by detectors without
	// transaction context; the engine attaches the executed sequence afterward.
	Sequence *calls.CallSequence `json:"sequence,omitempty"`
}

// NewFinding creates a finding with the given kind and evidence.
func NewFinding(kind string, evidence string) *Finding {
	return &Finding{
		ID:       uuid.New(),
		Kind:     kind,
		Evidence: evidence,
	}
}

// NewExploitFinding creates an Exploit-kind finding with the given evidence and transaction sequence attached.
func NewExploitFinding(evidence string, sequence *calls.CallSequence) *Finding {
	finding := NewFinding(KindExploit, evidence)
	finding.Sequence = sequence
	return finding
}

// DedupKey returns a key identifying findings which describe the same discovery, used to deduplicate the findings
// accumulated across an episode.
func (f *Finding) DedupKey() string {
	return fmt.Sprintf("%s/%s", f.Kind, f.Evidence)
}

// String returns a human-readable representation of the finding.
func (f *Finding) String() string {
	return fmt.Sprintf("[%s] %s", f.Kind, f.Evidence)
}
