package proof

import (
	"crypto/hmac"
	"time"

	"ageproof/internal/commit"
)

// Default verification policy.
const (
	// DefaultReplayWindow is how long after generation a proof stays
	// acceptable. A proof is expired once now-timestamp strictly exceeds the
	// window; the boundary value itself is still accepted.
	DefaultReplayWindow = time.Hour
	// DefaultClockSkew is how far into the future a timestamp may lie before
	// it is rejected rather than treated as fresh.
	DefaultClockSkew = 2 * time.Minute
)

// Verification messages. Rejections always name the real reason.
const (
	MsgInvalidStructure = "Invalid proof structure"
	MsgExpired          = "Proof has expired"
	MsgFutureTimestamp  = "Proof timestamp is in the future"
	MsgClaimAccepted    = "Proof accepted: User claims to be over 18"
	MsgClaimRejected    = "Proof rejected: User does not claim to be over 18"
	MsgRecomputedOK     = "Proof verified: commitment and age eligibility confirmed"
	MsgCommitMismatch   = "Commitment does not match disclosed date and salt"
	MsgClaimMismatch    = "Claimed age eligibility does not match disclosed date"
	MsgNotEligible      = "User is not over 18"
)

// Verification modes reported in ProofDetails.
const (
	ModeClaimOnly  = "claim-only"
	ModeRecomputed = "recomputed"
)

// VerificationResult is the decision rendered for one artifact. It is built
// fresh per call and never stored.
type VerificationResult struct {
	IsValid      bool          `json:"isValid"`
	Message      string        `json:"message"`
	ProofDetails *ProofDetails `json:"proofDetails,omitempty"`
}

// ProofDetails is the explanatory breakdown attached once an artifact has
// passed the structural check.
type ProofDetails struct {
	Commitment  string `json:"commitment"`
	AgeClaim    bool   `json:"ageClaim"`
	GeneratedAt string `json:"generatedAt"`
	Mode        string `json:"mode"`
}

// Disclosure is the out-of-band material for the recomputation path: the
// original date and salt, handed to the verifier only in a testing or
// administrative context. The production flow never carries it.
type Disclosure struct {
	DateOfBirth time.Time
	Salt        string
}

// Verifier checks public proofs against a freshness policy. The zero value is
// not usable; construct with NewVerifier or set both durations explicitly.
type Verifier struct {
	Window time.Duration
	Skew   time.Duration
}

// NewVerifier returns a Verifier with the default replay window and skew.
func NewVerifier() *Verifier {
	return &Verifier{Window: DefaultReplayWindow, Skew: DefaultClockSkew}
}

// VerifyClaim is the production path. Without the salt the commitment cannot
// be recomputed, so after the structural and freshness checks the decision
// rests on the claimed ageProof boolean alone.
func (v *Verifier) VerifyClaim(p PublicProof, now time.Time) VerificationResult {
	if res := v.precheck(p, now); res != nil {
		return *res
	}
	if !p.AgeProof {
		return VerificationResult{
			Message:      MsgClaimRejected,
			ProofDetails: details(p, ModeClaimOnly),
		}
	}
	return VerificationResult{
		IsValid:      true,
		Message:      MsgClaimAccepted,
		ProofDetails: details(p, ModeClaimOnly),
	}
}

// VerifyRecomputed is the testing/administrative path. It recomputes the
// commitment from the disclosed date and salt, recomputes eligibility from the
// disclosed date, and accepts only if the commitment matches, the recomputed
// eligibility agrees with the claim, and the claim is true.
func (v *Verifier) VerifyRecomputed(p PublicProof, d Disclosure, now time.Time) VerificationResult {
	if res := v.precheck(p, now); res != nil {
		return *res
	}

	expected := commit.Digest(CanonicalDate(d.DateOfBirth), d.Salt)
	if !hmac.Equal([]byte(expected), []byte(p.Commitment)) {
		return VerificationResult{
			Message:      MsgCommitMismatch,
			ProofDetails: details(p, ModeRecomputed),
		}
	}
	if IsAdult(d.DateOfBirth, now) != p.AgeProof {
		return VerificationResult{
			Message:      MsgClaimMismatch,
			ProofDetails: details(p, ModeRecomputed),
		}
	}
	if !p.AgeProof {
		return VerificationResult{
			Message:      MsgNotEligible,
			ProofDetails: details(p, ModeRecomputed),
		}
	}
	return VerificationResult{
		IsValid:      true,
		Message:      MsgRecomputedOK,
		ProofDetails: details(p, ModeRecomputed),
	}
}

// precheck runs the structural and freshness checks shared by both paths.
// It returns nil when the proof may proceed.
func (v *Verifier) precheck(p PublicProof, now time.Time) *VerificationResult {
	if p.Commitment == "" || p.Timestamp <= 0 {
		return &VerificationResult{Message: MsgInvalidStructure}
	}
	elapsed := now.UnixMilli() - p.Timestamp
	if elapsed < 0 && -elapsed > v.Skew.Milliseconds() {
		return &VerificationResult{Message: MsgFutureTimestamp}
	}
	if elapsed > v.Window.Milliseconds() {
		return &VerificationResult{Message: MsgExpired}
	}
	return nil
}

func details(p PublicProof, mode string) *ProofDetails {
	return &ProofDetails{
		Commitment:  p.Commitment,
		AgeClaim:    p.AgeProof,
		GeneratedAt: time.UnixMilli(p.Timestamp).UTC().Format(time.RFC3339),
		Mode:        mode,
	}
}
