package proof

import (
	"crypto/rand"
	"strings"
	"testing"
	"time"
)

var verifyNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func freshProof(ageProof bool) PublicProof {
	return PublicProof{
		Commitment: strings.Repeat("ab", 32),
		AgeProof:   ageProof,
		Timestamp:  verifyNow.UnixMilli(),
	}
}

func TestVerifyClaim_Structural(t *testing.T) {
	t.Parallel()

	v := NewVerifier()
	tests := []struct {
		name string
		p    PublicProof
	}{
		{"empty commitment", PublicProof{AgeProof: true, Timestamp: verifyNow.UnixMilli()}},
		{"zero timestamp", PublicProof{Commitment: strings.Repeat("ab", 32), AgeProof: true}},
		{"negative timestamp", PublicProof{Commitment: strings.Repeat("ab", 32), AgeProof: true, Timestamp: -5}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res := v.VerifyClaim(tc.p, verifyNow)
			if res.IsValid {
				t.Fatal("structurally invalid proof accepted")
			}
			if res.Message != MsgInvalidStructure {
				t.Fatalf("message = %q, want %q", res.Message, MsgInvalidStructure)
			}
		})
	}
}

func TestVerifyClaim_Expiry(t *testing.T) {
	t.Parallel()

	v := NewVerifier()
	tests := []struct {
		name      string
		ageMillis int64
		valid     bool
		message   string
	}{
		{"just inside window", 3_599_999, true, MsgClaimAccepted},
		{"exactly at window", 3_600_000, true, MsgClaimAccepted},
		{"just past window", 3_600_001, false, MsgExpired},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := freshProof(true)
			p.Timestamp = verifyNow.UnixMilli() - tc.ageMillis
			res := v.VerifyClaim(p, verifyNow)
			if res.IsValid != tc.valid {
				t.Fatalf("IsValid = %v, want %v", res.IsValid, tc.valid)
			}
			if res.Message != tc.message {
				t.Fatalf("message = %q, want %q", res.Message, tc.message)
			}
		})
	}
}

func TestVerifyClaim_FutureTimestamp(t *testing.T) {
	t.Parallel()

	v := NewVerifier()

	p := freshProof(true)
	p.Timestamp = verifyNow.Add(3 * time.Minute).UnixMilli()
	res := v.VerifyClaim(p, verifyNow)
	if res.IsValid {
		t.Fatal("proof from the future accepted")
	}
	if res.Message != MsgFutureTimestamp {
		t.Fatalf("message = %q, want %q", res.Message, MsgFutureTimestamp)
	}

	// Within the skew allowance the timestamp is treated as fresh.
	p.Timestamp = verifyNow.Add(time.Minute).UnixMilli()
	if res := v.VerifyClaim(p, verifyNow); !res.IsValid {
		t.Fatalf("proof within skew rejected: %q", res.Message)
	}
}

func TestVerifyClaim_TrustsClaimedBoolean(t *testing.T) {
	t.Parallel()

	v := NewVerifier()

	res := v.VerifyClaim(freshProof(true), verifyNow)
	if !res.IsValid || res.Message != MsgClaimAccepted {
		t.Fatalf("got (%v, %q)", res.IsValid, res.Message)
	}
	if res.ProofDetails == nil || res.ProofDetails.Mode != ModeClaimOnly {
		t.Fatalf("ProofDetails = %+v, want claim-only mode", res.ProofDetails)
	}

	res = v.VerifyClaim(freshProof(false), verifyNow)
	if res.IsValid || res.Message != MsgClaimRejected {
		t.Fatalf("got (%v, %q)", res.IsValid, res.Message)
	}

	// Without the salt the commitment cannot be checked, so any non-empty
	// content passes the claim-only path.
	p := freshProof(true)
	p.Commitment = "not-even-hex"
	if res := v.VerifyClaim(p, verifyNow); !res.IsValid {
		t.Fatalf("arbitrary commitment content rejected on claim-only path: %q", res.Message)
	}
}

func TestVerifyRecomputed(t *testing.T) {
	t.Parallel()

	v := NewVerifier()
	dob := date(2000, time.January, 2)

	private, err := Generate(rand.Reader, dob, verifyNow)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	pub := private.Public()
	disclosure := Disclosure{DateOfBirth: dob, Salt: private.Salt}

	res := v.VerifyRecomputed(pub, disclosure, verifyNow)
	if !res.IsValid || res.Message != MsgRecomputedOK {
		t.Fatalf("got (%v, %q)", res.IsValid, res.Message)
	}
	if res.ProofDetails == nil || res.ProofDetails.Mode != ModeRecomputed {
		t.Fatalf("ProofDetails = %+v, want recomputed mode", res.ProofDetails)
	}
}

func TestVerifyRecomputed_WrongSalt(t *testing.T) {
	t.Parallel()

	v := NewVerifier()
	dob := date(2000, time.January, 2)

	private, err := Generate(rand.Reader, dob, verifyNow)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	res := v.VerifyRecomputed(private.Public(), Disclosure{
		DateOfBirth: dob,
		Salt:        strings.Repeat("00", 32),
	}, verifyNow)
	if res.IsValid || res.Message != MsgCommitMismatch {
		t.Fatalf("got (%v, %q)", res.IsValid, res.Message)
	}
}

func TestVerifyRecomputed_WrongDate(t *testing.T) {
	t.Parallel()

	v := NewVerifier()
	dob := date(2000, time.January, 2)

	private, err := Generate(rand.Reader, dob, verifyNow)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	res := v.VerifyRecomputed(private.Public(), Disclosure{
		DateOfBirth: date(2000, time.January, 3),
		Salt:        private.Salt,
	}, verifyNow)
	if res.IsValid || res.Message != MsgCommitMismatch {
		t.Fatalf("got (%v, %q)", res.IsValid, res.Message)
	}
}

func TestVerifyRecomputed_InflatedClaim(t *testing.T) {
	t.Parallel()

	v := NewVerifier()
	underage := date(2010, time.January, 2)

	private, err := Generate(rand.Reader, underage, verifyNow)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	// Forge the claim to true; the commitment still matches, but the
	// recomputed eligibility does not.
	pub := private.Public()
	pub.AgeProof = true

	res := v.VerifyRecomputed(pub, Disclosure{DateOfBirth: underage, Salt: private.Salt}, verifyNow)
	if res.IsValid || res.Message != MsgClaimMismatch {
		t.Fatalf("got (%v, %q)", res.IsValid, res.Message)
	}
}

func TestVerifyRecomputed_HonestUnderage(t *testing.T) {
	t.Parallel()

	v := NewVerifier()
	underage := date(2010, time.January, 2)

	private, err := Generate(rand.Reader, underage, verifyNow)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	res := v.VerifyRecomputed(private.Public(), Disclosure{
		DateOfBirth: underage,
		Salt:        private.Salt,
	}, verifyNow)
	if res.IsValid || res.Message != MsgNotEligible {
		t.Fatalf("got (%v, %q)", res.IsValid, res.Message)
	}
}

func TestVerifyRecomputed_Expired(t *testing.T) {
	t.Parallel()

	v := NewVerifier()
	dob := date(2000, time.January, 2)

	private, err := Generate(rand.Reader, dob, verifyNow)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	later := verifyNow.Add(2 * time.Hour)
	res := v.VerifyRecomputed(private.Public(), Disclosure{DateOfBirth: dob, Salt: private.Salt}, later)
	if res.IsValid || res.Message != MsgExpired {
		t.Fatalf("got (%v, %q)", res.IsValid, res.Message)
	}
}
