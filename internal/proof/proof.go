// Package proof implements the age-eligibility proof protocol: generation of a
// salted commitment over a private birth date, projection of the public
// artifact, and verification of submitted artifacts.
//
// Trust model: the production verification path (VerifyClaim) has no access to
// the salt and cannot recompute the commitment, so it trusts the claimed
// ageProof boolean. On that path the commitment is an unlinkable,
// privacy-preserving receipt, not a cryptographically checked assertion. Only
// the recomputation path (VerifyRecomputed), fed an out-of-band disclosure of
// the date and salt, checks the commitment itself.
package proof

import (
	"errors"
	"io"
	"time"

	"ageproof/internal/commit"
)

// AdultYears is the eligibility threshold in whole calendar years.
const AdultYears = 18

var (
	// ErrInvalidDate is returned when the birth date is not a real calendar date.
	ErrInvalidDate = errors.New("invalid birth date")
	// ErrFutureDate is returned when the birth date lies after the current date.
	ErrFutureDate = errors.New("birth date is in the future")
)

// PrivateProof is the full proof record. It exists only in prover memory and
// is discarded once the public projection has been taken. The salt is excluded
// from JSON so no code path can serialize it by accident.
type PrivateProof struct {
	Commitment string `json:"commitment"`
	AgeProof   bool   `json:"ageProof"`
	Timestamp  int64  `json:"timestamp"`
	Salt       string `json:"-"`
}

// PublicProof is the only artifact that leaves the prover: the private record
// minus the salt. It is always a projection of a PrivateProof, never built on
// its own.
type PublicProof struct {
	Commitment string `json:"commitment"`
	AgeProof   bool   `json:"ageProof"`
	Timestamp  int64  `json:"timestamp"`
}

// Generate creates a proof for the given birth date. The random source and
// current time are injected so callers and tests control both. Each call draws
// a fresh 256-bit salt, so two proofs for the same date carry different
// commitments.
func Generate(random io.Reader, dateOfBirth, now time.Time) (*PrivateProof, error) {
	if dateOfBirth.IsZero() {
		return nil, ErrInvalidDate
	}
	if calendarDay(dateOfBirth).After(calendarDay(now)) {
		return nil, ErrFutureDate
	}

	salt, err := commit.NewSalt(random)
	if err != nil {
		return nil, err
	}

	return &PrivateProof{
		Commitment: commit.Digest(CanonicalDate(dateOfBirth), salt),
		AgeProof:   IsAdult(dateOfBirth, now),
		Timestamp:  now.UnixMilli(),
		Salt:       salt,
	}, nil
}

// Public projects the transmitted artifact: commitment, claim and timestamp,
// never the salt.
func (p *PrivateProof) Public() PublicProof {
	return PublicProof{
		Commitment: p.Commitment,
		AgeProof:   p.AgeProof,
		Timestamp:  p.Timestamp,
	}
}

// AgeInYears computes age in whole calendar years, counting a year only once
// its month/day anniversary has passed. Someone whose birthday falls later in
// the current year is one year younger than the raw year difference.
func AgeInYears(dateOfBirth, now time.Time) int {
	years := now.Year() - dateOfBirth.Year()
	if now.Month() < dateOfBirth.Month() ||
		(now.Month() == dateOfBirth.Month() && now.Day() < dateOfBirth.Day()) {
		years--
	}
	return years
}

// IsAdult reports whether the subject is at least AdultYears old. The exact
// anniversary counts as eligible.
func IsAdult(dateOfBirth, now time.Time) bool {
	return AgeInYears(dateOfBirth, now) >= AdultYears
}

// CanonicalDate renders a date in the canonical YYYY-MM-DD form the commitment
// is computed over. Time-of-day and timezone are discarded.
func CanonicalDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
