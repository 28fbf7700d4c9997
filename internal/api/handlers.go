package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ageproof/internal/auth"
	"ageproof/internal/proof"
	"ageproof/internal/utils"
)

// Handler serves the verifier endpoints. A nil Auth disables the
// administrative surface.
type Handler struct {
	verifier *proof.Verifier
	auth     *auth.Auth
	log      *utils.Logger
	now      func() time.Time
}

// NewHandler wires a Handler around a verifier, the optional admin auth, and
// the logger.
func NewHandler(v *proof.Verifier, a *auth.Auth, log *utils.Logger) *Handler {
	return &Handler{verifier: v, auth: a, log: log, now: time.Now}
}

// verifyRequest mirrors the wire shape of a public proof. Pointer fields
// distinguish a missing field from a zero value so structural violations are
// rejected at the transport boundary, before the verifier runs.
type verifyRequest struct {
	Commitment *string `json:"commitment"`
	AgeProof   *bool   `json:"ageProof"`
	Timestamp  *int64  `json:"timestamp"`
}

// adminVerifyRequest adds the out-of-band disclosure for the recomputation
// path.
type adminVerifyRequest struct {
	verifyRequest
	DateOfBirth *string `json:"dateOfBirth"`
	Salt        *string `json:"salt"`
}

type verifyResponse struct {
	IsValid      bool                `json:"isValid"`
	Message      string              `json:"message"`
	Timestamp    string              `json:"timestamp"`
	ProofDetails *proof.ProofDetails `json:"proofDetails,omitempty"`
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// GetTimeHandler returns the current server time in RFC3339 format
func (h *Handler) GetTimeHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"time": h.now().Format(time.RFC3339)})
}

// VerifyHandler is the production verification endpoint: claim-only, no
// disclosure. A rejected proof is a normal outcome and still returns 200.
func (h *Handler) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	pub, err := req.toPublicProof()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := h.verifier.VerifyClaim(pub, h.now())
	h.writeResult(w, result)
}

// AdminVerifyHandler is the recomputation endpoint: the caller additionally
// discloses the original date and salt out-of-band. Token-protected; never
// part of the production flow.
func (h *Handler) AdminVerifyHandler(w http.ResponseWriter, r *http.Request) {
	var req adminVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	pub, err := req.toPublicProof()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DateOfBirth == nil || req.Salt == nil {
		writeError(w, http.StatusBadRequest, "missing required field: dateOfBirth and salt")
		return
	}
	dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
	if err != nil {
		writeError(w, http.StatusBadRequest, "dateOfBirth must be YYYY-MM-DD")
		return
	}

	result := h.verifier.VerifyRecomputed(pub, proof.Disclosure{
		DateOfBirth: dob,
		Salt:        *req.Salt,
	}, h.now())
	h.writeResult(w, result)
}

// LoginHandler exchanges the admin password for a short-lived token.
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	token, expiresAt, err := h.auth.Login(req.Password, h.now())
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.log.Error(fmt.Sprintf("admin login: %v", err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
}

func (req *verifyRequest) toPublicProof() (proof.PublicProof, error) {
	switch {
	case req.Commitment == nil:
		return proof.PublicProof{}, errors.New("missing required field: commitment")
	case req.AgeProof == nil:
		return proof.PublicProof{}, errors.New("missing required field: ageProof")
	case req.Timestamp == nil:
		return proof.PublicProof{}, errors.New("missing required field: timestamp")
	}
	return proof.PublicProof{
		Commitment: *req.Commitment,
		AgeProof:   *req.AgeProof,
		Timestamp:  *req.Timestamp,
	}, nil
}

func (h *Handler) writeResult(w http.ResponseWriter, result proof.VerificationResult) {
	writeJSON(w, http.StatusOK, verifyResponse{
		IsValid:      result.IsValid,
		Message:      result.Message,
		Timestamp:    h.now().Format(time.RFC3339),
		ProofDetails: result.ProofDetails,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
