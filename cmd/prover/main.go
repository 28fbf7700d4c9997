package main

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"ageproof/internal/proof"
)

// Default server base URL; can override with AGEPROOF_SERVER env var or --server flag.
var serverBaseURL = "http://localhost:8080"

func main() {
	dob := flag.String("dob", "", "Birth date as YYYY-MM-DD (required)")
	serverFlag := flag.String("server", "", "Override server base URL (e.g. https://verifier.example.com)")
	submit := flag.Bool("submit", false, "Submit the public proof to the verifier and print the decision")
	disclose := flag.Bool("disclose", false, "Print the date+salt disclosure to stderr for out-of-band recomputation")
	flag.Parse()

	if env := os.Getenv("AGEPROOF_SERVER"); env != "" {
		serverBaseURL = strings.TrimRight(env, "/")
	}
	if *serverFlag != "" {
		serverBaseURL = strings.TrimRight(*serverFlag, "/")
	}
	if *dob == "" {
		fmt.Println("--dob required")
		os.Exit(1)
	}

	if err := run(*dob, *submit, *disclose); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func run(dob string, submit, disclose bool) error {
	dateOfBirth, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return fmt.Errorf("parse birth date: %w", err)
	}

	private, err := proof.Generate(rand.Reader, dateOfBirth, time.Now())
	if err != nil {
		return err
	}
	public := private.Public()

	if disclose {
		// The disclosure goes to stderr so the public artifact on stdout
		// stays clean. This is the testing/administrative channel only;
		// without --disclose the salt is discarded with the private record.
		fmt.Fprintf(os.Stderr, `{"dateOfBirth": %q, "salt": %q}`+"\n",
			proof.CanonicalDate(dateOfBirth), private.Salt)
	}

	out, err := json.MarshalIndent(public, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if !submit {
		return nil
	}
	return submitProof(out)
}

func submitProof(body []byte) error {
	resp, err := http.Post(serverBaseURL+"/verify", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("submit proof: %w", err)
	}
	defer resp.Body.Close()

	var decision struct {
		IsValid   bool   `json:"isValid"`
		Message   string `json:"message"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decision); err != nil {
		return fmt.Errorf("decode decision: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("verifier returned %s", resp.Status)
	}
	fmt.Printf("Decision: isValid=%v message=%q at %s\n", decision.IsValid, decision.Message, decision.Timestamp)
	return nil
}
