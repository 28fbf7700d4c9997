package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	adminPassword := flag.String("admin-password", "", "Also print the bcrypt hash to configure the server with")
	flag.Parse()

	const secretFile = "master.secret"
	if _, err := os.Stat(secretFile); err == nil {
		fmt.Fprintf(os.Stderr, "Error: %s already exists. Refusing to overwrite.\n", secretFile)
		os.Exit(1)
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating random secret: %v\n", err)
		os.Exit(1)
	}
	hexSecret := hex.EncodeToString(secret)
	if err := os.WriteFile(secretFile, []byte(hexSecret+"\n"), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", secretFile, err)
		os.Exit(1)
	}
	fmt.Printf("Master secret written to %s\n", secretFile)

	if *adminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error hashing admin password: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Admin password hash: %s\n", hash)
	}
}
