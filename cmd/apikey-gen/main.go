package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"log"
)

// Generates a raw API key plus the SHA-256 hash that belongs in the
// api_keys table. Useful for seeding environments without the dashboard.
func main() {
	mode := flag.String("mode", "live", "key mode: live or test")
	hexLen := flag.Int("hex-len", 64, "random hex length (must be even)")
	flag.Parse()

	if err := validateInputs(*mode, *hexLen); err != nil {
		log.Fatal(err)
	}

	apiKey, keyHash, err := buildKey(*mode, *hexLen)
	if err != nil {
		log.Fatalf("failed to generate api key: %v", err)
	}

	fmt.Println("Generated API key (store only the hash)")
	fmt.Printf("API_KEY=%s\n", apiKey)
	fmt.Printf("KEY_HASH=%s\n", keyHash)
	fmt.Printf("KEY_MASKED=****%s\n", apiKey[len(apiKey)-4:])
}

func validateInputs(mode string, hexLen int) error {
	if mode != "live" && mode != "test" {
		return fmt.Errorf("invalid mode: %s (allowed: live, test)", mode)
	}
	if hexLen <= 0 || hexLen%2 != 0 {
		return errors.New("hex-len must be positive and even")
	}
	return nil
}

func buildKey(mode string, hexLen int) (apiKey, keyHash string, err error) {
	raw, err := generateRandomHex(hexLen)
	if err != nil {
		return "", "", err
	}

	apiKey = fmt.Sprintf("sw_%s_%s", mode, raw)
	hash := sha256.Sum256([]byte(apiKey))
	return apiKey, hex.EncodeToString(hash[:]), nil
}

func generateRandomHex(n int) (string, error) {
	b := make([]byte, n/2)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
