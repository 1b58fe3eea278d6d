package main

import (
	"fmt"

	"github.com/zalando/go-keyring"
)

const keyringService = "tubetalk"

// SaveAPIKeyToKeyring securely stores a provider API key in the OS keyring.
func SaveAPIKeyToKeyring(provider, apiKey string) error {
	if err := keyring.Set(keyringService, "apikey_"+provider, apiKey); err != nil {
		return fmt.Errorf("failed to store API key in keyring: %w", err)
	}
	return nil
}

// GetAPIKeyFromKeyring retrieves a provider API key from the OS keyring.
// A missing key is not an error.
func GetAPIKeyFromKeyring(provider string) (string, error) {
	apiKey, err := keyring.Get(keyringService, "apikey_"+provider)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", nil
		}
		return "", fmt.Errorf("failed to retrieve API key from keyring: %w", err)
	}
	return apiKey, nil
}
