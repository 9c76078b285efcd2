package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
)

// GmailConfig reads the OAuth client file (the app's id) with send-only scope.
func GmailConfig(credentialsPath string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read client secret file: %w", err)
	}
	config, err := google.ConfigFromJSON(b, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("parse client secret file: %w", err)
	}
	return config, nil
}

// GetGmailClient returns an HTTP client authorized with the token saved by
// cmd/gmail-token. It never prompts; a missing token is an error.
func GetGmailClient(ctx context.Context, credentialsPath, tokenPath string) (*http.Client, error) {
	config, err := GmailConfig(credentialsPath)
	if err != nil {
		return nil, err
	}
	tok, err := TokenFromFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("read gmail token (run cmd/gmail-token first): %w", err)
	}
	return config.Client(ctx, tok), nil
}

// TokenFromFile retrieves a token from a local file.
func TokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

// SaveToken writes a token to a file path readable only by the owner.
func SaveToken(path string, token *oauth2.Token) error {
	log.Printf("Saving credential file to: %s", path)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("cache oauth token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}
