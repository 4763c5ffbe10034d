// Package auth supplies the HTTP Basic credentials the API authenticates with.
package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
)

// Static errors for err113 compliance.
var (
	ErrMissingAPIKey     = errors.New("API key is required")
	ErrMissingAPISecret  = errors.New("API secret is required")
	ErrNoCredentialStore = errors.New("no credential store configured")
)

// Credentials are an API key and secret pair.
type Credentials struct {
	Key    string
	Secret string
}

// Validate reports which half of the pair is missing, if any.
func (c *Credentials) Validate() error {
	if c == nil || c.Key == "" {
		return ErrMissingAPIKey
	}

	if c.Secret == "" {
		return ErrMissingAPISecret
	}

	return nil
}

// Valid reports whether both key and secret are set.
func (c *Credentials) Valid() bool {
	return c.Validate() == nil
}

// Header renders the Authorization header value.
func (c *Credentials) Header() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.Key+":"+c.Secret))
}

// BasicAuthenticator authenticates every request with fixed credentials.
type BasicAuthenticator struct {
	header string
}

// NewBasicAuthenticator validates the pair and precomputes the header.
func NewBasicAuthenticator(key, secret string) (*BasicAuthenticator, error) {
	creds := &Credentials{Key: key, Secret: secret}

	err := creds.Validate()
	if err != nil {
		return nil, err
	}

	return &BasicAuthenticator{header: creds.Header()}, nil
}

// Authorization returns the Basic header value.
func (a *BasicAuthenticator) Authorization(ctx context.Context) (string, error) {
	return a.header, nil
}

// CredentialStore loads persisted credentials, e.g. from the CLI config file.
type CredentialStore interface {
	LoadCredentials() (*Credentials, error)
}

// StoreAuthenticator reads credentials from a store on first use and keeps
// them until Reset.
type StoreAuthenticator struct {
	store CredentialStore

	mutex  sync.RWMutex
	header string
}

// NewStoreAuthenticator creates an authenticator backed by store.
func NewStoreAuthenticator(store CredentialStore) *StoreAuthenticator {
	return &StoreAuthenticator{store: store}
}

// Authorization returns the Basic header value, loading credentials if needed.
func (a *StoreAuthenticator) Authorization(ctx context.Context) (string, error) {
	a.mutex.RLock()
	header := a.header
	a.mutex.RUnlock()

	if header != "" {
		return header, nil
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.header != "" {
		return a.header, nil
	}

	if a.store == nil {
		return "", ErrNoCredentialStore
	}

	creds, err := a.store.LoadCredentials()
	if err != nil {
		return "", err
	}

	err = creds.Validate()
	if err != nil {
		return "", err
	}

	a.header = creds.Header()

	return a.header, nil
}

// Reset drops the loaded credentials so the next request reloads them.
func (a *StoreAuthenticator) Reset() {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.header = ""
}
