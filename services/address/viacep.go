// Package address resolves Brazilian postal codes into formatted address
// strings through the public ViaCEP HTTP API.
package address

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://viacep.com.br"

var (
	ErrInvalidPostalCode = errors.New("postal code must contain 8 numeric digits")
	ErrNotFound          = errors.New("postal code not found")
)

type Resolver struct {
	baseURL string
	client  *http.Client
}

// NewResolver builds a resolver with a bounded request timeout. The upstream
// API has none of its own, so an unresponsive lookup would otherwise hang the
// whole registration request.
func NewResolver(baseURL string, timeout time.Duration) *Resolver {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Resolver{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type viaCEPResponse struct {
	Street   string `json:"logradouro"`
	District string `json:"bairro"`
	City     string `json:"localidade"`
	State    string `json:"uf"`
	Erro     bool   `json:"erro"`
}

// Resolve looks up the postal code and composes the address as
// "street, number - district, city - state, postal code".
func (r *Resolver) Resolve(postalCode, streetNumber string) (string, error) {
	digits := onlyDigits(postalCode)
	if len(digits) != 8 {
		return "", ErrInvalidPostalCode
	}

	resp, err := r.client.Get(fmt.Sprintf("%s/ws/%s/json/", r.baseURL, digits))
	if err != nil {
		return "", fmt.Errorf("address lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("address lookup failed: unexpected status %d", resp.StatusCode)
	}

	var data viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("address lookup failed: %w", err)
	}
	if data.Erro {
		return "", ErrNotFound
	}

	return fmt.Sprintf("%s, %s - %s, %s - %s, %s",
		data.Street, streetNumber, data.District, data.City, data.State, digits), nil
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
