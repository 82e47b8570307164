package models

import (
	"github.com/volatiletech/null"

	"gobank/types"
)

// Person is the identity record behind a client. Kind discriminates physical
// and legal persons; BirthDate is set only for physical persons, TradeName
// only (and optionally) for legal ones. Address is derived from the postal
// code and street number through the address resolver, never set directly by
// callers.
type Person struct {
	Kind         types.PersonKind `json:"kind"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Document     string           `json:"document"`
	Phone        string           `json:"phone"`
	PostalCode   string           `json:"postal_code"`
	StreetNumber string           `json:"street_number"`
	Address      string           `json:"address"`
	BirthDate    null.Time        `json:"birth_date,omitempty"`
	TradeName    null.String      `json:"trade_name,omitempty"`
}

// DisplayName is the name shown in confirmations: the trade name for legal
// persons that have one, the registered name otherwise.
func (p *Person) DisplayName() string {
	if p.Kind == types.PersonKindLegal && p.TradeName.Valid && p.TradeName.String != "" {
		return p.TradeName.String
	}
	return p.Name
}

// DocumentLabel formats the document with its kind-specific prefix.
func (p *Person) DocumentLabel() string {
	if p.Kind == types.PersonKindLegal {
		return "CNPJ: " + p.Document
	}
	return "CPF: " + p.Document
}
