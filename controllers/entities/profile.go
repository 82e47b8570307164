package entities

import (
	"gobank/models"
	"gobank/types"
)

type Profile struct {
	Kind          string    `json:"kind"`
	Name          string    `json:"name"`
	DocumentLabel string    `json:"document"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	PostalCode    string    `json:"postal_code"`
	StreetNumber  string    `json:"street_number"`
	Address       string    `json:"address"`
	BirthDate     string    `json:"birth_date,omitempty"`
	TradeName     string    `json:"trade_name,omitempty"`
	Accounts      []Account `json:"accounts"`
}

func ProfileToEntity(person *models.Person, accounts []*models.Account) Profile {
	profile := Profile{
		Kind:          person.Kind,
		Name:          person.Name,
		DocumentLabel: person.DocumentLabel(),
		Email:         person.Email,
		Phone:         person.Phone,
		PostalCode:    person.PostalCode,
		StreetNumber:  person.StreetNumber,
		Address:       person.Address,
		Accounts:      make([]Account, 0, len(accounts)),
	}

	if person.Kind == types.PersonKindPhysical && person.BirthDate.Valid {
		profile.BirthDate = person.BirthDate.Time.Format("02/01/2006")
	}
	if person.TradeName.Valid {
		profile.TradeName = person.TradeName.String
	}

	for _, account := range accounts {
		profile.Accounts = append(profile.Accounts, AccountToEntity(account))
	}

	return profile
}
