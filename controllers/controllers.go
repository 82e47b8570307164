// Package controllers hosts the HTTP handlers. Controllers orchestrate stores
// and domain objects and are the single boundary translating domain errors
// into user-facing messages.
package controllers

import (
	"gobank/services/address"
	"gobank/store"
)

type Controllers struct {
	Persons  *store.PersonStore
	Clients  *store.ClientStore
	Accounts *store.AccountStore
	Address  *address.Resolver
}

func New(persons *store.PersonStore, clients *store.ClientStore, accounts *store.AccountStore, resolver *address.Resolver) *Controllers {
	return &Controllers{
		Persons:  persons,
		Clients:  clients,
		Accounts: accounts,
		Address:  resolver,
	}
}
