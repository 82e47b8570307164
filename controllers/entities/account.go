package entities

import "gobank/models"

type Account struct {
	Number  int64  `json:"number"`
	Type    string `json:"type"`
	Balance string `json:"balance"`
	Active  bool   `json:"active"`
}

func AccountToEntity(account *models.Account) Account {
	return Account{
		Number:  account.Number,
		Type:    account.Type,
		Balance: account.Balance.StringFixed(2),
		Active:  account.Active,
	}
}

type Statement struct {
	Number  int64    `json:"number"`
	Type    string   `json:"type"`
	Balance string   `json:"balance"`
	History []string `json:"history"`
}

func StatementToEntity(account *models.Account) Statement {
	return Statement{
		Number:  account.Number,
		Type:    account.Type,
		Balance: account.Balance.StringFixed(2),
		History: account.HistoryCopy(),
	}
}
