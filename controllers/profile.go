package controllers

import (
	"github.com/gofiber/fiber/v2"

	"gobank/config"
	"gobank/controllers/auth"
	"gobank/controllers/entities"
	"gobank/controllers/helpers"
	"gobank/models"
)

// GetProfile returns the authenticated client's identity record together with
// a summary of every account it owns.
func (ctrl *Controllers) GetProfile(c *fiber.Ctx) error {
	client := auth.CurrentClient(c)

	person, found, err := ctrl.Persons.Find(client.Document)
	if err != nil {
		config.Logger.Errorf("Failed to load person %s: %v", client.Document, err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"Unexpected error while loading the profile."},
		})
	}
	if !found {
		config.Logger.Errorf("Client %s has no person record", client.Document)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"Unexpected error while loading the profile."},
		})
	}

	accounts := make([]*models.Account, 0, len(client.AccountNumbers))
	for _, number := range client.AccountNumbers {
		account, found, err := ctrl.Accounts.Find(number)
		if err != nil {
			config.Logger.Errorf("Failed to load account %d: %v", number, err)
			return c.Status(500).JSON(helpers.Errors{
				Errors: []string{"Unexpected error while loading the profile."},
			})
		}
		if !found {
			config.Logger.Warnf("Client %s references missing account %d", client.Document, number)
			continue
		}
		accounts = append(accounts, account)
	}

	return c.Status(200).JSON(entities.ProfileToEntity(person, accounts))
}
