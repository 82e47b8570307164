package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"gobank/config"
	"gobank/controllers/auth"
	"gobank/controllers/entities"
	"gobank/controllers/helpers"
	"gobank/models"
)

// GetAccounts lists every account owned by the authenticated client,
// including closed ones.
func (ctrl *Controllers) GetAccounts(c *fiber.Ctx) error {
	client := auth.CurrentClient(c)

	accounts := make([]entities.Account, 0, len(client.AccountNumbers))
	for _, number := range client.AccountNumbers {
		account, found, err := ctrl.Accounts.Find(number)
		if err != nil {
			config.Logger.Errorf("Failed to load account %d: %v", number, err)
			return c.Status(500).JSON(helpers.Errors{
				Errors: []string{"Unexpected error while listing accounts."},
			})
		}
		if !found {
			config.Logger.Warnf("Client %s references missing account %d", client.Document, number)
			continue
		}
		accounts = append(accounts, entities.AccountToEntity(account))
	}

	return c.Status(200).JSON(accounts)
}

// CreateAccount opens a new checking or savings account for the authenticated
// client. A client may hold at most one active account of each type; the new
// number is the highest on file plus one.
func (ctrl *Controllers) CreateAccount(c *fiber.Ctx) error {
	errs := new(helpers.Errors)
	payload := new(helpers.CreateAccountParams)
	client := auth.CurrentClient(c)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(400).JSON(helpers.Errors{
			Errors: []string{"Invalid message body."},
		})
	}

	helpers.Validate(payload, errs)
	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	for _, number := range client.AccountNumbers {
		account, found, err := ctrl.Accounts.Find(number)
		if err != nil {
			config.Logger.Errorf("Failed to load account %d: %v", number, err)
			return c.Status(500).JSON(helpers.Errors{
				Errors: []string{"Unexpected error while opening the account."},
			})
		}
		if found && account.Active && account.Type == payload.Type {
			return c.Status(422).JSON(helpers.Errors{
				Errors: []string{fmt.Sprintf("Client already has an active %s account.", payload.Type)},
			})
		}
	}

	number, err := ctrl.Accounts.NextNumber()
	if err != nil {
		config.Logger.Errorf("Failed to allocate account number: %v", err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"Unexpected error while opening the account."},
		})
	}

	account := models.NewAccount(number, payload.Type)
	if err := ctrl.Accounts.Create(account); err != nil {
		config.Logger.Errorf("Failed to persist account %d: %v", number, err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"Unexpected error while opening the account."},
		})
	}

	// The account and the ownership link are two separate writes. A crash
	// between them leaves an orphan account on file, which the startup path
	// tolerates and the profile listing skips.
	client.AddAccount(number)
	if _, err := ctrl.Clients.Update(client); err != nil {
		config.Logger.Errorf("Failed to link account %d to client %s: %v", number, client.Document, err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"Unexpected error while opening the account."},
		})
	}

	config.Logger.Infof("Opened %s account %d for client %s", account.Type, number, client.Document)

	return c.Status(201).JSON(entities.AccountToEntity(account))
}

// CloseAccount deactivates one of the client's accounts after re-checking the
// password. Closing is permanent; a closed account keeps its balance and
// history but rejects every further operation.
func (ctrl *Controllers) CloseAccount(c *fiber.Ctx) error {
	errs := new(helpers.Errors)
	payload := new(helpers.CloseAccountParams)
	client := auth.CurrentClient(c)

	number, err := strconv.ParseInt(c.Params("number"), 10, 64)
	if err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"Account number must be numeric."},
		})
	}

	if err := c.BodyParser(payload); err != nil {
		return c.Status(400).JSON(helpers.Errors{
			Errors: []string{"Invalid message body."},
		})
	}

	helpers.Validate(payload, errs)
	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	if !client.VerifyPassword(payload.Password) {
		config.Logger.Warnf("Incorrect password closing account %d for client %s", number, client.Document)
		return c.Status(401).JSON(helpers.Errors{
			Errors: []string{"Incorrect password."},
		})
	}

	if !client.HasAccount(number) {
		return c.Status(404).JSON(helpers.Errors{
			Errors: []string{"Account not found."},
		})
	}

	account, found, err := ctrl.Accounts.Find(number)
	if err != nil {
		config.Logger.Errorf("Failed to load account %d: %v", number, err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"Unexpected error while closing the account."},
		})
	}
	if !found {
		return c.Status(404).JSON(helpers.Errors{
			Errors: []string{"Account not found."},
		})
	}

	if err := account.Close(); err != nil {
		if errors.Is(err, models.ErrAlreadyClosed) {
			return c.Status(422).JSON(helpers.Errors{
				Errors: []string{"Account is already closed."},
			})
		}
		config.Logger.Errorf("Failed to close account %d: %v", number, err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"Unexpected error while closing the account."},
		})
	}

	if _, err := ctrl.Accounts.Update(account); err != nil {
		config.Logger.Errorf("Failed to persist closed account %d: %v", number, err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"Unexpected error while closing the account."},
		})
	}

	config.Logger.Infof("Closed account %d for client %s", number, client.Document)

	return c.Status(200).JSON(entities.Message{
		Message: fmt.Sprintf("Account %d closed successfully.", number),
	})
}

// GetStatement returns the balance and full operation history of one of the
// client's active accounts.
func (ctrl *Controllers) GetStatement(c *fiber.Ctx) error {
	client := auth.CurrentClient(c)

	number, err := strconv.ParseInt(c.Params("number"), 10, 64)
	if err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"Account number must be numeric."},
		})
	}

	if !client.HasAccount(number) {
		return c.Status(404).JSON(helpers.Errors{
			Errors: []string{"Account not found."},
		})
	}

	account, found, err := ctrl.Accounts.Find(number)
	if err != nil {
		config.Logger.Errorf("Failed to load account %d: %v", number, err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"Unexpected error while loading the statement."},
		})
	}
	if !found {
		return c.Status(404).JSON(helpers.Errors{
			Errors: []string{"Account not found."},
		})
	}

	if !account.Active {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{fmt.Sprintf("Account %d is inactive.", number)},
		})
	}

	return c.Status(200).JSON(entities.StatementToEntity(account))
}
