package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gobank/config"
	"gobank/controllers/auth"
	"gobank/controllers/entities"
	"gobank/controllers/helpers"
	"gobank/models"
)

// CreatePayment transfers money between two accounts. Field errors are
// collected and returned together; the domain transfer in TransferTo is the
// source of truth for the balance, limit and activity rules, and both sides
// are persisted only after it succeeds.
func (ctrl *Controllers) CreatePayment(c *fiber.Ctx) error {
	errs := new(helpers.Errors)
	payload := new(helpers.TransferParams)
	client := auth.CurrentClient(c)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(400).JSON(helpers.Errors{
			Errors: []string{"Invalid message body."},
		})
	}

	helpers.Validate(payload, errs)
	// The amount rule is skipped by the validator when the field is absent,
	// so a zero amount is rejected here explicitly.
	if !payload.Amount.IsPositive() && !contains(errs.Errors, "Transfer amount must be greater than zero.") {
		errs.Add("Transfer amount must be greater than zero.")
	}
	if !payload.HasDestination() {
		errs.Add("A destination account or destination document is required.")
	}
	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	if !client.VerifyPassword(payload.Password) {
		config.Logger.Warnf("Incorrect password on payment from client %s", client.Document)
		return c.Status(401).JSON(helpers.Errors{
			Errors: []string{"Incorrect password."},
		})
	}

	if !client.HasAccount(payload.SourceAccount) {
		return c.Status(404).JSON(helpers.Errors{
			Errors: []string{"Source account not found."},
		})
	}

	source, found, err := ctrl.Accounts.Find(payload.SourceAccount)
	if err != nil {
		config.Logger.Errorf("Failed to load account %d: %v", payload.SourceAccount, err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"Unexpected error while transferring."},
		})
	}
	if !found {
		return c.Status(404).JSON(helpers.Errors{
			Errors: []string{"Source account not found."},
		})
	}

	destination, status, message := ctrl.resolveDestination(payload)
	if destination == nil {
		return c.Status(status).JSON(helpers.Errors{Errors: []string{message}})
	}

	if err := source.TransferTo(destination, payload.Amount); err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{transferErrorMessage(err)},
		})
	}

	if _, err := ctrl.Accounts.Update(source); err != nil {
		config.Logger.Errorf("Failed to persist source account %d: %v", source.Number, err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"Unexpected error while transferring."},
		})
	}
	if _, err := ctrl.Accounts.Update(destination); err != nil {
		config.Logger.Errorf("Failed to persist destination account %d: %v", destination.Number, err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"Unexpected error while transferring."},
		})
	}

	transactionID := uuid.NewString()
	config.Logger.Infof("Transfer %s: R$ %s from account %d to account %d",
		transactionID, payload.Amount.StringFixed(2), source.Number, destination.Number)

	return c.Status(200).JSON(entities.Payment{
		Message: fmt.Sprintf("Transfer of R$ %s completed successfully to %s (account %d).",
			payload.Amount.StringFixed(2), ctrl.destinationName(destination.Number), destination.Number),
		TransactionID: transactionID,
	})
}

// resolveDestination finds the target account, either directly by number or
// by the destination client's document, in which case the first active
// account of that client is used. A nil account comes back with the status
// and message to answer with.
func (ctrl *Controllers) resolveDestination(payload *helpers.TransferParams) (*models.Account, int, string) {
	if payload.DestinationAccount > 0 {
		account, found, err := ctrl.Accounts.Find(payload.DestinationAccount)
		if err != nil {
			config.Logger.Errorf("Failed to load account %d: %v", payload.DestinationAccount, err)
			return nil, 500, "Unexpected error while transferring."
		}
		if !found {
			return nil, 404, "Destination account not found."
		}
		return account, 0, ""
	}

	document := helpers.OnlyDigits(payload.DestinationDocument)
	destClient, found, err := ctrl.Clients.Find(document)
	if err != nil {
		config.Logger.Errorf("Failed to load client %s: %v", document, err)
		return nil, 500, "Unexpected error while transferring."
	}
	if !found {
		return nil, 404, "Destination client not found."
	}

	for _, number := range destClient.AccountNumbers {
		account, found, err := ctrl.Accounts.Find(number)
		if err != nil {
			config.Logger.Errorf("Failed to load account %d: %v", number, err)
			return nil, 500, "Unexpected error while transferring."
		}
		if found && account.Active {
			return account, 0, ""
		}
	}

	return nil, 422, "Destination client has no active account."
}

// destinationName resolves the display name of the account's owner for the
// confirmation message, falling back to the bare account reference when the
// owner cannot be found.
func (ctrl *Controllers) destinationName(number int64) string {
	owner, found, err := ctrl.Clients.FindByAccountNumber(number)
	if err != nil || !found {
		return fmt.Sprintf("account %d", number)
	}
	person, found, err := ctrl.Persons.Find(owner.Document)
	if err != nil || !found {
		return owner.Document
	}
	return person.DisplayName()
}

func transferErrorMessage(err error) string {
	var inactive models.AccountInactiveError
	var limit models.LimitExceededError

	switch {
	case errors.Is(err, models.ErrSameAccount):
		return "Source and destination accounts must be different."
	case errors.Is(err, models.ErrInvalidAmount):
		return "Transfer amount must be greater than zero."
	case errors.Is(err, models.ErrInsufficientFunds):
		return "Insufficient funds for this transfer."
	case errors.As(err, &inactive):
		return fmt.Sprintf("Account %d is inactive.", inactive.Number)
	case errors.As(err, &limit):
		return fmt.Sprintf("Transfer amount exceeds the account limit of R$ %s.", limit.Limit.StringFixed(2))
	default:
		return "Transfer could not be completed."
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
