package controllers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"gobank/config"
	"gobank/controllers/entities"
	"gobank/controllers/helpers"
	"gobank/models"
	"gobank/services/address"
	"gobank/store"
	"gobank/types"
)

// Signup registers a physical or legal person together with its client
// credential. The address is never taken from the caller: it is derived from
// the postal code and street number through the resolver.
func (ctrl *Controllers) Signup(c *fiber.Ctx) error {
	errs := new(helpers.Errors)
	payload := new(helpers.SignupParams)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(400).JSON(helpers.Errors{
			Errors: []string{"Invalid message body."},
		})
	}

	helpers.Validate(payload, errs)
	// The birth date rule is skipped by the validator when the field is
	// absent, so a missing date for a physical person is rejected here.
	if payload.Kind == types.PersonKindPhysical && strings.TrimSpace(payload.BirthDate) == "" {
		errs.Add("Birth date must be a dd/mm/yyyy date of someone at least 18 years old.")
	}
	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	person := payload.Person()

	if _, found, err := ctrl.Clients.Find(person.Document); err != nil {
		config.Logger.Errorf("Signup lookup failed: %v", err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"Unexpected error while registering."},
		})
	} else if found {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"A client with this document already exists."},
		})
	}

	resolved, err := ctrl.Address.Resolve(person.PostalCode, person.StreetNumber)
	switch {
	case errors.Is(err, address.ErrInvalidPostalCode):
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"Postal code must contain 8 numeric digits."},
		})
	case errors.Is(err, address.ErrNotFound):
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"Postal code not found. Check that it was typed correctly."},
		})
	case err != nil:
		config.Logger.Errorf("Address lookup failed: %v", err)
		return c.Status(502).JSON(helpers.Errors{
			Errors: []string{"Could not resolve the address. Try again later."},
		})
	}
	person.Address = resolved

	if err := ctrl.Persons.Create(person); err != nil {
		if errors.Is(err, store.ErrDuplicateID) {
			return c.Status(422).JSON(helpers.Errors{
				Errors: []string{"A person with this document already exists."},
			})
		}
		config.Logger.Errorf("Failed to persist person: %v", err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"Unexpected error while registering."},
		})
	}

	client := models.NewClient(person.Document, payload.Password)
	if err := ctrl.Clients.Create(client); err != nil {
		config.Logger.Errorf("Failed to persist client %s: %v", person.Document, err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"Unexpected error while registering."},
		})
	}

	config.Logger.Infof("Registered client %s (%s)", person.Document, person.Kind)

	return c.Status(201).JSON(entities.Message{
		Message: fmt.Sprintf("Registration completed successfully for %s.", person.DisplayName()),
	})
}
