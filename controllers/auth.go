package controllers

import (
	"github.com/gofiber/fiber/v2"

	"gobank/config"
	"gobank/controllers/auth"
	"gobank/controllers/entities"
	"gobank/controllers/helpers"
)

func (ctrl *Controllers) Login(c *fiber.Ctx) error {
	errs := new(helpers.Errors)
	payload := new(helpers.LoginParams)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(400).JSON(helpers.Errors{
			Errors: []string{"Invalid message body."},
		})
	}

	helpers.Validate(payload, errs)
	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	document := helpers.OnlyDigits(payload.Document)

	client, found, err := ctrl.Clients.Find(document)
	if err != nil {
		config.Logger.Errorf("Login lookup failed: %v", err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"Unexpected error while logging in."},
		})
	}
	if !found {
		return c.Status(404).JSON(helpers.Errors{
			Errors: []string{"Client not found."},
		})
	}
	if !client.VerifyPassword(payload.Password) {
		config.Logger.Warnf("Incorrect password for client %s", document)
		return c.Status(401).JSON(helpers.Errors{
			Errors: []string{"Incorrect password."},
		})
	}

	token, err := auth.IssueToken(client.Document)
	if err != nil {
		config.Logger.Errorf("Failed to issue session token: %v", err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"Unexpected error while logging in."},
		})
	}

	name := client.Document
	if person, found, err := ctrl.Persons.Find(client.Document); err == nil && found {
		name = person.DisplayName()
	}

	return c.Status(200).JSON(entities.Session{
		Token:    token,
		Document: client.Document,
		Name:     name,
	})
}

// Logout acknowledges the end of a session. Tokens are stateless, so there is
// nothing server-side to drop; the caller discards the token.
func (ctrl *Controllers) Logout(c *fiber.Ctx) error {
	return c.Status(200).JSON(entities.Message{
		Message: "Logout completed successfully.",
	})
}
