package helpers

import (
	"regexp"
	"strings"
	"time"

	"github.com/gookit/validate"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"gobank/models"
	"gobank/types"
)

const minimumAge = 18

var namePattern = regexp.MustCompile(`^[A-Za-zÀ-ÿ\s]+$`)

// OnlyDigits strips every non-digit rune, the normalization applied to
// documents, phones and postal codes before validation.
func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type LoginParams struct {
	Document string `json:"document" form:"document" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (p LoginParams) Messages() map[string]string {
	return validate.MS{
		"Document.required": "Document number is required.",
		"Password.required": "Password is required.",
	}
}

type SignupParams struct {
	Kind         string `json:"kind" form:"kind" validate:"required|ValidateKind"`
	Name         string `json:"name" form:"name" validate:"required|ValidateName"`
	Email        string `json:"email" form:"email" validate:"required|email"`
	Document     string `json:"document" form:"document" validate:"required|ValidateDocument"`
	Phone        string `json:"phone" form:"phone" validate:"required|ValidatePhone"`
	PostalCode   string `json:"postal_code" form:"postal_code" validate:"required|ValidatePostalCode"`
	StreetNumber string `json:"street_number" form:"street_number" validate:"required|ValidateStreetNumber"`
	Password     string `json:"password" form:"password" validate:"required|ValidatePassword"`
	BirthDate    string `json:"birth_date" form:"birth_date" validate:"ValidateBirthDate"`
	TradeName    string `json:"trade_name" form:"trade_name"`
}

func (p SignupParams) Messages() map[string]string {
	return validate.MS{
		"required":             "The {field} field is required.",
		"email":                "Email address is not valid.",
		"ValidateKind":         "Person kind must be either physical or legal.",
		"ValidateName":         "Name may contain only letters and spaces.",
		"ValidateDocument":     "Document must have 11 digits (CPF) or 14 digits (CNPJ).",
		"ValidatePhone":        "Phone must be a valid number with 10 or 11 digits.",
		"ValidatePostalCode":   "Postal code must contain 8 numeric digits.",
		"ValidateStreetNumber": "Street number must contain only digits.",
		"ValidatePassword":     "Password must have at least 6 characters mixing letters and digits.",
		"ValidateBirthDate":    "Birth date must be a dd/mm/yyyy date of someone at least 18 years old.",
	}
}

func (p SignupParams) ValidateKind(kind string) bool {
	return kind == types.PersonKindPhysical || kind == types.PersonKindLegal
}

func (p SignupParams) ValidateName(name string) bool {
	return strings.TrimSpace(name) != "" && namePattern.MatchString(name)
}

func (p SignupParams) ValidateDocument(document string) bool {
	digits := OnlyDigits(document)
	if p.Kind == types.PersonKindLegal {
		return len(digits) == 14
	}
	return len(digits) == 11
}

func (p SignupParams) ValidatePhone(phone string) bool {
	digits := OnlyDigits(phone)
	switch len(digits) {
	case 10:
		// Landline: two-digit area code then a 2-5 prefix.
		return digits[0] != '0' && digits[1] != '0' && digits[2] >= '2' && digits[2] <= '5'
	case 11:
		// Mobile: two-digit area code then the 9 prefix.
		return digits[0] != '0' && digits[1] != '0' && digits[2] == '9'
	default:
		return false
	}
}

func (p SignupParams) ValidatePostalCode(postalCode string) bool {
	return len(OnlyDigits(postalCode)) == 8
}

func (p SignupParams) ValidateStreetNumber(streetNumber string) bool {
	return len(OnlyDigits(streetNumber)) > 0
}

func (p SignupParams) ValidatePassword(password string) bool {
	if len(password) < 6 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		}
	}
	return hasLetter && hasDigit
}

func (p SignupParams) ValidateBirthDate(birthDate string) bool {
	if p.Kind != types.PersonKindPhysical {
		return true
	}
	parsed, err := time.Parse("02/01/2006", birthDate)
	if err != nil {
		return false
	}
	now := time.Now()
	if parsed.After(now) {
		return false
	}
	age := now.Year() - parsed.Year()
	if now.YearDay() < parsed.YearDay() {
		age--
	}
	return age >= minimumAge
}

// Person builds the identity record from validated params. The address is
// filled in later by the controller once the resolver has answered.
func (p SignupParams) Person() *models.Person {
	person := &models.Person{
		Kind:         p.Kind,
		Name:         strings.TrimSpace(p.Name),
		Email:        strings.TrimSpace(p.Email),
		Document:     OnlyDigits(p.Document),
		Phone:        OnlyDigits(p.Phone),
		PostalCode:   OnlyDigits(p.PostalCode),
		StreetNumber: OnlyDigits(p.StreetNumber),
	}

	if p.Kind == types.PersonKindPhysical {
		if parsed, err := time.Parse("02/01/2006", p.BirthDate); err == nil {
			person.BirthDate = null.TimeFrom(parsed)
		}
	}
	if p.Kind == types.PersonKindLegal && strings.TrimSpace(p.TradeName) != "" {
		person.TradeName = null.StringFrom(strings.TrimSpace(p.TradeName))
	}

	return person
}

type CreateAccountParams struct {
	Type string `json:"type" form:"type" validate:"required|ValidateType"`
}

func (p CreateAccountParams) Messages() map[string]string {
	return validate.MS{
		"Type.required": "Account type is required.",
		"ValidateType":  "Account type must be either checking or savings.",
	}
}

func (p CreateAccountParams) ValidateType(accountType string) bool {
	return accountType == types.AccountTypeChecking || accountType == types.AccountTypeSavings
}

type CloseAccountParams struct {
	Password string `json:"password" form:"password" validate:"required"`
}

func (p CloseAccountParams) Messages() map[string]string {
	return validate.MS{
		"Password.required": "Password is required.",
	}
}

type TransferParams struct {
	SourceAccount       int64           `json:"source_account" form:"source_account" validate:"required"`
	DestinationDocument string          `json:"destination_document" form:"destination_document"`
	DestinationAccount  int64           `json:"destination_account" form:"destination_account"`
	Amount              decimal.Decimal `json:"amount" form:"amount" validate:"ValidateAmount"`
	Description         string          `json:"description" form:"description"`
	Password            string          `json:"password" form:"password" validate:"required"`
}

func (p TransferParams) Messages() map[string]string {
	return validate.MS{
		"SourceAccount.required": "Source account is required.",
		"Password.required":      "Password is required.",
		"ValidateAmount":         "Transfer amount must be greater than zero.",
	}
}

func (p TransferParams) ValidateAmount(amount decimal.Decimal) bool {
	return amount.IsPositive()
}

// HasDestination reports whether the request names a destination at all,
// either a client document or a direct account number.
func (p TransferParams) HasDestination() bool {
	return OnlyDigits(p.DestinationDocument) != "" || p.DestinationAccount > 0
}
