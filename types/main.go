package types

type AccountType = string

var (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
)

type PersonKind = string

var (
	PersonKindPhysical PersonKind = "physical"
	PersonKindLegal    PersonKind = "legal"
)
