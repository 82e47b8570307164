package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"gobank/config"
	"gobank/controllers"
	"gobank/controllers/entities"
	"gobank/models"
	"gobank/routes"
	"gobank/services/address"
	"gobank/store"
)

func newTestApp(t *testing.T) (*fiber.App, *controllers.Controllers) {
	t.Helper()

	config.NewLoggerService()
	models.Configure(models.DefaultParams())

	viacep := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "99999999") {
			fmt.Fprint(w, `{"erro": true}`)
			return
		}
		fmt.Fprint(w, `{"logradouro":"Praça da Sé","bairro":"Sé","localidade":"São Paulo","uf":"SP"}`)
	}))
	t.Cleanup(viacep.Close)

	dir := t.TempDir()
	ctrl := controllers.New(
		store.NewPersonStore(dir),
		store.NewClientStore(dir),
		store.NewAccountStore(dir),
		address.NewResolver(viacep.URL, time.Second),
	)

	app := fiber.New()
	routes.SetupRouter(app, ctrl)

	return app, ctrl
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func assertStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status = %d, want %d", resp.StatusCode, want)
	}
}

func signupBody(document string) map[string]string {
	return map[string]string{
		"kind":          "physical",
		"name":          "Ana Souza",
		"email":         "ana@example.com",
		"document":      document,
		"phone":         "11987654321",
		"postal_code":   "01001000",
		"street_number": "100",
		"password":      "secret1",
		"birth_date":    "01/01/1990",
	}
}

func signup(t *testing.T, app *fiber.App, document string) {
	t.Helper()
	resp := doRequest(t, app, "POST", "/api/v1/public/signup", "", signupBody(document))
	assertStatus(t, resp, 201)
}

func login(t *testing.T, app *fiber.App, document, password string) string {
	t.Helper()
	resp := doRequest(t, app, "POST", "/api/v1/public/login", "", map[string]string{
		"document": document,
		"password": password,
	})
	assertStatus(t, resp, 200)
	var session entities.Session
	decodeBody(t, resp, &session)
	if session.Token == "" {
		t.Fatal("login returned an empty token")
	}
	return session.Token
}

func openAccount(t *testing.T, app *fiber.App, token, accountType string) entities.Account {
	t.Helper()
	resp := doRequest(t, app, "POST", "/api/v1/auth/accounts", token, map[string]string{
		"type": accountType,
	})
	assertStatus(t, resp, 201)
	var account entities.Account
	decodeBody(t, resp, &account)
	return account
}

// deposit credits an account directly through the store, standing in for the
// cash-in flows the API does not expose.
func deposit(t *testing.T, ctrl *controllers.Controllers, number int64, amount string) {
	t.Helper()
	account, found, err := ctrl.Accounts.Find(number)
	if err != nil || !found {
		t.Fatalf("account %d not found for deposit", number)
	}
	account.Balance = account.Balance.Add(decimal.RequireFromString(amount))
	if _, err := ctrl.Accounts.Update(account); err != nil {
		t.Fatalf("persist deposit: %v", err)
	}
}

func TestSignupLoginFlow(t *testing.T) {
	app, _ := newTestApp(t)

	signup(t, app, "52998224725")

	resp := doRequest(t, app, "POST", "/api/v1/public/signup", "", signupBody("52998224725"))
	assertStatus(t, resp, 422)

	login(t, app, "52998224725", "secret1")

	resp = doRequest(t, app, "POST", "/api/v1/public/login", "", map[string]string{
		"document": "52998224725",
		"password": "wrong99",
	})
	assertStatus(t, resp, 401)

	resp = doRequest(t, app, "POST", "/api/v1/public/login", "", map[string]string{
		"document": "00000000000",
		"password": "secret1",
	})
	assertStatus(t, resp, 404)
}

func TestSignupValidation(t *testing.T) {
	app, _ := newTestApp(t)

	body := signupBody("52998224725")
	body["kind"] = "alien"
	body["document"] = "123"
	body["postal_code"] = "12"
	resp := doRequest(t, app, "POST", "/api/v1/public/signup", "", body)
	assertStatus(t, resp, 422)

	var errs struct {
		Errors []string `json:"errors"`
	}
	decodeBody(t, resp, &errs)
	if len(errs.Errors) < 3 {
		t.Fatalf("expected at least 3 validation errors, got %v", errs.Errors)
	}
}

func TestSignupUnderage(t *testing.T) {
	app, _ := newTestApp(t)

	body := signupBody("52998224725")
	body["birth_date"] = time.Now().AddDate(-17, 0, 0).Format("02/01/2006")
	resp := doRequest(t, app, "POST", "/api/v1/public/signup", "", body)
	assertStatus(t, resp, 422)

	delete(body, "birth_date")
	resp = doRequest(t, app, "POST", "/api/v1/public/signup", "", body)
	assertStatus(t, resp, 422)
}

func TestSignupUnknownPostalCode(t *testing.T) {
	app, _ := newTestApp(t)

	body := signupBody("52998224725")
	body["postal_code"] = "99999999"
	resp := doRequest(t, app, "POST", "/api/v1/public/signup", "", body)
	assertStatus(t, resp, 422)
}

func TestSignupResolvesAddress(t *testing.T) {
	app, ctrl := newTestApp(t)

	signup(t, app, "52998224725")

	person, found, err := ctrl.Persons.Find("52998224725")
	if err != nil || !found {
		t.Fatal("person was not persisted")
	}
	want := "Praça da Sé, 100 - Sé, São Paulo - SP, 01001000"
	if person.Address != want {
		t.Fatalf("address = %q, want %q", person.Address, want)
	}
}

func TestSignupLegalPerson(t *testing.T) {
	app, _ := newTestApp(t)

	body := map[string]string{
		"kind":          "legal",
		"name":          "Padaria Estrela",
		"email":         "contato@estrela.com",
		"document":      "11222333000181",
		"phone":         "1133334444",
		"postal_code":   "01001000",
		"street_number": "42",
		"password":      "secret1",
		"trade_name":    "Estrela Pães",
	}
	resp := doRequest(t, app, "POST", "/api/v1/public/signup", "", body)
	assertStatus(t, resp, 201)

	var msg entities.Message
	decodeBody(t, resp, &msg)
	if !strings.Contains(msg.Message, "Estrela Pães") {
		t.Fatalf("confirmation should use the trade name, got %q", msg.Message)
	}
}

func TestAuthMiddleware(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, "GET", "/api/v1/auth/profile", "", nil)
	assertStatus(t, resp, 401)

	resp = doRequest(t, app, "GET", "/api/v1/auth/profile", "not-a-token", nil)
	assertStatus(t, resp, 401)
}

func TestAccountLifecycle(t *testing.T) {
	app, _ := newTestApp(t)

	signup(t, app, "52998224725")
	token := login(t, app, "52998224725", "secret1")

	checking := openAccount(t, app, token, "checking")
	if checking.Number != 1001 {
		t.Fatalf("first account number = %d, want 1001", checking.Number)
	}
	if checking.Balance != "0.00" || !checking.Active {
		t.Fatalf("new account should be active with zero balance, got %+v", checking)
	}

	resp := doRequest(t, app, "POST", "/api/v1/auth/accounts", token, map[string]string{"type": "checking"})
	assertStatus(t, resp, 422)

	savings := openAccount(t, app, token, "savings")
	if savings.Number != 1002 {
		t.Fatalf("second account number = %d, want 1002", savings.Number)
	}

	resp = doRequest(t, app, "GET", "/api/v1/auth/accounts", token, nil)
	assertStatus(t, resp, 200)
	var list []entities.Account
	decodeBody(t, resp, &list)
	if len(list) != 2 {
		t.Fatalf("account list length = %d, want 2", len(list))
	}

	resp = doRequest(t, app, "GET", "/api/v1/auth/accounts/1001/statement", token, nil)
	assertStatus(t, resp, 200)
	var statement entities.Statement
	decodeBody(t, resp, &statement)
	if statement.Number != 1001 || len(statement.History) != 0 {
		t.Fatalf("unexpected statement %+v", statement)
	}

	resp = doRequest(t, app, "DELETE", "/api/v1/auth/accounts/1001", token, map[string]string{"password": "wrong99"})
	assertStatus(t, resp, 401)

	resp = doRequest(t, app, "DELETE", "/api/v1/auth/accounts/1001", token, map[string]string{"password": "secret1"})
	assertStatus(t, resp, 200)

	resp = doRequest(t, app, "DELETE", "/api/v1/auth/accounts/1001", token, map[string]string{"password": "secret1"})
	assertStatus(t, resp, 422)

	resp = doRequest(t, app, "GET", "/api/v1/auth/accounts/1001/statement", token, nil)
	assertStatus(t, resp, 422)

	resp = doRequest(t, app, "DELETE", "/api/v1/auth/accounts/9999", token, map[string]string{"password": "secret1"})
	assertStatus(t, resp, 404)

	// A closed account of the same type no longer blocks opening a new one.
	reopened := openAccount(t, app, token, "checking")
	if reopened.Number != 1003 {
		t.Fatalf("reopened account number = %d, want 1003", reopened.Number)
	}
}

func TestNumberingSkipsOrphans(t *testing.T) {
	app, ctrl := newTestApp(t)

	signup(t, app, "52998224725")
	token := login(t, app, "52998224725", "secret1")

	// An account on file with no owning client, as left behind by a crash
	// between the account write and the client link write.
	if err := ctrl.Accounts.Create(models.NewAccount(1001, "checking")); err != nil {
		t.Fatalf("seed orphan account: %v", err)
	}

	account := openAccount(t, app, token, "checking")
	if account.Number != 1002 {
		t.Fatalf("account number = %d, want 1002 (orphan holds 1001)", account.Number)
	}

	resp := doRequest(t, app, "GET", "/api/v1/auth/accounts", token, nil)
	assertStatus(t, resp, 200)
	var list []entities.Account
	decodeBody(t, resp, &list)
	if len(list) != 1 || list[0].Number != 1002 {
		t.Fatalf("orphan account leaked into the listing: %+v", list)
	}
}

func TestProfile(t *testing.T) {
	app, _ := newTestApp(t)

	signup(t, app, "52998224725")
	token := login(t, app, "52998224725", "secret1")
	openAccount(t, app, token, "checking")

	resp := doRequest(t, app, "GET", "/api/v1/auth/profile", token, nil)
	assertStatus(t, resp, 200)

	var profile entities.Profile
	decodeBody(t, resp, &profile)
	if profile.Name != "Ana Souza" {
		t.Fatalf("profile name = %q", profile.Name)
	}
	if profile.DocumentLabel != "CPF: 52998224725" {
		t.Fatalf("document label = %q", profile.DocumentLabel)
	}
	if profile.BirthDate != "01/01/1990" {
		t.Fatalf("birth date = %q", profile.BirthDate)
	}
	if len(profile.Accounts) != 1 {
		t.Fatalf("profile accounts = %+v", profile.Accounts)
	}
}

func TestPayments(t *testing.T) {
	app, ctrl := newTestApp(t)

	signup(t, app, "52998224725")
	resp := doRequest(t, app, "POST", "/api/v1/public/signup", "", map[string]string{
		"kind":          "physical",
		"name":          "Bruno Lima",
		"email":         "bruno@example.com",
		"document":      "15350946056",
		"phone":         "21987654321",
		"postal_code":   "01001000",
		"street_number": "7",
		"password":      "secret2",
		"birth_date":    "15/03/1985",
	})
	assertStatus(t, resp, 201)

	tokenA := login(t, app, "52998224725", "secret1")
	tokenB := login(t, app, "15350946056", "secret2")

	source := openAccount(t, app, tokenA, "checking")
	destination := openAccount(t, app, tokenB, "checking")
	deposit(t, ctrl, source.Number, "1000")

	resp = doRequest(t, app, "POST", "/api/v1/auth/payments", tokenA, map[string]interface{}{
		"source_account":      source.Number,
		"destination_account": destination.Number,
		"amount":              "300",
		"password":            "secret1",
	})
	assertStatus(t, resp, 200)
	var payment entities.Payment
	decodeBody(t, resp, &payment)
	if payment.TransactionID == "" {
		t.Fatal("payment has no transaction id")
	}
	if !strings.Contains(payment.Message, "R$ 300.00") || !strings.Contains(payment.Message, "Bruno Lima") {
		t.Fatalf("unexpected confirmation message %q", payment.Message)
	}

	got, _, _ := ctrl.Accounts.Find(source.Number)
	if got.Balance.String() != "700" {
		t.Fatalf("source balance = %s, want 700", got.Balance)
	}
	got, _, _ = ctrl.Accounts.Find(destination.Number)
	if got.Balance.String() != "300" {
		t.Fatalf("destination balance = %s, want 300", got.Balance)
	}
}

func TestPaymentByDestinationDocument(t *testing.T) {
	app, ctrl := newTestApp(t)

	signup(t, app, "52998224725")
	signup2 := signupBody("15350946056")
	signup2["name"] = "Bruno Lima"
	signup2["email"] = "bruno@example.com"
	signup2["phone"] = "21987654321"
	resp := doRequest(t, app, "POST", "/api/v1/public/signup", "", signup2)
	assertStatus(t, resp, 201)

	tokenA := login(t, app, "52998224725", "secret1")
	tokenB := login(t, app, "15350946056", "secret1")

	source := openAccount(t, app, tokenA, "checking")
	destination := openAccount(t, app, tokenB, "savings")
	deposit(t, ctrl, source.Number, "100")

	resp = doRequest(t, app, "POST", "/api/v1/auth/payments", tokenA, map[string]interface{}{
		"source_account":       source.Number,
		"destination_document": "15350946056",
		"amount":               "50",
		"password":             "secret1",
	})
	assertStatus(t, resp, 200)

	got, _, _ := ctrl.Accounts.Find(destination.Number)
	if got.Balance.String() != "50" {
		t.Fatalf("destination balance = %s, want 50", got.Balance)
	}
}

func TestPaymentFailures(t *testing.T) {
	app, ctrl := newTestApp(t)

	signup(t, app, "52998224725")
	signup(t, app, "15350946056")

	tokenA := login(t, app, "52998224725", "secret1")
	tokenB := login(t, app, "15350946056", "secret1")

	source := openAccount(t, app, tokenA, "checking")
	destination := openAccount(t, app, tokenB, "checking")
	deposit(t, ctrl, source.Number, "100")

	cases := []struct {
		name   string
		token  string
		body   map[string]interface{}
		status int
	}{
		{
			name:  "wrong password",
			token: tokenA,
			body: map[string]interface{}{
				"source_account":      source.Number,
				"destination_account": destination.Number,
				"amount":              "10",
				"password":            "wrong99",
			},
			status: 401,
		},
		{
			name:  "zero amount",
			token: tokenA,
			body: map[string]interface{}{
				"source_account":      source.Number,
				"destination_account": destination.Number,
				"password":            "secret1",
			},
			status: 422,
		},
		{
			name:  "no destination",
			token: tokenA,
			body: map[string]interface{}{
				"source_account": source.Number,
				"amount":         "10",
				"password":       "secret1",
			},
			status: 422,
		},
		{
			name:  "self transfer",
			token: tokenA,
			body: map[string]interface{}{
				"source_account":      source.Number,
				"destination_account": source.Number,
				"amount":              "10",
				"password":            "secret1",
			},
			status: 422,
		},
		{
			name:  "insufficient funds",
			token: tokenA,
			body: map[string]interface{}{
				"source_account":      source.Number,
				"destination_account": destination.Number,
				"amount":              "100.01",
				"password":            "secret1",
			},
			status: 422,
		},
		{
			name:  "unknown destination account",
			token: tokenA,
			body: map[string]interface{}{
				"source_account":      source.Number,
				"destination_account": 9999,
				"amount":              "10",
				"password":            "secret1",
			},
			status: 404,
		},
		{
			name:  "source not owned",
			token: tokenB,
			body: map[string]interface{}{
				"source_account":      source.Number,
				"destination_account": destination.Number,
				"amount":              "10",
				"password":            "secret1",
			},
			status: 404,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, "POST", "/api/v1/auth/payments", tc.token, tc.body)
			assertStatus(t, resp, tc.status)
		})
	}

	// No failed attempt may have moved money.
	got, _, _ := ctrl.Accounts.Find(source.Number)
	if got.Balance.String() != "100" {
		t.Fatalf("source balance = %s, want 100", got.Balance)
	}
	got, _, _ = ctrl.Accounts.Find(destination.Number)
	if !got.Balance.IsZero() {
		t.Fatalf("destination balance = %s, want 0", got.Balance)
	}
}

func TestPaymentLimitExceeded(t *testing.T) {
	app, ctrl := newTestApp(t)

	signup(t, app, "52998224725")
	signup(t, app, "15350946056")

	tokenA := login(t, app, "52998224725", "secret1")
	tokenB := login(t, app, "15350946056", "secret1")

	source := openAccount(t, app, tokenA, "savings")
	destination := openAccount(t, app, tokenB, "checking")
	deposit(t, ctrl, source.Number, "2000")

	resp := doRequest(t, app, "POST", "/api/v1/auth/payments", tokenA, map[string]interface{}{
		"source_account":      source.Number,
		"destination_account": destination.Number,
		"amount":              "1000.01",
		"password":            "secret1",
	})
	assertStatus(t, resp, 422)

	var errs struct {
		Errors []string `json:"errors"`
	}
	decodeBody(t, resp, &errs)
	if len(errs.Errors) != 1 || !strings.Contains(errs.Errors[0], "R$ 1000.00") {
		t.Fatalf("unexpected errors %v", errs.Errors)
	}
}

func TestPaymentToInactiveDestination(t *testing.T) {
	app, ctrl := newTestApp(t)

	signup(t, app, "52998224725")
	signup(t, app, "15350946056")

	tokenA := login(t, app, "52998224725", "secret1")
	tokenB := login(t, app, "15350946056", "secret1")

	source := openAccount(t, app, tokenA, "checking")
	destination := openAccount(t, app, tokenB, "checking")
	deposit(t, ctrl, source.Number, "100")

	resp := doRequest(t, app, "DELETE", fmt.Sprintf("/api/v1/auth/accounts/%d", destination.Number), tokenB, map[string]string{"password": "secret1"})
	assertStatus(t, resp, 200)

	resp = doRequest(t, app, "POST", "/api/v1/auth/payments", tokenA, map[string]interface{}{
		"source_account":      source.Number,
		"destination_account": destination.Number,
		"amount":              "10",
		"password":            "secret1",
	})
	assertStatus(t, resp, 422)

	var errs struct {
		Errors []string `json:"errors"`
	}
	decodeBody(t, resp, &errs)
	want := fmt.Sprintf("Account %d is inactive.", destination.Number)
	if len(errs.Errors) != 1 || errs.Errors[0] != want {
		t.Fatalf("errors = %v, want [%s]", errs.Errors, want)
	}
}

func TestLogout(t *testing.T) {
	app, _ := newTestApp(t)

	signup(t, app, "52998224725")
	token := login(t, app, "52998224725", "secret1")

	resp := doRequest(t, app, "POST", "/api/v1/auth/logout", token, nil)
	assertStatus(t, resp, 200)
}

func TestTimestamp(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, "GET", "/api/v1/public/timestamp", "", nil)
	assertStatus(t, resp, 200)

	var ts int64
	decodeBody(t, resp, &ts)
	if ts == 0 {
		t.Fatal("timestamp should not be zero")
	}
}
