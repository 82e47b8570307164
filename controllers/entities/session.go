package entities

type Session struct {
	Token    string `json:"token"`
	Document string `json:"document"`
	Name     string `json:"name"`
}

type Message struct {
	Message string `json:"message"`
}

type Payment struct {
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id"`
}
