package store

import (
	"path/filepath"

	"gobank/models"
)

// ClientStore keeps clients keyed by the document of the person they wrap.
type ClientStore struct {
	col *Collection[*models.Client]
}

func NewClientStore(dir string) *ClientStore {
	return &ClientStore{
		col: NewCollection(filepath.Join(dir, "clients.json"), func(c *models.Client) string {
			return c.Document
		}),
	}
}

func (s *ClientStore) All() ([]*models.Client, error) {
	return s.col.All()
}

func (s *ClientStore) Find(document string) (*models.Client, bool, error) {
	return s.col.Find(document)
}

// FindByAccountNumber scans every client's account list for the owner of the
// given account. Accounts hold no back-reference to their client, so this is
// a linear search over all clients.
func (s *ClientStore) FindByAccountNumber(number int64) (*models.Client, bool, error) {
	clients, err := s.col.All()
	if err != nil {
		return nil, false, err
	}
	for _, client := range clients {
		if client.HasAccount(number) {
			return client, true, nil
		}
	}
	return nil, false, nil
}

func (s *ClientStore) Create(client *models.Client) error {
	return s.col.Create(client)
}

func (s *ClientStore) Update(client *models.Client) (bool, error) {
	return s.col.Update(client)
}

func (s *ClientStore) Delete(document string) (bool, error) {
	return s.col.Delete(document)
}
