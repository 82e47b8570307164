package store

import (
	"path/filepath"

	"gobank/models"
)

// PersonStore keeps identity records keyed by document number.
type PersonStore struct {
	col *Collection[*models.Person]
}

func NewPersonStore(dir string) *PersonStore {
	return &PersonStore{
		col: NewCollection(filepath.Join(dir, "persons.json"), func(p *models.Person) string {
			return p.Document
		}),
	}
}

func (s *PersonStore) All() ([]*models.Person, error) {
	return s.col.All()
}

func (s *PersonStore) Find(document string) (*models.Person, bool, error) {
	return s.col.Find(document)
}

func (s *PersonStore) Create(person *models.Person) error {
	return s.col.Create(person)
}

func (s *PersonStore) Update(person *models.Person) (bool, error) {
	return s.col.Update(person)
}

func (s *PersonStore) Delete(document string) (bool, error) {
	return s.col.Delete(document)
}
