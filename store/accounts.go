package store

import (
	"path/filepath"
	"strconv"
	"sync"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"

	"gobank/models"
)

// firstAccountNumber is the seed for number allocation: numbering starts at
// max(existing)+1, or 1000+1 when no account exists yet.
const firstAccountNumber = 1001

// AccountStore keeps accounts keyed by number and maintains an in-process
// red-black-tree index of the numbers on file. The index backs NextNumber and
// ordered listing and is updated on every create and delete, so it never
// outlives a write.
type AccountStore struct {
	col *Collection[*models.Account]

	mu    sync.Mutex
	index *redblacktree.Tree
}

func NewAccountStore(dir string) *AccountStore {
	return &AccountStore{
		col: NewCollection(filepath.Join(dir, "accounts.json"), func(a *models.Account) string {
			return strconv.FormatInt(a.Number, 10)
		}),
	}
}

func (s *AccountStore) All() ([]*models.Account, error) {
	return s.col.All()
}

func (s *AccountStore) Find(number int64) (*models.Account, bool, error) {
	return s.col.Find(strconv.FormatInt(number, 10))
}

func (s *AccountStore) Create(account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureIndex(); err != nil {
		return err
	}
	if err := s.col.Create(account); err != nil {
		return err
	}
	s.index.Put(account.Number, struct{}{})
	return nil
}

func (s *AccountStore) Update(account *models.Account) (bool, error) {
	return s.col.Update(account)
}

func (s *AccountStore) Delete(number int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureIndex(); err != nil {
		return false, err
	}
	found, err := s.col.Delete(strconv.FormatInt(number, 10))
	if err != nil {
		return found, err
	}
	if found {
		s.index.Remove(number)
	}
	return found, nil
}

// NextNumber allocates the next account number: highest existing number plus
// one, FirstAccountNumber when the store is empty.
func (s *AccountStore) NextNumber() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureIndex(); err != nil {
		return 0, err
	}
	max := s.index.Right()
	if max == nil {
		return firstAccountNumber, nil
	}
	return max.Key.(int64) + 1, nil
}

// Numbers returns every account number on file in ascending order.
func (s *AccountStore) Numbers() ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureIndex(); err != nil {
		return nil, err
	}
	numbers := make([]int64, 0, s.index.Size())
	for _, key := range s.index.Keys() {
		numbers = append(numbers, key.(int64))
	}
	return numbers, nil
}

// ensureIndex lazily builds the number index from the backing file. Callers
// must hold s.mu.
func (s *AccountStore) ensureIndex() error {
	if s.index != nil {
		return nil
	}
	accounts, err := s.col.All()
	if err != nil {
		return err
	}
	tree := redblacktree.NewWith(utils.Int64Comparator)
	for _, account := range accounts {
		tree.Put(account.Number, struct{}{})
	}
	s.index = tree
	return nil
}
