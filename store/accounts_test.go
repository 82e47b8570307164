package store

import (
	"errors"
	"testing"

	"gobank/models"
	"gobank/types"
)

func TestAccountStoreNextNumber(t *testing.T) {
	accounts := NewAccountStore(t.TempDir())

	number, err := accounts.NextNumber()
	if err != nil {
		t.Fatalf("NextNumber: %v", err)
	}
	if number != 1001 {
		t.Errorf("empty store should allocate 1001, got %d", number)
	}

	if err := accounts.Create(models.NewAccount(1001, types.AccountTypeChecking)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := accounts.Create(models.NewAccount(1005, types.AccountTypeSavings)); err != nil {
		t.Fatalf("create: %v", err)
	}

	number, err = accounts.NextNumber()
	if err != nil {
		t.Fatalf("NextNumber: %v", err)
	}
	if number != 1006 {
		t.Errorf("expected max+1 = 1006, got %d", number)
	}
}

func TestAccountStoreIndexFollowsWrites(t *testing.T) {
	accounts := NewAccountStore(t.TempDir())

	for _, n := range []int64{1001, 1002, 1003} {
		if err := accounts.Create(models.NewAccount(n, types.AccountTypeChecking)); err != nil {
			t.Fatalf("create %d: %v", n, err)
		}
	}

	// Deleting the highest number must be reflected by the index immediately.
	if deleted, err := accounts.Delete(1003); err != nil || !deleted {
		t.Fatalf("delete: deleted=%v err=%v", deleted, err)
	}
	number, err := accounts.NextNumber()
	if err != nil {
		t.Fatalf("NextNumber: %v", err)
	}
	if number != 1003 {
		t.Errorf("expected 1003 after deleting the previous max, got %d", number)
	}

	numbers, err := accounts.Numbers()
	if err != nil {
		t.Fatalf("Numbers: %v", err)
	}
	if len(numbers) != 2 || numbers[0] != 1001 || numbers[1] != 1002 {
		t.Errorf("unexpected numbers: %v", numbers)
	}
}

func TestAccountStoreIndexLoadsExistingFile(t *testing.T) {
	dir := t.TempDir()

	first := NewAccountStore(dir)
	if err := first.Create(models.NewAccount(1001, types.AccountTypeChecking)); err != nil {
		t.Fatalf("create: %v", err)
	}

	// A fresh store over the same directory rebuilds the index from the file.
	second := NewAccountStore(dir)
	number, err := second.NextNumber()
	if err != nil {
		t.Fatalf("NextNumber: %v", err)
	}
	if number != 1002 {
		t.Errorf("expected 1002 from the rebuilt index, got %d", number)
	}
}

func TestAccountStoreDuplicateNumber(t *testing.T) {
	accounts := NewAccountStore(t.TempDir())

	if err := accounts.Create(models.NewAccount(1001, types.AccountTypeChecking)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := accounts.Create(models.NewAccount(1001, types.AccountTypeSavings)); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}

func TestAccountStoreRoundTrip(t *testing.T) {
	accounts := NewAccountStore(t.TempDir())

	account := models.NewAccount(1001, types.AccountTypeSavings)
	if err := account.MonthlyAdjust(); err != nil {
		t.Fatal(err)
	}
	if err := accounts.Create(account); err != nil {
		t.Fatalf("create: %v", err)
	}

	loaded, found, err := accounts.Find(1001)
	if err != nil || !found {
		t.Fatalf("find: found=%v err=%v", found, err)
	}
	if loaded.Type != types.AccountTypeSavings || !loaded.Active {
		t.Errorf("unexpected account: %+v", loaded)
	}
	if !loaded.Balance.Equal(account.Balance) {
		t.Errorf("balance lost in round trip: %s != %s", loaded.Balance, account.Balance)
	}
	if len(loaded.History) != 1 {
		t.Errorf("history lost in round trip: %v", loaded.History)
	}
}
