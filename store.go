package coinflip

import (
	"crypto/sha256"
	"errors"
	"sort"
	"sync"

	"github.com/cbergoon/merkletree"
)

const DefaultCapacity = 10

// Entry is a copy of one stored coin together with its owner.
type Entry struct {
	Account AccountID `json:"account"`
	Coin    Coin      `json:"coin"`
}

// CoinStore holds at most one coin per account and never more than
// capacity entries in total.
type CoinStore struct {
	lock     sync.RWMutex
	capacity int
	coins    map[AccountID]Coin
}

func NewCoinStore(capacity int) *CoinStore {
	if capacity < 1 {
		capacity = 1
	}
	return &CoinStore{
		lock:     sync.RWMutex{},
		capacity: capacity,
		coins:    make(map[AccountID]Coin),
	}
}

// TryInsert stores coin under account. An existing entry is overwritten;
// a new key on a full store fails with ErrCapacityExceeded and changes nothing.
func (s *CoinStore) TryInsert(account AccountID, coin Coin) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.coins[account]; !ok && len(s.coins) >= s.capacity {
		return ErrCapacityExceeded
	}
	s.coins[account] = coin
	return nil
}

func (s *CoinStore) Get(account AccountID) (Coin, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	coin, ok := s.coins[account]
	return coin, ok
}

// Mutate replaces the coin of an existing account. It reports false and
// does nothing when the account has no coin.
func (s *CoinStore) Mutate(account AccountID, coin Coin) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.coins[account]; !ok {
		return false
	}
	s.coins[account] = coin
	return true
}

func (s *CoinStore) Remove(account AccountID) (Coin, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	coin, ok := s.coins[account]
	if ok {
		delete(s.coins, account)
	}
	return coin, ok
}

func (s *CoinStore) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.coins)
}

func (s *CoinStore) Capacity() int {
	return s.capacity
}

// Entries returns every stored coin ordered by account
func (s *CoinStore) Entries() []Entry {
	s.lock.RLock()
	defer s.lock.RUnlock()

	entries := make([]Entry, 0, len(s.coins))
	for account, coin := range s.coins {
		entries = append(entries, Entry{Account: account, Coin: coin})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Account < entries[j].Account
	})
	return entries
}

// Root returns the merkle root over Entries. An empty store has a nil root.
func (s *CoinStore) Root() ([]byte, error) {
	entries := s.Entries()
	if len(entries) == 0 {
		return nil, nil
	}

	contents := make([]merkletree.Content, 0, len(entries))
	for _, entry := range entries {
		contents = append(contents, entryContent(entry))
	}
	tree, err := merkletree.NewTree(contents)
	if err != nil {
		return nil, err
	}
	return tree.MerkleRoot(), nil
}

type entryContent Entry

// CalculateHash hashes account bytes, a zero separator and the side byte.
func (c entryContent) CalculateHash() ([]byte, error) {
	h := sha256.New()
	if _, err := h.Write([]byte(c.Account)); err != nil {
		return nil, err
	}
	if _, err := h.Write([]byte{0, byte(c.Coin.Side)}); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

func (c entryContent) Equals(other merkletree.Content) (bool, error) {
	o, ok := other.(entryContent)
	if !ok {
		return false, errors.New("value is not a coin entry")
	}
	return c == o, nil
}
