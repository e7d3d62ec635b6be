package game

import (
	"sync"

	"github.com/DE-labtory/coinflip"
)

// TossOutcome is what a toss reports back to the caller.
type TossOutcome struct {
	// Side is the freshly drawn side, which is also the stored side after the toss
	Side coinflip.Side `json:"side"`

	// Guessed is true when the caller's guess matched Side
	Guessed bool `json:"guessed"`

	// Flipped is true when the stored coin changed face
	Flipped bool `json:"flipped"`
}

// Lifecycle runs the guarded create, toss and remove transitions over a
// coin store. Every operation holds the lifecycle lock until it returns,
// so each one either applies completely or not at all.
type Lifecycle struct {
	lock sync.Mutex

	systemID   coinflip.SystemID
	store      *coinflip.CoinStore
	randomness coinflip.RandomnessSource
	sequence   coinflip.Sequence
	sink       coinflip.EventSink
}

func New(
	systemID coinflip.SystemID,
	store *coinflip.CoinStore,
	randomness coinflip.RandomnessSource,
	sequence coinflip.Sequence,
	sink coinflip.EventSink,
) *Lifecycle {
	return &Lifecycle{
		systemID:   systemID,
		store:      store,
		randomness: randomness,
		sequence:   sequence,
		sink:       sink,
	}
}

// Create gives account a coin showing a randomly drawn side.
func (l *Lifecycle) Create(account coinflip.AccountID) (coinflip.Coin, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	if _, ok := l.store.Get(account); ok {
		return coinflip.Coin{}, coinflip.ErrCoinAlreadyExists
	}

	height := l.sequence.Height()
	coin := coinflip.Coin{Side: l.draw(height)}
	if err := l.store.TryInsert(account, coin); err != nil {
		return coinflip.Coin{}, err
	}

	l.deposit(coinflip.EventCreated, account, coin.Side, height)
	return coin, nil
}

// Toss draws a new side and compares it with guess. The stored coin only
// changes when the drawn side differs from its current face; the guess
// result is reported either way.
func (l *Lifecycle) Toss(account coinflip.AccountID, guess coinflip.Side) (TossOutcome, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	coin, ok := l.store.Get(account)
	if !ok {
		return TossOutcome{}, coinflip.ErrCoinNotFound
	}

	height := l.sequence.Height()
	outcome := TossOutcome{Side: l.draw(height)}

	if guess == outcome.Side {
		outcome.Guessed = true
		l.deposit(coinflip.EventGuessedCorrectly, account, outcome.Side, height)
	} else {
		l.deposit(coinflip.EventGuessedIncorrectly, account, outcome.Side, height)
	}

	if coin.Side != outcome.Side {
		l.store.Mutate(account, coinflip.Coin{Side: outcome.Side})
		outcome.Flipped = true
		l.deposit(coinflip.EventFlipped, account, outcome.Side, height)
	}

	return outcome, nil
}

func (l *Lifecycle) Remove(account coinflip.AccountID) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	coin, ok := l.store.Remove(account)
	if !ok {
		return coinflip.ErrCoinNotFound
	}

	l.deposit(coinflip.EventRemoved, account, coin.Side, l.sequence.Height())
	return nil
}

func (l *Lifecycle) Coin(account coinflip.AccountID) (coinflip.Coin, error) {
	coin, ok := l.store.Get(account)
	if !ok {
		return coinflip.Coin{}, coinflip.ErrCoinNotFound
	}
	return coin, nil
}

// RandomSide returns the side a draw at the current height produces.
func (l *Lifecycle) RandomSide() coinflip.Side {
	return l.draw(l.sequence.Height())
}

// Snapshot is a read-only summary of the store at one height.
type Snapshot struct {
	Height   uint64 `json:"height"`
	Coins    int    `json:"coins"`
	Capacity int    `json:"capacity"`
	Root     []byte `json:"root"`
}

func (l *Lifecycle) Snapshot() (Snapshot, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	root, err := l.store.Root()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Height:   l.sequence.Height(),
		Coins:    l.store.Len(),
		Capacity: l.store.Capacity(),
		Root:     root,
	}, nil
}

func (l *Lifecycle) draw(height uint64) coinflip.Side {
	seed := coinflip.SeedFromHeight(height)
	return coinflip.SideFromEntropy(l.randomness.Random(coinflip.EntropySubject(l.systemID, seed)))
}

func (l *Lifecycle) deposit(kind coinflip.EventKind, account coinflip.AccountID, side coinflip.Side, height uint64) {
	if l.sink == nil {
		return
	}
	l.sink.Deposit(coinflip.NewEvent(kind, account, side, height))
}
