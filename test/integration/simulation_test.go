package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DE-labtory/coinflip"
	"github.com/DE-labtory/coinflip/api"
	"github.com/DE-labtory/coinflip/config"
	"github.com/DE-labtory/coinflip/core"
)

func newConfigForTest(capacity int) *config.Config {
	return &config.Config{
		Identity: config.Identity{Address: "127.0.0.1:0"},
		Game:     config.Game{SystemID: "coinflip", Capacity: capacity},
		Chain:    config.Chain{StartHeight: 1, BlockInterval: 10 * time.Millisecond},
		Auth:     config.Auth{Secret: "integration-secret", TokenTTL: time.Hour},
		Log:      config.Log{Level: "info"},
		Events:   config.Events{BufferSize: 100},
	}
}

type player struct {
	t      *testing.T
	server *httptest.Server
	token  string
}

func (p *player) do(method, path, body string, out interface{}) int {
	req, err := http.NewRequest(method, p.server.URL+path, strings.NewReader(body))
	if err != nil {
		p.t.Fatalf("unexpected err: %s", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.server.Client().Do(req)
	if err != nil {
		p.t.Fatalf("unexpected err: %s", err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			p.t.Fatalf("%s %s: failed to decode response: %s", method, path, err)
		}
	}
	return resp.StatusCode
}

func TestCoinGameSimulation(t *testing.T) {
	node, err := core.New(newConfigForTest(3))
	if err != nil {
		t.Fatalf("failed to create node with err: %s", err)
	}
	defer node.Close()

	server := httptest.NewServer(node.Handler())
	defer server.Close()

	players := make(map[coinflip.AccountID]*player)
	for _, account := range []coinflip.AccountID{"alice", "bob", "carol", "dave"} {
		token, err := node.Authenticator().Issue(account)
		if err != nil {
			t.Fatalf("unexpected err: %s", err)
		}
		players[account] = &player{t: t, server: server, token: token}
	}

	for _, account := range []coinflip.AccountID{"alice", "bob", "carol"} {
		resp := api.CoinResponse{}
		if status := players[account].do("POST", "/coin", "", &resp); status != http.StatusCreated {
			t.Fatalf("create for %s: expected status is %d, but got %d", account, http.StatusCreated, status)
		}
		if resp.Account != account || !resp.Side.Valid() {
			t.Fatalf("create for %s: unexpected response %+v", account, resp)
		}
	}

	if status := players["alice"].do("POST", "/coin", "", nil); status != http.StatusConflict {
		t.Fatalf("second create: expected status is %d, but got %d", http.StatusConflict, status)
	}
	if status := players["dave"].do("POST", "/coin", "", nil); status != http.StatusInsufficientStorage {
		t.Fatalf("create on full store: expected status is %d, but got %d", http.StatusInsufficientStorage, status)
	}
	if status := players["dave"].do("POST", "/coin/toss", `{"guess":"head"}`, nil); status != http.StatusNotFound {
		t.Fatalf("toss without coin: expected status is %d, but got %d", http.StatusNotFound, status)
	}

	for i := 0; i < 5; i++ {
		guess := coinflip.Side(i % 2)
		toss := api.TossResponse{}
		body := fmt.Sprintf(`{"guess":"%s"}`, guess)
		if status := players["bob"].do("POST", "/coin/toss", body, &toss); status != http.StatusOK {
			t.Fatalf("toss[%d]: expected status is %d, but got %d", i, http.StatusOK, status)
		}
		if toss.Guessed != (guess == toss.Side) {
			t.Fatalf("toss[%d]: guessed flag %v does not match guess %s and side %s", i, toss.Guessed, guess, toss.Side)
		}

		coin := api.CoinResponse{}
		players["bob"].do("GET", "/coin", "", &coin)
		if coin.Side != toss.Side {
			t.Fatalf("toss[%d]: stored side %s differs from drawn side %s", i, coin.Side, toss.Side)
		}
	}

	state := api.StateResponse{}
	players["alice"].do("GET", "/state", "", &state)
	if state.Coins != 3 || state.Capacity != 3 || state.Root == "" {
		t.Fatalf("unexpected state: %+v", state)
	}

	if status := players["carol"].do("DELETE", "/coin", "", nil); status != http.StatusNoContent {
		t.Fatalf("remove: expected status is %d, but got %d", http.StatusNoContent, status)
	}
	if status := players["carol"].do("DELETE", "/coin", "", nil); status != http.StatusNotFound {
		t.Fatalf("second remove: expected status is %d, but got %d", http.StatusNotFound, status)
	}
	if status := players["dave"].do("POST", "/coin", "", nil); status != http.StatusCreated {
		t.Fatalf("create after remove: expected status is %d, but got %d", http.StatusCreated, status)
	}

	tracer := node.Tracer()
	deadline := time.Now().Add(2 * time.Second)
	for tracer.Count(coinflip.EventRemoved, "carol") == 0 || tracer.Count(coinflip.EventCreated, "dave") == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("events were not delivered, got %d", len(tracer.Events()))
		}
		time.Sleep(10 * time.Millisecond)
	}

	for _, account := range []coinflip.AccountID{"alice", "bob", "carol", "dave"} {
		if count := tracer.Count(coinflip.EventCreated, account); count != 1 {
			t.Fatalf("expected one created event for %s, but got %d", account, count)
		}
	}
	guesses := tracer.Count(coinflip.EventGuessedCorrectly, "bob") + tracer.Count(coinflip.EventGuessedIncorrectly, "bob")
	if guesses != 5 {
		t.Fatalf("expected 5 guess events for bob, but got %d", guesses)
	}
}
