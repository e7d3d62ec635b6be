package api

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/DE-labtory/coinflip"
	"github.com/DE-labtory/coinflip/game"
	kitendpoint "github.com/go-kit/kit/endpoint"
	kitlog "github.com/go-kit/kit/log"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
)

type ErrIllegalArgument struct {
	Reason string
}

func (e ErrIllegalArgument) Error() string {
	return fmt.Sprintf("err illegal argument: %s", e.Reason)
}

var errUnauthorized = errors.New("unauthorized")

// Service is the coin game as seen by the HTTP layer.
type Service interface {
	Create(account coinflip.AccountID) (coinflip.Coin, error)
	Toss(account coinflip.AccountID, guess coinflip.Side) (game.TossOutcome, error)
	Remove(account coinflip.AccountID) error
	Coin(account coinflip.AccountID) (coinflip.Coin, error)
	Snapshot() (game.Snapshot, error)
}

// Verifier maps a bearer token to the account it was issued for.
type Verifier interface {
	Verify(token string) (coinflip.AccountID, error)
}

type contextKey int

const (
	tokenKey contextKey = iota
	accountKey
)

type endpoint struct {
	logger  kitlog.Logger
	service Service
}

func NewHandler(service Service, verifier Verifier, logger kitlog.Logger) http.Handler {
	e := &endpoint{
		logger:  logger,
		service: service,
	}
	r := mux.NewRouter()

	opts := []kithttp.ServerOption{
		kithttp.ServerErrorLogger(logger),
		kithttp.ServerErrorEncoder(encodeError),
		kithttp.ServerBefore(extractBearerToken),
	}
	authed := authenticate(verifier)

	r.Methods("GET").Path("/healthz").HandlerFunc(func(w http.ResponseWriter, request *http.Request) {
		logger.Log("method", "GET", "endpoint", "healthz")
		w.Write([]byte("up"))
	})

	r.Methods("GET").Path("/state").Handler(kithttp.NewServer(
		e.logged("state", e.makeStateEndpoint()),
		decodeEmptyRequest,
		encodeResponse,
		opts...,
	))

	r.Methods("GET").Path("/coin").Handler(kithttp.NewServer(
		e.logged("getCoin", authed(e.makeGetCoinEndpoint())),
		decodeEmptyRequest,
		encodeResponse,
		opts...,
	))

	r.Methods("POST").Path("/coin").Handler(kithttp.NewServer(
		e.logged("createCoin", authed(e.makeCreateCoinEndpoint())),
		decodeEmptyRequest,
		encodeResponse,
		opts...,
	))

	r.Methods("POST").Path("/coin/toss").Handler(kithttp.NewServer(
		e.logged("tossCoin", authed(e.makeTossCoinEndpoint())),
		decodeTossRequest,
		encodeResponse,
		opts...,
	))

	r.Methods("DELETE").Path("/coin").Handler(kithttp.NewServer(
		e.logged("removeCoin", authed(e.makeRemoveCoinEndpoint())),
		decodeEmptyRequest,
		encodeResponse,
		opts...,
	))
	return r
}

func (e *endpoint) logged(name string, next kitendpoint.Endpoint) kitendpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		e.logger.Log("endpoint", name)
		response, err := next(ctx, request)
		if err != nil {
			e.logger.Log("endpoint", name, "err", err.Error())
		}
		return response, err
	}
}

func (e *endpoint) makeStateEndpoint() kitendpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		snapshot, err := e.service.Snapshot()
		if err != nil {
			return nil, err
		}
		return StateResponse{
			Height:   snapshot.Height,
			Coins:    snapshot.Coins,
			Capacity: snapshot.Capacity,
			Root:     hex.EncodeToString(snapshot.Root),
		}, nil
	}
}

func (e *endpoint) makeGetCoinEndpoint() kitendpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		account := accountFrom(ctx)
		coin, err := e.service.Coin(account)
		if err != nil {
			return nil, err
		}
		return CoinResponse{Account: account, Side: coin.Side}, nil
	}
}

func (e *endpoint) makeCreateCoinEndpoint() kitendpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		account := accountFrom(ctx)
		coin, err := e.service.Create(account)
		if err != nil {
			return nil, err
		}
		return CoinResponse{Account: account, Side: coin.Side, status: http.StatusCreated}, nil
	}
}

func (e *endpoint) makeTossCoinEndpoint() kitendpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(TossRequest)
		outcome, err := e.service.Toss(accountFrom(ctx), *req.Guess)
		if err != nil {
			return nil, err
		}
		return TossResponse{
			Side:    outcome.Side,
			Guessed: outcome.Guessed,
			Flipped: outcome.Flipped,
		}, nil
	}
}

func (e *endpoint) makeRemoveCoinEndpoint() kitendpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		if err := e.service.Remove(accountFrom(ctx)); err != nil {
			return nil, err
		}
		return noContent{}, nil
	}
}

// authenticate resolves the bearer token put in the context by
// extractBearerToken into an account.
func authenticate(verifier Verifier) kitendpoint.Middleware {
	return func(next kitendpoint.Endpoint) kitendpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (interface{}, error) {
			token, _ := ctx.Value(tokenKey).(string)
			if token == "" {
				return nil, errUnauthorized
			}
			account, err := verifier.Verify(token)
			if err != nil {
				return nil, errUnauthorized
			}
			return next(context.WithValue(ctx, accountKey, account), request)
		}
	}
}

func extractBearerToken(ctx context.Context, r *http.Request) context.Context {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ctx
	}
	return context.WithValue(ctx, tokenKey, strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
}

func accountFrom(ctx context.Context) coinflip.AccountID {
	account, _ := ctx.Value(accountKey).(coinflip.AccountID)
	return account
}

type TossRequest struct {
	Guess *coinflip.Side `json:"guess"`
}

type CoinResponse struct {
	Account coinflip.AccountID `json:"account"`
	Side    coinflip.Side      `json:"side"`

	status int
}

func (r CoinResponse) StatusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

type TossResponse struct {
	Side    coinflip.Side `json:"side"`
	Guessed bool          `json:"guessed"`
	Flipped bool          `json:"flipped"`
}

type StateResponse struct {
	Height   uint64 `json:"height"`
	Coins    int    `json:"coins"`
	Capacity int    `json:"capacity"`
	Root     string `json:"root"`
}

type noContent struct{}

func decodeEmptyRequest(_ context.Context, r *http.Request) (interface{}, error) {
	return struct{}{}, nil
}

func decodeTossRequest(_ context.Context, r *http.Request) (interface{}, error) {
	body := TossRequest{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, ErrIllegalArgument{err.Error()}
	}
	if body.Guess == nil {
		return nil, ErrIllegalArgument{"guess is empty"}
	}
	return body, nil
}

func encodeResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if _, ok := response.(noContent); ok {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if sc, ok := response.(kithttp.StatusCoder); ok {
		w.WriteHeader(sc.StatusCode())
	}
	return json.NewEncoder(w).Encode(response)
}

// encode errors from business-logic
func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	var illegal ErrIllegalArgument
	switch {
	case errors.As(err, &illegal):
		w.WriteHeader(http.StatusBadRequest)
	case errors.Is(err, errUnauthorized):
		w.WriteHeader(http.StatusUnauthorized)
	case coinflip.IsErrCoinAlreadyExists(err):
		w.WriteHeader(http.StatusConflict)
	case coinflip.IsErrCoinNotFound(err):
		w.WriteHeader(http.StatusNotFound)
	case coinflip.IsErrCapacityExceeded(err):
		w.WriteHeader(http.StatusInsufficientStorage)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}
