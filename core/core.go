package core

import (
	"net/http"
	"sync/atomic"

	"github.com/DE-labtory/coinflip"
	"github.com/DE-labtory/coinflip/api"
	"github.com/DE-labtory/coinflip/auth"
	"github.com/DE-labtory/coinflip/chain"
	"github.com/DE-labtory/coinflip/config"
	"github.com/DE-labtory/coinflip/game"
	"github.com/DE-labtory/coinflip/log"
	"github.com/DE-labtory/coinflip/randomness"
)

// traceLimit bounds the events the node keeps for Trace
const traceLimit = 1000

type Node struct {
	addr      string
	lifecycle *game.Lifecycle
	auth      *auth.Authenticator
	clock     *chain.BlockClock
	events    *coinflip.EventChannel
	tracer    *coinflip.EventTracer
	server    *http.Server

	stopFlag  int32
	closeChan chan struct{}
}

func New(conf *config.Config) (*Node, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	systemID, err := coinflip.NewSystemID(conf.Game.SystemID)
	if err != nil {
		return nil, err
	}

	authenticator, err := auth.New(conf.Auth.Secret, conf.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}

	events := coinflip.NewEventChannel(conf.Events.BufferSize)
	clock := chain.NewBlockClock(conf.Chain.StartHeight, conf.Chain.BlockInterval)
	lifecycle := game.New(
		systemID,
		coinflip.NewCoinStore(conf.Game.Capacity),
		randomness.NewBlake2(),
		clock,
		events,
	)

	n := &Node{
		addr:      conf.Identity.Address,
		lifecycle: lifecycle,
		auth:      authenticator,
		clock:     clock,
		events:    events,
		tracer:    coinflip.NewEventTracer(traceLimit),
		closeChan: make(chan struct{}),
	}
	n.server = &http.Server{
		Addr:    n.addr,
		Handler: api.NewHandler(lifecycle, authenticator, log.With("http")),
	}

	go n.drainEvents(events, n.tracer)

	return n, nil
}

// Run serves the HTTP API until Close is called.
func (n *Node) Run() error {
	log.Info("message", "http server started", "address", n.addr)
	if err := n.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (n *Node) Handler() http.Handler {
	return n.server.Handler
}

func (n *Node) Lifecycle() *game.Lifecycle {
	return n.lifecycle
}

func (n *Node) Authenticator() *auth.Authenticator {
	return n.auth
}

func (n *Node) Tracer() *coinflip.EventTracer {
	return n.tracer
}

func (n *Node) Close() {
	if first := atomic.CompareAndSwapInt32(&n.stopFlag, int32(0), int32(1)); !first {
		return
	}
	n.server.Close()
	n.clock.Close()
	n.closeChan <- struct{}{}
	<-n.closeChan

	if dropped := n.events.Dropped(); dropped > 0 {
		log.Warn("message", "events dropped", "count", dropped)
	}
	n.tracer.Trace()
}

func (n *Node) drainEvents(receiver coinflip.EventReceiver, tracer coinflip.Tracer) {
	for {
		select {
		case <-n.closeChan:
			n.closeChan <- struct{}{}
			return
		case ev := <-receiver.Receive():
			log.Info(
				"event", string(ev.Kind),
				"account", string(ev.Account),
				"side", ev.Side.String(),
				"height", ev.Height,
			)
			tracer.Deposit(ev)
		}
	}
}
