package mock

import "github.com/DE-labtory/coinflip"

type EventSink struct {
	DepositFunc func(ev coinflip.Event)
}

func (s *EventSink) Deposit(ev coinflip.Event) {
	s.DepositFunc(ev)
}
