package mediator_test

import (
	"context"

	"github.com/AntonStoeckl/bookapp-api/mediator"
)

type pingCommand struct {
	Value string
}

func (c pingCommand) MessageType() string {
	return "PingCommand"
}

func (c pingCommand) MessageKind() mediator.Kind {
	return mediator.KindCommand
}

type pongQuery struct{}

func (q pongQuery) MessageType() string {
	return "PongQuery"
}

func (q pongQuery) MessageKind() mediator.Kind {
	return mediator.KindQuery
}

// impostor claims the message type of pingCommand but has a different Go type.
type impostor struct{}

func (i impostor) MessageType() string {
	return "PingCommand"
}

func (i impostor) MessageKind() mediator.Kind {
	return mediator.KindCommand
}

func okHandler(payload any) mediator.HandlerFunc {
	return func(_ context.Context, _ mediator.Message) (mediator.Result, error) {
		return mediator.Ok(payload), nil
	}
}
