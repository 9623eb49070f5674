package editorcmd

import (
	"github.com/goliatone/go-command/dispatcher"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// RegisterEditorCommands hands every session handler to reg. A nil registry
// registers nothing.
func RegisterEditorCommands(reg CommandRegistry, session *Session) error {
	if session == nil {
		return ErrControllerRequired
	}
	if reg == nil {
		return nil
	}
	for _, handler := range session.Handlers() {
		if err := reg.RegisterCommand(handler); err != nil {
			return err
		}
	}
	return nil
}

type subscription interface {
	Unsubscribe()
}

// Subscribe routes go-command dispatcher messages to session and returns a
// function removing every subscription.
func Subscribe(session *Session) func() {
	if session == nil {
		return func() {}
	}
	subs := []subscription{
		dispatcher.SubscribeCommand(session.Load),
		dispatcher.SubscribeCommand(session.EnterEdit),
		dispatcher.SubscribeCommand(session.ExitEdit),
		dispatcher.SubscribeCommand(session.AddSection),
		dispatcher.SubscribeCommand(session.UpdateSection),
		dispatcher.SubscribeCommand(session.RemoveSection),
		dispatcher.SubscribeCommand(session.MoveSection),
		dispatcher.SubscribeCommand(session.DuplicateSection),
		dispatcher.SubscribeCommand(session.SelectMedia),
		dispatcher.SubscribeCommand(session.UpdateProperties),
		dispatcher.SubscribeCommand(session.Save),
	}
	return func() {
		for _, sub := range subs {
			sub.Unsubscribe()
		}
	}
}
