package page

import (
	"errors"
)

// ErrUnknownAction is returned when activating an action key that does not exist.
var ErrUnknownAction = errors.New("unknown action")

// Navigator moves the client to another route.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) {
	f(path)
}

// ActionEntry is a clickable card on the landing page.
type ActionEntry struct {
	Key         string
	Icon        string
	Label       string
	Description string
	Destination string
}

var actions = [...]ActionEntry{
	{
		Key:         "deposit",
		Icon:        "📥",
		Label:       "Deposit",
		Description: "Add USDC to the pool and earn fees.",
		Destination: "/liquidity/deposit",
	},
	{
		Key:         "withdraw",
		Icon:        "📤",
		Label:       "Withdraw",
		Description: "Redeem your LP tokens for USDC.",
		Destination: "/liquidity/withdraw",
	},
	{
		Key:         "claim",
		Icon:        "💰",
		Label:       "Claim Fees",
		Description: "Collect your share of trading fees.",
		Destination: "/liquidity/claim",
	},
}

// Actions returns the landing page actions in display order.
func Actions() []ActionEntry {
	out := make([]ActionEntry, len(actions))
	copy(out, actions[:])
	return out
}

// FindAction looks up an action by key.
func FindAction(key string) (ActionEntry, bool) {
	for _, a := range actions {
		if a.Key == key {
			return a, true
		}
	}
	return ActionEntry{}, false
}

// Activate navigates to the destination of the action with the given key.
func Activate(key string, nav Navigator) error {
	action, ok := FindAction(key)
	if !ok {
		return ErrUnknownAction
	}
	if nav != nil {
		nav.Navigate(action.Destination)
	}
	return nil
}
