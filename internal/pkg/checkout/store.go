package checkout

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/dark-store/bukafresh/internal/pkg/session"
)

const sessionKey = "checkout_state"

// Load reads the checkout state from the request's session, returning a
// fresh state when none exists or the stored blob does not parse.
func Load(c *fiber.Ctx) *State {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return NewState()
	}
	raw, ok := sess.Get(sessionKey).(string)
	if !ok || raw == "" {
		return NewState()
	}
	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return NewState()
	}
	if state.Step == 0 {
		return NewState()
	}
	return &state
}

// Save writes the checkout state back into the session.
func Save(c *fiber.Ctx, state *State) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	sess.Set(sessionKey, string(raw))
	return sess.Save()
}

// Clear removes the checkout state from the session, used after completion
// or explicit abandonment.
func Clear(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}
	sess.Delete(sessionKey)
	return sess.Save()
}
