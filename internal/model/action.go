package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GameAction is the generic game-action envelope: a type discriminator plus
// type-specific fields. Raw keeps the original body so it can be echoed back
// and decoded per (game type, action type) by the rulesets.
type GameAction struct {
	Type string
	Raw  json.RawMessage
}

// NewGameAction builds an action from a type and its fields
func NewGameAction(actionType string, fields map[string]any) GameAction {
	body := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["type"] = actionType
	raw, _ := json.Marshal(body)
	return GameAction{Type: actionType, Raw: raw}
}

// UnmarshalJSON reads the discriminator and keeps the raw body
func (a *GameAction) UnmarshalJSON(b []byte) error {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return fmt.Errorf("%w: malformed game action", ErrInvalidRequest)
	}
	a.Type = strings.TrimSpace(head.Type)
	a.Raw = append(json.RawMessage(nil), b...)
	return nil
}

// MarshalJSON echoes the original body
func (a GameAction) MarshalJSON() ([]byte, error) {
	if len(a.Raw) == 0 {
		return json.Marshal(map[string]string{"type": a.Type})
	}
	return a.Raw, nil
}

// Decode unmarshals the type-specific fields into v
func (a GameAction) Decode(v any) error {
	if len(a.Raw) == 0 {
		return fmt.Errorf("%w: empty %s action", ErrInvalidRequest, a.Type)
	}
	if err := json.Unmarshal(a.Raw, v); err != nil {
		return fmt.Errorf("%w: malformed %s action: %v", ErrInvalidRequest, a.Type, err)
	}
	return nil
}
