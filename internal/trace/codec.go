package trace

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownPayload = errors.New("trace: unknown payload kind")

type snapshotJSON struct {
	Label       Label           `json:"label"`
	Explanation string          `json:"explanation"`
	Lines       []int           `json:"lines,omitempty"`
	Family      string          `json:"family"`
	Kind        string          `json:"kind"`
	Payload     json.RawMessage `json:"payload"`
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	if s.Payload == nil {
		return nil, fmt.Errorf("%w: nil payload", ErrUnknownPayload)
	}
	payload, err := json.Marshal(s.Payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(snapshotJSON{
		Label:       s.Label,
		Explanation: s.Explanation,
		Lines:       s.Lines,
		Family:      s.Payload.Family().String(),
		Kind:        s.Payload.Kind(),
		Payload:     payload,
	})
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var env snapshotJSON
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	p, err := newPayload(env.Kind)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(env.Payload, p); err != nil {
		return fmt.Errorf("decode %s payload: %w", env.Kind, err)
	}
	*s = Snapshot{Label: env.Label, Explanation: env.Explanation, Lines: env.Lines, Payload: p}
	return nil
}

func newPayload(kind string) (Payload, error) {
	switch kind {
	case "array":
		return &Array{}, nil
	case "subarray":
		return &Subarray{}, nil
	case "schedule":
		return &Schedule{}, nil
	case "knapsack":
		return &Knapsack{}, nil
	case "activities":
		return &Activities{}, nil
	case "coloring":
		return &Coloring{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPayload, kind)
}
