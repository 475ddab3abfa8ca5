package types

import (
	"encoding/json"
	"testing"
)

func strptr(s string) *string { return &s }

func TestAgentOutput_OmitsUnsetFields(t *testing.T) {
	out := AgentOutput{Action: strptr("click")}

	data, err := json.Marshal(&out)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := `{"action":"click"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestAgentOutput_FieldOrder(t *testing.T) {
	out := AgentOutput{
		Thinking: strptr("looks done"),
		NextGoal: strptr("submit form"),
		Action:   strptr("click"),
	}

	data, err := json.Marshal(&out)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := `{"thinking":"looks done","next_goal":"submit form","action":"click"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}
