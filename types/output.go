package types

// AgentOutput is the structured model response for one step.
//
// All fields are optional pointers so that fields the model never set are
// omitted when the output is serialized into a transcript. Field order
// matches the order the model emits them in.
type AgentOutput struct {
	// Thinking is the model's reasoning text.
	Thinking *string `msgpack:"thinking,omitempty" json:"thinking,omitempty"`
	// EvaluationPreviousGoal is the model's judgement of the prior step.
	EvaluationPreviousGoal *string `msgpack:"evaluation_previous_goal,omitempty" json:"evaluation_previous_goal,omitempty"`
	// Memory is state the model asked to carry across steps.
	Memory *string `msgpack:"memory,omitempty" json:"memory,omitempty"`
	// NextGoal is the model's stated goal for the next step.
	NextGoal *string `msgpack:"next_goal,omitempty" json:"next_goal,omitempty"`
	// Action is the action the model chose for this step.
	Action *string `msgpack:"action,omitempty" json:"action,omitempty"`
}
