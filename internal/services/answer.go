package services

import "encoding/json"

// AnswerKind tags the runtime shape of an answer value.
type AnswerKind int

const (
	AnswerNone AnswerKind = iota
	AnswerText
	AnswerList
	AnswerNumber
)

// AnswerValue is the polymorphic answer body: a string for choice and text
// questions, a string list for multi-choice, or a number for ratings.
// Decoding is lenient: a body that matches none of the shapes yields
// AnswerNone and is carried along untouched. Aggregation dispatches on the
// question type and skips values whose kind does not match.
type AnswerValue struct {
	Kind   AnswerKind
	Text   string
	List   []string
	Number float64
}

func TextValue(s string) AnswerValue { return AnswerValue{Kind: AnswerText, Text: s} }
func ListValue(l []string) AnswerValue { return AnswerValue{Kind: AnswerList, List: l} }
func NumberValue(n float64) AnswerValue { return AnswerValue{Kind: AnswerNumber, Number: n} }

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	// json.Unmarshal treats null as a no-op for string targets, which would
	// read back as empty text. Catch it before the shape probes.
	if string(data) == "null" {
		*v = AnswerValue{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = AnswerValue{Kind: AnswerText, Text: s}
		return nil
	}
	var l []string
	if err := json.Unmarshal(data, &l); err == nil {
		*v = AnswerValue{Kind: AnswerList, List: l}
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = AnswerValue{Kind: AnswerNumber, Number: n}
		return nil
	}
	// Malformed bodies are tolerated; they just never match a question.
	*v = AnswerValue{}
	return nil
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case AnswerText:
		return json.Marshal(v.Text)
	case AnswerList:
		return json.Marshal(v.List)
	case AnswerNumber:
		return json.Marshal(v.Number)
	default:
		return []byte("null"), nil
	}
}
