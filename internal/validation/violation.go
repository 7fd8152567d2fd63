package validation

// Location is where a validated value comes from.
type Location string

const (
	LocationParams Location = "params"
	LocationBody   Location = "body"
)

// Violation is a single failed check. Value is omitted when the field was
// absent from the request.
type Violation struct {
	Type     string   `json:"type"`
	Value    any      `json:"value,omitempty"`
	Msg      string   `json:"msg"`
	Path     string   `json:"path"`
	Location Location `json:"location"`
}

// Input holds the request values rules are evaluated against.
type Input struct {
	Params map[string]string
	Body   map[string]any
}

// Lookup returns the raw value of field at loc and whether it was present.
func (in Input) Lookup(loc Location, field string) (any, bool) {
	switch loc {
	case LocationParams:
		v, ok := in.Params[field]
		if !ok {
			return nil, false
		}
		return v, true
	case LocationBody:
		v, ok := in.Body[field]
		return v, ok
	}
	return nil, false
}

// Result is the outcome of running a route's rules: either the input is
// valid, or Violations lists every failed check.
type Result struct {
	Input      Input
	Violations []Violation
}

// Valid reports whether no check failed.
func (r Result) Valid() bool {
	return len(r.Violations) == 0
}

// Validate runs rules in order against in and collects their violations.
func Validate(in Input, rules ...Rule) Result {
	res := Result{Input: in}
	for _, rule := range rules {
		res.Violations = append(res.Violations, rule.Check(in)...)
	}
	return res
}
