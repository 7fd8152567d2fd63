package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var integerRegex = regexp.MustCompile(`^[-+]?[0-9]+$`)

var validate = newValidator()

var isNumeric = tag("numeric")

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("integer", func(fl validator.FieldLevel) bool {
		return integerRegex.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Rule produces the violations of one declared field.
type Rule interface {
	Check(in Input) []Violation
}

type check struct {
	ok  func(v any) bool
	msg string
}

// FieldRule is an ordered list of independent checks on one field.
type FieldRule struct {
	location Location
	field    string
	checks   []check
}

// Param starts a rule on a route parameter.
func Param(name string) *FieldRule {
	return &FieldRule{location: LocationParams, field: name}
}

// Body starts a rule on a JSON body field.
func Body(name string) *FieldRule {
	return &FieldRule{location: LocationBody, field: name}
}

func (r *FieldRule) add(ok func(v any) bool, msg string) *FieldRule {
	r.checks = append(r.checks, check{ok: ok, msg: msg})
	return r
}

func tag(t string) func(v any) bool {
	return func(v any) bool {
		return validate.Var(AsString(v), t) == nil
	}
}

// IsInt requires a base-10 integer.
func (r *FieldRule) IsInt(msg string) *FieldRule {
	return r.add(tag("integer"), msg)
}

// IsNumeric requires a decimal number that fits a float64.
func (r *FieldRule) IsNumeric(msg string) *FieldRule {
	return r.add(func(v any) bool {
		_, ok := number(v)
		return ok
	}, msg)
}

// FitsDecimal requires a number to be storable in a DECIMAL(precision, scale)
// column without rounding or overflow. Values that are not numbers pass; that
// is IsNumeric's concern.
func (r *FieldRule) FitsDecimal(precision, scale int32, msg string) *FieldRule {
	limit := decimal.New(1, precision-scale)
	return r.add(func(v any) bool {
		f, ok := number(v)
		if !ok {
			return true
		}
		d := decimal.NewFromFloat(f)
		return d.Equal(d.Round(scale)) && d.Abs().LessThan(limit)
	}, msg)
}

// NotEmpty requires a present, non-empty value.
func (r *FieldRule) NotEmpty(msg string) *FieldRule {
	return r.add(tag("required"), msg)
}

// IsBoolean requires a value that parses as a boolean.
func (r *FieldRule) IsBoolean(msg string) *FieldRule {
	return r.add(tag("boolean"), msg)
}

// GreaterThanZero requires a value that compares greater than zero once
// coerced to a float64; true counts as 1.
func (r *FieldRule) GreaterThanZero(msg string) *FieldRule {
	return r.add(greaterThanZero, msg)
}

// Check implements Rule.
func (r *FieldRule) Check(in Input) []Violation {
	v, _ := in.Lookup(r.location, r.field)

	var violations []Violation
	for _, c := range r.checks {
		if c.ok(v) {
			continue
		}
		violations = append(violations, Violation{
			Type:     "field",
			Value:    v,
			Msg:      c.msg,
			Path:     r.field,
			Location: r.location,
		})
	}
	return violations
}

func number(v any) (float64, bool) {
	if !isNumeric(v) {
		return 0, false
	}
	f, err := AsFloat(v)
	return f, err == nil
}

func greaterThanZero(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	}
	f, err := AsFloat(v)
	if err != nil {
		return false
	}
	return f > 0
}
