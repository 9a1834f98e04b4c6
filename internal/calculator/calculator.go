// Package calculator holds the what-if calculators: closed-form accounting formulas
// evaluated from bounded numeric inputs. Every formula is total; a zero divisor
// yields zero instead of an error. Bounds are enforced separately by Validate.
package calculator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrUnknownCalculator is returned by Lookup for an unregistered name.
var ErrUnknownCalculator = errors.New("unknown calculator")

// ErrInvalidInput wraps every bounds violation reported by Validate.
var ErrInvalidInput = errors.New("invalid calculator input")

// Unit tells a renderer how to print a figure.
type Unit int

const (
	Currency Unit = iota
	Percent
	Ratio
	Count
	Label
)

// Band grades a ratio against a rule of thumb.
type Band string

const (
	BandNone    Band = ""
	BandGood    Band = "good"
	BandCaution Band = "caution"
	BandPoor    Band = "poor"
)

// Figure is one labelled output value.
type Figure struct {
	Label string
	Value float64
	Unit  Unit
	Band  Band
	Text  string // used when Unit is Label
}

// JournalLine is one row of an illustrative entry; a zero column prints blank.
type JournalLine struct {
	Account string
	Debit   float64
	Credit  float64
}

// Journal is a titled illustrative entry.
type Journal struct {
	Title string
	Lines []JournalLine
}

// Result is the output of one calculator run, independent of how it is printed.
type Result struct {
	Name     string
	Title    string
	Figures  []Figure
	Journals []Journal
}

// Param describes one input with its default value.
type Param struct {
	Name    string
	Default float64
}

// Calculator is a registered formula with its default inputs.
type Calculator struct {
	Name   string
	Title  string
	Params []Param
	eval   func(overrides map[string]float64) (Result, error)
}

// Run evaluates the calculator from its defaults with the given overrides applied.
// Unknown parameter names and out-of-range values are rejected.
func (c Calculator) Run(overrides map[string]float64) (Result, error) {
	return c.eval(overrides)
}

var (
	validate = validator.New()
	registry = map[string]Calculator{}
)

func register[I any](name, title string, defaults I, run func(I) Result) {
	registry[name] = Calculator{
		Name:   name,
		Title:  title,
		Params: paramsOf(defaults),
		eval: func(overrides map[string]float64) (Result, error) {
			in := defaults
			if err := bind(&in, overrides); err != nil {
				return Result{}, err
			}
			if err := Validate(in); err != nil {
				return Result{}, err
			}
			res := run(in)
			res.Name, res.Title = name, title
			return res, nil
		},
	}
}

// Lookup returns a calculator by name.
func Lookup(name string) (Calculator, error) {
	c, ok := registry[strings.ToLower(name)]
	if !ok {
		return Calculator{}, fmt.Errorf("%w: %q", ErrUnknownCalculator, name)
	}
	return c, nil
}

// All returns every calculator sorted by name.
func All() []Calculator {
	out := make([]Calculator, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Validate checks an input struct against its slider bounds.
func Validate(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s fails %s=%s", paramName(fe), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s fails %s", paramName(fe), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func paramName(fe validator.FieldError) string {
	if name := fe.Field(); name != "" {
		return name
	}
	return fe.StructField()
}

func init() {
	// report fields by their parameter name rather than the Go field name
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return tagName(f)
	})
}

func tagName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// bind copies overrides onto the float64 fields of *in, matched by json tag.
func bind(in any, overrides map[string]float64) error {
	v := reflect.ValueOf(in).Elem()
	t := v.Type()
	fields := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		fields[tagName(t.Field(i))] = i
	}
	for name, val := range overrides {
		i, ok := fields[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("%w: unknown parameter %q", ErrInvalidInput, name)
		}
		v.Field(i).SetFloat(val)
	}
	return nil
}

func paramsOf(in any) []Param {
	v := reflect.ValueOf(in)
	t := v.Type()
	params := make([]Param, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		params = append(params, Param{Name: tagName(t.Field(i)), Default: v.Field(i).Float()})
	}
	return params
}

// div returns a/b, or zero when b is zero.
func div(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
