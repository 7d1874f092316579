package problem

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// yaml decodes .nan and .inf into floats; reject them like ParseNumbers does
	if err := validate.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		v := fl.Field().Float()
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	}); err != nil {
		panic(err)
	}
}

// Raw records use pointers so a missing field is distinguishable from zero.
type rawJob struct {
	ID       *int     `yaml:"id" validate:"omitempty,gte=0"`
	Deadline *int     `yaml:"deadline" validate:"required,gte=1"`
	Profit   *float64 `yaml:"profit" validate:"required,finite,gte=0"`
}

type rawItem struct {
	ID     *int     `yaml:"id" validate:"omitempty,gte=0"`
	Value  *float64 `yaml:"value" validate:"required,finite,gte=0"`
	Weight *float64 `yaml:"weight" validate:"required,finite,gt=0"`
}

type rawKnapsack struct {
	Capacity *float64  `yaml:"capacity" validate:"required,finite,gte=0"`
	Items    []rawItem `yaml:"items" validate:"dive"`
}

type rawActivity struct {
	ID     *int     `yaml:"id" validate:"omitempty,gte=0"`
	Start  *float64 `yaml:"start" validate:"required,finite"`
	Finish *float64 `yaml:"finish" validate:"required,finite"`
}

type rawInterval struct {
	ID    *int     `yaml:"id" validate:"omitempty,gte=0"`
	Start *float64 `yaml:"start" validate:"required,finite"`
	End   *float64 `yaml:"end" validate:"required,finite"`
}

// Parse reads text in the format expected for kind. Number lists are comma
// separated; record kinds are YAML, which also accepts JSON.
func Parse(kind Kind, text string) (Problem, error) {
	if kind == KindNumbers {
		nums, err := ParseNumbers(text)
		if err != nil {
			return Problem{}, err
		}
		return Problem{Kind: KindNumbers, Numbers: nums}, nil
	}
	return ParseStructured(kind, text)
}

// ParseNumbers parses "5, 3,8" into a slice. Blank input yields an empty slice.
func ParseNumbers(text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return []float64{}, nil
	}
	fields := strings.Split(text, ",")
	out := make([]float64, 0, len(fields))
	for i, f := range fields {
		tok := strings.TrimSpace(f)
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, invalid(fmt.Sprintf("numbers[%d]", i), "%q is not a number", tok)
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseStructured decodes and validates a record list for kind.
func ParseStructured(kind Kind, text string) (Problem, error) {
	p := Problem{Kind: kind}
	switch kind {
	case KindJobs:
		var raw []rawJob
		if err := decode(text, &raw); err != nil {
			return Problem{}, err
		}
		for i, r := range raw {
			if err := validateRecord(fmt.Sprintf("jobs[%d]", i), r); err != nil {
				return Problem{}, err
			}
			p.Jobs = append(p.Jobs, Job{ID: idOr(r.ID, i), Deadline: *r.Deadline, Profit: *r.Profit})
		}
	case KindKnapsack:
		var raw rawKnapsack
		if err := decode(text, &raw); err != nil {
			return Problem{}, err
		}
		if err := validateRecord("knapsack", raw); err != nil {
			return Problem{}, err
		}
		p.Capacity = *raw.Capacity
		for i, r := range raw.Items {
			p.Items = append(p.Items, Item{ID: idOr(r.ID, i), Value: *r.Value, Weight: *r.Weight})
		}
	case KindActivities:
		var raw []rawActivity
		if err := decode(text, &raw); err != nil {
			return Problem{}, err
		}
		for i, r := range raw {
			field := fmt.Sprintf("activities[%d]", i)
			if err := validateRecord(field, r); err != nil {
				return Problem{}, err
			}
			if *r.Finish < *r.Start {
				return Problem{}, invalid(field+".finish", "must not be before start")
			}
			p.Activities = append(p.Activities, Activity{ID: idOr(r.ID, i), Start: *r.Start, Finish: *r.Finish})
		}
	case KindIntervals:
		var raw []rawInterval
		if err := decode(text, &raw); err != nil {
			return Problem{}, err
		}
		for i, r := range raw {
			field := fmt.Sprintf("intervals[%d]", i)
			if err := validateRecord(field, r); err != nil {
				return Problem{}, err
			}
			if *r.End <= *r.Start {
				return Problem{}, invalid(field+".end", "must be after start")
			}
			p.Intervals = append(p.Intervals, Interval{ID: idOr(r.ID, i), Start: *r.Start, End: *r.End})
		}
	default:
		return Problem{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err := uniqueIDs(p); err != nil {
		return Problem{}, err
	}
	return p, nil
}

func decode(text string, out any) error {
	if err := yaml.Unmarshal([]byte(text), out); err != nil {
		return invalid("", "malformed structure: %v", err)
	}
	return nil
}

func validateRecord(prefix string, rec any) error {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return invalid(prefix, "%v", err)
	}
	fe := verrs[0]
	field := fe.Namespace()
	if dot := strings.IndexByte(field, '.'); dot >= 0 {
		field = field[dot+1:]
	}
	return invalid(prefix+"."+field, "%s", describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "finite":
		return "is not a number"
	case "gte":
		return "must be >= " + fe.Param()
	case "gt":
		return "must be > " + fe.Param()
	}
	return "failed " + fe.Tag()
}

func idOr(id *int, index int) int {
	if id != nil {
		return *id
	}
	return index + 1
}

func uniqueIDs(p Problem) error {
	ids := make([]int, 0, p.Len())
	switch p.Kind {
	case KindJobs:
		for _, j := range p.Jobs {
			ids = append(ids, j.ID)
		}
	case KindKnapsack:
		for _, it := range p.Items {
			ids = append(ids, it.ID)
		}
	case KindActivities:
		for _, a := range p.Activities {
			ids = append(ids, a.ID)
		}
	case KindIntervals:
		for _, iv := range p.Intervals {
			ids = append(ids, iv.ID)
		}
	}
	seen := make(map[int]bool, len(ids))
	for i, id := range ids {
		if seen[id] {
			return invalid(fmt.Sprintf("%s[%d].id", p.Kind, i), "duplicate id %d", id)
		}
		seen[id] = true
	}
	return nil
}
