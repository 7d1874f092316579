package problem

import (
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func TestParseNumbers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []float64
		fails bool
	}{
		{"simple", "5,3,8", []float64{5, 3, 8}, false},
		{"spaces", " 5 , -3.5,  8 ", []float64{5, -3.5, 8}, false},
		{"blank", "   ", []float64{}, false},
		{"word", "5,abc,8", nil, true},
		{"empty token", "5,,8", nil, true},
		{"nan", "1,NaN", nil, true},
		{"inf", "Inf", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNumbers(tt.input)
			if tt.fails {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseNumbers(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseNumbers_NamesToken(t *testing.T) {
	_, err := ParseNumbers("1, 2, x")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Field != "numbers[2]" {
		t.Errorf("field = %q, want numbers[2]", verr.Field)
	}
	if !strings.Contains(verr.Reason, `"x"`) {
		t.Errorf("reason %q should quote the token", verr.Reason)
	}
}

func TestParseStructured_Jobs(t *testing.T) {
	p, err := Parse(KindJobs, `[{"id": 1, "deadline": 2, "profit": 100}, {"deadline": 1, "profit": 19}]`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := []Job{{ID: 1, Deadline: 2, Profit: 100}, {ID: 2, Deadline: 1, Profit: 19}}
	if !reflect.DeepEqual(p.Jobs, want) {
		t.Errorf("jobs = %+v, want %+v", p.Jobs, want)
	}
}

func TestParseStructured_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		input string
		field string
	}{
		{"missing profit", KindJobs, "- {id: 1, deadline: 2}", "jobs[0].profit"},
		{"zero deadline", KindJobs, "- {id: 1, deadline: 0, profit: 5}", "jobs[0].deadline"},
		{"missing weight", KindKnapsack, "capacity: 10\nitems:\n  - {id: 1, value: 5}", "knapsack.items[0].weight"},
		{"missing capacity", KindKnapsack, "items: []", "knapsack.capacity"},
		{"missing finish", KindActivities, "- {id: 1, start: 2}", "activities[0].finish"},
		{"finish before start", KindActivities, "- {id: 1, start: 4, finish: 2}", "activities[0].finish"},
		{"empty interval", KindIntervals, "- {id: 1, start: 3, end: 3}", "intervals[0].end"},
		{"nan start", KindActivities, "- {id: 1, start: .nan, finish: 2}", "activities[0].start"},
		{"infinite finish", KindActivities, "- {id: 1, start: 0, finish: .inf}", "activities[0].finish"},
		{"negative infinite start", KindIntervals, "- {id: 1, start: -.inf, end: 3}", "intervals[0].start"},
		{"nan end", KindIntervals, "- {id: 1, start: 0, end: .NaN}", "intervals[0].end"},
		{"infinite profit", KindJobs, "- {id: 1, deadline: 1, profit: .inf}", "jobs[0].profit"},
		{"infinite capacity", KindKnapsack, "capacity: .inf\nitems: []", "knapsack.capacity"},
		{"duplicate id", KindIntervals, "- {id: 1, start: 0, end: 3}\n- {id: 1, start: 1, end: 2}", "intervals[1].id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.kind, tt.input)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %q, want %q (%v)", verr.Field, tt.field, err)
			}
		})
	}
}

func TestParseStructured_NonFiniteReason(t *testing.T) {
	_, err := Parse(KindIntervals, "- {id: 1, start: .nan, end: 2}")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Reason != "is not a number" {
		t.Errorf("reason = %q", verr.Reason)
	}
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation in chain: %v", err)
	}
}

func TestSlotCount(t *testing.T) {
	tests := []struct {
		name string
		jobs []Job
		want int
	}{
		{"none", nil, 0},
		{"latest deadline", []Job{{ID: 1, Deadline: 2}, {ID: 2, Deadline: 1}, {ID: 3, Deadline: 1}}, 2},
		{"capped by job count", []Job{{ID: 1, Deadline: 1_000_000_000_000_000}, {ID: 2, Deadline: 3}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlotCount(tt.jobs); got != tt.want {
				t.Errorf("SlotCount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseStructured_NonNumeric(t *testing.T) {
	_, err := Parse(KindJobs, "- {id: 1, deadline: 2, profit: lots}")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParse_UnknownKind(t *testing.T) {
	_, err := Parse(Kind("graphs"), "[]")
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, kind := range Kinds() {
		p, err := Generate(kind, 6, rng, GenerateOptions{})
		if err != nil {
			t.Fatalf("%s: generate failed: %v", kind, err)
		}
		text, err := Format(p)
		if err != nil {
			t.Fatalf("%s: format failed: %v", kind, err)
		}
		back, err := Parse(kind, text)
		if err != nil {
			t.Fatalf("%s: parse of formatted text failed: %v\n%s", kind, err, text)
		}
		if !reflect.DeepEqual(back, p) {
			t.Errorf("%s: round trip mismatch\n got %+v\nwant %+v", kind, back, p)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	for _, kind := range Kinds() {
		a, _ := Generate(kind, 10, rand.New(rand.NewSource(42)), GenerateOptions{})
		b, _ := Generate(kind, 10, rand.New(rand.NewSource(42)), GenerateOptions{})
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: same seed produced different problems", kind)
		}
		if a.Len() != 10 {
			t.Errorf("%s: expected 10 elements, got %d", kind, a.Len())
		}
	}
}

func TestGenerate_RespectsRange(t *testing.T) {
	p, err := Generate(KindNumbers, 50, rand.New(rand.NewSource(1)), GenerateOptions{Values: Range{Min: -5, Max: 5}})
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range p.Numbers {
		if v < -5 || v > 5 {
			t.Fatalf("value %v outside [-5, 5]", v)
		}
	}
}

func TestClone_Independent(t *testing.T) {
	p := Problem{Kind: KindJobs, Jobs: []Job{{ID: 1, Deadline: 1, Profit: 10}}}
	c := p.Clone()
	c.Jobs[0].Profit = 99
	if p.Jobs[0].Profit != 10 {
		t.Error("clone shares backing array with original")
	}
}
