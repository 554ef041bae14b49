package rule_test

import (
	"testing"

	"github.com/yeisme/genovault/pkg/rule"
)

type colour string

func (c colour) Valid() bool { return c == "RED" || c == "BLUE" }

type resource struct {
	Name   string  `json:"name"   rule:"required,size255"`
	URL    string  `json:"url"    rule:"required,weburl"`
	Colour colour  `json:"colour" rule:"enum"`
	Child  *nested `json:"child"  rule:"omitempty"`
}

type nested struct {
	Label string `json:"label" rule:"required"`
}

func valid() resource {
	return resource{Name: "UK10K", URL: "https://www.uk10k.org/", Colour: "RED"}
}

func TestValidateStructAcceptsValid(t *testing.T) {
	if err := rule.ValidateStruct(valid()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestErrorsUseJSONPathsAndMessages(t *testing.T) {
	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}

	cases := []struct {
		name     string
		mutate   func(*resource)
		property string
		message  string
	}{
		{"missing name", func(r *resource) { r.Name = "" }, "name", "may not be null"},
		{"long name", func(r *resource) { r.Name = string(long) }, "name", "size must be between 1 and 255"},
		{"bad url", func(r *resource) { r.URL = "www.uk10k.org" }, "url", "must be a valid URL"},
		{"bad enum", func(r *resource) { r.Colour = "GREEN" }, "colour", "invalid value GREEN"},
		{"nested", func(r *resource) { r.Child = &nested{} }, "child.label", "may not be null"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := valid()
			tc.mutate(&r)

			fields := rule.Errors(rule.ValidateStruct(r))
			if len(fields) != 1 {
				t.Fatalf("want one field error, got %+v", fields)
			}

			if fields[0].Property != tc.property || fields[0].Message != tc.message {
				t.Errorf("got %+v, want %s: %s", fields[0], tc.property, tc.message)
			}
		})
	}
}

func TestFormatCollectsAllFields(t *testing.T) {
	got := rule.Format(rule.ValidateStruct(resource{Colour: "RED"}))

	if len(got) != 2 || got["name"] == "" || got["url"] == "" {
		t.Fatalf("unexpected %v", got)
	}

	if rule.Format(nil) != nil || rule.Errors(nil) != nil {
		t.Error("nil error should format to nil")
	}
}

func TestIsWebURL(t *testing.T) {
	cases := map[string]bool{
		"http://www.ebi.ac.uk":              true,
		"https://www.ebi.ac.uk/eva?q=1":     true,
		"ftp://ftp.ebi.ac.uk/pub/databases": true,
		"HTTPS://EXAMPLE.ORG":               true,
		"http://[::1]:8080/":                true,
		"":                                  false,
		"www.ebi.ac.uk":                     false,
		"mailto:someone@ebi.ac.uk":          false,
		"file:///etc/passwd":                false,
		"http:///path-only":                 false,
		"http://bad host.org":               false,
		"http://under_score.org":            false,
	}

	for in, want := range cases {
		if got := rule.IsWebURL(in); got != want {
			t.Errorf("IsWebURL(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidateVarUsesAliases(t *testing.T) {
	if err := rule.ValidateVar("ERZ000011", "size255"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := rule.ValidateVar("", "size255"); err == nil {
		t.Error("empty string should fail size255")
	}

	if err := rule.ValidateVar("gopher.example.org", "weburl"); err == nil {
		t.Error("scheme-less host should fail weburl")
	}
}
