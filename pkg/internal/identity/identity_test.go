package identity_test

import (
	"strings"
	"testing"

	"github.com/yeisme/genovault/pkg/internal/errs"
	"github.com/yeisme/genovault/pkg/internal/identity"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		acc  string
		ver  int
		fail bool
	}{
		{in: "EGAS0001.1", acc: "EGAS0001", ver: 1},
		{in: "PRJEB.4019.12", acc: "PRJEB.4019", ver: 12},
		{in: "a.007", acc: "a", ver: 7},
		{in: "EGAS0001", fail: true},
		{in: ".1", fail: true},
		{in: "EGAS0001.", fail: true},
		{in: "EGAS0001.0", fail: true},
		{in: "EGAS0001.-1", fail: true},
		{in: "EGAS0001.1a", fail: true},
		{in: "EGAS0001.99999999999999999999", fail: true},
		{in: strings.Repeat("x", 256) + ".1", fail: true},
	}

	for _, tc := range cases {
		av, err := identity.Parse(tc.in)
		if tc.fail {
			if errs.KindOf(err) != errs.KindMalformedIdentifier {
				t.Errorf("Parse(%q) err = %v, want malformed identifier", tc.in, err)
			}

			continue
		}

		if err != nil || av.Accession != tc.acc || av.Version != tc.ver {
			t.Errorf("Parse(%q) = %+v, %v", tc.in, av, err)
		}

		if av.String() != tc.acc+"."+strings.TrimLeft(tc.in[len(tc.acc)+1:], "0") {
			t.Errorf("String() = %s", av)
		}
	}
}

func TestParseRef(t *testing.T) {
	ref, err := identity.ParseRef(" 42 ")
	if err != nil || ref.ID != 42 || ref.AV != nil {
		t.Fatalf("numeric ref = %+v, %v", ref, err)
	}

	ref, err = identity.ParseRef("EGAS0001.2")
	if err != nil || ref.ID != 0 || ref.AV == nil || ref.AV.Version != 2 || ref.Raw != "EGAS0001.2" {
		t.Fatalf("accession ref = %+v, %v", ref, err)
	}

	if _, err := identity.ParseRef("0"); !errs.IsNotFound(err) {
		t.Errorf("zero id err = %v, want not found", err)
	}

	if _, err := identity.ParseRef(""); errs.KindOf(err) != errs.KindMalformedIdentifier {
		t.Errorf("empty ref err = %v", err)
	}

	if _, err := identity.ParseRef("EGAS0001"); errs.KindOf(err) != errs.KindMalformedIdentifier {
		t.Errorf("bare accession err = %v", err)
	}
}
