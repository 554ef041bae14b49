package model_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/yeisme/genovault/pkg/internal/model"
)

func TestNewDateTruncatesToUTCMidnight(t *testing.T) {
	cst := time.FixedZone("UTC+8", 8*3600)
	d := model.NewDate(time.Date(2024, 3, 2, 1, 30, 0, 0, cst))

	if got := d.String(); got != "2024-03-01" {
		t.Fatalf("got %s, want the UTC calendar day 2024-03-01", got)
	}

	if d.Location() != time.UTC || d.Hour() != 0 {
		t.Fatalf("not UTC midnight: %v", d.Time)
	}
}

func TestParseDateIsStrict(t *testing.T) {
	if d, err := model.ParseDate("2017-12-31"); err != nil || d.String() != "2017-12-31" {
		t.Fatalf("parse: %v %v", d, err)
	}

	for _, in := range []string{"", "2017-1-5", "31/12/2017", "2017-12-31T00:00:00Z", "2017-02-30"} {
		if _, err := model.ParseDate(in); !errors.Is(err, model.ErrInvalidDate) {
			t.Errorf("ParseDate(%q) err = %v, want ErrInvalidDate", in, err)
		}
	}
}

func TestDateJSON(t *testing.T) {
	var v struct {
		D model.Date `json:"d"`
	}

	if err := json.Unmarshal([]byte(`{"d":"2020-06-15"}`), &v); err != nil {
		t.Fatal(err)
	}

	b, err := json.Marshal(v)
	if err != nil || string(b) != `{"d":"2020-06-15"}` {
		t.Fatalf("round trip = %s, %v", b, err)
	}

	if err := json.Unmarshal([]byte(`{"d":null}`), &v); err != nil || !v.D.IsZero() {
		t.Fatalf("null should reset date: %v %v", v.D, err)
	}

	if err := json.Unmarshal([]byte(`{"d":20200615}`), &v); err == nil {
		t.Fatal("number should be rejected")
	}
}

func TestDateScan(t *testing.T) {
	cases := []any{
		time.Date(2021, 1, 2, 15, 4, 5, 0, time.UTC),
		"2021-01-02",
		"2021-01-02 00:00:00+00:00",
		[]byte("2021-01-02T00:00:00Z"),
	}

	for _, src := range cases {
		var d model.Date
		if err := d.Scan(src); err != nil || d.String() != "2021-01-02" {
			t.Errorf("Scan(%v) = %v, %v", src, d, err)
		}
	}

	var d model.Date
	if err := d.Scan(42); err == nil {
		t.Error("int should not scan")
	}
}

func TestDateAfter(t *testing.T) {
	a, _ := model.ParseDate("2024-01-02")
	b, _ := model.ParseDate("2024-01-01")

	if !a.After(b) || b.After(a) || a.After(a) {
		t.Fatal("After compares calendar days")
	}
}

func TestStringList(t *testing.T) {
	v, err := model.StringList{"NC_000001.10", "CM000663.1"}.Value()
	if err != nil || v != `["NC_000001.10","CM000663.1"]` {
		t.Fatalf("value = %v, %v", v, err)
	}

	if v, _ := model.StringList(nil).Value(); v != "[]" {
		t.Fatalf("nil list value = %v", v)
	}

	var l model.StringList
	if err := l.Scan([]byte(`["a","b"]`)); err != nil || len(l) != 2 || l[1] != "b" {
		t.Fatalf("scan = %v, %v", l, err)
	}

	if err := l.Scan("not json"); err == nil {
		t.Fatal("bad json should fail")
	}
}

func TestEnumsValid(t *testing.T) {
	if !model.TechnologyGWAS.Valid() || model.Technology("gwas").Valid() {
		t.Error("technology validity is case sensitive")
	}

	if !model.AnalysisTumor.Valid() || model.AnalysisType("").Valid() {
		t.Error("analysis type")
	}
}
