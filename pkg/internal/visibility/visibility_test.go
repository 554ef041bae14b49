package visibility_test

import (
	"testing"
	"time"

	"github.com/yeisme/genovault/pkg/internal/model"
	"github.com/yeisme/genovault/pkg/internal/visibility"
)

func date(t *testing.T, s string) model.Date {
	t.Helper()

	d, err := model.ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}

	return d
}

func TestIsVisible(t *testing.T) {
	// 当地时间已是 3 月 2 日，但 UTC 仍是 3 月 1 日
	now := time.Date(2024, 3, 2, 6, 0, 0, 0, time.FixedZone("UTC+10", 10*3600))

	cases := []struct {
		name       string
		deprecated bool
		release    string
		want       bool
	}{
		{"released yesterday", false, "2024-02-29", true},
		{"released today", false, "2024-03-01", true},
		{"releases tomorrow in utc", false, "2024-03-02", false},
		{"deprecated", true, "2020-01-01", false},
		{"no release date", false, "", true},
	}

	for _, tc := range cases {
		var rd model.Date
		if tc.release != "" {
			rd = date(t, tc.release)
		}

		if got := visibility.IsVisible(tc.deprecated, rd, now); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFilterStudiesKeepsOrder(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	f := visibility.New(func() time.Time { return now })

	in := []model.Study{
		{ID: 3, ReleaseDate: date(t, "2024-01-01")},
		{ID: 1, ReleaseDate: date(t, "2030-01-01")},
		{ID: 2, ReleaseDate: date(t, "2023-01-01"), Deprecated: true},
		{ID: 5, ReleaseDate: date(t, "2024-03-01")},
	}

	out := f.Studies(in)
	if len(out) != 2 || out[0].ID != 3 || out[1].ID != 5 {
		t.Fatalf("got %+v", out)
	}

	if f.Study(nil) {
		t.Error("nil study is not visible")
	}

	if !f.Study(&in[0]) || f.Study(&in[1]) {
		t.Error("single study check disagrees with list filter")
	}

	if !f.Now().Equal(now) {
		t.Error("filter clock not used")
	}
}
