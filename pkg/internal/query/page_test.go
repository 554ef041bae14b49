package query_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/yeisme/genovault/pkg/internal/errs"
	"github.com/yeisme/genovault/pkg/internal/query"
)

var (
	limits   = query.Limits{DefaultSize: 20, MaxSize: 100}
	sortable = map[string]string{"name": "studies.name", "releaseDate": "studies.release_date"}
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		page, size, sort string
		want             query.Page
	}{
		{want: query.Page{Size: 20}},
		{page: "3", size: "5", want: query.Page{Number: 3, Size: 5}},
		{size: "1000", want: query.Page{Size: 100}},
		{page: strconv.Itoa(math.MaxInt / 100), size: "100", want: query.Page{Number: math.MaxInt / 100, Size: 100}},
		{sort: "name", want: query.Page{Size: 20, Sort: "studies.name ASC"}},
		{sort: "releaseDate,DESC", want: query.Page{Size: 20, Sort: "studies.release_date DESC"}},
	}

	for _, tc := range cases {
		got, err := query.ParsePage(tc.page, tc.size, tc.sort, limits, sortable)
		if err != nil {
			t.Fatalf("%+v: %v", tc, err)
		}

		if got != tc.want {
			t.Errorf("%+v: got %+v", tc, got)
		}
	}
}

func TestParsePageRejects(t *testing.T) {
	cases := []struct {
		page, size, sort, property string
	}{
		{page: "-1", property: "page"},
		{page: "x", property: "page"},
		{page: "99999999999999999999", property: "page"},
		{page: strconv.Itoa(math.MaxInt), property: "page"},
		{page: strconv.Itoa(math.MaxInt/100 + 1), size: "100", property: "page"},
		{size: "0", property: "size"},
		{sort: "password", property: "sort"},
		{sort: "name,sideways", property: "sort"},
	}

	for _, tc := range cases {
		_, err := query.ParsePage(tc.page, tc.size, tc.sort, limits, sortable)

		e, ok := errs.As(err)
		if !ok || e.Kind != errs.KindFieldValidation || e.Fields[0].Property != tc.property {
			t.Errorf("%+v: got %v", tc, err)
		}
	}
}

func TestPageInfo(t *testing.T) {
	p := query.Page{Number: 1, Size: 20}

	cases := map[int64]int{0: 0, 1: 1, 20: 1, 21: 2, 100: 5}
	for total, pages := range cases {
		info := p.Info(total)
		if info.TotalPages != pages || info.TotalElements != total || info.Number != 1 || info.Size != 20 {
			t.Errorf("total %d: %+v", total, info)
		}
	}
}
