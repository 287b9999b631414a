package main

import (
	"testing"

	"wordcut/internal/timerange"
)

func TestParseKeepRanges(t *testing.T) {
	cases := []struct {
		name    string
		specs   []string
		want    []timerange.Range
		wantErr bool
	}{
		{
			name:  "single range",
			specs: []string{"1.5-3.2"},
			want:  []timerange.Range{{Start: 1.5, End: 3.2}},
		},
		{
			name:  "comma separated",
			specs: []string{"0-1,2-3"},
			want:  []timerange.Range{{Start: 0, End: 1}, {Start: 2, End: 3}},
		},
		{
			name:  "overlapping ranges merge",
			specs: []string{"0-2", "1-3"},
			want:  []timerange.Range{{Start: 0, End: 3}},
		},
		{
			name:    "reversed range",
			specs:   []string{"3-1"},
			wantErr: true,
		},
		{
			name:    "missing separator",
			specs:   []string{"12"},
			wantErr: true,
		},
		{
			name:    "garbage start",
			specs:   []string{"x-2"},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseKeepRanges(tc.specs)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("range %d: got %+v, want %+v", i, got[i], tc.want[i])
				}
			}
		})
	}
}
