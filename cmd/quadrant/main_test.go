package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectTaskLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"quadrant"},
			want: []string{"quadrant"},
		},
		{
			name: "direct task id first token",
			in:   []string{"quadrant", "1756450000000"},
			want: []string{"quadrant", "tasks", "show", "1756450000000"},
		},
		{
			name: "direct task id after value flag",
			in:   []string{"quadrant", "--dir", "./tmp-test-ws", "1756450000000"},
			want: []string{"quadrant", "--dir", "./tmp-test-ws", "tasks", "show", "1756450000000"},
		},
		{
			name: "direct task id after equals flag",
			in:   []string{"quadrant", "--dir=./tmp-test-ws", "1756450000000"},
			want: []string{"quadrant", "--dir=./tmp-test-ws", "tasks", "show", "1756450000000"},
		},
		{
			name: "direct task id after bool flag",
			in:   []string{"quadrant", "--pretty", "1756450000000"},
			want: []string{"quadrant", "--pretty", "tasks", "show", "1756450000000"},
		},
		{
			name: "direct task id after double dash",
			in:   []string{"quadrant", "--dir", "./tmp-test-ws", "--", "1756450000000"},
			want: []string{"quadrant", "--dir", "./tmp-test-ws", "--", "tasks", "show", "1756450000000"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"quadrant", "tasks", "show", "1756450000000"},
			want: []string{"quadrant", "tasks", "show", "1756450000000"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"quadrant", "wat"},
			want: []string{"quadrant", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectTaskLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectTaskLookupArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
