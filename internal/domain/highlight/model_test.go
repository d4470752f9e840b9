package highlight

import "testing"

func TestRecord_State(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		record Record
		want   State
	}{
		{name: "empty record is processing", record: Record{MatchID: "m1"}, want: StateEmpty},
		{name: "highlights recorded", record: Record{MatchID: "m1", Highlights: []Highlight{{ID: "v1"}}}, want: StateDone},
		{name: "error recorded", record: Record{MatchID: "m1", Error: "search failed"}, want: StateFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := tc.record.State(); got != tc.want {
				t.Fatalf("State() = %q, want %q", got, tc.want)
			}
			wantProcessing := tc.want == StateEmpty
			if got := tc.record.Processing(); got != wantProcessing {
				t.Fatalf("Processing() = %v, want %v", got, wantProcessing)
			}
		})
	}
}
