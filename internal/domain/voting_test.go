package domain

import "testing"

func TestTallyVotes(t *testing.T) {
	tests := []struct {
		name     string
		votes    map[int]int
		expected map[int]int
	}{
		{"empty votes returns empty tally", map[int]int{}, map[int]int{}},
		{"single vote", map[int]int{1: 10}, map[int]int{10: 1}},
		{"two voters same target", map[int]int{1: 10, 2: 10}, map[int]int{10: 2}},
		{"two voters different targets", map[int]int{1: 10, 2: 20}, map[int]int{10: 1, 20: 1}},
		{
			"multiple voters mixed targets",
			map[int]int{1: 10, 2: 10, 3: 20, 4: 10},
			map[int]int{10: 3, 20: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TallyVotes(tt.votes)
			if len(result) != len(tt.expected) {
				t.Fatalf("got %d targets, expected %d", len(result), len(tt.expected))
			}
			for target, expectedCount := range tt.expected {
				if result[target] != expectedCount {
					t.Errorf("target %d: got %d votes, expected %d", target, result[target], expectedCount)
				}
			}
		})
	}
}

func TestTopVoted(t *testing.T) {
	tests := []struct {
		name     string
		votes    map[int]int
		expected []int
	}{
		{"empty votes returns nil", map[int]int{}, nil},
		{"single vote returns that target", map[int]int{1: 10}, []int{10}},
		{"clear winner", map[int]int{1: 10, 2: 10, 3: 20}, []int{10}},
		{"tie returns multiple players sorted", map[int]int{1: 20, 2: 10}, []int{10, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TopVoted(tt.votes)
			if len(result) != len(tt.expected) {
				t.Fatalf("got %v, expected %v", result, tt.expected)
			}
			for i, exp := range tt.expected {
				if result[i] != exp {
					t.Errorf("index %d: got %d, expected %d", i, result[i], exp)
				}
			}
		})
	}
}

func TestGetVoteWinner(t *testing.T) {
	tests := []struct {
		name           string
		votes          map[int]int
		expectedWinner int
		expectedOk     bool
	}{
		{"empty votes returns no winner", map[int]int{}, 0, false},
		{"single vote has winner", map[int]int{1: 10}, 10, true},
		{"clear winner", map[int]int{1: 10, 2: 10, 3: 20}, 10, true},
		{"tie returns no winner", map[int]int{1: 10, 2: 20}, 0, false},
		{"three-way tie returns no winner", map[int]int{1: 10, 2: 20, 3: 30}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winner, ok := GetVoteWinner(tt.votes)
			if ok != tt.expectedOk {
				t.Errorf("got ok=%v, expected ok=%v", ok, tt.expectedOk)
			}
			if winner != tt.expectedWinner {
				t.Errorf("got winner=%d, expected winner=%d", winner, tt.expectedWinner)
			}
		})
	}
}
