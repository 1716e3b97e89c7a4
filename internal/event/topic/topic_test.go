package topic

import "testing"

func TestTopicMatches(t *testing.T) {
	tests := []struct {
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"gesture.tap", "gesture.tap", true},
		{"gesture.tap", "gesture.*", true},
		{"gesture.tap", "*", false},
		{"selection.handle.move", "selection.**", true},
		{"selection.handle.move", "selection.*", false},
		{"selection.handle.move", "**.move", true},
		{"selection", "selection.**", true},
		{"document.scroll", "selection.**", false},
		{"a.b.c", "a.*.c", true},
		{"a.b.c", "**", true},
	}
	for _, tt := range tests {
		if got := tt.topic.Matches(tt.pattern); got != tt.want {
			t.Errorf("%q.Matches(%q) = %v, want %v", tt.topic, tt.pattern, got, tt.want)
		}
	}
}

func TestTopicIsValid(t *testing.T) {
	tests := []struct {
		topic Topic
		want  bool
	}{
		{"gesture.tap", true},
		{"tap", true},
		{"", false},
		{".tap", false},
		{"tap.", false},
		{"a..b", false},
	}
	for _, tt := range tests {
		if got := tt.topic.IsValid(); got != tt.want {
			t.Errorf("%q.IsValid() = %v, want %v", tt.topic, got, tt.want)
		}
	}
}
