package event

import (
	"errors"
	"testing"

	"github.com/dshills/textsel/internal/event/topic"
	"github.com/dshills/textsel/internal/geom"
)

func TestRouterPublishOrder(t *testing.T) {
	r := NewRouter()
	var got []string
	record := func(name string) Handler {
		return func(Notification) error {
			got = append(got, name)
			return nil
		}
	}
	if _, err := r.Subscribe(TopicTap, record("exact")); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Subscribe("gesture.*", record("wildcard")); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Subscribe(TopicScroll, record("other")); err != nil {
		t.Fatal(err)
	}

	if err := r.Publish(Tap{Point: geom.Pt(1, 2)}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	want := []string{"exact", "wildcard"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("delivery = %v, want %v", got, want)
	}
}

func TestRouterSubscribeErrors(t *testing.T) {
	r := NewRouter()
	if _, err := r.Subscribe("", func(Notification) error { return nil }); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("empty topic err = %v", err)
	}
	if _, err := r.Subscribe(TopicTap, nil); !errors.Is(err, ErrNilHandler) {
		t.Errorf("nil handler err = %v", err)
	}
}

func TestRouterUnsubscribeDuringPublish(t *testing.T) {
	r := NewRouter()
	calls := 0
	var second *Subscription
	_, _ = r.Subscribe(TopicBlur, func(Notification) error {
		calls++
		return r.Unsubscribe(second)
	})
	second, _ = r.Subscribe(TopicBlur, func(Notification) error {
		calls++
		return nil
	})

	if err := r.Publish(Blur{}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
	if err := r.Unsubscribe(second); !errors.Is(err, ErrSubscriptionNotFound) {
		t.Errorf("second Unsubscribe err = %v", err)
	}
}

func TestRouterHandlerErrors(t *testing.T) {
	r := NewRouter()
	boom := errors.New("boom")
	delivered := false
	_, _ = r.Subscribe(TopicScroll, func(Notification) error { panic("bad handler") })
	_, _ = r.Subscribe(TopicScroll, func(Notification) error { return boom })
	_, _ = r.Subscribe(TopicScroll, func(Notification) error {
		delivered = true
		return nil
	})

	err := r.Publish(Scroll{})
	if !errors.Is(err, ErrHandlerPanic) {
		t.Errorf("expected panic error, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected handler error, got %v", err)
	}
	var herr *HandlerError
	if !errors.As(err, &herr) || herr.Topic != "document.scroll" {
		t.Errorf("expected HandlerError for document.scroll, got %v", err)
	}
	if !delivered {
		t.Error("later handler was skipped")
	}
}

func TestRouterCount(t *testing.T) {
	r := NewRouter()
	_, _ = r.Subscribe("selection.**", func(Notification) error { return nil })
	_, _ = r.Subscribe(TopicDragMove, func(Notification) error { return nil })

	tests := []struct {
		topic topic.Topic
		want  int
	}{
		{TopicDragMove, 2},
		{TopicDragEnd, 1},
		{TopicTap, 0},
	}
	for _, tt := range tests {
		if got := r.Count(tt.topic); got != tt.want {
			t.Errorf("Count(%q) = %d, want %d", tt.topic, got, tt.want)
		}
	}
}
