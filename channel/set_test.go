package channel_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zephyrtronium/thelist/channel"
)

func TestAdd(t *testing.T) {
	s := channel.New()
	added := s.Add([]string{"foo", "FOO", "bar"})
	if diff := cmp.Diff([]string{"foo", "bar"}, added); diff != "" {
		t.Errorf("wrong added channels (+got/-want):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"bar", "foo"}, s.Names()); diff != "" {
		t.Errorf("wrong set contents (+got/-want):\n%s", diff)
	}
	if again := s.Add([]string{"foo"}); len(again) != 0 {
		t.Errorf("re-adding foo reported %v as new", again)
	}
}

func TestRemove(t *testing.T) {
	s := channel.New("foo", "bar", "baz")
	removed := s.Remove([]string{"BAR", "quux", "bar"})
	if diff := cmp.Diff([]string{"bar"}, removed); diff != "" {
		t.Errorf("wrong removed channels (+got/-want):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"baz", "foo"}, s.Names()); diff != "" {
		t.Errorf("wrong set contents (+got/-want):\n%s", diff)
	}
}

func TestContains(t *testing.T) {
	s := channel.New("Foo")
	if !s.Contains("foo") || !s.Contains("FOO") {
		t.Error("set doesn't contain foo")
	}
	if s.Contains("bar") {
		t.Error("set contains bar")
	}
	if s.Len() != 1 {
		t.Errorf("wrong size: want 1, got %d", s.Len())
	}
}
