package player_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/zephyrtronium/thelist/player"
)

func fixed(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var epoch = time.Unix(1700000000, 0)

func TestAdd(t *testing.T) {
	s := player.New()
	s.SetClock(fixed(epoch))
	n, err := s.Add("alice", "Bob hello world")
	if err != nil {
		t.Fatalf("couldn't add: %v", err)
	}
	if n != 1 {
		t.Errorf("wrong count after first add: want 1, got %d", n)
	}
	n, err = s.Add("alice", "bob  plays   mid")
	if err != nil {
		t.Fatalf("couldn't add again: %v", err)
	}
	if n != 2 {
		t.Errorf("wrong count after second add: want 2, got %d", n)
	}
	want := []player.Entry{
		{Text: "hello world", CreatedBy: "alice", CreatedAt: epoch},
		{Text: "plays mid", CreatedBy: "alice", CreatedAt: epoch},
	}
	if diff := cmp.Diff(want, s.All("BOB")); diff != "" {
		t.Errorf("wrong entries (+got/-want):\n%s", diff)
	}
}

func TestAddErrors(t *testing.T) {
	cases := []struct {
		name string
		args string
		err  error
	}{
		{"empty", "", player.ErrNoSubject},
		{"spaces", "   ", player.ErrNoSubject},
		{"no-text", "bob", player.ErrNoText},
		{"no-text-spaces", "bob   ", player.ErrNoText},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := player.New()
			if _, err := s.Add("alice", c.args); !errors.Is(err, c.err) {
				t.Errorf("wrong error for %q: want %v, got %v", c.args, c.err, err)
			}
			if s.Len() != 0 {
				t.Errorf("failed add created a record")
			}
		})
	}
}

func TestEdit(t *testing.T) {
	later := epoch.Add(time.Hour)
	s := player.New()
	s.SetClock(fixed(epoch))
	if _, err := s.Add("alice", "bob hello world"); err != nil {
		t.Fatalf("couldn't add: %v", err)
	}
	s.SetClock(fixed(later))
	subject, index, err := s.Edit("eve", "BOB 0 goodbye")
	if err != nil {
		t.Fatalf("couldn't edit: %v", err)
	}
	if subject != "bob" || index != 0 {
		t.Errorf("wrong confirmation: want (bob, 0), got (%s, %d)", subject, index)
	}
	want := player.Entry{
		Text:       "goodbye",
		CreatedBy:  "alice",
		CreatedAt:  epoch,
		ModifiedBy: "eve",
		ModifiedAt: later,
	}
	got, err := s.At("bob", 0)
	if err != nil {
		t.Fatalf("couldn't get entry: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong entry after edit (+got/-want):\n%s", diff)
	}
}

func TestEditErrors(t *testing.T) {
	cases := []struct {
		name string
		args string
		err  error
	}{
		{"empty", "", player.ErrNoSubject},
		{"no-index", "bob", player.ErrNoText},
		{"no-text", "bob 0", player.ErrNoText},
		{"nan", "bob zero goodbye", player.ErrNotANumber},
		{"negative", "bob -1 goodbye", player.ErrNotANumber},
		{"out-of-range", "bob 5 goodbye", player.ErrIndexOutOfRange},
		{"unknown-subject", "ryou 0 goodbye", player.ErrIndexOutOfRange},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := player.New()
			s.SetClock(fixed(epoch))
			if _, err := s.Add("alice", "bob hello world"); err != nil {
				t.Fatalf("couldn't add: %v", err)
			}
			if _, _, err := s.Edit("eve", c.args); !errors.Is(err, c.err) {
				t.Errorf("wrong error for %q: want %v, got %v", c.args, c.err, err)
			}
			got, err := s.At("bob", 0)
			if err != nil {
				t.Fatalf("couldn't get entry: %v", err)
			}
			if got.Text != "hello world" || got.ModifiedBy != "" {
				t.Errorf("failed edit changed the entry: %+v", got)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	s := player.New()
	s.SetClock(fixed(epoch))
	s.Add("alice", "bob hello world")
	s.Add("alice", "bob plays mid")
	p, err := s.Delete("Bob anything after is ignored")
	if err != nil {
		t.Fatalf("couldn't delete: %v", err)
	}
	if p.Len() != 2 {
		t.Errorf("wrong removed record size: want 2, got %d", p.Len())
	}
	if got := s.All("bob"); len(got) != 0 {
		t.Errorf("entries survived delete: %v", got)
	}
	if _, err := s.Delete("bob"); !errors.Is(err, player.ErrNotFound) {
		t.Errorf("second delete: want %v, got %v", player.ErrNotFound, err)
	}
	if _, err := s.Delete(""); !errors.Is(err, player.ErrNoSubject) {
		t.Errorf("empty delete: want %v, got %v", player.ErrNoSubject, err)
	}
}

func TestAt(t *testing.T) {
	s := player.New()
	s.SetClock(fixed(epoch))
	s.Add("alice", "bob first")
	s.Add("alice", "bob second")
	s.Add("alice", "bob third")
	cases := []struct {
		name  string
		index int
		text  string
		err   error
	}{
		{"first", 0, "first", nil},
		{"last", 2, "third", nil},
		{"end-relative", -1, "third", nil},
		{"end-relative-first", -3, "first", nil},
		{"past-end", 3, "", player.ErrIndexOutOfRange},
		{"past-start", -4, "", player.ErrIndexOutOfRange},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := s.At("bob", c.index)
			if !errors.Is(err, c.err) {
				t.Fatalf("wrong error: want %v, got %v", c.err, err)
			}
			if got.Text != c.text {
				t.Errorf("wrong entry text: want %q, got %q", c.text, got.Text)
			}
		})
	}
	if _, err := s.At("ryou", 0); !errors.Is(err, player.ErrIndexOutOfRange) {
		t.Errorf("unknown subject: want %v, got %v", player.ErrIndexOutOfRange, err)
	}
}

func TestNames(t *testing.T) {
	s := player.New()
	s.SetClock(fixed(epoch))
	s.Add("alice", "ryou bass")
	s.Add("alice", "bob guitar")
	want := []string{"bob", "ryou"}
	if diff := cmp.Diff(want, s.Names()); diff != "" {
		t.Errorf("wrong names (+got/-want):\n%s", diff)
	}
}
