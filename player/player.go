// Package player implements the store of information entries about players.
//
// The store parses raw command argument text itself rather than receiving
// parsed fields, because the validation rules (numeric index, non-empty
// remainder) are invariants of the store, not of the transport. Callers
// check authorization before invoking any operation here; the store reports
// only parsing and lookup failures.
package player

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	// ErrNoSubject indicates command arguments with no subject name.
	ErrNoSubject = errors.New("no subject name")
	// ErrNoText indicates command arguments with no information text.
	ErrNoText = errors.New("no information text")
	// ErrNotANumber indicates an index token that is not a non-negative integer.
	ErrNotANumber = errors.New("index is not a number")
	// ErrIndexOutOfRange indicates an index outside a record's entries.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotFound indicates an operation on a subject with no record.
	ErrNotFound = errors.New("no such player")
)

// Entry is one timestamped, attributable piece of information about a player.
// ModifiedBy and ModifiedAt are both set or both unset. The serialized field
// names and Unix-seconds timestamps match the bot's historical data files.
type Entry struct {
	// Text is the information itself.
	Text string `json:"info"`
	// CreatedBy is the name of the entry's author.
	CreatedBy string `json:"created_by"`
	// CreatedAt is when the entry was created.
	CreatedAt time.Time `json:"created_timestamp,format:unix"`
	// ModifiedBy is the name of the last editor, if any.
	ModifiedBy string `json:"modified_by,omitzero"`
	// ModifiedAt is when the entry was last edited, if ever.
	ModifiedAt time.Time `json:"modified_timestamp,omitzero,format:unix"`
}

// Attribution describes who last touched the entry and when: the last editor
// if the entry has been edited, otherwise the author.
func (e *Entry) Attribution() (name string, at time.Time) {
	if e.ModifiedBy != "" {
		return e.ModifiedBy, e.ModifiedAt
	}
	return e.CreatedBy, e.CreatedAt
}

// Record is the ordered information about one player. Entries keep their
// insertion order; editing never reorders, and entries are never removed
// individually, only with the whole record.
type Record struct {
	// Information is the player's entries, oldest first.
	Information []Entry `json:"information"`
}

// Len returns the number of entries.
func (p *Record) Len() int {
	return len(p.Information)
}

func (p *Record) add(text, author string, now time.Time) {
	p.Information = append(p.Information, Entry{
		Text:      text,
		CreatedBy: author,
		CreatedAt: now,
	})
}

func (p *Record) edit(index int, text, author string, now time.Time) {
	e := &p.Information[index]
	e.Text = text
	e.ModifiedBy = author
	e.ModifiedAt = now
}

// Store maps player names to their records. Names are lower-cased on every
// operation. The zero Store is not ready to use; call New.
type Store struct {
	mu      sync.Mutex
	players map[string]*Record

	// now is the clock used for entry timestamps. Tests replace it.
	now func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		players: make(map[string]*Record),
		now:     time.Now,
	}
}

// SetClock sets the clock used for entry timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// GetOrCreate returns the record for a player, creating an empty one if the
// player is unknown. The returned record is the store's own, not a copy.
func (s *Store) GetOrCreate(name string) *Record {
	name = strings.ToLower(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreate(name)
}

func (s *Store) getOrCreate(name string) *Record {
	if p := s.players[name]; p != nil {
		return p
	}
	p := new(Record)
	s.players[name] = p
	return p
}

// Add parses args as "subject text..." and appends a new entry with the given
// author to the subject's record, creating the record if needed. It returns
// the record's new entry count, which is also the 1-based position of the new
// entry. Errors are ErrNoSubject and ErrNoText.
func (s *Store) Add(author, args string) (int, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return 0, ErrNoSubject
	}
	if len(fields) < 2 {
		return 0, ErrNoText
	}
	name := strings.ToLower(fields[0])
	text := strings.Join(fields[1:], " ")
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.getOrCreate(name)
	p.add(text, author, s.now())
	return p.Len(), nil
}

// Edit parses args as "subject index text..." and replaces the text of the
// entry at index in the subject's record, recording the author and time of
// the edit. The entry's creation attribution is untouched. It returns the
// subject and index for confirmation messages. Errors are ErrNoSubject,
// ErrNoText, ErrNotANumber, and ErrIndexOutOfRange; a subject with no record
// has zero entries, so every index is out of range for it.
func (s *Store) Edit(author, args string) (subject string, index int, err error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return "", 0, ErrNoSubject
	}
	if len(fields) < 3 {
		return "", 0, ErrNoText
	}
	name := strings.ToLower(fields[0])
	index, err = strconv.Atoi(fields[1])
	if err != nil || index < 0 {
		return "", 0, ErrNotANumber
	}
	text := strings.Join(fields[2:], " ")
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.players[name]
	if p == nil || index >= p.Len() {
		return "", 0, ErrIndexOutOfRange
	}
	p.edit(index, text, author, s.now())
	return name, index, nil
}

// Delete parses args as "subject ..." and removes the subject's entire
// record, returning it. Anything after the subject name is ignored. Errors
// are ErrNoSubject and ErrNotFound.
func (s *Store) Delete(args string) (*Record, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return nil, ErrNoSubject
	}
	name := strings.ToLower(fields[0])
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.players[name]
	if p == nil {
		return nil, ErrNotFound
	}
	delete(s.players, name)
	return p, nil
}

// All returns a copy of a subject's entries, empty if the subject is unknown.
func (s *Store) All(subject string) []Entry {
	subject = strings.ToLower(subject)
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.players[subject]
	if p == nil {
		return nil
	}
	r := make([]Entry, p.Len())
	copy(r, p.Information)
	return r
}

// At returns the subject's entry at index. A negative index counts from the
// end, so -1 is the newest entry. The only error is ErrIndexOutOfRange.
func (s *Store) At(subject string, index int) (Entry, error) {
	subject = strings.ToLower(subject)
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.players[subject]
	n := 0
	if p != nil {
		n = p.Len()
	}
	i := index
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return Entry{}, ErrIndexOutOfRange
	}
	return p.Information[i], nil
}

// Names returns the sorted names of all players with records.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := make([]string, 0, len(s.players))
	for name := range s.players {
		r = append(r, name)
	}
	sort.Strings(r)
	return r
}

// Len returns the number of players with records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players)
}

// Snapshot returns the store's records by name for persistence. The records
// are the store's own.
func (s *Store) Snapshot() map[string]*Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := make(map[string]*Record, len(s.players))
	for name, p := range s.players {
		m[name] = p
	}
	return m
}

// Replace substitutes the store's entire contents, normalizing keys. It is
// used when loading persisted players.
func (s *Store) Replace(players map[string]*Record) {
	m := make(map[string]*Record, len(players))
	for name, p := range players {
		if p == nil {
			p = new(Record)
		}
		m[strings.ToLower(name)] = p
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = m
}
