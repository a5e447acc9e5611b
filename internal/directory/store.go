// Package directory holds the read-only conference programme: speakers and
// scheduled sessions, embedded at build time. All lookups are pure and
// preserve the stored (chronological) order; an empty result is not an error.
package directory

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed data/speakers.json data/schedule.json
var dataFS embed.FS

// Store is the in-memory conference programme.
type Store struct {
	speakers []Speaker
	sessions []Session

	speakerByID map[string]*Speaker
	sessionByID map[string]*Session
}

// New loads the embedded programme data.
func New() (*Store, error) {
	var speakers []Speaker
	if err := loadJSON("data/speakers.json", &speakers); err != nil {
		return nil, err
	}

	var sessions []Session
	if err := loadJSON("data/schedule.json", &sessions); err != nil {
		return nil, err
	}

	s := &Store{
		speakers:    speakers,
		sessions:    sessions,
		speakerByID: make(map[string]*Speaker, len(speakers)),
		sessionByID: make(map[string]*Session, len(sessions)),
	}
	for i := range s.speakers {
		s.speakerByID[s.speakers[i].ID] = &s.speakers[i]
	}
	for i := range s.sessions {
		s.sessionByID[s.sessions[i].ID] = &s.sessions[i]
	}
	return s, nil
}

func loadJSON(name string, v any) error {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// Speakers returns all speakers in programme order.
func (s *Store) Speakers() []Speaker { return s.speakers }

// Sessions returns all sessions in programme (chronological) order.
func (s *Store) Sessions() []Session { return s.sessions }

// Days returns the distinct session days in programme order.
func (s *Store) Days() []string {
	var days []string
	seen := make(map[string]bool)
	for _, ses := range s.sessions {
		if !seen[ses.Day] {
			seen[ses.Day] = true
			days = append(days, ses.Day)
		}
	}
	return days
}

// FindSpeakers matches the query case-insensitively against speaker names
// and expertise, as a substring.
func (s *Store) FindSpeakers(query string) []Speaker {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matches []Speaker
	for _, sp := range s.speakers {
		if strings.Contains(strings.ToLower(sp.Name), q) {
			matches = append(matches, sp)
			continue
		}
		for _, e := range sp.Expertise {
			if strings.Contains(strings.ToLower(e), q) {
				matches = append(matches, sp)
				break
			}
		}
	}
	return matches
}

// SessionsByDay returns sessions whose day contains the query, e.g. "July 18"
// or "18". Stored order is preserved.
func (s *Store) SessionsByDay(day string) []Session {
	q := strings.ToLower(strings.TrimSpace(day))
	if q == "" {
		return nil
	}

	var matches []Session
	for _, ses := range s.sessions {
		if strings.Contains(strings.ToLower(ses.Day), q) {
			matches = append(matches, ses)
		}
	}
	return matches
}

// SessionsBySpeaker returns the sessions a speaker appears in.
func (s *Store) SessionsBySpeaker(speakerID string) []Session {
	var matches []Session
	for _, ses := range s.sessions {
		for _, id := range ses.SpeakerIDs {
			if id == speakerID {
				matches = append(matches, ses)
				break
			}
		}
	}
	return matches
}

// SearchSessions matches the query case-insensitively against session
// titles, descriptions, topics, and the names of their speakers.
func (s *Store) SearchSessions(query string) []Session {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matches []Session
	for _, ses := range s.sessions {
		if s.sessionMatches(ses, q) {
			matches = append(matches, ses)
		}
	}
	return matches
}

func (s *Store) sessionMatches(ses Session, q string) bool {
	if strings.Contains(strings.ToLower(ses.Title), q) ||
		strings.Contains(strings.ToLower(ses.Description), q) {
		return true
	}
	for _, t := range ses.Topics {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	for _, id := range ses.SpeakerIDs {
		if sp, ok := s.speakerByID[id]; ok {
			if strings.Contains(strings.ToLower(sp.Name), q) {
				return true
			}
		}
	}
	return false
}

// Keynotes returns the sessions marked as keynotes, in programme order.
func (s *Store) Keynotes() []Session {
	var matches []Session
	for _, ses := range s.sessions {
		if strings.EqualFold(ses.Format, FormatKeynote) {
			matches = append(matches, ses)
		}
	}
	return matches
}

// Speaker looks up a speaker by id.
func (s *Store) Speaker(id string) (Speaker, bool) {
	sp, ok := s.speakerByID[id]
	if !ok {
		return Speaker{}, false
	}
	return *sp, true
}
