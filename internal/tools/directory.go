package tools

import (
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"

	"github.com/apiconf/ndu/internal/directory"
)

// FindSpeaker searches speakers by name or expertise.
func (k *Kit) FindSpeaker(_ *ai.ToolContext, input FindSpeakerInput) (Result, error) {
	k.logger.Debug("FindSpeaker called", "query", input.Query)

	if strings.TrimSpace(input.Query) == "" {
		return k.invalidArgs("query is required"), nil
	}

	speakers := k.dir.FindSpeakers(input.Query)
	return Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("Found %d speaker(s) matching %q", len(speakers), input.Query),
		Data: map[string]any{
			"query":    input.Query,
			"count":    len(speakers),
			"speakers": speakers,
		},
	}, nil
}

// SearchSessions searches the programme by keyword.
func (k *Kit) SearchSessions(_ *ai.ToolContext, input SearchSessionsInput) (Result, error) {
	k.logger.Debug("SearchSessions called", "query", input.Query)

	if strings.TrimSpace(input.Query) == "" {
		return k.invalidArgs("query is required"), nil
	}

	sessions := k.dir.SearchSessions(input.Query)
	return Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("Found %d session(s) matching %q", len(sessions), input.Query),
		Data: map[string]any{
			"query":    input.Query,
			"count":    len(sessions),
			"sessions": k.withSpeakerNames(sessions),
		},
	}, nil
}

// SessionsByDay lists a day's sessions in programme order.
func (k *Kit) SessionsByDay(_ *ai.ToolContext, input SessionsByDayInput) (Result, error) {
	k.logger.Debug("SessionsByDay called", "day", input.Day)

	if strings.TrimSpace(input.Day) == "" {
		return k.invalidArgs("day is required"), nil
	}

	sessions := k.dir.SessionsByDay(input.Day)
	if len(sessions) == 0 {
		return Result{
			Status:  StatusSuccess,
			Message: fmt.Sprintf("No sessions on %q. The conference runs %s.", input.Day, k.conference.Dates),
			Data: map[string]any{
				"day":      input.Day,
				"count":    0,
				"all_days": k.dir.Days(),
			},
		}, nil
	}

	return Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("%d session(s) on %s", len(sessions), input.Day),
		Data: map[string]any{
			"day":      input.Day,
			"count":    len(sessions),
			"sessions": k.withSpeakerNames(sessions),
		},
	}, nil
}

// SessionsBySpeaker lists the sessions a speaker appears in.
func (k *Kit) SessionsBySpeaker(_ *ai.ToolContext, input SessionsBySpeakerInput) (Result, error) {
	k.logger.Debug("SessionsBySpeaker called", "speaker_id", input.SpeakerID)

	if strings.TrimSpace(input.SpeakerID) == "" {
		return k.invalidArgs("speaker_id is required"), nil
	}

	sp, ok := k.dir.Speaker(input.SpeakerID)
	if !ok {
		return Result{
			Status:  StatusError,
			Message: fmt.Sprintf("No speaker with id %q. Use findSpeaker to look up speaker ids.", input.SpeakerID),
			Error:   &Error{Code: ErrCodeNotFound, Message: "unknown speaker id"},
		}, nil
	}

	sessions := k.dir.SessionsBySpeaker(input.SpeakerID)
	return Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("%s has %d session(s)", sp.Name, len(sessions)),
		Data: map[string]any{
			"speaker":  sp,
			"count":    len(sessions),
			"sessions": sessions,
		},
	}, nil
}

// FullSchedule returns the whole programme.
func (k *Kit) FullSchedule(_ *ai.ToolContext, _ FullScheduleInput) (Result, error) {
	k.logger.Debug("FullSchedule called")

	sessions := k.dir.Sessions()
	return Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("Full schedule: %d sessions across %s", len(sessions), k.conference.Dates),
		Data: map[string]any{
			"days":     k.dir.Days(),
			"count":    len(sessions),
			"sessions": k.withSpeakerNames(sessions),
		},
	}, nil
}

// KeynoteSpeakers returns the keynote sessions with their speakers.
func (k *Kit) KeynoteSpeakers(_ *ai.ToolContext, _ KeynoteSpeakersInput) (Result, error) {
	k.logger.Debug("KeynoteSpeakers called")

	keynotes := k.dir.Keynotes()
	return Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("%d keynote(s)", len(keynotes)),
		Data: map[string]any{
			"count":    len(keynotes),
			"keynotes": k.withSpeakerNames(keynotes),
		},
	}, nil
}

func (k *Kit) invalidArgs(msg string) Result {
	return Result{
		Status:  StatusError,
		Message: msg,
		Error:   &Error{Code: ErrCodeInvalidArgs, Message: msg},
	}
}

// withSpeakerNames flattens sessions with resolved speaker names so the
// model does not need a second lookup to present results.
func (k *Kit) withSpeakerNames(sessions []directory.Session) []map[string]any {
	out := make([]map[string]any, 0, len(sessions))
	for _, ses := range sessions {
		var names []string
		for _, id := range ses.SpeakerIDs {
			if sp, ok := k.dir.Speaker(id); ok {
				names = append(names, sp.Name)
			}
		}
		out = append(out, map[string]any{
			"id":          ses.ID,
			"title":       ses.Title,
			"description": ses.Description,
			"day":         ses.Day,
			"time":        ses.Time,
			"room":        ses.Room,
			"format":      ses.Format,
			"speakers":    names,
			"speaker_ids": ses.SpeakerIDs,
			"topics":      ses.Topics,
		})
	}
	return out
}
