package directory

// Speaker is one accepted speaker from the conference programme.
type Speaker struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Title      string            `json:"title"`
	Company    string            `json:"company"`
	Bio        string            `json:"bio"`
	Expertise  []string          `json:"expertise"`
	Social     map[string]string `json:"social,omitempty"`
	SessionIDs []string          `json:"session_ids"`
}

// Session is one scheduled slot on the conference programme. Format is a
// free-form label from the programme ("keynote", "talk", "workshop", "panel").
type Session struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Day         string   `json:"day"`
	Time        string   `json:"time"`
	Room        string   `json:"room"`
	Format      string   `json:"format"`
	SpeakerIDs  []string `json:"speaker_ids"`
	Topics      []string `json:"topics"`
}

// FormatKeynote is the session format that marks a keynote slot.
const FormatKeynote = "keynote"
