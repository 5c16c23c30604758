package anki

// Note is one flashcard-to-be: a deck, a note type (model), and the model's
// field values. Field names must match the model's field names exactly or
// AnkiConnect rejects the note.
type Note struct {
	DeckName  string            `json:"deckName"`
	ModelName string            `json:"modelName"`
	Fields    map[string]string `json:"fields"`
	Tags      []string          `json:"tags,omitempty"`
	Options   *NoteOptions      `json:"options,omitempty"`
	Audio     []MediaField      `json:"audio,omitempty"`
	Picture   []MediaField      `json:"picture,omitempty"`
}

// NoteOptions tunes AnkiConnect's duplicate handling for one note.
type NoteOptions struct {
	AllowDuplicate bool            `json:"allowDuplicate"`
	DuplicateScope string          `json:"duplicateScope,omitempty"`
	ScopeOptions   *DuplicateScope `json:"duplicateScopeOptions,omitempty"`
}

// DuplicateScope narrows where AnkiConnect looks for duplicates when
// DuplicateScope is set to "deck".
type DuplicateScope struct {
	DeckName       string `json:"deckName,omitempty"`
	CheckChildren  bool   `json:"checkChildren"`
	CheckAllModels bool   `json:"checkAllModels"`
}

// MediaField attaches a downloadable media file to one or more note fields.
type MediaField struct {
	URL      string   `json:"url"`
	Filename string   `json:"filename"`
	Fields   []string `json:"fields"`
}
