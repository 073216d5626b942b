package dto

type MusicOutput struct {
	Kind      string
	Reference string
	Volume    int
}

type SettingsOutput struct {
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	LongBreakInterval int
	FocusMusic        MusicOutput
	BreakMusic        MusicOutput
	WorkAlarm         string
	ShortBreakAlarm   string
	LongBreakAlarm    string
	Theme             string
	AutoStartBreaks   bool
	AutoStartWork     bool
}

type MusicInput struct {
	Kind      *string
	Reference *string
	Volume    *int
}

// UpdateInput is a patch: nil fields are left unchanged.
type UpdateInput struct {
	WorkMinutes       *int
	ShortBreakMinutes *int
	LongBreakMinutes  *int
	LongBreakInterval *int
	FocusMusic        *MusicInput
	BreakMusic        *MusicInput
	Theme             *string
	AutoStartBreaks   *bool
	AutoStartWork     *bool
}

type EntryOutput struct {
	Key   string
	Value string
}
