package dto

type ConfigInput struct {
	Kind      string
	Reference string
	Volume    int
}

// StateInput is one timer snapshot together with the media configuration
// current at the time it was taken.
type StateInput struct {
	Seq     uint64
	Mode    string
	Running bool
	Focus   ConfigInput
	Break   ConfigInput
}

type StatusOutput struct {
	Class     string
	Kind      string
	Reference string
	Volume    int
	Muted     bool
	Playing   bool
	Fallback  bool
	LastError string
}
