package usecase

// SubmitOutput is what a successful submission reports back. Discarded is set
// when the honeypot tripped and nothing was stored.
type SubmitOutput struct {
	ID        string `json:"id,omitempty"`
	Discarded bool   `json:"-"`
}
