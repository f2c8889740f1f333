// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Intent values produced by the upstream classifier.
const (
	IntentLegal    = "LEGAL"
	IntentNotLegal = "NOT_LEGAL"
	IntentTooVague = "TOO_VAGUE"
)

// RouteResolve is the only route target this dispatcher serves.
const RouteResolve = "RESOLVE"

// IntentPayload is the pre-classified request handed to the dispatcher by
// the upstream intent pipeline.
type IntentPayload struct {
	Intent      string   `json:"intent"`
	RouteTarget string   `json:"route_target"`
	Topic       string   `json:"topic,omitempty"`
	CodeHint    string   `json:"code_hint,omitempty"`
	ArticleHint string   `json:"article_hint,omitempty"`
	TextNumber  string   `json:"text_number,omitempty"`
	DateHint    string   `json:"date_hint,omitempty"`
	MissingInfo []string `json:"missing_info,omitempty"`
}

// Wire error codes returned in DispatchResponse.Error.
const (
	ErrNotLegal       = "NOT_LEGAL"
	ErrTooVague       = "TOO_VAGUE"
	ErrWrongRoute     = "WRONG_ROUTE"
	ErrNotImplemented = "NOT_IMPLEMENTED"
	ErrNotFound       = "NOT_FOUND"
	ErrAmbiguous      = "AMBIGUOUS"
	ErrTooBroad       = "TOO_BROAD"
)

// DispatchResponse is the wire envelope for dispatcher results. On success
// OK is true and the article fields are populated; otherwise Error carries
// a stable machine-readable code and Message a human-readable reason.
type DispatchResponse struct {
	OK      bool   `json:"ok"`
	Kind    string `json:"kind,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`

	Source      string         `json:"source,omitempty"`
	LegiartiID  string         `json:"legiarti_id,omitempty"`
	Title       string         `json:"title,omitempty"`
	Article     string         `json:"article,omitempty"`
	DateVersion string         `json:"date_version,omitempty"`
	Raw         map[string]any `json:"raw,omitempty"`

	MissingInfo []string    `json:"missing_info,omitempty"`
	Candidates  []Candidate `json:"candidates,omitempty"`
}
