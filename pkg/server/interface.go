/*
Package server implements msgpack IPC for the city autocomplete fields.

The server drives two autocomplete fields, "from" and "to", on behalf of a client that owns the
actual input widgets. The client forwards field events as msgpack messages on stdin and receives
what each field should show on stdout.

# IPC

Every request carries an op and, for field events, the field name:

	{"id": "1", "op": "input", "field": "from", "v": "Ека"}
	{"id": "2", "op": "key", "field": "from", "k": "down"}
	{"id": "3", "op": "click", "field": "to", "i": 0}
	{"op": "focus", "field": "to"}
	{"op": "dismiss", "field": "to"}
	{"id": "4", "op": "submit", "volume": "2.5", "weight": ""}
	{"id": "5", "op": "health"}

Field events are not answered directly. Renders arrive whenever a field's list changes,
including after the debounced lookup finishes on its own:

	{"type": "render", "field": "from", "state": "list", "q": "Ека",
	 "s": [{"n": "Екатеринбург", "id": "4", "region": "Свердловская область", "h": [[0, 3]]}],
	 "hl": -1, "src": "remote"}

Suggestions keep the order of the dataset they were drawn from. "h" holds rune ranges of
the text matching the query, "hl" the highlighted index.
A committed candidate is reported once:

	{"type": "commit", "field": "from", "value": "Екатеринбург", "id": "4", "region": "Свердловская область"}

Submit and health are answered with their request id; bad requests produce an error message:

	{"type": "submit", "id": "4", "status": "ok", "sid": "..."}
	{"type": "error", "id": "9", "e": "unknown field: via", "c": 404}
*/
package server

// Request is a single client message.
type Request struct {
	ID     string `msgpack:"id,omitempty"`
	Op     string `msgpack:"op"`
	Field  string `msgpack:"field,omitempty"`
	Value  string `msgpack:"v,omitempty"`
	Key    string `msgpack:"k,omitempty"`
	Index  int    `msgpack:"i,omitempty"`
	Volume string `msgpack:"volume,omitempty"`
	Weight string `msgpack:"weight,omitempty"`
}

// RenderSuggestion - one rendered candidate
type RenderSuggestion struct {
	Name       string   `msgpack:"n"`
	ID         string   `msgpack:"id,omitempty"`
	Region     string   `msgpack:"region,omitempty"`
	Highlights [][2]int `msgpack:"h,omitempty"`
}

// RenderMessage - what a field should show
type RenderMessage struct {
	Type        string             `msgpack:"type"`
	Field       string             `msgpack:"field"`
	State       string             `msgpack:"state"`
	Query       string             `msgpack:"q"`
	Suggestions []RenderSuggestion `msgpack:"s"`
	Highlighted int                `msgpack:"hl"`
	Source      string             `msgpack:"src,omitempty"`
	Error       string             `msgpack:"e,omitempty"`
}

// CommitMessage - a candidate was written into a field
type CommitMessage struct {
	Type   string `msgpack:"type"`
	Field  string `msgpack:"field"`
	Value  string `msgpack:"value"`
	ID     string `msgpack:"id,omitempty"`
	Region string `msgpack:"region,omitempty"`
}

// SubmitMessage - outcome of a calculator submission
type SubmitMessage struct {
	Type         string `msgpack:"type"`
	ID           string `msgpack:"id,omitempty"`
	Status       string `msgpack:"status"`
	SubmissionID string `msgpack:"sid,omitempty"`
	Error        string `msgpack:"e,omitempty"`
}

// StatusMessage - readiness and health answers
type StatusMessage struct {
	Type   string `msgpack:"type"`
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorMessage holds basic error information for rejected requests
type ErrorMessage struct {
	Type  string `msgpack:"type"`
	ID    string `msgpack:"id,omitempty"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
