package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/bastiangx/citycomplete/pkg/calculator"
	"github.com/bastiangx/citycomplete/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Field names driven by the server.
const (
	FieldFrom = "from"
	FieldTo   = "to"
)

const submitTimeout = 10 * time.Second

// Submitter sends a collected submission. *calculator.Client implements it.
type Submitter interface {
	Submit(ctx context.Context, sub calculator.Submission) (calculator.Result, error)
}

type field struct {
	controller *suggest.Controller
	binding    *suggest.FieldBinding
}

// Server handles the IPC for the two city fields
type Server struct {
	fields    map[string]*field
	submitter Submitter
	reader    io.Reader

	wmu sync.Mutex
	enc *msgpack.Encoder
}

// NewServer creates the server and its two fields. Both share finder, so a
// dataset fetched for one field serves the other from cache. submitter may be
// nil, in which case submissions are only validated.
func NewServer(finder suggest.Finder, opts suggest.Options, submitter Submitter, r io.Reader, w io.Writer) *Server {
	s := &Server{
		fields:    make(map[string]*field),
		submitter: submitter,
		reader:    r,
		enc:       msgpack.NewEncoder(w),
	}

	for _, name := range []string{FieldFrom, FieldTo} {
		binding := suggest.NewFieldBinding(name)
		binding.OnChange(s.sendCommit)
		s.fields[name] = &field{
			controller: suggest.NewController(name, opts, finder, suggest.SurfaceFunc(s.sendRender), binding),
			binding:    binding,
		}
	}
	return s
}

// Binding returns the binding of a field, nil for unknown names.
func (s *Server) Binding(name string) *suggest.FieldBinding {
	if f, ok := s.fields[name]; ok {
		return f.binding
	}
	return nil
}

// Start begins listening for IPC requests. It returns nil when the input ends.
func (s *Server) Start() error {
	log.Debug("Starting Server.")
	defer s.Close()

	s.sendResponse(StatusMessage{Type: "status", Status: "ready"})

	dec := msgpack.NewDecoder(s.reader)
	for {
		raw, err := dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Reading request: %v", err)
			s.sendError("", "Unreadable request stream", 400)
			return err
		}

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			log.Errorf("Unmarshaling request: %v", err)
			s.sendError("", "Invalid request", 400)
			continue
		}
		s.handleRequest(req)
	}
}

// Close stops every field. Nothing is rendered afterwards.
func (s *Server) Close() {
	for _, f := range s.fields {
		f.controller.Destroy()
	}
}

// handleRequest dispatches one request. Requests without an id get a
// generated one.
func (s *Server) handleRequest(req Request) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	log.Debug("Request", "id", req.ID, "op", req.Op, "field", req.Field)

	switch req.Op {
	case "health":
		s.sendResponse(StatusMessage{Type: "status", ID: req.ID, Status: "ok"})
		return
	case "submit":
		s.handleSubmit(req)
		return
	}

	f, ok := s.fields[req.Field]
	if !ok {
		s.sendError(req.ID, fmt.Sprintf("unknown field: %s", req.Field), 404)
		return
	}

	switch req.Op {
	case "input":
		f.controller.Input(req.Value)
	case "key":
		key, ok := suggest.ParseKey(req.Key)
		if !ok {
			s.sendError(req.ID, fmt.Sprintf("unknown key: %s", req.Key), 400)
			return
		}
		f.controller.Key(key)
	case "click":
		f.controller.Click(req.Index)
	case "focus":
		f.controller.Focus()
	case "dismiss":
		f.controller.Dismiss()
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown op: %s", req.Op), 400)
	}
}

func (s *Server) handleSubmit(req Request) {
	sub := calculator.Collect(s.fields[FieldFrom].binding, s.fields[FieldTo].binding, req.Volume, req.Weight, time.Now())

	if err := sub.Validate(); err != nil {
		s.sendResponse(SubmitMessage{Type: "submit", ID: req.ID, Status: "invalid", Error: err.Error()})
		return
	}
	if s.submitter == nil {
		log.Debugf("No submit endpoint, accepted %s -> %s locally", sub.CityFrom, sub.CityTo)
		s.sendResponse(SubmitMessage{Type: "submit", ID: req.ID, Status: "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()
	res, err := s.submitter.Submit(ctx, sub)
	if err != nil {
		log.Errorf("Submitting: %v", err)
		s.sendResponse(SubmitMessage{Type: "submit", ID: req.ID, Status: "failed", Error: err.Error()})
		return
	}
	s.sendResponse(SubmitMessage{Type: "submit", ID: req.ID, Status: "ok", SubmissionID: res.ID})
}

// sendRender is the Surface of both fields.
func (s *Server) sendRender(v suggest.View) {
	msg := RenderMessage{
		Type:        "render",
		Field:       v.Field,
		State:       v.State.String(),
		Query:       v.Query,
		Suggestions: make([]RenderSuggestion, len(v.Items)),
		Highlighted: v.Highlighted,
	}
	if v.State == suggest.ViewList || v.State == suggest.ViewEmpty {
		msg.Source = v.Source.String()
	}
	if v.Err != nil {
		msg.Error = v.Err.Error()
	}

	for i, c := range v.Items {
		msg.Suggestions[i] = RenderSuggestion{
			Name:       c.Name,
			ID:         c.ID,
			Region:     c.Region,
			Highlights: suggest.MatchRanges(c.Name, v.Query),
		}
	}
	s.sendResponse(msg)
}

func (s *Server) sendCommit(name string, c suggest.Candidate) {
	s.sendResponse(CommitMessage{Type: "commit", Field: name, Value: c.Name, ID: c.ID, Region: c.Region})
}

// sendResponse encodes one message. Renders come from timer goroutines, so
// writes are serialized.
func (s *Server) sendResponse(response any) {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorMessage{Type: "error", ID: id, Error: message, Code: code})
}
