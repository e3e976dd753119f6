// Package lsp exposes the generator to editors over the Language Server
// Protocol: completion items after a member-access dot and code actions at
// the cursor.
package lsp

import (
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"github.com/calumari/dtogen/internal/document"
	"github.com/calumari/dtogen/internal/generator"
	"github.com/calumari/dtogen/internal/javasrc"
)

const lspName = "dtogen"

var log = commonlog.GetLogger("dtogen.lsp")

// codeActionTitles are the menu entries for the command path.
var codeActionTitles = map[string]string{
	generator.AccessorChainID: "Generate accessor chain",
	generator.BuilderChainID:  "Generate builder chain",
}

// Server keeps open documents in memory (full sync) and answers completion
// and code action requests from them.
type Server struct {
	gen *generator.Generator

	mu   sync.Mutex
	docs map[protocol.DocumentUri]string

	handler protocol.Handler
	server  *glspserver.Server
	version string
}

// New creates a server generating with gen.
func New(gen *generator.Generator, version string) *Server {
	s := &Server{
		gen:     gen,
		docs:    make(map[protocol.DocumentUri]string),
		version: version,
	}

	s.handler = protocol.Handler{
		Initialize:  s.initialize,
		Initialized: s.initialized,
		Shutdown:    s.shutdown,
		SetTrace:    s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentCompletion: s.textDocumentCompletion,
		TextDocumentCodeAction: s.textDocumentCodeAction,
	}

	s.server = glspserver.NewServer(&s.handler, lspName, false)
	return s
}

// RunStdio serves on stdin/stdout until the client disconnects.
func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initializing")

	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{"."},
	}
	capabilities.CodeActionProvider = &protocol.CodeActionOptions{
		CodeActionKinds: []protocol.CodeActionKind{protocol.CodeActionKindRefactorRewrite},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lspName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.mu.Lock()
	s.docs[params.TextDocument.URI] = params.TextDocument.Text
	s.mu.Unlock()
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			s.docs[uri] = c.Text
		case protocol.TextDocumentContentChangeEvent:
			// incremental edits from clients that ignore the sync kind
			text := s.docs[uri]
			if c.Range == nil {
				s.docs[uri] = c.Text
				continue
			}
			start, end := offsetAt(text, c.Range.Start), offsetAt(text, c.Range.End)
			s.docs[uri] = text[:start] + c.Text + text[end:]
		}
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.docs, params.TextDocument.URI)
	s.mu.Unlock()
	return nil
}

// source parses the current text of uri. Unparseable documents get no
// suggestions.
func (s *Server) source(uri protocol.DocumentUri) (string, *javasrc.File, bool) {
	s.mu.Lock()
	text, ok := s.docs[uri]
	s.mu.Unlock()
	if !ok {
		return "", nil, false
	}
	f, err := javasrc.Parse(string(uri), text)
	if err != nil {
		log.Debugf("%s", err)
		return "", nil, false
	}
	return text, f, true
}

func (s *Server) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	text, f, ok := s.source(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	q, ok := f.QualifierAt(offsetAt(text, params.Position))
	if !ok {
		return nil, nil
	}

	inv := generator.Invocation{Source: f, Document: document.New(text), Trigger: generator.CompletionTrigger(q)}
	var items []protocol.CompletionItem
	for _, a := range s.gen.Applicable(inv) {
		edit, err := a.Plan(inv)
		if err != nil || edit == nil {
			log.Debugf("%s: %v", a.ID(), err)
			continue
		}
		items = append(items, completionItem(text, q.Text, a, edit))
	}
	if len(items) == 0 {
		return nil, nil
	}
	return protocol.CompletionList{Items: items}, nil
}

func completionItem(text, qualifier string, a generator.Action, edit *generator.Edit) protocol.CompletionItem {
	kind := protocol.CompletionItemKindSnippet
	detail := a.Title()
	filter := qualifier + "." + a.ID()
	format := protocol.InsertTextFormatPlainText
	newText := edit.Text
	if edit.Template != nil {
		format = protocol.InsertTextFormatSnippet
		newText = edit.Template.Snippet()
	}
	return protocol.CompletionItem{
		Label:            a.ID(),
		Kind:             &kind,
		Detail:           &detail,
		FilterText:       &filter,
		InsertTextFormat: &format,
		TextEdit: protocol.TextEdit{
			Range:   rangeOf(text, edit.Range.Start, edit.Range.End),
			NewText: newText,
		},
	}
}

func (s *Server) textDocumentCodeAction(ctx *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	uri := params.TextDocument.URI
	text, f, ok := s.source(uri)
	if !ok {
		return nil, nil
	}

	inv := generator.Invocation{
		Source:   f,
		Document: document.New(text),
		Trigger:  generator.CommandTrigger(offsetAt(text, params.Range.Start)),
	}
	kind := protocol.CodeActionKindRefactorRewrite
	var actions []protocol.CodeAction
	for _, a := range s.gen.Applicable(inv) {
		edit, err := a.Plan(inv)
		if err != nil || edit == nil {
			log.Debugf("%s: %v", a.ID(), err)
			continue
		}
		actions = append(actions, protocol.CodeAction{
			Title: codeActionTitles[a.ID()],
			Kind:  &kind,
			Edit: &protocol.WorkspaceEdit{
				Changes: map[protocol.DocumentUri][]protocol.TextEdit{
					uri: {{Range: rangeOf(text, edit.Range.Start, edit.Range.End), NewText: edit.Text}},
				},
			},
		})
	}
	if len(actions) == 0 {
		return nil, nil
	}
	return actions, nil
}

func boolPtr(b bool) *bool { return &b }
