package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/jonwraymond/docsearch/search"
)

// Options configures a Server.
type Options struct {
	// Name and Version are reported to clients during initialization.
	Name    string
	Version string

	// Namespace of the search tool. Defaults to DefaultNamespace.
	Namespace string

	// Tags are added to the tool descriptor's default tags.
	Tags []string

	// Logger receives one line per tool call. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Output is the structured result of search_docs.
type Output struct {
	Hits []search.Hit `json:"hits"`
}

// Server serves the search_docs tool.
type Server struct {
	mcp      *mcp.Server
	searcher search.Searcher
	tool     model.Tool
	log      *zap.Logger
}

// New creates a Server backed by searcher.
func New(searcher search.Searcher, opts Options) (*Server, error) {
	if searcher == nil {
		return nil, ErrNoSearcher
	}
	if opts.Name == "" {
		opts.Name = "docsearch"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	tool, err := SearchTool(opts.Namespace, opts.Version, opts.Tags...)
	if err != nil {
		return nil, err
	}

	s := &Server{
		mcp:      mcp.NewServer(&mcp.Implementation{Name: opts.Name, Version: opts.Version}, nil),
		searcher: searcher,
		tool:     tool,
		log:      opts.Logger.With(zap.String("tool", tool.ToolID())),
	}
	mcp.AddTool(s.mcp, &s.tool.Tool, s.handleSearch)
	return s, nil
}

// Tool returns the registered tool descriptor.
func (s *Server) Tool() model.Tool { return s.tool }

// ServeStdio runs the server over stdin/stdout until the client
// disconnects or ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler returns a streamable HTTP handler for the server.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}

// Connect attaches the server to an arbitrary transport.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcp.Connect(ctx, t, nil)
}

func (s *Server) handleSearch(ctx context.Context, _ *mcp.CallToolRequest, in SearchInput) (*mcp.CallToolResult, any, error) {
	start := time.Now()
	hits, err := s.searcher.Search(ctx, in.Query)
	if err != nil {
		s.log.Warn("search failed",
			zap.String("query", in.Query),
			zap.Bool("index_unavailable", errors.Is(err, search.ErrIndexUnavailable)),
			zap.Error(err),
		)
		return toolError(err.Error()), nil, nil
	}
	if hits == nil {
		hits = []search.Hit{}
	}

	out := Output{Hits: hits}
	data, err := json.Marshal(out)
	if err != nil {
		return toolError("encode hits: " + err.Error()), nil, nil
	}

	s.log.Debug("search served",
		zap.String("query", in.Query),
		zap.Int("hits", len(hits)),
		zap.Duration("took", time.Since(start)),
	)
	return &mcp.CallToolResult{
		StructuredContent: out,
		Content:           []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func toolError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}
