package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/gridfile"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const mazesURI = "wayfinder://mazes"

// Service is the maze API exposed as MCP tools.
type Service interface {
	Get(ctx context.Context, name string) (*domain.Grid, error)
	List(ctx context.Context) ([]string, error)
	Edit(ctx context.Context, name string, fn func(*domain.Grid) error) (*domain.Grid, error)
	Solve(ctx context.Context, name string, mode domain.Mode, opts wayfinder.SolveOptions) (*domain.Result, error)
	SolveGrid(ctx context.Context, grid *domain.Grid, mode domain.Mode) (*domain.Result, error)
}

// MazeResponse is the structured output of get_maze and edit_cell.
type MazeResponse struct {
	Name        string        `json:"name" jsonschema_description:"Maze name"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Rows        []string      `json:"rows" jsonschema_description:"One digit string per row: 0 empty, 1 wall, 2 explored, 3 path, 4 start, 5 destination"`
	Start       *domain.Point `json:"start,omitempty"`
	Destination *domain.Point `json:"destination,omitempty"`
	Applied     *bool         `json:"applied,omitempty" jsonschema_description:"Whether the edit changed the maze"`
}

// SolveResponse is the structured output of the solve tools.
type SolveResponse struct {
	Mode     string         `json:"mode"`
	Found    bool           `json:"found" jsonschema_description:"Whether the destination was reached"`
	Explored int            `json:"explored" jsonschema_description:"Number of cells taken from the frontier"`
	Steps    int            `json:"steps" jsonschema_description:"Moves from start to destination, 0 when not found"`
	Path     []domain.Point `json:"path" jsonschema_description:"Route cells from next to the destination back to next to the start"`
	Rows     []string       `json:"rows,omitempty" jsonschema_description:"The grid painted with the search result"`
}

type mazeArgs struct {
	Name string `json:"name"`
}

type solveMazeArgs struct {
	Name    string `json:"name"`
	Mode    string `json:"mode"`
	Persist bool   `json:"persist"`
}

type solveGridArgs struct {
	Grid string `json:"grid"`
	Mode string `json:"mode"`
}

type editCellArgs struct {
	Name string `json:"name"`
	Op   string `json:"op"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Server exposes a maze Service as an MCP server.
type Server struct {
	svc       Service
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger. MCP over stdio must never log to stdout.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(svc Service, opts ...Option) *Server {
	s := &Server{
		svc:       svc,
		mcpServer: server.NewMCPServer("wayfinder-mcp", strings.TrimSpace(wayfinder.Version)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	baseURL := "http://localhost" + addr
	if !strings.HasPrefix(addr, ":") {
		baseURL = "http://" + addr
	}
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	modeHelp := "Search mode: " + strings.Join(domain.ModeNames(), ", ") + " (default BFS)"

	s.mcpServer.AddTool(mcp.NewTool("list_modes",
		mcp.WithDescription("List the available search modes in cycling order."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, _ := json.Marshal(domain.ModeNames())
		return mcp.NewToolResultText(string(data)), nil
	})

	s.mcpServer.AddTool(mcp.NewTool("list_mazes",
		mcp.WithDescription("List the names of stored mazes."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, err := s.svc.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		if names == nil {
			names = []string{}
		}
		data, _ := json.Marshal(names)
		return mcp.NewToolResultText(string(data)), nil
	})

	s.mcpServer.AddTool(mcp.NewTool("get_maze",
		mcp.WithDescription("Get a stored maze as digit rows."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Maze name")),
		mcp.WithOutputSchema[MazeResponse](),
	), mcp.NewStructuredToolHandler(s.handleGetMaze))

	s.mcpServer.AddTool(mcp.NewTool("edit_cell",
		mcp.WithDescription("Change one cell of a stored maze."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Maze name")),
		mcp.WithString("op", mcp.Required(), mcp.Description("One of wall, start, destination, clear")),
		mcp.WithNumber("x", mcp.Required(), mcp.Description("Column, 0-based")),
		mcp.WithNumber("y", mcp.Required(), mcp.Description("Row, 0-based")),
		mcp.WithOutputSchema[MazeResponse](),
	), mcp.NewStructuredToolHandler(s.handleEditCell))

	s.mcpServer.AddTool(mcp.NewTool("solve_maze",
		mcp.WithDescription("Search a stored maze from its start to its destination."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Maze name")),
		mcp.WithString("mode", mcp.Description(modeHelp)),
		mcp.WithBoolean("persist", mcp.Description("Save the painted result back to the maze")),
		mcp.WithOutputSchema[SolveResponse](),
	), mcp.NewStructuredToolHandler(s.handleSolveMaze))

	s.mcpServer.AddTool(mcp.NewTool("solve_grid",
		mcp.WithDescription("Search an inline maze given as digit rows separated by newlines."),
		mcp.WithString("grid", mcp.Required(), mcp.Description("Maze text, e.g. \"410\\n010\\n005\"")),
		mcp.WithString("mode", mcp.Description(modeHelp)),
		mcp.WithOutputSchema[SolveResponse](),
	), mcp.NewStructuredToolHandler(s.handleSolveGrid))
}

func (s *Server) handleGetMaze(ctx context.Context, request mcp.CallToolRequest, args mazeArgs) (MazeResponse, error) {
	g, err := s.svc.Get(ctx, args.Name)
	if err != nil {
		return MazeResponse{}, fmt.Errorf("get maze: %w", err)
	}
	return mapMaze(args.Name, g), nil
}

func (s *Server) handleEditCell(ctx context.Context, request mcp.CallToolRequest, args editCellArgs) (MazeResponse, error) {
	var op func(*domain.Grid, int, int) bool
	switch strings.ToLower(args.Op) {
	case "wall":
		op = (*domain.Grid).SetWall
	case "start":
		op = (*domain.Grid).SetStart
	case "destination", "dest":
		op = (*domain.Grid).SetDestination
	case "clear", "erase":
		op = (*domain.Grid).ClearCell
	default:
		return MazeResponse{}, fmt.Errorf("unknown op %q", args.Op)
	}

	var applied bool
	g, err := s.svc.Edit(ctx, args.Name, func(g *domain.Grid) error {
		applied = op(g, args.X, args.Y)
		return nil
	})
	if err != nil {
		return MazeResponse{}, fmt.Errorf("edit maze: %w", err)
	}
	resp := mapMaze(args.Name, g)
	resp.Applied = &applied
	return resp, nil
}

func (s *Server) handleSolveMaze(ctx context.Context, request mcp.CallToolRequest, args solveMazeArgs) (SolveResponse, error) {
	mode, err := parseMode(args.Mode)
	if err != nil {
		return SolveResponse{}, err
	}
	res, err := s.svc.Solve(ctx, args.Name, mode, wayfinder.SolveOptions{Persist: args.Persist})
	if err != nil {
		s.logger.Warn("MCP solve_maze failed", "maze", args.Name, "err", err)
		return SolveResponse{}, fmt.Errorf("solve maze: %w", err)
	}
	return mapResult(res, nil), nil
}

func (s *Server) handleSolveGrid(ctx context.Context, request mcp.CallToolRequest, args solveGridArgs) (SolveResponse, error) {
	mode, err := parseMode(args.Mode)
	if err != nil {
		return SolveResponse{}, err
	}
	g, err := gridfile.Unmarshal([]byte(args.Grid))
	if err != nil {
		return SolveResponse{}, fmt.Errorf("parse grid: %w", err)
	}
	res, err := s.svc.SolveGrid(ctx, g, mode)
	if err != nil {
		return SolveResponse{}, fmt.Errorf("solve grid: %w", err)
	}

	painted := g.Clone()
	painted.ClearExplored()
	res.ApplyTo(painted)
	return mapResult(res, painted), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(mazesURI, "Stored mazes",
		mcp.WithResourceDescription("Names of all stored mazes"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.svc.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list mazes: %w", err)
		}
		if names == nil {
			names = []string{}
		}
		data, _ := json.Marshal(names)
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      mazesURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}

func parseMode(name string) (domain.Mode, error) {
	if name == "" {
		return domain.BFS, nil
	}
	return domain.ParseMode(name)
}

func mapMaze(name string, g *domain.Grid) MazeResponse {
	resp := MazeResponse{
		Name:   name,
		Width:  g.Width(),
		Height: g.Height(),
		Rows:   gridfile.EncodeRows(g),
	}
	if p, ok := g.Start(); ok {
		resp.Start = &p
	}
	if p, ok := g.Destination(); ok {
		resp.Destination = &p
	}
	return resp
}

func mapResult(res *domain.Result, painted *domain.Grid) SolveResponse {
	resp := SolveResponse{
		Mode:     res.Mode.String(),
		Found:    res.Found,
		Explored: res.Explored(),
		Steps:    res.Steps(),
		Path:     res.Path,
	}
	if painted != nil {
		resp.Rows = gridfile.EncodeRows(painted)
	}
	return resp
}
