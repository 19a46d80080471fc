// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the Daybook group store for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/daybook/internal/dispatch"
	"github.com/starford/daybook/internal/group"
	"github.com/starford/daybook/internal/groupstore"
	"github.com/starford/daybook/internal/models"
	"github.com/starford/daybook/internal/naming"
	"github.com/starford/daybook/internal/scan"
	"github.com/starford/daybook/internal/storage"
)

// Server wraps the MCP server with Daybook tools.
type Server struct {
	mcp     *server.MCPServer
	store   *groupstore.Store
	scanner *scan.Scanner
	fs      storage.Provider
	serial  *dispatch.Serializer
}

// New creates a new MCP server with all Daybook tools registered.
func New(store *groupstore.Store, scanner *scan.Scanner, fs storage.Provider, serial *dispatch.Serializer) *Server {
	s := &Server{store: store, scanner: scanner, fs: fs, serial: serial}

	s.mcp = server.NewMCPServer(
		"Daybook",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	typeNames := make([]string, 0, len(group.Types()))
	for _, t := range group.Types() {
		typeNames = append(typeNames, t.String())
	}
	typeDoc := "Group type, one of: " + strings.Join(typeNames, ", ")

	s.mcp.AddTool(mcp.NewTool("read_group",
		mcp.WithDescription("Read a note group's properties and ordered note list."),
		mcp.WithString("type", mcp.Required(), mcp.Description(typeDoc)),
		mcp.WithString("name", mcp.Description("Group name for named kinds (e.g. Groceries)")),
		mcp.WithString("date", mcp.Description("Date for calendar kinds, 2006-01-02")),
	), s.readGroup)

	s.mcp.AddTool(mcp.NewTool("write_group",
		mcp.WithDescription("Replace a note group's note list. Records MUST follow the "+
			"payload contract; read it first via the daybook://payload-format resource. "+
			"Records with blank text are dropped before the write."),
		mcp.WithString("type", mcp.Required(), mcp.Description(typeDoc)),
		mcp.WithString("name", mcp.Description("Group name for named kinds")),
		mcp.WithString("date", mcp.Description("Date for calendar kinds, 2006-01-02")),
		mcp.WithString("records", mcp.Required(), mcp.Description("JSON array of note records")),
	), s.writeGroup)

	s.mcp.AddTool(mcp.NewTool("delete_group",
		mcp.WithDescription("Delete a note group's data file."),
		mcp.WithString("type", mcp.Required(), mcp.Description(typeDoc)),
		mcp.WithString("name", mcp.Description("Group name for named kinds")),
		mcp.WithString("date", mcp.Description("Date for calendar kinds, 2006-01-02")),
	), s.deleteGroup)

	s.mcp.AddTool(mcp.NewTool("list_area",
		mcp.WithDescription("List the data files in a named kind's area directory."),
		mcp.WithString("type", mcp.Required(), mcp.Description(typeDoc)),
	), s.listArea)

	s.mcp.AddTool(mcp.NewTool("adjacent_date",
		mcp.WithDescription("Find the nearest earlier or later calendar date that has notes."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Starting date, 2006-01-02")),
		mcp.WithString("granularity", mcp.Required(), mcp.Description("One of: day, month, year")),
		mcp.WithString("direction", mcp.Required(), mcp.Description("One of: forward, backward")),
	), s.adjacentDate)

	// Resource: persisted payload contract.
	s.mcp.AddResource(
		mcp.NewResource("daybook://payload-format", "Payload Format Contract",
			mcp.WithResourceDescription("Canonical JSON payload shape every group file must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readPayloadFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// identityFromRequest builds a group identity from the common tool
// arguments: type plus either name or date.
func identityFromRequest(req mcp.CallToolRequest) (group.Identity, error) {
	typeName, err := req.RequireString("type")
	if err != nil {
		return group.Identity{}, err
	}
	t, err := group.ParseType(typeName)
	if err != nil {
		return group.Identity{}, err
	}
	if t.Calendar() {
		dateStr, err := req.RequireString("date")
		if err != nil {
			return group.Identity{}, fmt.Errorf("%s requires a date", t)
		}
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return group.Identity{}, fmt.Errorf("bad date %q: %v", dateStr, err)
		}
		return group.NewCalendar(t, date), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return group.Identity{}, fmt.Errorf("%s requires a name", t)
	}
	id := group.NewNamed(t, name)
	return id, id.Validate()
}

func (s *Server) readGroup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := identityFromRequest(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var payload *models.Payload
	err = s.serial.Do(ctx, id, func() error {
		var loadErr error
		payload, loadErr = s.store.Load(id)
		return loadErr
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if payload == nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id.Key())), nil
	}
	out, _ := json.MarshalIndent(payload.Records, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) writeGroup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := identityFromRequest(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	recordsJSON, err := req.RequireString("records")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var records []models.NoteRecord
	if err := json.Unmarshal([]byte(recordsJSON), &records); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("bad records: %v", err)), nil
	}

	// Gap compaction, same as an interactive save.
	kept := records[:0]
	for _, r := range records {
		if r.HasText() {
			kept = append(kept, r)
		}
	}

	err = s.serial.Do(ctx, id, func() error {
		payload, loadErr := s.store.Load(id)
		if loadErr != nil {
			return loadErr
		}
		if payload == nil {
			payload = &models.Payload{}
		}
		payload.Records = kept
		return s.store.Save(id, payload)
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("saved: %s (%d records)", id.Key(), len(kept))), nil
}

func (s *Server) deleteGroup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := identityFromRequest(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	err = s.serial.Do(ctx, id, func() error {
		return s.store.Delete(id)
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s", id.Key())), nil
}

func (s *Server) listArea(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	typeName, err := req.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	t, err := group.ParseType(typeName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if t.Calendar() {
		return mcp.NewToolResultError("calendar kinds have no area directory; use adjacent_date"), nil
	}
	entries, err := s.fs.ListDir(t.Descriptor().AreaName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var names []string
	for _, e := range entries {
		if !e.Dir && strings.HasSuffix(e.Name, naming.Ext) {
			names = append(names, e.Name)
		}
	}
	if len(names) == 0 {
		return mcp.NewToolResultText("no groups"), nil
	}
	return mcp.NewToolResultText(strings.Join(names, "\n")), nil
}

func (s *Server) adjacentDate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dateStr, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	from, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("bad date %q: %v", dateStr, err)), nil
	}
	granStr, err := req.RequireString("granularity")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var g group.Granularity
	switch granStr {
	case "day":
		g = group.GranDay
	case "month":
		g = group.GranMonth
	case "year":
		g = group.GranYear
	default:
		return mcp.NewToolResultError(fmt.Sprintf("bad granularity %q", granStr)), nil
	}
	dirStr, err := req.RequireString("direction")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var dir scan.Direction
	switch dirStr {
	case "forward":
		dir = scan.Forward
	case "backward":
		dir = scan.Backward
	default:
		return mcp.NewToolResultError(fmt.Sprintf("bad direction %q", dirStr)), nil
	}
	found := s.scanner.AdjacentDataDate(from, g, dir)
	return mcp.NewToolResultText(found.Format("2006-01-02")), nil
}

func (s *Server) readPayloadFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "daybook://payload-format",
			MIMEType: "text/markdown",
			Text:     PayloadFormatContract,
		},
	}, nil
}
