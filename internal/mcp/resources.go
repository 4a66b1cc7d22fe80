// ABOUTME: MCP resources for exposing notes as readable resources.
// ABOUTME: Allows AI agents to access note content via the folio:// URI scheme.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const noteURIPrefix = "folio://note/"

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: noteURIPrefix + "{id}",
			Name:        "Note",
			Description: "Access individual notes by ID",
			MIMEType:    "text/markdown",
		},
		s.handleReadResource,
	)
}

func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	raw, ok := strings.CutPrefix(req.Params.URI, noteURIPrefix)
	if !ok {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid note id in %s: %w", req.Params.URI, err)
	}

	s.mu.Lock()
	note, err := s.store.FindNote(ctx, id)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", note.Title))
	sb.WriteString(fmt.Sprintf("**Category:** %s  \n", note.CategoryName))
	sb.WriteString(fmt.Sprintf("**Date:** %s\n", note.Date.Format("2006-01-02 15:04 MST")))
	if note.AudioRef != "" {
		sb.WriteString(fmt.Sprintf("**Audio:** %s\n", note.AudioRef))
	}
	if loc := note.Location; loc != nil {
		sb.WriteString(fmt.Sprintf("**Location:** %.5f, %.5f\n", loc.Latitude, loc.Longitude))
	}
	if note.HasImage() {
		sb.WriteString(fmt.Sprintf("**Image:** %s, %d bytes\n", note.Image.MimeType, len(note.Image.Data)))
	}
	sb.WriteString("\n")
	sb.WriteString(note.Message)

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     sb.String(),
			},
		},
	}, nil
}
