// ABOUTME: MCP tools for category and note operations.
// ABOUTME: Maps NoteStore functionality to the MCP tool interface.

package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harper/folio/internal/models"
	"github.com/harper/folio/internal/repository"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// list_categories
	s.server.AddTool(&mcp.Tool{
		Name:        "list_categories",
		Description: "List categories with their note counts, sorted by name",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"filter": {"type": "string", "description": "Only categories whose name contains this text"}
			}
		}`),
	}, s.serialized(s.handleListCategories))

	// add_category
	s.server.AddTool(&mcp.Tool{
		Name:        "add_category",
		Description: "Create a new category",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"name": {"type": "string", "description": "Category name"}
			},
			"required": ["name"]
		}`),
	}, s.serialized(s.handleAddCategory))

	// remove_category
	s.server.AddTool(&mcp.Tool{
		Name:        "remove_category",
		Description: "Delete a category and every note filed under it",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"name": {"type": "string", "description": "Category name"}
			},
			"required": ["name"]
		}`),
	}, s.serialized(s.handleRemoveCategory))

	// rename_category
	s.server.AddTool(&mcp.Tool{
		Name:        "rename_category",
		Description: "Rename a category",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"name": {"type": "string", "description": "Current category name"},
				"new_name": {"type": "string", "description": "New category name"}
			},
			"required": ["name", "new_name"]
		}`),
	}, s.serialized(s.handleRenameCategory))

	// list_notes
	s.server.AddTool(&mcp.Tool{
		Name:        "list_notes",
		Description: "List the notes in a category, sorted by title, with optional filtering",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"category": {"type": "string", "description": "Category name"},
				"search": {"type": "string", "description": "Text to find in title or message (case and accent insensitive)"},
				"since": {"type": "string", "description": "Only notes dated at or after this RFC 3339 time"},
				"until": {"type": "string", "description": "Only notes dated before this RFC 3339 time"},
				"has_image": {"type": "boolean", "description": "Only notes with an image"},
				"has_audio": {"type": "boolean", "description": "Only notes with an audio reference"},
				"has_location": {"type": "boolean", "description": "Only notes with a location"}
			},
			"required": ["category"]
		}`),
	}, s.serialized(s.handleListNotes))

	// get_note
	s.server.AddTool(&mcp.Tool{
		Name:        "get_note",
		Description: "Get a note by ID",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID"},
				"include_image": {"type": "boolean", "description": "Include the image as base64"}
			},
			"required": ["id"]
		}`),
	}, s.serialized(s.handleGetNote))

	// add_note
	s.server.AddTool(&mcp.Tool{
		Name:        "add_note",
		Description: "Create a note in an existing category",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"category": {"type": "string", "description": "Category name"},
				"title": {"type": "string", "description": "Note title"},
				"message": {"type": "string", "description": "Note body"},
				"image": {"type": "string", "description": "Optional base64 encoded image"},
				"audio_ref": {"type": "string", "description": "Optional audio file reference"},
				"latitude": {"type": "number"},
				"longitude": {"type": "number"}
			},
			"required": ["category", "title"]
		}`),
	}, s.serialized(s.handleAddNote))

	// update_note
	s.server.AddTool(&mcp.Tool{
		Name:        "update_note",
		Description: "Replace fields of a note; the note keeps its ID and date",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID"},
				"title": {"type": "string", "description": "New title"},
				"message": {"type": "string", "description": "New message"},
				"category": {"type": "string", "description": "New category name"},
				"audio_ref": {"type": "string", "description": "New audio reference; empty clears it"}
			},
			"required": ["id"]
		}`),
	}, s.serialized(s.handleUpdateNote))

	// move_notes
	s.server.AddTool(&mcp.Tool{
		Name:        "move_notes",
		Description: "Move notes to another category",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"ids": {"type": "array", "items": {"type": "string"}, "description": "Note IDs"},
				"category": {"type": "string", "description": "Target category name"}
			},
			"required": ["ids", "category"]
		}`),
	}, s.serialized(s.handleMoveNotes))

	// delete_notes
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_notes",
		Description: "Delete notes by ID",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"ids": {"type": "array", "items": {"type": "string"}, "description": "Note IDs"}
			},
			"required": ["ids"]
		}`),
	}, s.serialized(s.handleDeleteNotes))
}

// noteView is the JSON shape of a note returned to agents.
type noteView struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	Message  string           `json:"message,omitempty"`
	Date     time.Time        `json:"date"`
	Category string           `json:"category"`
	AudioRef string           `json:"audio_ref,omitempty"`
	Location *models.Location `json:"location,omitempty"`
	Image    *imageView       `json:"image,omitempty"`
}

type imageView struct {
	MimeType string `json:"mime_type"`
	Size     int    `json:"size"`
	Data     string `json:"data,omitempty"`
}

func viewOf(n *models.Note, withImage bool) noteView {
	v := noteView{
		ID:       n.ID.String(),
		Title:    n.Title,
		Message:  n.Message,
		Date:     n.Date,
		Category: n.CategoryName,
		AudioRef: n.AudioRef,
		Location: n.Location,
	}
	if n.HasImage() {
		v.Image = &imageView{MimeType: n.Image.MimeType, Size: len(n.Image.Data)}
		if withImage {
			v.Image.Data = base64.StdEncoding.EncodeToString(n.Image.Data)
		}
	}
	return v
}

func textResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	res := textResult(format, args...)
	res.IsError = true
	return res
}

func jsonResult(v any) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}
}

// parseIDs parses every ID once, skipping repeats.
func parseIDs(raw []string) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, fmt.Errorf("invalid note id %q: %w", r, err)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// Tool handlers.
func (s *Server) handleListCategories(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Filter string `json:"filter"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	if err := s.store.LoadCategories(ctx, params.Filter); err != nil {
		return errorResult("failed to list categories: %v", err), nil
	}
	return jsonResult(s.store.Categories()), nil
}

func (s *Server) handleAddCategory(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	if err := s.store.AddCategory(ctx, params.Name); err != nil {
		return errorResult("failed to add category: %v", err), nil
	}
	return textResult("Created category %q", params.Name), nil
}

func (s *Server) handleRemoveCategory(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	i, err := s.categoryIndex(ctx, params.Name)
	if err != nil {
		return errorResult("failed to find category: %v", err), nil
	}
	count, err := s.store.NoteCountForCategory(i)
	if err != nil {
		return errorResult("failed to count notes: %v", err), nil
	}
	if err := s.store.RemoveCategory(ctx, i); err != nil {
		return errorResult("failed to remove category: %v", err), nil
	}
	return textResult("Removed category %q and %d notes", params.Name, count), nil
}

func (s *Server) handleRenameCategory(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Name    string `json:"name"`
		NewName string `json:"new_name"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	i, err := s.categoryIndex(ctx, params.Name)
	if err != nil {
		return errorResult("failed to find category: %v", err), nil
	}
	if err := s.store.UpdateCategory(ctx, i, params.NewName); err != nil {
		return errorResult("failed to rename category: %v", err), nil
	}
	return textResult("Renamed category %q to %q", params.Name, params.NewName), nil
}

func (s *Server) handleListNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Category    string `json:"category"`
		Search      string `json:"search"`
		Since       string `json:"since"`
		Until       string `json:"until"`
		HasImage    bool   `json:"has_image"`
		HasAudio    bool   `json:"has_audio"`
		HasLocation bool   `json:"has_location"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	filter := &repository.NoteFilter{
		Search:      params.Search,
		HasImage:    params.HasImage,
		HasAudio:    params.HasAudio,
		HasLocation: params.HasLocation,
	}
	var err error
	if filter.Since, err = parseTime(params.Since); err != nil {
		return errorResult("invalid since: %v", err), nil
	}
	if filter.Until, err = parseTime(params.Until); err != nil {
		return errorResult("invalid until: %v", err), nil
	}

	i, err := s.categoryIndex(ctx, params.Category)
	if err != nil {
		return errorResult("failed to find category: %v", err), nil
	}
	if err := s.store.LoadNotes(ctx, i, filter); err != nil {
		return errorResult("failed to list notes: %v", err), nil
	}

	notes := s.store.Notes()
	views := make([]noteView, len(notes))
	for k, n := range notes {
		views[k] = viewOf(n, false)
	}
	return jsonResult(views), nil
}

func parseTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, v)
}

func (s *Server) handleGetNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID           string `json:"id"`
		IncludeImage bool   `json:"include_image"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(params.ID)
	if err != nil {
		return errorResult("invalid note id: %v", err), nil
	}
	note, err := s.store.FindNote(ctx, id)
	if err != nil {
		return errorResult("failed to get note: %v", err), nil
	}
	return jsonResult(viewOf(note, params.IncludeImage)), nil
}

func (s *Server) handleAddNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Category  string   `json:"category"`
		Title     string   `json:"title"`
		Message   string   `json:"message"`
		Image     string   `json:"image"`
		AudioRef  string   `json:"audio_ref"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note := models.NewNote(params.Category, params.Title, params.Message)
	note.AudioRef = params.AudioRef
	if params.Image != "" {
		data, err := base64.StdEncoding.DecodeString(params.Image)
		if err != nil {
			return errorResult("invalid image: %v", err), nil
		}
		note.Image = models.NewImage(data)
	}
	if (params.Latitude == nil) != (params.Longitude == nil) {
		return errorResult("latitude and longitude must be given together"), nil
	}
	if params.Latitude != nil {
		note.Location = &models.Location{Latitude: *params.Latitude, Longitude: *params.Longitude}
	}

	if err := s.store.LoadCategories(ctx, ""); err != nil {
		return errorResult("failed to load categories: %v", err), nil
	}
	if err := s.store.AddNote(ctx, note); err != nil {
		return errorResult("failed to create note: %v", err), nil
	}
	return textResult("Created note %s", note.ID), nil
}

func (s *Server) handleUpdateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID       string  `json:"id"`
		Title    *string `json:"title"`
		Message  *string `json:"message"`
		Category *string `json:"category"`
		AudioRef *string `json:"audio_ref"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(params.ID)
	if err != nil {
		return errorResult("invalid note id: %v", err), nil
	}
	old, err := s.store.FindNote(ctx, id)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}

	edited := old.Clone()
	if params.Title != nil {
		edited.Title = *params.Title
	}
	if params.Message != nil {
		edited.Message = *params.Message
	}
	if params.Category != nil {
		edited.CategoryName = *params.Category
	}
	if params.AudioRef != nil {
		edited.AudioRef = *params.AudioRef
	}

	if err := s.store.LoadCategories(ctx, ""); err != nil {
		return errorResult("failed to load categories: %v", err), nil
	}
	if err := s.store.UpdateNote(ctx, old, edited); err != nil {
		return errorResult("failed to update note: %v", err), nil
	}
	return textResult("Updated note %s", edited.ID), nil
}

func (s *Server) handleMoveNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		IDs      []string `json:"ids"`
		Category string   `json:"category"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	notes, res := s.findAll(ctx, params.IDs)
	if res != nil {
		return res, nil
	}
	i, err := s.categoryIndex(ctx, params.Category)
	if err != nil {
		return errorResult("failed to find category: %v", err), nil
	}
	if err := s.store.MoveNotes(ctx, notes, i); err != nil {
		return errorResult("failed to move notes: %v", err), nil
	}
	return textResult("Moved %d notes to %q", len(notes), params.Category), nil
}

func (s *Server) handleDeleteNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		IDs []string `json:"ids"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	ids, err := parseIDs(params.IDs)
	if err != nil {
		return errorResult("%v", err), nil
	}
	notes := make([]*models.Note, len(ids))
	for i, id := range ids {
		notes[i] = &models.Note{ID: id}
	}
	if err := s.store.DeleteNotes(ctx, notes); err != nil {
		return errorResult("failed to delete notes: %v", err), nil
	}
	return textResult("Deleted %d notes", len(notes)), nil
}

// findAll resolves every ID or returns an error result.
func (s *Server) findAll(ctx context.Context, raw []string) ([]*models.Note, *mcp.CallToolResult) {
	ids, err := parseIDs(raw)
	if err != nil {
		return nil, errorResult("%v", err)
	}
	notes := make([]*models.Note, len(ids))
	for i, id := range ids {
		if notes[i], err = s.store.FindNote(ctx, id); err != nil {
			return nil, errorResult("failed to find note: %v", err)
		}
	}
	return notes, nil
}
