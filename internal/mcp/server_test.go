// ABOUTME: Tests for the MCP tool, resource and prompt handlers.
// ABOUTME: Calls handlers directly against a store over the in-memory repository.

package mcp

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/harper/folio/internal/models"
	"github.com/harper/folio/internal/repository/memory"
	"github.com/harper/folio/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st := store.New(memory.NewRepository())
	t.Cleanup(func() { _ = st.Close() })
	return NewServer(st, log.New(io.Discard))
}

func call(t *testing.T, s *Server, h mcp.ToolHandler, args string) *mcp.CallToolResult {
	t.Helper()
	res, err := s.serialized(h)(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Name: "test", Arguments: json.RawMessage(args)},
	})
	require.NoError(t, err)
	return res
}

func text(res *mcp.CallToolResult) string {
	return res.Content[0].(*mcp.TextContent).Text
}

func TestCategoryTools(t *testing.T) {
	s := newTestServer(t)

	for _, name := range []string{"Work", "Home"} {
		res := call(t, s, s.handleAddCategory, `{"name":"`+name+`"}`)
		require.False(t, res.IsError, text(res))
	}

	res := call(t, s, s.handleListCategories, `{}`)
	var cats []models.Category
	require.NoError(t, json.Unmarshal([]byte(text(res)), &cats))
	assert.Equal(t, []models.Category{{Name: "Home"}, {Name: "Work"}}, cats)

	res = call(t, s, s.handleRenameCategory, `{"name":"Work","new_name":"Office"}`)
	require.False(t, res.IsError, text(res))

	res = call(t, s, s.handleRemoveCategory, `{"name":"Home"}`)
	require.False(t, res.IsError, text(res))

	res = call(t, s, s.handleListCategories, `{}`)
	require.NoError(t, json.Unmarshal([]byte(text(res)), &cats))
	assert.Equal(t, []models.Category{{Name: "Office"}}, cats)

	res = call(t, s, s.handleRemoveCategory, `{"name":"Nowhere"}`)
	assert.True(t, res.IsError)
}

func TestNoteTools(t *testing.T) {
	s := newTestServer(t)
	call(t, s, s.handleAddCategory, `{"name":"A"}`)
	call(t, s, s.handleAddCategory, `{"name":"B"}`)

	res := call(t, s, s.handleAddNote, `{"category":"A","title":"Receipt","message":"lunch","latitude":1.5,"longitude":2.5}`)
	require.False(t, res.IsError, text(res))
	id := strings.TrimPrefix(text(res), "Created note ")

	res = call(t, s, s.handleAddNote, `{"category":"Nowhere","title":"Lost"}`)
	assert.True(t, res.IsError)

	res = call(t, s, s.handleListNotes, `{"category":"A","search":"LUNCH"}`)
	var views []noteView
	require.NoError(t, json.Unmarshal([]byte(text(res)), &views))
	require.Len(t, views, 1)
	assert.Equal(t, id, views[0].ID)
	require.NotNil(t, views[0].Location)
	assert.Equal(t, 1.5, views[0].Location.Latitude)

	res = call(t, s, s.handleUpdateNote, `{"id":"`+id+`","message":"dinner"}`)
	require.False(t, res.IsError, text(res))

	res = call(t, s, s.handleMoveNotes, `{"ids":["`+id+`"],"category":"B"}`)
	require.False(t, res.IsError, text(res))

	res = call(t, s, s.handleGetNote, `{"id":"`+id+`"}`)
	var view noteView
	require.NoError(t, json.Unmarshal([]byte(text(res)), &view))
	assert.Equal(t, "B", view.Category)
	assert.Equal(t, "dinner", view.Message)

	res = call(t, s, s.handleDeleteNotes, `{"ids":["`+id+`","`+id+`"]}`)
	require.False(t, res.IsError, text(res))
	assert.Equal(t, "Deleted 1 notes", text(res))

	res = call(t, s, s.handleGetNote, `{"id":"`+id+`"}`)
	assert.True(t, res.IsError)
	res = call(t, s, s.handleGetNote, `{"id":"not-a-uuid"}`)
	assert.True(t, res.IsError)
}

func TestAddNoteRequiresFullLocation(t *testing.T) {
	s := newTestServer(t)
	call(t, s, s.handleAddCategory, `{"name":"A"}`)

	for _, args := range []string{
		`{"category":"A","title":"Half","latitude":1.5}`,
		`{"category":"A","title":"Half","longitude":2.5}`,
	} {
		res := call(t, s, s.handleAddNote, args)
		assert.True(t, res.IsError, args)
	}

	res := call(t, s, s.handleListNotes, `{"category":"A"}`)
	var views []noteView
	require.NoError(t, json.Unmarshal([]byte(text(res)), &views))
	assert.Empty(t, views)
}

func TestRemoveCategoryReportsNoteCount(t *testing.T) {
	s := newTestServer(t)
	call(t, s, s.handleAddCategory, `{"name":"A"}`)
	call(t, s, s.handleAddNote, `{"category":"A","title":"One"}`)
	call(t, s, s.handleAddNote, `{"category":"A","title":"Two"}`)

	res := call(t, s, s.handleRemoveCategory, `{"name":"A"}`)
	require.False(t, res.IsError, text(res))
	assert.Equal(t, `Removed category "A" and 2 notes`, text(res))
}

func TestReadResource(t *testing.T) {
	s := newTestServer(t)
	call(t, s, s.handleAddCategory, `{"name":"Trips"}`)
	res := call(t, s, s.handleAddNote, `{"category":"Trips","title":"Niagara","message":"loud","audio_ref":"falls.m4a"}`)
	id := strings.TrimPrefix(text(res), "Created note ")

	out, err := s.handleReadResource(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: noteURIPrefix + id},
	})
	require.NoError(t, err)
	require.Len(t, out.Contents, 1)
	body := out.Contents[0].Text
	assert.Contains(t, body, "# Niagara")
	assert.Contains(t, body, "Trips")
	assert.Contains(t, body, "falls.m4a")

	_, err = s.handleReadResource(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: "memo://note/" + id},
	})
	assert.Error(t, err)
}

func TestPrompts(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.getSummarizeCategoryPrompt(ctx, &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{Arguments: map[string]string{}},
	})
	assert.Error(t, err)

	res, err := s.getSummarizeCategoryPrompt(ctx, &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{Arguments: map[string]string{"category": "Work"}},
	})
	require.NoError(t, err)
	assert.Contains(t, res.Messages[0].Content.(*mcp.TextContent).Text, "Work")
}
