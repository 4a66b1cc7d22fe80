// ABOUTME: MCP prompts for common note-filing workflows.
// ABOUTME: Provides pre-configured prompts for AI agent interactions.

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "organize-notes",
		Description: "Get suggestions for regrouping notes into better categories",
	}, s.getOrganizeNotesPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "summarize-category",
		Description: "Summarize every note filed under one category",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "category",
				Description: "Category name",
				Required:    true,
			},
		},
	}, s.getSummarizeCategoryPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "file-note",
		Description: "Write a new note and file it under the best matching category",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "topic",
				Description: "What the note is about",
				Required:    true,
			},
		},
	}, s.getFileNotePrompt)
}

func userPrompt(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: text,
				},
			},
		},
	}
}

func (s *Server) getOrganizeNotesPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return userPrompt(`Help me organize my notes by:

1. Use the list_categories tool to see every category and its note count
2. Use the list_notes tool on each category to read the titles and messages
3. Identify notes that are filed under the wrong category
4. Suggest categories to merge, split or rename
5. Point out empty categories that could be removed

Give specific recommendations with note IDs. Apply them only after I confirm,
using move_notes, rename_category and remove_category.`), nil
}

func (s *Server) getSummarizeCategoryPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	category, ok := req.Params.Arguments["category"]
	if !ok || category == "" {
		return nil, fmt.Errorf("category argument is required")
	}

	return userPrompt(fmt.Sprintf(`Please summarize the notes in the category: %s

1. Use the list_notes tool with category %q
2. Use get_note for any note whose message needs a closer read
3. Write a concise summary covering:
   - Recurring themes
   - Open items or follow-ups
   - Notes with images, audio or locations worth revisiting`, category, category)), nil
}

func (s *Server) getFileNotePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic, ok := req.Params.Arguments["topic"]
	if !ok || topic == "" {
		topic = "something I want to remember"
	}

	return userPrompt(fmt.Sprintf(`Write a short note about: %s

1. Use the list_categories tool to see the existing categories
2. Pick the category that fits best; if none fits, create one with add_category
3. Use the add_note tool with a clear title and the note as the message`, topic)), nil
}
