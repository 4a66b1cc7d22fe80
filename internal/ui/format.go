// ABOUTME: Terminal UI formatting for folio output.
// ABOUTME: Uses glamour for note messages and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/harper/folio/internal/models"
)

const dateLayout = "2006-01-02 15:04"

var (
	faint  = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

func FormatCategoryList(cats []models.Category) string {
	var sb strings.Builder

	for i, c := range cats {
		sb.WriteString(fmt.Sprintf("  %s %s %s\n",
			faint(fmt.Sprintf("%3d", i)),
			cyan(c.Name),
			faint(fmt.Sprintf("(%d)", c.NoteCount))))
	}

	return sb.String()
}

func FormatNoteListItem(index int, note *models.Note) string {
	var sb strings.Builder

	// Position, ID prefix and title
	idPrefix := note.ID.String()[:6]
	sb.WriteString(fmt.Sprintf("  %s  %s  %s%s\n",
		faint(fmt.Sprintf("%3d", index)),
		faint(idPrefix),
		bold(note.Title),
		attachmentMarks(note)))

	sb.WriteString(fmt.Sprintf("              %s %s\n",
		faint("Date:"),
		faint(note.Date.Local().Format(dateLayout))))

	return sb.String()
}

// attachmentMarks flags the optional payloads a note carries.
func attachmentMarks(note *models.Note) string {
	var marks []string
	if note.HasImage() {
		marks = append(marks, "image")
	}
	if note.AudioRef != "" {
		marks = append(marks, "audio")
	}
	if note.Location != nil {
		marks = append(marks, "location")
	}
	if len(marks) == 0 {
		return ""
	}
	return " " + yellow("["+strings.Join(marks, ", ")+"]")
}

func FormatNoteContent(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

func FormatNoteHeader(note *models.Note) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(note.Title)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(note.ID.String())))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Category:"), cyan(note.CategoryName)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Date:"), faint(note.Date.Local().Format(dateLayout))))

	if note.HasImage() {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Image:"), describeImage(note.Image)))
	}
	if note.AudioRef != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Audio:"), note.AudioRef))
	}
	if loc := note.Location; loc != nil {
		sb.WriteString(fmt.Sprintf("%s %.5f, %.5f\n", faint("Location:"), loc.Latitude, loc.Longitude))
	}

	sb.WriteString(Separator())
	return sb.String()
}

func describeImage(img *models.Image) string {
	size := fmt.Sprintf("%d bytes", len(img.Data))
	cfg, format, err := img.Probe()
	if err != nil {
		return fmt.Sprintf("%s %s", faint("["+img.MimeType+"]"), yellow(size+", undecodable"))
	}
	return fmt.Sprintf("%s %dx%d, %s", faint("["+format+"]"), cfg.Width, cfg.Height, size)
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}

func Empty(what string) string {
	return faint(fmt.Sprintf("No %s.", what)) + "\n"
}
