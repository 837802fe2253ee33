package cli

import (
	"fmt"
	"io"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driving"
)

// uploadedLayout formats upload times in listings.
const uploadedLayout = "2006-01-02 15:04"

// renderReply writes a chat reply as plain text.
func renderReply(w io.Writer, reply *driving.Reply) {
	if reply == nil {
		return
	}

	switch reply.Kind {
	case driving.ReplyResults:
		renderResults(w, reply)
	case driving.ReplySuggestions:
		fmt.Fprintln(w, reply.Message)
		fmt.Fprintln(w, "Did you mean:")
		for _, s := range reply.Suggestions {
			fmt.Fprintf(w, "  [%s] %s\n", s.Key, s.Entry.FileName)
		}
		fmt.Fprintln(w, "Pick one with /select:<key>.")
	case driving.ReplyEntry:
		if reply.Entry != nil {
			renderEntry(w, *reply.Entry)
		}
	case driving.ReplyIndexes:
		renderIndexes(w, reply)
	default:
		fmt.Fprintln(w, reply.Message)
	}
}

func renderResults(w io.Writer, reply *driving.Reply) {
	page := reply.Results
	if page == nil {
		return
	}
	label := reply.Query
	if reply.Topic != "" {
		label = "index " + reply.Topic
	}
	fmt.Fprintf(w, "Results for %q (page %d of %d, %d total):\n",
		label, page.Index+1, page.TotalPages, page.Total)
	for _, e := range page.Items {
		fmt.Fprintf(w, "  [%d] %s\n", e.ID, e.FileName)
	}
	if hint := navHint(page.HasPrev, page.HasNext); hint != "" {
		fmt.Fprintln(w, hint)
	}
}

func renderIndexes(w io.Writer, reply *driving.Reply) {
	page := reply.Indexes
	if page == nil {
		return
	}
	fmt.Fprintf(w, "Indexes (%s, page %d of %d):\n",
		reply.Language.Description(), page.Index+1, page.TotalPages)
	for _, def := range page.Items {
		fmt.Fprintf(w, "  %-12s %s\n", def.Key, def.DisplayName)
	}
	fmt.Fprintln(w, "Browse one with /index:<key>.")
}

func renderEntry(w io.Writer, e domain.CatalogEntry) {
	fmt.Fprintf(w, "[%d] %s\n", e.ID, e.FileName)
	fmt.Fprintf(w, "  Reference: %s\n", e.FileReference)
	if !e.UploadedAt.IsZero() {
		fmt.Fprintf(w, "  Uploaded:  %s\n", e.UploadedAt.Local().Format(uploadedLayout))
	}
}

func navHint(hasPrev, hasNext bool) string {
	switch {
	case hasPrev && hasNext:
		return "More: /prev /next"
	case hasNext:
		return "More: /next"
	case hasPrev:
		return "More: /prev"
	default:
		return ""
	}
}
