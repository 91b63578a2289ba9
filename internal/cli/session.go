package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/aretw0/deeds/pkg/ports"
)

// ListSessions prints the ids held by store.
func ListSessions(ctx context.Context, store ports.SessionStore, w io.Writer) error {
	ids, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("error listing sessions: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(w, "No active sessions found.")
		return nil
	}

	fmt.Fprintln(w, "Active Sessions:")
	for _, id := range ids {
		fmt.Fprintln(w, "- "+id)
	}
	return nil
}

// InspectSession prints one session as indented JSON.
func InspectSession(ctx context.Context, store ports.SessionStore, id string, w io.Writer) error {
	s, err := store.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("error loading session '%s': %w", id, err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling session: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// RemoveSessions deletes every id, reporting each one, and returns the joined failures.
func RemoveSessions(ctx context.Context, store ports.SessionStore, ids []string, w io.Writer) error {
	var errs []error
	for _, id := range ids {
		if err := store.Delete(ctx, id); err != nil {
			fmt.Fprintf(w, "Error removing '%s': %v\n", id, err)
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(w, "Removed session '%s'\n", id)
	}
	return errors.Join(errs...)
}

// ListQuestions prints the saved questions as a table, or as JSON lines.
func ListQuestions(ctx context.Context, store ports.QuestionStore, asJSON bool, w io.Writer) error {
	questions, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("error listing questions: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		for _, q := range questions {
			if err := enc.Encode(q); err != nil {
				return err
			}
		}
		return nil
	}

	if len(questions) == 0 {
		fmt.Fprintln(w, "No saved questions.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSER\tSESSION\tSAVED\tQUESTION")
	for _, q := range questions {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n", q.ID, q.UserID, q.SessionID, q.CreatedAt.Format(time.DateTime), q.Text)
	}
	return tw.Flush()
}
