package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tooley/tooley/internal/library"
	"github.com/tooley/tooley/internal/render"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Browse the shared lesson library",
}

// withLibrary opens the configured library for the duration of fn.
func withLibrary(ctx context.Context, fn func(*library.Library) error) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	lib, err := openLibrary(ctx, st)
	if err != nil {
		return err
	}
	if lib.closer != nil {
		defer lib.closer.Close()
	}
	if !lib.lib.Enabled() {
		return errors.New("the shared library is disabled (library backend is none)")
	}
	return fn(lib.lib)
}

func printRecords(w io.Writer, recs []library.Record) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No lessons found.")
		return
	}
	fmt.Fprintf(w, "%-30s  %-16s  %-12s  %-7s  %-14s  %s\n",
		"ID", "Created", "Subject", "Ages", "Country", "Topic")
	fmt.Fprintln(w, strings.Repeat("─", 100))
	for _, r := range recs {
		fmt.Fprintf(w, "%-30s  %-16s  %-12s  %-7s  %-14s  %s\n",
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			truncate(r.Subject, 12),
			r.Ages,
			truncate(r.Country, 14),
			r.Topic)
	}
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent shared lessons",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withLibrary(cmd.Context(), func(lib *library.Library) error {
			recs, err := lib.ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printRecords(cmd.OutOrStdout(), recs)
			return nil
		})
	},
}

var librarySearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find shared lessons by subject, ages or country",
	RunE: func(cmd *cobra.Command, args []string) error {
		var q library.Query
		q.Subject, _ = cmd.Flags().GetString("subject")
		q.Ages, _ = cmd.Flags().GetString("ages")
		q.Country, _ = cmd.Flags().GetString("country")
		limit, _ := cmd.Flags().GetInt("limit")
		return withLibrary(cmd.Context(), func(lib *library.Library) error {
			recs, err := lib.Search(cmd.Context(), q, limit)
			if err != nil {
				return err
			}
			printRecords(cmd.OutOrStdout(), recs)
			return nil
		})
	},
}

var libraryGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print a shared lesson, or save it as a PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pdfPath, _ := cmd.Flags().GetString("pdf")
		return withLibrary(cmd.Context(), func(lib *library.Library) error {
			rec, err := lib.Get(cmd.Context(), args[0])
			if errors.Is(err, library.ErrNotFound) {
				return fmt.Errorf("lesson %s not found", args[0])
			}
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if pdfPath == "" {
				fmt.Fprintf(w, "%s by %s (%s, ages %s)\n\n%s\n", rec.Topic, rec.AuthorName, rec.Subject, rec.Ages, rec.Content)
				return nil
			}
			r, err := render.NewFromConfig(cfg.Render, log)
			if err != nil {
				return err
			}
			meta := render.Meta{Subject: rec.Subject, Topic: rec.Topic, Ages: rec.Ages, Country: rec.Country}
			if rec.Duration > 0 {
				meta.Duration = fmt.Sprint(rec.Duration)
			}
			res, err := r.PDF(rec.Content, meta)
			if err != nil {
				return fmt.Errorf("render pdf: %w", err)
			}
			if err := os.WriteFile(pdfPath, res.PDF, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(w, pdfPath)
			return nil
		})
	},
}

var libraryStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show library totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLibrary(cmd.Context(), func(lib *library.Library) error {
			st, err := lib.Stats(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Lessons:    %d\n", st.Total)
			if !st.UpdatedAt.IsZero() {
				fmt.Fprintf(w, "Updated:    %s\n", st.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
			}
			printCounts(w, "Countries", st.Countries)
			printCounts(w, "Subjects", st.Subjects)
			return nil
		})
	},
}

func printCounts(w io.Writer, title string, counts []library.Count) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	fmt.Fprintln(w, strings.Repeat("─", 40))
	for _, c := range counts {
		fmt.Fprintf(w, "%-30s  %6d\n", truncate(c.Name, 30), c.Count)
	}
}

var libraryArchiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "List lessons kept locally because the library was unreachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		archived, err := st.ArchiveRepo().List(cmd.Context(), limit)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if len(archived) == 0 {
			fmt.Fprintln(w, "Nothing archived.")
			return nil
		}
		fmt.Fprintf(w, "%-30s  %-16s  %-12s  %-20s  %s\n", "ID", "Archived", "Subject", "Topic", "Reason")
		fmt.Fprintln(w, strings.Repeat("─", 100))
		for _, a := range archived {
			fmt.Fprintf(w, "%-30s  %-16s  %-12s  %-20s  %s\n",
				a.LessonID,
				a.Timestamp.Local().Format("2006-01-02 15:04"),
				truncate(a.Subject, 12),
				truncate(a.Topic, 20),
				a.Reason)
		}
		return nil
	},
}

func init() {
	libraryListCmd.Flags().IntP("limit", "n", 20, "Number of lessons to show")
	librarySearchCmd.Flags().IntP("limit", "n", 20, "Number of lessons to show")
	librarySearchCmd.Flags().String("subject", "", "Subject, e.g. Mathematics")
	librarySearchCmd.Flags().String("ages", "", "Age range, e.g. 9-11")
	librarySearchCmd.Flags().String("country", "", "Country")
	libraryGetCmd.Flags().String("pdf", "", "Write the lesson as a PDF to this path")
	libraryArchiveCmd.Flags().IntP("limit", "n", 20, "Number of lessons to show")

	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(librarySearchCmd)
	libraryCmd.AddCommand(libraryGetCmd)
	libraryCmd.AddCommand(libraryStatsCmd)
	libraryCmd.AddCommand(libraryArchiveCmd)
}
