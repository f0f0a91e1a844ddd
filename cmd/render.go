package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tooley/tooley/internal/i18n"
	"github.com/tooley/tooley/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render <lesson.txt|->",
	Short: "Render lesson text to PDF and/or HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readLesson(cmd, args[0])
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		format, _ := flags.GetString("format")
		out, _ := flags.GetString("out")
		lang, _ := flags.GetString("lang")
		loc, ok := i18n.ParseLocale(lang)
		if !ok {
			return fmt.Errorf("unsupported language %q", lang)
		}

		meta := render.Meta{Locale: loc}
		meta.Subject, _ = flags.GetString("subject")
		meta.Topic, _ = flags.GetString("topic")
		meta.Ages, _ = flags.GetString("ages")
		meta.Duration, _ = flags.GetString("duration")
		meta.Country, _ = flags.GetString("country")

		stem := render.FileStem(meta.Topic)
		if meta.Topic == "" && args[0] != "-" {
			stem = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}

		r, err := render.NewFromConfig(cfg.Render, log)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		switch format {
		case "pdf", "both":
			res, err := r.PDF(text, meta)
			if err != nil {
				return fmt.Errorf("render pdf: %w", err)
			}
			path := filepath.Join(out, stem+".pdf")
			if err := os.WriteFile(path, res.PDF, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(w, "%s (%s)\n", path, res.Tier)
			if format == "pdf" {
				return nil
			}
			fallthrough
		case "html":
			page, err := r.HTML(text, meta)
			if err != nil {
				return fmt.Errorf("render html: %w", err)
			}
			path := filepath.Join(out, stem+".html")
			if err := os.WriteFile(path, page, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(w, path)
		default:
			return fmt.Errorf("unknown format %q (want pdf, html or both)", format)
		}
		return nil
	},
}

func readLesson(cmd *cobra.Command, name string) (string, error) {
	var raw []byte
	var err error
	if name == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("read lesson: %w", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return "", fmt.Errorf("lesson %s is empty", name)
	}
	return string(raw), nil
}

func init() {
	f := renderCmd.Flags()
	f.StringP("format", "f", "both", "pdf, html or both")
	f.StringP("out", "o", ".", "Output directory")
	f.String("lang", "en", "Label language (en or es)")
	f.String("subject", "", "Subject shown in the header")
	f.String("topic", "", "Topic shown in the header and used for the file name")
	f.String("ages", "", "Student ages")
	f.String("duration", "", "Duration in minutes")
	f.String("country", "", "Country or region")
}
