package commands

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bankimport/internal/detect"
	"github.com/cleared-dev/bankimport/internal/importer"
)

func newDetectCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "detect <file>",
		Short: "Show how a statement file will be read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, opts)
			if err != nil {
				return err
			}
			path, res, err := e.parseStatement(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "file:        %s\n", filepath.Base(path))
			fmt.Fprintf(out, "type:        %s\n", res.FileType)
			if res.FileType == detect.CSV {
				fmt.Fprintf(out, "delimiter:   %s\n", delimiterName(res.Delimiter))
				fmt.Fprintf(out, "header:      %t\n", res.HasHeader)
				fmt.Fprintf(out, "columns:     date=%d description=%d amount=%d category=%s\n",
					res.Mapping.Date, res.Mapping.Description, res.Mapping.Amount, columnName(res.Mapping.Category))
				fmt.Fprintf(out, "date format: %s\n", res.DateFormat)
			}
			fmt.Fprintf(out, "parsed:      %d\n", len(res.Transactions()))
			fmt.Fprintf(out, "skipped:     %d\n", len(res.Skipped()))
			for _, row := range res.Skipped() {
				fmt.Fprintf(out, "  line %d: %s\n", row.Line, row.Reason)
			}
			return nil
		},
	}
}

func delimiterName(r rune) string {
	switch r {
	case '\t':
		return "tab"
	case ',':
		return "comma"
	case ';':
		return "semicolon"
	}
	return strconv.QuoteRune(r)
}

func columnName(idx int) string {
	if idx == importer.NoColumn {
		return "none"
	}
	return strconv.Itoa(idx)
}
