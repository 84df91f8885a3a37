package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bankimport/internal/detect"
	"github.com/cleared-dev/bankimport/internal/importer"
)

// sniffBytes is how much of a file scan reads to classify it.
const sniffBytes = 4096

func newScanCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "List statement files waiting in import/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv(cmd, opts)
			if err != nil {
				return err
			}
			files, err := importer.Scan(e.repoRoot)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintln(out, "No statement files in import/")
				return nil
			}
			for _, f := range files {
				ft, err := sniff(f.Path, f.Name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-40s %-5s %8d bytes\n", f.Name, ft, f.Size)
			}
			return nil
		},
	}
}

func sniff(path, name string) (detect.FileType, error) {
	f, err := os.Open(path)
	if err != nil {
		return detect.Unknown, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	buf := make([]byte, sniffBytes)
	n, _ := f.Read(buf)
	return detect.Detect(name, string(buf[:n])), nil
}
