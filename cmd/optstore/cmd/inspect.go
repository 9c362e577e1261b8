package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/LuciCodesStuff/GP2040-CE/pkg/storage"
)

func newInspectCmd() *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Decode every record of an option image",
		Long: `Decode the gamepad, board, LED and animation records of an option image.

Validated records that are missing or corrupt are shown with the defaults a
controller would use in their place. Nothing is written to the image.

Examples:
  optstore inspect --image ./eeprom.bin
  optstore inspect --record animation --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := sessionFrom(cmd)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			records, _ := cmd.Flags().GetStringSlice("record")

			report, err := filterReport(sess.storage.Inspect(), records)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), report, format)
		},
	}

	inspectCmd.Flags().StringP("format", "f", "yaml", "Output format (yaml, json or table)")
	inspectCmd.Flags().StringSliceP("record", "r", nil, "Records to show (gamepad, board, led, animation). Default: all")
	return inspectCmd
}

// filterReport keeps the slots named in records, all of them when records is
// empty
func filterReport(report storage.Report, records []string) (storage.Report, error) {
	if len(records) == 0 {
		return report, nil
	}

	want := make(map[storage.Record]bool, len(records))
	for _, name := range records {
		record := storage.Record(name)
		if storage.RecordSize(record) < 0 {
			return storage.Report{}, fmt.Errorf("unknown record %q", name)
		}
		want[record] = true
	}

	filtered := storage.Report{Size: report.Size}
	for _, slot := range report.Slots {
		if want[slot.Record] {
			filtered.Slots = append(filtered.Slots, slot)
		}
	}
	return filtered, nil
}

func writeReport(w io.Writer, report storage.Report, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "table":
		return writeReportTable(w, report)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeReportTable(w io.Writer, report storage.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "RECORD\tINDEX\tSIZE\tPOLICY\tSTATUS\n")
	for _, slot := range report.Slots {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", slot.Record, slot.Index, slot.Size, slot.Policy, slot.Status)
	}
	return tw.Flush()
}
