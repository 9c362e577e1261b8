package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that every validated record is intact",
		Long: `Check the validated records of an option image without modifying it.

The gamepad record must carry its "is set" flag and the animation record a
matching checksum. The command exits non-zero when either check fails.
Board and LED records are not validated and always pass.

Example:
  optstore verify --image ./eeprom.bin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := sessionFrom(cmd)
			if err != nil {
				return err
			}

			report := sess.storage.Inspect()
			if err := writeReportTable(cmd.OutOrStdout(), report); err != nil {
				return err
			}

			invalid := report.Invalid()
			if len(invalid) == 0 {
				cmd.Printf("✅ all records valid\n")
				return nil
			}

			names := make([]string, 0, len(invalid))
			for _, slot := range invalid {
				names = append(names, string(slot.Record))
			}
			return fmt.Errorf("%d invalid record(s): %v", len(invalid), names)
		},
	}
}
