package cmd

import (
	"github.com/spf13/cobra"

	"github.com/LuciCodesStuff/GP2040-CE/pkg/storage"
)

func newRepairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repair",
		Short: "Rewrite corrupt animation records with their defaults",
		Long: `Read the image the way a booting controller does and commit the result.

An animation record failing its checksum is replaced by the default
animation options. A gamepad record without its "is set" flag is left alone;
the controller serves defaults for it until the options are first saved.

Example:
  optstore repair --image ./eeprom.bin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := sessionFrom(cmd)
			if err != nil {
				return err
			}

			_, gamepadStatus := sess.storage.GetGamepadOptions()
			cmd.Printf("gamepad: %s\n", gamepadStatus)

			animation := storage.NewAnimationStorage(sess.storage, nil)
			_, animationStatus := animation.GetAnimationOptions()
			cmd.Printf("animation: %s\n", animationStatus)

			if animationStatus != storage.StatusHealed {
				cmd.Printf("nothing to repair\n")
				return nil
			}

			if err := sess.storage.Save(cmd.Context()); err != nil {
				return err
			}
			sess.logger.Info("animation record repaired", "media", sess.config.Media.Path)
			cmd.Printf("✅ animation defaults committed\n")
			return nil
		},
	}
}
