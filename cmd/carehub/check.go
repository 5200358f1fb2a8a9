package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/carehub/content"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [catalog.yaml]",
		Short: "Validate a catalog file and report dangling references",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				path = cfg.CatalogPath
			}

			var (
				cat  *content.Catalog
				err  error
				name = "embedded catalog"
			)
			if path != "" {
				cat, err = content.LoadFile(path)
				name = path
			} else {
				cat, err = content.Default()
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			refs := content.RefErrors(cat.Validate())
			for _, r := range refs {
				fmt.Fprintln(out, r.Error())
			}
			if len(refs) > 0 {
				return fmt.Errorf("%s: %d dangling references", name, len(refs))
			}
			fmt.Fprintf(out, "%s: %d conditions, %d posts, %d care services, %d lab panels, all references resolve\n",
				name, len(cat.Conditions()), len(cat.BlogPosts()), len(cat.CareServices()), len(cat.LabsPanels()))
			return nil
		},
	}
}
