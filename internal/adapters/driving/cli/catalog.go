package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the entities known to the index",
}

var catalogSystemsCmd = &cobra.Command{
	Use:   "systems",
	Short: "List systems",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := ensureIndex(cmd); err != nil {
			return err
		}
		systems, err := catalogService.ListSystems(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing systems: %w", err)
		}
		for _, sys := range systems {
			cmd.Printf("  %s  %s\n", sys.ID, sys.Name)
		}
		return nil
	},
}

var catalogFormatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List data formats",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := ensureIndex(cmd); err != nil {
			return err
		}
		formats, err := catalogService.ListFormats(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing formats: %w", err)
		}
		for _, f := range formats {
			cmd.Printf("  %s  %s\n", f.ID, f.Name)
		}
		return nil
	},
}

var catalogMethodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List transmission methods",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := ensureIndex(cmd); err != nil {
			return err
		}
		methods, err := catalogService.ListMethods(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing methods: %w", err)
		}
		for _, m := range methods {
			cmd.Printf("  %s  %s\n", m.ID, m.Name)
		}
		return nil
	},
}

var catalogInterfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "List interfaces",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := ensureIndex(cmd); err != nil {
			return err
		}
		interfaces, err := catalogService.ListInterfaces(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing interfaces: %w", err)
		}
		for _, iface := range interfaces {
			cmd.Printf("  %s  %s\n", iface.ID, iface.Name)
		}
		return nil
	},
}

var catalogVocabularyCmd = &cobra.Command{
	Use:   "vocabulary",
	Short: "List the names and aliases the query engine recognizes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := ensureIndex(cmd); err != nil {
			return err
		}
		entries := holder.Current().Vocabulary()
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Norm < entries[j].Norm
		})
		for _, e := range entries {
			cmd.Printf("  %-30s %-10s %s\n", e.Norm, e.Kind, e.Name)
		}
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogSystemsCmd)
	catalogCmd.AddCommand(catalogFormatsCmd)
	catalogCmd.AddCommand(catalogMethodsCmd)
	catalogCmd.AddCommand(catalogInterfacesCmd)
	catalogCmd.AddCommand(catalogVocabularyCmd)
	rootCmd.AddCommand(catalogCmd)
}
