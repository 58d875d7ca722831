package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"acc-portal/internal/client"
	"acc-portal/internal/domain/site"

	"github.com/spf13/cobra"
)

var (
	sectionsAPI      string
	sectionsPage     string
	sectionsEmail    string
	sectionsPassword string
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Inspect and reorder page sections through a running API",
}

var sectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the sections of a page in display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := site.ParsePage(sectionsPage)
		if err != nil {
			return err
		}
		store, err := newClientStore()
		if err != nil {
			return err
		}
		if err := store.Sections.Fetch(cmd.Context()); err != nil {
			return fmt.Errorf("fetch sections: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ORDER\tID\tTYPE\tSOURCE\tTITLE")
		for _, s := range store.SectionsFor(page) {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", s.Order, s.ID, s.Type, s.SourceType, s.Title)
		}
		return w.Flush()
	},
}

var sectionsReorderCmd = &cobra.Command{
	Use:   "reorder ID...",
	Short: "Set the order of a page's sections (editor credentials required)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := site.ParsePage(sectionsPage)
		if err != nil {
			return err
		}
		if sectionsEmail == "" || sectionsPassword == "" {
			return errors.New("--email and --password are required")
		}
		store, err := newClientStore()
		if err != nil {
			return err
		}
		if _, err := store.Client().Login(cmd.Context(), sectionsEmail, sectionsPassword); err != nil {
			return fmt.Errorf("login: %w", err)
		}
		list, err := store.ReorderSections(cmd.Context(), page, args)
		if err != nil {
			return fmt.Errorf("reorder: %w", err)
		}
		for _, s := range list {
			fmt.Printf("%d. %s (%s)\n", s.Order, s.Title, s.ID)
		}
		return nil
	},
}

// newClientStore talks to --api, or to the configured public URL and API
// prefix when the flag is empty.
func newClientStore() (*client.Store, error) {
	base := sectionsAPI
	if base == "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, fmt.Errorf("resolve API URL (or pass --api): %w", err)
		}
		base = cfg.PublicURL + cfg.APIPrefix
	}
	return client.NewStore(client.New(base, nil)), nil
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
	sectionsCmd.AddCommand(sectionsListCmd, sectionsReorderCmd)

	sectionsCmd.PersistentFlags().StringVar(&sectionsAPI, "api", "", "API base URL, e.g. http://localhost:3001/api")
	sectionsCmd.PersistentFlags().StringVar(&sectionsPage, "page", string(site.PageHome), "page: home, about, solutions, contact or blog")
	sectionsReorderCmd.Flags().StringVar(&sectionsEmail, "email", "", "editor email")
	sectionsReorderCmd.Flags().StringVar(&sectionsPassword, "password", "", "editor password")
}
