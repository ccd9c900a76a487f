package cmd

import (
	"fmt"
	"strings"

	"github.com/localnerve/jam-build-appstore/internal/models"
	"github.com/localnerve/jam-build-appstore/internal/services"
	"github.com/spf13/cobra"
)

var storeFlags struct {
	name        string
	title       string
	description string
	parent      string
	ownerUser   string
	ownerGuest  string
	visibility  string
	domain      string
	depth       int
}

var createStoreCmd = &cobra.Command{
	Use:   "create-store <slug>",
	Short: "Create a store, optionally nested under a parent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := models.Store{
			Slug:        args[0],
			Name:        storeFlags.name,
			Title:       storeFlags.title,
			Description: storeFlags.description,
			Visibility:  models.Visibility(storeFlags.visibility),
		}
		if storeFlags.parent != "" {
			store.ParentStoreID = &storeFlags.parent
		}
		if storeFlags.domain != "" {
			store.Domain = &storeFlags.domain
		}
		owner, err := ownerFlag(storeFlags.ownerUser, storeFlags.ownerGuest)
		if err != nil {
			return err
		}
		store.SetOwner(owner)

		created, err := catalog.CreateStore(cmd.Context(), store)
		if err != nil {
			return err
		}
		return printJSON(cmd, created)
	},
}

var setParentCmd = &cobra.Command{
	Use:   "set-parent <store-id> [parent-id]",
	Short: "Move a store under a parent, or make it a root without one",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		parent := ""
		if len(args) == 2 {
			parent = args[1]
		}
		if err := catalog.SetStoreParent(cmd.Context(), args[0], parent); err != nil {
			return err
		}
		return ancestorsCmd.RunE(cmd, args[:1])
	},
}

var setDefaultCmd = &cobra.Command{
	Use:   "set-default <store-id> [app-id]",
	Short: "Set or clear the app a store lists first",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := ""
		if len(args) == 2 {
			app = args[1]
		}
		if err := catalog.SetStoreDefaultApp(cmd.Context(), args[0], app); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Default app updated")
		return nil
	},
}

var ancestorsCmd = &cobra.Command{
	Use:   "ancestors <store-id>",
	Short: "Print a store's ancestor chain, nearest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chain, err := catalog.Ancestors(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(chain, " -> "))
		return nil
	},
}

var expandCmd = &cobra.Command{
	Use:   "expand [store-id|slug]",
	Short: "Print a store expanded to a nested depth for the caller",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lookup := services.StoreLookup{Domain: storeFlags.domain, Depth: storeFlags.depth, SkipCache: true}
		switch {
		case len(args) == 0 && lookup.Domain == "":
			return fmt.Errorf("a store id, slug or --domain is required")
		case len(args) == 0:
		case looksLikeID(args[0]):
			lookup.ID = args[0]
		default:
			lookup.Slug = args[0]
		}
		view, err := catalog.GetStore(cmd.Context(), lookup, caller())
		if err != nil {
			return err
		}
		return printJSON(cmd, view)
	},
}

func init() {
	f := createStoreCmd.Flags()
	f.StringVar(&storeFlags.name, "name", "", "display name (defaults to the slug)")
	f.StringVar(&storeFlags.title, "title", "", "title")
	f.StringVar(&storeFlags.description, "description", "", "description")
	f.StringVar(&storeFlags.parent, "parent", "", "parent store id")
	f.StringVar(&storeFlags.ownerUser, "owner-user", "", "owning member id")
	f.StringVar(&storeFlags.ownerGuest, "owner-guest", "", "owning guest id")
	f.StringVar(&storeFlags.visibility, "visibility", string(models.VisibilityPublic), "public, private or unlisted")
	f.StringVar(&storeFlags.domain, "domain", "", "domain the store serves")

	expandCmd.Flags().IntVar(&storeFlags.depth, "depth", 0, "nested expansion depth")
	expandCmd.Flags().StringVar(&storeFlags.domain, "domain", "", "resolve the store serving this domain")

	rootCmd.AddCommand(createStoreCmd, setParentCmd, setDefaultCmd, ancestorsCmd, expandCmd)
}
