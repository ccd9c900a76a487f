package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/localnerve/jam-build-appstore/internal/models"
	"github.com/localnerve/jam-build-appstore/internal/services"
	"github.com/spf13/cobra"
)

var appFlags struct {
	store       string
	name        string
	title       string
	description string
	icon        string
	ownerUser   string
	ownerGuest  string
	visibility  string
	tools       []string
	extends     []string
}

var shareFlags struct {
	order       int
	featured    bool
	description string
}

var listFlags struct {
	store    string
	parent   string
	owner    string
	page     int
	pageSize int
}

var createAppCmd = &cobra.Command{
	Use:   "create-app <slug>",
	Short: "Create an app in its home store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		caps, err := models.NewJSON(models.Capabilities{Tools: appFlags.tools})
		if err != nil {
			return err
		}
		app := models.App{
			Slug:         args[0],
			Name:         appFlags.name,
			Title:        appFlags.title,
			Description:  appFlags.description,
			Icon:         appFlags.icon,
			StoreID:      appFlags.store,
			Visibility:   models.Visibility(appFlags.visibility),
			Capabilities: caps,
		}
		owner, err := ownerFlag(appFlags.ownerUser, appFlags.ownerGuest)
		if err != nil {
			return err
		}
		app.SetOwner(owner)

		created, err := catalog.CreateApp(cmd.Context(), app)
		if err != nil {
			return err
		}
		if len(appFlags.extends) > 0 {
			if _, err := services.SetExtends(cmd.Context(), db, created.ID, appFlags.extends); err != nil {
				return fmt.Errorf("app %s created, extends failed: %w", created.ID, err)
			}
		}
		return printJSON(cmd, created)
	},
}

var shareCmd = &cobra.Command{
	Use:   "share <store-id> <app-id>",
	Short: "Distribute an app into a store other than its home store",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := models.StoreInstall{
			StoreID:      args[0],
			AppID:        args[1],
			DisplayOrder: shareFlags.order,
			Featured:     shareFlags.featured,
		}
		if shareFlags.description != "" {
			in.CustomDescription = &shareFlags.description
		}
		row, err := catalog.UpsertStoreInstall(cmd.Context(), in)
		if err != nil {
			return err
		}
		return printJSON(cmd, row)
	},
}

var unshareCmd = &cobra.Command{
	Use:   "unshare <store-id> <app-id>",
	Short: "Withdraw an app from a store it was distributed into",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := catalog.RemoveStoreInstall(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Store install removed")
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List apps or stores as the caller sees them",
}

var listAppsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List apps in listing order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := services.AppFilter{StoreID: listFlags.store, OwnerID: listFlags.owner}
		page, err := catalog.ListApps(cmd.Context(), filter, caller(), listFlags.page, listFlags.pageSize)
		if err != nil {
			return err
		}
		return printJSON(cmd, page)
	},
}

var listStoresCmd = &cobra.Command{
	Use:   "stores",
	Short: "List stores",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := services.StoreFilter{ParentStoreID: listFlags.parent, OwnerID: listFlags.owner}
		page, err := catalog.ListStores(cmd.Context(), filter, caller(), listFlags.page, listFlags.pageSize)
		if err != nil {
			return err
		}
		return printJSON(cmd, page)
	},
}

func init() {
	f := createAppCmd.Flags()
	f.StringVar(&appFlags.store, "store", "", "home store id")
	f.StringVar(&appFlags.name, "name", "", "display name (defaults to the slug)")
	f.StringVar(&appFlags.title, "title", "", "title")
	f.StringVar(&appFlags.description, "description", "", "description")
	f.StringVar(&appFlags.icon, "icon", "", "icon url")
	f.StringVar(&appFlags.ownerUser, "owner-user", "", "owning member id")
	f.StringVar(&appFlags.ownerGuest, "owner-guest", "", "owning guest id")
	f.StringVar(&appFlags.visibility, "visibility", string(models.VisibilityPublic), "public, private or unlisted")
	f.StringSliceVar(&appFlags.tools, "tool", nil, "capability tool, repeatable")
	f.StringSliceVar(&appFlags.extends, "extends", nil, "id of an app this app extends, repeatable")
	_ = createAppCmd.MarkFlagRequired("store")

	s := shareCmd.Flags()
	s.IntVar(&shareFlags.order, "order", 0, "display order inside the store")
	s.BoolVar(&shareFlags.featured, "featured", false, "feature the app in the store")
	s.StringVar(&shareFlags.description, "description", "", "store specific description")

	for _, c := range []*cobra.Command{listAppsCmd, listStoresCmd} {
		c.Flags().StringVar(&listFlags.owner, "owner", "", "owner member or guest id")
		c.Flags().IntVar(&listFlags.page, "page", 1, "page number")
		c.Flags().IntVar(&listFlags.pageSize, "page-size", 20, "page size")
	}
	listAppsCmd.Flags().StringVar(&listFlags.store, "store", "", "store context")
	listStoresCmd.Flags().StringVar(&listFlags.parent, "parent", "", "parent store id")

	listCmd.AddCommand(listAppsCmd, listStoresCmd)
	rootCmd.AddCommand(createAppCmd, shareCmd, unshareCmd, listCmd)
}

// ownerFlag turns the owner flags into an owner. Neither set is a system owner.
func ownerFlag(userID, guestID string) (models.Owner, error) {
	switch {
	case userID != "" && guestID != "":
		return models.Owner{}, fmt.Errorf("--owner-user and --owner-guest are exclusive")
	case userID != "":
		return models.UserOwner(userID), nil
	case guestID != "":
		return models.GuestOwner(guestID), nil
	}
	return models.Owner{}, nil
}

func looksLikeID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
