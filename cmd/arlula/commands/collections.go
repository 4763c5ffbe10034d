package commands

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/arlula-client/internal/constants"
	"github.com/fivetwenty-io/arlula-client/pkg/arlula"
)

// NewCollectionsCommand creates the collections command group.
func NewCollectionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"collection"},
		Short:   "Manage STAC collections",
		Long:    "Create and manage STAC collections of ordered datasets",
	}

	cmd.AddCommand(newCollectionsListCommand())
	cmd.AddCommand(newCollectionsGetCommand())
	cmd.AddCommand(newCollectionsCreateCommand())
	cmd.AddCommand(newCollectionsUpdateCommand())
	cmd.AddCommand(newCollectionsDeleteCommand())
	cmd.AddCommand(newCollectionsItemsCommand())
	cmd.AddCommand(newCollectionsItemCommand())
	cmd.AddCommand(newCollectionsAddItemCommand())
	cmd.AddCommand(newCollectionsRemoveItemCommand())

	return cmd
}

func newCollectionsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List collections",
		Long:  "List the STAC collections visible to the configured credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			list, err := client.Collections().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list collections: %w", err)
			}

			return render(cmd.OutOrStdout(), list, func(table *tablewriter.Table) {
				table.Header("ID", "Title", "Description", "Keywords")

				for _, collection := range list.Collections {
					_ = table.Append(
						collection.ID,
						orNotAvailable(collection.Title),
						collection.Description,
						strings.Join(collection.Keywords, ", "),
					)
				}
			})
		},
	}
}

func newCollectionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get COLLECTION_ID",
		Short: "Show a collection",
		Long:  "Show the details of a single STAC collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			collection, err := client.Collections().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get collection: %w", err)
			}

			return renderCollection(cmd.OutOrStdout(), collection)
		},
	}
}

func newCollectionsCreateCommand() *cobra.Command {
	var (
		title       string
		description string
		keywords    []string
		team        string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a collection",
		Long:  "Create a STAC collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := arlula.NewCollectionCreateRequest(title, description).WithKeywords(keywords...)
			if team != "" {
				req = req.WithTeam(team)
			}

			if !req.Valid() {
				return arlula.ErrInvalidCollectionRequest
			}

			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			collection, err := client.Collections().Create(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to create collection: %w", err)
			}

			return renderCollection(cmd.OutOrStdout(), collection)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "collection title (required)")
	cmd.Flags().StringVar(&description, "description", "", "collection description (required)")
	cmd.Flags().StringSliceVar(&keywords, "keyword", nil, "search keyword (repeatable)")
	cmd.Flags().StringVar(&team, "team", "", "team that owns the collection")

	return cmd
}

func newCollectionsUpdateCommand() *cobra.Command {
	var (
		title       string
		description string
		keywords    []string
	)

	cmd := &cobra.Command{
		Use:   "update COLLECTION_ID",
		Short: "Update a collection",
		Long:  "Replace the title, description and keywords of a STAC collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := arlula.NewCollectionUpdateRequest(title, description).WithKeywords(keywords...)
			if !req.Valid() {
				return arlula.ErrInvalidCollectionRequest
			}

			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			collection, err := client.Collections().Update(cmd.Context(), args[0], req)
			if err != nil {
				return fmt.Errorf("failed to update collection: %w", err)
			}

			return renderCollection(cmd.OutOrStdout(), collection)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new collection title (required)")
	cmd.Flags().StringVar(&description, "description", "", "new collection description (required)")
	cmd.Flags().StringSliceVar(&keywords, "keyword", nil, "search keyword (repeatable)")

	return cmd
}

func newCollectionsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete COLLECTION_ID",
		Short: "Delete a collection",
		Long:  "Delete a STAC collection. The datasets it references are not affected",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			err = client.Collections().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete collection: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted collection %s\n", args[0])

			return nil
		},
	}
}

func newCollectionsItemsCommand() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "items COLLECTION_ID",
		Short: "List the items of a collection",
		Long:  "List the STAC items of a collection one page at a time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			items, err := client.Collections().ListItems(cmd.Context(), args[0], page)
			if err != nil {
				return fmt.Errorf("failed to list collection items: %w", err)
			}

			return render(cmd.OutOrStdout(), items, func(table *tablewriter.Table) {
				table.Header("ID", "Datetime", "CRS", "Assets")

				for _, item := range items.Features {
					_ = table.Append(item.ID, itemDatetime(item), orNotAvailable(item.CRS), assetKeys(item.Assets))
				}
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page number, starting at 0")

	return cmd
}

func newCollectionsItemCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "item COLLECTION_ID ITEM_ID",
		Short: "Show a collection item",
		Long:  "Show a single STAC item of a collection",
		Args:  cobra.ExactArgs(2), //nolint:mnd // collection and item
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			item, err := client.Collections().GetItem(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to get collection item: %w", err)
			}

			return renderItem(cmd.OutOrStdout(), item)
		},
	}
}

func newCollectionsAddItemCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-item COLLECTION_ID DATASET_ID",
		Short: "Add a dataset to a collection",
		Long:  "Add an ordered dataset to a collection as a STAC item",
		Args:  cobra.ExactArgs(2), //nolint:mnd // collection and dataset
		RunE: func(cmd *cobra.Command, args []string) error {
			req := arlula.NewItemAddRequest(args[1])
			if !req.Valid() {
				return arlula.ErrInvalidItemRequest
			}

			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			item, err := client.Collections().AddItem(cmd.Context(), args[0], req)
			if err != nil {
				return fmt.Errorf("failed to add collection item: %w", err)
			}

			return renderItem(cmd.OutOrStdout(), item)
		},
	}
}

func newCollectionsRemoveItemCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-item COLLECTION_ID ITEM_ID",
		Short: "Remove an item from a collection",
		Long:  "Remove a STAC item from a collection",
		Args:  cobra.ExactArgs(2), //nolint:mnd // collection and item
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			err = client.Collections().RemoveItem(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to remove collection item: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed item %s from collection %s\n", args[1], args[0])

			return nil
		},
	}
}

func renderCollection(w io.Writer, collection *arlula.Collection) error {
	return render(w, collection, func(table *tablewriter.Table) {
		table.Header("Property", "Value")
		_ = table.Append("ID", collection.ID)
		_ = table.Append("Title", orNotAvailable(collection.Title))
		_ = table.Append("Description", collection.Description)
		_ = table.Append("License", orNotAvailable(collection.License))
		_ = table.Append("Keywords", strings.Join(collection.Keywords, ", "))
		_ = table.Append("STAC Version", collection.STACVersion)
		_ = table.Append("Summaries", strconv.Itoa(len(collection.Summaries)))
		_ = table.Append("Links", strconv.Itoa(len(collection.Links)))
	})
}

func renderItem(w io.Writer, item *arlula.Item) error {
	return render(w, item, func(table *tablewriter.Table) {
		table.Header("Property", "Value")
		_ = table.Append("ID", item.ID)
		_ = table.Append("Collection", orNotAvailable(item.Collection))
		_ = table.Append("Datetime", itemDatetime(item))
		_ = table.Append("CRS", orNotAvailable(item.CRS))
		_ = table.Append("Assets", assetKeys(item.Assets))
	})
}

func itemDatetime(item *arlula.Item) string {
	datetime, ok := item.Datetime()
	if !ok {
		return constants.NotAvailable
	}

	return datetime
}

func assetKeys(assets map[string]arlula.Asset) string {
	keys := make([]string, 0, len(assets))
	for key := range assets {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return strings.Join(keys, ", ")
}
