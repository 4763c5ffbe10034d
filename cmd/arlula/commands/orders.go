package commands

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/arlula-client/pkg/arlula"
)

// NewOrdersCommand creates the orders command group.
func NewOrdersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order"},
		Short:   "Inspect orders",
		Long:    "List and inspect orders and the campaigns and datasets they produced",
	}

	cmd.AddCommand(newOrdersListCommand())
	cmd.AddCommand(newOrdersGetCommand())
	cmd.AddCommand(newOrdersCampaignsCommand())
	cmd.AddCommand(newOrdersDatasetsCommand())

	return cmd
}

func newOrdersListCommand() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		Long:  "List orders, newest first, one page at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			list, err := client.Orders().List(cmd.Context(), page)
			if err != nil {
				return fmt.Errorf("failed to list orders: %w", err)
			}

			err = render(cmd.OutOrStdout(), list, func(table *tablewriter.Table) {
				table.Header("ID", "Status", "Created", "Total", "Discount", "Tax", "Refunded")

				for _, order := range list.Content {
					_ = table.Append(
						order.ID,
						string(order.Status),
						formatTime(order.CreatedAt),
						formatPrice(order.Total),
						formatPrice(order.Discount),
						formatPrice(order.Tax),
						formatPrice(order.Refunded),
					)
				}
			})
			if err != nil {
				return err
			}

			printListHint(cmd.OutOrStdout(), list.Page, list.Length, list.Count)

			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page number, starting at 0")

	return cmd
}

func newOrdersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ORDER_ID",
		Short: "Show an order",
		Long:  "Show the details of a single order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			order, err := client.Orders().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get order: %w", err)
			}

			return renderOrder(cmd.OutOrStdout(), order)
		},
	}
}

func newOrdersCampaignsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "campaigns ORDER_ID",
		Short: "List the campaigns of an order",
		Long:  "List the tasking campaigns created by an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			order, err := client.Orders().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get order: %w", err)
			}

			campaigns, err := order.Campaigns(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get order campaigns: %w", err)
			}

			return renderCampaigns(cmd.OutOrStdout(), campaigns)
		},
	}
}

func newOrdersDatasetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets ORDER_ID",
		Short: "List the datasets of an order",
		Long:  "List the datasets delivered, or being prepared, for an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			order, err := client.Orders().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get order: %w", err)
			}

			datasets, err := order.Datasets(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get order datasets: %w", err)
			}

			return renderDatasets(cmd.OutOrStdout(), datasets)
		},
	}
}

func renderOrder(w io.Writer, order *arlula.Order) error {
	return render(w, order, func(table *tablewriter.Table) {
		table.Header("Property", "Value")
		_ = table.Append("ID", order.ID)
		_ = table.Append("Status", string(order.Status))
		_ = table.Append("Created", formatTime(order.CreatedAt))
		_ = table.Append("Updated", formatTime(order.UpdatedAt))
		_ = table.Append("Total", formatPrice(order.Total))
		_ = table.Append("Discount", formatPrice(order.Discount))
		_ = table.Append("Tax", formatPrice(order.Tax))
		_ = table.Append("Refunded", formatPrice(order.Refunded))
		_ = table.Append("Monitor", orNotAvailable(order.Monitor))
	})
}

func renderCampaigns(w io.Writer, campaigns []*arlula.Campaign) error {
	return render(w, campaigns, func(table *tablewriter.Table) {
		table.Header("ID", "Status", "Supplier", "Priority", "Start", "End", "Total", "Order")

		for _, campaign := range campaigns {
			_ = table.Append(
				campaign.ID,
				string(campaign.Status),
				campaign.Supplier,
				campaign.Priority,
				formatTime(campaign.Start),
				formatTime(campaign.End),
				formatPrice(campaign.Total),
				campaign.Order,
			)
		}
	})
}

func renderDatasets(w io.Writer, datasets []*arlula.Dataset) error {
	return render(w, datasets, func(table *tablewriter.Table) {
		table.Header("ID", "Type", "Status", "Supplier", "Scene", "Bundle", "Captured", "Expires")

		for _, dataset := range datasets {
			_ = table.Append(
				dataset.ID,
				string(dataset.Type),
				string(dataset.Status),
				dataset.Supplier,
				orNotAvailable(dataset.SceneID),
				dataset.Bundle,
				formatOptionalTime(dataset.Datetime),
				formatOptionalTime(dataset.Expiration),
			)
		}
	})
}

func renderResources(w io.Writer, resources []*arlula.Resource) error {
	return render(w, resources, func(table *tablewriter.Table) {
		table.Header("ID", "Name", "Type", "Format", "Size", "Checksum")

		for _, resource := range resources {
			_ = table.Append(
				resource.ID,
				resource.Name,
				string(resource.Type),
				orNotAvailable(resource.Format),
				formatSize(resource.Size),
				orNotAvailable(resource.Checksum),
			)
		}
	})
}
