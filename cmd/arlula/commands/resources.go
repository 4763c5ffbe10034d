package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/arlula-client/internal/constants"
)

// NewCampaignsCommand creates the campaigns command group.
func NewCampaignsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "campaigns",
		Aliases: []string{"campaign"},
		Short:   "Inspect tasking campaigns",
		Long:    "List and inspect the tasking campaigns created by orders",
	}

	var page int

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List campaigns",
		Long:  "List tasking campaigns one page at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			list, err := client.Orders().ListCampaigns(cmd.Context(), page)
			if err != nil {
				return fmt.Errorf("failed to list campaigns: %w", err)
			}

			err = renderCampaigns(cmd.OutOrStdout(), list.Content)
			if err != nil {
				return err
			}

			printListHint(cmd.OutOrStdout(), list.Page, list.Length, list.Count)

			return nil
		},
	}
	listCmd.Flags().IntVar(&page, "page", 0, "page number, starting at 0")

	getCmd := &cobra.Command{
		Use:   "get CAMPAIGN_ID",
		Short: "Show a campaign",
		Long:  "Show the details of a single tasking campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			campaign, err := client.Orders().GetCampaign(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get campaign: %w", err)
			}

			return render(cmd.OutOrStdout(), campaign, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("ID", campaign.ID)
				_ = table.Append("Status", string(campaign.Status))
				_ = table.Append("Order", campaign.Order)
				_ = table.Append("Ordering ID", campaign.OrderingID)
				_ = table.Append("Supplier", campaign.Supplier)
				_ = table.Append("Priority", campaign.Priority)
				_ = table.Append("Bundle", campaign.Bundle)
				_ = table.Append("Window", formatTime(campaign.Start)+" - "+formatTime(campaign.End))
				_ = table.Append("GSD", formatFloat(campaign.GSD))
				_ = table.Append("Cloud", formatFloat(campaign.Cloud))
				_ = table.Append("Off Nadir", formatFloat(campaign.OffNadir))
				_ = table.Append("Total", formatPrice(campaign.Total))
				_ = table.Append("Refunded", formatPrice(campaign.Refunded))
			})
		},
	}

	datasetsCmd := &cobra.Command{
		Use:   "datasets CAMPAIGN_ID",
		Short: "List the datasets of a campaign",
		Long:  "List the datasets captured for a tasking campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			campaign, err := client.Orders().GetCampaign(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get campaign: %w", err)
			}

			datasets, err := campaign.Datasets(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get campaign datasets: %w", err)
			}

			return renderDatasets(cmd.OutOrStdout(), datasets)
		},
	}

	cmd.AddCommand(listCmd, getCmd, datasetsCmd)

	return cmd
}

// NewDatasetsCommand creates the datasets command group.
func NewDatasetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "datasets",
		Aliases: []string{"dataset"},
		Short:   "Inspect datasets",
		Long:    "List and inspect ordered datasets and their resources",
	}

	var page int

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List datasets",
		Long:  "List datasets one page at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			list, err := client.Orders().ListDatasets(cmd.Context(), page)
			if err != nil {
				return fmt.Errorf("failed to list datasets: %w", err)
			}

			err = renderDatasets(cmd.OutOrStdout(), list.Content)
			if err != nil {
				return err
			}

			printListHint(cmd.OutOrStdout(), list.Page, list.Length, list.Count)

			return nil
		},
	}
	listCmd.Flags().IntVar(&page, "page", 0, "page number, starting at 0")

	getCmd := &cobra.Command{
		Use:   "get DATASET_ID",
		Short: "Show a dataset",
		Long:  "Show the details of a single dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			dataset, err := client.Orders().GetDataset(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get dataset: %w", err)
			}

			return render(cmd.OutOrStdout(), dataset, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("ID", dataset.ID)
				_ = table.Append("Type", string(dataset.Type))
				_ = table.Append("Status", string(dataset.Status))
				_ = table.Append("Order", dataset.Order)
				_ = table.Append("Campaign", orNotAvailable(dataset.Campaign))
				_ = table.Append("Supplier", dataset.Supplier)
				_ = table.Append("Scene", orNotAvailable(dataset.SceneID))
				_ = table.Append("Bundle", dataset.Bundle)
				_ = table.Append("EULA", dataset.EULA)
				_ = table.Append("Captured", formatOptionalTime(dataset.Datetime))
				_ = table.Append("Expires", formatOptionalTime(dataset.Expiration))
				_ = table.Append("Total", formatPrice(dataset.Total))
			})
		},
	}

	resourcesCmd := &cobra.Command{
		Use:   "resources DATASET_ID",
		Short: "List the resources of a dataset",
		Long:  "List the downloadable files of a complete dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			dataset, err := client.Orders().GetDataset(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get dataset: %w", err)
			}

			resources, err := dataset.Resources(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get dataset resources: %w", err)
			}

			return renderResources(cmd.OutOrStdout(), resources)
		},
	}

	cmd.AddCommand(listCmd, getCmd, resourcesCmd)

	return cmd
}

// NewResourcesCommand creates the resources command group.
func NewResourcesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resources",
		Aliases: []string{"resource"},
		Short:   "Inspect and download dataset resources",
		Long:    "Inspect dataset resources and download their content",
	}

	getCmd := &cobra.Command{
		Use:   "get RESOURCE_ID",
		Short: "Show a resource",
		Long:  "Show the metadata of a single resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			resource, err := client.Orders().GetResource(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get resource: %w", err)
			}

			return render(cmd.OutOrStdout(), resource, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("ID", resource.ID)
				_ = table.Append("Name", resource.Name)
				_ = table.Append("Type", string(resource.Type))
				_ = table.Append("Format", orNotAvailable(resource.Format))
				_ = table.Append("Size", formatSize(resource.Size))
				_ = table.Append("Checksum", orNotAvailable(resource.Checksum))
				_ = table.Append("Order", resource.Order)
			})
		},
	}

	var dest string

	downloadCmd := &cobra.Command{
		Use:   "download RESOURCE_ID",
		Short: "Download a resource",
		Long:  "Download a resource's content. A directory destination receives the resource's own file name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			resource, err := client.Orders().GetResource(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get resource: %w", err)
			}

			path, err := downloadPath(dest, resource.Name)
			if err != nil {
				return err
			}

			file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.DownloadFilePerm) //nolint:gosec // path validated above
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}

			written, err := client.Orders().DownloadResource(cmd.Context(), resource.ID, file)

			closeErr := file.Close()
			if err != nil {
				_ = os.Remove(path)

				return fmt.Errorf("failed to download resource: %w", err)
			}

			if closeErr != nil {
				return fmt.Errorf("failed to close %s: %w", path, closeErr)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %s (%s) to %s\n", resource.Name, formatSize(written), path)

			return nil
		},
	}
	downloadCmd.Flags().StringVarP(&dest, "dest", "d", ".", "destination file or directory")

	cmd.AddCommand(getCmd, downloadCmd)

	return cmd
}
