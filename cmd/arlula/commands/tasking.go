package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/arlula-client/internal/constants"
	"github.com/fivetwenty-io/arlula-client/pkg/arlula"
)

const defaultTaskingWindowDays = 30

// NewTaskingCommand creates the tasking command group.
func NewTaskingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasking",
		Short: "Search and order future captures",
		Long:  "Search for satellite capture opportunities and order tasking campaigns",
	}

	cmd.AddCommand(newTaskingSearchCommand())
	cmd.AddCommand(newTaskingOrderCommand())

	return cmd
}

func buildTaskingSearchRequest(start, end string, area areaFlags, filters searchFilters) (arlula.TaskingSearchRequest, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return arlula.TaskingSearchRequest{}, err
	}

	endDate, err := parseDate(end)
	if err != nil {
		return arlula.TaskingSearchRequest{}, err
	}

	req := arlula.NewTaskingSearchRequest(startDate, endDate, filters.gsd)

	req, err = applyArea(req, area)
	if err != nil {
		return arlula.TaskingSearchRequest{}, err
	}

	if filters.supplier != "" {
		req = req.WithSupplier(filters.supplier)
	}

	if filters.cloud > 0 {
		req = req.WithMaximumCloudCover(filters.cloud)
	}

	if filters.offNadir != 0 {
		req = req.WithMaximumOffNadir(filters.offNadir)
	}

	if !req.Valid() {
		return arlula.TaskingSearchRequest{}, arlula.ErrInvalidSearchRequest
	}

	return req, nil
}

func newTaskingSearchCommand() *cobra.Command {
	var (
		start   string
		end     string
		area    areaFlags
		filters searchFilters
	)

	now := time.Now()

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search capture opportunities",
		Long:  "Search for capture opportunities over an area between --start and --end",
		Example: `  arlula tasking search --start 2025-01-01 --end 2025-01-31 --point 151.2093,-33.8688 --off-nadir 30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildTaskingSearchRequest(start, end, area, filters)
			if err != nil {
				return err
			}

			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			resp, err := client.Tasking().Search(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to search tasking: %w", err)
			}

			printSearchErrors(cmd.ErrOrStderr(), resp.Errors)

			return render(cmd.OutOrStdout(), resp, func(table *tablewriter.Table) {
				table.Header("Ordering ID", "Supplier", "Platforms", "Start", "End", "GSD", "Off Nadir", "Priorities", "Bundles")

				for _, result := range resp.Results {
					_ = table.Append(
						result.OrderingID,
						result.Supplier,
						strings.Join(result.Platforms, ", "),
						formatTime(result.StartDate),
						formatTime(result.EndDate),
						formatFloat(result.GSD),
						formatFloat(result.OffNadir),
						formatPriorities(result.Priorities),
						formatBundles(result.Bundles),
					)
				}
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", now.Format(constants.DateFormat), "start of the capture window, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", now.AddDate(0, 0, defaultTaskingWindowDays).Format(constants.DateFormat), "end of the capture window, YYYY-MM-DD")
	area.register(cmd)
	filters.register(cmd)

	return cmd
}

func newTaskingOrderCommand() *cobra.Command {
	var (
		flags    orderFlags
		priority string
		cloud    float64
	)

	cmd := &cobra.Command{
		Use:   "order ORDERING_ID",
		Short: "Order a tasking capture",
		Long:  "Order a capture opportunity by the ordering ID returned from tasking search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := flags.validate()
			if err != nil {
				return err
			}

			if priority == "" {
				return constants.ErrPriorityRequired
			}

			req := arlula.NewTaskingOrderRequest(args[0], flags.eula, flags.bundle, priority, cloud).
				WithWebhooks(flags.webhooks...).
				WithEmails(flags.emails...).
				WithTeam(flags.team).
				WithCoupon(flags.coupon).
				WithPayment(flags.payment)
			if !req.Valid() {
				return ErrOrderRejected
			}

			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			order, err := client.Tasking().Order(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to order capture: %w", err)
			}

			return renderOrder(cmd.OutOrStdout(), order)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&priority, "priority", "", "priority key to order at")
	cmd.Flags().Float64Var(&cloud, "cloud", 0, "maximum acceptable cloud cover percentage")

	return cmd
}

func formatPriorities(priorities []arlula.Priority) string {
	parts := make([]string, 0, len(priorities))

	for _, priority := range priorities {
		parts = append(parts, priority.Key)
	}

	return strings.Join(parts, ", ")
}
