package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/arlula-client/internal/constants"
	"github.com/fivetwenty-io/arlula-client/pkg/arlula"
)

const defaultSearchGSD = 10.0

// searchFilters are the optional result filters shared by both search commands.
type searchFilters struct {
	gsd      float64
	supplier string
	cloud    float64
	offNadir float64
}

func (f *searchFilters) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.gsd, "gsd", defaultSearchGSD, "maximum ground sample distance in metres")
	cmd.Flags().StringVar(&f.supplier, "supplier", "", "only return results from this supplier")
	cmd.Flags().Float64Var(&f.cloud, "cloud", 0, "maximum cloud cover percentage")
	cmd.Flags().Float64Var(&f.offNadir, "off-nadir", 0, "maximum off-nadir angle in degrees")
}

// orderFlags are the fulfilment options shared by the order commands.
type orderFlags struct {
	eula     string
	bundle   string
	webhooks []string
	emails   []string
	team     string
	coupon   string
	payment  string
}

func (f *orderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.eula, "eula", "", "license href to accept")
	cmd.Flags().StringVar(&f.bundle, "bundle", arlula.DefaultBundleKey, "bundle key to order")
	cmd.Flags().StringSliceVar(&f.webhooks, "webhook", nil, "webhook URL notified of progress (repeatable)")
	cmd.Flags().StringSliceVar(&f.emails, "email", nil, "email address notified of progress (repeatable)")
	cmd.Flags().StringVar(&f.team, "team", "", "team to order on behalf of")
	cmd.Flags().StringVar(&f.coupon, "coupon", "", "coupon code")
	cmd.Flags().StringVar(&f.payment, "payment", "", "payment account")
}

func (f *orderFlags) validate() error {
	if f.eula == "" {
		return constants.ErrEULARequired
	}

	if f.bundle == "" {
		return constants.ErrBundleRequired
	}

	return nil
}

// NewArchiveCommand creates the archive command group.
func NewArchiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Search and order archive imagery",
		Long:  "Search the archive for existing scenes and order them",
	}

	cmd.AddCommand(newArchiveSearchCommand())
	cmd.AddCommand(newArchiveOrderCommand())
	cmd.AddCommand(newArchiveBatchOrderCommand())

	return cmd
}

func buildSearchRequest(date, end string, area areaFlags, filters searchFilters) (arlula.SearchRequest, error) {
	start, err := parseDate(date)
	if err != nil {
		return arlula.SearchRequest{}, err
	}

	req := arlula.NewSearchRequest(start, filters.gsd)

	if end != "" {
		endDate, err := parseDate(end)
		if err != nil {
			return arlula.SearchRequest{}, err
		}

		req = req.Between(start, endDate)
	}

	req, err = applyArea(req, area)
	if err != nil {
		return arlula.SearchRequest{}, err
	}

	if filters.supplier != "" {
		req = req.WithSupplier(filters.supplier)
	}

	if filters.cloud > 0 {
		req = req.WithMaximumCloudCover(filters.cloud)
	}

	if filters.offNadir > 0 {
		req = req.WithMaximumOffNadir(filters.offNadir)
	}

	if !req.Valid() {
		return arlula.SearchRequest{}, arlula.ErrInvalidSearchRequest
	}

	return req, nil
}

func newArchiveSearchCommand() *cobra.Command {
	var (
		date    string
		end     string
		area    areaFlags
		filters searchFilters
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search archive imagery",
		Long:  "Search for archived scenes captured on a date, or between --date and --end, over an area",
		Example: `  arlula archive search --date 2024-01-01 --point 151.2093,-33.8688
  arlula archive search --date 2024-01-01 --end 2024-02-01 --bbox 151.1,-33.8,151.3,-33.9 --cloud 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildSearchRequest(date, end, area, filters)
			if err != nil {
				return err
			}

			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			resp, err := client.Archive().Search(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to search archive: %w", err)
			}

			printSearchErrors(cmd.ErrOrStderr(), resp.Errors)

			return render(cmd.OutOrStdout(), resp, func(table *tablewriter.Table) {
				table.Header("Ordering ID", "Supplier", "Platform", "Date", "GSD", "Cloud", "Off Nadir", "Bundles")

				for _, result := range resp.Results {
					_ = table.Append(
						result.OrderingID,
						result.Supplier,
						result.Platform,
						formatTime(result.Date),
						formatFloat(result.GSD),
						formatFloat(result.Cloud),
						formatFloat(result.OffNadir),
						formatBundles(result.Bundles),
					)
				}
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", time.Now().AddDate(0, 0, -1).Format(constants.DateFormat), "capture date, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "end of the capture window, YYYY-MM-DD")
	area.register(cmd)
	filters.register(cmd)

	return cmd
}

func newArchiveOrderCommand() *cobra.Command {
	var flags orderFlags

	cmd := &cobra.Command{
		Use:   "order ORDERING_ID",
		Short: "Order an archive scene",
		Long:  "Order an archive scene by the ordering ID returned from search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := flags.validate()
			if err != nil {
				return err
			}

			req := arlula.NewOrderRequest(args[0], flags.eula, flags.bundle).
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

			order, err := client.Archive().Order(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to order scene: %w", err)
			}

			return renderOrder(cmd.OutOrStdout(), order)
		},
	}

	flags.register(cmd)

	return cmd
}

func newArchiveBatchOrderCommand() *cobra.Command {
	var flags orderFlags

	cmd := &cobra.Command{
		Use:   "batch-order ORDERING_ID...",
		Short: "Order several archive scenes at once",
		Long:  "Order several archive scenes in one purchase. Every scene uses the same license and bundle",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := flags.validate()
			if err != nil {
				return err
			}

			req := arlula.NewBatchOrderRequest().
				WithWebhooks(flags.webhooks...).
				WithEmails(flags.emails...).
				WithTeam(flags.team).
				WithCoupon(flags.coupon).
				WithPayment(flags.payment)

			for _, id := range args {
				req = req.WithOrder(arlula.NewOrderRequest(id, flags.eula, flags.bundle))
			}

			if !req.Valid() {
				return ErrOrderRejected
			}

			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			order, err := client.Archive().BatchOrder(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to order scenes: %w", err)
			}

			return renderOrder(cmd.OutOrStdout(), order)
		},
	}

	flags.register(cmd)

	return cmd
}

func printSearchErrors(w io.Writer, errs []arlula.SearchError) {
	for _, searchErr := range errs {
		if searchErr.Supplier != "" {
			_, _ = fmt.Fprintf(w, "warning: %s: %s\n", searchErr.Supplier, searchErr.Message)

			continue
		}

		_, _ = fmt.Fprintf(w, "warning: %s\n", searchErr.Message)
	}
}

func formatBundles(bundles []arlula.BundleOption) string {
	parts := make([]string, 0, len(bundles))

	for _, bundle := range bundles {
		parts = append(parts, bundle.Key+"="+formatPrice(bundle.Price))
	}

	return strings.Join(parts, ", ")
}
