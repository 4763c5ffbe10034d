package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/arlula-client/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrUnknownConfigKey = errors.New("unknown configuration key")
	ErrOrderRejected    = errors.New("order request is invalid")
)

// Coordinate counts accepted by area flags.
const (
	pointCoordinates = 2
	bboxCoordinates  = 4
)

// outputFormat returns the validated --output value.
func outputFormat() (string, error) {
	format := strings.ToLower(viper.GetString("output"))

	switch format {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrInvalidOutputFormat, format)
	}
}

// render writes data as JSON or YAML, or calls table to fill a table.
func render(w io.Writer, data any, table func(*tablewriter.Table)) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		err = encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("encoding data to JSON: %w", err)
		}

		return nil
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(constants.JSONIndentSize)

		err = encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("encoding data to YAML: %w", err)
		}

		return encoder.Close()
	default:
		t := tablewriter.NewWriter(w)
		table(t)

		err = t.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// printListHint tells table readers how to fetch the next page.
func printListHint(w io.Writer, page, length, count int) {
	if format, _ := outputFormat(); format != constants.FormatTable {
		return
	}

	if length <= 0 || (page+1)*length >= count {
		return
	}

	_, _ = fmt.Fprintf(w, "\nShowing page %d (%d of %d). Use --page %d for more.\n", page, length, count, page+1)
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", constants.ErrInvalidDate, value)
	}

	return t, nil
}

// parseCoordinates splits a comma separated list of exactly n numbers.
func parseCoordinates(value string, n int) ([]float64, bool) {
	parts := strings.Split(value, ",")
	if len(parts) != n {
		return nil, false
	}

	out := make([]float64, 0, n)

	for _, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, false
		}

		out = append(out, f)
	}

	return out, true
}

// areaFlags are the mutually exclusive spatial flags of the search commands.
type areaFlags struct {
	point   string
	bbox    string
	polygon string
}

func (a *areaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&a.point, "point", "", "search a point, as LONG,LAT")
	cmd.Flags().StringVar(&a.bbox, "bbox", "", "search a bounding box, as WEST,NORTH,EAST,SOUTH")
	cmd.Flags().StringVar(&a.polygon, "polygon", "", "search a WKT polygon")
}

// areaRequest is implemented by both search request builders.
type areaRequest[T any] interface {
	WithPoint(long, lat float64) T
	WithBoundingBox(west, north, east, south float64) T
	WithWKTPolygon(wkt string) T
}

// applyArea sets exactly one spatial criterion on req.
func applyArea[T areaRequest[T]](req T, area areaFlags) (T, error) {
	given := 0

	for _, v := range []string{area.point, area.bbox, area.polygon} {
		if v != "" {
			given++
		}
	}

	switch {
	case given == 0:
		return req, constants.ErrAreaRequired
	case given > 1:
		return req, constants.ErrAreaConflict
	}

	switch {
	case area.point != "":
		coords, ok := parseCoordinates(area.point, pointCoordinates)
		if !ok {
			return req, constants.ErrInvalidPoint
		}

		return req.WithPoint(coords[0], coords[1]), nil
	case area.bbox != "":
		coords, ok := parseCoordinates(area.bbox, bboxCoordinates)
		if !ok {
			return req, constants.ErrInvalidBBox
		}

		return req.WithBoundingBox(coords[0], coords[1], coords[2], coords[3]), nil
	default:
		if !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(area.polygon)), "POLYGON") {
			return req, constants.ErrInvalidPolygon
		}

		return req.WithWKTPolygon(area.polygon), nil
	}
}

func formatPrice(minor int64) string {
	return strconv.FormatFloat(float64(minor)/constants.CentsPerUnit, 'f', 2, 64)
}

// formatSize renders a byte count with a binary unit suffix.
func formatSize(size int64) string {
	const unit = 1024

	if size < unit {
		return strconv.FormatInt(size, 10) + " B"
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return strconv.FormatFloat(float64(size)/float64(div), 'f', 1, 64) + " " + string("KMGTPE"[exp]) + "iB"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return constants.NotAvailable
	}

	return t.Format(constants.TimestampFormat)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return constants.NotAvailable
	}

	return formatTime(*t)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func orNotAvailable(s string) string {
	if s == "" {
		return constants.NotAvailable
	}

	return s
}

// downloadPath resolves where a resource named name is written. A directory
// destination receives the resource's own file name.
func downloadPath(dest, name string) (string, error) {
	if strings.Contains(dest, "..") {
		return "", fmt.Errorf("%w: %s", constants.ErrDirectoryTraversalDetected, dest)
	}

	if dest == "" {
		dest = "."
	}

	dest = filepath.Clean(dest)

	info, err := os.Stat(dest)
	if err == nil && info.IsDir() {
		base := filepath.Base(name)
		if base == "." || base == string(filepath.Separator) || base == "" {
			return "", fmt.Errorf("%w: %s", constants.ErrNotRegularFile, dest)
		}

		return filepath.Join(dest, base), nil
	}

	if err == nil && !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", constants.ErrNotRegularFile, dest)
	}

	return dest, nil
}
