package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kisan-depin/dmrv/pkg/config"
	"github.com/kisan-depin/dmrv/pkg/errors"
	"github.com/kisan-depin/dmrv/pkg/geo"
	"github.com/kisan-depin/dmrv/pkg/report"
	"github.com/kisan-depin/dmrv/pkg/verify"
)

// classifyOpts holds the command-line flags for the classify command.
type classifyOpts struct {
	lat  float64 // field latitude
	lon  float64 // field longitude
	save bool    // persist a verification report
}

// newClassifyCmd creates the classify command for photo compliance checks.
func newClassifyCmd(cfg *config.Config) *cobra.Command {
	var opts classifyOpts

	cmd := &cobra.Command{
		Use:   "classify <photo>",
		Short: "Classify a field photo for stubble-burning compliance",
		Long: `Classify runs the compliance classifier on a field photograph and
prints the verdict with per-class segmentation percentages.

Byte-identical photos always produce identical numbers; the verdict is
derived from the photo's filename, which makes demo runs predictable.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, cfg, args[0], &opts)
		},
	}

	cmd.Flags().Float64Var(&opts.lat, "lat", 0, "field latitude")
	cmd.Flags().Float64Var(&opts.lon, "lon", 0, "field longitude")
	cmd.Flags().BoolVar(&opts.save, "save", false, "store a verification report")

	return cmd
}

func runClassify(cmd *cobra.Command, cfg *config.Config, path string, opts *classifyOpts) error {
	logger := loggerFromContext(cmd.Context())

	coord := geo.Coordinate{Lat: opts.lat, Lon: opts.lon}
	if err := coord.Validate(); err != nil {
		return err
	}

	photo, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidImage, err, "read photo %s", path)
	}
	if err := errors.ValidatePhoto(photo); err != nil {
		return err
	}
	filename := filepath.Base(path)

	result := verify.NewClassifier().Classify(photo, filename, coord)
	logger.Debug("classified photo", "filename", filename, "hash", result.ImageHash)

	printSuccess("Analyzed %s", filename)
	printKeyValue("verdict", renderVerdict(result.Status.String()))
	printKeyValue("confidence", fmt.Sprintf("%.0f%%", result.Confidence*100))
	printKeyValue("burnt soil", fmt.Sprintf("%.1f%%", result.Details.BurntSoilPct))
	printKeyValue("tilled soil", fmt.Sprintf("%.1f%%", result.Details.TilledSoilPct))
	printKeyValue("vegetation", fmt.Sprintf("%.2f", result.Details.VegetationIndex))
	printKeyValue("thermal anomaly", fmt.Sprintf("%t", result.Details.ThermalAnomaly))
	printKeyValue("model", result.ModelVersion)

	if result.Status.IsViolation() {
		printNewline()
		printWarning("Thermal anomaly detected — render evidence to corroborate")
		printNextStep("Render evidence", fmt.Sprintf("dmrv render %.4f %.4f --verdict VIOLATION", opts.lat, opts.lon))
	}

	if opts.save {
		store, err := report.NewFileStore("")
		if err != nil {
			return err
		}
		defer store.Close()

		rep := report.New(coord, result, report.Artifacts{})
		if err := store.Put(cmd.Context(), rep); err != nil {
			return err
		}
		printNewline()
		printInfo("Saved report %s", rep.ID)
	}
	return nil
}
