// Package constants provides shared constants used throughout the upscaling QC codebase.
// This includes file names of the output layout, default display labels, file
// permissions and other values that should be consistent across the application.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Output file layout. The names are fixed; downstream reporting reads them by name.
const (
	// WellsFile holds the concatenated raw well log table.
	WellsFile = "well.csv"

	// BlockedWellsFile holds the concatenated blocked well log table.
	BlockedWellsFile = "bw.csv"

	// GridFile holds the concatenated grid property table.
	GridFile = "grid.csv"

	// MetadataFile holds the serialized metadata record.
	MetadataFile = "metadata.json"
)

// OutputFiles returns the output file names in write order.
func OutputFiles() []string {
	return []string{WellsFile, BlockedWellsFile, GridFile, MetadataFile}
}

// Default display labels used when a source kind is configured once.
const (
	// DisplayWells is the label for raw well logs.
	DisplayWells = "Wells"

	// DisplayBlockedWells is the label for blocked well logs.
	DisplayBlockedWells = "Blocked wells"

	// DisplayGrid is the label for grid properties.
	DisplayGrid = "Grid"
)

// Default values
const (
	// DefaultTrajectory is the well trajectory used when none is configured.
	DefaultTrajectory = "Drilled trajectory"

	// DefaultLogrun is the well log run used when none is configured.
	DefaultLogrun = "log"

	// DefaultOutputDir is the default export destination, relative to the RMS project folder.
	DefaultOutputDir = "../../share/results/tables/upscaling_qc"

	// WellColumn is the column naming the well of every well and blocked well row.
	WellColumn = "WELL"
)

// Path constants
const (
	// ConfigName is the base name of the CLI configuration file searched in $HOME and ".".
	ConfigName = ".upqc"
)
