package scan

// ProgressReporter provides callbacks for reporting scan progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnDiscoveryStart is called when file discovery begins.
	OnDiscoveryStart()

	// OnDiscoveryComplete is called when file discovery finishes.
	OnDiscoveryComplete(candidates int)

	// OnScanStart is called before files are classified and extracted.
	OnScanStart(totalFiles int)

	// OnFileScanned is called after each candidate file, whether it was
	// cataloged or rejected by the classifier.
	OnFileScanned(fileName string)

	// OnScanComplete is called when the scan finishes successfully.
	OnScanComplete(entries int)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryStart()                  {}
func (n *NoOpProgressReporter) OnDiscoveryComplete(candidates int) {}
func (n *NoOpProgressReporter) OnScanStart(totalFiles int)         {}
func (n *NoOpProgressReporter) OnFileScanned(fileName string)      {}
func (n *NoOpProgressReporter) OnScanComplete(entries int)         {}
