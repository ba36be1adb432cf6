package constants

// ============================================================================
// CONFIGURATION
// ============================================================================

// Configuration Files
const (
	ConfigFileName = "procmap.config.json"
	RowsSchemaFile = "rows.schema.json"
)

// Storage Drivers
const (
	StorageDriverMemory   = "memory"
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
)

// Blob Drivers
const (
	BlobDriverFilesystem = "filesystem"
	BlobDriverS3         = "s3"
)

// Environment Variables
const (
	EnvDebug      = "PROCMAP_DEBUG"
	EnvConfigPath = "PROCMAP_CONFIG"
)

// ============================================================================
// TABLE COLUMNS
// ============================================================================

// Required columns. A table missing any of these fails validation before
// any step is constructed.
const (
	ColProcessName = "ProcessName"
	ColProcessID   = "ProcessID"
	ColLane        = "Lane"
	ColSystemUsed  = "SystemUsed"
	ColStepID      = "StepID"
	ColStepOrder   = "StepOrder"
	ColStepLabel   = "StepLabel"
	ColStepType    = "StepType"
	ColNextStep    = "NextStep"
	ColYesNext     = "YesNext"
	ColNoNext      = "NoNext"
)

// Optional columns.
const (
	ColTrigger             = "Trigger"
	ColFinalOutput         = "FinalOutput"
	ColSLA                 = "SLA"
	ColAutomationPotential = "AutomationPotential"
	ColProcessRisk         = "ProcessRisk"
	ColControlDescription  = "ControlDescription"
	ColRelatedDocuments    = "RelatedDocuments"
	ColNotes               = "Notes"
)

// MissingCellSentinel is the textual "missing" marker spreadsheet exports
// leave behind in empty cells.
const MissingCellSentinel = "nan"

// DocumentDelimiter separates entries in the RelatedDocuments column.
const DocumentDelimiter = ","

// ============================================================================
// DEFAULTS
// ============================================================================

const (
	DefaultOrientation = "LR"
	DefaultHTTPHost    = "127.0.0.1"
	DefaultHTTPPort    = 8930
	DefaultArtifactDir = "./.procmap/artifacts"
	DefaultSQLiteDSN   = "./.procmap/history.db"
	DefaultDotBinary   = "dot"
)
