package table

import (
	"fmt"
	"strings"

	"github.com/awantoch/procmap/constants"
)

// RequiredColumns is the minimum schema a table must carry before any step
// is constructed.
var RequiredColumns = []string{
	constants.ColProcessName,
	constants.ColProcessID,
	constants.ColLane,
	constants.ColSystemUsed,
	constants.ColStepID,
	constants.ColStepOrder,
	constants.ColStepLabel,
	constants.ColStepType,
	constants.ColNextStep,
	constants.ColYesNext,
	constants.ColNoNext,
}

// OptionalColumns enrich the diagram when present.
var OptionalColumns = []string{
	constants.ColTrigger,
	constants.ColFinalOutput,
	constants.ColSLA,
	constants.ColAutomationPotential,
	constants.ColProcessRisk,
	constants.ColControlDescription,
	constants.ColRelatedDocuments,
	constants.ColNotes,
}

// SchemaError reports every required column a table is missing. It is fatal:
// no step construction happens after it.
type SchemaError struct {
	MissingColumns []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.MissingColumns, ", "))
}

// ValidationResult describes a passing validation: which optional columns
// the table carries.
type ValidationResult struct {
	OptionalPresent []string
}

func (r *ValidationResult) String() string {
	if len(r.OptionalPresent) == 0 {
		return "all required columns present; no optional columns found"
	}
	return fmt.Sprintf("all required columns present; optional columns found: %s",
		strings.Join(r.OptionalPresent, ", "))
}

// Validate checks the table against the column contract. On failure the
// returned *SchemaError names every missing required column.
func Validate(t *Table) (*ValidationResult, error) {
	var missing []string
	for _, col := range RequiredColumns {
		if !t.Has(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{MissingColumns: missing}
	}
	var present []string
	for _, col := range OptionalColumns {
		if t.Has(col) {
			present = append(present, col)
		}
	}
	return &ValidationResult{OptionalPresent: present}, nil
}
