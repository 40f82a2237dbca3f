package models

// FieldSource records whether an extracted invoice field currently holds the
// automatic guess or a manual correction. Vendor and amount are independently
// overridable, so each carries its own source.
type FieldSource string

const (
	SourceAuto   FieldSource = "auto"
	SourceManual FieldSource = "manual"
)

// Record origins for the combined cost view.
const (
	CostSourcePaperless = "paperless"
	CostSourceManual    = "manual"
)
