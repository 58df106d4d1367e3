package domain

type ActionKind string

const (
	ActionGenerate ActionKind = "generate"
	ActionExport   ActionKind = "export"
)

type ActionStatus string

const (
	ActionIdle              ActionStatus = "idle"
	ActionInsufficientFunds ActionStatus = "insufficient-funds"
	ActionInFlight          ActionStatus = "in-flight"
	ActionSettling          ActionStatus = "settling"
	ActionDone              ActionStatus = "done"
	ActionFailed            ActionStatus = "failed"
)

type GenerationModel string

const (
	ModelPremium GenerationModel = "premium"
	ModelBasic   GenerationModel = "basic"
)

const fallbackGenerationCost = 5

func (m GenerationModel) Valid() bool {
	return m == ModelPremium || m == ModelBasic
}

// Cost is the fixed credit price settled after a successful generation.
func (m GenerationModel) Cost() int {
	switch m {
	case ModelPremium:
		return 20
	case ModelBasic:
		return 10
	default:
		return fallbackGenerationCost
	}
}

type ExportFormat string

const (
	FormatPNG  ExportFormat = "PNG"
	FormatJPG  ExportFormat = "JPG"
	FormatWEBP ExportFormat = "WEBP"
	FormatPDF  ExportFormat = "PDF"
)

func ExportFormats() []ExportFormat {
	return []ExportFormat{FormatPNG, FormatJPG, FormatWEBP, FormatPDF}
}

func (f ExportFormat) Valid() bool {
	switch f {
	case FormatPNG, FormatJPG, FormatWEBP, FormatPDF:
		return true
	}
	return false
}

// Cost is the credit price settled before the file is fetched. PNG is free
// and skips settlement entirely.
func (f ExportFormat) Cost() int {
	switch f {
	case FormatJPG:
		return 10
	case FormatWEBP:
		return 12
	case FormatPDF:
		return 15
	default:
		return 0
	}
}
