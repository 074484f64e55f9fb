// Package ingest turns a job-posting URL into a normalized Outcome by running
// an ordered chain of extraction strategies: provider APIs first, then
// structured data in HTML, then readability heuristics, then a headless
// browser as the last resort.
package ingest

// FieldType classifies one input of a native application form.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldEmail    FieldType = "email"
	FieldTel      FieldType = "tel"
	FieldURL      FieldType = "url"
	FieldSelect   FieldType = "select"
	FieldRadio    FieldType = "radio"
	FieldCheckbox FieldType = "checkbox"
	FieldDate     FieldType = "date"
	FieldFile     FieldType = "file"
	FieldUnknown  FieldType = "unknown"
)

// SelectOption is one choice of a select or radio field.
type SelectOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Validation carries optional constraints a provider attaches to a field.
type Validation struct {
	Pattern string `json:"pattern,omitempty"`
	Min     int    `json:"min,omitempty"`
	Max     int    `json:"max,omitempty"`
}

// ApplicationField is one input the job's native application form requires.
// Fields are built once per extraction attempt and immutable afterwards.
type ApplicationField struct {
	Key        string         `json:"key"`
	Label      string         `json:"label"`
	Type       FieldType      `json:"type"`
	Required   bool           `json:"required"`
	Options    []SelectOption `json:"options,omitempty"`
	Validation *Validation    `json:"validation,omitempty"`
	SourceHint string         `json:"source_hint,omitempty"`
}

// Outcome is the normalized result every strategy produces. DescriptionText
// is the load-bearing field: an empty string means the strategy found no
// usable content and the pipeline moves on; everything else is decoration.
type Outcome struct {
	DescriptionHTML string             `json:"description_html,omitempty"`
	DescriptionText string             `json:"description_text"`
	Title           string             `json:"title,omitempty"`
	CompanyName     string             `json:"company_name,omitempty"`
	Location        string             `json:"location,omitempty"`
	EmploymentType  string             `json:"employment_type,omitempty"`
	ApplyURL        string             `json:"apply_url,omitempty"`
	FormSchema      []ApplicationField `json:"application_form_schema,omitempty"`
	// ProviderPayload is the upstream response verbatim, kept for audit.
	ProviderPayload map[string]any `json:"provider_payload,omitempty"`
	// Path tags the strategy that produced this outcome, e.g. "greenhouse_api".
	Path     string   `json:"extraction_path"`
	Warnings []string `json:"warnings,omitempty"`
}

// Empty returns true when the outcome carries no usable description text.
func (o Outcome) Empty() bool { return o.DescriptionText == "" }

// emptyOutcome builds the failure shape strategies return when they cannot
// produce content: tagged with the strategy path and the reasons why.
func emptyOutcome(path string, warnings ...string) Outcome {
	return Outcome{Path: path, Warnings: warnings}
}
