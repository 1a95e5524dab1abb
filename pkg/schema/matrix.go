package schema

// Keys that tfmatrix writes into every matrix entry. They take precedence over
// keys of the same name in the environment's config document.
const (
	MatrixKeyTerraformPath = "terraform_path"
	MatrixKeyEnvironment   = "environment"
	MatrixKeyChangedFiles  = "changed_files"
)

// MatrixEntry is one unit of work for the CI orchestrator: the environment's
// config document plus the reserved keys.
type MatrixEntry struct {
	Config        map[string]any
	TerraformPath string
	Environment   string
	ChangedFiles  []string
}

// Fields returns the flattened key/value view of the entry that is serialized.
func (e MatrixEntry) Fields() map[string]any {
	fields := make(map[string]any, len(e.Config)+3)
	for k, v := range e.Config {
		fields[k] = v
	}

	changed := e.ChangedFiles
	if changed == nil {
		changed = []string{}
	}

	fields[MatrixKeyTerraformPath] = e.TerraformPath
	fields[MatrixKeyEnvironment] = e.Environment
	fields[MatrixKeyChangedFiles] = changed
	return fields
}

// MatrixResult is the outcome of building the matrix.
type MatrixResult struct {
	Include    []MatrixEntry
	HasChanges bool
}

// MatrixView is the JSON shape of a MatrixResult. Include is nil when there
// is nothing to deploy so that it serializes as null.
type MatrixView struct {
	Include    []map[string]any `json:"include"`
	HasChanges bool             `json:"has_changes"`
}

// View converts the result into its serializable form.
func (r MatrixResult) View() MatrixView {
	if len(r.Include) == 0 {
		return MatrixView{Include: nil, HasChanges: false}
	}

	include := make([]map[string]any, 0, len(r.Include))
	for _, entry := range r.Include {
		include = append(include, entry.Fields())
	}
	return MatrixView{Include: include, HasChanges: r.HasChanges}
}
