package domain

// Resource is an auxiliary file published next to the datasets. It does not
// depend on the language.
type Resource struct {
	Name string
	File string
	// JSON resources are passed through verbatim; the rest is plain text.
	JSON bool
}

var (
	ResourceSubjects    = Resource{Name: "subjects", File: "subjects.json", JSON: true}
	ResourceSchoolTypes = Resource{Name: "school-types", File: "typeOfSchoole.json", JSON: true}
	ResourceImpressum   = Resource{Name: "impressum", File: "impressum.txt"}
)
