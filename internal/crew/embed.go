package crew

import "embed"

// crewFS carries the built-in crew definitions so the binary works without
// any configuration files on disk. Custom definitions can still be loaded
// with LoadDefinition and injected through the executor options.
//
//go:embed crews/*.yaml
var crewFS embed.FS

func embeddedDefinition(name string) (Definition, error) {
	data, err := crewFS.ReadFile("crews/" + name + ".yaml")
	if err != nil {
		return Definition{}, err
	}
	return ParseDefinition(data)
}

// BlogPlanningCrew returns the built-in crew that produces a series roadmap.
func BlogPlanningCrew() (Definition, error) {
	return embeddedDefinition("blog_planning")
}

// BlogWritingCrew returns the built-in crew that writes a single post.
func BlogWritingCrew() (Definition, error) {
	return embeddedDefinition("blog_writing")
}

// JobApplicationCrew returns the built-in crew that tailors a resume and
// prepares interview materials for one job posting.
func JobApplicationCrew() (Definition, error) {
	return embeddedDefinition("job_application")
}
