// Package workflow models the GitHub Actions pipeline that builds, tests and deploys a
// repository to Surge, and renders it as YAML.
package workflow

// Var is an ordered key/value pair used for env blocks and step inputs.
type Var struct {
	Key   string
	Value string
}

// Trigger restricts an event to a set of branches.
type Trigger struct {
	Event    string
	Branches []string
}

// Workflow is the complete pipeline definition.
type Workflow struct {
	Name     string
	Triggers []Trigger
	Env      []Var
	Jobs     []Job
}

// Job groups steps that run on one runner.
type Job struct {
	ID     string
	RunsOn string
	Needs  string
	If     string
	Steps  []Step
}

// Step is a single action invocation or shell command. Exactly one of Uses or Run is set.
type Step struct {
	Name            string
	Uses            string
	With            []Var
	Run             string
	Env             []Var
	ContinueOnError bool
}

// Job returns the job with the given id.
func (w Workflow) Job(id string) (Job, bool) {
	for _, j := range w.Jobs {
		if j.ID == id {
			return j, true
		}
	}
	return Job{}, false
}

// StepNames lists the job's step names in order.
func (j Job) StepNames() []string {
	out := make([]string, len(j.Steps))
	for i, s := range j.Steps {
		out[i] = s.Name
	}
	return out
}
