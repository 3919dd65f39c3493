package dispatch

// pipelineSpec is the wire format handed from the supervisor to the
// pipeline leader via the IMPRIMER_PIPELINE environment variable. The
// leader re-execs the supervisor's own binary (see leader.go), so this
// is an in-process contract, not a public one — no compatibility
// guarantees beyond a single spawn.
type pipelineSpec struct {
	InputFile string      `json:"input_file"`
	Stages    []stageSpec `json:"stages"` // empty => no-conversion byte copy
}

type stageSpec struct {
	Argv []string `json:"argv"`
}

// LeaderEnvVar names the environment variable carrying the JSON-encoded
// pipelineSpec. LeaderArg is the hidden subcommand argument cmd/imprimer
// checks for before cobra ever sees argv.
const (
	LeaderEnvVar = "IMPRIMER_PIPELINE"
	LeaderArg    = "__leader"
)

// StageNames returns the stage command names in spawn order, or a
// single sentinel entry when the path was empty (spec.md §4.3.4,
// §9 "argv snapshot at spawn time").
func (p pipelineSpec) StageNames() []string {
	if len(p.Stages) == 0 {
		return []string{noConversionSentinel}
	}
	names := make([]string, len(p.Stages))
	for i, st := range p.Stages {
		names[i] = st.Argv[0]
	}
	return names
}

const noConversionSentinel = "cat"
