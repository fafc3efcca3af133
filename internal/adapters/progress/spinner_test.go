package progress

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/hoist/internal/usecase"
)

func TestSpinnerProgressReporter(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	var out bytes.Buffer
	r := NewSpinnerProgressReporterTo(&out)

	r.OnProgress(t.Context(), usecase.ProgressEvent{Stage: string(usecase.StageResolving), Message: "Resolving artifacts"})
	assert.Contains(t, r.display(), "● Resolving: Resolving artifacts")

	r.OnProgress(t.Context(), usecase.ProgressEvent{Stage: string(usecase.StageDeploying), Message: "Deploying Counter"})
	assert.Contains(t, r.display(), "✓ Resolving (")
	assert.Contains(t, r.display(), "● Deploying: Deploying Counter")

	r.Error("failed to record deployment")
	assert.Contains(t, out.String(), "failed to record deployment\n")

	r.OnProgress(t.Context(), usecase.ProgressEvent{Stage: string(usecase.StageCompleted), Message: "Proxy deployed"})
	assert.Contains(t, out.String(), "✓ Deploying (")
	assert.Contains(t, out.String(), "✓ Completed\n")
	assert.Len(t, r.stages, 3)
}
