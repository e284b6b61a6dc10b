// SPDX-License-Identifier: MPL-2.0

package pipeline_test

import (
	"errors"
	"testing"

	"github.com/upkremap/upkremap/internal/pipeline"

	"github.com/stretchr/testify/assert"
)

func TestStageError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	stages := []pipeline.Stage{
		pipeline.StagePrepare, pipeline.StageExtract, pipeline.StageBuild, pipeline.StageRename,
		pipeline.StageRewrite, pipeline.StagePack, pipeline.StageConfirm, pipeline.StageReport,
	}

	seen := make(map[pipeline.Stage]bool)
	for _, stage := range stages {
		assert.NotEmpty(t, string(stage))
		assert.False(t, seen[stage], "duplicate stage %q", stage)
		seen[stage] = true

		err := &pipeline.StageError{Archive: "Props.unitypackage", Stage: stage, Err: cause}
		assert.Equal(t, "Props.unitypackage: "+string(stage)+": boom", err.Error())
		assert.ErrorIs(t, err, cause)
	}
}
