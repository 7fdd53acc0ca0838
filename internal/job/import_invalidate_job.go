package job

import (
	"context"

	"github.com/mireo/fitvault/internal/service"
)

// ImportInvalidateJob sweeps import jobs that started long ago but
// never recorded an outcome, marking them failed so the listing stops
// showing them as in progress.
type ImportInvalidateJob struct {
	imports *service.ImporterService
}

func NewImportInvalidateJob(imports *service.ImporterService) *ImportInvalidateJob {
	return &ImportInvalidateJob{imports: imports}
}

func (j *ImportInvalidateJob) Name() string {
	return "import_invalidate"
}

func (j *ImportInvalidateJob) Run(ctx context.Context) error {
	if j.imports == nil {
		return nil
	}
	return j.imports.InvalidateStaleJobs(ctx)
}
