package steps

import "github.com/stepflow/stepflow/pkg/models"

// Patch is a tagged single-field update applied by UpdateFieldAt.
type Patch interface {
	apply(*models.Step)
}

// SetTitle replaces the step's title.
type SetTitle struct {
	Title string
}

func (p SetTitle) apply(s *models.Step) {
	s.Title = p.Title
}

// SetDescription replaces the step's description.
type SetDescription struct {
	Description string
}

func (p SetDescription) apply(s *models.Step) {
	s.Description = p.Description
}

// SetScreenshot attaches an asset locator to the step.
type SetScreenshot struct {
	URL string
}

func (p SetScreenshot) apply(s *models.Step) {
	s.Screenshot = &models.Screenshot{URL: p.URL}
}

// ClearScreenshot detaches the step's asset reference. The stored asset
// itself is not reclaimed.
type ClearScreenshot struct{}

func (p ClearScreenshot) apply(s *models.Step) {
	s.Screenshot = nil
}
