// Package web provides HTTP request and response types for the workflow API.
package web

import (
	"encoding/json"

	"github.com/stepflow/stepflow/pkg/models"
)

// SaveWorkflowRequest carries the draft content committed by a save. Items
// arrive raw so they can be schema-checked before unmarshalling.
type SaveWorkflowRequest struct {
	Title       string          `json:"title"       validate:"omitempty,min=3"`
	Description string          `json:"description"`
	Items       json.RawMessage `json:"items"`
}

// SaveWorkflowResponse reports the committed document and its public locator.
// When LocatorChanged is set the client must navigate to the new locator.
type SaveWorkflowResponse struct {
	Workflow       *models.Workflow `json:"workflow"`
	Locator        string           `json:"locator"`
	LocatorChanged bool             `json:"locator_changed"`
}

// CreateWorkflowResponse points the client at the freshly created document's
// editor.
type CreateWorkflowResponse struct {
	Workflow *models.Workflow `json:"workflow"`
	Locator  string           `json:"locator"`
}

// ScreenshotResponse carries the stored asset locator to write into the
// step's screenshot field on the next save.
type ScreenshotResponse struct {
	URL string `json:"url"`
}
