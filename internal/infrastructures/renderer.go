package infrastructures

import (
	"encoding/json"
	"fmt"

	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/models"
)

// JSONDocumentRenderer hands the fully resolved invoice document to callers
// as JSON. The real print/PDF renderer is an external collaborator; this is
// the handoff format it consumes.
type JSONDocumentRenderer struct{}

func NewJSONDocumentRenderer() *JSONDocumentRenderer {
	return &JSONDocumentRenderer{}
}

func (r *JSONDocumentRenderer) Render(doc *models.InvoiceDocument) (string, []byte, error) {
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("failed to render invoice document: %w", err)
	}
	return "application/json", body, nil
}
