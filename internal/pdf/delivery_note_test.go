package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestalba/internal/models"
)

func TestRenderDeliveryNote(t *testing.T) {
	gen := NewDeliveryNoteGenerator("Gestalba S.L.")

	detail := &models.DeliveryNoteDetail{
		DeliveryNote: models.DeliveryNote{
			ID:     7,
			Format: models.FormatMixed,
			Entries: []models.DeliveryNoteEntry{
				{Person: "Juan Pérez", Hours: 8},
				{Material: "Cemento", Quantity: 12.5},
			},
			CreatedAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		},
		Client: &models.Client{
			Name: "Construcciones ACME",
			CIF:  "B12345678",
			Address: models.Address{
				Street: "Calle Mayor", Number: 3, Postal: "28001", City: "Madrid", Province: "Madrid",
			},
		},
		Project: &models.Project{
			Name:        "Reforma nave",
			ProjectCode: "PRJ-001",
		},
	}

	data, err := gen.RenderDeliveryNote(detail)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderDeliveryNoteWithoutJoins(t *testing.T) {
	gen := NewDeliveryNoteGenerator("Gestalba S.L.")

	detail := &models.DeliveryNoteDetail{
		DeliveryNote: models.DeliveryNote{
			ID:      1,
			Format:  models.FormatHours,
			Entries: []models.DeliveryNoteEntry{{Person: "Ana", Hours: 4}},
		},
	}
	data, err := gen.RenderDeliveryNote(detail)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
