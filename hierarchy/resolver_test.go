package hierarchy

import (
	"encoding/json"
	"testing"

	"github.com/adaptabrasil/adapta-metadata/catalog"
	"github.com/adaptabrasil/adapta-metadata/model"
	"github.com/stretchr/testify/assert"
)

func parent(id int) *int {
	return &id
}

func sampleResolver() *Resolver {
	return New(catalog.New([]model.Indicator{
		{ID: 1, Level: 1, Name: "Recursos Hídricos", ImageURL: "https://example.localdomain/rh.png",
			MenuStructure: json.RawMessage(`{"defaultclippingresolution": {"resolution_id": "microrregiao"}}`)},
		{ID: 2, ParentID: parent(1), Level: 2, Name: "Seca"},
		{ID: 3, ParentID: parent(2), Level: 3, Name: "Índice de seca"},
		{ID: 4, ParentID: parent(3), Level: 4, Name: "Exposição"},
		// orphan: parent 99 does not exist
		{ID: 5, ParentID: parent(99), Level: 3, Name: "Órfão"},
		// cycle: 6 -> 7 -> 6, neither at level 1
		{ID: 6, ParentID: parent(7), Level: 2, Name: "Ciclo A"},
		{ID: 7, ParentID: parent(6), Level: 3, Name: "Ciclo B"},
		// level 1 without image or menu structure
		{ID: 8, Level: 1, Name: "Segurança Alimentar"},
		{ID: 9, ParentID: parent(8), Level: 2, Name: "Segurança Alimentar"},
		{ID: 10, Level: 1, Title: "Saúde", MenuStructure: json.RawMessage(`{"defaultclippingresolution": 3}`)},
	}))
}

func TestHierarchyTitle_ThreeLevels(t *testing.T) {
	r := sampleResolver()
	assert.Equal(t, "AdaptaBrasil: Recursos Hídricos - Seca - Índice de seca", r.HierarchyTitle(3))
}

func TestHierarchyTitle_SkipsIntermediateLevels(t *testing.T) {
	r := sampleResolver()
	// level 3 ancestors are not collected, only the indicator itself is appended
	assert.Equal(t, "AdaptaBrasil: Recursos Hídricos - Seca - Exposição", r.HierarchyTitle(4))
}

func TestHierarchyTitle_TopLevels(t *testing.T) {
	r := sampleResolver()
	assert.Equal(t, "AdaptaBrasil: Recursos Hídricos", r.HierarchyTitle(1))
	assert.Equal(t, "AdaptaBrasil: Recursos Hídricos - Seca", r.HierarchyTitle(2))
}

func TestHierarchyTitle_Deduplicates(t *testing.T) {
	r := sampleResolver()
	assert.Equal(t, "AdaptaBrasil: Segurança Alimentar", r.HierarchyTitle(9))
}

func TestHierarchyTitle_PartialChains(t *testing.T) {
	r := sampleResolver()
	assert.Equal(t, "AdaptaBrasil: Órfão", r.HierarchyTitle(5))
	assert.Equal(t, "AdaptaBrasil: ", r.HierarchyTitle(404))
}

func TestHierarchyTitle_TerminatesOnCycle(t *testing.T) {
	r := sampleResolver()
	assert.Equal(t, "AdaptaBrasil: Ciclo A - Ciclo B", r.HierarchyTitle(7))
}

func TestHierarchyTitle_AlwaysPrefixed(t *testing.T) {
	r := sampleResolver()
	for _, id := range []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 404} {
		assert.Regexp(t, "^AdaptaBrasil: ", r.HierarchyTitle(id))
	}
}

func TestOverviewImage(t *testing.T) {
	r := sampleResolver()
	assert.Equal(t, "https://example.localdomain/rh.png", r.OverviewImage(1))
	assert.Equal(t, "https://example.localdomain/rh.png", r.OverviewImage(4))
	assert.Equal(t, "", r.OverviewImage(5), "no level-1 ancestor")
	assert.Equal(t, "", r.OverviewImage(6), "cycle without level-1 ancestor")
	assert.Equal(t, "", r.OverviewImage(9), "level-1 ancestor without image")
	assert.Equal(t, "", r.OverviewImage(404))
}

func TestDefaultResolution(t *testing.T) {
	r := sampleResolver()
	assert.Equal(t, "microrregiao", r.DefaultResolution(4))
	assert.Equal(t, model.FallbackResolution, r.DefaultResolution(5))
	assert.Equal(t, model.FallbackResolution, r.DefaultResolution(7))
	assert.Equal(t, model.FallbackResolution, r.DefaultResolution(9))
	assert.Equal(t, model.FallbackResolution, r.DefaultResolution(10), "malformed menu structure")
	assert.Equal(t, model.FallbackResolution, r.DefaultResolution(404))
}
