// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeArticleQuery(t *testing.T) {
	q := CodeArticleQuery("Code du travail", "L1221-1", 1577836800000)

	assert.Equal(t, "CODE_ETAT", q.Fond)
	require.Len(t, q.Recherche.Champs, 2)
	assert.Equal(t, "TEXT_NOM_CODE", q.Recherche.Champs[0].TypeChamp)
	assert.Equal(t, "Code du travail", q.Recherche.Champs[0].Criteres[0].Valeur)
	assert.Equal(t, "EXACTE", q.Recherche.Champs[0].Criteres[0].TypeRecherche)
	assert.Equal(t, "NUM_ARTICLE", q.Recherche.Champs[1].TypeChamp)
	assert.Equal(t, "L1221-1", q.Recherche.Champs[1].Criteres[0].Valeur)

	require.Len(t, q.Recherche.Filtres, 2)
	assert.Equal(t, "DATE_VERSION", q.Recherche.Filtres[0].Facette)
	assert.Equal(t, int64(1577836800000), q.Recherche.Filtres[0].SingleDate)
	assert.Equal(t, "TEXT_LEGAL_STATUS", q.Recherche.Filtres[1].Facette)
	assert.Equal(t, "VIGUEUR", q.Recherche.Filtres[1].Valeur)

	assert.Equal(t, 10, q.Recherche.PageSize)
	assert.Equal(t, "PERTINENCE", q.Recherche.Sort)
	assert.Equal(t, "DEFAUT", q.Recherche.TypePagination)
}

func TestCodeArticleQuery_NoDate(t *testing.T) {
	q := CodeArticleQuery("Code civil", "1382", 0)

	// Without a date hint the only filter is the in-force status.
	require.Len(t, q.Recherche.Filtres, 1)
	assert.Equal(t, "TEXT_LEGAL_STATUS", q.Recherche.Filtres[0].Facette)
}

func TestCodeOnlyQuery(t *testing.T) {
	q := CodeOnlyQuery("Code du travail")

	assert.Equal(t, "CODE_ETAT", q.Fond)
	require.Len(t, q.Recherche.Champs, 1)
	assert.Equal(t, "TEXT_NOM_CODE", q.Recherche.Champs[0].TypeChamp)
	assert.Equal(t, 5, q.Recherche.PageSize)
}

func TestSearchQuery_JSONShape(t *testing.T) {
	data, err := json.Marshal(CodeArticleQuery("Code civil", "1382", 0))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Contains(t, decoded, "fond")
	recherche, ok := decoded["recherche"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"champs", "filtres", "pageNumber", "pageSize", "operateur", "sort", "typePagination"} {
		assert.Contains(t, recherche, key)
	}

	// An absent date must not serialize a zero singleDate.
	filtres := recherche["filtres"].([]any)
	require.Len(t, filtres, 1)
	assert.NotContains(t, filtres[0].(map[string]any), "singleDate")
}
