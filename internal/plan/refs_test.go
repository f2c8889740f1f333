// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractExplicitRefs(t *testing.T) {
	tests := []struct {
		name         string
		question     string
		wantArticles []string
		wantCodes    []string
		wantLaws     []string
		wantDates    []string
	}{
		{
			name:         "article and code",
			question:     "Que dit l'article L. 1221-1 du code du travail ?",
			wantArticles: []string{"L1221-1"},
			wantCodes:    []string{"code du travail"},
			wantLaws:     []string{},
			wantDates:    []string{},
		},
		{
			name:         "bare article keyword",
			question:     "L'article 1382 s'applique-t-il encore ?",
			wantArticles: []string{"1382"},
			wantCodes:    []string{},
			wantLaws:     []string{},
			wantDates:    []string{},
		},
		{
			name:         "law and date",
			question:     "La loi n° 78-17 est-elle encore applicable au 2024-06-01 ?",
			wantArticles: []string{},
			wantCodes:    []string{},
			wantLaws:     []string{"78-17"},
			wantDates:    []string{"2024-06-01"},
		},
		{
			name:         "slash date normalized",
			question:     "Version en vigueur au 2020/01/01",
			wantArticles: []string{},
			wantCodes:    []string{},
			wantLaws:     []string{},
			wantDates:    []string{"2020-01-01"},
		},
		{
			name:         "duplicates collapsed",
			question:     "L1221-1 puis encore l. 1221-1 du Code du travail, code du travail",
			wantArticles: []string{"L1221-1"},
			wantCodes:    []string{"code du travail"},
			wantLaws:     []string{},
			wantDates:    []string{},
		},
		{
			name:         "code with elision",
			question:     "Le code de l'environnement impose quoi ?",
			wantArticles: []string{},
			wantCodes:    []string{"code de l'environnement"},
			wantLaws:     []string{},
			wantDates:    []string{},
		},
		{
			name:         "trailing verb not captured",
			question:     "Le code du travail impose un contrat écrit ?",
			wantArticles: []string{},
			wantCodes:    []string{"code du travail"},
			wantLaws:     []string{},
			wantDates:    []string{},
		},
		{
			name:         "multi-word code name cut at verb",
			question:     "Que dispose le code de la sécurité sociale sur ce point ?",
			wantArticles: []string{},
			wantCodes:    []string{"code de la sécurité sociale"},
			wantLaws:     []string{},
			wantDates:    []string{},
		},
		{
			name:         "code name at end of question",
			question:     "Montre-moi le code de la consommation",
			wantArticles: []string{},
			wantCodes:    []string{"code de la consommation"},
			wantLaws:     []string{},
			wantDates:    []string{},
		},
		{
			name:         "no references",
			question:     "Puis-je licencier quelqu'un pendant sa période d'essai ?",
			wantArticles: []string{},
			wantCodes:    []string{},
			wantLaws:     []string{},
			wantDates:    []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refs := ExtractExplicitRefs(tt.question)
			assert.Equal(t, tt.wantArticles, refs.Articles)
			assert.Equal(t, tt.wantCodes, refs.Codes)
			assert.Equal(t, tt.wantLaws, refs.Laws)
			assert.Equal(t, tt.wantDates, refs.Dates)
		})
	}
}
