// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

// Search vocabulary for the consult/search endpoint.
const (
	fundCodeEtat = "CODE_ETAT"

	// TEXT_NOM_CODE is more stable than TITLE for code lookups.
	fieldCodeTitle  = "TEXT_NOM_CODE"
	fieldArticleNum = "NUM_ARTICLE"

	facetDateVersion = "DATE_VERSION"
	facetLegalStatus = "TEXT_LEGAL_STATUS"
	statusInForce    = "VIGUEUR"

	matchExact    = "EXACTE"
	operatorAnd   = "ET"
	sortRelevance = "PERTINENCE"

	// ARTICLE pagination can trigger a 500 on the DILA side; DEFAUT is safe.
	paginationDefault = "DEFAUT"
)

// SearchQuery is the API-shaped payload for one search attempt. Build it
// with CodeArticleQuery or CodeOnlyQuery and treat it as immutable.
type SearchQuery struct {
	Fond      string    `json:"fond"`
	Recherche Recherche `json:"recherche"`
}

// Recherche carries the field criteria, filters, pagination, and sort.
type Recherche struct {
	Champs         []Champ  `json:"champs"`
	Filtres        []Filtre `json:"filtres"`
	PageNumber     int      `json:"pageNumber"`
	PageSize       int      `json:"pageSize"`
	Operateur      string   `json:"operateur"`
	Sort           string   `json:"sort"`
	TypePagination string   `json:"typePagination"`
}

// Champ is one typed field criterion group.
type Champ struct {
	TypeChamp string    `json:"typeChamp"`
	Criteres  []Critere `json:"criteres"`
	Operateur string    `json:"operateur"`
}

// Critere is one match criterion within a field.
type Critere struct {
	TypeRecherche string `json:"typeRecherche"`
	Valeur        string `json:"valeur"`
	Operateur     string `json:"operateur"`
}

// Filtre is a facet filter. SingleDate is set for DATE_VERSION, Valeur for
// value facets such as the legal-status filter.
type Filtre struct {
	Facette    string `json:"facette"`
	SingleDate int64  `json:"singleDate,omitempty"`
	Valeur     string `json:"valeur,omitempty"`
}

func exactChamp(field, value string) Champ {
	return Champ{
		TypeChamp: field,
		Criteres:  []Critere{{TypeRecherche: matchExact, Valeur: value, Operateur: operatorAnd}},
		Operateur: operatorAnd,
	}
}

// CodeArticleQuery builds the primary search: exact code title and article
// number, an optional date-version filter (epoch millis, 0 means absent),
// and the in-force status filter.
func CodeArticleQuery(codeTitle, articleNum string, dateMillis int64) SearchQuery {
	var filtres []Filtre
	if dateMillis > 0 {
		filtres = append(filtres, Filtre{Facette: facetDateVersion, SingleDate: dateMillis})
	}
	filtres = append(filtres, Filtre{Facette: facetLegalStatus, Valeur: statusInForce})

	return SearchQuery{
		Fond: fundCodeEtat,
		Recherche: Recherche{
			Champs: []Champ{
				exactChamp(fieldCodeTitle, codeTitle),
				exactChamp(fieldArticleNum, articleNum),
			},
			Filtres:        filtres,
			PageNumber:     1,
			PageSize:       10,
			Operateur:      operatorAnd,
			Sort:           sortRelevance,
			TypePagination: paginationDefault,
		},
	}
}

// CodeOnlyQuery builds the broadened fallback search used when the primary
// call itself fails: code title only, smaller page, no date or article
// filter.
func CodeOnlyQuery(codeTitle string) SearchQuery {
	return SearchQuery{
		Fond: fundCodeEtat,
		Recherche: Recherche{
			Champs:         []Champ{exactChamp(fieldCodeTitle, codeTitle)},
			Filtres:        []Filtre{{Facette: facetLegalStatus, Valeur: statusInForce}},
			PageNumber:     1,
			PageSize:       5,
			Operateur:      operatorAnd,
			Sort:           sortRelevance,
			TypePagination: paginationDefault,
		},
	}
}
