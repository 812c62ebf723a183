package domain

// CandidatoResultado is one row of the denormalized results view.
type CandidatoResultado struct {
	ID            string  `json:"id"`
	Nombre        string  `json:"nombre"`
	Votos         int     `json:"votos"`
	CargoAsignado *string `json:"cargoAsignado,omitempty"`
}

// ResultadoVotacion groups tallied candidates by department for the
// results and projection screens.
type ResultadoVotacion struct {
	DepartamentoID string               `json:"departamentoId"`
	Candidatos     []CandidatoResultado `json:"candidatos"`
}
