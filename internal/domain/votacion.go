package domain

import "time"

// Votacion is the legacy session row used by the /api/iniciar-votacion
// and /api/enviar-voto endpoints. The tally itself is authoritative in
// Candidato/ResultadoVotacion; Votos is kept only for wire
// compatibility with the old session shape.
type Votacion struct {
	ID           uint           `json:"id"`
	Departamento string         `json:"departamento"`
	Codigo       string         `json:"codigo"`
	Activa       bool           `json:"activa"`
	Votos        map[string]int `json:"votos"`
	CreatedAt    time.Time      `json:"createdAt"`
}
