package domain

import "time"

// Cargo is an office within a department. Orden is 1-based and assigned
// when the cargo is appended; it orders offices for eventual
// candidate-to-office assignment.
type Cargo struct {
	ID             string `json:"id"`
	DepartamentoID string `json:"departamentoId"`
	Nombre         string `json:"nombre"`
	Orden          int    `json:"orden"`
}

// Candidato carries the live vote counter. Votos is only ever mutated
// through the atomic vote transaction, never by admin updates.
type Candidato struct {
	ID             string  `json:"id"`
	DepartamentoID string  `json:"departamentoId"`
	Nombre         string  `json:"nombre"`
	Votos          int     `json:"votos"`
	CargoAsignado  *string `json:"cargoAsignado,omitempty"`
}

type Departamento struct {
	ID             string      `json:"id"`
	GrupoID        string      `json:"grupoId"`
	Nombre         string      `json:"nombre"`
	Cargos         []Cargo     `json:"cargos"`
	Candidatos     []Candidato `json:"candidatos"`
	TiempoVotacion int         `json:"tiempoVotacion"` // minutes
	Activo         bool        `json:"activo"`
	ActivadoEn     *time.Time  `json:"activadoEn,omitempty"`
}

// Grupo is a top-level voting event. At most one grupo is activo at a
// time, and within an active grupo at most one departamento is activo.
type Grupo struct {
	ID            string         `json:"id"`
	Nombre        string         `json:"nombre"`
	Departamentos []Departamento `json:"departamentos"`
	Activo        bool           `json:"activo"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}
