package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type RegistrarVotoRequest struct {
	DepartamentoID string `json:"departamentoId"`
	CandidatoID    string `json:"candidatoId"`
	Codigo         string `json:"codigo"`
}

func (req *RegistrarVotoRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.DepartamentoID, validation.Required),
		validation.Field(&req.CandidatoID, validation.Required),
		validation.Field(&req.Codigo, validation.Required, validation.By(validateCodigoFormat)),
	)
}

type IniciarVotacionRequest struct {
	Departamento string `json:"departamento"`
	Codigo       string `json:"codigo"`
}

func (req *IniciarVotacionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Departamento, validation.Required),
		validation.Field(&req.Codigo, validation.Required),
	)
}

type EnviarVotoRequest struct {
	Departamento string `json:"departamento"`
	Codigo       string `json:"codigo"`
	Candidato    string `json:"candidato"`
}

func (req *EnviarVotoRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Departamento, validation.Required),
		validation.Field(&req.Codigo, validation.Required),
		validation.Field(&req.Candidato, validation.Required),
	)
}

type TerminarVotacionRequest struct {
	Departamento string `json:"departamento"`
}

func (req *TerminarVotacionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Departamento, validation.Required),
	)
}
