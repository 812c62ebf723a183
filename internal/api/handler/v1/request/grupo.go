package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateGrupoRequest struct {
	Nombre string `json:"nombre"`
}

func (req *CreateGrupoRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Nombre, validation.Required, validation.Length(2, 100)),
	)
}

type UpdateGrupoRequest struct {
	Nombre string `json:"nombre"`
}

func (req *UpdateGrupoRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Nombre, validation.Required, validation.Length(2, 100)),
	)
}

type CreateDepartamentoRequest struct {
	Nombre         string `json:"nombre"`
	TiempoVotacion int    `json:"tiempoVotacion"`
}

func (req *CreateDepartamentoRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Nombre, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.TiempoVotacion, validation.Required, validation.Min(1), validation.Max(120)),
	)
}

type AddCandidatoRequest struct {
	Nombre string `json:"nombre"`
}

func (req *AddCandidatoRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Nombre, validation.Required, validation.Length(2, 100)),
	)
}

type AddCargoRequest struct {
	Nombre string `json:"nombre"`
}

func (req *AddCargoRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Nombre, validation.Required, validation.Length(2, 100)),
	)
}
