package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
)

var codigoFormat = regexp2.MustCompile(`^[A-Z0-9]{6}$`, regexp2.None)

func validateCodigoFormat(value interface{}) error {
	codigo, _ := value.(string)
	ok, err := codigoFormat.MatchString(codigo)
	if err != nil || !ok {
		return errors.New("must be 6 uppercase alphanumeric characters")
	}

	return nil
}

type GenerateCodigosRequest struct {
	Cantidad int    `json:"cantidad"`
	GrupoID  string `json:"grupoId"`
}

func (req *GenerateCodigosRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Cantidad, validation.Required, validation.Min(1), validation.Max(1000)),
		validation.Field(&req.GrupoID, validation.Required),
	)
}

// CodigosSelectionRequest carries the set of codes a bulk
// activate/deactivate/delete applies to.
type CodigosSelectionRequest struct {
	Codigos []string `json:"codigos"`
}

func (req *CodigosSelectionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Codigos, validation.Required, validation.Length(1, 1000)),
	)
}

type ValidateCodigoRequest struct {
	Codigo  string `json:"codigo"`
	GrupoID string `json:"grupoId"`
}

func (req *ValidateCodigoRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Codigo, validation.Required, validation.By(validateCodigoFormat)),
		validation.Field(&req.GrupoID, validation.Required),
	)
}
