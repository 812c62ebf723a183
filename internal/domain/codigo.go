package domain

// Code states. Transitions only move forward: pendiente -> activo ->
// utilizado. Desactivado is reachable from pendiente or activo; a
// utilizado code never becomes usable again.
const (
	EstadoPendiente   = "pendiente"
	EstadoActivo      = "activo"
	EstadoUtilizado   = "utilizado"
	EstadoDesactivado = "desactivado"
)

// CodigoAcceso is a one-time token admitting one voter to cast one vote
// within its owning grupo.
type CodigoAcceso struct {
	Codigo  string `json:"codigo"`
	Estado  string `json:"estado"`
	GrupoID string `json:"grupo_id"`
}
