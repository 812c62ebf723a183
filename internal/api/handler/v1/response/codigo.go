package response

type CodigosAffectedResponse struct {
	Affected int64 `json:"affected"`
}
