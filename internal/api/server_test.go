package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ferdyn/votacion/internal/api"
	"github.com/ferdyn/votacion/internal/api/handler/v1/response"
	"github.com/ferdyn/votacion/internal/config"
	"github.com/ferdyn/votacion/internal/domain"
	"github.com/ferdyn/votacion/internal/relay"
	"github.com/ferdyn/votacion/internal/repository/dao"
)

const testPassword = "la-clave-del-anfitrion"

func newTestServer(t *testing.T) *api.Server {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(db))

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	conf := &config.AppConfig{
		API: &config.APIConfig{
			Environment:        "test",
			Port:               "8080",
			BaseURL:            "localhost:8080",
			JWTSigningKey:      "test-signing-key",
			AdminPasswordHash:  string(hash),
			AllowedCORSDomains: []string{"http://localhost:3000"},
		},
		Gin:      &config.GinConfig{Mode: "test"},
		Postgres: &config.PostgresConfig{},
	}

	return api.NewServer(conf, db, relay.NewHub())
}

func doRequest(t *testing.T, s *api.Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	s.Router.ServeHTTP(resp, req)

	return resp
}

func decodeJSON(t *testing.T, resp *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), out))
}

func login(t *testing.T, s *api.Server) string {
	t.Helper()

	resp := doRequest(t, s, http.MethodPost, "/api/v1/auth/login", "", jsonMap{"password": testPassword})
	require.Equal(t, http.StatusOK, resp.Code)

	var body response.LoginResponse
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.Token)

	return body.Token
}

// jsonMap is a request-body literal.
type jsonMap map[string]interface{}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	resp := doRequest(t, s, http.MethodPost, "/api/v1/auth/login", "", jsonMap{"password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	login(t, s)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	resp := doRequest(t, s, http.MethodGet, "/api/v1/grupos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = doRequest(t, s, http.MethodGet, "/api/v1/grupos", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

// TestVotingFlow walks the whole lifecycle: build a grupo, generate and
// activate codes, open voting, validate a code, cast the vote, and
// verify the code cannot vote twice.
func TestVotingFlow(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s)

	// Build the grupo tree.
	resp := doRequest(t, s, http.MethodPost, "/api/v1/grupos", token, jsonMap{"nombre": "Elecciones 2026"})
	require.Equal(t, http.StatusCreated, resp.Code)
	var grupo domain.Grupo
	decodeJSON(t, resp, &grupo)
	require.NotEmpty(t, grupo.ID)
	assert.False(t, grupo.Activo)

	resp = doRequest(t, s, http.MethodPost, "/api/v1/grupos/"+grupo.ID+"/departamentos", token,
		jsonMap{"nombre": "Jóvenes", "tiempoVotacion": 10})
	require.Equal(t, http.StatusCreated, resp.Code)
	var departamento domain.Departamento
	decodeJSON(t, resp, &departamento)

	var candidatos []domain.Candidato
	for _, nombre := range []string{"Ana López", "Pedro Gómez"} {
		resp = doRequest(t, s, http.MethodPost,
			"/api/v1/grupos/"+grupo.ID+"/departamentos/"+departamento.ID+"/candidatos", token,
			jsonMap{"nombre": nombre})
		require.Equal(t, http.StatusCreated, resp.Code)
		var candidato domain.Candidato
		decodeJSON(t, resp, &candidato)
		candidatos = append(candidatos, candidato)
	}

	resp = doRequest(t, s, http.MethodPost,
		"/api/v1/grupos/"+grupo.ID+"/departamentos/"+departamento.ID+"/cargos", token,
		jsonMap{"nombre": "Presidente"})
	require.Equal(t, http.StatusCreated, resp.Code)
	var cargo domain.Cargo
	decodeJSON(t, resp, &cargo)
	assert.Equal(t, 1, cargo.Orden)

	// Generate codes; they start pendiente and cannot pass the gate yet.
	resp = doRequest(t, s, http.MethodPost, "/api/v1/codigos", token,
		jsonMap{"cantidad": 3, "grupoId": grupo.ID})
	require.Equal(t, http.StatusCreated, resp.Code)
	var codigos []domain.CodigoAcceso
	decodeJSON(t, resp, &codigos)
	require.Len(t, codigos, 3)

	resp = doRequest(t, s, http.MethodPost, "/api/v1/codigos/validar", "",
		jsonMap{"codigo": codigos[0].Codigo, "grupoId": grupo.ID})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doRequest(t, s, http.MethodPost, "/api/v1/codigos/activar", token,
		jsonMap{"codigos": []string{codigos[0].Codigo}})
	require.Equal(t, http.StatusOK, resp.Code)
	var affected response.CodigosAffectedResponse
	decodeJSON(t, resp, &affected)
	assert.EqualValues(t, 1, affected.Affected)

	// Activating a departamento before its grupo is live must fail.
	resp = doRequest(t, s, http.MethodPost,
		"/api/v1/grupos/"+grupo.ID+"/departamentos/"+departamento.ID+"/activar", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doRequest(t, s, http.MethodPost, "/api/v1/grupos/"+grupo.ID+"/activar", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(t, s, http.MethodPost,
		"/api/v1/grupos/"+grupo.ID+"/departamentos/"+departamento.ID+"/activar", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	// The public entry points now see the live grupo.
	resp = doRequest(t, s, http.MethodGet, "/api/v1/grupos/activo", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var activo domain.Grupo
	decodeJSON(t, resp, &activo)
	assert.Equal(t, grupo.ID, activo.ID)

	resp = doRequest(t, s, http.MethodPost, "/api/v1/codigos/validar", "",
		jsonMap{"codigo": codigos[0].Codigo, "grupoId": grupo.ID})
	require.Equal(t, http.StatusOK, resp.Code)

	// Cast the vote through the legacy endpoint.
	resp = doRequest(t, s, http.MethodPost, "/api/registrar-voto", "",
		jsonMap{"departamentoId": departamento.ID, "candidatoId": candidatos[0].ID, "codigo": codigos[0].Codigo})
	require.Equal(t, http.StatusOK, resp.Code)
	var envelope response.Envelope
	decodeJSON(t, resp, &envelope)
	assert.True(t, envelope.Success)

	// The same code cannot vote twice.
	resp = doRequest(t, s, http.MethodPost, "/api/registrar-voto", "",
		jsonMap{"departamentoId": departamento.ID, "candidatoId": candidatos[1].ID, "codigo": codigos[0].Codigo})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	decodeJSON(t, resp, &envelope)
	assert.False(t, envelope.Success)

	// The tally reflects exactly one vote.
	resp = doRequest(t, s, http.MethodGet, "/api/v1/resultados/"+departamento.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var resultado domain.ResultadoVotacion
	decodeJSON(t, resp, &resultado)
	require.Len(t, resultado.Candidatos, 1)
	assert.Equal(t, candidatos[0].ID, resultado.Candidatos[0].ID)
	assert.Equal(t, 1, resultado.Candidatos[0].Votos)
}

func TestLegacySessionFlow(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s)

	resp := doRequest(t, s, http.MethodPost, "/api/v1/grupos", token, jsonMap{"nombre": "Elecciones 2026"})
	require.Equal(t, http.StatusCreated, resp.Code)
	var grupo domain.Grupo
	decodeJSON(t, resp, &grupo)

	resp = doRequest(t, s, http.MethodPost, "/api/v1/grupos/"+grupo.ID+"/departamentos", token,
		jsonMap{"nombre": "Damas", "tiempoVotacion": 5})
	require.Equal(t, http.StatusCreated, resp.Code)
	var departamento domain.Departamento
	decodeJSON(t, resp, &departamento)

	resp = doRequest(t, s, http.MethodPost,
		"/api/v1/grupos/"+grupo.ID+"/departamentos/"+departamento.ID+"/candidatos", token,
		jsonMap{"nombre": "María Pérez"})
	require.Equal(t, http.StatusCreated, resp.Code)
	var candidato domain.Candidato
	decodeJSON(t, resp, &candidato)

	// Without a session, enviar-voto is rejected.
	resp = doRequest(t, s, http.MethodPost, "/api/enviar-voto", "",
		jsonMap{"departamento": departamento.ID, "codigo": "AAA111", "candidato": candidato.ID})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doRequest(t, s, http.MethodPost, "/api/iniciar-votacion", "",
		jsonMap{"departamento": departamento.ID, "codigo": "AAA111"})
	require.Equal(t, http.StatusOK, resp.Code)
	var envelope response.Envelope
	decodeJSON(t, resp, &envelope)
	assert.True(t, envelope.Success)

	resp = doRequest(t, s, http.MethodPost, "/api/enviar-voto", "",
		jsonMap{"departamento": departamento.ID, "codigo": "AAA111", "candidato": candidato.ID})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(t, s, http.MethodPost, "/api/terminar-votacion", "",
		jsonMap{"departamento": departamento.ID})
	require.Equal(t, http.StatusOK, resp.Code)

	// Session is gone; further votes are rejected.
	resp = doRequest(t, s, http.MethodPost, "/api/enviar-voto", "",
		jsonMap{"departamento": departamento.ID, "codigo": "AAA111", "candidato": candidato.ID})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	// The tally recorded exactly one vote.
	resp = doRequest(t, s, http.MethodGet, "/api/v1/resultados/"+departamento.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var resultado domain.ResultadoVotacion
	decodeJSON(t, resp, &resultado)
	require.Len(t, resultado.Candidatos, 1)
	assert.Equal(t, 1, resultado.Candidatos[0].Votos)
}

func TestHealthcheck(t *testing.T) {
	s := newTestServer(t)

	resp := doRequest(t, s, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}
