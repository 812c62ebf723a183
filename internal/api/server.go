package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/ferdyn/votacion/docs"
	v1 "github.com/ferdyn/votacion/internal/api/handler/v1"
	"github.com/ferdyn/votacion/internal/api/middleware"
	"github.com/ferdyn/votacion/internal/config"
	"github.com/ferdyn/votacion/internal/relay"
	"github.com/ferdyn/votacion/internal/repository"
	"github.com/ferdyn/votacion/internal/repository/dao"
	"github.com/ferdyn/votacion/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	hub *relay.Hub
}

func NewServer(conf *config.AppConfig, db *gorm.DB, hub *relay.Hub) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		hub:    hub,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler()
	grupoHandler := s.initGrupoHandler(db)
	codigoHandler := s.initCodigoHandler(db)
	resultadoHandler := s.initResultadoHandler(db)
	votacionHandler := s.initVotacionHandler(db)
	relayHandler := v1.NewRelayHandler(hub)
	s.MountHandlers(authHandler, grupoHandler, codigoHandler, resultadoHandler, votacionHandler, relayHandler)

	return s
}

func (s *Server) initAuthHandler() *v1.AuthHandler {
	svc := service.NewAuthService(s.Config.API.AdminPasswordHash, s.Config.API.JWTSigningKey)
	handler := v1.NewAuthHandler(svc)

	return handler
}

func (s *Server) initGrupoHandler(db *gorm.DB) *v1.GrupoHandler {
	grupoDAO := dao.NewGrupoDAO(db)
	repo := repository.NewGrupoRepository(grupoDAO)
	svc := service.NewGrupoService(repo, s.hub)
	handler := v1.NewGrupoHandler(svc)

	return handler
}

func (s *Server) initCodigoHandler(db *gorm.DB) *v1.CodigoHandler {
	codigoDAO := dao.NewCodigoDAO(db)
	repo := repository.NewCodigoRepository(codigoDAO)
	grupoRepo := repository.NewGrupoRepository(dao.NewGrupoDAO(db))
	svc := service.NewCodigoService(repo, grupoRepo, s.hub)
	handler := v1.NewCodigoHandler(svc)

	return handler
}

func (s *Server) initResultadoHandler(db *gorm.DB) *v1.ResultadoHandler {
	votoDAO := dao.NewVotoDAO(db)
	repo := repository.NewVotoRepository(votoDAO)
	resultadoRepo := repository.NewResultadoRepository(dao.NewResultadoDAO(db))
	svc := service.NewVotoService(repo, resultadoRepo, s.hub)
	handler := v1.NewResultadoHandler(svc)

	return handler
}

func (s *Server) initVotacionHandler(db *gorm.DB) *v1.VotacionHandler {
	votacionDAO := dao.NewVotacionDAO(db)
	repo := repository.NewVotacionRepository(votacionDAO)
	votoRepo := repository.NewVotoRepository(dao.NewVotoDAO(db))
	svc := service.NewVotacionService(repo, votoRepo, s.hub)
	votoSvc := service.NewVotoService(votoRepo, repository.NewResultadoRepository(dao.NewResultadoDAO(db)), s.hub)
	handler := v1.NewVotacionHandler(svc, votoSvc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	grupoHandler *v1.GrupoHandler,
	codigoHandler *v1.CodigoHandler,
	resultadoHandler *v1.ResultadoHandler,
	votacionHandler *v1.VotacionHandler,
	relayHandler *v1.RelayHandler,
) {
	const basePath = "/api/v1"

	// Voter-facing routes need no token; the access code is the
	// credential.
	public := s.Router.Group(basePath)
	{
		public.POST("/auth/login", authHandler.HandleLogin)
		public.POST("/codigos/validar", codigoHandler.HandleValidateCodigo)
		public.GET("/grupos/activo", grupoHandler.HandleGetGrupoActivo)
		public.GET("/resultados", resultadoHandler.HandleGetResultados)
		public.GET("/resultados/:departamentoID", resultadoHandler.HandleGetResultadosByDepartamento)
		public.GET("/eventos", relayHandler.HandleEventos)
	}

	admin := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		admin.POST("/grupos", grupoHandler.HandleCreateGrupo)
		admin.GET("/grupos", grupoHandler.HandleGetGrupos)
		admin.GET("/grupos/:grupoID", grupoHandler.HandleGetGrupo)
		admin.PUT("/grupos/:grupoID", grupoHandler.HandleUpdateGrupo)
		admin.DELETE("/grupos/:grupoID", grupoHandler.HandleDeleteGrupo)
		admin.POST("/grupos/:grupoID/activar", grupoHandler.HandleActivateGrupo)
		admin.POST("/grupos/:grupoID/desactivar", grupoHandler.HandleDeactivateGrupo)
		admin.POST("/grupos/:grupoID/departamentos", grupoHandler.HandleCreateDepartamento)
		admin.POST("/grupos/:grupoID/departamentos/:departamentoID/candidatos", grupoHandler.HandleAddCandidato)
		admin.POST("/grupos/:grupoID/departamentos/:departamentoID/cargos", grupoHandler.HandleAddCargo)
		admin.POST("/grupos/:grupoID/departamentos/:departamentoID/activar", grupoHandler.HandleActivateDepartamento)
		admin.POST("/grupos/:grupoID/departamentos/:departamentoID/finalizar", grupoHandler.HandleFinalizeDepartamento)

		admin.POST("/codigos", codigoHandler.HandleGenerateCodigos)
		admin.GET("/codigos", codigoHandler.HandleGetCodigos)
		admin.POST("/codigos/activar", codigoHandler.HandleActivateCodigos)
		admin.POST("/codigos/desactivar", codigoHandler.HandleDeactivateCodigos)
		admin.DELETE("/codigos", codigoHandler.HandleDeleteCodigos)
	}

	// The pre-v1 voting endpoints keep their original paths and
	// envelope; deployed voter screens still call them.
	legacy := s.Router.Group("/api")
	{
		legacy.POST("/registrar-voto", votacionHandler.HandleRegistrarVoto)
		legacy.POST("/iniciar-votacion", votacionHandler.HandleIniciarVotacion)
		legacy.POST("/enviar-voto", votacionHandler.HandleEnviarVoto)
		legacy.POST("/terminar-votacion", votacionHandler.HandleTerminarVotacion)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "API de votación"
	docs.SwaggerInfo.Description = "Voting backend for church group elections."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
