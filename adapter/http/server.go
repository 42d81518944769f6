package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forest33/shark/business/entity"
	"github.com/forest33/shark/pkg/codec"
	"github.com/forest33/shark/pkg/format"
	"github.com/forest33/shark/pkg/logger"
)

type Server struct {
	cfg          *Config
	log          *logger.Logger
	sharkUseCase SharkUseCase
	router       *gin.Engine
}

type Config struct {
	Host         string
	Port         int
	ShowWarnings bool
}

type SharkUseCase interface {
	entity.PacketDissector
	Protocols() []*entity.ProtocolInfo
}

type dissectRequest struct {
	Protocol string `json:"protocol"`
	Data     string `json:"data" binding:"required"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Dissector string `json:"dissector,omitempty"`
	Offset    *int   `json:"offset,omitempty"`
}

func New(cfg *Config, log *logger.Logger, sharkUseCase SharkUseCase) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:          cfg,
		log:          log.Layer("rest"),
		sharkUseCase: sharkUseCase,
		router:       gin.New(),
	}

	return s, s.init()
}

func (s *Server) init() error {
	s.router.Use(gin.Recovery())
	s.router.GET("/api/v1/protocols", s.handlerProtocols)
	s.router.POST("/api/v1/dissect", s.handlerDissect)
	return nil
}

func (s *Server) Start() {
	go func() {
		s.log.Info().
			Str("host", s.cfg.Host).
			Int("port", s.cfg.Port).
			Msg("starting HTTP server")

		err := s.router.Run(fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port))
		if err != nil {
			s.log.Fatalf("failed to start HTTP server: %v", err)
		}
	}()
}

// Handler returns the router, used by tests and embedding servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handlerProtocols(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, s.sharkUseCase.Protocols())
}

func (s *Server) handlerDissect(ctx *gin.Context) {
	req := &dissectRequest{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, &errorResponse{Error: err.Error()})
		return
	}

	data, err := codec.ParseHex(req.Data)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, &errorResponse{Error: err.Error()})
		return
	}

	ds, err := s.sharkUseCase.Dissect(req.Protocol, data)
	if err != nil {
		s.log.Debug().Err(err).Str("protocol", req.Protocol).Msg("dissection failed")

		if de, ok := entity.AsDecodeError(err); ok {
			offset := de.Offset
			ctx.JSON(http.StatusUnprocessableEntity, &errorResponse{
				Error:     err.Error(),
				Dissector: de.Dissector,
				Offset:    &offset,
			})
			return
		}
		if errors.Is(err, entity.ErrUnknownProtocol) {
			ctx.JSON(http.StatusNotFound, &errorResponse{Error: err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, &errorResponse{Error: err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, format.NewDocument(ds, s.cfg.ShowWarnings))
}
