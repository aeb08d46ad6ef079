package server

import (
	"context"
	"net/http"
	"time"

	"github.com/Aashish23092/ocr-text-extraction/config"
	"github.com/Aashish23092/ocr-text-extraction/handler"
	"github.com/Aashish23092/ocr-text-extraction/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	httpServer *http.Server
	log        *zap.Logger
}

// NewRouter wires the middleware chain and routes. The size guard runs before
// route dispatch, so it covers every path.
func NewRouter(cfg *config.Config, extractor handler.TextExtractor, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.BodySizeGuard(cfg.Upload.MaxFileSize))

	// Parts larger than this spill to temp files while the form is parsed.
	router.MaxMultipartMemory = cfg.Upload.MaxFileSize

	h := handler.NewExtractionHandler(extractor, log)

	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.POST("/extract-text", h.ExtractText)

	return router
}

func New(cfg *config.Config, extractor handler.TextExtractor, log *zap.Logger) *Server {
	gin.SetMode(cfg.Server.Mode)

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           NewRouter(cfg, extractor, log),
			ReadHeaderTimeout: 10 * time.Second,
			MaxHeaderBytes:    1 << 20, // 1 MB
		},
		log: log,
	}
}

// Run blocks serving HTTP until Shutdown is called.
func (s *Server) Run() error {
	s.log.Info("Server is running", zap.String("address", s.httpServer.Addr))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server")
	return s.httpServer.Shutdown(ctx)
}
