// Package server exposes the posture checker over HTTP with gin.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/optimode/mailposture"
)

// Greeting is returned by GET /.
const Greeting = "Mailyser DNS Checker API"

var errInternal = errors.New("internal server error")

// Checker is the part of mailposture.Checker the handlers use.
type Checker interface {
	Check(ctx context.Context, email string) (mailposture.Result, error)
}

// Config holds the dependencies of the router
type Config struct {
	Checker Checker
	Logger  *logrus.Entry
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

type checkRequest struct {
	Email string `json:"email" binding:"required"`
}

// NewRouter builds the gin engine with every route and middleware.
func NewRouter(cfg Config) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = logrus.NewEntry(l)
	}
	logger = logger.WithField("component", "http")

	r := gin.New()
	r.Use(RequestID(), Logger(logger), Recovery(logger), CORS())

	h := &handler{checker: cfg.Checker, logger: logger}
	r.GET("/", h.root)
	r.GET("/healthz", h.healthz)
	r.POST("/check-dns", h.checkDNS)
	return r
}

type handler struct {
	checker Checker
	logger  *logrus.Entry
}

func (h *handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": Greeting})
}

func (h *handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) checkDNS(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, err)
		return
	}

	result, err := h.checker.Check(c.Request.Context(), req.Email)
	if err != nil {
		fail(c, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"domain":     result.Domain,
		"overall":    result.OverallStatus,
		"request_id": c.GetString("request_id"),
	}).Debug("dns posture checked")

	c.JSON(http.StatusOK, result)
}

// fail aborts with 400 and the checking error as detail.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Detail: "Error checking DNS: " + err.Error(),
	})
}
