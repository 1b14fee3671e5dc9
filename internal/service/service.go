package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gitlab.com/epixlabs/contact-relay/internal/config"
	"gitlab.com/epixlabs/contact-relay/internal/logging"
	internalmodel "gitlab.com/epixlabs/contact-relay/internal/model"
	"gitlab.com/epixlabs/contact-relay/internal/relay"
	"gitlab.com/epixlabs/contact-relay/pkg/model"
)

// unknownError is reported when a failure carries no description of its own.
const unknownError = "Unknown error"

// requestIDHeader carries the id that ties log lines to a request.
const requestIDHeader = "X-Request-ID"

// Sender delivers a formatted message to the messaging API.
type Sender interface {
	SendMessage(ctx context.Context, text string) (*internalmodel.APIResponse, error)
}

// sender is the messaging client used by all requests.
var sender Sender

// brand is the name used in the headline of forwarded messages.
var brand = config.DefaultBrand

// Setup stores the collaborators of the relay endpoint. It must be called before the router
// serves requests. The sender can be the real Telegram client or a stub within unit tests.
func Setup(cfg *config.Config, s Sender) {
	sender = s
	brand = cfg.Brand
	if brand == "" {
		brand = config.DefaultBrand
	}
}

// SetupHttpRouter initializes the REST API router and registers all endpoints.
func SetupHttpRouter() *gin.Engine {
	var router *gin.Engine
	if strings.EqualFold(os.Getenv("GIN_LOGGING"), "off") {
		logging.Log.Info("Turning off HTTP request logging.")
		router = gin.New()
	} else {
		router = gin.New()
		router.Use(gin.Logger())
	}
	router.Use(gin.CustomRecovery(recoverPanic))
	router.Use(requestID)
	router.POST("/api/contact", relayContact)
	router.GET("/healthz", health)
	return router
}

// requestID makes sure every request has an id, taking the caller's one if present.
func requestID(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDHeader, id)
	c.Header(requestIDHeader, id)
	c.Next()
}

// health answers liveness probes.
//
// Example REST API call:
//
//	> curl http://localhost:8080/healthz
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// relayContact formats the submission in the request's JSON and forwards it to the messaging API.
// It responds with {"ok":true} if the API accepted the message. Every failure, be it invalid
// JSON, a network problem or a rejection by the API, is answered with {"ok":false,"error":...}
// and the INTERNAL SERVER ERROR status code.
//
// Limitations:
// - Fields are not validated here. Missing fields are forwarded as "-".
// - The call to the messaging API is made exactly once and is not cancelled when the caller
// goes away.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/contact --request "POST" --include --header "Content-Type: application/json" --data '{"name": "Jane", "email": "jane@x.com", "message": "Need a website"}'
func relayContact(c *gin.Context) {
	log := logging.Log.WithField("request_id", c.GetString(requestIDHeader))

	submission, err := decodeSubmission(c.Request.Body)
	if err != nil {
		fail(c, log, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	text := relay.FormatMessage(brand, submission)
	res, err := sender.SendMessage(context.WithoutCancel(c.Request.Context()), text)
	if err != nil {
		fail(c, log, err)
		return
	}
	if !res.OK {
		fail(c, log, errors.New(res.Description))
		return
	}

	log.Info("contact submission forwarded")
	c.JSON(http.StatusOK, model.Response{OK: true})
}

// decodeSubmission reads exactly one JSON object from body. A literal null or anything after the
// object is an error.
func decodeSubmission(body io.Reader) (model.ContactSubmission, error) {
	if body == nil {
		return model.ContactSubmission{}, errors.New("empty request body")
	}
	decoder := json.NewDecoder(body)
	var submission *model.ContactSubmission
	if err := decoder.Decode(&submission); err != nil {
		return model.ContactSubmission{}, err
	}
	if submission == nil {
		return model.ContactSubmission{}, errors.New("request body is null")
	}
	if err := decoder.Decode(&json.RawMessage{}); err != io.EOF {
		return model.ContactSubmission{}, errors.New("unexpected data after the JSON object")
	}
	return *submission, nil
}

// recoverPanic answers a request whose handler panicked with the uniform failure body.
func recoverPanic(c *gin.Context, recovered any) {
	log := logging.Log.WithField("request_id", c.GetString(requestIDHeader))
	fail(c, log, fmt.Errorf("internal error: %v", recovered))
}

// fail logs err and answers with the uniform failure body.
func fail(c *gin.Context, log *logrus.Entry, err error) {
	message := err.Error()
	if message == "" {
		message = unknownError
	}
	log.WithField("error", message).Warn("contact submission not forwarded")
	c.AbortWithStatusJSON(http.StatusInternalServerError, model.Response{OK: false, Error: message})
}
