package gin

import (
	"net/http"

	"github.com/TheOne1006/kbsite"
	"github.com/gin-gonic/gin"
)

// Response is the envelope returned by every non-streaming endpoint.
// Code carries the outcome; the HTTP status is 200 unless the request
// body could not be decoded.
type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

// codes maps application error codes to envelope codes.
var codes = map[string]int{
	kbsite.ECONFLICT: http.StatusConflict,
	kbsite.EINVALID:  http.StatusBadRequest,
	kbsite.ENOTFOUND: http.StatusNotFound,
	kbsite.EINTERNAL: http.StatusInternalServerError,
}

// ErrorStatusCode returns the envelope code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

func (s *Server) ok(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusOK, Response{Code: http.StatusOK, Msg: msg, Data: data})
}

// fail writes err as an envelope. Internal errors are logged and their
// details hidden from the client.
func (s *Server) fail(c *gin.Context, err error) {
	code := kbsite.ErrorCode(err)
	if code == kbsite.EINTERNAL {
		_ = c.Error(err)
	}
	c.JSON(http.StatusOK, errorResponse(err))
}

func errorResponse(err error) Response {
	return Response{
		Code: ErrorStatusCode(kbsite.ErrorCode(err)),
		Msg:  kbsite.ErrorMessage(err),
	}
}

// badRequest reports a body or query that could not be bound.
func (s *Server) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{Code: http.StatusBadRequest, Msg: err.Error()})
}

// checkKB rejects knowledge base names that could escape the root.
func (s *Server) checkKB(c *gin.Context, name string) bool {
	if err := kbsite.ValidateKBName(name); err != nil {
		s.logger().Warn("rejected knowledge base name", "kb", name, "client_ip", c.ClientIP())
		c.JSON(http.StatusOK, Response{Code: http.StatusForbidden, Msg: kbsite.ErrorMessage(err)})
		return false
	}
	return true
}
