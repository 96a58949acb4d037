package xhttp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kitbid/KitBidBackend/src/pkg/errcode"
)

type Response struct {
	Code uint32      `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

var codeToStatus = map[uint32]int{
	errcode.CodeOK:            http.StatusOK,
	errcode.CodeUnexpected:    http.StatusInternalServerError,
	errcode.CodeBadParams:     http.StatusBadRequest,
	errcode.CodeCustom:        http.StatusBadRequest,
	errcode.CodeUnauthorized:  http.StatusUnauthorized,
	errcode.CodeNotFound:      http.StatusNotFound,
	errcode.CodeStateConflict: http.StatusConflict,
	errcode.CodeConcurrency:   http.StatusConflict,
	errcode.CodePersistence:   http.StatusServiceUnavailable,
}

func OkJson(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: errcode.CodeOK,
		Msg:  errcode.NoErr.Msg(),
		Data: data,
	})
}

func Error(c *gin.Context, err error) {
	e := errcode.ParseErr(err)
	status, ok := codeToStatus[e.Code()]
	if !ok {
		status = http.StatusInternalServerError
	}
	c.JSON(status, Response{
		Code: e.Code(),
		Msg:  e.Msg(),
	})
}
