package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"golang-advisorybackend/errs"
)

var validate = validator.New()

const requestTimeout = 10 * time.Second

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, err error) {
	c.JSON(errs.StatusCode(err), gin.H{"success": false, "error": err.Error()})
}

func respondValidation(c *gin.Context, err error) {
	respondError(c, errs.Validation(err.Error()))
}
