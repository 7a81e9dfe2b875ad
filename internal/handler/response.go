package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	locationDomain "github.com/geolibrary/service-location/internal/domain/location"
)

// Success writes a 200 envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}

// NotFound writes a 404 with the given message.
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"success": false, "error": msg})
}

// Error maps domain errors to HTTP status codes. Name collisions are the
// caller's to fix (409); anything else is a storage or internal failure.
func Error(c *gin.Context, err error) {
	if locationDomain.IsDuplicateName(err) {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
}
