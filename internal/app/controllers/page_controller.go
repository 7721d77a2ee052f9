package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageController handles static informational pages.
type PageController struct{}

// NewPageController creates a new PageController
func NewPageController() *PageController {
	return &PageController{}
}

// About renders the static about page.
func (c *PageController) About(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "about.html", gin.H{
		"Title": "About",
	})
}
