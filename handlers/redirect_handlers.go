package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/vit0-9/link_redirector/models"
)

// Resolver is the part of the resolver the HTTP layer needs.
type Resolver interface {
	Resolve(ctx context.Context, path string, query url.Values) (*models.RedirectResult, error)
}

// upstreamFailure is the only body a caller ever sees when the store fails.
var upstreamFailure = models.APIErrorResponse{
	StatusCode: http.StatusInternalServerError,
	ErrorCode:  "upstream_failure",
	Message:    "internal server error",
}

// RedirectHandlers serves short links.
type RedirectHandlers struct {
	resolver Resolver
}

func NewRedirectHandlers(resolver Resolver) *RedirectHandlers {
	return &RedirectHandlers{resolver: resolver}
}

// RedirectHandler godoc
// @Summary      Follow a short link
// @Description  Looks up the short code and answers with a 302 to its target. Unknown, over-long or reserved codes redirect to the fallback destination. A non-empty email query parameter is appended to matched targets.
// @Tags         Redirect
// @Param        path  path   string  true   "Short code"
// @Param        email query  string  false  "Appended to the target as ?email= or &email="
// @Success      302
// @Failure      500 {object} models.APIErrorResponse "Lookup store failure"
// @Router       /{path} [get]
func (h *RedirectHandlers) RedirectHandler(c *gin.Context) {
	result, err := h.resolver.Resolve(c.Request.Context(), c.Param("path"), c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, upstreamFailure)
		return
	}
	c.Redirect(result.StatusCode, result.Location)
}

// ResolvePreviewHandler godoc
// @Summary      Preview a short link
// @Description  Runs the same resolution as the redirect route and returns it as JSON instead of redirecting.
// @Tags         Redirect
// @Produce      json
// @Param        path  query  string  true   "Short code"
// @Param        email query  string  false  "Email parameter to append"
// @Success      200 {object} models.ResolvePreviewResponse
// @Failure      400 {object} map[string]string "Error: missing path"
// @Failure      500 {object} models.APIErrorResponse "Lookup store failure"
// @Router       /api/v1/resolve [get]
func (h *RedirectHandlers) ResolvePreviewHandler(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path query parameter is required"})
		return
	}

	result, err := h.resolver.Resolve(c.Request.Context(), path, c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, upstreamFailure)
		return
	}
	c.PureJSON(http.StatusOK, models.ResolvePreviewResponse{
		Path:       path,
		Matched:    result.Kind == models.ResultRedirect,
		StatusCode: result.StatusCode,
		Location:   models.SafeURLString(result.Location),
	})
}
