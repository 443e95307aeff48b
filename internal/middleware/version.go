package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// VersionMiddleware provides API versioning headers and path resolution.
type VersionMiddleware struct {
	supportedVersions map[string]string
	defaultVersion    string
}

func NewVersionMiddleware() *VersionMiddleware {
	return &VersionMiddleware{
		supportedVersions: map[string]string{
			"v1": "Current stable API version",
		},
		defaultVersion: "v1",
	}
}

// VersionHeader adds version information to response headers.
func (vm *VersionMiddleware) VersionHeader(version string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("X-API-Version", version)
			if msg, exists := vm.supportedVersions[version]; exists {
				c.Response().Header().Set("X-API-Message", msg)
			}
			return next(c)
		}
	}
}

// APIVersionResolver resolves the API version from the request path and
// rejects unsupported versions.
func (vm *VersionMiddleware) APIVersionResolver() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			version := extractVersionFromPath(c.Request().URL.Path)
			if version != "" {
				if _, supported := vm.supportedVersions[version]; !supported {
					return c.JSON(http.StatusNotFound, map[string]string{
						"error":              "Unsupported API version",
						"supported_versions": strings.Join(vm.versions(), ", "),
					})
				}
				c.Set("api_version", version)
			} else {
				c.Set("api_version", vm.defaultVersion)
			}
			return next(c)
		}
	}
}

func extractVersionFromPath(path string) string {
	if len(path) >= 3 && path[0] == '/' && path[1] == 'v' {
		if versionNum, err := strconv.Atoi(path[2:3]); err == nil && versionNum > 0 {
			return "v" + strconv.Itoa(versionNum)
		}
	}
	return ""
}

func (vm *VersionMiddleware) versions() []string {
	var versions []string
	for version := range vm.supportedVersions {
		versions = append(versions, version)
	}
	return versions
}
