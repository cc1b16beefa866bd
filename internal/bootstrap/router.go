package bootstrap

import (
	"fmt"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/skillfolio/skillfolio-web/internal/api/http"
	"github.com/skillfolio/skillfolio-web/internal/api/http/middleware"
	"github.com/skillfolio/skillfolio-web/internal/session"
	"github.com/skillfolio/skillfolio-web/internal/web"
)

type RouterDeps struct {
	ServiceName        string
	Version            string
	API                web.API
	Sessions           session.Store
	SessionsPinger     httpapi.Pinger
	SecureCookies      bool
	CORSAllowedOrigins []string
}

func BuildRouter(dep RouterDeps) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())

	if len(dep.CORSAllowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		if slices.Contains(dep.CORSAllowedOrigins, "*") {
			// Browsers reject a wildcard origin on credentialed responses.
			corsCfg.AllowAllOrigins = true
		} else {
			corsCfg.AllowOrigins = dep.CORSAllowedOrigins
			corsCfg.AllowCredentials = true
		}
		corsCfg.AddAllowHeaders("HX-Request", "HX-Current-URL", "HX-Target", "HX-Trigger")
		corsCfg.AddExposeHeaders("HX-Redirect", "HX-Retarget", "HX-Reswap", middleware.RequestIDHeader)
		r.Use(cors.New(corsCfg))
	}

	tmpl, err := web.LoadTemplates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.SessionsPinger)
	healthHandler.RegisterRoutes(r)

	webHandler := web.New(dep.API, dep.Sessions, dep.SecureCookies)
	webHandler.RegisterRoutes(r)

	return r, nil
}
