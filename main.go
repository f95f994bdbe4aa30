package main

import (
	"fmt"
	"os"
	"time"

	"varanno/api/contexts"
	gam "varanno/api/middleware"
	"varanno/api/models"
	"varanno/api/mvc/pages"
	serviceInfoMvc "varanno/api/mvc/service-info"
	sessionsMvc "varanno/api/mvc/sessions"
	variantsMvc "varanno/api/mvc/variants"
	workflowsMvc "varanno/api/mvc/workflows"
	"varanno/api/services/annotation"
	exportService "varanno/api/services/export"
	"varanno/api/services/pipeline"
	"varanno/api/services/sanitation"
	sessionsService "varanno/api/services/sessions"
	"varanno/api/services/tools"
	"varanno/api/utils"
	"varanno/api/views"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
)

func main() {
	// Gather environment variables (and the optional config file)
	cfg, err := models.LoadConfig()
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	fmt.Printf("Using : \n"+

		"\tDebug : %t \n\n"+

		"\tWork Directory : %s \n"+
		"\tMax Upload Size (MB) : %d\n"+
		"\tMax Concurrent Sessions : %d\n"+
		"\tSession TTL (minutes) : %d\n"+
		"\tSweep Interval (minutes) : %d\n\n"+

		"\tAssembly : %s\n"+
		"\tReference Genome : %s\n"+
		"\tdbSNP : %s\n"+
		"\tbwa : %s\n"+
		"\tsamtools : %s\n"+
		"\tbcftools : %s\n"+
		"\tThreads : %d\n\n"+

		"\tAnnotation Timeout (seconds) : %d\n"+
		"\tNCBI Url : %s\n"+
		"\tMyVariant Url : %s\n"+
		"\tEnsembl Url : %s\n"+
		"\tUCSC Url : %s\n\n"+

		"\tElasticsearch Url : %s \n"+
		"\tElasticsearch Username : %s\n"+
		"\tElasticsearch Export Index : %s\n\n"+

		"Running on Port : %s\n",

		cfg.Debug,
		cfg.Api.WorkDirectory,
		cfg.Api.MaxUploadSizeMb,
		cfg.Api.MaxConcurrentSessions,
		cfg.Api.SessionTtlMinutes,
		cfg.Api.SweepIntervalMinutes,
		cfg.Tools.AssemblyId,
		cfg.Tools.ReferenceGenomePath,
		cfg.Tools.DbsnpPath,
		cfg.Tools.BwaPath,
		cfg.Tools.SamtoolsPath,
		cfg.Tools.BcftoolsPath,
		cfg.Tools.Threads,
		cfg.Annotation.TimeoutSeconds,
		cfg.Annotation.NcbiUrl,
		cfg.Annotation.MyVariantUrl,
		cfg.Annotation.EnsemblUrl,
		cfg.Annotation.UcscUrl,
		cfg.Elasticsearch.Url, cfg.Elasticsearch.Username,
		cfg.Elasticsearch.ExportIndex,
		cfg.Api.Port)
	// --

	// Tool prerequisites are reported but not fatal: vcf uploads still work
	if err := tools.Preflight(cfg); err != nil {
		fmt.Printf("[%s] - Warning : %v\n", time.Now(), err)
	}

	if err := os.MkdirAll(cfg.Api.WorkDirectory, 0755); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	// Instantiate Server
	e := echo.New()

	renderer, err := views.NewRenderer()
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	e.Renderer = renderer

	// Service Connections:
	// -- Elasticsearch (optional)
	es, err := utils.CreateEsConnection(cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	// Service Singletons
	resolver := annotation.NewResolverFromConfig(cfg)
	pl := pipeline.NewPipeline(cfg, tools.NewExecRunner(cfg), resolver)
	sz := sessionsService.NewSessionService(cfg, pl)
	sanitation.NewSanitationService(sz, cfg)
	pz := exportService.NewPublishService(es, cfg)

	// Configure Server
	e.Use(middleware.Recover())
	if cfg.Debug {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
	}))

	// -- Override handlers with "custom Varanno" context
	//		to be able to provide variables and global singletons
	e.Use(func(h echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &contexts.VarannoContext{
				Context:        c,
				Es7Client:      es,
				Config:         cfg,
				SessionService: sz,
				PublishService: pz,
				Preflight:      pl.Preflight,
			}
			return h(cc)
		}
	})

	// Begin MVC Routes
	// -- Root
	e.GET("/", pages.GetIndexPage)

	// -- Service Info
	e.GET("/service-info", serviceInfoMvc.GetServiceInfo)

	// -- Workflows
	e.GET("/workflows", workflowsMvc.WorkflowsGet)
	e.GET("/workflows/:name", workflowsMvc.WorkflowGet)

	// -- Sessions
	e.POST("/sessions", sessionsMvc.CreateSession,
		// middleware
		gam.MandateUploadedFile)
	e.GET("/sessions", sessionsMvc.GetSessions)
	e.GET("/sessions/:id", sessionsMvc.GetSession,
		// middleware
		gam.MandateSessionIdAttribute)
	e.DELETE("/sessions/:id", sessionsMvc.DeleteSession,
		// middleware
		gam.MandateSessionIdAttribute)
	e.GET("/sessions/:id/view", pages.GetSessionView,
		// middleware
		gam.MandateSessionIdAttribute)

	// -- Variants
	e.GET("/sessions/:id/variants", variantsMvc.GetSessionVariants,
		// middleware
		gam.MandateSessionIdAttribute,
		gam.ValidateOptionalChromosomeAttribute,
		gam.ValidateOptionalCalibratedBounds)
	e.GET("/sessions/:id/overview", variantsMvc.GetSessionOverview,
		// middleware
		gam.MandateSessionIdAttribute,
		gam.ValidateOptionalChromosomeAttribute,
		gam.ValidateOptionalCalibratedBounds)
	e.GET("/sessions/:id/export", variantsMvc.ExportSessionCsv,
		// middleware
		gam.MandateSessionIdAttribute,
		gam.ValidateOptionalChromosomeAttribute,
		gam.ValidateOptionalCalibratedBounds)
	e.POST("/sessions/:id/publish", variantsMvc.PublishSession,
		// middleware
		gam.MandateSessionIdAttribute)
	e.GET("/sessions/:id/published", variantsMvc.GetPublishedVariants,
		// middleware
		gam.MandateSessionIdAttribute)

	// Run
	e.Logger.Fatal(e.Start(":" + cfg.Api.Port))
}
