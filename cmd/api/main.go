package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "lombard-core/internal/adapter/http"
	"lombard-core/internal/adapter/middleware"
	"lombard-core/internal/adapter/repository/mysql"
	"lombard-core/internal/config"
	"lombard-core/internal/domain/collateral"
	"lombard-core/internal/domain/deal"
	"lombard-core/internal/domain/ledger"
	"lombard-core/internal/infrastructure/cache"
	"lombard-core/internal/infrastructure/db"
	coluc "lombard-core/internal/usecase/collateral"
	dealuc "lombard-core/internal/usecase/deal"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(
		&deal.Deal{}, &deal.PausePeriod{}, &deal.ScheduleRow{},
		&ledger.Entry{},
		&collateral.Asset{}, &collateral.Valuation{}, &collateral.Link{}, &collateral.ChainRecord{},
	); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	deals := mysql.NewDealRepository(gdb)
	pauses := mysql.NewPauseRepository(gdb)
	rows := mysql.NewScheduleRepository(gdb)
	entries := mysql.NewLedgerRepository(gdb)
	links := mysql.NewLinkRepository(gdb)
	assets := mysql.NewAssetRepository(gdb)
	chain := mysql.NewChainRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	dealH := httpadp.NewDealHandler(dealuc.NewUsecase(deals, pauses, rows, entries, uow))
	colH := httpadp.NewCollateralHandler(coluc.NewUsecase(deals, links, assets, chain, uow))
	h := httpadp.NewHandler()

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	v1 := e.Group("/v1", middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	v1.POST("/deals", dealH.CreateDeal)
	v1.GET("/deals/:deal_id", dealH.GetDeal)
	v1.GET("/deals/:deal_id/schedule", dealH.GetSchedule)
	v1.GET("/deals/:deal_id/balances", dealH.GetBalances)
	v1.POST("/deals/:deal_id/pauses", dealH.PauseDeal)
	v1.POST("/pauses/:pause_id/resume", dealH.ResumeDeal)
	v1.DELETE("/pauses/:pause_id", dealH.DeletePause)
	v1.POST("/deals/:deal_id/regenerate", dealH.RegenerateSchedule)

	v1.POST("/deals/:deal_id/collateral", colH.Pledge)
	v1.GET("/deals/:deal_id/collateral-chain", colH.GetChain)
	v1.POST("/deals/:deal_id/default", colH.DefaultDeal)
	v1.GET("/collateral/:link_id", colH.GetLink)
	v1.POST("/collateral/:link_id/evaluate", colH.Evaluate)
	v1.POST("/collateral/:link_id/replace", colH.Replace)
	v1.POST("/collateral/:link_id/release", colH.Release)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
