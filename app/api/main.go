package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/database/mongoclient"
	"github.com/mintmarket/goapi/base/database/redisclient"
	"github.com/mintmarket/goapi/base/log"
	"github.com/mintmarket/goapi/base/metrics"
	"github.com/mintmarket/goapi/base/oplock"
	bValidator "github.com/mintmarket/goapi/base/validator"
	mmiddleware "github.com/mintmarket/goapi/middleware"
	"github.com/mintmarket/goapi/service/query"
	"github.com/mintmarket/goapi/service/redis"
	auth_delivery "github.com/mintmarket/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/mintmarket/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/mintmarket/goapi/stores/auth/usecase"
	collection_delivery "github.com/mintmarket/goapi/stores/collection/delivery/http"
	collection_repository "github.com/mintmarket/goapi/stores/collection/repository"
	collection_usecase "github.com/mintmarket/goapi/stores/collection/usecase"
	event_delivery "github.com/mintmarket/goapi/stores/event/delivery/http"
	event_repository "github.com/mintmarket/goapi/stores/event/repository"
	event_usecase "github.com/mintmarket/goapi/stores/event/usecase"
	hc_delivery "github.com/mintmarket/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/mintmarket/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/mintmarket/goapi/stores/healthcheck/usecase"
	marketplace_delivery "github.com/mintmarket/goapi/stores/marketplace/delivery/http"
	marketplace_repository "github.com/mintmarket/goapi/stores/marketplace/repository"
	marketplace_usecase "github.com/mintmarket/goapi/stores/marketplace/usecase"
	token_delivery "github.com/mintmarket/goapi/stores/token/delivery/http"
	token_repository "github.com/mintmarket/goapi/stores/token/repository"
	token_usecase "github.com/mintmarket/goapi/stores/token/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient)

	// init redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), redisCachePool)

	mmiddleware.SetupCache(redisCache)

	// one commit lock serializes every registry and marketplace mutation
	commitLock := oplock.New()

	// repositories
	collectionRepo := collection_repository.NewCollection(q)
	nftitemRepo := token_repository.NewNftItem(q)
	listingRepo := marketplace_repository.NewListing(q)
	auctionRepo := marketplace_repository.NewAuction(q)
	balanceRepo := marketplace_repository.NewBalance(q)
	eventRepo := event_repository.NewEvent(q)
	hcRepo := hc_repo.New(mongoClient, redisCache)

	// usecases
	eventUC := event_usecase.NewEvent(&event_usecase.EventUseCaseCfg{
		EventRepo: eventRepo,
		Redis:     redisCache,
	})
	collectionUC := collection_usecase.NewCollection(&collection_usecase.CollectionUseCaseCfg{
		CollectionRepo: collectionRepo,
		EventUC:        eventUC,
		OpLock:         commitLock,
	})
	tokenUC := token_usecase.NewToken(&token_usecase.TokenUseCaseCfg{
		NftitemRepo:    nftitemRepo,
		CollectionRepo: collectionRepo,
		EventUC:        eventUC,
		OpLock:         commitLock,
	})
	marketplaceUC := marketplace_usecase.NewMarketplace(&marketplace_usecase.MarketplaceUseCaseCfg{
		ListingRepo: listingRepo,
		AuctionRepo: auctionRepo,
		BalanceRepo: balanceRepo,
		NftitemRepo: nftitemRepo,
		EventUC:     eventUC,
		OpLock:      commitLock,
	})
	authUC := auth_usecase.New(&auth_usecase.AuthUseCaseCfg{
		JwtSecret:    viper.GetString("auth.jwtSecret"),
		SignatureMsg: viper.GetString("auth.signatureMsg"),
		Redis:        redisCache,
	})
	hcUC := hc_usecase.New(hcRepo)

	authMiddleware := auth_middleware.New(authUC)

	hc_delivery.New(e, hcUC)
	auth_delivery.New(e, authUC, viper.GetString("auth.signatureMsg"))
	collection_delivery.New(e, authMiddleware.Auth(), collectionUC)
	token_delivery.New(e, authMiddleware.Auth(), tokenUC)
	marketplace_delivery.New(e, authMiddleware.Auth(), marketplaceUC)
	event_delivery.New(e, eventUC)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
