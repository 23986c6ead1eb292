package main

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/api/option"

	"github.com/jlee061829/eventor/pkg/auth"
	"github.com/jlee061829/eventor/pkg/config"
	"github.com/jlee061829/eventor/pkg/metrics"
	timehelper "github.com/jlee061829/eventor/pkg/timeHelper"
	"github.com/jlee061829/eventor/repos/resend"
	"github.com/jlee061829/eventor/repos/store"

	"github.com/jlee061829/eventor/services/draft"
	"github.com/jlee061829/eventor/services/invites"
	"github.com/jlee061829/eventor/services/lifecycle"
	"github.com/jlee061829/eventor/services/roster"
	"github.com/jlee061829/eventor/services/scores"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	credentialsOption := option.WithCredentialsJSON([]byte(cfg.FirebaseCredentialsJSON))

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProjectID, credentialsOption)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	firebaseApp, err := firebase.NewApp(ctx, nil, credentialsOption)
	if err != nil {
		log.Fatalf("error initializing app: %v\n", err)
	}

	eventStore := store.NewFirestore(firestoreClient)
	mailService := resend.NewService(cfg.ResendKey, cfg.HostURL)
	clock := timehelper.Real()
	metricsManager := metrics.NewManager(prometheus.DefaultRegisterer)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	lifecycleService := lifecycle.NewService(eventStore)
	rosterService := roster.NewService(eventStore, clock)
	draftService := draft.NewService(eventStore, clock, rng, metricsManager)
	scoresService := scores.NewService(eventStore, clock, metricsManager)
	invitesService := invites.NewService(eventStore, mailService, clock)

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORSHosts, ",")
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Access-Control-Allow-Origin"}

	router := gin.Default()
	router.Use(cors.New(corsConfig))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rosterRouter := router.Group("/roster/v1")
	rosterRouter.Use(auth.AuthMiddleware(firebaseApp))

	draftRouter := router.Group("/draft/v1")
	draftRouter.Use(auth.AuthMiddleware(firebaseApp))

	scoresRouter := router.Group("/scores/v1")
	scoresRouter.Use(auth.AuthMiddleware(firebaseApp))

	invitesRouter := router.Group("/invites/v1")
	invitesRouter.Use(auth.AuthMiddleware(firebaseApp))

	lifecycleRouter := router.Group("/lifecycle/v1")

	roster.NewHTTPHandler(roster.HTTPOptions{
		Service: rosterService,
		Router:  rosterRouter,
	})

	draft.NewHTTPHandler(draft.HTTPOptions{
		Service: draftService,
		Router:  draftRouter,
	})

	scores.NewHTTPHandler(scores.HTTPOptions{
		Service: scoresService,
		Router:  scoresRouter,
	})

	invites.NewHTTPHandler(invites.HTTPOptions{
		Service: invitesService,
		Router:  invitesRouter,
	})

	lifecycle.NewHTTPHandler(lifecycle.HTTPOptions{
		Service: lifecycleService,
		Router:  lifecycleRouter,
	})

	log.Fatal(router.Run(":" + cfg.Port))
}
