package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"coliving_server/config"
	"coliving_server/logger"
	"coliving_server/routes"
	"coliving_server/services"
	"coliving_server/socket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	ctx := context.Background()

	// Storage
	dynamoClient, err := services.InitializeDynamoDBClient(ctx, cfg.AWS.Region)
	if err != nil {
		log.Fatal("failed to initialize DynamoDB client", zap.Error(err))
	}
	dynamoService := &services.DynamoService{Client: dynamoClient}

	profileStore := &services.DynamoProfileStore{Dynamo: dynamoService}
	decisionStore := &services.DynamoDecisionStore{Dynamo: dynamoService}
	matchStore := &services.DynamoMatchStore{Dynamo: dynamoService}
	groupStore := &services.DynamoGroupStore{Dynamo: dynamoService}

	// Feature-vector cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, feature vectors will be recomputed per request", zap.Error(err))
	}
	vectorCache := services.NewRedisVectorCache(redisClient,
		time.Duration(cfg.Scoring.VectorCacheTTLSeconds)*time.Second)

	// Events: SNS topics for collaborators, socket broadcast for open sessions
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		log.Fatal("failed to load AWS config", zap.Error(err))
	}
	socketServer := socket.NewSocketServer(log)
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Error("socket server stopped", zap.Error(err))
		}
	}()
	defer socketServer.Close()

	events := &services.MultiPublisher{
		Publishers: []services.EventPublisher{
			&services.SNSPublisher{
				Client:           sns.NewFromConfig(awsCfg),
				MatchTopicARN:    cfg.AWS.MatchTopicARN,
				DecisionTopicARN: cfg.AWS.DecisionTopicARN,
			},
			&services.SocketPublisher{Server: socketServer},
		},
		Log: log,
	}

	// Engine services
	featureService := &services.FeatureService{
		Profiles: profileStore,
		Cache:    vectorCache,
		Scoring:  cfg.Scoring,
		Log:      log,
	}
	scoreService := &services.ScoreService{Scoring: cfg.Scoring}
	decisionService := services.NewDecisionService(decisionStore, matchStore, profileStore, events, log)
	matchService := &services.MatchService{Matches: matchStore, Profiles: profileStore}
	groupService := &services.GroupService{
		Groups:   groupStore,
		Features: featureService,
		Scorer:   scoreService,
		Log:      log,
	}
	feedService := &services.FeedService{
		Profiles:  profileStore,
		Decisions: decisionStore,
		Matches:   matchStore,
		Features:  featureService,
		Scorer:    scoreService,
		Feed:      cfg.Feed,
		Log:       log,
	}

	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.Handle("/socket.io/", socketServer)

	routes.RegisterFeedRoutes(r, feedService)
	routes.RegisterDecisionRoutes(r, decisionService)
	routes.RegisterScoreRoutes(r, featureService, scoreService)
	routes.RegisterGroupRoutes(r, groupService)
	routes.RegisterMatchRoutes(r, matchService)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	addr := ":" + cfg.Server.Port
	log.Info("starting server", zap.String("addr", addr), zap.String("environment", cfg.App.Environment))
	if err := http.ListenAndServe(addr, corsHandler); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
